package service

import (
	"context"
	"errors"
	"time"

	"github.com/sorteocloud/raffle-backend/internal/domain"
	"github.com/sorteocloud/raffle-backend/internal/dto"
	"github.com/sorteocloud/raffle-backend/internal/promotion"
	"github.com/sorteocloud/raffle-backend/internal/repository"
	"github.com/sorteocloud/raffle-backend/internal/tenancy"
	"github.com/sorteocloud/raffle-backend/pkg/cache"
	"github.com/sorteocloud/raffle-backend/pkg/logger"
	"go.uber.org/zap"
)

var (
	ErrRaffleNotFound = errors.New("raffle not found")
)

// CatalogService defines the storefront and admin views of a raffle's
// packages after promotion resolution
type CatalogService interface {
	// GetStorefrontCatalog resolves the purchasable packages of a raffle
	// for buyers. Unavailable packages are filtered out.
	GetStorefrontCatalog(ctx context.Context, raffleSlug string) (*dto.CatalogResponse, error)
	// ResolveForAdmin resolves all packages of a raffle including
	// unavailable ones, for admin tooling
	ResolveForAdmin(ctx context.Context, raffleID string) ([]promotion.Resolved, error)
	// InvalidateCatalog drops the cached storefront catalog of a raffle
	InvalidateCatalog(ctx context.Context, raffleSlug string)
}

// catalogService implements CatalogService
type catalogService struct {
	raffleRepo  repository.RaffleRepository
	packageRepo repository.PackageRepository
	offerRepo   repository.OfferRepository
	engine      *promotion.Engine
	cache       *cache.Cache
	cacheTTL    time.Duration
}

// NewCatalogService creates a new CatalogService. cache may be nil to
// disable caching.
func NewCatalogService(
	raffleRepo repository.RaffleRepository,
	packageRepo repository.PackageRepository,
	offerRepo repository.OfferRepository,
	engine *promotion.Engine,
	catalogCache *cache.Cache,
	cacheTTL time.Duration,
) CatalogService {
	return &catalogService{
		raffleRepo:  raffleRepo,
		packageRepo: packageRepo,
		offerRepo:   offerRepo,
		engine:      engine,
		cache:       catalogCache,
		cacheTTL:    cacheTTL,
	}
}

// GetStorefrontCatalog resolves the purchasable packages of a raffle
func (s *catalogService) GetStorefrontCatalog(ctx context.Context, raffleSlug string) (*dto.CatalogResponse, error) {
	cacheKey := s.catalogKey(ctx, raffleSlug)

	if s.cache != nil && cacheKey != "" {
		var cached dto.CatalogResponse
		hit, err := s.cache.GetJSON(ctx, cacheKey, &cached)
		if err != nil {
			logger.Warn("catalog cache read failed", zap.Error(err))
		}
		if hit {
			return &cached, nil
		}
	}

	raffle, err := s.raffleRepo.GetBySlug(ctx, raffleSlug)
	if err != nil {
		return nil, err
	}
	if raffle == nil || !raffle.IsPurchasable() {
		return nil, ErrRaffleNotFound
	}

	resolved, err := s.resolveRaffle(ctx, raffle, false)
	if err != nil {
		return nil, err
	}
	available := promotion.Available(resolved)

	packages := make([]*dto.StorefrontPackage, 0, len(available))
	for i := range available {
		packages = append(packages, dto.FromResolved(&available[i]))
	}

	out := &dto.CatalogResponse{
		RaffleID:   raffle.ID,
		RaffleSlug: raffle.Slug,
		RaffleName: raffle.Name,
		Currency:   raffle.Currency,
		Packages:   packages,
	}

	if s.cache != nil && cacheKey != "" {
		if err := s.cache.SetJSON(ctx, cacheKey, out, s.cacheTTL); err != nil {
			logger.Warn("catalog cache write failed", zap.Error(err))
		}
	}
	return out, nil
}

// ResolveForAdmin resolves all packages of a raffle including unavailable ones
func (s *catalogService) ResolveForAdmin(ctx context.Context, raffleID string) ([]promotion.Resolved, error) {
	raffle, err := s.raffleRepo.GetByID(ctx, raffleID)
	if err != nil {
		return nil, err
	}
	if raffle == nil {
		return nil, ErrRaffleNotFound
	}
	return s.resolveRaffle(ctx, raffle, true)
}

// InvalidateCatalog drops the cached storefront catalog of a raffle
func (s *catalogService) InvalidateCatalog(ctx context.Context, raffleSlug string) {
	if s.cache == nil {
		return
	}
	key := s.catalogKey(ctx, raffleSlug)
	if key == "" {
		return
	}
	if err := s.cache.Delete(ctx, key); err != nil {
		logger.Warn("catalog cache invalidation failed", zap.Error(err))
	}
}

func (s *catalogService) resolveRaffle(ctx context.Context, raffle *domain.Raffle, includeInactive bool) ([]promotion.Resolved, error) {
	pkgs, err := s.packageRepo.ListByRaffle(ctx, raffle.ID, includeInactive)
	if err != nil {
		return nil, err
	}

	packageIDs := make([]string, 0, len(pkgs))
	packages := make([]domain.TicketPackage, 0, len(pkgs))
	for _, p := range pkgs {
		packageIDs = append(packageIDs, p.ID)
		packages = append(packages, *p)
	}

	offerPtrs, err := s.offerRepo.ListByPackages(ctx, packageIDs)
	if err != nil {
		return nil, err
	}
	offers := make([]domain.TimeLimitedOffer, 0, len(offerPtrs))
	for _, o := range offerPtrs {
		offers = append(offers, *o)
	}

	return s.engine.Resolve(packages, offers, raffle.BaseTicketPrice, time.Now())
}

// catalogKey builds the tenant-qualified cache key. An empty key means
// the scope cannot be determined and caching is skipped.
func (s *catalogService) catalogKey(ctx context.Context, raffleSlug string) string {
	scope, ok := tenancy.FromContext(ctx)
	if !ok || scope.TenantID == nil {
		return ""
	}
	return "catalog:" + *scope.TenantID + ":" + raffleSlug
}
