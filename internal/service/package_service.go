package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sorteocloud/raffle-backend/internal/domain"
	"github.com/sorteocloud/raffle-backend/internal/dto"
	"github.com/sorteocloud/raffle-backend/internal/repository"
	"github.com/sorteocloud/raffle-backend/internal/tenancy"
)

var (
	ErrPackageNotFound = errors.New("ticket package not found")
)

// PackageService defines the interface for ticket package management
type PackageService interface {
	// Create creates a new ticket package under a raffle
	Create(ctx context.Context, req *dto.CreatePackageRequest) (*dto.PackageResponse, error)
	// GetByID retrieves a package by ID
	GetByID(ctx context.Context, id string) (*dto.PackageResponse, error)
	// ListByRaffle retrieves the packages of a raffle in display order
	ListByRaffle(ctx context.Context, raffleID string, includeInactive bool) (*dto.PackageListResponse, error)
	// Update updates a package; only fields present in the request change
	Update(ctx context.Context, id string, req *dto.UpdatePackageRequest) (*dto.PackageResponse, error)
	// Reorder applies new display positions to a batch of packages
	Reorder(ctx context.Context, req *dto.ReorderPackagesRequest) error
	// Delete soft deletes a package; deleting an already deleted package
	// succeeds without effect
	Delete(ctx context.Context, id string) error
}

// packageService implements PackageService
type packageService struct {
	packageRepo repository.PackageRepository
	raffleRepo  repository.RaffleRepository
	catalog     CatalogService
}

// NewPackageService creates a new PackageService. catalog may be nil
// when cache invalidation is not needed.
func NewPackageService(packageRepo repository.PackageRepository, raffleRepo repository.RaffleRepository, catalog CatalogService) PackageService {
	return &packageService{
		packageRepo: packageRepo,
		raffleRepo:  raffleRepo,
		catalog:     catalog,
	}
}

// Create creates a new ticket package under a raffle
func (s *packageService) Create(ctx context.Context, req *dto.CreatePackageRequest) (*dto.PackageResponse, error) {
	if valid, msg := req.Validate(); !valid {
		return nil, errors.New(msg)
	}

	raffle, err := s.raffleRepo.GetByID(ctx, req.RaffleID)
	if err != nil {
		return nil, err
	}
	if raffle == nil {
		return nil, ErrRaffleNotFound
	}

	multiplier := decimal.NewFromFloat(req.PriceMultiplier)
	if multiplier.IsZero() {
		multiplier = decimal.NewFromInt(1)
	}

	var fixedPrice *decimal.Decimal
	if req.FixedPrice != nil {
		price, err := decimal.NewFromString(*req.FixedPrice)
		if err != nil {
			return nil, err
		}
		fixedPrice = &price
	}

	var tenantID string
	if scope, ok := tenancy.FromContext(ctx); ok && scope.TenantID != nil {
		tenantID = *scope.TenantID
	}

	now := time.Now()
	pkg := &domain.TicketPackage{
		ID:                  uuid.New().String(),
		TenantID:            tenantID,
		RaffleID:            req.RaffleID,
		Amount:              req.Amount,
		PriceMultiplier:     multiplier,
		FixedPrice:          fixedPrice,
		DiscountPercentage:  req.DiscountPercentage,
		BonusEntries:        req.BonusEntries,
		Name:                req.Name,
		BadgeText:           req.BadgeText,
		BadgeColor:          req.BadgeColor,
		Gradient:            req.Gradient,
		MultiplierLabel:     req.MultiplierLabel,
		DisplayOrder:        req.DisplayOrder,
		IsFeatured:          req.IsFeatured,
		MaxPurchasesPerUser: req.MaxPurchasesPerUser,
		StockLimit:          req.StockLimit,
		AvailableFrom:       req.AvailableFrom,
		AvailableUntil:      req.AvailableUntil,
		IsActive:            req.IsActive,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.packageRepo.Create(ctx, pkg); err != nil {
		return nil, err
	}

	s.invalidate(ctx, raffle.Slug)
	return dto.FromPackage(pkg), nil
}

// GetByID retrieves a package by ID
func (s *packageService) GetByID(ctx context.Context, id string) (*dto.PackageResponse, error) {
	pkg, err := s.packageRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, ErrPackageNotFound
	}
	return dto.FromPackage(pkg), nil
}

// ListByRaffle retrieves the packages of a raffle in display order
func (s *packageService) ListByRaffle(ctx context.Context, raffleID string, includeInactive bool) (*dto.PackageListResponse, error) {
	pkgs, err := s.packageRepo.ListByRaffle(ctx, raffleID, includeInactive)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.PackageResponse, 0, len(pkgs))
	for _, p := range pkgs {
		out = append(out, dto.FromPackage(p))
	}
	return &dto.PackageListResponse{Packages: out, Total: len(out)}, nil
}

// Update updates a package
func (s *packageService) Update(ctx context.Context, id string, req *dto.UpdatePackageRequest) (*dto.PackageResponse, error) {
	if valid, msg := req.Validate(); !valid {
		return nil, errors.New(msg)
	}

	pkg, err := s.packageRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, ErrPackageNotFound
	}

	if req.Amount != nil {
		pkg.Amount = *req.Amount
	}
	if req.PriceMultiplier != nil {
		pkg.PriceMultiplier = decimal.NewFromFloat(*req.PriceMultiplier)
	}
	if req.FixedPrice != nil {
		price, err := decimal.NewFromString(*req.FixedPrice)
		if err != nil {
			return nil, err
		}
		pkg.FixedPrice = &price
	}
	if req.ClearFixedPrice {
		pkg.FixedPrice = nil
	}
	if req.DiscountPercentage != nil {
		pkg.DiscountPercentage = *req.DiscountPercentage
	}
	if req.BonusEntries != nil {
		pkg.BonusEntries = *req.BonusEntries
	}
	if req.Name != nil {
		pkg.Name = *req.Name
	}
	if req.BadgeText != nil {
		pkg.BadgeText = *req.BadgeText
	}
	if req.BadgeColor != nil {
		pkg.BadgeColor = *req.BadgeColor
	}
	if req.Gradient != nil {
		pkg.Gradient = *req.Gradient
	}
	if req.MultiplierLabel != nil {
		pkg.MultiplierLabel = req.MultiplierLabel
	}
	if req.DisplayOrder != nil {
		pkg.DisplayOrder = *req.DisplayOrder
	}
	if req.IsFeatured != nil {
		pkg.IsFeatured = *req.IsFeatured
	}
	if req.MaxPurchasesPerUser != nil {
		pkg.MaxPurchasesPerUser = req.MaxPurchasesPerUser
	}
	if req.StockLimit != nil {
		pkg.StockLimit = req.StockLimit
	}
	if req.AvailableFrom != nil {
		pkg.AvailableFrom = req.AvailableFrom
	}
	if req.AvailableUntil != nil {
		pkg.AvailableUntil = req.AvailableUntil
	}
	if req.IsActive != nil {
		pkg.IsActive = *req.IsActive
	}

	if err := s.packageRepo.Update(ctx, pkg); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, err
	}

	s.invalidateByRaffleID(ctx, pkg.RaffleID)
	return dto.FromPackage(pkg), nil
}

// Reorder applies new display positions to a batch of packages
func (s *packageService) Reorder(ctx context.Context, req *dto.ReorderPackagesRequest) error {
	if valid, msg := req.Validate(); !valid {
		return errors.New(msg)
	}

	orders := make([]repository.PackageOrder, 0, len(req.Packages))
	for _, p := range req.Packages {
		orders = append(orders, repository.PackageOrder{ID: p.ID, DisplayOrder: p.DisplayOrder})
	}

	if err := s.packageRepo.Reorder(ctx, orders); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrPackageNotFound
		}
		return err
	}

	if len(req.Packages) > 0 {
		if pkg, err := s.packageRepo.GetByID(ctx, req.Packages[0].ID); err == nil && pkg != nil {
			s.invalidateByRaffleID(ctx, pkg.RaffleID)
		}
	}
	return nil
}

// Delete soft deletes a package
func (s *packageService) Delete(ctx context.Context, id string) error {
	pkg, err := s.packageRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.packageRepo.SoftDelete(ctx, id); err != nil {
		return err
	}
	if pkg != nil {
		s.invalidateByRaffleID(ctx, pkg.RaffleID)
	}
	return nil
}

func (s *packageService) invalidate(ctx context.Context, raffleSlug string) {
	if s.catalog != nil {
		s.catalog.InvalidateCatalog(ctx, raffleSlug)
	}
}

func (s *packageService) invalidateByRaffleID(ctx context.Context, raffleID string) {
	if s.catalog == nil {
		return
	}
	raffle, err := s.raffleRepo.GetByID(ctx, raffleID)
	if err != nil || raffle == nil {
		return
	}
	s.catalog.InvalidateCatalog(ctx, raffle.Slug)
}
