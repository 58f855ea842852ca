package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/sorteocloud/raffle-backend/internal/domain"
	"github.com/sorteocloud/raffle-backend/internal/dto"
	"github.com/sorteocloud/raffle-backend/internal/repository"
)

var (
	ErrOfferNotFound = errors.New("offer not found")
)

// OfferService defines the interface for time-limited offer management
type OfferService interface {
	// Create creates a new offer bound to one package
	Create(ctx context.Context, req *dto.CreateOfferRequest) (*dto.OfferResponse, error)
	// GetByID retrieves an offer by ID
	GetByID(ctx context.Context, id string) (*dto.OfferResponse, error)
	// ListByPackage retrieves all offers of one package
	ListByPackage(ctx context.Context, packageID string) (*dto.OfferListResponse, error)
	// Update updates an offer; only fields present in the request change
	Update(ctx context.Context, id string, req *dto.UpdateOfferRequest) (*dto.OfferResponse, error)
	// Delete removes an offer
	Delete(ctx context.Context, id string) error
}

// offerService implements OfferService
type offerService struct {
	offerRepo   repository.OfferRepository
	packageRepo repository.PackageRepository
	raffleRepo  repository.RaffleRepository
	catalog     CatalogService
}

// NewOfferService creates a new OfferService
func NewOfferService(offerRepo repository.OfferRepository, packageRepo repository.PackageRepository, raffleRepo repository.RaffleRepository, catalog CatalogService) OfferService {
	return &offerService{
		offerRepo:   offerRepo,
		packageRepo: packageRepo,
		raffleRepo:  raffleRepo,
		catalog:     catalog,
	}
}

// Create creates a new offer bound to one package
func (s *offerService) Create(ctx context.Context, req *dto.CreateOfferRequest) (*dto.OfferResponse, error) {
	if valid, msg := req.Validate(); !valid {
		return nil, errors.New(msg)
	}

	pkg, err := s.packageRepo.GetByID(ctx, req.TicketPackageID)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, ErrPackageNotFound
	}

	now := time.Now()
	offer := &domain.TimeLimitedOffer{
		ID:                        uuid.New().String(),
		TicketPackageID:           req.TicketPackageID,
		StartDate:                 req.StartDate,
		EndDate:                   req.EndDate,
		SpecialDiscountPercentage: req.SpecialDiscountPercentage,
		SpecialBonusEntries:       req.SpecialBonusEntries,
		BadgeText:                 req.BadgeText,
		BadgeColor:                req.BadgeColor,
		Gradient:                  req.Gradient,
		StockLimit:                req.StockLimit,
		IsActive:                  req.IsActive,
		CreatedAt:                 now,
		UpdatedAt:                 now,
	}

	if err := s.offerRepo.Create(ctx, offer); err != nil {
		return nil, err
	}

	s.invalidate(ctx, pkg.RaffleID)
	return dto.FromOffer(offer), nil
}

// GetByID retrieves an offer by ID
func (s *offerService) GetByID(ctx context.Context, id string) (*dto.OfferResponse, error) {
	offer, err := s.offerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if offer == nil {
		return nil, ErrOfferNotFound
	}
	return dto.FromOffer(offer), nil
}

// ListByPackage retrieves all offers of one package
func (s *offerService) ListByPackage(ctx context.Context, packageID string) (*dto.OfferListResponse, error) {
	offers, err := s.offerRepo.ListByPackage(ctx, packageID)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.OfferResponse, 0, len(offers))
	for _, o := range offers {
		out = append(out, dto.FromOffer(o))
	}
	return &dto.OfferListResponse{Offers: out, Total: len(out)}, nil
}

// Update updates an offer
func (s *offerService) Update(ctx context.Context, id string, req *dto.UpdateOfferRequest) (*dto.OfferResponse, error) {
	if valid, msg := req.Validate(); !valid {
		return nil, errors.New(msg)
	}

	offer, err := s.offerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if offer == nil {
		return nil, ErrOfferNotFound
	}

	if req.StartDate != nil {
		offer.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		offer.EndDate = *req.EndDate
	}
	if offer.EndDate.Before(offer.StartDate) {
		return nil, errors.New("End date must be after start date")
	}
	if req.SpecialDiscountPercentage != nil {
		offer.SpecialDiscountPercentage = *req.SpecialDiscountPercentage
	}
	if req.SpecialBonusEntries != nil {
		offer.SpecialBonusEntries = *req.SpecialBonusEntries
	}
	if req.BadgeText != nil {
		offer.BadgeText = *req.BadgeText
	}
	if req.BadgeColor != nil {
		offer.BadgeColor = *req.BadgeColor
	}
	if req.Gradient != nil {
		offer.Gradient = *req.Gradient
	}
	if req.StockLimit != nil {
		offer.StockLimit = req.StockLimit
	}
	if req.IsActive != nil {
		offer.IsActive = *req.IsActive
	}

	if err := s.offerRepo.Update(ctx, offer); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrOfferNotFound
		}
		return nil, err
	}

	if pkg, err := s.packageRepo.GetByID(ctx, offer.TicketPackageID); err == nil && pkg != nil {
		s.invalidate(ctx, pkg.RaffleID)
	}
	return dto.FromOffer(offer), nil
}

// Delete removes an offer
func (s *offerService) Delete(ctx context.Context, id string) error {
	offer, err := s.offerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if offer == nil {
		return ErrOfferNotFound
	}

	if err := s.offerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrOfferNotFound
		}
		return err
	}

	if pkg, err := s.packageRepo.GetByID(ctx, offer.TicketPackageID); err == nil && pkg != nil {
		s.invalidate(ctx, pkg.RaffleID)
	}
	return nil
}

func (s *offerService) invalidate(ctx context.Context, raffleID string) {
	if s.catalog == nil {
		return
	}
	raffle, err := s.raffleRepo.GetByID(ctx, raffleID)
	if err != nil || raffle == nil {
		return
	}
	s.catalog.InvalidateCatalog(ctx, raffle.Slug)
}
