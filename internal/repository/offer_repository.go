package repository

import (
	"context"

	"github.com/sorteocloud/raffle-backend/internal/domain"
)

// OfferRepository defines the interface for time-limited offer data access
type OfferRepository interface {
	// Create creates a new offer
	Create(ctx context.Context, offer *domain.TimeLimitedOffer) error
	// GetByID retrieves an offer by ID
	GetByID(ctx context.Context, id string) (*domain.TimeLimitedOffer, error)
	// ListByPackages retrieves all offers bound to any of the given packages
	ListByPackages(ctx context.Context, packageIDs []string) ([]*domain.TimeLimitedOffer, error)
	// ListByPackage retrieves all offers bound to one package
	ListByPackage(ctx context.Context, packageID string) ([]*domain.TimeLimitedOffer, error)
	// Update updates an offer
	Update(ctx context.Context, offer *domain.TimeLimitedOffer) error
	// Delete removes an offer
	Delete(ctx context.Context, id string) error
}
