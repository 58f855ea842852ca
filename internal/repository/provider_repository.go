package repository

import (
	"context"

	"github.com/sorteocloud/raffle-backend/internal/domain"
)

// ProviderRepository defines the interface for provider config data access
type ProviderRepository interface {
	// Create creates a new provider config
	Create(ctx context.Context, cfg *domain.ProviderConfig) error
	// GetByID retrieves a provider config by ID
	GetByID(ctx context.Context, id string) (*domain.ProviderConfig, error)
	// GetDefault retrieves the tenant's default active config of a kind
	GetDefault(ctx context.Context, kind domain.ProviderKind) (*domain.ProviderConfig, error)
	// GetByProvider retrieves the tenant's active config for a specific
	// provider of a kind
	GetByProvider(ctx context.Context, providerID string, kind domain.ProviderKind) (*domain.ProviderConfig, error)
	// List retrieves all provider configs of the tenant
	List(ctx context.Context) ([]*domain.ProviderConfig, error)
	// Update updates a provider config
	Update(ctx context.Context, cfg *domain.ProviderConfig) error
	// Delete removes a provider config
	Delete(ctx context.Context, id string) error
}
