package repository

import (
	"context"

	"github.com/sorteocloud/raffle-backend/internal/domain"
)

// TenantRepository defines the interface for tenant data access.
// Tenants live in a global collection shared across the platform.
type TenantRepository interface {
	// Create creates a new tenant
	Create(ctx context.Context, tenant *domain.Tenant) error
	// GetByID retrieves a tenant by ID
	GetByID(ctx context.Context, id string) (*domain.Tenant, error)
	// GetBySlug retrieves a tenant by slug
	GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error)
	// List retrieves tenants with pagination
	List(ctx context.Context, page, limit int) ([]*domain.Tenant, int64, error)
	// Update updates a tenant
	Update(ctx context.Context, tenant *domain.Tenant) error
	// SoftDelete soft deletes a tenant; deleting an already deleted
	// tenant is a no-op
	SoftDelete(ctx context.Context, id string) error
}
