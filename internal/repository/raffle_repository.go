package repository

import (
	"context"

	"github.com/sorteocloud/raffle-backend/internal/domain"
)

// RaffleRepository defines the interface for raffle data access
type RaffleRepository interface {
	// Create creates a new raffle
	Create(ctx context.Context, raffle *domain.Raffle) error
	// GetByID retrieves a raffle by ID
	GetByID(ctx context.Context, id string) (*domain.Raffle, error)
	// GetBySlug retrieves a raffle by slug
	GetBySlug(ctx context.Context, slug string) (*domain.Raffle, error)
	// List retrieves raffles with pagination and an optional status filter
	List(ctx context.Context, page, limit int, status string) ([]*domain.Raffle, int64, error)
	// Update updates a raffle
	Update(ctx context.Context, raffle *domain.Raffle) error
	// SoftDelete soft deletes a raffle; deleting an already deleted
	// raffle is a no-op
	SoftDelete(ctx context.Context, id string) error
}
