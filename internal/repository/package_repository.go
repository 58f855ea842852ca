package repository

import (
	"context"

	"github.com/sorteocloud/raffle-backend/internal/domain"
)

// PackageOrder pairs a package ID with its new display position
type PackageOrder struct {
	ID           string
	DisplayOrder int
}

// PackageRepository defines the interface for ticket package data access
type PackageRepository interface {
	// Create creates a new ticket package
	Create(ctx context.Context, pkg *domain.TicketPackage) error
	// GetByID retrieves a package by ID
	GetByID(ctx context.Context, id string) (*domain.TicketPackage, error)
	// ListByRaffle retrieves the packages of a raffle ordered by display
	// position. When includeInactive is false only active packages are
	// returned; soft deleted packages are never returned.
	ListByRaffle(ctx context.Context, raffleID string, includeInactive bool) ([]*domain.TicketPackage, error)
	// Update updates a package
	Update(ctx context.Context, pkg *domain.TicketPackage) error
	// Reorder applies new display positions to a batch of packages
	Reorder(ctx context.Context, orders []PackageOrder) error
	// ConsumeStock atomically takes one unit of a stock-limited package.
	// Returns domain.ErrSoldOut when no stock remains. Packages without a
	// stock limit always succeed.
	ConsumeStock(ctx context.Context, id string) error
	// ReleaseStock returns one previously taken unit of a stock-limited
	// package. Releasing at zero is a no-op; packages without a stock
	// limit always succeed.
	ReleaseStock(ctx context.Context, id string) error
	// SoftDelete soft deletes a package; deleting an already deleted
	// package is a no-op
	SoftDelete(ctx context.Context, id string) error
}
