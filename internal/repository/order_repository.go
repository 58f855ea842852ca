package repository

import (
	"context"

	"github.com/sorteocloud/raffle-backend/internal/domain"
)

// OrderRepository defines the interface for order data access
type OrderRepository interface {
	// Create creates a new order
	Create(ctx context.Context, order *domain.Order) error
	// GetByID retrieves an order by ID
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	// List retrieves orders with pagination and an optional status filter
	List(ctx context.Context, page, limit int, status string) ([]*domain.Order, int64, error)
	// UpdateStatus moves an order to a new status, recording the
	// provider-side payment reference when given
	UpdateStatus(ctx context.Context, id, status, paymentRef string) error
	// CountByCustomerAndPackage counts non-cancelled orders a customer has
	// placed for one package, for per-user purchase limits
	CountByCustomerAndPackage(ctx context.Context, customerEmail, packageID string) (int64, error)
}
