package service

import (
	"context"

	"github.com/sorteocloud/raffle-backend/internal/domain"
	"github.com/sorteocloud/raffle-backend/internal/dto"
	"github.com/sorteocloud/raffle-backend/internal/repository"
)

// OrderService defines the admin view of orders
type OrderService interface {
	// GetByID retrieves an order by ID
	GetByID(ctx context.Context, id string) (*dto.OrderResponse, error)
	// List retrieves orders with pagination and an optional status filter
	List(ctx context.Context, page, limit int, status string) (*dto.OrderListResponse, error)
}

// orderService implements OrderService
type orderService struct {
	orderRepo repository.OrderRepository
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo repository.OrderRepository) OrderService {
	return &orderService{orderRepo: orderRepo}
}

// GetByID retrieves an order by ID
func (s *orderService) GetByID(ctx context.Context, id string) (*dto.OrderResponse, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return dto.FromOrder(order), nil
}

// List retrieves orders with pagination
func (s *orderService) List(ctx context.Context, page, limit int, status string) (*dto.OrderListResponse, error) {
	orders, total, err := s.orderRepo.List(ctx, page, limit, status)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, dto.FromOrder(o))
	}
	return &dto.OrderListResponse{Orders: out, Total: total, Page: page, Limit: limit}, nil
}
