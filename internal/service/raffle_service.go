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
	ErrRaffleSlugTaken = errors.New("raffle with this slug already exists")
)

// RaffleService defines the interface for raffle management operations
type RaffleService interface {
	// Create creates a new raffle in draft status
	Create(ctx context.Context, req *dto.CreateRaffleRequest) (*dto.RaffleResponse, error)
	// GetByID retrieves a raffle by ID
	GetByID(ctx context.Context, id string) (*dto.RaffleResponse, error)
	// List retrieves raffles with pagination and an optional status filter
	List(ctx context.Context, page, limit int, status string) (*dto.RaffleListResponse, error)
	// Update updates a raffle
	Update(ctx context.Context, id string, req *dto.UpdateRaffleRequest) (*dto.RaffleResponse, error)
	// Delete soft deletes a raffle; deleting an already deleted raffle
	// succeeds without effect
	Delete(ctx context.Context, id string) error
}

// raffleService implements RaffleService
type raffleService struct {
	raffleRepo repository.RaffleRepository
}

// NewRaffleService creates a new RaffleService
func NewRaffleService(raffleRepo repository.RaffleRepository) RaffleService {
	return &raffleService{raffleRepo: raffleRepo}
}

// Create creates a new raffle in draft status
func (s *raffleService) Create(ctx context.Context, req *dto.CreateRaffleRequest) (*dto.RaffleResponse, error) {
	if valid, msg := req.Validate(); !valid {
		return nil, errors.New(msg)
	}

	existing, err := s.raffleRepo.GetBySlug(ctx, req.Slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrRaffleSlugTaken
	}

	price, err := decimal.NewFromString(req.BaseTicketPrice)
	if err != nil {
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	var tenantID string
	if scope, ok := tenancy.FromContext(ctx); ok && scope.TenantID != nil {
		tenantID = *scope.TenantID
	}

	now := time.Now()
	raffle := &domain.Raffle{
		ID:              uuid.New().String(),
		TenantID:        tenantID,
		Name:            req.Name,
		Slug:            req.Slug,
		Description:     req.Description,
		BannerURL:       req.BannerURL,
		BaseTicketPrice: price,
		Currency:        currency,
		TotalEntries:    req.TotalEntries,
		DrawDate:        req.DrawDate,
		Status:          domain.RaffleStatusDraft,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.raffleRepo.Create(ctx, raffle); err != nil {
		return nil, err
	}
	return dto.FromRaffle(raffle), nil
}

// GetByID retrieves a raffle by ID
func (s *raffleService) GetByID(ctx context.Context, id string) (*dto.RaffleResponse, error) {
	raffle, err := s.raffleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if raffle == nil {
		return nil, ErrRaffleNotFound
	}
	return dto.FromRaffle(raffle), nil
}

// List retrieves raffles with pagination
func (s *raffleService) List(ctx context.Context, page, limit int, status string) (*dto.RaffleListResponse, error) {
	raffles, total, err := s.raffleRepo.List(ctx, page, limit, status)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.RaffleResponse, 0, len(raffles))
	for _, r := range raffles {
		out = append(out, dto.FromRaffle(r))
	}
	return &dto.RaffleListResponse{Raffles: out, Total: total, Page: page, Limit: limit}, nil
}

// Update updates a raffle
func (s *raffleService) Update(ctx context.Context, id string, req *dto.UpdateRaffleRequest) (*dto.RaffleResponse, error) {
	if valid, msg := req.Validate(); !valid {
		return nil, errors.New(msg)
	}

	raffle, err := s.raffleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if raffle == nil {
		return nil, ErrRaffleNotFound
	}

	if req.Name != nil {
		raffle.Name = *req.Name
	}
	if req.Description != nil {
		raffle.Description = *req.Description
	}
	if req.BannerURL != nil {
		raffle.BannerURL = *req.BannerURL
	}
	if req.BaseTicketPrice != nil {
		price, err := decimal.NewFromString(*req.BaseTicketPrice)
		if err != nil {
			return nil, err
		}
		raffle.BaseTicketPrice = price
	}
	if req.Currency != nil {
		raffle.Currency = *req.Currency
	}
	if req.TotalEntries != nil {
		raffle.TotalEntries = *req.TotalEntries
	}
	if req.DrawDate != nil {
		raffle.DrawDate = req.DrawDate
	}
	if req.Status != nil {
		raffle.Status = *req.Status
	}
	if req.IsActive != nil {
		raffle.IsActive = *req.IsActive
	}

	if err := s.raffleRepo.Update(ctx, raffle); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrRaffleNotFound
		}
		return nil, err
	}
	return dto.FromRaffle(raffle), nil
}

// Delete soft deletes a raffle
func (s *raffleService) Delete(ctx context.Context, id string) error {
	return s.raffleRepo.SoftDelete(ctx, id)
}
