package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/sorteocloud/raffle-backend/internal/domain"
	"github.com/sorteocloud/raffle-backend/internal/dto"
	"github.com/sorteocloud/raffle-backend/internal/repository"
	"github.com/sorteocloud/raffle-backend/internal/tenancy"
)

var (
	ErrProviderNotFound = errors.New("provider config not found")
)

// ProviderService defines the interface for provider credential management
type ProviderService interface {
	// Create registers provider credentials for the tenant
	Create(ctx context.Context, req *dto.CreateProviderConfigRequest) (*dto.ProviderConfigResponse, error)
	// GetByID retrieves a provider config by ID
	GetByID(ctx context.Context, id string) (*dto.ProviderConfigResponse, error)
	// List retrieves all provider configs of the tenant
	List(ctx context.Context) (*dto.ProviderConfigListResponse, error)
	// Update updates provider credentials
	Update(ctx context.Context, id string, req *dto.UpdateProviderConfigRequest) (*dto.ProviderConfigResponse, error)
	// Delete removes a provider config
	Delete(ctx context.Context, id string) error
}

// providerService implements ProviderService
type providerService struct {
	providerRepo repository.ProviderRepository
}

// NewProviderService creates a new ProviderService
func NewProviderService(providerRepo repository.ProviderRepository) ProviderService {
	return &providerService{providerRepo: providerRepo}
}

// Create registers provider credentials for the tenant
func (s *providerService) Create(ctx context.Context, req *dto.CreateProviderConfigRequest) (*dto.ProviderConfigResponse, error) {
	if valid, msg := req.Validate(); !valid {
		return nil, errors.New(msg)
	}

	var tenantID string
	if scope, ok := tenancy.FromContext(ctx); ok && scope.TenantID != nil {
		tenantID = *scope.TenantID
	}

	now := time.Now()
	cfg := &domain.ProviderConfig{
		ID:         uuid.New().String(),
		TenantID:   tenantID,
		ProviderID: req.ProviderID,
		Kind:       domain.ProviderKind(req.Kind),
		PublicKey:  req.PublicKey,
		SecretKey:  req.SecretKey,
		Extra:      req.Extra,
		IsDefault:  req.IsDefault,
		IsActive:   req.IsActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if cfg.IsDefault {
		if err := s.clearDefault(ctx, cfg.Kind); err != nil {
			return nil, err
		}
	}

	if err := s.providerRepo.Create(ctx, cfg); err != nil {
		return nil, err
	}
	return dto.FromProviderConfig(cfg), nil
}

// GetByID retrieves a provider config by ID
func (s *providerService) GetByID(ctx context.Context, id string) (*dto.ProviderConfigResponse, error) {
	cfg, err := s.providerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, ErrProviderNotFound
	}
	return dto.FromProviderConfig(cfg), nil
}

// List retrieves all provider configs of the tenant
func (s *providerService) List(ctx context.Context) (*dto.ProviderConfigListResponse, error) {
	configs, err := s.providerRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.ProviderConfigResponse, 0, len(configs))
	for _, cfg := range configs {
		out = append(out, dto.FromProviderConfig(cfg))
	}
	return &dto.ProviderConfigListResponse{Providers: out, Total: len(out)}, nil
}

// Update updates provider credentials
func (s *providerService) Update(ctx context.Context, id string, req *dto.UpdateProviderConfigRequest) (*dto.ProviderConfigResponse, error) {
	if valid, msg := req.Validate(); !valid {
		return nil, errors.New(msg)
	}

	cfg, err := s.providerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, ErrProviderNotFound
	}

	if req.PublicKey != nil {
		cfg.PublicKey = *req.PublicKey
	}
	if req.SecretKey != nil {
		cfg.SecretKey = *req.SecretKey
	}
	if req.Extra != nil {
		cfg.Extra = req.Extra
	}
	if req.IsActive != nil {
		cfg.IsActive = *req.IsActive
	}
	if req.IsDefault != nil {
		if *req.IsDefault && !cfg.IsDefault {
			if err := s.clearDefault(ctx, cfg.Kind); err != nil {
				return nil, err
			}
		}
		cfg.IsDefault = *req.IsDefault
	}

	if err := s.providerRepo.Update(ctx, cfg); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrProviderNotFound
		}
		return nil, err
	}
	return dto.FromProviderConfig(cfg), nil
}

// Delete removes a provider config
func (s *providerService) Delete(ctx context.Context, id string) error {
	if err := s.providerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrProviderNotFound
		}
		return err
	}
	return nil
}

// clearDefault unsets the current default of a kind so only one config
// is ever the default
func (s *providerService) clearDefault(ctx context.Context, kind domain.ProviderKind) error {
	current, err := s.providerRepo.GetDefault(ctx, kind)
	if err != nil {
		return err
	}
	if current == nil {
		return nil
	}
	current.IsDefault = false
	return s.providerRepo.Update(ctx, current)
}
