package repository

import (
	"context"
	"time"

	"github.com/sorteocloud/raffle-backend/internal/domain"
	"github.com/sorteocloud/raffle-backend/internal/store"
)

const providerCollection = "provider_configs"

// StoreProviderRepository implements ProviderRepository on a store.Client.
// Credential fields are translated to each provider's storage keys by the
// explicit field mapping table before they touch the row store.
type StoreProviderRepository struct {
	client store.Client
}

// NewStoreProviderRepository creates a new StoreProviderRepository
func NewStoreProviderRepository(client store.Client) *StoreProviderRepository {
	return &StoreProviderRepository{client: client}
}

func providerToRecord(cfg *domain.ProviderConfig) store.Record {
	return store.Record{
		"id":          cfg.ID,
		"tenant_id":   cfg.TenantID,
		"provider_id": cfg.ProviderID,
		"kind":        string(cfg.Kind),
		"credentials": credentialsToStorage(cfg),
		"is_default":  cfg.IsDefault,
		"is_active":   cfg.IsActive,
		"created_at":  cfg.CreatedAt,
		"updated_at":  cfg.UpdatedAt,
	}
}

func recordToProvider(rec store.Record) *domain.ProviderConfig {
	providerID := recString(rec, "provider_id")
	publicKey, secretKey, extra := credentialsFromStorage(providerID, recMap(rec, "credentials"))

	return &domain.ProviderConfig{
		ID:         recString(rec, "id"),
		TenantID:   recString(rec, "tenant_id"),
		ProviderID: providerID,
		Kind:       domain.ProviderKind(recString(rec, "kind")),
		PublicKey:  publicKey,
		SecretKey:  secretKey,
		Extra:      extra,
		IsDefault:  recBool(rec, "is_default"),
		IsActive:   recBool(rec, "is_active"),
		CreatedAt:  recTime(rec, "created_at"),
		UpdatedAt:  recTime(rec, "updated_at"),
	}
}

// Create creates a new provider config
func (r *StoreProviderRepository) Create(ctx context.Context, cfg *domain.ProviderConfig) error {
	return r.client.Insert(ctx, providerCollection, providerToRecord(cfg))
}

// GetByID retrieves a provider config by ID
func (r *StoreProviderRepository) GetByID(ctx context.Context, id string) (*domain.ProviderConfig, error) {
	q := store.Query{Limit: 1}.Where(store.Eq("id", id))
	recs, err := r.client.Select(ctx, providerCollection, q)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return recordToProvider(recs[0]), nil
}

// GetDefault retrieves the tenant's default active config of a kind
func (r *StoreProviderRepository) GetDefault(ctx context.Context, kind domain.ProviderKind) (*domain.ProviderConfig, error) {
	q := store.Query{Limit: 1}.Where(
		store.Eq("kind", string(kind)),
		store.Eq("is_default", true),
		store.Eq("is_active", true),
	)
	recs, err := r.client.Select(ctx, providerCollection, q)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return recordToProvider(recs[0]), nil
}

// GetByProvider retrieves the tenant's active config for a specific provider
func (r *StoreProviderRepository) GetByProvider(ctx context.Context, providerID string, kind domain.ProviderKind) (*domain.ProviderConfig, error) {
	q := store.Query{Limit: 1}.Where(
		store.Eq("provider_id", providerID),
		store.Eq("kind", string(kind)),
		store.Eq("is_active", true),
	)
	recs, err := r.client.Select(ctx, providerCollection, q)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return recordToProvider(recs[0]), nil
}

// List retrieves all provider configs of the tenant
func (r *StoreProviderRepository) List(ctx context.Context) ([]*domain.ProviderConfig, error) {
	q := store.Query{}.SortBy("created_at", false)
	recs, err := r.client.Select(ctx, providerCollection, q)
	if err != nil {
		return nil, err
	}

	configs := make([]*domain.ProviderConfig, 0, len(recs))
	for _, rec := range recs {
		configs = append(configs, recordToProvider(rec))
	}
	return configs, nil
}

// Update updates a provider config
func (r *StoreProviderRepository) Update(ctx context.Context, cfg *domain.ProviderConfig) error {
	cfg.UpdatedAt = time.Now()
	rec := providerToRecord(cfg)
	delete(rec, "id")
	delete(rec, "tenant_id")
	delete(rec, "created_at")

	q := store.Query{}.Where(store.Eq("id", cfg.ID))
	affected, err := r.client.Update(ctx, providerCollection, q, rec)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a provider config
func (r *StoreProviderRepository) Delete(ctx context.Context, id string) error {
	q := store.Query{}.Where(store.Eq("id", id))
	affected, err := r.client.Delete(ctx, providerCollection, q)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
