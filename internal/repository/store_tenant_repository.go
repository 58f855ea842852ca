package repository

import (
	"context"
	"time"

	"github.com/sorteocloud/raffle-backend/internal/domain"
	"github.com/sorteocloud/raffle-backend/internal/store"
)

const tenantCollection = "tenants"

// StoreTenantRepository implements TenantRepository on a store.Client
type StoreTenantRepository struct {
	client store.Client
}

// NewStoreTenantRepository creates a new StoreTenantRepository
func NewStoreTenantRepository(client store.Client) *StoreTenantRepository {
	return &StoreTenantRepository{client: client}
}

func tenantToRecord(t *domain.Tenant) store.Record {
	return store.Record{
		"id":         t.ID,
		"name":       t.Name,
		"slug":       t.Slug,
		"domain":     t.Domain,
		"logo_url":   t.LogoURL,
		"settings":   t.Settings,
		"is_active":  t.IsActive,
		"created_at": t.CreatedAt,
		"updated_at": t.UpdatedAt,
	}
}

func recordToTenant(rec store.Record) *domain.Tenant {
	return &domain.Tenant{
		ID:        recString(rec, "id"),
		Name:      recString(rec, "name"),
		Slug:      recString(rec, "slug"),
		Domain:    recString(rec, "domain"),
		LogoURL:   recString(rec, "logo_url"),
		Settings:  recMap(rec, "settings"),
		IsActive:  recBool(rec, "is_active"),
		CreatedAt: recTime(rec, "created_at"),
		UpdatedAt: recTime(rec, "updated_at"),
		DeletedAt: recTimePtr(rec, "deleted_at"),
	}
}

// Create creates a new tenant
func (r *StoreTenantRepository) Create(ctx context.Context, tenant *domain.Tenant) error {
	return r.client.Insert(ctx, tenantCollection, tenantToRecord(tenant))
}

// GetByID retrieves a tenant by ID
func (r *StoreTenantRepository) GetByID(ctx context.Context, id string) (*domain.Tenant, error) {
	q := store.Query{Limit: 1}.Where(store.Eq("id", id), store.IsNull("deleted_at"))
	recs, err := r.client.Select(ctx, tenantCollection, q)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return recordToTenant(recs[0]), nil
}

// GetBySlug retrieves a tenant by slug
func (r *StoreTenantRepository) GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error) {
	q := store.Query{Limit: 1}.Where(store.Eq("slug", slug), store.IsNull("deleted_at"))
	recs, err := r.client.Select(ctx, tenantCollection, q)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return recordToTenant(recs[0]), nil
}

// List retrieves tenants with pagination
func (r *StoreTenantRepository) List(ctx context.Context, page, limit int) ([]*domain.Tenant, int64, error) {
	q := store.Query{}.Where(store.IsNull("deleted_at"))

	total, err := r.client.Count(ctx, tenantCollection, q)
	if err != nil {
		return nil, 0, err
	}

	q = pageQuery(q.SortBy("created_at", true), page, limit)
	recs, err := r.client.Select(ctx, tenantCollection, q)
	if err != nil {
		return nil, 0, err
	}

	tenants := make([]*domain.Tenant, 0, len(recs))
	for _, rec := range recs {
		tenants = append(tenants, recordToTenant(rec))
	}
	return tenants, total, nil
}

// Update updates a tenant
func (r *StoreTenantRepository) Update(ctx context.Context, tenant *domain.Tenant) error {
	tenant.UpdatedAt = time.Now()
	rec := tenantToRecord(tenant)
	delete(rec, "id")
	delete(rec, "slug")
	delete(rec, "created_at")

	q := store.Query{}.Where(store.Eq("id", tenant.ID), store.IsNull("deleted_at"))
	affected, err := r.client.Update(ctx, tenantCollection, q, rec)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDelete soft deletes a tenant. Deleting a tenant that is already
// deleted or absent succeeds without effect.
func (r *StoreTenantRepository) SoftDelete(ctx context.Context, id string) error {
	q := store.Query{}.Where(store.Eq("id", id), store.IsNull("deleted_at"))
	_, err := r.client.Update(ctx, tenantCollection, q, store.Record{"deleted_at": time.Now()})
	return err
}
