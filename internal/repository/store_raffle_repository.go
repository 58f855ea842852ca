package repository

import (
	"context"
	"time"

	"github.com/sorteocloud/raffle-backend/internal/domain"
	"github.com/sorteocloud/raffle-backend/internal/store"
)

const raffleCollection = "raffles"

// StoreRaffleRepository implements RaffleRepository on a store.Client
type StoreRaffleRepository struct {
	client store.Client
}

// NewStoreRaffleRepository creates a new StoreRaffleRepository
func NewStoreRaffleRepository(client store.Client) *StoreRaffleRepository {
	return &StoreRaffleRepository{client: client}
}

func raffleToRecord(r *domain.Raffle) store.Record {
	return store.Record{
		"id":                r.ID,
		"tenant_id":         r.TenantID,
		"name":              r.Name,
		"slug":              r.Slug,
		"description":       r.Description,
		"banner_url":        r.BannerURL,
		"base_ticket_price": numericString(r.BaseTicketPrice),
		"currency":          r.Currency,
		"total_entries":     r.TotalEntries,
		"draw_date":         nullable(r.DrawDate),
		"status":            r.Status,
		"is_active":         r.IsActive,
		"created_at":        r.CreatedAt,
		"updated_at":        r.UpdatedAt,
	}
}

func recordToRaffle(rec store.Record) *domain.Raffle {
	return &domain.Raffle{
		ID:              recString(rec, "id"),
		TenantID:        recString(rec, "tenant_id"),
		Name:            recString(rec, "name"),
		Slug:            recString(rec, "slug"),
		Description:     recString(rec, "description"),
		BannerURL:       recString(rec, "banner_url"),
		BaseTicketPrice: recDecimal(rec, "base_ticket_price"),
		Currency:        recString(rec, "currency"),
		TotalEntries:    recInt(rec, "total_entries"),
		DrawDate:        recTimePtr(rec, "draw_date"),
		Status:          recString(rec, "status"),
		IsActive:        recBool(rec, "is_active"),
		CreatedAt:       recTime(rec, "created_at"),
		UpdatedAt:       recTime(rec, "updated_at"),
		DeletedAt:       recTimePtr(rec, "deleted_at"),
	}
}

// Create creates a new raffle
func (r *StoreRaffleRepository) Create(ctx context.Context, raffle *domain.Raffle) error {
	return r.client.Insert(ctx, raffleCollection, raffleToRecord(raffle))
}

// GetByID retrieves a raffle by ID
func (r *StoreRaffleRepository) GetByID(ctx context.Context, id string) (*domain.Raffle, error) {
	q := store.Query{Limit: 1}.Where(store.Eq("id", id), store.IsNull("deleted_at"))
	recs, err := r.client.Select(ctx, raffleCollection, q)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return recordToRaffle(recs[0]), nil
}

// GetBySlug retrieves a raffle by slug
func (r *StoreRaffleRepository) GetBySlug(ctx context.Context, slug string) (*domain.Raffle, error) {
	q := store.Query{Limit: 1}.Where(store.Eq("slug", slug), store.IsNull("deleted_at"))
	recs, err := r.client.Select(ctx, raffleCollection, q)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return recordToRaffle(recs[0]), nil
}

// List retrieves raffles with pagination and an optional status filter
func (r *StoreRaffleRepository) List(ctx context.Context, page, limit int, status string) ([]*domain.Raffle, int64, error) {
	q := store.Query{}.Where(store.IsNull("deleted_at"))
	if status != "" {
		q = q.Where(store.Eq("status", status))
	}

	total, err := r.client.Count(ctx, raffleCollection, q)
	if err != nil {
		return nil, 0, err
	}

	q = pageQuery(q.SortBy("created_at", true), page, limit)
	recs, err := r.client.Select(ctx, raffleCollection, q)
	if err != nil {
		return nil, 0, err
	}

	raffles := make([]*domain.Raffle, 0, len(recs))
	for _, rec := range recs {
		raffles = append(raffles, recordToRaffle(rec))
	}
	return raffles, total, nil
}

// Update updates a raffle
func (r *StoreRaffleRepository) Update(ctx context.Context, raffle *domain.Raffle) error {
	raffle.UpdatedAt = time.Now()
	rec := raffleToRecord(raffle)
	delete(rec, "id")
	delete(rec, "tenant_id")
	delete(rec, "created_at")

	q := store.Query{}.Where(store.Eq("id", raffle.ID), store.IsNull("deleted_at"))
	affected, err := r.client.Update(ctx, raffleCollection, q, rec)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDelete soft deletes a raffle. Deleting a raffle that is already
// deleted or absent succeeds without effect.
func (r *StoreRaffleRepository) SoftDelete(ctx context.Context, id string) error {
	q := store.Query{}.Where(store.Eq("id", id), store.IsNull("deleted_at"))
	_, err := r.client.Update(ctx, raffleCollection, q, store.Record{"deleted_at": time.Now()})
	return err
}
