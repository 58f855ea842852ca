package repository

import (
	"context"
	"time"

	"github.com/sorteocloud/raffle-backend/internal/domain"
	"github.com/sorteocloud/raffle-backend/internal/store"
)

const referralCollection = "referrals"

// StoreReferralRepository implements ReferralRepository on a store.Client
type StoreReferralRepository struct {
	client store.Client
}

// NewStoreReferralRepository creates a new StoreReferralRepository
func NewStoreReferralRepository(client store.Client) *StoreReferralRepository {
	return &StoreReferralRepository{client: client}
}

func referralToRecord(ref *domain.Referral) store.Record {
	return store.Record{
		"id":          ref.ID,
		"tenant_id":   ref.TenantID,
		"raffle_id":   ref.RaffleID,
		"code":        ref.Code,
		"label":       ref.Label,
		"clicks":      ref.Clicks,
		"conversions": ref.Conversions,
		"is_active":   ref.IsActive,
		"created_at":  ref.CreatedAt,
		"updated_at":  ref.UpdatedAt,
	}
}

func recordToReferral(rec store.Record) *domain.Referral {
	return &domain.Referral{
		ID:          recString(rec, "id"),
		TenantID:    recString(rec, "tenant_id"),
		RaffleID:    recString(rec, "raffle_id"),
		Code:        recString(rec, "code"),
		Label:       recString(rec, "label"),
		Clicks:      recInt(rec, "clicks"),
		Conversions: recInt(rec, "conversions"),
		IsActive:    recBool(rec, "is_active"),
		CreatedAt:   recTime(rec, "created_at"),
		UpdatedAt:   recTime(rec, "updated_at"),
	}
}

// Create creates a new referral
func (r *StoreReferralRepository) Create(ctx context.Context, referral *domain.Referral) error {
	return r.client.Insert(ctx, referralCollection, referralToRecord(referral))
}

// GetByCode retrieves an active referral by code within a raffle
func (r *StoreReferralRepository) GetByCode(ctx context.Context, raffleID, code string) (*domain.Referral, error) {
	q := store.Query{Limit: 1}.Where(
		store.Eq("raffle_id", raffleID),
		store.Eq("code", code),
		store.Eq("is_active", true),
	)
	recs, err := r.client.Select(ctx, referralCollection, q)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return recordToReferral(recs[0]), nil
}

// ListByRaffle retrieves all referrals of a raffle
func (r *StoreReferralRepository) ListByRaffle(ctx context.Context, raffleID string) ([]*domain.Referral, error) {
	q := store.Query{}.Where(store.Eq("raffle_id", raffleID)).SortBy("created_at", false)
	recs, err := r.client.Select(ctx, referralCollection, q)
	if err != nil {
		return nil, err
	}

	referrals := make([]*domain.Referral, 0, len(recs))
	for _, rec := range recs {
		referrals = append(referrals, recordToReferral(rec))
	}
	return referrals, nil
}

// RecordClick increments the referral's click counter. Counters are
// advisory; a lost increment under concurrency is acceptable.
func (r *StoreReferralRepository) RecordClick(ctx context.Context, id string) error {
	return r.bump(ctx, id, "clicks")
}

// RecordConversion increments the referral's conversion counter
func (r *StoreReferralRepository) RecordConversion(ctx context.Context, id string) error {
	return r.bump(ctx, id, "conversions")
}

func (r *StoreReferralRepository) bump(ctx context.Context, id, column string) error {
	q := store.Query{Limit: 1}.Where(store.Eq("id", id))
	recs, err := r.client.Select(ctx, referralCollection, q)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		return domain.ErrNotFound
	}

	changes := store.Record{
		column:       recInt(recs[0], column) + 1,
		"updated_at": time.Now(),
	}
	_, err = r.client.Update(ctx, referralCollection, store.Query{}.Where(store.Eq("id", id)), changes)
	return err
}
