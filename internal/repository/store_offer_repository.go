package repository

import (
	"context"
	"time"

	"github.com/sorteocloud/raffle-backend/internal/domain"
	"github.com/sorteocloud/raffle-backend/internal/store"
)

const offerCollection = "time_limited_offers"

// StoreOfferRepository implements OfferRepository on a store.Client.
// Offers carry no tenant column; the guard scopes them through their
// parent package.
type StoreOfferRepository struct {
	client store.Client
}

// NewStoreOfferRepository creates a new StoreOfferRepository
func NewStoreOfferRepository(client store.Client) *StoreOfferRepository {
	return &StoreOfferRepository{client: client}
}

func offerToRecord(o *domain.TimeLimitedOffer) store.Record {
	return store.Record{
		"id":                          o.ID,
		"ticket_package_id":           o.TicketPackageID,
		"start_date":                  o.StartDate,
		"end_date":                    o.EndDate,
		"special_discount_percentage": o.SpecialDiscountPercentage,
		"special_bonus_entries":       o.SpecialBonusEntries,
		"badge_text":                  o.BadgeText,
		"badge_color":                 o.BadgeColor,
		"gradient":                    o.Gradient,
		"stock_limit":                 nullable(o.StockLimit),
		"is_active":                   o.IsActive,
		"created_at":                  o.CreatedAt,
		"updated_at":                  o.UpdatedAt,
	}
}

func recordToOffer(rec store.Record) *domain.TimeLimitedOffer {
	return &domain.TimeLimitedOffer{
		ID:                        recString(rec, "id"),
		TicketPackageID:           recString(rec, "ticket_package_id"),
		StartDate:                 recTime(rec, "start_date"),
		EndDate:                   recTime(rec, "end_date"),
		SpecialDiscountPercentage: recFloat(rec, "special_discount_percentage"),
		SpecialBonusEntries:       recInt(rec, "special_bonus_entries"),
		BadgeText:                 recString(rec, "badge_text"),
		BadgeColor:                recString(rec, "badge_color"),
		Gradient:                  recString(rec, "gradient"),
		StockLimit:                recIntPtr(rec, "stock_limit"),
		IsActive:                  recBool(rec, "is_active"),
		CreatedAt:                 recTime(rec, "created_at"),
		UpdatedAt:                 recTime(rec, "updated_at"),
	}
}

// Create creates a new offer
func (r *StoreOfferRepository) Create(ctx context.Context, offer *domain.TimeLimitedOffer) error {
	return r.client.Insert(ctx, offerCollection, offerToRecord(offer))
}

// GetByID retrieves an offer by ID
func (r *StoreOfferRepository) GetByID(ctx context.Context, id string) (*domain.TimeLimitedOffer, error) {
	q := store.Query{Limit: 1}.Where(store.Eq("id", id))
	recs, err := r.client.Select(ctx, offerCollection, q)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return recordToOffer(recs[0]), nil
}

// ListByPackages retrieves all offers bound to any of the given packages
func (r *StoreOfferRepository) ListByPackages(ctx context.Context, packageIDs []string) ([]*domain.TimeLimitedOffer, error) {
	if len(packageIDs) == 0 {
		return []*domain.TimeLimitedOffer{}, nil
	}

	q := store.Query{}.
		Where(store.In("ticket_package_id", packageIDs)).
		SortBy("created_at", false)
	recs, err := r.client.Select(ctx, offerCollection, q)
	if err != nil {
		return nil, err
	}

	offers := make([]*domain.TimeLimitedOffer, 0, len(recs))
	for _, rec := range recs {
		offers = append(offers, recordToOffer(rec))
	}
	return offers, nil
}

// ListByPackage retrieves all offers bound to one package
func (r *StoreOfferRepository) ListByPackage(ctx context.Context, packageID string) ([]*domain.TimeLimitedOffer, error) {
	return r.ListByPackages(ctx, []string{packageID})
}

// Update updates an offer
func (r *StoreOfferRepository) Update(ctx context.Context, offer *domain.TimeLimitedOffer) error {
	offer.UpdatedAt = time.Now()
	rec := offerToRecord(offer)
	delete(rec, "id")
	delete(rec, "ticket_package_id")
	delete(rec, "created_at")

	q := store.Query{}.Where(store.Eq("id", offer.ID))
	affected, err := r.client.Update(ctx, offerCollection, q, rec)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes an offer
func (r *StoreOfferRepository) Delete(ctx context.Context, id string) error {
	q := store.Query{}.Where(store.Eq("id", id))
	affected, err := r.client.Delete(ctx, offerCollection, q)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
