package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/sorteocloud/raffle-backend/internal/domain"
	"github.com/sorteocloud/raffle-backend/internal/store"
)

const packageCollection = "ticket_packages"

// consumeStockRetries bounds the optimistic stock-take loop under
// concurrent checkouts
const consumeStockRetries = 5

// StorePackageRepository implements PackageRepository on a store.Client
type StorePackageRepository struct {
	client store.Client
}

// NewStorePackageRepository creates a new StorePackageRepository
func NewStorePackageRepository(client store.Client) *StorePackageRepository {
	return &StorePackageRepository{client: client}
}

func packageToRecord(p *domain.TicketPackage) store.Record {
	return store.Record{
		"id":                     p.ID,
		"tenant_id":              p.TenantID,
		"raffle_id":              p.RaffleID,
		"amount":                 p.Amount,
		"price_multiplier":       numericString(p.PriceMultiplier),
		"fixed_price":            nullable(p.FixedPrice),
		"discount_percentage":    p.DiscountPercentage,
		"bonus_entries":          p.BonusEntries,
		"name":                   p.Name,
		"badge_text":             p.BadgeText,
		"badge_color":            p.BadgeColor,
		"gradient":               p.Gradient,
		"multiplier_label":       nullable(p.MultiplierLabel),
		"display_order":          p.DisplayOrder,
		"is_featured":            p.IsFeatured,
		"max_purchases_per_user": nullable(p.MaxPurchasesPerUser),
		"stock_limit":            nullable(p.StockLimit),
		"current_stock":          p.CurrentStock,
		"available_from":         nullable(p.AvailableFrom),
		"available_until":        nullable(p.AvailableUntil),
		"is_active":              p.IsActive,
		"created_at":             p.CreatedAt,
		"updated_at":             p.UpdatedAt,
	}
}

func recordToPackage(rec store.Record) *domain.TicketPackage {
	return &domain.TicketPackage{
		ID:                  recString(rec, "id"),
		TenantID:            recString(rec, "tenant_id"),
		RaffleID:            recString(rec, "raffle_id"),
		Amount:              recInt(rec, "amount"),
		PriceMultiplier:     recDecimal(rec, "price_multiplier"),
		FixedPrice:          recDecimalPtr(rec, "fixed_price"),
		DiscountPercentage:  recFloat(rec, "discount_percentage"),
		BonusEntries:        recInt(rec, "bonus_entries"),
		Name:                recString(rec, "name"),
		BadgeText:           recString(rec, "badge_text"),
		BadgeColor:          recString(rec, "badge_color"),
		Gradient:            recString(rec, "gradient"),
		MultiplierLabel:     recStringPtr(rec, "multiplier_label"),
		DisplayOrder:        recInt(rec, "display_order"),
		IsFeatured:          recBool(rec, "is_featured"),
		MaxPurchasesPerUser: recIntPtr(rec, "max_purchases_per_user"),
		StockLimit:          recIntPtr(rec, "stock_limit"),
		CurrentStock:        recInt(rec, "current_stock"),
		AvailableFrom:       recTimePtr(rec, "available_from"),
		AvailableUntil:      recTimePtr(rec, "available_until"),
		IsActive:            recBool(rec, "is_active"),
		CreatedAt:           recTime(rec, "created_at"),
		UpdatedAt:           recTime(rec, "updated_at"),
		DeletedAt:           recTimePtr(rec, "deleted_at"),
	}
}

// Create creates a new ticket package
func (r *StorePackageRepository) Create(ctx context.Context, pkg *domain.TicketPackage) error {
	return r.client.Insert(ctx, packageCollection, packageToRecord(pkg))
}

// GetByID retrieves a package by ID
func (r *StorePackageRepository) GetByID(ctx context.Context, id string) (*domain.TicketPackage, error) {
	q := store.Query{Limit: 1}.Where(store.Eq("id", id), store.IsNull("deleted_at"))
	recs, err := r.client.Select(ctx, packageCollection, q)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return recordToPackage(recs[0]), nil
}

// ListByRaffle retrieves the packages of a raffle ordered by display position
func (r *StorePackageRepository) ListByRaffle(ctx context.Context, raffleID string, includeInactive bool) ([]*domain.TicketPackage, error) {
	q := store.Query{}.
		Where(store.Eq("raffle_id", raffleID), store.IsNull("deleted_at")).
		SortBy("display_order", false).
		SortBy("created_at", false)
	if !includeInactive {
		q = q.Where(store.Eq("is_active", true))
	}

	recs, err := r.client.Select(ctx, packageCollection, q)
	if err != nil {
		return nil, err
	}

	packages := make([]*domain.TicketPackage, 0, len(recs))
	for _, rec := range recs {
		packages = append(packages, recordToPackage(rec))
	}
	return packages, nil
}

// Update updates a package
func (r *StorePackageRepository) Update(ctx context.Context, pkg *domain.TicketPackage) error {
	pkg.UpdatedAt = time.Now()
	rec := packageToRecord(pkg)
	delete(rec, "id")
	delete(rec, "tenant_id")
	delete(rec, "raffle_id")
	delete(rec, "created_at")

	q := store.Query{}.Where(store.Eq("id", pkg.ID), store.IsNull("deleted_at"))
	affected, err := r.client.Update(ctx, packageCollection, q, rec)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Reorder applies new display positions to a batch of packages. Positions
// are written one by one; a missing package fails the batch.
func (r *StorePackageRepository) Reorder(ctx context.Context, orders []PackageOrder) error {
	now := time.Now()
	for _, o := range orders {
		q := store.Query{}.Where(store.Eq("id", o.ID), store.IsNull("deleted_at"))
		changes := store.Record{"display_order": o.DisplayOrder, "updated_at": now}
		affected, err := r.client.Update(ctx, packageCollection, q, changes)
		if err != nil {
			return err
		}
		if affected == 0 {
			return domain.ErrNotFound
		}
	}
	return nil
}

// ConsumeStock atomically takes one unit of a stock-limited package using
// an optimistic compare-and-set on current_stock
func (r *StorePackageRepository) ConsumeStock(ctx context.Context, id string) error {
	for attempt := 0; attempt < consumeStockRetries; attempt++ {
		pkg, err := r.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if pkg == nil {
			return domain.ErrNotFound
		}
		if pkg.StockLimit == nil {
			return nil
		}
		if pkg.CurrentStock >= *pkg.StockLimit {
			return domain.ErrSoldOut
		}

		q := store.Query{}.Where(
			store.Eq("id", id),
			store.Eq("current_stock", pkg.CurrentStock),
			store.IsNull("deleted_at"),
		)
		changes := store.Record{"current_stock": pkg.CurrentStock + 1, "updated_at": time.Now()}
		affected, err := r.client.Update(ctx, packageCollection, q, changes)
		if err != nil {
			return err
		}
		if affected > 0 {
			return nil
		}
		// Lost the race, re-read and try again
	}
	return domain.ErrSoldOut
}

// ReleaseStock returns one unit of a stock-limited package, mirroring the
// compare-and-set of ConsumeStock. Releasing at zero is a no-op so a
// repeated release cannot underflow the counter.
func (r *StorePackageRepository) ReleaseStock(ctx context.Context, id string) error {
	for attempt := 0; attempt < consumeStockRetries; attempt++ {
		pkg, err := r.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if pkg == nil {
			return domain.ErrNotFound
		}
		if pkg.StockLimit == nil {
			return nil
		}
		if pkg.CurrentStock <= 0 {
			return nil
		}

		q := store.Query{}.Where(
			store.Eq("id", id),
			store.Eq("current_stock", pkg.CurrentStock),
			store.IsNull("deleted_at"),
		)
		changes := store.Record{"current_stock": pkg.CurrentStock - 1, "updated_at": time.Now()}
		affected, err := r.client.Update(ctx, packageCollection, q, changes)
		if err != nil {
			return err
		}
		if affected > 0 {
			return nil
		}
	}
	return fmt.Errorf("release stock for package %s: retries exhausted", id)
}

// SoftDelete soft deletes a package. Deleting a package that is already
// deleted or absent succeeds without effect.
func (r *StorePackageRepository) SoftDelete(ctx context.Context, id string) error {
	q := store.Query{}.Where(store.Eq("id", id), store.IsNull("deleted_at"))
	_, err := r.client.Update(ctx, packageCollection, q, store.Record{"deleted_at": time.Now()})
	return err
}
