package repository

import (
	"context"
	"time"

	"github.com/sorteocloud/raffle-backend/internal/domain"
	"github.com/sorteocloud/raffle-backend/internal/store"
)

const orderCollection = "orders"

// StoreOrderRepository implements OrderRepository on a store.Client
type StoreOrderRepository struct {
	client store.Client
}

// NewStoreOrderRepository creates a new StoreOrderRepository
func NewStoreOrderRepository(client store.Client) *StoreOrderRepository {
	return &StoreOrderRepository{client: client}
}

func orderToRecord(o *domain.Order) store.Record {
	return store.Record{
		"id":                o.ID,
		"tenant_id":         o.TenantID,
		"raffle_id":         o.RaffleID,
		"ticket_package_id": o.TicketPackageID,
		"customer_email":    o.CustomerEmail,
		"customer_name":     o.CustomerName,
		"unit_price":        numericString(o.UnitPrice),
		"currency":          o.Currency,
		"entries_granted":   o.EntriesGranted,
		"referral_code":     o.ReferralCode,
		"payment_provider":  o.PaymentProvider,
		"payment_ref":       o.PaymentRef,
		"status":            o.Status,
		"created_at":        o.CreatedAt,
		"updated_at":        o.UpdatedAt,
	}
}

func recordToOrder(rec store.Record) *domain.Order {
	return &domain.Order{
		ID:              recString(rec, "id"),
		TenantID:        recString(rec, "tenant_id"),
		RaffleID:        recString(rec, "raffle_id"),
		TicketPackageID: recString(rec, "ticket_package_id"),
		CustomerEmail:   recString(rec, "customer_email"),
		CustomerName:    recString(rec, "customer_name"),
		UnitPrice:       recDecimal(rec, "unit_price"),
		Currency:        recString(rec, "currency"),
		EntriesGranted:  recInt(rec, "entries_granted"),
		ReferralCode:    recString(rec, "referral_code"),
		PaymentProvider: recString(rec, "payment_provider"),
		PaymentRef:      recString(rec, "payment_ref"),
		Status:          recString(rec, "status"),
		CreatedAt:       recTime(rec, "created_at"),
		UpdatedAt:       recTime(rec, "updated_at"),
	}
}

// Create creates a new order
func (r *StoreOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	return r.client.Insert(ctx, orderCollection, orderToRecord(order))
}

// GetByID retrieves an order by ID
func (r *StoreOrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	q := store.Query{Limit: 1}.Where(store.Eq("id", id))
	recs, err := r.client.Select(ctx, orderCollection, q)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return recordToOrder(recs[0]), nil
}

// List retrieves orders with pagination and an optional status filter
func (r *StoreOrderRepository) List(ctx context.Context, page, limit int, status string) ([]*domain.Order, int64, error) {
	q := store.Query{}
	if status != "" {
		q = q.Where(store.Eq("status", status))
	}

	total, err := r.client.Count(ctx, orderCollection, q)
	if err != nil {
		return nil, 0, err
	}

	q = pageQuery(q.SortBy("created_at", true), page, limit)
	recs, err := r.client.Select(ctx, orderCollection, q)
	if err != nil {
		return nil, 0, err
	}

	orders := make([]*domain.Order, 0, len(recs))
	for _, rec := range recs {
		orders = append(orders, recordToOrder(rec))
	}
	return orders, total, nil
}

// UpdateStatus moves an order to a new status
func (r *StoreOrderRepository) UpdateStatus(ctx context.Context, id, status, paymentRef string) error {
	changes := store.Record{"status": status, "updated_at": time.Now()}
	if paymentRef != "" {
		changes["payment_ref"] = paymentRef
	}

	q := store.Query{}.Where(store.Eq("id", id))
	affected, err := r.client.Update(ctx, orderCollection, q, changes)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountByCustomerAndPackage counts non-cancelled orders a customer has
// placed for one package
func (r *StoreOrderRepository) CountByCustomerAndPackage(ctx context.Context, customerEmail, packageID string) (int64, error) {
	q := store.Query{}.Where(
		store.Eq("customer_email", customerEmail),
		store.Eq("ticket_package_id", packageID),
		store.Neq("status", domain.OrderStatusCancelled),
	)
	return r.client.Count(ctx, orderCollection, q)
}
