package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order represents a storefront checkout of one ticket package
type Order struct {
	ID              string          `json:"id"`
	TenantID        string          `json:"tenant_id"`
	RaffleID        string          `json:"raffle_id"`
	TicketPackageID string          `json:"ticket_package_id"`
	CustomerEmail   string          `json:"customer_email"`
	CustomerName    string          `json:"customer_name,omitempty"`
	UnitPrice       decimal.Decimal `json:"unit_price"` // resolver output at checkout time
	Currency        string          `json:"currency"`
	EntriesGranted  int             `json:"entries_granted"` // amount plus bonus at checkout time
	ReferralCode    string          `json:"referral_code,omitempty"`
	PaymentProvider string          `json:"payment_provider"`
	PaymentRef      string          `json:"payment_ref,omitempty"` // provider-side intent/charge ID
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Order status constants
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusFailed    = "failed"
	OrderStatusCancelled = "cancelled"
)

// NewOrder creates a pending order, validating required fields
func NewOrder(tenantID, raffleID, packageID, customerEmail string, unitPrice decimal.Decimal, currency string, entries int) (*Order, error) {
	if tenantID == "" {
		return nil, errors.New("tenant_id is required")
	}
	if raffleID == "" {
		return nil, errors.New("raffle_id is required")
	}
	if packageID == "" {
		return nil, errors.New("ticket_package_id is required")
	}
	if customerEmail == "" {
		return nil, errors.New("customer_email is required")
	}
	if unitPrice.IsNegative() {
		return nil, errors.New("unit_price must not be negative")
	}
	if entries < 1 {
		return nil, errors.New("entries_granted must be at least 1")
	}
	if currency == "" {
		currency = "USD"
	}

	now := time.Now()
	return &Order{
		ID:              uuid.New().String(),
		TenantID:        tenantID,
		RaffleID:        raffleID,
		TicketPackageID: packageID,
		CustomerEmail:   customerEmail,
		UnitPrice:       unitPrice,
		Currency:        currency,
		EntriesGranted:  entries,
		Status:          OrderStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}
