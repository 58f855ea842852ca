package dto

import (
	"strings"
	"time"

	"github.com/sorteocloud/raffle-backend/internal/domain"
)

// CheckoutRequest represents a storefront purchase of one package.
// The price is never taken from the client; it is re-resolved server
// side at checkout time.
type CheckoutRequest struct {
	TicketPackageID string `json:"ticket_package_id" binding:"required"`
	CustomerEmail   string `json:"customer_email" binding:"required,email"`
	CustomerName    string `json:"customer_name,omitempty"`
	ReferralCode    string `json:"referral_code,omitempty"`
}

// Validate validates the CheckoutRequest
func (r *CheckoutRequest) Validate() (bool, string) {
	if r.TicketPackageID == "" {
		return false, "Ticket package ID is required"
	}
	if r.CustomerEmail == "" || !strings.Contains(r.CustomerEmail, "@") {
		return false, "A valid customer email is required"
	}
	return true, ""
}

// CheckoutResponse carries the created order and the provider-side
// payment handle the storefront completes the payment with
type CheckoutResponse struct {
	OrderID        string `json:"order_id"`
	UnitPrice      string `json:"unit_price"`
	Currency       string `json:"currency"`
	EntriesGranted int    `json:"entries_granted"`
	Status         string `json:"status"`

	PaymentProvider string `json:"payment_provider"`
	PaymentIntentID string `json:"payment_intent_id"`
	ClientSecret    string `json:"client_secret"`
}

// OrderResponse represents an order in admin responses
type OrderResponse struct {
	ID              string    `json:"id"`
	RaffleID        string    `json:"raffle_id"`
	TicketPackageID string    `json:"ticket_package_id"`
	CustomerEmail   string    `json:"customer_email"`
	CustomerName    string    `json:"customer_name,omitempty"`
	UnitPrice       string    `json:"unit_price"`
	Currency        string    `json:"currency"`
	EntriesGranted  int       `json:"entries_granted"`
	ReferralCode    string    `json:"referral_code,omitempty"`
	PaymentProvider string    `json:"payment_provider"`
	PaymentRef      string    `json:"payment_ref,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// FromOrder converts a domain Order to OrderResponse
func FromOrder(o *domain.Order) *OrderResponse {
	return &OrderResponse{
		ID:              o.ID,
		RaffleID:        o.RaffleID,
		TicketPackageID: o.TicketPackageID,
		CustomerEmail:   o.CustomerEmail,
		CustomerName:    o.CustomerName,
		UnitPrice:       o.UnitPrice.StringFixed(2),
		Currency:        o.Currency,
		EntriesGranted:  o.EntriesGranted,
		ReferralCode:    o.ReferralCode,
		PaymentProvider: o.PaymentProvider,
		PaymentRef:      o.PaymentRef,
		Status:          o.Status,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

// OrderListResponse represents a list of orders
type OrderListResponse struct {
	Orders []*OrderResponse `json:"orders"`
	Total  int64            `json:"total"`
	Page   int              `json:"page"`
	Limit  int              `json:"limit"`
}
