// Package gateway integrates external payment providers behind one
// interface. Credentials come from the tenant's provider config, so a
// gateway instance is always bound to a single tenant.
package gateway

import (
	"context"
)

// PaymentGateway defines the interface for payment processing
type PaymentGateway interface {
	// CreatePaymentIntent opens a payment for the given amount and
	// returns the client secret the storefront completes it with
	CreatePaymentIntent(ctx context.Context, req *PaymentIntentRequest) (*PaymentIntentResponse, error)

	// ConfirmPaymentIntent retrieves the provider-side state of an intent
	// after client-side completion
	ConfirmPaymentIntent(ctx context.Context, paymentIntentID string) (*PaymentIntentResponse, error)

	// Refund refunds a completed payment in full
	Refund(ctx context.Context, paymentIntentID string) error

	// Name returns the gateway name
	Name() string
}

// PaymentIntentRequest represents a request to open a payment
type PaymentIntentRequest struct {
	OrderID       string
	AmountCents   int64
	Currency      string
	Description   string
	CustomerEmail string
	Metadata      map[string]string
}

// PaymentIntentResponse represents the provider-side state of a payment
type PaymentIntentResponse struct {
	PaymentIntentID string
	ClientSecret    string
	Status          string
	AmountCents     int64
	Currency        string
}

// Intent status values normalized across providers
const (
	IntentStatusPending   = "pending"
	IntentStatusSucceeded = "succeeded"
	IntentStatusFailed    = "failed"
)
