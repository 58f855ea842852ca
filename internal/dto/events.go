package dto

import (
	"time"
)

// Topic names for order events
const (
	TopicOrderCreated = "raffle.order-created"
	TopicOrderPaid    = "raffle.order-paid"
)

// OrderCreatedEvent is published when a checkout opens a pending order
type OrderCreatedEvent struct {
	EventType       string    `json:"event_type"`
	OrderID         string    `json:"order_id"`
	TenantID        string    `json:"tenant_id"`
	RaffleID        string    `json:"raffle_id"`
	TicketPackageID string    `json:"ticket_package_id"`
	CustomerEmail   string    `json:"customer_email"`
	UnitPrice       string    `json:"unit_price"`
	Currency        string    `json:"currency"`
	EntriesGranted  int       `json:"entries_granted"`
	PaymentProvider string    `json:"payment_provider"`
	ReferralCode    string    `json:"referral_code,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
}

// Key returns the Kafka message key for partitioning
func (e *OrderCreatedEvent) Key() string {
	return e.OrderID
}

// OrderPaidEvent is published when a payment is confirmed, so entry
// allocation and notification can run downstream
type OrderPaidEvent struct {
	EventType      string    `json:"event_type"`
	OrderID        string    `json:"order_id"`
	TenantID       string    `json:"tenant_id"`
	RaffleID       string    `json:"raffle_id"`
	CustomerEmail  string    `json:"customer_email"`
	EntriesGranted int       `json:"entries_granted"`
	PaymentRef     string    `json:"payment_ref"`
	Timestamp      time.Time `json:"timestamp"`
}

// Key returns the Kafka message key for partitioning
func (e *OrderPaidEvent) Key() string {
	return e.OrderID
}
