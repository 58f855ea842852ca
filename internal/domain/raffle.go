package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Raffle represents a raffle run by a tenant
type Raffle struct {
	ID              string          `json:"id"`
	TenantID        string          `json:"tenant_id"`
	Name            string          `json:"name"`
	Slug            string          `json:"slug"`
	Description     string          `json:"description"`
	BannerURL       string          `json:"banner_url"`
	BaseTicketPrice decimal.Decimal `json:"base_ticket_price"`
	Currency        string          `json:"currency"`
	TotalEntries    int             `json:"total_entries"`
	DrawDate        *time.Time      `json:"draw_date,omitempty"`
	Status          string          `json:"status"` // draft, published, finished, cancelled
	IsActive        bool            `json:"is_active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	DeletedAt       *time.Time      `json:"deleted_at,omitempty"`
}

// RaffleStatus constants
const (
	RaffleStatusDraft     = "draft"
	RaffleStatusPublished = "published"
	RaffleStatusFinished  = "finished"
	RaffleStatusCancelled = "cancelled"
)

// IsPurchasable reports whether the raffle accepts storefront checkouts
func (r *Raffle) IsPurchasable() bool {
	return r.IsActive && r.Status == RaffleStatusPublished && r.DeletedAt == nil
}
