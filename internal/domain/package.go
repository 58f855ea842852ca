package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TicketPackage represents a purchasable bundle of raffle entries.
// Pricing starts from the raffle's base ticket price and is adjusted by
// the multiplier, an optional fixed price override, the baseline discount
// and any active time-limited offer.
type TicketPackage struct {
	ID       string `json:"id"`
	TenantID string `json:"tenant_id"`
	RaffleID string `json:"raffle_id"`

	// Pricing
	Amount          int              `json:"amount"` // base entry count
	PriceMultiplier decimal.Decimal  `json:"price_multiplier"`
	FixedPrice      *decimal.Decimal `json:"fixed_price,omitempty"` // supersedes computed price when set

	// Baseline promotion
	DiscountPercentage float64 `json:"discount_percentage"` // 0-100
	BonusEntries       int     `json:"bonus_entries"`

	// Presentation
	Name            string  `json:"name"`
	BadgeText       string  `json:"badge_text,omitempty"`
	BadgeColor      string  `json:"badge_color,omitempty"`
	Gradient        string  `json:"gradient,omitempty"`
	MultiplierLabel *string `json:"multiplier_label,omitempty"` // overrides the computed ratio text
	DisplayOrder    int     `json:"display_order"`
	IsFeatured      bool    `json:"is_featured"`

	// Limits
	MaxPurchasesPerUser *int `json:"max_purchases_per_user,omitempty"`
	StockLimit          *int `json:"stock_limit,omitempty"`
	CurrentStock        int  `json:"current_stock"` // consumed units, meaningful only with StockLimit

	// Availability window
	AvailableFrom  *time.Time `json:"available_from,omitempty"`
	AvailableUntil *time.Time `json:"available_until,omitempty"`

	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// AvailableAt reports whether the package can be purchased at the given instant.
// Inactive packages, packages outside their availability window and packages
// with exhausted stock are unavailable.
func (p *TicketPackage) AvailableAt(now time.Time) bool {
	if !p.IsActive || p.DeletedAt != nil {
		return false
	}
	if p.AvailableFrom != nil && now.Before(*p.AvailableFrom) {
		return false
	}
	if p.AvailableUntil != nil && now.After(*p.AvailableUntil) {
		return false
	}
	if p.StockLimit != nil && p.CurrentStock >= *p.StockLimit {
		return false
	}
	return true
}

// RemainingStock returns the units left, or -1 when the package is unlimited
func (p *TicketPackage) RemainingStock() int {
	if p.StockLimit == nil {
		return -1
	}
	remaining := *p.StockLimit - p.CurrentStock
	if remaining < 0 {
		return 0
	}
	return remaining
}

// TimeLimitedOffer is a promotional overlay bound to exactly one package.
// It is eligible only while is_active and the window contains the current
// instant (bounds inclusive).
type TimeLimitedOffer struct {
	ID              string `json:"id"`
	TicketPackageID string `json:"ticket_package_id"`

	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`

	SpecialDiscountPercentage float64 `json:"special_discount_percentage"` // 0-100, competes with baseline
	SpecialBonusEntries       int     `json:"special_bonus_entries"`       // adds on top of baseline

	// Overlay presentation
	BadgeText  string `json:"badge_text,omitempty"`
	BadgeColor string `json:"badge_color,omitempty"`
	Gradient   string `json:"gradient,omitempty"`

	// Persisted but not enforced during resolution; see the offer docs
	StockLimit *int `json:"stock_limit,omitempty"`

	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ActiveAt reports whether the offer applies at the given instant.
// Window bounds are inclusive.
func (o *TimeLimitedOffer) ActiveAt(now time.Time) bool {
	if !o.IsActive {
		return false
	}
	if now.Before(o.StartDate) || now.After(o.EndDate) {
		return false
	}
	return true
}
