package dto

import (
	"time"

	"github.com/sorteocloud/raffle-backend/internal/promotion"
)

// StorefrontOffer is the overlay presentation of the winning offer
type StorefrontOffer struct {
	ID         string `json:"id"`
	BadgeText  string `json:"badge_text,omitempty"`
	BadgeColor string `json:"badge_color,omitempty"`
	Gradient   string `json:"gradient,omitempty"`
	EndDate    string `json:"end_date"`
}

// StorefrontPackage is the buyer-facing form of one package: resolved
// price, entries and display text
type StorefrontPackage struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Amount int    `json:"amount"`

	OriginalPrice   string  `json:"original_price"`
	FinalPrice      string  `json:"final_price"`
	DiscountPercent float64 `json:"total_discount_percentage"`
	BonusEntries    int     `json:"bonus_entries"`
	FinalAmount     int     `json:"final_amount"`

	EntriesDisplay    string `json:"entries_display"`
	MultiplierDisplay string `json:"multiplier_display"`

	BadgeText  string `json:"badge_text,omitempty"`
	BadgeColor string `json:"badge_color,omitempty"`
	Gradient   string `json:"gradient,omitempty"`
	IsFeatured bool   `json:"is_featured"`

	RemainingStock int `json:"remaining_stock"` // -1 when unlimited

	Offer *StorefrontOffer `json:"offer,omitempty"`
}

// FromResolved converts an engine resolution to its storefront form.
// When the winning offer carries overlay presentation it replaces the
// package's own badge and gradient.
func FromResolved(r *promotion.Resolved) *StorefrontPackage {
	out := &StorefrontPackage{
		ID:                r.Package.ID,
		Name:              r.Package.Name,
		Amount:            r.Package.Amount,
		OriginalPrice:     r.OriginalPrice.StringFixed(2),
		FinalPrice:        r.FinalPrice.StringFixed(2),
		DiscountPercent:   r.DiscountPercent,
		BonusEntries:      r.BonusEntries,
		FinalAmount:       r.FinalAmount,
		EntriesDisplay:    r.EntriesDisplay,
		MultiplierDisplay: r.MultiplierDisplay,
		BadgeText:         r.Package.BadgeText,
		BadgeColor:        r.Package.BadgeColor,
		Gradient:          r.Package.Gradient,
		IsFeatured:        r.Package.IsFeatured,
		RemainingStock:    r.Package.RemainingStock(),
	}

	if o := r.WinningOffer; o != nil {
		out.Offer = &StorefrontOffer{
			ID:         o.ID,
			BadgeText:  o.BadgeText,
			BadgeColor: o.BadgeColor,
			Gradient:   o.Gradient,
			EndDate:    o.EndDate.UTC().Format(time.RFC3339),
		}
		if o.BadgeText != "" {
			out.BadgeText = o.BadgeText
			out.BadgeColor = o.BadgeColor
		}
		if o.Gradient != "" {
			out.Gradient = o.Gradient
		}
	}

	return out
}

// CatalogResponse is the storefront package listing for one raffle
type CatalogResponse struct {
	RaffleID   string               `json:"raffle_id"`
	RaffleSlug string               `json:"raffle_slug"`
	RaffleName string               `json:"raffle_name"`
	Currency   string               `json:"currency"`
	Packages   []*StorefrontPackage `json:"packages"`
}
