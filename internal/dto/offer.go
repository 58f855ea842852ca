package dto

import (
	"time"

	"github.com/sorteocloud/raffle-backend/internal/domain"
)

// CreateOfferRequest represents the request to create a time-limited offer
type CreateOfferRequest struct {
	TicketPackageID string    `json:"ticket_package_id" binding:"required"`
	StartDate       time.Time `json:"start_date" binding:"required"`
	EndDate         time.Time `json:"end_date" binding:"required"`

	SpecialDiscountPercentage float64 `json:"special_discount_percentage"`
	SpecialBonusEntries       int     `json:"special_bonus_entries"`

	BadgeText  string `json:"badge_text,omitempty"`
	BadgeColor string `json:"badge_color,omitempty"`
	Gradient   string `json:"gradient,omitempty"`

	StockLimit *int `json:"stock_limit,omitempty"`
	IsActive   bool `json:"is_active"`
}

// Validate validates the CreateOfferRequest
func (r *CreateOfferRequest) Validate() (bool, string) {
	if r.TicketPackageID == "" {
		return false, "Ticket package ID is required"
	}
	if r.StartDate.IsZero() || r.EndDate.IsZero() {
		return false, "Start and end dates are required"
	}
	if r.EndDate.Before(r.StartDate) {
		return false, "End date must be after start date"
	}
	if r.SpecialDiscountPercentage < 0 || r.SpecialDiscountPercentage > 100 {
		return false, "Special discount percentage must be between 0 and 100"
	}
	if r.SpecialBonusEntries < 0 {
		return false, "Special bonus entries must not be negative"
	}
	if r.StockLimit != nil && *r.StockLimit < 1 {
		return false, "Stock limit must be at least 1"
	}
	return true, ""
}

// UpdateOfferRequest represents the request to update an offer.
// Only non-nil fields are applied.
type UpdateOfferRequest struct {
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`

	SpecialDiscountPercentage *float64 `json:"special_discount_percentage,omitempty"`
	SpecialBonusEntries       *int     `json:"special_bonus_entries,omitempty"`

	BadgeText  *string `json:"badge_text,omitempty"`
	BadgeColor *string `json:"badge_color,omitempty"`
	Gradient   *string `json:"gradient,omitempty"`

	StockLimit *int  `json:"stock_limit,omitempty"`
	IsActive   *bool `json:"is_active,omitempty"`
}

// Validate validates the UpdateOfferRequest
func (r *UpdateOfferRequest) Validate() (bool, string) {
	if r.StartDate != nil && r.EndDate != nil && r.EndDate.Before(*r.StartDate) {
		return false, "End date must be after start date"
	}
	if r.SpecialDiscountPercentage != nil && (*r.SpecialDiscountPercentage < 0 || *r.SpecialDiscountPercentage > 100) {
		return false, "Special discount percentage must be between 0 and 100"
	}
	if r.SpecialBonusEntries != nil && *r.SpecialBonusEntries < 0 {
		return false, "Special bonus entries must not be negative"
	}
	return true, ""
}

// OfferResponse represents a time-limited offer
type OfferResponse struct {
	ID              string    `json:"id"`
	TicketPackageID string    `json:"ticket_package_id"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`

	SpecialDiscountPercentage float64 `json:"special_discount_percentage"`
	SpecialBonusEntries       int     `json:"special_bonus_entries"`

	BadgeText  string `json:"badge_text,omitempty"`
	BadgeColor string `json:"badge_color,omitempty"`
	Gradient   string `json:"gradient,omitempty"`

	StockLimit *int      `json:"stock_limit,omitempty"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// FromOffer converts a domain TimeLimitedOffer to OfferResponse
func FromOffer(o *domain.TimeLimitedOffer) *OfferResponse {
	return &OfferResponse{
		ID:                        o.ID,
		TicketPackageID:           o.TicketPackageID,
		StartDate:                 o.StartDate,
		EndDate:                   o.EndDate,
		SpecialDiscountPercentage: o.SpecialDiscountPercentage,
		SpecialBonusEntries:       o.SpecialBonusEntries,
		BadgeText:                 o.BadgeText,
		BadgeColor:                o.BadgeColor,
		Gradient:                  o.Gradient,
		StockLimit:                o.StockLimit,
		IsActive:                  o.IsActive,
		CreatedAt:                 o.CreatedAt,
		UpdatedAt:                 o.UpdatedAt,
	}
}

// OfferListResponse represents a list of offers
type OfferListResponse struct {
	Offers []*OfferResponse `json:"offers"`
	Total  int              `json:"total"`
}
