package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sorteocloud/raffle-backend/internal/domain"
)

// CreatePackageRequest represents the request to create a ticket package
type CreatePackageRequest struct {
	RaffleID        string  `json:"raffle_id" binding:"required"`
	Amount          int     `json:"amount" binding:"required"`
	PriceMultiplier float64 `json:"price_multiplier"`
	FixedPrice      *string `json:"fixed_price,omitempty"` // decimal string, supersedes computed price

	DiscountPercentage float64 `json:"discount_percentage"`
	BonusEntries       int     `json:"bonus_entries"`

	Name            string  `json:"name" binding:"required,min=1,max=120"`
	BadgeText       string  `json:"badge_text,omitempty"`
	BadgeColor      string  `json:"badge_color,omitempty"`
	Gradient        string  `json:"gradient,omitempty"`
	MultiplierLabel *string `json:"multiplier_label,omitempty"`
	DisplayOrder    int     `json:"display_order"`
	IsFeatured      bool    `json:"is_featured"`

	MaxPurchasesPerUser *int `json:"max_purchases_per_user,omitempty"`
	StockLimit          *int `json:"stock_limit,omitempty"`

	AvailableFrom  *time.Time `json:"available_from,omitempty"`
	AvailableUntil *time.Time `json:"available_until,omitempty"`

	IsActive bool `json:"is_active"`
}

// Validate validates the CreatePackageRequest
func (r *CreatePackageRequest) Validate() (bool, string) {
	if r.RaffleID == "" {
		return false, "Raffle ID is required"
	}
	if r.Amount < 1 {
		return false, "Amount must be at least 1"
	}
	if r.PriceMultiplier < 0 {
		return false, "Price multiplier must not be negative"
	}
	if r.DiscountPercentage < 0 || r.DiscountPercentage > 100 {
		return false, "Discount percentage must be between 0 and 100"
	}
	if r.BonusEntries < 0 {
		return false, "Bonus entries must not be negative"
	}
	if r.FixedPrice != nil {
		price, err := decimal.NewFromString(*r.FixedPrice)
		if err != nil || price.LessThanOrEqual(decimal.Zero) {
			return false, "Fixed price must be a positive decimal"
		}
	}
	if r.StockLimit != nil && *r.StockLimit < 1 {
		return false, "Stock limit must be at least 1"
	}
	if r.MaxPurchasesPerUser != nil && *r.MaxPurchasesPerUser < 1 {
		return false, "Max purchases per user must be at least 1"
	}
	if r.AvailableFrom != nil && r.AvailableUntil != nil && r.AvailableUntil.Before(*r.AvailableFrom) {
		return false, "Available until must be after available from"
	}
	return true, ""
}

// UpdatePackageRequest represents the request to update a ticket package.
// Every field is optional; only non-nil fields are applied.
type UpdatePackageRequest struct {
	Amount          *int     `json:"amount,omitempty"`
	PriceMultiplier *float64 `json:"price_multiplier,omitempty"`
	FixedPrice      *string  `json:"fixed_price,omitempty"`
	ClearFixedPrice bool     `json:"clear_fixed_price,omitempty"`

	DiscountPercentage *float64 `json:"discount_percentage,omitempty"`
	BonusEntries       *int     `json:"bonus_entries,omitempty"`

	Name            *string `json:"name,omitempty"`
	BadgeText       *string `json:"badge_text,omitempty"`
	BadgeColor      *string `json:"badge_color,omitempty"`
	Gradient        *string `json:"gradient,omitempty"`
	MultiplierLabel *string `json:"multiplier_label,omitempty"`
	DisplayOrder    *int    `json:"display_order,omitempty"`
	IsFeatured      *bool   `json:"is_featured,omitempty"`

	MaxPurchasesPerUser *int `json:"max_purchases_per_user,omitempty"`
	StockLimit          *int `json:"stock_limit,omitempty"`

	AvailableFrom  *time.Time `json:"available_from,omitempty"`
	AvailableUntil *time.Time `json:"available_until,omitempty"`

	IsActive *bool `json:"is_active,omitempty"`
}

// Validate validates the UpdatePackageRequest
func (r *UpdatePackageRequest) Validate() (bool, string) {
	if r.Amount != nil && *r.Amount < 1 {
		return false, "Amount must be at least 1"
	}
	if r.PriceMultiplier != nil && *r.PriceMultiplier <= 0 {
		return false, "Price multiplier must be positive"
	}
	if r.DiscountPercentage != nil && (*r.DiscountPercentage < 0 || *r.DiscountPercentage > 100) {
		return false, "Discount percentage must be between 0 and 100"
	}
	if r.BonusEntries != nil && *r.BonusEntries < 0 {
		return false, "Bonus entries must not be negative"
	}
	if r.FixedPrice != nil {
		price, err := decimal.NewFromString(*r.FixedPrice)
		if err != nil || price.LessThanOrEqual(decimal.Zero) {
			return false, "Fixed price must be a positive decimal"
		}
	}
	if r.FixedPrice != nil && r.ClearFixedPrice {
		return false, "Cannot set and clear fixed price in the same request"
	}
	if r.Name != nil && *r.Name == "" {
		return false, "Name must not be empty"
	}
	return true, ""
}

// ReorderPackagesRequest represents a batch display order update
type ReorderPackagesRequest struct {
	Packages []PackagePosition `json:"packages" binding:"required,min=1"`
}

// PackagePosition pairs a package ID with its new display position
type PackagePosition struct {
	ID           string `json:"id" binding:"required"`
	DisplayOrder int    `json:"display_order"`
}

// Validate validates the ReorderPackagesRequest
func (r *ReorderPackagesRequest) Validate() (bool, string) {
	if len(r.Packages) == 0 {
		return false, "At least one package position is required"
	}
	seen := make(map[string]bool, len(r.Packages))
	for _, p := range r.Packages {
		if p.ID == "" {
			return false, "Package ID is required"
		}
		if seen[p.ID] {
			return false, "Duplicate package ID: " + p.ID
		}
		seen[p.ID] = true
	}
	return true, ""
}

// PackageResponse represents a ticket package in admin responses
type PackageResponse struct {
	ID              string  `json:"id"`
	RaffleID        string  `json:"raffle_id"`
	Amount          int     `json:"amount"`
	PriceMultiplier string  `json:"price_multiplier"`
	FixedPrice      *string `json:"fixed_price,omitempty"`

	DiscountPercentage float64 `json:"discount_percentage"`
	BonusEntries       int     `json:"bonus_entries"`

	Name            string  `json:"name"`
	BadgeText       string  `json:"badge_text,omitempty"`
	BadgeColor      string  `json:"badge_color,omitempty"`
	Gradient        string  `json:"gradient,omitempty"`
	MultiplierLabel *string `json:"multiplier_label,omitempty"`
	DisplayOrder    int     `json:"display_order"`
	IsFeatured      bool    `json:"is_featured"`

	MaxPurchasesPerUser *int `json:"max_purchases_per_user,omitempty"`
	StockLimit          *int `json:"stock_limit,omitempty"`
	RemainingStock      int  `json:"remaining_stock"` // -1 when unlimited

	AvailableFrom  *time.Time `json:"available_from,omitempty"`
	AvailableUntil *time.Time `json:"available_until,omitempty"`

	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FromPackage converts a domain TicketPackage to PackageResponse
func FromPackage(p *domain.TicketPackage) *PackageResponse {
	var fixedPrice *string
	if p.FixedPrice != nil {
		s := p.FixedPrice.String()
		fixedPrice = &s
	}

	return &PackageResponse{
		ID:                  p.ID,
		RaffleID:            p.RaffleID,
		Amount:              p.Amount,
		PriceMultiplier:     p.PriceMultiplier.String(),
		FixedPrice:          fixedPrice,
		DiscountPercentage:  p.DiscountPercentage,
		BonusEntries:        p.BonusEntries,
		Name:                p.Name,
		BadgeText:           p.BadgeText,
		BadgeColor:          p.BadgeColor,
		Gradient:            p.Gradient,
		MultiplierLabel:     p.MultiplierLabel,
		DisplayOrder:        p.DisplayOrder,
		IsFeatured:          p.IsFeatured,
		MaxPurchasesPerUser: p.MaxPurchasesPerUser,
		StockLimit:          p.StockLimit,
		RemainingStock:      p.RemainingStock(),
		AvailableFrom:       p.AvailableFrom,
		AvailableUntil:      p.AvailableUntil,
		IsActive:            p.IsActive,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}

// PackageListResponse represents a list of packages
type PackageListResponse struct {
	Packages []*PackageResponse `json:"packages"`
	Total    int                `json:"total"`
}
