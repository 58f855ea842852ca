package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sorteocloud/raffle-backend/internal/domain"
)

// CreateRaffleRequest represents the request to create a raffle
type CreateRaffleRequest struct {
	Name            string     `json:"name" binding:"required,min=1,max=200"`
	Slug            string     `json:"slug" binding:"required,min=1,max=100"`
	Description     string     `json:"description" binding:"max=5000"`
	BannerURL       string     `json:"banner_url,omitempty"`
	BaseTicketPrice string     `json:"base_ticket_price" binding:"required"`
	Currency        string     `json:"currency,omitempty"`
	TotalEntries    int        `json:"total_entries,omitempty"`
	DrawDate        *time.Time `json:"draw_date,omitempty"`
}

// Validate validates the CreateRaffleRequest
func (r *CreateRaffleRequest) Validate() (bool, string) {
	if r.Name == "" {
		return false, "Raffle name is required"
	}
	if r.Slug == "" {
		return false, "Raffle slug is required"
	}
	price, err := decimal.NewFromString(r.BaseTicketPrice)
	if err != nil || price.IsNegative() {
		return false, "Base ticket price must be a non-negative decimal"
	}
	if r.TotalEntries < 0 {
		return false, "Total entries must not be negative"
	}
	return true, ""
}

// UpdateRaffleRequest represents the request to update a raffle.
// Only non-nil fields are applied.
type UpdateRaffleRequest struct {
	Name            *string    `json:"name,omitempty"`
	Description     *string    `json:"description,omitempty"`
	BannerURL       *string    `json:"banner_url,omitempty"`
	BaseTicketPrice *string    `json:"base_ticket_price,omitempty"`
	Currency        *string    `json:"currency,omitempty"`
	TotalEntries    *int       `json:"total_entries,omitempty"`
	DrawDate        *time.Time `json:"draw_date,omitempty"`
	Status          *string    `json:"status,omitempty"`
	IsActive        *bool      `json:"is_active,omitempty"`
}

// Validate validates the UpdateRaffleRequest
func (r *UpdateRaffleRequest) Validate() (bool, string) {
	if r.Name != nil && *r.Name == "" {
		return false, "Name must not be empty"
	}
	if r.BaseTicketPrice != nil {
		price, err := decimal.NewFromString(*r.BaseTicketPrice)
		if err != nil || price.IsNegative() {
			return false, "Base ticket price must be a non-negative decimal"
		}
	}
	if r.Status != nil {
		switch *r.Status {
		case domain.RaffleStatusDraft, domain.RaffleStatusPublished,
			domain.RaffleStatusFinished, domain.RaffleStatusCancelled:
		default:
			return false, "Invalid raffle status"
		}
	}
	return true, ""
}

// RaffleResponse represents a raffle
type RaffleResponse struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Slug            string     `json:"slug"`
	Description     string     `json:"description"`
	BannerURL       string     `json:"banner_url,omitempty"`
	BaseTicketPrice string     `json:"base_ticket_price"`
	Currency        string     `json:"currency"`
	TotalEntries    int        `json:"total_entries"`
	DrawDate        *time.Time `json:"draw_date,omitempty"`
	Status          string     `json:"status"`
	IsActive        bool       `json:"is_active"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// FromRaffle converts a domain Raffle to RaffleResponse
func FromRaffle(r *domain.Raffle) *RaffleResponse {
	return &RaffleResponse{
		ID:              r.ID,
		Name:            r.Name,
		Slug:            r.Slug,
		Description:     r.Description,
		BannerURL:       r.BannerURL,
		BaseTicketPrice: r.BaseTicketPrice.String(),
		Currency:        r.Currency,
		TotalEntries:    r.TotalEntries,
		DrawDate:        r.DrawDate,
		Status:          r.Status,
		IsActive:        r.IsActive,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// RaffleListResponse represents a list of raffles
type RaffleListResponse struct {
	Raffles []*RaffleResponse `json:"raffles"`
	Total   int64             `json:"total"`
	Page    int               `json:"page"`
	Limit   int               `json:"limit"`
}
