package dto

import (
	"time"

	"github.com/sorteocloud/raffle-backend/internal/domain"
)

// CreateReferralRequest represents the request to register a referral code
type CreateReferralRequest struct {
	RaffleID string `json:"raffle_id" binding:"required"`
	Code     string `json:"code" binding:"required,min=1,max=64"`
	Label    string `json:"label,omitempty"`
}

// Validate validates the CreateReferralRequest
func (r *CreateReferralRequest) Validate() (bool, string) {
	if r.RaffleID == "" {
		return false, "Raffle ID is required"
	}
	if !slugPattern.MatchString(r.Code) {
		return false, "Code must be lowercase letters, digits and hyphens"
	}
	return true, ""
}

// ReferralResponse represents a referral code with its counters
type ReferralResponse struct {
	ID          string    `json:"id"`
	RaffleID    string    `json:"raffle_id"`
	Code        string    `json:"code"`
	Label       string    `json:"label,omitempty"`
	Clicks      int       `json:"clicks"`
	Conversions int       `json:"conversions"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FromReferral converts a domain Referral to ReferralResponse
func FromReferral(r *domain.Referral) *ReferralResponse {
	return &ReferralResponse{
		ID:          r.ID,
		RaffleID:    r.RaffleID,
		Code:        r.Code,
		Label:       r.Label,
		Clicks:      r.Clicks,
		Conversions: r.Conversions,
		IsActive:    r.IsActive,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// ReferralListResponse represents the referrals of a raffle
type ReferralListResponse struct {
	Referrals []*ReferralResponse `json:"referrals"`
	Total     int                 `json:"total"`
}

// ReferralVisitResponse is returned when a storefront visit lands on a
// referral link
type ReferralVisitResponse struct {
	RaffleSlug string `json:"raffle_slug"`
	Code       string `json:"code"`
}
