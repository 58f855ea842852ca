package domain

import (
	"time"
)

// Referral tracks a tenant's referral code and its performance counters
type Referral struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenant_id"`
	RaffleID    string    `json:"raffle_id"`
	Code        string    `json:"code"`
	Label       string    `json:"label,omitempty"`
	Clicks      int       `json:"clicks"`
	Conversions int       `json:"conversions"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
