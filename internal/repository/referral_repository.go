package repository

import (
	"context"

	"github.com/sorteocloud/raffle-backend/internal/domain"
)

// ReferralRepository defines the interface for referral data access
type ReferralRepository interface {
	// Create creates a new referral
	Create(ctx context.Context, referral *domain.Referral) error
	// GetByCode retrieves an active referral by code within a raffle
	GetByCode(ctx context.Context, raffleID, code string) (*domain.Referral, error)
	// ListByRaffle retrieves all referrals of a raffle
	ListByRaffle(ctx context.Context, raffleID string) ([]*domain.Referral, error)
	// RecordClick increments the referral's click counter
	RecordClick(ctx context.Context, id string) error
	// RecordConversion increments the referral's conversion counter
	RecordConversion(ctx context.Context, id string) error
}
