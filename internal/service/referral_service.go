package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sorteocloud/raffle-backend/internal/domain"
	"github.com/sorteocloud/raffle-backend/internal/dto"
	"github.com/sorteocloud/raffle-backend/internal/repository"
	"github.com/sorteocloud/raffle-backend/internal/tenancy"
	"github.com/sorteocloud/raffle-backend/pkg/logger"
)

var (
	ErrReferralNotFound  = errors.New("referral code not found")
	ErrReferralCodeTaken = errors.New("referral code already exists for this raffle")
)

// ReferralService defines referral code management and click tracking
type ReferralService interface {
	// Create registers a referral code for a raffle
	Create(ctx context.Context, req *dto.CreateReferralRequest) (*dto.ReferralResponse, error)
	// ListByRaffle retrieves all referral codes of a raffle
	ListByRaffle(ctx context.Context, raffleID string) (*dto.ReferralListResponse, error)
	// TrackVisit records a storefront landing through a referral link
	TrackVisit(ctx context.Context, raffleSlug, code string) (*dto.ReferralVisitResponse, error)
}

// referralService implements ReferralService
type referralService struct {
	referralRepo repository.ReferralRepository
	raffleRepo   repository.RaffleRepository
}

// NewReferralService creates a new ReferralService
func NewReferralService(referralRepo repository.ReferralRepository, raffleRepo repository.RaffleRepository) ReferralService {
	return &referralService{referralRepo: referralRepo, raffleRepo: raffleRepo}
}

// Create registers a referral code for a raffle
func (s *referralService) Create(ctx context.Context, req *dto.CreateReferralRequest) (*dto.ReferralResponse, error) {
	if valid, msg := req.Validate(); !valid {
		return nil, errors.New(msg)
	}

	raffle, err := s.raffleRepo.GetByID(ctx, req.RaffleID)
	if err != nil {
		return nil, err
	}
	if raffle == nil {
		return nil, ErrRaffleNotFound
	}

	existing, err := s.referralRepo.GetByCode(ctx, req.RaffleID, req.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrReferralCodeTaken
	}

	var tenantID string
	if scope, ok := tenancy.FromContext(ctx); ok && scope.TenantID != nil {
		tenantID = *scope.TenantID
	}

	now := time.Now()
	referral := &domain.Referral{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		RaffleID:  req.RaffleID,
		Code:      req.Code,
		Label:     req.Label,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.referralRepo.Create(ctx, referral); err != nil {
		return nil, err
	}
	return dto.FromReferral(referral), nil
}

// ListByRaffle retrieves all referral codes of a raffle
func (s *referralService) ListByRaffle(ctx context.Context, raffleID string) (*dto.ReferralListResponse, error) {
	referrals, err := s.referralRepo.ListByRaffle(ctx, raffleID)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.ReferralResponse, 0, len(referrals))
	for _, r := range referrals {
		out = append(out, dto.FromReferral(r))
	}
	return &dto.ReferralListResponse{Referrals: out, Total: len(out)}, nil
}

// TrackVisit records a storefront landing through a referral link. The
// click bump is best effort; the visit still resolves when it fails.
func (s *referralService) TrackVisit(ctx context.Context, raffleSlug, code string) (*dto.ReferralVisitResponse, error) {
	raffle, err := s.raffleRepo.GetBySlug(ctx, raffleSlug)
	if err != nil {
		return nil, err
	}
	if raffle == nil || !raffle.IsPurchasable() {
		return nil, ErrRaffleNotFound
	}

	referral, err := s.referralRepo.GetByCode(ctx, raffle.ID, code)
	if err != nil {
		return nil, err
	}
	if referral == nil {
		return nil, ErrReferralNotFound
	}

	if err := s.referralRepo.RecordClick(ctx, referral.ID); err != nil {
		logger.Warn("referral click not recorded", zap.Error(err), zap.String("referral_id", referral.ID))
	}

	return &dto.ReferralVisitResponse{RaffleSlug: raffle.Slug, Code: referral.Code}, nil
}
