package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sorteocloud/raffle-backend/internal/domain"
	"github.com/sorteocloud/raffle-backend/internal/dto"
)

func newReferralFixture() (ReferralService, *mockRaffleRepo, *mockReferralRepo) {
	raffles := &mockRaffleRepo{raffle: &domain.Raffle{
		ID:              "r1",
		TenantID:        "T1",
		Slug:            "summer",
		Name:            "Summer Raffle",
		BaseTicketPrice: decimal.NewFromInt(1),
		Status:          domain.RaffleStatusPublished,
		IsActive:        true,
	}}
	referrals := &mockReferralRepo{}
	return NewReferralService(referrals, raffles), raffles, referrals
}

func TestReferralCreate(t *testing.T) {
	svc, _, referrals := newReferralFixture()

	resp, err := svc.Create(context.Background(), &dto.CreateReferralRequest{
		RaffleID: "r1",
		Code:     "insta-promo",
		Label:    "Instagram",
	})
	require.NoError(t, err)

	assert.Equal(t, "insta-promo", resp.Code)
	assert.True(t, resp.IsActive)
	require.NotNil(t, referrals.created)
	assert.Equal(t, "r1", referrals.created.RaffleID)
}

func TestReferralCreate_DuplicateCode(t *testing.T) {
	svc, _, referrals := newReferralFixture()
	referrals.referral = &domain.Referral{ID: "ref-1", RaffleID: "r1", Code: "insta-promo"}

	_, err := svc.Create(context.Background(), &dto.CreateReferralRequest{
		RaffleID: "r1",
		Code:     "insta-promo",
	})
	assert.ErrorIs(t, err, ErrReferralCodeTaken)
}

func TestReferralCreate_UnknownRaffle(t *testing.T) {
	svc, _, _ := newReferralFixture()

	_, err := svc.Create(context.Background(), &dto.CreateReferralRequest{
		RaffleID: "missing",
		Code:     "insta-promo",
	})
	assert.ErrorIs(t, err, ErrRaffleNotFound)
}

func TestReferralTrackVisit(t *testing.T) {
	svc, _, referrals := newReferralFixture()
	referrals.referral = &domain.Referral{ID: "ref-1", RaffleID: "r1", Code: "insta-promo", IsActive: true}

	resp, err := svc.TrackVisit(context.Background(), "summer", "insta-promo")
	require.NoError(t, err)

	assert.Equal(t, "summer", resp.RaffleSlug)
	assert.Equal(t, "insta-promo", resp.Code)
	assert.Equal(t, 1, referrals.clicks)
}

func TestReferralTrackVisit_UnknownCode(t *testing.T) {
	svc, _, referrals := newReferralFixture()

	_, err := svc.TrackVisit(context.Background(), "summer", "nope")
	assert.ErrorIs(t, err, ErrReferralNotFound)
	assert.Zero(t, referrals.clicks)
}

func TestReferralTrackVisit_DraftRaffleHidden(t *testing.T) {
	svc, raffles, _ := newReferralFixture()
	raffles.raffle.Status = domain.RaffleStatusDraft

	_, err := svc.TrackVisit(context.Background(), "summer", "insta-promo")
	assert.ErrorIs(t, err, ErrRaffleNotFound)
}
