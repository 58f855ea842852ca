package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sorteocloud/raffle-backend/internal/domain"
)

func TestCredentialsToStorage_Stripe(t *testing.T) {
	cfg := &domain.ProviderConfig{
		ProviderID: domain.ProviderStripe,
		PublicKey:  "pk_test_123",
		SecretKey:  "sk_test_456",
		Extra:      map[string]interface{}{"webhook_secret": "whsec_789", "ignored": "x"},
	}

	stored := credentialsToStorage(cfg)

	assert.Equal(t, "pk_test_123", stored["publishable_key"])
	assert.Equal(t, "sk_test_456", stored["secret_key"])
	assert.Equal(t, "whsec_789", stored["webhook_secret"])
	assert.NotContains(t, stored, "ignored", "unmapped extra keys are dropped")
	assert.NotContains(t, stored, "public_key", "domain field names never leak into storage")
}

func TestCredentialsFromStorage_Stripe(t *testing.T) {
	stored := map[string]interface{}{
		"publishable_key": "pk_test_123",
		"secret_key":      "sk_test_456",
		"webhook_secret":  "whsec_789",
	}

	publicKey, secretKey, extra := credentialsFromStorage(domain.ProviderStripe, stored)

	assert.Equal(t, "pk_test_123", publicKey)
	assert.Equal(t, "sk_test_456", secretKey)
	assert.Equal(t, "whsec_789", extra["webhook_secret"])
}

func TestCredentialsMapping_PayPhone(t *testing.T) {
	cfg := &domain.ProviderConfig{
		ProviderID: domain.ProviderPayPhone,
		PublicKey:  "client-1",
		SecretKey:  "tok-2",
		Extra:      map[string]interface{}{"store_id": "store-3"},
	}

	stored := credentialsToStorage(cfg)
	assert.Equal(t, "client-1", stored["client_id"])
	assert.Equal(t, "tok-2", stored["token"])
	assert.Equal(t, "store-3", stored["store_id"])

	publicKey, secretKey, extra := credentialsFromStorage(domain.ProviderPayPhone, stored)
	assert.Equal(t, cfg.PublicKey, publicKey)
	assert.Equal(t, cfg.SecretKey, secretKey)
	assert.Equal(t, cfg.Extra, extra)
}

func TestCredentialsMapping_Resend(t *testing.T) {
	cfg := &domain.ProviderConfig{
		ProviderID: domain.ProviderResend,
		SecretKey:  "re_abc",
		Extra:      map[string]interface{}{"from_address": "no-reply@sorteo.app"},
	}

	stored := credentialsToStorage(cfg)
	assert.Equal(t, "re_abc", stored["api_key"])
	assert.Equal(t, "no-reply@sorteo.app", stored["from_address"])

	_, secretKey, extra := credentialsFromStorage(domain.ProviderResend, stored)
	assert.Equal(t, "re_abc", secretKey)
	assert.Equal(t, "no-reply@sorteo.app", extra["from_address"])
}

func TestCredentialsMapping_UnknownProviderUsesDefault(t *testing.T) {
	cfg := &domain.ProviderConfig{
		ProviderID: "acme-pay",
		PublicKey:  "pub",
		SecretKey:  "sec",
	}

	stored := credentialsToStorage(cfg)
	assert.Equal(t, "pub", stored["public_key"])
	assert.Equal(t, "sec", stored["secret_key"])

	publicKey, secretKey, _ := credentialsFromStorage("acme-pay", stored)
	assert.Equal(t, "pub", publicKey)
	assert.Equal(t, "sec", secretKey)
}
