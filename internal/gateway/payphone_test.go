package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sorteocloud/raffle-backend/internal/domain"
)

func newTestPayPhone(t *testing.T, handler http.HandlerFunc) *PayPhoneGateway {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	g := NewPayPhoneGateway("tok-1", "store-1")
	g.baseURL = srv.URL
	return g
}

func TestPayPhone_CreatePaymentIntent(t *testing.T) {
	var gotAuth string
	var gotBody payphonePrepareRequest

	g := newTestPayPhone(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(payphoneTransaction{
			PaymentID:         "pp-123",
			PayWithCardURL:    "https://pay.example/pp-123",
			TransactionStatus: "Pending",
		})
	})

	resp, err := g.CreatePaymentIntent(context.Background(), &PaymentIntentRequest{
		OrderID:     "o1",
		AmountCents: 5625,
		Currency:    "USD",
		Description: "Combo x3",
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-1", gotAuth)
	assert.Equal(t, int64(5625), gotBody.Amount)
	assert.Equal(t, "o1", gotBody.ClientTransactionID)
	assert.Equal(t, "store-1", gotBody.StoreID)

	assert.Equal(t, "pp-123", resp.PaymentIntentID)
	assert.Equal(t, "https://pay.example/pp-123", resp.ClientSecret)
	assert.Equal(t, IntentStatusPending, resp.Status)
}

func TestPayPhone_ConfirmNormalizesStatus(t *testing.T) {
	g := newTestPayPhone(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(payphoneTransaction{
			TransactionStatus: "Approved",
			Amount:            5625,
			Currency:          "USD",
		})
	})

	resp, err := g.ConfirmPaymentIntent(context.Background(), "pp-123")
	require.NoError(t, err)
	assert.Equal(t, IntentStatusSucceeded, resp.Status)
}

func TestPayPhone_ErrorStatus(t *testing.T) {
	g := newTestPayPhone(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := g.CreatePaymentIntent(context.Background(), &PaymentIntentRequest{OrderID: "o1"})
	assert.Error(t, err)
}

func TestForConfig(t *testing.T) {
	stripeCfg := &domain.ProviderConfig{
		ProviderID: domain.ProviderStripe,
		Kind:       domain.ProviderKindPayment,
		SecretKey:  "sk_test",
	}
	g, err := ForConfig(stripeCfg)
	require.NoError(t, err)
	assert.Equal(t, "stripe", g.Name())

	payphoneCfg := &domain.ProviderConfig{
		ProviderID: domain.ProviderPayPhone,
		Kind:       domain.ProviderKindPayment,
		SecretKey:  "tok",
		Extra:      map[string]interface{}{"store_id": "s1"},
	}
	g, err = ForConfig(payphoneCfg)
	require.NoError(t, err)
	assert.Equal(t, "payphone", g.Name())

	_, err = ForConfig(&domain.ProviderConfig{ProviderID: "acme", Kind: domain.ProviderKindPayment})
	assert.ErrorIs(t, err, ErrUnsupportedProvider)

	_, err = ForConfig(&domain.ProviderConfig{ProviderID: domain.ProviderStripe, Kind: domain.ProviderKindEmail})
	assert.Error(t, err)
}
