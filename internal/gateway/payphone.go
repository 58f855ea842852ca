package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const payphoneBaseURL = "https://pay.payphonetodoesposible.com/api"

// PayPhoneGateway implements PaymentGateway against the PayPhone REST
// API. PayPhone publishes no Go SDK, so requests are built directly.
type PayPhoneGateway struct {
	token   string
	storeID string
	baseURL string
	http    *http.Client
}

// NewPayPhoneGateway creates a gateway bound to one tenant's token
func NewPayPhoneGateway(token, storeID string) *PayPhoneGateway {
	return &PayPhoneGateway{
		token:   token,
		storeID: storeID,
		baseURL: payphoneBaseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

type payphonePrepareRequest struct {
	Amount              int64  `json:"amount"`
	ClientTransactionID string `json:"clientTransactionId"`
	Currency            string `json:"currency"`
	StoreID             string `json:"storeId,omitempty"`
	Reference           string `json:"reference,omitempty"`
	ResponseRequired    bool   `json:"responseRequired"`
}

type payphoneTransaction struct {
	PaymentID         string `json:"paymentId"`
	PayWithCardURL    string `json:"payWithCard"`
	TransactionStatus string `json:"transactionStatus"`
	Amount            int64  `json:"amount"`
	Currency          string `json:"currency"`
}

// CreatePaymentIntent prepares a PayPhone payment button transaction
func (g *PayPhoneGateway) CreatePaymentIntent(ctx context.Context, req *PaymentIntentRequest) (*PaymentIntentResponse, error) {
	body := payphonePrepareRequest{
		Amount:              req.AmountCents,
		ClientTransactionID: req.OrderID,
		Currency:            req.Currency,
		StoreID:             g.storeID,
		Reference:           req.Description,
		ResponseRequired:    true,
	}

	var tx payphoneTransaction
	if err := g.do(ctx, http.MethodPost, "/button/Prepare", body, &tx); err != nil {
		return nil, err
	}

	return &PaymentIntentResponse{
		PaymentIntentID: tx.PaymentID,
		ClientSecret:    tx.PayWithCardURL,
		Status:          normalizePayphoneStatus(tx.TransactionStatus),
		AmountCents:     req.AmountCents,
		Currency:        req.Currency,
	}, nil
}

// ConfirmPaymentIntent retrieves the state of a PayPhone transaction
func (g *PayPhoneGateway) ConfirmPaymentIntent(ctx context.Context, paymentIntentID string) (*PaymentIntentResponse, error) {
	var tx payphoneTransaction
	path := fmt.Sprintf("/Sale/%s", paymentIntentID)
	if err := g.do(ctx, http.MethodGet, path, nil, &tx); err != nil {
		return nil, err
	}

	return &PaymentIntentResponse{
		PaymentIntentID: paymentIntentID,
		Status:          normalizePayphoneStatus(tx.TransactionStatus),
		AmountCents:     tx.Amount,
		Currency:        tx.Currency,
	}, nil
}

// Refund reverses a PayPhone transaction
func (g *PayPhoneGateway) Refund(ctx context.Context, paymentIntentID string) error {
	body := map[string]string{"id": paymentIntentID}
	return g.do(ctx, http.MethodPost, "/Sale/Reverse", body, nil)
}

// Name returns the gateway name
func (g *PayPhoneGateway) Name() string {
	return "payphone"
}

func (g *PayPhoneGateway) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.token)

	resp, err := g.http.Do(req)
	if err != nil {
		return fmt.Errorf("payphone request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("payphone request failed with status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func normalizePayphoneStatus(status string) string {
	switch status {
	case "Approved":
		return IntentStatusSucceeded
	case "Canceled", "Rejected":
		return IntentStatusFailed
	default:
		return IntentStatusPending
	}
}
