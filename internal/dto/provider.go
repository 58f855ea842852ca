package dto

import (
	"time"

	"github.com/sorteocloud/raffle-backend/internal/domain"
)

// CreateProviderConfigRequest represents the request to register provider
// credentials for the tenant
type CreateProviderConfigRequest struct {
	ProviderID string                 `json:"provider_id" binding:"required"`
	Kind       string                 `json:"kind" binding:"required,oneof=payment email"`
	PublicKey  string                 `json:"public_key,omitempty"`
	SecretKey  string                 `json:"secret_key,omitempty"`
	Extra      map[string]interface{} `json:"extra,omitempty"`
	IsDefault  bool                   `json:"is_default"`
	IsActive   bool                   `json:"is_active"`
}

// Validate validates the CreateProviderConfigRequest
func (r *CreateProviderConfigRequest) Validate() (bool, string) {
	if r.ProviderID == "" {
		return false, "Provider ID is required"
	}
	if r.Kind != string(domain.ProviderKindPayment) && r.Kind != string(domain.ProviderKindEmail) {
		return false, "Kind must be payment or email"
	}
	if r.SecretKey == "" {
		return false, "Secret key is required"
	}
	return true, ""
}

// UpdateProviderConfigRequest represents the request to update provider
// credentials. Only non-nil fields are applied.
type UpdateProviderConfigRequest struct {
	PublicKey *string                `json:"public_key,omitempty"`
	SecretKey *string                `json:"secret_key,omitempty"`
	Extra     map[string]interface{} `json:"extra,omitempty"`
	IsDefault *bool                  `json:"is_default,omitempty"`
	IsActive  *bool                  `json:"is_active,omitempty"`
}

// Validate validates the UpdateProviderConfigRequest
func (r *UpdateProviderConfigRequest) Validate() (bool, string) {
	if r.SecretKey != nil && *r.SecretKey == "" {
		return false, "Secret key must not be empty"
	}
	return true, ""
}

// ProviderConfigResponse represents provider credentials with the secret
// masked
type ProviderConfigResponse struct {
	ID         string                 `json:"id"`
	ProviderID string                 `json:"provider_id"`
	Kind       string                 `json:"kind"`
	PublicKey  string                 `json:"public_key,omitempty"`
	SecretHint string                 `json:"secret_hint,omitempty"` // last 4 characters
	Extra      map[string]interface{} `json:"extra,omitempty"`
	IsDefault  bool                   `json:"is_default"`
	IsActive   bool                   `json:"is_active"`
	CreatedAt  time.Time              `json:"created_at"`
	UpdatedAt  time.Time              `json:"updated_at"`
}

// FromProviderConfig converts a domain ProviderConfig to its response
// form. The secret key never leaves the server; only a hint does.
func FromProviderConfig(cfg *domain.ProviderConfig) *ProviderConfigResponse {
	return &ProviderConfigResponse{
		ID:         cfg.ID,
		ProviderID: cfg.ProviderID,
		Kind:       string(cfg.Kind),
		PublicKey:  cfg.PublicKey,
		SecretHint: secretHint(cfg.SecretKey),
		Extra:      cfg.Extra,
		IsDefault:  cfg.IsDefault,
		IsActive:   cfg.IsActive,
		CreatedAt:  cfg.CreatedAt,
		UpdatedAt:  cfg.UpdatedAt,
	}
}

func secretHint(secret string) string {
	if len(secret) <= 4 {
		return ""
	}
	return "..." + secret[len(secret)-4:]
}

// ProviderConfigListResponse represents a list of provider configs
type ProviderConfigListResponse struct {
	Providers []*ProviderConfigResponse `json:"providers"`
	Total     int                       `json:"total"`
}
