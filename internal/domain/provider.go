package domain

import (
	"time"
)

// Provider identifiers for payment and email credential records
const (
	ProviderStripe   = "stripe"
	ProviderPayPhone = "payphone"
	ProviderResend   = "resend"
)

// ProviderKind distinguishes payment from email provider configs
type ProviderKind string

const (
	ProviderKindPayment ProviderKind = "payment"
	ProviderKindEmail   ProviderKind = "email"
)

// ProviderConfig holds per-tenant credentials for a payment or email provider.
// Extra carries provider-specific fields (store IDs, regions) that have no
// dedicated column.
type ProviderConfig struct {
	ID         string                 `json:"id"`
	TenantID   string                 `json:"tenant_id"`
	ProviderID string                 `json:"provider_id"` // stripe, payphone, resend
	Kind       ProviderKind           `json:"kind"`
	PublicKey  string                 `json:"public_key,omitempty"`
	SecretKey  string                 `json:"secret_key,omitempty"`
	Extra      map[string]interface{} `json:"extra,omitempty"`
	IsDefault  bool                   `json:"is_default"`
	IsActive   bool                   `json:"is_active"`
	CreatedAt  time.Time              `json:"created_at"`
	UpdatedAt  time.Time              `json:"updated_at"`
}
