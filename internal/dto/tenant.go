package dto

import (
	"regexp"
	"time"

	"github.com/sorteocloud/raffle-backend/internal/domain"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// CreateTenantRequest represents the request to onboard a tenant
type CreateTenantRequest struct {
	Name     string                 `json:"name" binding:"required,min=1,max=200"`
	Slug     string                 `json:"slug" binding:"required,min=1,max=100"`
	Domain   string                 `json:"domain,omitempty"`
	LogoURL  string                 `json:"logo_url,omitempty"`
	Settings map[string]interface{} `json:"settings,omitempty"`
}

// Validate validates the CreateTenantRequest
func (r *CreateTenantRequest) Validate() (bool, string) {
	if r.Name == "" {
		return false, "Tenant name is required"
	}
	if !slugPattern.MatchString(r.Slug) {
		return false, "Slug must be lowercase letters, digits and hyphens"
	}
	return true, ""
}

// UpdateTenantRequest represents the request to update a tenant.
// Only non-nil fields are applied; the slug is immutable.
type UpdateTenantRequest struct {
	Name     *string                `json:"name,omitempty"`
	Domain   *string                `json:"domain,omitempty"`
	LogoURL  *string                `json:"logo_url,omitempty"`
	Settings map[string]interface{} `json:"settings,omitempty"`
	IsActive *bool                  `json:"is_active,omitempty"`
}

// Validate validates the UpdateTenantRequest
func (r *UpdateTenantRequest) Validate() (bool, string) {
	if r.Name != nil && *r.Name == "" {
		return false, "Name must not be empty"
	}
	return true, ""
}

// TenantResponse represents a tenant
type TenantResponse struct {
	ID        string                 `json:"id"`
	Name      string                 `json:"name"`
	Slug      string                 `json:"slug"`
	Domain    string                 `json:"domain,omitempty"`
	LogoURL   string                 `json:"logo_url,omitempty"`
	Settings  map[string]interface{} `json:"settings,omitempty"`
	IsActive  bool                   `json:"is_active"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// FromTenant converts a domain Tenant to TenantResponse
func FromTenant(t *domain.Tenant) *TenantResponse {
	return &TenantResponse{
		ID:        t.ID,
		Name:      t.Name,
		Slug:      t.Slug,
		Domain:    t.Domain,
		LogoURL:   t.LogoURL,
		Settings:  t.Settings,
		IsActive:  t.IsActive,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// TenantListResponse represents a list of tenants
type TenantListResponse struct {
	Tenants []*TenantResponse `json:"tenants"`
	Total   int64             `json:"total"`
	Page    int               `json:"page"`
	Limit   int               `json:"limit"`
}
