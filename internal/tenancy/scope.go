// Package tenancy enforces tenant isolation on data access. A Scope is
// established once per request and threaded through context.Context;
// the Guard applies it to every row-store operation. There is no ambient
// process-wide tenant state.
package tenancy

import (
	"context"
	"errors"
)

var (
	// ErrScopeNotSet is returned when a tenant-scoped collection is
	// accessed without an established scope. Access fails closed.
	ErrScopeNotSet = errors.New("tenant scope not set")

	// ErrTenantMismatch is returned when an insert carries a tenant_id
	// different from the scope's tenant
	ErrTenantMismatch = errors.New("record tenant does not match scope")
)

// Scope identifies the tenant (and privilege level) of the current request
type Scope struct {
	TenantID *string
	IsAdmin  bool
}

// TenantScope creates a scope bound to one tenant
func TenantScope(tenantID string) Scope {
	return Scope{TenantID: &tenantID}
}

// AdminTenantScope creates an elevated scope still bound to one tenant
func AdminTenantScope(tenantID string) Scope {
	return Scope{TenantID: &tenantID, IsAdmin: true}
}

// GlobalScope creates the elevated cross-tenant scope. Only this scope
// sees every tenant's rows.
func GlobalScope() Scope {
	return Scope{IsAdmin: true}
}

// Global reports whether the scope bypasses tenant filtering entirely
func (s Scope) Global() bool {
	return s.IsAdmin && s.TenantID == nil
}

type scopeKey struct{}

// WithScope returns a context carrying the scope
func WithScope(ctx context.Context, s Scope) context.Context {
	return context.WithValue(ctx, scopeKey{}, s)
}

// FromContext extracts the scope from the context
func FromContext(ctx context.Context) (Scope, bool) {
	s, ok := ctx.Value(scopeKey{}).(Scope)
	return s, ok
}
