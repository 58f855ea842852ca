package tenancy

import (
	"context"

	"github.com/sorteocloud/raffle-backend/internal/store"
)

// Relation maps a collection with no tenant column to the parent
// collection that carries one. The guard filters such collections with
// an EXISTS predicate against the parent.
type Relation struct {
	Parent          string
	ParentKey       string
	ForeignKey      string
	ParentTenantCol string
}

// GuardConfig declares which collections are tenant-partitioned.
// Collections absent from all three sets pass through unmodified.
type GuardConfig struct {
	// TenantColumn is the partition column on scoped collections
	TenantColumn string
	// Scoped collections carry TenantColumn directly
	Scoped map[string]bool
	// Global collections are shared across tenants and never filtered
	Global map[string]bool
	// Related collections are scoped through a parent; fixed mapping,
	// never inferred
	Related map[string]Relation
}

// DefaultGuardConfig returns the collection partitioning for this service
func DefaultGuardConfig() GuardConfig {
	return GuardConfig{
		TenantColumn: "tenant_id",
		Scoped: map[string]bool{
			"raffles":          true,
			"ticket_packages":  true,
			"provider_configs": true,
			"orders":           true,
			"referrals":        true,
		},
		Global: map[string]bool{
			"tenants": true,
		},
		Related: map[string]Relation{
			// Offers hang off a package and have no tenant column of
			// their own
			"time_limited_offers": {
				Parent:          "ticket_packages",
				ParentKey:       "id",
				ForeignKey:      "ticket_package_id",
				ParentTenantCol: "tenant_id",
			},
		},
	}
}

// Guard wraps a store.Client and injects tenant predicates according to
// the scope carried in the context. It implements store.Client itself so
// repositories stay unaware of tenancy. Underlying store errors pass
// through unmodified.
type Guard struct {
	next store.Client
	cfg  GuardConfig
}

// NewGuard creates a Guard over the given client
func NewGuard(next store.Client, cfg GuardConfig) *Guard {
	if cfg.TenantColumn == "" {
		cfg.TenantColumn = "tenant_id"
	}
	return &Guard{next: next, cfg: cfg}
}

// decision captures how one operation must be scoped
type decision struct {
	passthrough bool
	tenantID    string
	relation    *Relation
}

// decide evaluates the scoping decision table for a collection.
// Order matters: the global-view bypass is checked before anything else.
func (g *Guard) decide(ctx context.Context, collection string) (decision, error) {
	scoped := g.cfg.Scoped[collection]
	rel, related := g.cfg.Related[collection]

	if !scoped && !related {
		// Global or unknown collections are never filtered
		return decision{passthrough: true}, nil
	}

	s, ok := FromContext(ctx)
	if !ok {
		return decision{}, ErrScopeNotSet
	}

	if s.Global() {
		return decision{passthrough: true}, nil
	}

	if s.TenantID == nil {
		return decision{}, ErrScopeNotSet
	}

	d := decision{tenantID: *s.TenantID}
	if related {
		d.relation = &rel
	}
	return d, nil
}

// scopeQuery appends the tenant predicate to the caller's query,
// composing with whatever predicates are already attached
func (g *Guard) scopeQuery(q store.Query, d decision) store.Query {
	if d.passthrough {
		return q
	}
	if d.relation != nil {
		return q.WhereExists(store.ExistsCond{
			Parent:     d.relation.Parent,
			ParentKey:  d.relation.ParentKey,
			ForeignKey: d.relation.ForeignKey,
			Cond:       store.Eq(d.relation.ParentTenantCol, d.tenantID),
		})
	}
	return q.Where(store.Eq(g.cfg.TenantColumn, d.tenantID))
}

// Select applies the tenant predicate and delegates
func (g *Guard) Select(ctx context.Context, collection string, q store.Query) ([]store.Record, error) {
	d, err := g.decide(ctx, collection)
	if err != nil {
		return nil, err
	}
	return g.next.Select(ctx, collection, g.scopeQuery(q, d))
}

// Count applies the tenant predicate and delegates
func (g *Guard) Count(ctx context.Context, collection string, q store.Query) (int64, error) {
	d, err := g.decide(ctx, collection)
	if err != nil {
		return 0, err
	}
	return g.next.Count(ctx, collection, g.scopeQuery(q, d))
}

// Insert stamps the scope's tenant onto the record when the collection
// is tenant-partitioned and the caller did not set one. An explicitly
// supplied matching tenant is left alone; a mismatched one is rejected.
// Related collections inherit tenancy through their parent row.
func (g *Guard) Insert(ctx context.Context, collection string, rec store.Record) error {
	d, err := g.decide(ctx, collection)
	if err != nil {
		return err
	}

	if !d.passthrough && d.relation == nil {
		if existing, ok := rec[g.cfg.TenantColumn]; ok && existing != nil && existing != "" {
			if existing != d.tenantID {
				return ErrTenantMismatch
			}
		} else {
			stamped := make(store.Record, len(rec)+1)
			for k, v := range rec {
				stamped[k] = v
			}
			stamped[g.cfg.TenantColumn] = d.tenantID
			rec = stamped
		}
	}

	return g.next.Insert(ctx, collection, rec)
}

// Update applies the tenant predicate and delegates
func (g *Guard) Update(ctx context.Context, collection string, q store.Query, changes store.Record) (int64, error) {
	d, err := g.decide(ctx, collection)
	if err != nil {
		return 0, err
	}
	return g.next.Update(ctx, collection, g.scopeQuery(q, d), changes)
}

// Delete applies the tenant predicate and delegates
func (g *Guard) Delete(ctx context.Context, collection string, q store.Query) (int64, error) {
	d, err := g.decide(ctx, collection)
	if err != nil {
		return 0, err
	}
	return g.next.Delete(ctx, collection, g.scopeQuery(q, d))
}
