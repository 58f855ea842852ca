package tenancy

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sorteocloud/raffle-backend/internal/store"
)

// recordingClient captures the queries and records the guard forwards
type recordingClient struct {
	lastCollection string
	lastQuery      store.Query
	lastRecord     store.Record
	err            error
}

func (r *recordingClient) Select(ctx context.Context, collection string, q store.Query) ([]store.Record, error) {
	r.lastCollection, r.lastQuery = collection, q
	return nil, r.err
}

func (r *recordingClient) Count(ctx context.Context, collection string, q store.Query) (int64, error) {
	r.lastCollection, r.lastQuery = collection, q
	return 0, r.err
}

func (r *recordingClient) Insert(ctx context.Context, collection string, rec store.Record) error {
	r.lastCollection, r.lastRecord = collection, rec
	return r.err
}

func (r *recordingClient) Update(ctx context.Context, collection string, q store.Query, changes store.Record) (int64, error) {
	r.lastCollection, r.lastQuery, r.lastRecord = collection, q, changes
	return 0, r.err
}

func (r *recordingClient) Delete(ctx context.Context, collection string, q store.Query) (int64, error) {
	r.lastCollection, r.lastQuery = collection, q
	return 0, r.err
}

func newTestGuard() (*Guard, *recordingClient) {
	rec := &recordingClient{}
	return NewGuard(rec, DefaultGuardConfig()), rec
}

func tenantCtx(id string) context.Context {
	return WithScope(context.Background(), TenantScope(id))
}

func TestGuard_SelectInjectsTenantFilter(t *testing.T) {
	guard, rec := newTestGuard()

	callerQuery := store.Query{}.Where(store.Eq("raffle_id", "r1"))
	_, err := guard.Select(tenantCtx("T1"), "ticket_packages", callerQuery)
	require.NoError(t, err)

	// Caller predicate survives and the tenant filter composes via AND
	require.Len(t, rec.lastQuery.Conds, 2)
	assert.Equal(t, store.Eq("raffle_id", "r1"), rec.lastQuery.Conds[0])
	assert.Equal(t, store.Eq("tenant_id", "T1"), rec.lastQuery.Conds[1])
}

func TestGuard_GlobalViewBypassesFilter(t *testing.T) {
	guard, rec := newTestGuard()

	ctx := WithScope(context.Background(), GlobalScope())
	_, err := guard.Select(ctx, "ticket_packages", store.Query{})
	require.NoError(t, err)

	assert.Empty(t, rec.lastQuery.Conds, "global admin view must not be filtered")
	assert.Empty(t, rec.lastQuery.Exists)
}

func TestGuard_AdminWithTenantStillFiltered(t *testing.T) {
	guard, rec := newTestGuard()

	ctx := WithScope(context.Background(), AdminTenantScope("T1"))
	_, err := guard.Select(ctx, "ticket_packages", store.Query{})
	require.NoError(t, err)

	require.Len(t, rec.lastQuery.Conds, 1)
	assert.Equal(t, store.Eq("tenant_id", "T1"), rec.lastQuery.Conds[0])
}

func TestGuard_GlobalCollectionNeverFiltered(t *testing.T) {
	guard, rec := newTestGuard()

	// Even with a tenant scope, the tenants collection is shared
	_, err := guard.Select(tenantCtx("T1"), "tenants", store.Query{})
	require.NoError(t, err)
	assert.Empty(t, rec.lastQuery.Conds)

	// And it works with no scope at all
	_, err = guard.Select(context.Background(), "tenants", store.Query{})
	require.NoError(t, err)
}

func TestGuard_FailsClosedWithoutScope(t *testing.T) {
	guard, _ := newTestGuard()

	_, err := guard.Select(context.Background(), "ticket_packages", store.Query{})
	assert.ErrorIs(t, err, ErrScopeNotSet)

	err = guard.Insert(context.Background(), "orders", store.Record{"id": "o1"})
	assert.ErrorIs(t, err, ErrScopeNotSet)
}

func TestGuard_NonAdminScopeWithoutTenantFailsClosed(t *testing.T) {
	guard, _ := newTestGuard()

	ctx := WithScope(context.Background(), Scope{})
	_, err := guard.Select(ctx, "ticket_packages", store.Query{})
	assert.ErrorIs(t, err, ErrScopeNotSet)
}

func TestGuard_RelatedCollectionFiltersThroughParent(t *testing.T) {
	guard, rec := newTestGuard()

	_, err := guard.Select(tenantCtx("T1"), "time_limited_offers", store.Query{})
	require.NoError(t, err)

	assert.Empty(t, rec.lastQuery.Conds, "offers have no direct tenant column")
	require.Len(t, rec.lastQuery.Exists, 1)
	ex := rec.lastQuery.Exists[0]
	assert.Equal(t, "ticket_packages", ex.Parent)
	assert.Equal(t, "ticket_package_id", ex.ForeignKey)
	assert.Equal(t, store.Eq("tenant_id", "T1"), ex.Cond)
}

func TestGuard_InsertStampsTenant(t *testing.T) {
	guard, rec := newTestGuard()

	err := guard.Insert(tenantCtx("T1"), "ticket_packages", store.Record{"id": "p1"})
	require.NoError(t, err)

	assert.Equal(t, "T1", rec.lastRecord["tenant_id"])
	assert.Equal(t, "p1", rec.lastRecord["id"])
}

func TestGuard_InsertDoesNotMutateCallerRecord(t *testing.T) {
	guard, _ := newTestGuard()

	original := store.Record{"id": "p1"}
	err := guard.Insert(tenantCtx("T1"), "ticket_packages", original)
	require.NoError(t, err)

	_, present := original["tenant_id"]
	assert.False(t, present, "guard must not mutate the caller's record")
}

func TestGuard_InsertKeepsMatchingTenant(t *testing.T) {
	guard, rec := newTestGuard()

	err := guard.Insert(tenantCtx("T1"), "ticket_packages", store.Record{"id": "p1", "tenant_id": "T1"})
	require.NoError(t, err)
	assert.Equal(t, "T1", rec.lastRecord["tenant_id"])
}

func TestGuard_InsertRejectsMismatchedTenant(t *testing.T) {
	guard, _ := newTestGuard()

	err := guard.Insert(tenantCtx("T1"), "ticket_packages", store.Record{"id": "p1", "tenant_id": "T2"})
	assert.ErrorIs(t, err, ErrTenantMismatch)
}

func TestGuard_UpdateAndDeleteFiltered(t *testing.T) {
	guard, rec := newTestGuard()

	_, err := guard.Update(tenantCtx("T1"), "ticket_packages",
		store.Query{}.Where(store.Eq("id", "p1")), store.Record{"name": "x"})
	require.NoError(t, err)
	require.Len(t, rec.lastQuery.Conds, 2)
	assert.Equal(t, store.Eq("tenant_id", "T1"), rec.lastQuery.Conds[1])

	_, err = guard.Delete(tenantCtx("T1"), "ticket_packages",
		store.Query{}.Where(store.Eq("id", "p1")))
	require.NoError(t, err)
	require.Len(t, rec.lastQuery.Conds, 2)
	assert.Equal(t, store.Eq("tenant_id", "T1"), rec.lastQuery.Conds[1])
}

func TestGuard_UnknownCollectionPassesThrough(t *testing.T) {
	guard, rec := newTestGuard()

	_, err := guard.Select(context.Background(), "schema_migrations", store.Query{})
	require.NoError(t, err)
	assert.Empty(t, rec.lastQuery.Conds)
}

func TestGuard_StoreErrorsPassThrough(t *testing.T) {
	guard, rec := newTestGuard()
	storeErr := errors.New("connection reset")
	rec.err = storeErr

	_, err := guard.Select(tenantCtx("T1"), "ticket_packages", store.Query{})
	assert.ErrorIs(t, err, storeErr)
}
