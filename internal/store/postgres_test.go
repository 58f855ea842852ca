package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderSelect(t *testing.T) {
	tests := []struct {
		name     string
		coll     string
		q        Query
		wantSQL  string
		wantArgs []interface{}
	}{
		{
			name:     "no conditions",
			coll:     "raffles",
			q:        Query{},
			wantSQL:  "SELECT * FROM raffles",
			wantArgs: nil,
		},
		{
			name:     "single equality",
			coll:     "raffles",
			q:        Query{}.Where(Eq("slug", "summer-raffle")),
			wantSQL:  "SELECT * FROM raffles WHERE slug = $1",
			wantArgs: []interface{}{"summer-raffle"},
		},
		{
			name:    "conditions compose with AND",
			coll:    "ticket_packages",
			q:       Query{}.Where(Eq("raffle_id", "r1"), Eq("is_active", true), IsNull("deleted_at")),
			wantSQL: "SELECT * FROM ticket_packages WHERE raffle_id = $1 AND is_active = $2 AND deleted_at IS NULL",
			wantArgs: []interface{}{"r1", true},
		},
		{
			name:     "set membership",
			coll:     "time_limited_offers",
			q:        Query{}.Where(In("ticket_package_id", []string{"p1", "p2"})),
			wantSQL:  "SELECT * FROM time_limited_offers WHERE ticket_package_id = ANY($1)",
			wantArgs: []interface{}{[]string{"p1", "p2"}},
		},
		{
			name:    "exists relation predicate",
			coll:    "time_limited_offers",
			q: Query{}.WhereExists(ExistsCond{
				Parent:     "ticket_packages",
				ParentKey:  "id",
				ForeignKey: "ticket_package_id",
				Cond:       Eq("tenant_id", "T1"),
			}),
			wantSQL:  "SELECT * FROM time_limited_offers WHERE EXISTS (SELECT 1 FROM ticket_packages WHERE ticket_packages.id = time_limited_offers.ticket_package_id AND ticket_packages.tenant_id = $1)",
			wantArgs: []interface{}{"T1"},
		},
		{
			name:     "order limit offset",
			coll:     "ticket_packages",
			q:        Query{Limit: 20, Offset: 40}.SortBy("display_order", false),
			wantSQL:  "SELECT * FROM ticket_packages ORDER BY display_order ASC LIMIT 20 OFFSET 40",
			wantArgs: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := renderSelect(tt.coll, tt.q)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, sql)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestRenderSelect_RejectsBadIdentifiers(t *testing.T) {
	_, _, err := renderSelect("raffles; DROP TABLE raffles", Query{})
	require.Error(t, err)

	_, _, err = renderSelect("raffles", Query{}.Where(Eq("slug = '' OR 1=1 --", "x")))
	require.Error(t, err)
}

func TestRenderInsert(t *testing.T) {
	rec := Record{"id": "p1", "name": "Combo", "amount": 20}

	sql, args, err := renderInsert("ticket_packages", rec)
	require.NoError(t, err)

	// Columns render in sorted order so output is deterministic
	assert.Equal(t, "INSERT INTO ticket_packages (amount, id, name) VALUES ($1, $2, $3)", sql)
	assert.Equal(t, []interface{}{20, "p1", "Combo"}, args)
}

func TestRenderInsert_EmptyRecord(t *testing.T) {
	_, _, err := renderInsert("ticket_packages", Record{})
	require.Error(t, err)
}

func TestRenderUpdate(t *testing.T) {
	q := Query{}.Where(Eq("id", "p1"))
	changes := Record{"name": "Mega Combo", "is_featured": true}

	sql, args, err := renderUpdate("ticket_packages", q, changes)
	require.NoError(t, err)

	assert.Equal(t, "UPDATE ticket_packages SET is_featured = $1, name = $2 WHERE id = $3", sql)
	assert.Equal(t, []interface{}{true, "Mega Combo", "p1"}, args)
}

func TestRenderDelete(t *testing.T) {
	q := Query{}.Where(Eq("id", "p1"), Eq("tenant_id", "T1"))

	sql, args, err := renderDelete("ticket_packages", q)
	require.NoError(t, err)

	assert.Equal(t, "DELETE FROM ticket_packages WHERE id = $1 AND tenant_id = $2", sql)
	assert.Equal(t, []interface{}{"p1", "T1"}, args)
}

func TestRenderCount(t *testing.T) {
	sql, args, err := renderCount("orders", Query{}.Where(Eq("status", "paid")))
	require.NoError(t, err)

	assert.Equal(t, "SELECT COUNT(*) FROM orders WHERE status = $1", sql)
	assert.Equal(t, []interface{}{"paid"}, args)
}

func TestQuery_WhereDoesNotMutate(t *testing.T) {
	base := Query{}.Where(Eq("raffle_id", "r1"))
	derived := base.Where(Eq("is_active", true))

	assert.Len(t, base.Conds, 1)
	assert.Len(t, derived.Conds, 2)
}
