package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sorteocloud/raffle-backend/internal/domain"
	"github.com/sorteocloud/raffle-backend/internal/store"
)

// fakeClient answers Select from canned records and counts mutations
type fakeClient struct {
	selectResults [][]store.Record
	selectCalls   int
	updates       []store.Record
	updateQueries []store.Query
	updateRows    []int64
	deleted       bool
}

func (f *fakeClient) Select(ctx context.Context, collection string, q store.Query) ([]store.Record, error) {
	if f.selectCalls >= len(f.selectResults) {
		return nil, nil
	}
	out := f.selectResults[f.selectCalls]
	f.selectCalls++
	return out, nil
}

func (f *fakeClient) Count(ctx context.Context, collection string, q store.Query) (int64, error) {
	return 0, nil
}

func (f *fakeClient) Insert(ctx context.Context, collection string, rec store.Record) error {
	return nil
}

func (f *fakeClient) Update(ctx context.Context, collection string, q store.Query, changes store.Record) (int64, error) {
	f.updates = append(f.updates, changes)
	f.updateQueries = append(f.updateQueries, q)
	if len(f.updateRows) >= len(f.updates) {
		return f.updateRows[len(f.updates)-1], nil
	}
	return 1, nil
}

func (f *fakeClient) Delete(ctx context.Context, collection string, q store.Query) (int64, error) {
	f.deleted = true
	return 1, nil
}

func packageRecord(stockLimit, currentStock int) store.Record {
	return store.Record{
		"id":               "p1",
		"tenant_id":        "T1",
		"raffle_id":        "r1",
		"amount":           int64(10),
		"price_multiplier": "1",
		"is_active":        true,
		"stock_limit":      int64(stockLimit),
		"current_stock":    int64(currentStock),
		"created_at":       time.Now(),
		"updated_at":       time.Now(),
	}
}

func TestConsumeStock_TakesOneUnit(t *testing.T) {
	client := &fakeClient{selectResults: [][]store.Record{{packageRecord(5, 2)}}}
	repo := NewStorePackageRepository(client)

	err := repo.ConsumeStock(context.Background(), "p1")
	require.NoError(t, err)

	require.Len(t, client.updates, 1)
	assert.Equal(t, 3, client.updates[0]["current_stock"])

	// The compare-and-set guards on the stock value that was read
	var sawStockCond bool
	for _, c := range client.updateQueries[0].Conds {
		if c.Field == "current_stock" {
			sawStockCond = true
			assert.Equal(t, store.OpEq, c.Op)
			assert.Equal(t, 2, c.Value)
		}
	}
	assert.True(t, sawStockCond)
}

func TestConsumeStock_SoldOut(t *testing.T) {
	client := &fakeClient{selectResults: [][]store.Record{{packageRecord(5, 5)}}}
	repo := NewStorePackageRepository(client)

	err := repo.ConsumeStock(context.Background(), "p1")
	assert.ErrorIs(t, err, domain.ErrSoldOut)
	assert.Empty(t, client.updates)
}

func TestConsumeStock_UnlimitedPackage(t *testing.T) {
	rec := packageRecord(0, 0)
	rec["stock_limit"] = nil
	client := &fakeClient{selectResults: [][]store.Record{{rec}}}
	repo := NewStorePackageRepository(client)

	err := repo.ConsumeStock(context.Background(), "p1")
	require.NoError(t, err)
	assert.Empty(t, client.updates, "unlimited packages need no stock write")
}

func TestConsumeStock_RetriesAfterLostRace(t *testing.T) {
	client := &fakeClient{
		selectResults: [][]store.Record{
			{packageRecord(5, 2)},
			{packageRecord(5, 3)},
		},
		updateRows: []int64{0, 1}, // first CAS loses, second wins
	}
	repo := NewStorePackageRepository(client)

	err := repo.ConsumeStock(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, client.updates, 2)
	assert.Equal(t, 4, client.updates[1]["current_stock"])
}

func TestConsumeStock_MissingPackage(t *testing.T) {
	client := &fakeClient{}
	repo := NewStorePackageRepository(client)

	err := repo.ConsumeStock(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReleaseStock_ReturnsOneUnit(t *testing.T) {
	client := &fakeClient{selectResults: [][]store.Record{{packageRecord(5, 3)}}}
	repo := NewStorePackageRepository(client)

	err := repo.ReleaseStock(context.Background(), "p1")
	require.NoError(t, err)

	require.Len(t, client.updates, 1)
	assert.Equal(t, 2, client.updates[0]["current_stock"])

	var sawStockCond bool
	for _, c := range client.updateQueries[0].Conds {
		if c.Field == "current_stock" {
			sawStockCond = true
			assert.Equal(t, store.OpEq, c.Op)
			assert.Equal(t, 3, c.Value)
		}
	}
	assert.True(t, sawStockCond)
}

func TestReleaseStock_AtZeroIsNoOp(t *testing.T) {
	client := &fakeClient{selectResults: [][]store.Record{{packageRecord(5, 0)}}}
	repo := NewStorePackageRepository(client)

	err := repo.ReleaseStock(context.Background(), "p1")
	require.NoError(t, err)
	assert.Empty(t, client.updates, "a release below zero must never be written")
}

func TestReleaseStock_UnlimitedPackage(t *testing.T) {
	rec := packageRecord(0, 0)
	rec["stock_limit"] = nil
	client := &fakeClient{selectResults: [][]store.Record{{rec}}}
	repo := NewStorePackageRepository(client)

	err := repo.ReleaseStock(context.Background(), "p1")
	require.NoError(t, err)
	assert.Empty(t, client.updates)
}

func TestSoftDelete_IdempotentOnDeleted(t *testing.T) {
	client := &fakeClient{updateRows: []int64{0}} // no live row matched
	repo := NewStorePackageRepository(client)

	err := repo.SoftDelete(context.Background(), "p1")
	assert.NoError(t, err, "deleting an already deleted package succeeds")
}

func TestReorder_AppliesEachPosition(t *testing.T) {
	client := &fakeClient{}
	repo := NewStorePackageRepository(client)

	err := repo.Reorder(context.Background(), []PackageOrder{
		{ID: "p1", DisplayOrder: 2},
		{ID: "p2", DisplayOrder: 1},
	})
	require.NoError(t, err)

	require.Len(t, client.updates, 2)
	assert.Equal(t, 2, client.updates[0]["display_order"])
	assert.Equal(t, 1, client.updates[1]["display_order"])
}

func TestReorder_MissingPackageFailsBatch(t *testing.T) {
	client := &fakeClient{updateRows: []int64{1, 0}}
	repo := NewStorePackageRepository(client)

	err := repo.Reorder(context.Background(), []PackageOrder{
		{ID: "p1", DisplayOrder: 1},
		{ID: "missing", DisplayOrder: 2},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
