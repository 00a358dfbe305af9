package service

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"github.com/AcebergChristian/jushuitan-sub000/internal/model"
	"github.com/AcebergChristian/jushuitan-sub000/internal/ordersource"
	"github.com/AcebergChristian/jushuitan-sub000/internal/repository"
	"github.com/AcebergChristian/jushuitan-sub000/internal/synclock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncAll_DedupOnResync(t *testing.T) {
	e := newTestEnv(t)
	src := &fakeSource{}
	svc := e.syncService(t, src, nil)
	ctx := context.Background()

	o1 := rawOrder("O1", "S1", "2026-01-15 10:00:00", 100, 40, model.OrderStatusSent, "IT1")
	src.set([]model.RawOrder{o1}, []model.RawOrder{o1})
	res, err := svc.SyncAll(ctx, day("2026-01-15"))
	require.NoError(t, err)
	assert.Equal(t, 1, res.ProcessedCount)

	o1b := rawOrder("O1", "S1", "2026-01-15 10:00:00", 150, 40, model.OrderStatusSent, "IT1")
	o2 := rawOrder("O2", "S1", "2026-01-15 11:00:00", 50, 20, model.OrderStatusSent, "IT2")
	src.set([]model.RawOrder{o1b, o2}, []model.RawOrder{o1b, o2})
	res, err = svc.SyncAll(ctx, day("2026-01-15"))
	require.NoError(t, err)
	assert.Equal(t, 2, res.ProcessedCount)
	assert.Equal(t, 2, res.GoodsProcessedCount)
	assert.Equal(t, 1, res.StoresProcessedCount)

	orders, err := e.orders.ListBySyncDate(ctx, "2026-01-15")
	require.NoError(t, err)
	got := map[string]float64{}
	for _, o := range orders {
		got[o.OrderID] = o.PayAmount
	}
	assert.Equal(t, map[string]float64{"O1": 150, "O2": 50}, got)
}

func TestSyncAll_GrossNetMerge(t *testing.T) {
	e := newTestEnv(t)
	src := &fakeSource{}
	svc := e.syncService(t, src, nil)
	ctx := context.Background()

	at := "2026-01-15 10:00:00"
	sent := rawOrder("O1", "S1", at, 100, 30, model.OrderStatusSent, "IT1")
	cancelled := rawOrder("O2", "S1", at, 80, 25, model.OrderStatusCancelled, "IT1")
	src.set([]model.RawOrder{sent, cancelled}, []model.RawOrder{sent})

	_, err := svc.SyncAll(ctx, day("2026-01-15"))
	require.NoError(t, err)

	rows, _, err := e.goods.List(ctx, repository.GoodsFilter{Limit: 10})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	row := rows[0]
	assert.Equal(t, "IT1_"+at, row.GoodsKey)
	assert.Equal(t, 180.0, row.SalesAmount)
	assert.Equal(t, 30.0, row.SalesCost)
	assert.Equal(t, 150.0, row.GrossProfit1)
	assert.Equal(t, "2026-01-15", row.SyncDate)
	assert.Equal(t, syncCreator, row.Creator)

	stores, err := e.stores.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, stores, 1)
	assert.Equal(t, "S1_20260115", stores[0].StoreID)
	assert.Equal(t, 2, stores[0].OrderCount)
	assert.Equal(t, 180.0, stores[0].TotalSalesAmount)
	assert.Equal(t, 30.0, stores[0].TotalSalesCost)
	assert.Equal(t, 150.0, stores[0].GrossProfit1)
}

type goodsSnapshot struct {
	Key   string
	Sales float64
	Cost  float64
	GP1   float64
	Rate  float64
}

func snapshot(t *testing.T, e *testEnv) []goodsSnapshot {
	t.Helper()
	rows, _, err := e.goods.List(context.Background(), repository.GoodsFilter{Limit: 100})
	require.NoError(t, err)
	out := make([]goodsSnapshot, 0, len(rows))
	for _, r := range rows {
		out = append(out, goodsSnapshot{r.GoodsKey, r.SalesAmount, r.SalesCost, r.GrossProfit1, r.GrossProfit1Rate})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func TestSyncAggregates_Idempotent(t *testing.T) {
	e := newTestEnv(t)
	src := &fakeSource{}
	svc := e.syncService(t, src, nil)
	ctx := context.Background()

	gross := []model.RawOrder{
		rawOrder("O1", "S1", "2026-01-15 10:00:00", 100, 30, model.OrderStatusSent, "A", "B"),
		rawOrder("O2", "S2", "2026-01-15 12:00:00", 60, 10, model.OrderStatusSent, "C"),
		rawOrder("O3", "S2", "2026-01-15 13:00:00", 0, 0, model.OrderStatusSent, "D"),
	}
	src.set(gross, gross)

	first, err := svc.SyncAggregates(ctx, day("2026-01-15"))
	require.NoError(t, err)
	before := snapshot(t, e)

	second, err := svc.SyncAggregates(ctx, day("2026-01-15"))
	require.NoError(t, err)
	assert.Equal(t, first.GoodsProcessedCount, second.GoodsProcessedCount)
	assert.Equal(t, first.StoresProcessedCount, second.StoresProcessedCount)
	assert.Equal(t, before, snapshot(t, e))
	assert.Len(t, before, 4)

	// Aggregates-only sync stores no orders.
	total, err := e.orders.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, total)

	// Zero-sales guard.
	for _, s := range before {
		if s.Sales <= 0 {
			assert.Zero(t, s.Rate)
		}
	}
}

func TestSyncAll_RemovesStaleKeysOfTheDay(t *testing.T) {
	e := newTestEnv(t)
	src := &fakeSource{}
	svc := e.syncService(t, src, nil)
	ctx := context.Background()

	a := rawOrder("O1", "S1", "2026-01-15 10:00:00", 100, 30, model.OrderStatusSent, "A")
	b := rawOrder("O2", "S2", "2026-01-15 11:00:00", 50, 10, model.OrderStatusSent, "B")
	src.set([]model.RawOrder{a, b}, []model.RawOrder{a, b})
	_, err := svc.SyncAll(ctx, day("2026-01-15"))
	require.NoError(t, err)

	other := rawOrder("O9", "S9", "2026-01-16 09:00:00", 10, 1, model.OrderStatusSent, "Z")
	src.set([]model.RawOrder{other}, []model.RawOrder{other})
	_, err = svc.SyncAll(ctx, day("2026-01-16"))
	require.NoError(t, err)

	src.set([]model.RawOrder{a}, []model.RawOrder{a})
	_, err = svc.SyncAll(ctx, day("2026-01-15"))
	require.NoError(t, err)

	keys := []string{}
	for _, s := range snapshot(t, e) {
		keys = append(keys, s.Key)
	}
	assert.Equal(t, []string{"A_2026-01-15 10:00:00", "Z_2026-01-16 09:00:00"}, keys)

	stores, err := e.stores.List(ctx, nil)
	require.NoError(t, err)
	ids := []string{}
	for _, s := range stores {
		ids = append(ids, s.StoreID)
	}
	assert.ElementsMatch(t, []string{"S1_20260115", "S9_20260116"}, ids)
}

func TestSyncAll_UpstreamFailure(t *testing.T) {
	e := newTestEnv(t)
	src := &fakeSource{err: fmt.Errorf("%w: status 500", ordersource.ErrUpstreamFetch)}
	pub := &recordingPublisher{}
	svc := e.syncService(t, src, pub)

	_, err := svc.SyncAll(context.Background(), day("2026-01-15"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ordersource.ErrUpstreamFetch)

	total, err := e.orders.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, total)

	require.Len(t, pub.events, 1)
	assert.Equal(t, EventSyncFailed, pub.events[0].name)

	// The lock is released after a failure.
	release, err := e.locker.Acquire(context.Background(), "sync:2026-01-15")
	require.NoError(t, err)
	release()
}

func TestSyncAll_LockedDay(t *testing.T) {
	e := newTestEnv(t)
	src := &fakeSource{}
	svc := e.syncService(t, src, nil)
	ctx := context.Background()

	release, err := e.locker.Acquire(ctx, "sync:2026-01-15")
	require.NoError(t, err)
	defer release()

	_, err = svc.SyncAll(ctx, day("2026-01-15"))
	assert.ErrorIs(t, err, synclock.ErrLocked)
	assert.Zero(t, src.calls)

	// Other days are not blocked.
	_, err = svc.SyncAll(ctx, day("2026-01-16"))
	assert.NoError(t, err)
}

func TestSyncAll_PublishesCompletion(t *testing.T) {
	e := newTestEnv(t)
	o := rawOrder("O1", "S1", "2026-01-15 10:00:00", 10, 1, model.OrderStatusSent, "A")
	src := &fakeSource{gross: []model.RawOrder{o}, net: []model.RawOrder{o}}
	pub := &recordingPublisher{}
	svc := e.syncService(t, src, pub)

	res, err := svc.SyncAll(context.Background(), day("2026-01-15"))
	require.NoError(t, err)
	assert.Equal(t, "2026-01-15", res.SyncDate)
	assert.NotEmpty(t, res.Message)

	require.Len(t, pub.events, 1)
	assert.Equal(t, EventSyncCompleted, pub.events[0].name)
	assert.Equal(t, res, pub.events[0].data)
}

func TestSyncAll_MissingOrderTimeUsesClock(t *testing.T) {
	e := newTestEnv(t)
	o := rawOrder("O1", "S1", "", 10, 1, model.OrderStatusSent, "A")
	src := &fakeSource{gross: []model.RawOrder{o}, net: []model.RawOrder{o}}
	svc := e.syncService(t, src, nil)

	_, err := svc.SyncAll(context.Background(), day("2026-01-15"))
	require.NoError(t, err)

	rows := snapshot(t, e)
	require.Len(t, rows, 1)
	assert.Equal(t, "A_2026-01-15 20:00:00", rows[0].Key)
}
