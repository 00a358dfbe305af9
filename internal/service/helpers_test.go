package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/AcebergChristian/jushuitan-sub000/internal/database/dbtest"
	"github.com/AcebergChristian/jushuitan-sub000/internal/metrics"
	"github.com/AcebergChristian/jushuitan-sub000/internal/model"
	"github.com/AcebergChristian/jushuitan-sub000/internal/ordersource"
	"github.com/AcebergChristian/jushuitan-sub000/internal/repository"
	"github.com/AcebergChristian/jushuitan-sub000/internal/synclock"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

var (
	testLoc  = time.FixedZone("CST", 8*3600)
	fixedNow = time.Date(2026, 1, 15, 20, 0, 0, 0, testLoc)
)

type testEnv struct {
	db           *gorm.DB
	orders       repository.OrderRepository
	goods        repository.GoodsRepository
	stores       repository.StoreRepository
	users        repository.UserRepository
	satellite    repository.SatelliteRepository
	audit        repository.AuditRepository
	stats        repository.StatisticsRepository
	tx           repository.TransactionManager
	entitlements *EntitlementResolver
	locker       *synclock.MemoryLocker
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := dbtest.NewTestDB(t)
	e := &testEnv{
		db:        db,
		orders:    repository.NewOrderRepository(db),
		goods:     repository.NewGoodsRepository(db),
		stores:    repository.NewStoreRepository(db),
		users:     repository.NewUserRepository(db),
		satellite: repository.NewSatelliteRepository(db),
		audit:     repository.NewAuditRepository(db),
		stats:     repository.NewStatisticsRepository(db),
		tx:        repository.NewTransactionManager(db),
		locker:    synclock.NewMemoryLocker(),
	}
	e.entitlements = NewEntitlementResolver(e.users, e.goods)
	return e
}

func (e *testEnv) syncService(t *testing.T, src OrderSource, events EventPublisher) SyncService {
	return NewSyncService(src, e.orders, e.goods, e.stores, e.audit, e.tx, e.locker, metrics.NewRecorder(), events,
		zaptest.NewLogger(t), SyncOptions{Location: testLoc, BatchSize: 2, Now: func() time.Time { return fixedNow }})
}

func (e *testEnv) createUser(t *testing.T, name, role string, ents ...model.Entitlement) *model.User {
	t.Helper()
	u := &model.User{
		Username:    name,
		Email:       name + "@example.com",
		Password:    "x",
		Role:        role,
		IsActive:    true,
		GoodsStores: ents,
	}
	require.NoError(t, e.users.Create(context.Background(), u))
	return u
}

func viewerOf(u *model.User) Viewer {
	return Viewer{ID: u.ID.String(), Role: u.Role}
}

func day(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02", s, testLoc)
	if err != nil {
		panic(err)
	}
	return t
}

func clock(d, c string) time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04:05", d+" "+c, testLoc)
	if err != nil {
		panic(err)
	}
	return t
}

// rawOrder builds an upstream order carrying one line item per item id
func rawOrder(oid, shop, at string, pay, drp float64, status string, items ...string) model.RawOrder {
	goods := make([]interface{}, 0, len(items))
	for _, id := range items {
		goods = append(goods, map[string]interface{}{"shopIid": id, "itemName": "name-" + id})
	}
	return model.RawOrder{
		"oid":                        oid,
		"soId":                       "so-" + oid,
		"shopId":                     shop,
		"shopName":                   "Shop " + shop,
		"orderStatus":                status,
		"payAmount":                  pay,
		"paidAmount":                 pay,
		"drpAmount":                  drp,
		"orderTime":                  at,
		"disInnerOrderGoodsViewList": goods,
	}
}

type fakeSource struct {
	mu    sync.Mutex
	gross []model.RawOrder
	net   []model.RawOrder
	err   error
	calls int
}

func (f *fakeSource) set(gross, net []model.RawOrder) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gross, f.net = gross, net
}

func (f *fakeSource) Fetch(_ context.Context, _ time.Time, view ordersource.View) ([]model.RawOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if view == ordersource.Net {
		return f.net, nil
	}
	return f.gross, nil
}

type recordedEvent struct {
	name string
	data interface{}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (p *recordingPublisher) Publish(event string, data interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, recordedEvent{name: event, data: data})
}
