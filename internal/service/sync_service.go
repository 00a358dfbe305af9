package service

import (
	"context"
	"fmt"
	"time"

	"github.com/AcebergChristian/jushuitan-sub000/internal/metrics"
	"github.com/AcebergChristian/jushuitan-sub000/internal/model"
	"github.com/AcebergChristian/jushuitan-sub000/internal/ordersource"
	"github.com/AcebergChristian/jushuitan-sub000/internal/reconcile"
	"github.com/AcebergChristian/jushuitan-sub000/internal/repository"
	"github.com/AcebergChristian/jushuitan-sub000/internal/synclock"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	syncKindAll   = "orders"
	syncKindGoods = "goods"

	EventSyncCompleted = "sync.completed"
	EventSyncFailed    = "sync.failed"

	syncCreator = "system"
)

// OrderSource fetches one day of upstream orders in the given view
type OrderSource interface {
	Fetch(ctx context.Context, day time.Time, view ordersource.View) ([]model.RawOrder, error)
}

// EventPublisher pushes sync notifications to connected dashboards
type EventPublisher interface {
	Publish(event string, data interface{})
}

// SyncRequest is the body of both sync endpoints
type SyncRequest struct {
	SyncDate string `json:"sync_date" example:"2024-03-01"`
}

// SyncResult reports what one sync run wrote
type SyncResult struct {
	Message              string `json:"message"`
	SyncDate             string `json:"sync_date"`
	ProcessedCount       int    `json:"processed_count"`
	GoodsProcessedCount  int    `json:"goods_processed_count"`
	StoresProcessedCount int    `json:"stores_processed_count"`
}

// SyncOptions carries the pipeline settings
type SyncOptions struct {
	Location  *time.Location
	BatchSize int
	Now       func() time.Time
}

type SyncService interface {
	// SyncAll ingests the day's orders and rebuilds its goods and store rows
	SyncAll(ctx context.Context, day time.Time) (*SyncResult, error)
	// SyncAggregates rebuilds the day's goods and store rows without storing orders
	SyncAggregates(ctx context.Context, day time.Time) (*SyncResult, error)
}

type syncService struct {
	source    OrderSource
	orderRepo repository.OrderRepository
	goodsRepo repository.GoodsRepository
	storeRepo repository.StoreRepository
	auditRepo repository.AuditRepository
	txManager repository.TransactionManager
	locker    synclock.Locker
	recorder  *metrics.Recorder
	events    EventPublisher
	log       *zap.Logger
	loc       *time.Location
	batchSize int
	now       func() time.Time
}

func NewSyncService(
	source OrderSource,
	orderRepo repository.OrderRepository,
	goodsRepo repository.GoodsRepository,
	storeRepo repository.StoreRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	locker synclock.Locker,
	recorder *metrics.Recorder,
	events EventPublisher,
	log *zap.Logger,
	opts SyncOptions,
) SyncService {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = 500
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &syncService{
		source:    source,
		orderRepo: orderRepo,
		goodsRepo: goodsRepo,
		storeRepo: storeRepo,
		auditRepo: auditRepo,
		txManager: txManager,
		locker:    locker,
		recorder:  recorder,
		events:    events,
		log:       log,
		loc:       opts.Location,
		batchSize: opts.BatchSize,
		now:       opts.Now,
	}
}

func (s *syncService) SyncAll(ctx context.Context, day time.Time) (*SyncResult, error) {
	return s.run(ctx, syncKindAll, day, true)
}

func (s *syncService) SyncAggregates(ctx context.Context, day time.Time) (*SyncResult, error) {
	return s.run(ctx, syncKindGoods, day, false)
}

func (s *syncService) run(ctx context.Context, kind string, day time.Time, ingest bool) (result *SyncResult, err error) {
	syncDate := reconcile.FormatDay(day.In(s.loc))
	log := s.log.With(zap.String("kind", kind), zap.String("sync_date", syncDate))

	release, err := s.locker.Acquire(ctx, "sync:"+syncDate)
	if err != nil {
		return nil, fmt.Errorf("sync %s: %w", syncDate, err)
	}
	defer release()

	started := time.Now()
	defer func() {
		s.recorder.ObserveSync(kind, started, err)
		if err != nil {
			log.Error("sync failed", zap.Error(err))
			s.publish(EventSyncFailed, map[string]interface{}{
				"kind":      kind,
				"sync_date": syncDate,
				"error":     err.Error(),
			})
			return
		}
		log.Info("sync completed",
			zap.Int("orders", result.ProcessedCount),
			zap.Int("goods", result.GoodsProcessedCount),
			zap.Int("stores", result.StoresProcessedCount),
			zap.Duration("took", time.Since(started)))
		s.publish(EventSyncCompleted, result)
	}()

	gross, net, err := s.fetchViews(ctx, day)
	if err != nil {
		return nil, err
	}

	tb := reconcile.TimeBasis{Location: s.loc, Fallback: s.now().In(s.loc)}
	result = &SyncResult{SyncDate: syncDate, ProcessedCount: len(gross)}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if ingest {
			orders := reconcile.NormalizeOrders(gross, syncDate, tb)
			if err := s.orderRepo.ReplaceForDay(txCtx, syncDate, orders, s.batchSize); err != nil {
				return err
			}
			result.ProcessedCount = len(orders)
			s.recorder.AddRows("orders", len(orders))
		}

		goods := reconcile.MergeGoods(reconcile.BuildGrossGoods(gross, tb), reconcile.BuildNetCost(net, tb))
		for i := range goods {
			goods[i].SyncDate = syncDate
			goods[i].Creator = syncCreator
		}
		if err := s.goodsRepo.UpsertForDay(txCtx, syncDate, goods, s.batchSize); err != nil {
			return err
		}
		result.GoodsProcessedCount = len(goods)
		s.recorder.AddRows("goods_aggregates", len(goods))

		stores := reconcile.BuildStores(gross, net, tb)
		for i := range stores {
			stores[i].SyncDate = syncDate
			stores[i].Creator = syncCreator
		}
		if err := s.storeRepo.UpsertForDay(txCtx, syncDate, stores, s.batchSize); err != nil {
			return err
		}
		result.StoresProcessedCount = len(stores)
		s.recorder.AddRows("store_aggregates", len(stores))

		if _, err := s.goodsRepo.RecomputeMetrics(txCtx, s.batchSize); err != nil {
			return err
		}
		if _, err := s.storeRepo.RecomputeMetrics(txCtx, s.batchSize); err != nil {
			return err
		}
		return s.audit(txCtx, kind, result)
	})
	if err != nil {
		return nil, fmt.Errorf("sync %s: %w", syncDate, err)
	}

	if ingest {
		result.Message = fmt.Sprintf("synced %d orders for %s", result.ProcessedCount, syncDate)
	} else {
		result.Message = fmt.Sprintf("rebuilt goods and stores for %s", syncDate)
	}
	return result, nil
}

// fetchViews pulls the gross and net views concurrently. Either failure aborts
// the sync.
func (s *syncService) fetchViews(ctx context.Context, day time.Time) ([]model.RawOrder, []model.RawOrder, error) {
	var gross, net []model.RawOrder
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		orders, err := s.source.Fetch(gctx, day, ordersource.Gross)
		if err != nil {
			return err
		}
		gross = orders
		return nil
	})
	g.Go(func() error {
		orders, err := s.source.Fetch(gctx, day, ordersource.Net)
		if err != nil {
			return err
		}
		net = orders
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	s.recorder.AddUpstreamOrders(ordersource.Gross.String(), len(gross))
	s.recorder.AddUpstreamOrders(ordersource.Net.String(), len(net))
	return gross, net, nil
}

func (s *syncService) audit(ctx context.Context, kind string, result *SyncResult) error {
	if s.auditRepo == nil {
		return nil
	}
	action := model.ActionSyncGoods
	if kind == syncKindAll {
		action = model.ActionSyncOrders
	}
	entry, err := newAuditLog(AuditEntry{
		Action:     action,
		EntityID:   result.SyncDate,
		EntityName: kind,
		Details:    result,
	})
	if err != nil {
		return err
	}
	return s.auditRepo.Log(ctx, entry)
}

func (s *syncService) publish(event string, data interface{}) {
	if s.events == nil {
		return
	}
	s.events.Publish(event, data)
}
