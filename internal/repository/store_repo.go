package repository

import (
	"context"
	"fmt"

	"github.com/AcebergChristian/jushuitan-sub000/internal/model"
	"github.com/AcebergChristian/jushuitan-sub000/internal/reconcile"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var storeUpsertColumns = []string{
	"store_name", "sync_date", "total_payment_amount", "total_sales_amount",
	"total_refund_amount", "total_sales_cost", "total_advertising_expenses",
	"gross_profit_1", "gross_profit_1_rate", "advertising_ratio",
	"gross_profit_3", "gross_profit_3_rate", "gross_profit_4", "gross_profit_4_rate",
	"net_profit", "net_profit_rate", "goods_count", "order_count", "creator",
	"last_order_time", "updated_at", "deleted_at",
}

type StoreRepository interface {
	UpsertForDay(ctx context.Context, syncDate string, rows []model.StoreAggregate, batchSize int) error
	RecomputeMetrics(ctx context.Context, batchSize int) (int, error)
	List(ctx context.Context, window *TimeWindow) ([]model.StoreAggregate, error)
}

type storeRepository struct {
	db *gorm.DB
}

func NewStoreRepository(db *gorm.DB) StoreRepository {
	return &storeRepository{db: db}
}

// UpsertForDay writes rows keyed by store_id and removes rows of syncDate whose
// key is no longer produced.
func (r *storeRepository) UpsertForDay(ctx context.Context, syncDate string, rows []model.StoreAggregate, batchSize int) error {
	db := GetDB(ctx, r.db)

	if len(rows) > 0 {
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "store_id"}},
			DoUpdates: clause.AssignmentColumns(storeUpsertColumns),
		}).CreateInBatches(&rows, batchSize).Error; err != nil {
			return fmt.Errorf("upsert stores: %w", err)
		}
	}

	keys := make([]string, 0, len(rows))
	for _, row := range rows {
		keys = append(keys, row.StoreID)
	}
	stale := db.Unscoped().Where("sync_date = ?", syncDate)
	if len(keys) > 0 {
		stale = stale.Where("store_id NOT IN ?", keys)
	}
	if err := stale.Delete(&model.StoreAggregate{}).Error; err != nil {
		return fmt.Errorf("delete stale stores: %w", err)
	}
	return nil
}

// RecomputeMetrics refreshes the derived metrics of every store row and returns
// the number of rows visited.
func (r *storeRepository) RecomputeMetrics(ctx context.Context, batchSize int) (int, error) {
	db := GetDB(ctx, r.db)
	visited := 0
	var batch []model.StoreAggregate
	err := db.Model(&model.StoreAggregate{}).FindInBatches(&batch, batchSize, func(_ *gorm.DB, _ int) error {
		for _, row := range batch {
			m := reconcile.ComputeMetrics(row.TotalSalesAmount, row.TotalSalesCost, row.TotalAdvertisingExpenses)
			if m == row.ProfitMetrics {
				continue
			}
			if err := db.Model(&model.StoreAggregate{}).Where("id = ?", row.ID).Updates(m.Columns()).Error; err != nil {
				return err
			}
		}
		visited += len(batch)
		return nil
	}).Error
	if err != nil {
		return visited, fmt.Errorf("recompute store metrics: %w", err)
	}
	return visited, nil
}

// List returns store rows, optionally restricted to a last-order-time window
func (r *storeRepository) List(ctx context.Context, window *TimeWindow) ([]model.StoreAggregate, error) {
	query := GetDB(ctx, r.db)
	if window != nil {
		query = query.Where("last_order_time >= ? AND last_order_time <= ?", window.Start, window.End)
	}
	var rows []model.StoreAggregate
	if err := query.Order("last_order_time DESC, id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
