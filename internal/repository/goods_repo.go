package repository

import (
	"context"
	"fmt"

	"github.com/AcebergChristian/jushuitan-sub000/internal/model"
	"github.com/AcebergChristian/jushuitan-sub000/internal/reconcile"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var goodsUpsertColumns = []string{
	"goods_id", "goods_name", "store_id", "store_name", "order_id", "online_order_id",
	"sync_date", "payment_amount", "sales_amount", "sales_cost", "refund_amount",
	"advertising_expenses", "gross_profit_1", "gross_profit_1_rate", "advertising_ratio",
	"gross_profit_3", "gross_profit_3_rate", "gross_profit_4", "gross_profit_4_rate",
	"net_profit", "net_profit_rate", "creator", "order_time", "updated_at", "deleted_at",
}

// GoodsFilter narrows the goods list
type GoodsFilter struct {
	Search string
	Offset int
	Limit  int
}

// GoodsOption is one distinct goods entry for selectors
type GoodsOption struct {
	GoodsID   string
	GoodsName string
}

type GoodsRepository interface {
	UpsertForDay(ctx context.Context, syncDate string, rows []model.GoodsAggregate, batchSize int) error
	RecomputeMetrics(ctx context.Context, batchSize int) (int, error)
	List(ctx context.Context, filter GoodsFilter) ([]model.GoodsAggregate, int64, error)
	ListByStore(ctx context.Context, storeID string) ([]model.GoodsAggregate, error)
	ListByGoodsIDs(ctx context.Context, goodsIDs []string, window *TimeWindow) ([]model.GoodsAggregate, error)
	StoreIDsForGoods(ctx context.Context, goodsIDs []string) ([]string, error)
	Options(ctx context.Context) ([]GoodsOption, error)
}

type goodsRepository struct {
	db *gorm.DB
}

func NewGoodsRepository(db *gorm.DB) GoodsRepository {
	return &goodsRepository{db: db}
}

// UpsertForDay writes rows keyed by goods_key and removes rows of syncDate whose
// key is no longer produced.
func (r *goodsRepository) UpsertForDay(ctx context.Context, syncDate string, rows []model.GoodsAggregate, batchSize int) error {
	db := GetDB(ctx, r.db)

	if len(rows) > 0 {
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "goods_key"}},
			DoUpdates: clause.AssignmentColumns(goodsUpsertColumns),
		}).CreateInBatches(&rows, batchSize).Error; err != nil {
			return fmt.Errorf("upsert goods: %w", err)
		}
	}

	keep := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		keep[row.GoodsKey] = struct{}{}
	}
	var existing []struct {
		ID       uint
		GoodsKey string
	}
	if err := db.Unscoped().Model(&model.GoodsAggregate{}).
		Select("id, goods_key").
		Where("sync_date = ?", syncDate).
		Scan(&existing).Error; err != nil {
		return fmt.Errorf("list goods of day: %w", err)
	}
	var stale []uint
	for _, e := range existing {
		if _, ok := keep[e.GoodsKey]; !ok {
			stale = append(stale, e.ID)
		}
	}
	if len(stale) > 0 {
		if err := db.Unscoped().Delete(&model.GoodsAggregate{}, stale).Error; err != nil {
			return fmt.Errorf("delete stale goods: %w", err)
		}
	}
	return nil
}

// RecomputeMetrics refreshes the derived metrics of every goods row and returns
// the number of rows visited.
func (r *goodsRepository) RecomputeMetrics(ctx context.Context, batchSize int) (int, error) {
	db := GetDB(ctx, r.db)
	visited := 0
	var batch []model.GoodsAggregate
	err := db.Model(&model.GoodsAggregate{}).FindInBatches(&batch, batchSize, func(_ *gorm.DB, _ int) error {
		for _, row := range batch {
			m := reconcile.ComputeMetrics(row.SalesAmount, row.SalesCost, row.AdvertisingExpenses)
			if m == row.ProfitMetrics {
				continue
			}
			if err := db.Model(&model.GoodsAggregate{}).Where("id = ?", row.ID).Updates(m.Columns()).Error; err != nil {
				return err
			}
		}
		visited += len(batch)
		return nil
	}).Error
	if err != nil {
		return visited, fmt.Errorf("recompute goods metrics: %w", err)
	}
	return visited, nil
}

func (r *goodsRepository) List(ctx context.Context, filter GoodsFilter) ([]model.GoodsAggregate, int64, error) {
	var rows []model.GoodsAggregate
	var total int64

	query := GetDB(ctx, r.db).Model(&model.GoodsAggregate{})
	if filter.Search != "" {
		query = query.Where("goods_name LIKE ?", "%"+filter.Search+"%")
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.
		Order("created_at DESC, id DESC").
		Offset(filter.Offset).Limit(filter.Limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *goodsRepository) ListByStore(ctx context.Context, storeID string) ([]model.GoodsAggregate, error) {
	var rows []model.GoodsAggregate
	if err := GetDB(ctx, r.db).
		Where("store_id = ?", storeID).
		Order("order_time ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *goodsRepository) ListByGoodsIDs(ctx context.Context, goodsIDs []string, window *TimeWindow) ([]model.GoodsAggregate, error) {
	if len(goodsIDs) == 0 {
		return []model.GoodsAggregate{}, nil
	}
	query := GetDB(ctx, r.db).Where("goods_id IN ?", goodsIDs)
	if window != nil {
		query = query.Where("order_time >= ? AND order_time <= ?", window.Start, window.End)
	}
	var rows []model.GoodsAggregate
	if err := query.Order("order_time ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// StoreIDsForGoods resolves good ids to the shops that sold them
func (r *goodsRepository) StoreIDsForGoods(ctx context.Context, goodsIDs []string) ([]string, error) {
	if len(goodsIDs) == 0 {
		return []string{}, nil
	}
	var storeIDs []string
	if err := GetDB(ctx, r.db).Model(&model.GoodsAggregate{}).
		Where("goods_id IN ? AND store_id <> ''", goodsIDs).
		Distinct().
		Pluck("store_id", &storeIDs).Error; err != nil {
		return nil, err
	}
	return storeIDs, nil
}

func (r *goodsRepository) Options(ctx context.Context) ([]GoodsOption, error) {
	var options []GoodsOption
	if err := GetDB(ctx, r.db).Model(&model.GoodsAggregate{}).
		Select("goods_id, MAX(goods_name) AS goods_name").
		Group("goods_id").
		Order("goods_name ASC").
		Scan(&options).Error; err != nil {
		return nil, err
	}
	return options, nil
}
