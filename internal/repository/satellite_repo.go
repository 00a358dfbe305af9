package repository

import (
	"context"
	"fmt"

	"github.com/AcebergChristian/jushuitan-sub000/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// JoinKey addresses a satellite sum: a shop plus a goods id, order id or day
type JoinKey struct {
	StoreID string
	Ref     string
}

type sumRow struct {
	StoreID string
	Ref     string
	Total   float64
}

// SatelliteRepository reads and writes the ad-spend and bill tables joined into
// reports at read time.
type SatelliteRepository interface {
	UpsertAdSpends(ctx context.Context, rows []model.AdSpend) error
	UpsertBills(ctx context.Context, rows []model.BillRecord) error
	AdSpendByGoods(ctx context.Context, goodsIDs []string) (map[JoinKey]float64, error)
	RefundByOrder(ctx context.Context, orderIDs []string) (map[JoinKey]float64, error)
	AdSpendByStoreDay(ctx context.Context, storeIDs []string) (map[JoinKey]float64, error)
	RefundByStoreDay(ctx context.Context, storeIDs []string) (map[JoinKey]float64, error)
}

type satelliteRepository struct {
	db *gorm.DB
}

func NewSatelliteRepository(db *gorm.DB) SatelliteRepository {
	return &satelliteRepository{db: db}
}

func (r *satelliteRepository) UpsertAdSpends(ctx context.Context, rows []model.AdSpend) error {
	if len(rows) == 0 {
		return nil
	}
	return GetDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "ad_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"goods_id", "store_id", "goods_name", "spend", "report_date", "updated_at", "deleted_at",
		}),
	}).CreateInBatches(&rows, inClauseChunk).Error
}

func (r *satelliteRepository) UpsertBills(ctx context.Context, rows []model.BillRecord) error {
	if len(rows) == 0 {
		return nil
	}
	return GetDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "bill_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"store_id", "order_id", "amount", "bill_date", "class_desc", "updated_at", "deleted_at",
		}),
	}).CreateInBatches(&rows, inClauseChunk).Error
}

// AdSpendByGoods sums spend per (store, goods id)
func (r *satelliteRepository) AdSpendByGoods(ctx context.Context, goodsIDs []string) (map[JoinKey]float64, error) {
	return r.sum(ctx, &model.AdSpend{}, "SUM(spend)", "goods_id", "goods_id", goodsIDs)
}

// RefundByOrder sums bill amounts per (store, order id)
func (r *satelliteRepository) RefundByOrder(ctx context.Context, orderIDs []string) (map[JoinKey]float64, error) {
	return r.sum(ctx, &model.BillRecord{}, "SUM(amount)", "order_id", "order_id", orderIDs)
}

// AdSpendByStoreDay sums spend per (store, report day)
func (r *satelliteRepository) AdSpendByStoreDay(ctx context.Context, storeIDs []string) (map[JoinKey]float64, error) {
	return r.sum(ctx, &model.AdSpend{}, "SUM(spend)", "report_date", "store_id", storeIDs)
}

// RefundByStoreDay sums absolute bill amounts per (store, bill day)
func (r *satelliteRepository) RefundByStoreDay(ctx context.Context, storeIDs []string) (map[JoinKey]float64, error) {
	return r.sum(ctx, &model.BillRecord{}, "SUM(ABS(amount))", "bill_date", "store_id", storeIDs)
}

func (r *satelliteRepository) sum(ctx context.Context, table interface{}, agg, refColumn, filterColumn string, values []string) (map[JoinKey]float64, error) {
	out := make(map[JoinKey]float64)
	for _, chunk := range chunkStrings(values, inClauseChunk) {
		var rows []sumRow
		if err := GetDB(ctx, r.db).Model(table).
			Select(fmt.Sprintf("store_id, %s AS ref, %s AS total", refColumn, agg)).
			Where(fmt.Sprintf("%s IN ?", filterColumn), chunk).
			Group("store_id, " + refColumn).
			Scan(&rows).Error; err != nil {
			return nil, fmt.Errorf("sum %s: %w", refColumn, err)
		}
		for _, row := range rows {
			out[JoinKey{StoreID: row.StoreID, Ref: row.Ref}] += row.Total
		}
	}
	return out, nil
}
