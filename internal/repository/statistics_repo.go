package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/AcebergChristian/jushuitan-sub000/internal/model"

	"gorm.io/gorm"
)

// GoodsTotals are the headline counts over the goods table
type GoodsTotals struct {
	RowCount    int64
	Stores      int64
	GoodsNames  int64
	TotalSales  float64
	TotalOrders int64
}

// SalePoint is one goods row reduced to what the sales chart needs
type SalePoint struct {
	OrderTime   time.Time
	SalesAmount float64
}

type StatisticsRepository interface {
	GoodsTotals(ctx context.Context) (GoodsTotals, error)
	SumSales(ctx context.Context, window TimeWindow) (float64, error)
	SalesPoints(ctx context.Context, window TimeWindow) ([]SalePoint, error)
}

type statisticsRepository struct {
	db *gorm.DB
}

func NewStatisticsRepository(db *gorm.DB) StatisticsRepository {
	return &statisticsRepository{db: db}
}

func (r *statisticsRepository) GoodsTotals(ctx context.Context) (GoodsTotals, error) {
	var totals GoodsTotals
	if err := GetDB(ctx, r.db).Model(&model.GoodsAggregate{}).
		Select("COUNT(*) AS row_count, " +
			"COUNT(DISTINCT store_id) AS stores, " +
			"COUNT(DISTINCT goods_name) AS goods_names, " +
			"COALESCE(SUM(sales_amount), 0) AS total_sales, " +
			"COUNT(DISTINCT order_id) AS total_orders").
		Scan(&totals).Error; err != nil {
		return GoodsTotals{}, fmt.Errorf("goods totals: %w", err)
	}
	return totals, nil
}

func (r *statisticsRepository) SumSales(ctx context.Context, window TimeWindow) (float64, error) {
	var total float64
	if err := GetDB(ctx, r.db).Model(&model.GoodsAggregate{}).
		Select("COALESCE(SUM(sales_amount), 0)").
		Where("order_time >= ? AND order_time <= ?", window.Start, window.End).
		Scan(&total).Error; err != nil {
		return 0, fmt.Errorf("sum sales: %w", err)
	}
	return total, nil
}

func (r *statisticsRepository) SalesPoints(ctx context.Context, window TimeWindow) ([]SalePoint, error) {
	var points []SalePoint
	if err := GetDB(ctx, r.db).Model(&model.GoodsAggregate{}).
		Select("order_time, sales_amount").
		Where("order_time >= ? AND order_time <= ?", window.Start, window.End).
		Scan(&points).Error; err != nil {
		return nil, fmt.Errorf("sales points: %w", err)
	}
	return points, nil
}
