package repository

import (
	"context"
	"fmt"

	"github.com/AcebergChristian/jushuitan-sub000/internal/model"

	"gorm.io/gorm"
)

const inClauseChunk = 500

type OrderRepository interface {
	ReplaceForDay(ctx context.Context, syncDate string, orders []model.OrderRecord, batchSize int) error
	ListBySyncDate(ctx context.Context, syncDate string) ([]model.OrderRecord, error)
	Count(ctx context.Context) (int64, error)
	CountBySyncDate(ctx context.Context, from, to string) (map[string]int64, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// ReplaceForDay removes stored orders of syncDate that share an id with the new
// batch, then inserts the batch in chunks. Orders stored under other days are
// left untouched.
func (r *orderRepository) ReplaceForDay(ctx context.Context, syncDate string, orders []model.OrderRecord, batchSize int) error {
	if len(orders) == 0 {
		return nil
	}
	db := GetDB(ctx, r.db)

	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.OrderID)
	}
	for _, chunk := range chunkStrings(ids, inClauseChunk) {
		if err := db.Unscoped().
			Where("sync_date = ? AND order_id IN ?", syncDate, chunk).
			Delete(&model.OrderRecord{}).Error; err != nil {
			return fmt.Errorf("delete previous orders: %w", err)
		}
	}

	if err := db.CreateInBatches(&orders, batchSize).Error; err != nil {
		return fmt.Errorf("insert orders: %w", err)
	}
	return nil
}

func (r *orderRepository) ListBySyncDate(ctx context.Context, syncDate string) ([]model.OrderRecord, error) {
	var orders []model.OrderRecord
	if err := GetDB(ctx, r.db).
		Where("sync_date = ?", syncDate).
		Order("order_time ASC, id ASC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := GetDB(ctx, r.db).Model(&model.OrderRecord{}).Count(&total).Error
	return total, err
}

// CountBySyncDate returns the number of orders per sync day in [from, to]
func (r *orderRepository) CountBySyncDate(ctx context.Context, from, to string) (map[string]int64, error) {
	var rows []struct {
		SyncDate string
		Total    int64
	}
	if err := GetDB(ctx, r.db).Model(&model.OrderRecord{}).
		Select("sync_date, COUNT(*) AS total").
		Where("sync_date BETWEEN ? AND ?", from, to).
		Group("sync_date").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("count orders by day: %w", err)
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.SyncDate] = row.Total
	}
	return out, nil
}
