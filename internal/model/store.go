package model

import (
	"time"

	"gorm.io/gorm"
)

// StoreAggregate is the per-(shop, day) profitability row. StoreID is
// "{shop_id}_{YYYYMMDD}"; stripping the suffix yields the real shop id.
type StoreAggregate struct {
	ID                       uint    `gorm:"primaryKey" json:"id"`
	StoreID                  string  `gorm:"type:varchar(96);uniqueIndex;not null" json:"store_id"`
	StoreName                string  `gorm:"type:varchar(255)" json:"store_name"`
	SyncDate                 string  `gorm:"type:varchar(10);index" json:"sync_date"`
	TotalPaymentAmount       float64 `gorm:"type:decimal(14,2)" json:"total_payment_amount"`
	TotalSalesAmount         float64 `gorm:"type:decimal(14,2)" json:"total_sales_amount"`
	TotalRefundAmount        float64 `gorm:"type:decimal(14,2)" json:"total_refund_amount"`
	TotalSalesCost           float64 `gorm:"type:decimal(14,2)" json:"total_sales_cost"`
	TotalAdvertisingExpenses float64 `gorm:"type:decimal(14,2)" json:"total_advertising_expenses"`
	ProfitMetrics            `gorm:"embedded"`
	GoodsCount               int            `json:"goods_count"`
	OrderCount               int            `json:"order_count"`
	Creator                  string         `gorm:"type:varchar(64)" json:"creator"`
	LastOrderTime            time.Time      `gorm:"index" json:"last_order_time"`
	CreatedAt                time.Time      `json:"created_at"`
	UpdatedAt                time.Time      `json:"updated_at"`
	DeletedAt                gorm.DeletedAt `gorm:"index" json:"-"`
}
