package model

import (
	"time"

	"gorm.io/gorm"
)

// GoodsAggregate is the per-(item, order time) profitability row built by the
// goods reconciliation. GoodsKey is "{item_id}_{order time to the second}".
type GoodsAggregate struct {
	ID                  uint    `gorm:"primaryKey" json:"id"`
	GoodsKey            string  `gorm:"type:varchar(160);uniqueIndex;not null" json:"goods_key"`
	GoodsID             string  `gorm:"type:varchar(64);index;not null" json:"goods_id"`
	GoodsName           string  `gorm:"type:varchar(255)" json:"goods_name"`
	StoreID             string  `gorm:"type:varchar(64);index" json:"store_id"`
	StoreName           string  `gorm:"type:varchar(255)" json:"store_name"`
	OrderID             string  `gorm:"type:varchar(64);index" json:"order_id"`
	OnlineOrderID       string  `gorm:"type:varchar(64)" json:"online_order_id"`
	SyncDate            string  `gorm:"type:varchar(10);index" json:"sync_date"`
	PaymentAmount       float64 `gorm:"type:decimal(14,2)" json:"payment_amount"`
	SalesAmount         float64 `gorm:"type:decimal(14,2)" json:"sales_amount"`
	SalesCost           float64 `gorm:"type:decimal(14,2)" json:"sales_cost"`
	RefundAmount        float64 `gorm:"type:decimal(14,2)" json:"refund_amount"`
	AdvertisingExpenses float64 `gorm:"type:decimal(14,2)" json:"advertising_expenses"`
	ProfitMetrics       `gorm:"embedded"`
	Creator             string         `gorm:"type:varchar(64)" json:"creator"`
	OrderTime           time.Time      `gorm:"index" json:"order_time"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`
}
