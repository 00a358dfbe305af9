package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Upstream order statuses
const (
	OrderStatusWaitPay       = "WaitPay"
	OrderStatusWaitConfirm   = "WaitConfirm"
	OrderStatusWaitOuterSent = "WaitOuterSent"
	OrderStatusSent          = "Sent"
	OrderStatusQuestion      = "Question"
	OrderStatusDelivering    = "Delivering"
	OrderStatusWaitFConfirm  = "WaitFConfirm"
	OrderStatusOuterSent     = "OuterSent"
	OrderStatusCancelled     = "Cancelled"
	OrderStatusSplit         = "Split"
)

// NetOrderStatuses are the statuses kept by the net (cost) view. Cancelled and
// split orders are excluded.
var NetOrderStatuses = []string{
	OrderStatusWaitPay,
	OrderStatusWaitConfirm,
	OrderStatusWaitOuterSent,
	OrderStatusSent,
	OrderStatusQuestion,
	OrderStatusDelivering,
	OrderStatusWaitFConfirm,
	OrderStatusOuterSent,
}

// OrderRecord is one upstream order as ingested for a given sync day.
// At most one record exists per (order_id, sync_date).
type OrderRecord struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	OrderID       string         `gorm:"type:varchar(64);not null;uniqueIndex:idx_order_sync_date" json:"order_id"`
	SyncDate      string         `gorm:"type:varchar(10);not null;uniqueIndex:idx_order_sync_date;index" json:"sync_date"`
	OnlineOrderID string         `gorm:"type:varchar(64);index" json:"online_order_id"`
	ShopID        string         `gorm:"type:varchar(64);index" json:"shop_id"`
	ShopName      string         `gorm:"type:varchar(255)" json:"shop_name"`
	Status        string         `gorm:"type:varchar(32)" json:"status"`
	OrderType     string         `gorm:"type:varchar(32)" json:"order_type"`
	IsSplit       bool           `json:"is_split"`
	PayAmount     float64        `gorm:"type:decimal(14,2)" json:"pay_amount"`
	PaidAmount    float64        `gorm:"type:decimal(14,2)" json:"paid_amount"`
	DrpAmount     float64        `gorm:"type:decimal(14,2)" json:"drp_amount"`
	Discount      float64        `gorm:"type:decimal(14,2)" json:"discount_amount"`
	Freight       float64        `gorm:"type:decimal(14,2)" json:"freight"`
	GoodsQty      int            `json:"goods_qty"`
	GoodsAmount   float64        `gorm:"type:decimal(14,2)" json:"goods_amount"`
	OrderTime     time.Time      `gorm:"index" json:"order_time"`
	PayTime       *time.Time     `json:"pay_time"`
	GoodsList     datatypes.JSON `json:"goods_list"`
	RawPayload    datatypes.JSON `json:"-"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (OrderRecord) TableName() string {
	return "orders"
}

// RawOrder is one order object as returned by the upstream order API
type RawOrder map[string]interface{}

// LineItem is one goods entry of an order
type LineItem struct {
	ItemID   string  `json:"item_id"`
	ItemName string  `json:"item_name"`
	ShopID   string  `json:"shop_id"`
	ShopName string  `json:"shop_name"`
	Qty      int     `json:"qty"`
	Price    float64 `json:"price"`
}
