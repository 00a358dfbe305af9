package model

import (
	"time"

	"gorm.io/gorm"
)

// AdSpend is one advertising cost row harvested from the marketing platform
type AdSpend struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	AdID       string         `gorm:"type:varchar(64);uniqueIndex;not null" json:"ad_id"`
	GoodsID    string         `gorm:"type:varchar(64);index" json:"goods_id"`
	StoreID    string         `gorm:"type:varchar(64);index" json:"store_id"`
	GoodsName  string         `gorm:"type:varchar(255)" json:"goods_name"`
	Spend      float64        `gorm:"type:decimal(14,2)" json:"spend"`
	ReportDate string         `gorm:"type:varchar(10);index" json:"report_date"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// BillRecord is one settlement bill entry (refunds and deductions) of a shop.
// Amount is in yuan and may be negative for outgoing money.
type BillRecord struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	BillID    string         `gorm:"type:varchar(64);uniqueIndex;not null" json:"bill_id"`
	StoreID   string         `gorm:"type:varchar(64);index" json:"store_id"`
	OrderID   string         `gorm:"type:varchar(64);index" json:"order_id"`
	Amount    float64        `gorm:"type:decimal(14,2)" json:"amount"`
	BillDate  string         `gorm:"type:varchar(10);index" json:"bill_date"`
	ClassDesc string         `gorm:"type:varchar(64)" json:"class_desc"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
