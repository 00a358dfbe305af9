package reconcile

import (
	"github.com/AcebergChristian/jushuitan-sub000/internal/model"
)

// GoodsLedger accumulates gross goods rows by composite key in first-seen order
type GoodsLedger struct {
	rows map[string]*model.GoodsAggregate
	keys []string
}

// Len returns the number of distinct keys
func (l *GoodsLedger) Len() int {
	return len(l.keys)
}

// Get returns the row for key
func (l *GoodsLedger) Get(key string) (*model.GoodsAggregate, bool) {
	row, ok := l.rows[key]
	return row, ok
}

// BuildGrossGoods runs the gross phase: each line item adds its order's pay
// amount to the sales of its key. The first occurrence of a key records the
// descriptive fields.
func BuildGrossGoods(orders []model.RawOrder, tb TimeBasis) *GoodsLedger {
	ledger := &GoodsLedger{rows: make(map[string]*model.GoodsAggregate)}
	for _, raw := range orders {
		ot := orderTime(raw, tb)
		pay := num(raw, "payAmount")
		paid := num(raw, "paidAmount")
		for _, item := range orderItems(raw) {
			if item.ItemID == "" {
				continue
			}
			key := GoodsKey(item.ItemID, ot)
			row, ok := ledger.rows[key]
			if !ok {
				row = &model.GoodsAggregate{
					GoodsKey:      key,
					GoodsID:       item.ItemID,
					GoodsName:     item.ItemName,
					StoreID:       item.ShopID,
					StoreName:     item.ShopName,
					OrderID:       str(raw, "oid", "orderId"),
					OnlineOrderID: str(raw, "soId", "onlineOrderId"),
					OrderTime:     ot,
				}
				ledger.rows[key] = row
				ledger.keys = append(ledger.keys, key)
			}
			row.SalesAmount = Add(row.SalesAmount, pay)
			row.PaymentAmount = Add(row.PaymentAmount, paid)
		}
	}
	return ledger
}

// BuildNetCost runs the net phase: each line item adds its order's cost amount
// to the cost of its key.
func BuildNetCost(orders []model.RawOrder, tb TimeBasis) map[string]float64 {
	cost := make(map[string]float64)
	for _, raw := range orders {
		ot := orderTime(raw, tb)
		drp := num(raw, "drpAmount")
		for _, item := range orderItems(raw) {
			if item.ItemID == "" {
				continue
			}
			key := GoodsKey(item.ItemID, ot)
			cost[key] = Add(cost[key], drp)
		}
	}
	return cost
}

// MergeGoods emits one row per gross key with its net cost (0 when the net view
// has no such key) and computed metrics. Keys present only in the net view are
// dropped.
func MergeGoods(gross *GoodsLedger, cost map[string]float64) []model.GoodsAggregate {
	out := make([]model.GoodsAggregate, 0, gross.Len())
	for _, key := range gross.keys {
		row := *gross.rows[key]
		row.SalesCost = cost[key]
		row.ProfitMetrics = ComputeMetrics(row.SalesAmount, row.SalesCost, row.AdvertisingExpenses)
		out = append(out, row)
	}
	return out
}
