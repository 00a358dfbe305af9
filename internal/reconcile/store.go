package reconcile

import (
	"github.com/AcebergChristian/jushuitan-sub000/internal/model"
)

// BuildStores aggregates orders per (shop, order day). The gross view supplies
// payment, sales and counts; the net view adds cost only to keys the gross view
// produced.
func BuildStores(gross, net []model.RawOrder, tb TimeBasis) []model.StoreAggregate {
	rows := make(map[string]*model.StoreAggregate)
	var keys []string

	for _, raw := range gross {
		shopID := str(raw, "shopId")
		if shopID == "" {
			continue
		}
		ot := orderTime(raw, tb)
		key := StoreKey(shopID, ot)
		row, ok := rows[key]
		if !ok {
			row = &model.StoreAggregate{StoreID: key, LastOrderTime: ot}
			rows[key] = row
			keys = append(keys, key)
		}
		if row.StoreName == "" {
			row.StoreName = str(raw, "shopName")
		}
		row.TotalPaymentAmount = Add(row.TotalPaymentAmount, num(raw, "paidAmount"))
		row.TotalSalesAmount = Add(row.TotalSalesAmount, num(raw, "payAmount"))
		row.OrderCount++
		row.GoodsCount += len(orderItems(raw))
		if ot.After(row.LastOrderTime) {
			row.LastOrderTime = ot
		}
	}

	for _, raw := range net {
		shopID := str(raw, "shopId")
		if shopID == "" {
			continue
		}
		row, ok := rows[StoreKey(shopID, orderTime(raw, tb))]
		if !ok {
			continue
		}
		row.TotalSalesCost = Add(row.TotalSalesCost, num(raw, "drpAmount"))
	}

	out := make([]model.StoreAggregate, 0, len(keys))
	for _, key := range keys {
		row := *rows[key]
		row.ProfitMetrics = ComputeMetrics(row.TotalSalesAmount, row.TotalSalesCost, row.TotalAdvertisingExpenses)
		out = append(out, row)
	}
	return out
}
