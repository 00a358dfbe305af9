package reconcile

import (
	"encoding/json"

	"github.com/AcebergChristian/jushuitan-sub000/internal/model"

	"gorm.io/datatypes"
)

// NormalizeOrders converts raw upstream orders into order records for syncDate.
// Orders without an id are skipped. When the batch carries the same id more
// than once, the last occurrence wins.
func NormalizeOrders(raws []model.RawOrder, syncDate string, tb TimeBasis) []model.OrderRecord {
	index := make(map[string]int, len(raws))
	records := make([]model.OrderRecord, 0, len(raws))
	for _, raw := range raws {
		rec, ok := NormalizeOrder(raw, syncDate, tb)
		if !ok {
			continue
		}
		if i, dup := index[rec.OrderID]; dup {
			records[i] = rec
			continue
		}
		index[rec.OrderID] = len(records)
		records = append(records, rec)
	}
	return records
}

// NormalizeOrder maps one raw order onto an OrderRecord
func NormalizeOrder(raw model.RawOrder, syncDate string, tb TimeBasis) (model.OrderRecord, bool) {
	orderID := str(raw, "oid", "orderId")
	if orderID == "" {
		return model.OrderRecord{}, false
	}

	items := orderItems(raw)
	goodsList, _ := json.Marshal(items)
	payload, _ := json.Marshal(raw)

	rec := model.OrderRecord{
		OrderID:       orderID,
		SyncDate:      syncDate,
		OnlineOrderID: str(raw, "soId", "onlineOrderId"),
		ShopID:        str(raw, "shopId"),
		ShopName:      str(raw, "shopName"),
		Status:        str(raw, "orderStatus", "status"),
		OrderType:     str(raw, "orderType"),
		IsSplit:       boolean(raw, "isSplit"),
		PayAmount:     num(raw, "payAmount"),
		PaidAmount:    num(raw, "paidAmount"),
		DrpAmount:     num(raw, "drpAmount"),
		Discount:      num(raw, "discountAmt", "discountAmount"),
		Freight:       num(raw, "freight"),
		GoodsQty:      int(num(raw, "goodsQty")),
		GoodsAmount:   num(raw, "goodsAmt", "goodsAmount"),
		OrderTime:     orderTime(raw, tb),
		GoodsList:     datatypes.JSON(goodsList),
		RawPayload:    datatypes.JSON(payload),
	}
	if pt := str(raw, "payTime"); pt != "" {
		t := ParseOrderTime(pt, TimeBasis{Location: tb.Location})
		if !t.IsZero() {
			rec.PayTime = &t
		}
	}
	return rec, true
}
