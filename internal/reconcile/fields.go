// Package reconcile turns upstream order payloads into normalized orders and
// goods/store profitability rows. Everything here is pure; persistence and
// locking live in the service layer.
package reconcile

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/AcebergChristian/jushuitan-sub000/internal/model"
)

const (
	dateTimeLayout = "2006-01-02 15:04:05"
	dateLayout     = "2006-01-02"
	dayStampLayout = "20060102"
)

// TimeBasis resolves order timestamps. Location is the business time zone and
// Fallback is used when a timestamp is missing or unparseable.
type TimeBasis struct {
	Location *time.Location
	Fallback time.Time
}

func (tb TimeBasis) location() *time.Location {
	if tb.Location == nil {
		return time.UTC
	}
	return tb.Location
}

// ParseOrderTime accepts ISO-8601 with zone, "2006-01-02 15:04:05", an ISO
// timestamp without zone or a bare date, in that order.
func ParseOrderTime(raw string, tb TimeBasis) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return tb.Fallback
	}
	loc := tb.location()
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t.In(loc)
	}
	for _, layout := range []string{dateTimeLayout, "2006-01-02T15:04:05", dateLayout} {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t
		}
	}
	return tb.Fallback
}

func str(raw map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		v, ok := raw[k]
		if !ok || v == nil {
			continue
		}
		var s string
		switch x := v.(type) {
		case string:
			s = x
		case json.Number:
			s = x.String()
		case float64:
			s = strconv.FormatFloat(x, 'f', -1, 64)
		default:
			s = fmt.Sprint(x)
		}
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return ""
}

func num(raw map[string]interface{}, keys ...string) float64 {
	for _, k := range keys {
		v, ok := raw[k]
		if !ok || v == nil {
			continue
		}
		switch x := v.(type) {
		case float64:
			return x
		case int:
			return float64(x)
		case int64:
			return float64(x)
		case json.Number:
			if f, err := x.Float64(); err == nil {
				return f
			}
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(x), 64); err == nil {
				return f
			}
		}
	}
	return 0
}

func boolean(raw map[string]interface{}, key string) bool {
	switch x := raw[key].(type) {
	case bool:
		return x
	case string:
		b, _ := strconv.ParseBool(x)
		return b
	default:
		return num(raw, key) != 0
	}
}

// ParseLineItems normalizes the nested goods list of an order. It accepts a
// JSON-encoded string, a list, a single object or nothing, and returns an
// empty list on anything it cannot read.
func ParseLineItems(v interface{}) []model.LineItem {
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		if s == "" {
			return []model.LineItem{}
		}
		var decoded interface{}
		dec := json.NewDecoder(strings.NewReader(s))
		dec.UseNumber()
		if err := dec.Decode(&decoded); err != nil {
			return []model.LineItem{}
		}
		v = decoded
	}

	switch x := v.(type) {
	case []interface{}:
		items := make([]model.LineItem, 0, len(x))
		for _, e := range x {
			if m, ok := asMap(e); ok {
				items = append(items, lineItem(m))
			}
		}
		return items
	case []map[string]interface{}:
		items := make([]model.LineItem, 0, len(x))
		for _, m := range x {
			items = append(items, lineItem(m))
		}
		return items
	default:
		if m, ok := asMap(v); ok {
			return []model.LineItem{lineItem(m)}
		}
		return []model.LineItem{}
	}
}

func asMap(v interface{}) (map[string]interface{}, bool) {
	switch m := v.(type) {
	case map[string]interface{}:
		return m, true
	case model.RawOrder:
		return m, true
	default:
		return nil, false
	}
}

func lineItem(m map[string]interface{}) model.LineItem {
	qty := int(num(m, "qty", "itemCount", "quantity"))
	return model.LineItem{
		ItemID:   str(m, "shopIid", "itemId", "goodsId", "skuId"),
		ItemName: str(m, "itemName", "goodsName", "name"),
		ShopID:   str(m, "shopId"),
		ShopName: str(m, "shopName"),
		Qty:      qty,
		Price:    num(m, "price", "salePrice"),
	}
}

// orderItems returns the order's line items with missing shop fields filled
// from the order itself.
func orderItems(raw model.RawOrder) []model.LineItem {
	items := ParseLineItems(raw["disInnerOrderGoodsViewList"])
	shopID, shopName := str(raw, "shopId"), str(raw, "shopName")
	for i := range items {
		if items[i].ShopID == "" {
			items[i].ShopID = shopID
		}
		if items[i].ShopName == "" {
			items[i].ShopName = shopName
		}
	}
	return items
}

func orderTime(raw model.RawOrder, tb TimeBasis) time.Time {
	return ParseOrderTime(str(raw, "orderTime"), tb)
}
