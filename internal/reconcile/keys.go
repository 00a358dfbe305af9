package reconcile

import (
	"strings"
	"time"
)

// GoodsKey identifies one goods row: the item id plus the order timestamp to
// the second.
func GoodsKey(itemID string, orderTime time.Time) string {
	return itemID + "_" + orderTime.Format(dateTimeLayout)
}

// StoreKey identifies one store row: the real shop id plus the order day.
func StoreKey(shopID string, orderTime time.Time) string {
	return shopID + "_" + orderTime.Format(dayStampLayout)
}

// RealStoreID strips the "_YYYYMMDD" day suffix from a store key. Values without
// a day suffix are returned unchanged.
func RealStoreID(storeKey string) string {
	i := strings.LastIndex(storeKey, "_")
	if i < 0 || len(storeKey)-i-1 != len(dayStampLayout) {
		return storeKey
	}
	if _, err := time.Parse(dayStampLayout, storeKey[i+1:]); err != nil {
		return storeKey
	}
	return storeKey[:i]
}

// FormatDay renders a day as YYYY-MM-DD
func FormatDay(t time.Time) string {
	return t.Format(dateLayout)
}

// ParseDay parses a YYYY-MM-DD day in loc
func ParseDay(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(dateLayout, strings.TrimSpace(s), loc)
}

// DayBounds returns the first and last instant of t's day
func DayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.Add(24*time.Hour - time.Nanosecond)
}
