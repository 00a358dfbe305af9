package reconcile

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/AcebergChristian/jushuitan-sub000/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	shanghai = time.FixedZone("CST", 8*3600)
	fallback = time.Date(2024, 5, 1, 12, 0, 0, 0, shanghai)
	basis    = TimeBasis{Location: shanghai, Fallback: fallback}
)

func order(oid, shop, at string, pay, drp float64, items ...string) model.RawOrder {
	list := make([]interface{}, 0, len(items))
	for _, id := range items {
		list = append(list, map[string]interface{}{"shopIid": id, "itemName": "name-" + id})
	}
	return model.RawOrder{
		"oid":                        oid,
		"soId":                       "so-" + oid,
		"shopId":                     shop,
		"shopName":                   "shop " + shop,
		"orderTime":                  at,
		"payAmount":                  pay,
		"paidAmount":                 pay,
		"drpAmount":                  drp,
		"disInnerOrderGoodsViewList": list,
	}
}

func TestParseLineItems(t *testing.T) {
	t.Run("json string", func(t *testing.T) {
		items := ParseLineItems(`[{"shopIid":"A","itemName":"Apple","qty":2},{"itemId":"B"}]`)
		require.Len(t, items, 2)
		assert.Equal(t, "A", items[0].ItemID)
		assert.Equal(t, "Apple", items[0].ItemName)
		assert.Equal(t, 2, items[0].Qty)
		assert.Equal(t, "B", items[1].ItemID)
	})

	t.Run("list", func(t *testing.T) {
		items := ParseLineItems([]interface{}{map[string]interface{}{"goodsId": "G1"}, "junk"})
		require.Len(t, items, 1)
		assert.Equal(t, "G1", items[0].ItemID)
	})

	t.Run("single object", func(t *testing.T) {
		items := ParseLineItems(map[string]interface{}{"shopIid": "S", "shopId": "77"})
		require.Len(t, items, 1)
		assert.Equal(t, "77", items[0].ShopID)
	})

	t.Run("single object as string", func(t *testing.T) {
		items := ParseLineItems(`{"shopIid":"S"}`)
		require.Len(t, items, 1)
		assert.Equal(t, "S", items[0].ItemID)
	})

	t.Run("absent or broken", func(t *testing.T) {
		assert.Empty(t, ParseLineItems(nil))
		assert.Empty(t, ParseLineItems(""))
		assert.Empty(t, ParseLineItems("{not json"))
		assert.Empty(t, ParseLineItems(42))
		assert.NotNil(t, ParseLineItems(nil))
	})
}

func TestParseOrderTime(t *testing.T) {
	got := ParseOrderTime("2024-05-02T01:30:00Z", basis)
	assert.True(t, got.Equal(time.Date(2024, 5, 2, 9, 30, 0, 0, shanghai)))
	assert.Equal(t, shanghai, got.Location())

	got = ParseOrderTime("2024-05-02 10:11:12", basis)
	assert.True(t, got.Equal(time.Date(2024, 5, 2, 10, 11, 12, 0, shanghai)))

	got = ParseOrderTime("2024-05-02", basis)
	assert.True(t, got.Equal(time.Date(2024, 5, 2, 0, 0, 0, 0, shanghai)))

	assert.Equal(t, fallback, ParseOrderTime("yesterday", basis))
	assert.Equal(t, fallback, ParseOrderTime("", basis))
}

func TestKeys(t *testing.T) {
	at := time.Date(2024, 1, 15, 8, 9, 10, 0, shanghai)
	assert.Equal(t, "A_2024-01-15 08:09:10", GoodsKey("A", at))
	assert.Equal(t, "shop_9_20240115", StoreKey("shop_9", at))
}

func TestRealStoreID_RoundTrip(t *testing.T) {
	at := time.Date(2024, 1, 15, 0, 0, 0, 0, shanghai)
	for _, shop := range []string{"123", "shop_9", "a_b_c", "20240101"} {
		assert.Equal(t, shop, RealStoreID(StoreKey(shop, at)), shop)
	}
	assert.Equal(t, "123", RealStoreID("123"))
	assert.Equal(t, "123_abc", RealStoreID("123_abc"))
	assert.Equal(t, "123_20241399", RealStoreID("123_20241399"))
}

func TestComputeMetrics(t *testing.T) {
	m := ComputeMetrics(200, 120, 30)
	assert.Equal(t, 80.0, m.GrossProfit1)
	assert.Equal(t, 40.0, m.GrossProfit1Rate)
	assert.Equal(t, 15.0, m.AdvertisingRatio)
	assert.Equal(t, 50.0, m.GrossProfit3)
	assert.Equal(t, 25.0, m.GrossProfit3Rate)
	assert.Equal(t, m.GrossProfit3, m.GrossProfit4)
	assert.Equal(t, m.GrossProfit3, m.NetProfit)
	assert.Equal(t, m.GrossProfit3Rate, m.NetProfitRate)

	m = ComputeMetrics(3, 1, 0)
	assert.Equal(t, 66.67, m.GrossProfit1Rate)
}

func TestComputeMetrics_RatesRoundOnce(t *testing.T) {
	m := ComputeMetrics(1, 0.995, 0)
	assert.Equal(t, 0.01, m.GrossProfit1)
	// 0.005 / 1, not the rounded 0.01 / 1.
	assert.Equal(t, 0.5, m.GrossProfit1Rate)

	m = ComputeMetrics(1, 0, 0.995)
	assert.Equal(t, 0.01, m.GrossProfit3)
	assert.Equal(t, 0.5, m.GrossProfit3Rate)
	assert.Equal(t, 0.5, m.NetProfitRate)
	assert.Equal(t, 99.5, m.AdvertisingRatio)
}

func TestComputeMetrics_ZeroSales(t *testing.T) {
	for _, sales := range []float64{0, -10} {
		m := ComputeMetrics(sales, 50, 20)
		assert.Zero(t, m.GrossProfit1Rate)
		assert.Zero(t, m.AdvertisingRatio)
		assert.Zero(t, m.GrossProfit3Rate)
		assert.Zero(t, m.GrossProfit4Rate)
		assert.Zero(t, m.NetProfitRate)
	}
}

func TestAveragingConventions(t *testing.T) {
	assert.Equal(t, 25.0, WeightedRate(50, 200))
	assert.Zero(t, WeightedRate(50, 0))

	assert.Equal(t, 30.0, MeanOfRates([]float64{10, 50}))
	assert.Zero(t, MeanOfRates(nil))
	assert.Equal(t, 33.33, MeanOfRates([]float64{0, 0, 100}))
}

func TestGoodsMerge_GrossAndNet(t *testing.T) {
	at := "2024-01-15 10:00:00"
	gross := []model.RawOrder{
		order("1", "S1", at, 100, 0, "X"),
		order("2", "S1", at, 50, 0, "X"),
		order("3", "S1", at, 30, 0, "X"),
	}
	net := []model.RawOrder{
		order("1", "S1", at, 100, 20, "X"),
		order("2", "S1", at, 50, 10, "X"),
	}

	rows := MergeGoods(BuildGrossGoods(gross, basis), BuildNetCost(net, basis))
	require.Len(t, rows, 1)
	row := rows[0]
	assert.Equal(t, "X_2024-01-15 10:00:00", row.GoodsKey)
	assert.Equal(t, 180.0, row.SalesAmount)
	assert.Equal(t, 30.0, row.SalesCost)
	assert.Equal(t, 150.0, row.GrossProfit1)
	assert.Equal(t, "1", row.OrderID)
	assert.Equal(t, "so-1", row.OnlineOrderID)
	assert.Equal(t, "S1", row.StoreID)
	assert.Equal(t, "name-X", row.GoodsName)
}

func TestGoodsMerge_CompositeKeyAdditivity(t *testing.T) {
	gross := []model.RawOrder{
		order("1", "S1", "2024-01-15 10:00:00", 10, 0, "X"),
		order("2", "S1", "2024-01-15 10:00:00", 15, 0, "X"),
		order("3", "S1", "2024-01-15 10:00:01", 7, 0, "X"),
	}
	ledger := BuildGrossGoods(gross, basis)
	require.Equal(t, 2, ledger.Len())

	row, ok := ledger.Get("X_2024-01-15 10:00:00")
	require.True(t, ok)
	assert.Equal(t, 25.0, row.SalesAmount)
}

func TestGoodsMerge_NetOnlyKeysDropped(t *testing.T) {
	gross := []model.RawOrder{order("1", "S1", "2024-01-15 10:00:00", 10, 0, "X")}
	net := []model.RawOrder{
		order("1", "S1", "2024-01-15 10:00:00", 10, 4, "X"),
		order("9", "S1", "2024-01-15 11:00:00", 99, 40, "Y"),
	}

	rows := MergeGoods(BuildGrossGoods(gross, basis), BuildNetCost(net, basis))
	require.Len(t, rows, 1)
	assert.Equal(t, "X", rows[0].GoodsID)
	assert.Equal(t, 4.0, rows[0].SalesCost)
}

func TestGoodsMerge_MissingNetCostIsZero(t *testing.T) {
	gross := []model.RawOrder{order("1", "S1", "2024-01-15 10:00:00", 10, 0, "X")}
	rows := MergeGoods(BuildGrossGoods(gross, basis), map[string]float64{})
	require.Len(t, rows, 1)
	assert.Zero(t, rows[0].SalesCost)
	assert.Equal(t, 100.0, rows[0].GrossProfit1Rate)
}

func TestBuildStores(t *testing.T) {
	gross := []model.RawOrder{
		order("1", "S1", "2024-01-15 09:00:00", 100, 0, "X", "Y"),
		order("2", "S1", "2024-01-15 18:30:00", 50, 0, "X"),
		order("3", "S2", "2024-01-15 12:00:00", 40, 0, "Z"),
	}
	net := []model.RawOrder{
		order("1", "S1", "2024-01-15 09:00:00", 100, 60, "X", "Y"),
		order("8", "S3", "2024-01-15 09:00:00", 10, 5, "Q"),
	}

	rows := BuildStores(gross, net, basis)
	require.Len(t, rows, 2)

	s1 := rows[0]
	assert.Equal(t, "S1_20240115", s1.StoreID)
	assert.Equal(t, "shop S1", s1.StoreName)
	assert.Equal(t, 150.0, s1.TotalSalesAmount)
	assert.Equal(t, 60.0, s1.TotalSalesCost)
	assert.Equal(t, 2, s1.OrderCount)
	assert.Equal(t, 3, s1.GoodsCount)
	assert.True(t, s1.LastOrderTime.Equal(time.Date(2024, 1, 15, 18, 30, 0, 0, shanghai)))
	assert.Equal(t, 90.0, s1.GrossProfit1)
	assert.Equal(t, 60.0, s1.GrossProfit1Rate)

	assert.Equal(t, "S2_20240115", rows[1].StoreID)
	assert.Zero(t, rows[1].TotalSalesCost)
}

func TestNormalizeOrders(t *testing.T) {
	raws := []model.RawOrder{
		order("1", "S1", "2024-01-15 10:00:00", 10, 2, "X"),
		{"soId": "missing-oid"},
		order("1", "S1", "2024-01-15 10:00:00", 12, 3, "X"),
		{
			"oid":                        json.Number("12345678901234567"),
			"payAmount":                  "8.50",
			"isSplit":                    true,
			"orderTime":                  "bad",
			"payTime":                    "2024-01-15 11:00:00",
			"disInnerOrderGoodsViewList": `[{"shopIid":"Z"}]`,
		},
	}

	recs := NormalizeOrders(raws, "2024-01-15", basis)
	require.Len(t, recs, 2)

	assert.Equal(t, "1", recs[0].OrderID)
	assert.Equal(t, 12.0, recs[0].PayAmount)
	assert.Equal(t, "2024-01-15", recs[0].SyncDate)

	big := recs[1]
	assert.Equal(t, "12345678901234567", big.OrderID)
	assert.Equal(t, 8.5, big.PayAmount)
	assert.True(t, big.IsSplit)
	assert.Equal(t, fallback, big.OrderTime)
	require.NotNil(t, big.PayTime)

	var items []model.LineItem
	require.NoError(t, json.Unmarshal(big.GoodsList, &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Z", items[0].ItemID)
}
