package model

// ProfitMetrics are the derived profitability figures shared by goods and store
// aggregates. Rates are percentages rounded to two decimals.
type ProfitMetrics struct {
	GrossProfit1     float64 `gorm:"column:gross_profit_1;type:decimal(14,2)" json:"gross_profit_1"`
	GrossProfit1Rate float64 `gorm:"column:gross_profit_1_rate;type:decimal(10,2)" json:"gross_profit_1_rate"`
	AdvertisingRatio float64 `gorm:"column:advertising_ratio;type:decimal(10,2)" json:"advertising_ratio"`
	GrossProfit3     float64 `gorm:"column:gross_profit_3;type:decimal(14,2)" json:"gross_profit_3"`
	GrossProfit3Rate float64 `gorm:"column:gross_profit_3_rate;type:decimal(10,2)" json:"gross_profit_3_rate"`
	GrossProfit4     float64 `gorm:"column:gross_profit_4;type:decimal(14,2)" json:"gross_profit_4"`
	GrossProfit4Rate float64 `gorm:"column:gross_profit_4_rate;type:decimal(10,2)" json:"gross_profit_4_rate"`
	NetProfit        float64 `gorm:"column:net_profit;type:decimal(14,2)" json:"net_profit"`
	NetProfitRate    float64 `gorm:"column:net_profit_rate;type:decimal(10,2)" json:"net_profit_rate"`
}

// Columns maps the metrics to their column names for partial updates
func (m ProfitMetrics) Columns() map[string]interface{} {
	return map[string]interface{}{
		"gross_profit_1":      m.GrossProfit1,
		"gross_profit_1_rate": m.GrossProfit1Rate,
		"advertising_ratio":   m.AdvertisingRatio,
		"gross_profit_3":      m.GrossProfit3,
		"gross_profit_3_rate": m.GrossProfit3Rate,
		"gross_profit_4":      m.GrossProfit4,
		"gross_profit_4_rate": m.GrossProfit4Rate,
		"net_profit":          m.NetProfit,
		"net_profit_rate":     m.NetProfitRate,
	}
}
