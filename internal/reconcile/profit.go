package reconcile

import (
	"github.com/AcebergChristian/jushuitan-sub000/internal/model"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Round2 rounds half away from zero to two decimals
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// rate is part/sales as a percentage, 0 when sales is not positive
func rate(part, sales decimal.Decimal) float64 {
	if !sales.IsPositive() {
		return 0
	}
	return part.Div(sales).Mul(hundred).Round(2).InexactFloat64()
}

// ComputeMetrics derives the profit metrics from sales, cost and ad spend.
// Gross profit 4 and net profit equal gross profit 3. Rates use the unrounded
// profits.
func ComputeMetrics(sales, cost, ad float64) model.ProfitMetrics {
	s := decimal.NewFromFloat(sales)
	a := decimal.NewFromFloat(ad)
	gp1 := s.Sub(decimal.NewFromFloat(cost))
	gp3 := gp1.Sub(a)

	gp1f := gp1.Round(2).InexactFloat64()
	gp3f := gp3.Round(2).InexactFloat64()
	gp3Rate := rate(gp3, s)

	return model.ProfitMetrics{
		GrossProfit1:     gp1f,
		GrossProfit1Rate: rate(gp1, s),
		AdvertisingRatio: rate(a, s),
		GrossProfit3:     gp3f,
		GrossProfit3Rate: gp3Rate,
		GrossProfit4:     gp3f,
		GrossProfit4Rate: gp3Rate,
		NetProfit:        gp3f,
		NetProfitRate:    gp3Rate,
	}
}

// WeightedRate is the rate of a rolled-up total against rolled-up sales. It is
// used for store summaries. Zero total sales yields 0.
func WeightedRate(total, totalSales float64) float64 {
	if totalSales == 0 {
		return 0
	}
	return decimal.NewFromFloat(total).
		Div(decimal.NewFromFloat(totalSales)).
		Mul(hundred).
		Round(2).
		InexactFloat64()
}

// MeanOfRates is the arithmetic mean of per-row rates. It is used for user
// goods summaries. An empty input yields 0.
func MeanOfRates(rates []float64) float64 {
	if len(rates) == 0 {
		return 0
	}
	sum := decimal.Zero
	for _, r := range rates {
		sum = sum.Add(decimal.NewFromFloat(r))
	}
	return sum.Div(decimal.NewFromInt(int64(len(rates)))).Round(2).InexactFloat64()
}

// Add sums money amounts without accumulating binary float error
func Add(values ...float64) float64 {
	sum := decimal.Zero
	for _, v := range values {
		sum = sum.Add(decimal.NewFromFloat(v))
	}
	return sum.InexactFloat64()
}
