package service

import (
	"context"
	"fmt"
	"time"

	"github.com/AcebergChristian/jushuitan-sub000/internal/model"
	"github.com/AcebergChristian/jushuitan-sub000/internal/reconcile"
	"github.com/AcebergChristian/jushuitan-sub000/internal/repository"
)

// StoreSummary rolls up every returned store row. Rates are weighted by total
// sales rather than averaged per row.
type StoreSummary struct {
	StoreCount               int     `json:"store_count"`
	TotalPaymentAmount       float64 `json:"total_payment_amount"`
	TotalSalesAmount         float64 `json:"total_sales_amount"`
	TotalRefundAmount        float64 `json:"total_refund_amount"`
	TotalSalesCost           float64 `json:"total_sales_cost"`
	TotalAdvertisingExpenses float64 `json:"total_advertising_expenses"`
	GoodsCount               int     `json:"goods_count"`
	OrderCount               int     `json:"order_count"`
	model.ProfitMetrics
}

// StoreReport is the store list plus its summary
type StoreReport struct {
	Rows    []model.StoreAggregate `json:"data"`
	Summary StoreSummary           `json:"summary"`
}

type StoreService interface {
	StoreSummary(ctx context.Context, viewer Viewer, window *repository.TimeWindow) (*StoreReport, error)
}

type storeService struct {
	storeRepo     repository.StoreRepository
	satelliteRepo repository.SatelliteRepository
	entitlements  *EntitlementResolver
	loc           *time.Location
}

func NewStoreService(
	storeRepo repository.StoreRepository,
	satelliteRepo repository.SatelliteRepository,
	entitlements *EntitlementResolver,
	loc *time.Location,
) StoreService {
	if loc == nil {
		loc = time.Local
	}
	return &storeService{
		storeRepo:     storeRepo,
		satelliteRepo: satelliteRepo,
		entitlements:  entitlements,
		loc:           loc,
	}
}

func (s *storeService) StoreSummary(ctx context.Context, viewer Viewer, window *repository.TimeWindow) (*StoreReport, error) {
	if window != nil && window.End.Before(window.Start) {
		return nil, fmt.Errorf("%w: end_date is before start_date", ErrInvalidInput)
	}

	scope, err := s.entitlements.Shops(ctx, viewer)
	if err != nil {
		return nil, err
	}

	all, err := s.storeRepo.List(ctx, window)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}

	rows := make([]model.StoreAggregate, 0, len(all))
	shops := make([]string, 0, len(all))
	for _, row := range all {
		shopID := reconcile.RealStoreID(row.StoreID)
		if !scope.Allows(shopID) {
			continue
		}
		rows = append(rows, row)
		shops = append(shops, shopID)
	}

	if len(rows) > 0 {
		if err := s.joinSatellites(ctx, rows, distinct(shops)); err != nil {
			return nil, err
		}
	}

	return &StoreReport{Rows: rows, Summary: summarizeStores(rows)}, nil
}

func (s *storeService) joinSatellites(ctx context.Context, rows []model.StoreAggregate, shops []string) error {
	ads, err := s.satelliteRepo.AdSpendByStoreDay(ctx, shops)
	if err != nil {
		return fmt.Errorf("join ad spend: %w", err)
	}
	refunds, err := s.satelliteRepo.RefundByStoreDay(ctx, shops)
	if err != nil {
		return fmt.Errorf("join refunds: %w", err)
	}
	for i := range rows {
		row := &rows[i]
		key := repository.JoinKey{
			StoreID: reconcile.RealStoreID(row.StoreID),
			Ref:     reconcile.FormatDay(row.LastOrderTime.In(s.loc)),
		}
		if ad := ads[key]; ad > 0 {
			row.TotalAdvertisingExpenses = reconcile.Round2(ad)
		}
		if refund := refunds[key]; refund > 0 {
			row.TotalRefundAmount = reconcile.Round2(refund)
		}
		row.ProfitMetrics = reconcile.ComputeMetrics(row.TotalSalesAmount, row.TotalSalesCost, row.TotalAdvertisingExpenses)
	}
	return nil
}

func summarizeStores(rows []model.StoreAggregate) StoreSummary {
	var sum StoreSummary
	sum.StoreCount = len(rows)
	for _, row := range rows {
		sum.TotalPaymentAmount = reconcile.Add(sum.TotalPaymentAmount, row.TotalPaymentAmount)
		sum.TotalSalesAmount = reconcile.Add(sum.TotalSalesAmount, row.TotalSalesAmount)
		sum.TotalRefundAmount = reconcile.Add(sum.TotalRefundAmount, row.TotalRefundAmount)
		sum.TotalSalesCost = reconcile.Add(sum.TotalSalesCost, row.TotalSalesCost)
		sum.TotalAdvertisingExpenses = reconcile.Add(sum.TotalAdvertisingExpenses, row.TotalAdvertisingExpenses)
		sum.GrossProfit1 = reconcile.Add(sum.GrossProfit1, row.GrossProfit1)
		sum.GrossProfit3 = reconcile.Add(sum.GrossProfit3, row.GrossProfit3)
		sum.GrossProfit4 = reconcile.Add(sum.GrossProfit4, row.GrossProfit4)
		sum.NetProfit = reconcile.Add(sum.NetProfit, row.NetProfit)
		sum.GoodsCount += row.GoodsCount
		sum.OrderCount += row.OrderCount
	}
	sales := sum.TotalSalesAmount
	sum.GrossProfit1Rate = reconcile.WeightedRate(sum.GrossProfit1, sales)
	sum.AdvertisingRatio = reconcile.WeightedRate(sum.TotalAdvertisingExpenses, sales)
	sum.GrossProfit3Rate = reconcile.WeightedRate(sum.GrossProfit3, sales)
	sum.GrossProfit4Rate = reconcile.WeightedRate(sum.GrossProfit4, sales)
	sum.NetProfitRate = reconcile.WeightedRate(sum.NetProfit, sales)
	return sum
}
