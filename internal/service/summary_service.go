package service

import (
	"context"
	"fmt"

	"github.com/AcebergChristian/jushuitan-sub000/internal/model"
	"github.com/AcebergChristian/jushuitan-sub000/internal/reconcile"
	"github.com/AcebergChristian/jushuitan-sub000/internal/repository"
)

// UserGoodsSummary is one user's entitled goods rolled up. Amounts are sums;
// rates are the plain mean of the per-goods rates.
type UserGoodsSummary struct {
	UserID                   string  `json:"user_id"`
	Username                 string  `json:"username"`
	GoodsCount               int     `json:"goods_count"`
	StoreCount               int     `json:"store_count"`
	OrderCount               int     `json:"order_count"`
	TotalPaymentAmount       float64 `json:"total_payment_amount"`
	TotalSalesAmount         float64 `json:"total_sales_amount"`
	TotalSalesCost           float64 `json:"total_sales_cost"`
	TotalRefundAmount        float64 `json:"total_refund_amount"`
	TotalAdvertisingExpenses float64 `json:"total_advertising_expenses"`
	model.ProfitMetrics
}

type SummaryService interface {
	UserGoodsSummary(ctx context.Context, viewer Viewer, window *repository.TimeWindow) ([]UserGoodsSummary, error)
}

type summaryService struct {
	userRepo     repository.UserRepository
	goodsRepo    repository.GoodsRepository
	entitlements *EntitlementResolver
}

func NewSummaryService(userRepo repository.UserRepository, goodsRepo repository.GoodsRepository, entitlements *EntitlementResolver) SummaryService {
	return &summaryService{userRepo: userRepo, goodsRepo: goodsRepo, entitlements: entitlements}
}

func (s *summaryService) UserGoodsSummary(ctx context.Context, viewer Viewer, window *repository.TimeWindow) ([]UserGoodsSummary, error) {
	if window != nil && window.End.Before(window.Start) {
		return nil, fmt.Errorf("%w: end_date is before start_date", ErrInvalidInput)
	}

	var users []model.User
	if viewer.IsAdmin() {
		all, err := s.userRepo.ListAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("list users: %w", err)
		}
		users = all
	} else {
		self, err := s.entitlements.User(ctx, viewer)
		if err != nil {
			return nil, err
		}
		users = []model.User{*self}
	}

	out := make([]UserGoodsSummary, 0, len(users))
	for i := range users {
		row, err := s.summarize(ctx, &users[i], window)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, nil
}

type goodsGroup struct {
	sales, cost, ad, payment, refund float64
}

func (s *summaryService) summarize(ctx context.Context, user *model.User, window *repository.TimeWindow) (UserGoodsSummary, error) {
	summary := UserGoodsSummary{UserID: user.ID.String(), Username: user.Username}

	ids := user.EntitledGoodsIDs()
	if len(ids) == 0 {
		return summary, nil
	}
	rows, err := s.goodsRepo.ListByGoodsIDs(ctx, ids, window)
	if err != nil {
		return summary, fmt.Errorf("list entitled goods: %w", err)
	}

	groups := make(map[string]*goodsGroup)
	var order []string
	orders := make(map[string]struct{})
	stores := make(map[string]struct{})
	for _, row := range rows {
		g, ok := groups[row.GoodsID]
		if !ok {
			g = &goodsGroup{}
			groups[row.GoodsID] = g
			order = append(order, row.GoodsID)
		}
		g.sales = reconcile.Add(g.sales, row.SalesAmount)
		g.cost = reconcile.Add(g.cost, row.SalesCost)
		g.ad = reconcile.Add(g.ad, row.AdvertisingExpenses)
		g.payment = reconcile.Add(g.payment, row.PaymentAmount)
		g.refund = reconcile.Add(g.refund, row.RefundAmount)
		if row.OrderID != "" {
			orders[row.OrderID] = struct{}{}
		}
		if row.StoreID != "" {
			stores[row.StoreID] = struct{}{}
		}
	}

	var gp1Rates, adRatios, gp3Rates, gp4Rates, netRates []float64
	var gp1, gp3, gp4, net float64
	for _, id := range order {
		g := groups[id]
		m := reconcile.ComputeMetrics(g.sales, g.cost, g.ad)

		summary.TotalSalesAmount = reconcile.Add(summary.TotalSalesAmount, g.sales)
		summary.TotalSalesCost = reconcile.Add(summary.TotalSalesCost, g.cost)
		summary.TotalAdvertisingExpenses = reconcile.Add(summary.TotalAdvertisingExpenses, g.ad)
		summary.TotalPaymentAmount = reconcile.Add(summary.TotalPaymentAmount, g.payment)
		summary.TotalRefundAmount = reconcile.Add(summary.TotalRefundAmount, g.refund)
		gp1 = reconcile.Add(gp1, m.GrossProfit1)
		gp3 = reconcile.Add(gp3, m.GrossProfit3)
		gp4 = reconcile.Add(gp4, m.GrossProfit4)
		net = reconcile.Add(net, m.NetProfit)

		gp1Rates = append(gp1Rates, m.GrossProfit1Rate)
		adRatios = append(adRatios, m.AdvertisingRatio)
		gp3Rates = append(gp3Rates, m.GrossProfit3Rate)
		gp4Rates = append(gp4Rates, m.GrossProfit4Rate)
		netRates = append(netRates, m.NetProfitRate)
	}

	summary.GoodsCount = len(order)
	summary.StoreCount = len(stores)
	summary.OrderCount = len(orders)
	summary.ProfitMetrics = model.ProfitMetrics{
		GrossProfit1:     reconcile.Round2(gp1),
		GrossProfit1Rate: reconcile.MeanOfRates(gp1Rates),
		AdvertisingRatio: reconcile.MeanOfRates(adRatios),
		GrossProfit3:     reconcile.Round2(gp3),
		GrossProfit3Rate: reconcile.MeanOfRates(gp3Rates),
		GrossProfit4:     reconcile.Round2(gp4),
		GrossProfit4Rate: reconcile.MeanOfRates(gp4Rates),
		NetProfit:        reconcile.Round2(net),
		NetProfitRate:    reconcile.MeanOfRates(netRates),
	}
	return summary, nil
}
