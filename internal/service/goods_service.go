package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/AcebergChristian/jushuitan-sub000/internal/model"
	"github.com/AcebergChristian/jushuitan-sub000/internal/reconcile"
	"github.com/AcebergChristian/jushuitan-sub000/internal/repository"
)

// GoodsDictEntry is one selector option
type GoodsDictEntry struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// StoreGoodsRow is one goods id of a shop with its rows rolled up
type StoreGoodsRow struct {
	GoodsID             string    `json:"goods_id"`
	GoodsName           string    `json:"goods_name"`
	StoreID             string    `json:"store_id"`
	StoreName           string    `json:"store_name"`
	OrderIDs            string    `json:"order_ids"`
	OnlineOrderIDs      string    `json:"online_order_ids"`
	OrderCount          int       `json:"order_count"`
	PaymentAmount       float64   `json:"payment_amount"`
	SalesAmount         float64   `json:"sales_amount"`
	SalesCost           float64   `json:"sales_cost"`
	RefundAmount        float64   `json:"refund_amount"`
	AdvertisingExpenses float64   `json:"advertising_expenses"`
	FirstOrderTime      time.Time `json:"first_order_time"`
	LatestOrderTime     time.Time `json:"latest_order_time"`
	model.ProfitMetrics
}

type GoodsService interface {
	ListGoods(ctx context.Context, search string, skip, limit int) ([]model.GoodsAggregate, int64, error)
	GoodsDict(ctx context.Context) ([]GoodsDictEntry, error)
	StoreGoodsDetail(ctx context.Context, viewer Viewer, storeKey string) ([]StoreGoodsRow, error)
}

type goodsService struct {
	goodsRepo     repository.GoodsRepository
	satelliteRepo repository.SatelliteRepository
	entitlements  *EntitlementResolver
}

func NewGoodsService(
	goodsRepo repository.GoodsRepository,
	satelliteRepo repository.SatelliteRepository,
	entitlements *EntitlementResolver,
) GoodsService {
	return &goodsService{
		goodsRepo:     goodsRepo,
		satelliteRepo: satelliteRepo,
		entitlements:  entitlements,
	}
}

// ListGoods returns a page of goods rows with ad spend and refunds joined from
// the satellite tables. A joined value replaces the stored one only when it is
// positive; metrics are recomputed afterwards.
func (s *goodsService) ListGoods(ctx context.Context, search string, skip, limit int) ([]model.GoodsAggregate, int64, error) {
	if skip < 0 || limit < 1 || limit > 100 {
		return nil, 0, fmt.Errorf("%w: skip must be >= 0 and limit within [1, 100]", ErrInvalidInput)
	}

	rows, total, err := s.goodsRepo.List(ctx, repository.GoodsFilter{
		Search: strings.TrimSpace(search),
		Offset: skip,
		Limit:  limit,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list goods: %w", err)
	}
	if len(rows) == 0 {
		return []model.GoodsAggregate{}, total, nil
	}

	goodsIDs := make([]string, 0, len(rows))
	orderIDs := make([]string, 0, len(rows))
	for _, row := range rows {
		goodsIDs = append(goodsIDs, row.GoodsID)
		if row.OrderID != "" {
			orderIDs = append(orderIDs, row.OrderID)
		}
	}
	ads, err := s.satelliteRepo.AdSpendByGoods(ctx, distinct(goodsIDs))
	if err != nil {
		return nil, 0, fmt.Errorf("join ad spend: %w", err)
	}
	refunds, err := s.satelliteRepo.RefundByOrder(ctx, distinct(orderIDs))
	if err != nil {
		return nil, 0, fmt.Errorf("join refunds: %w", err)
	}

	for i := range rows {
		row := &rows[i]
		if ad := ads[repository.JoinKey{StoreID: row.StoreID, Ref: row.GoodsID}]; ad > 0 {
			row.AdvertisingExpenses = reconcile.Round2(ad)
		}
		if refund := refunds[repository.JoinKey{StoreID: row.StoreID, Ref: row.OrderID}]; refund > 0 {
			row.RefundAmount = reconcile.Round2(refund)
		}
		row.ProfitMetrics = reconcile.ComputeMetrics(row.SalesAmount, row.SalesCost, row.AdvertisingExpenses)
	}
	return rows, total, nil
}

func (s *goodsService) GoodsDict(ctx context.Context) ([]GoodsDictEntry, error) {
	options, err := s.goodsRepo.Options(ctx)
	if err != nil {
		return nil, fmt.Errorf("goods options: %w", err)
	}
	out := make([]GoodsDictEntry, 0, len(options))
	for _, o := range options {
		out = append(out, GoodsDictEntry{Label: o.GoodsName, Value: o.GoodsID})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out, nil
}

// StoreGoodsDetail groups a shop's goods rows by goods id. The store key may
// carry a day suffix. Viewers not entitled to the shop get ErrForbidden.
func (s *goodsService) StoreGoodsDetail(ctx context.Context, viewer Viewer, storeKey string) ([]StoreGoodsRow, error) {
	shopID := reconcile.RealStoreID(strings.TrimSpace(storeKey))
	if shopID == "" {
		return nil, fmt.Errorf("%w: store id is required", ErrInvalidInput)
	}

	scope, err := s.entitlements.Shops(ctx, viewer)
	if err != nil {
		return nil, err
	}
	if !scope.Allows(shopID) {
		return nil, fmt.Errorf("%w: no access to store %s", ErrForbidden, shopID)
	}

	rows, err := s.goodsRepo.ListByStore(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("list store goods: %w", err)
	}

	groups := make(map[string]*StoreGoodsRow)
	orderSeen := make(map[string]map[string]struct{})
	orderIDs := make(map[string][]string)
	onlineIDs := make(map[string][]string)
	var order []string

	for _, row := range rows {
		g, ok := groups[row.GoodsID]
		if !ok {
			g = &StoreGoodsRow{
				GoodsID:         row.GoodsID,
				GoodsName:       row.GoodsName,
				StoreID:         row.StoreID,
				StoreName:       row.StoreName,
				FirstOrderTime:  row.OrderTime,
				LatestOrderTime: row.OrderTime,
			}
			groups[row.GoodsID] = g
			orderSeen[row.GoodsID] = make(map[string]struct{})
			order = append(order, row.GoodsID)
		}
		g.PaymentAmount = reconcile.Add(g.PaymentAmount, row.PaymentAmount)
		g.SalesAmount = reconcile.Add(g.SalesAmount, row.SalesAmount)
		g.SalesCost = reconcile.Add(g.SalesCost, row.SalesCost)
		g.RefundAmount = reconcile.Add(g.RefundAmount, row.RefundAmount)
		g.AdvertisingExpenses = reconcile.Add(g.AdvertisingExpenses, row.AdvertisingExpenses)
		if row.OrderTime.Before(g.FirstOrderTime) {
			g.FirstOrderTime = row.OrderTime
		}
		if row.OrderTime.After(g.LatestOrderTime) {
			g.LatestOrderTime = row.OrderTime
		}
		if row.OrderID != "" {
			if _, dup := orderSeen[row.GoodsID][row.OrderID]; !dup {
				orderSeen[row.GoodsID][row.OrderID] = struct{}{}
				orderIDs[row.GoodsID] = append(orderIDs[row.GoodsID], row.OrderID)
				if row.OnlineOrderID != "" {
					onlineIDs[row.GoodsID] = append(onlineIDs[row.GoodsID], row.OnlineOrderID)
				}
			}
		}
	}

	out := make([]StoreGoodsRow, 0, len(order))
	for _, id := range order {
		g := groups[id]
		g.OrderIDs = strings.Join(orderIDs[id], ",")
		g.OnlineOrderIDs = strings.Join(onlineIDs[id], ",")
		g.OrderCount = len(orderIDs[id])
		g.ProfitMetrics = reconcile.ComputeMetrics(g.SalesAmount, g.SalesCost, g.AdvertisingExpenses)
		out = append(out, *g)
	}
	return out, nil
}

func distinct(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
