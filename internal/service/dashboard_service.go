package service

import (
	"context"
	"fmt"
	"time"

	"github.com/AcebergChristian/jushuitan-sub000/internal/reconcile"
	"github.com/AcebergChristian/jushuitan-sub000/internal/repository"
)

const chartDays = 7

// DashboardStats are the headline figures relative to an as-of day
type DashboardStats struct {
	AsOf              string  `json:"as_of"`
	UserCount         int64   `json:"user_count"`
	GoodsCount        int64   `json:"goods_count"`
	StoreCount        int64   `json:"store_count"`
	GoodsNameCount    int64   `json:"goods_name_count"`
	OrderCount        int64   `json:"order_count"`
	TotalSales        float64 `json:"total_sales"`
	DaySales          float64 `json:"day_sales"`
	WeekSales         float64 `json:"week_sales"`
	MonthSales        float64 `json:"month_sales"`
	AverageOrderValue float64 `json:"average_order_value"`
}

// ChartPoint is one day of the sales chart
type ChartPoint struct {
	Date   string  `json:"date"`
	Sales  float64 `json:"sales"`
	Orders int64   `json:"orders"`
}

type DashboardService interface {
	Stats(ctx context.Context, asOf time.Time) (*DashboardStats, error)
	ChartData(ctx context.Context, asOf time.Time) ([]ChartPoint, error)
}

type dashboardService struct {
	statsRepo repository.StatisticsRepository
	userRepo  repository.UserRepository
	orderRepo repository.OrderRepository
	loc       *time.Location
}

func NewDashboardService(
	statsRepo repository.StatisticsRepository,
	userRepo repository.UserRepository,
	orderRepo repository.OrderRepository,
	loc *time.Location,
) DashboardService {
	if loc == nil {
		loc = time.Local
	}
	return &dashboardService{statsRepo: statsRepo, userRepo: userRepo, orderRepo: orderRepo, loc: loc}
}

func (s *dashboardService) Stats(ctx context.Context, asOf time.Time) (*DashboardStats, error) {
	asOf = asOf.In(s.loc)
	dayStart, dayEnd := reconcile.DayBounds(asOf)

	// Weeks start on Monday.
	offset := (int(dayStart.Weekday()) + 6) % 7
	weekStart := dayStart.AddDate(0, 0, -offset)
	monthStart := time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, s.loc)

	users, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	totals, err := s.statsRepo.GoodsTotals(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.orderRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}

	stats := &DashboardStats{
		AsOf:           reconcile.FormatDay(asOf),
		UserCount:      users,
		GoodsCount:     totals.RowCount,
		StoreCount:     totals.Stores,
		GoodsNameCount: totals.GoodsNames,
		OrderCount:     orders,
		TotalSales:     reconcile.Round2(totals.TotalSales),
	}
	for _, span := range []struct {
		start time.Time
		dst   *float64
	}{
		{dayStart, &stats.DaySales},
		{weekStart, &stats.WeekSales},
		{monthStart, &stats.MonthSales},
	} {
		sum, err := s.statsRepo.SumSales(ctx, repository.TimeWindow{Start: span.start, End: dayEnd})
		if err != nil {
			return nil, err
		}
		*span.dst = reconcile.Round2(sum)
	}
	if orders > 0 {
		stats.AverageOrderValue = reconcile.Round2(totals.TotalSales / float64(orders))
	}
	return stats, nil
}

func (s *dashboardService) ChartData(ctx context.Context, asOf time.Time) ([]ChartPoint, error) {
	_, end := reconcile.DayBounds(asOf.In(s.loc))
	start, _ := reconcile.DayBounds(asOf.In(s.loc).AddDate(0, 0, -(chartDays - 1)))

	points, err := s.statsRepo.SalesPoints(ctx, repository.TimeWindow{Start: start, End: end})
	if err != nil {
		return nil, err
	}
	sales := make(map[string]float64, chartDays)
	for _, p := range points {
		day := reconcile.FormatDay(p.OrderTime.In(s.loc))
		sales[day] = reconcile.Add(sales[day], p.SalesAmount)
	}

	orders, err := s.orderRepo.CountBySyncDate(ctx, reconcile.FormatDay(start), reconcile.FormatDay(end))
	if err != nil {
		return nil, err
	}

	out := make([]ChartPoint, 0, chartDays)
	for i := 0; i < chartDays; i++ {
		day := reconcile.FormatDay(start.AddDate(0, 0, i))
		out = append(out, ChartPoint{
			Date:   day,
			Sales:  reconcile.Round2(sales[day]),
			Orders: orders[day],
		})
	}
	return out, nil
}
