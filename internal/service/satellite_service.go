package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/AcebergChristian/jushuitan-sub000/internal/model"
	"github.com/AcebergChristian/jushuitan-sub000/internal/reconcile"
	"github.com/AcebergChristian/jushuitan-sub000/internal/repository"
)

type AdSpendRequest struct {
	AdID       string  `json:"ad_id" binding:"required"`
	GoodsID    string  `json:"goods_id" binding:"required"`
	StoreID    string  `json:"store_id" binding:"required"`
	GoodsName  string  `json:"goods_name"`
	Spend      float64 `json:"spend"`
	ReportDate string  `json:"report_date" binding:"required" example:"2024-03-01"`
}

type BillRecordRequest struct {
	BillID    string  `json:"bill_id" binding:"required"`
	StoreID   string  `json:"store_id" binding:"required"`
	OrderID   string  `json:"order_id"`
	Amount    float64 `json:"amount"`
	BillDate  string  `json:"bill_date" binding:"required" example:"2024-03-01"`
	ClassDesc string  `json:"class_desc"`
}

type ImportResult struct {
	Imported int `json:"imported"`
}

type SatelliteService interface {
	ImportAdSpends(ctx context.Context, reqs []AdSpendRequest) (*ImportResult, error)
	ImportBills(ctx context.Context, reqs []BillRecordRequest) (*ImportResult, error)
}

type satelliteService struct {
	repo      repository.SatelliteRepository
	txManager repository.TransactionManager
	loc       *time.Location
}

func NewSatelliteService(repo repository.SatelliteRepository, txManager repository.TransactionManager, loc *time.Location) SatelliteService {
	if loc == nil {
		loc = time.Local
	}
	return &satelliteService{repo: repo, txManager: txManager, loc: loc}
}

func (s *satelliteService) normalizeDay(field, value string) (string, error) {
	day, err := reconcile.ParseDay(value, s.loc)
	if err != nil {
		return "", fmt.Errorf("%w: %s %q is not YYYY-MM-DD", ErrInvalidInput, field, value)
	}
	return reconcile.FormatDay(day), nil
}

func (s *satelliteService) ImportAdSpends(ctx context.Context, reqs []AdSpendRequest) (*ImportResult, error) {
	if len(reqs) == 0 {
		return nil, fmt.Errorf("%w: no ad spend rows", ErrInvalidInput)
	}
	rows := make([]model.AdSpend, 0, len(reqs))
	for _, req := range reqs {
		day, err := s.normalizeDay("report_date", req.ReportDate)
		if err != nil {
			return nil, err
		}
		rows = append(rows, model.AdSpend{
			AdID:       strings.TrimSpace(req.AdID),
			GoodsID:    strings.TrimSpace(req.GoodsID),
			StoreID:    strings.TrimSpace(req.StoreID),
			GoodsName:  req.GoodsName,
			Spend:      reconcile.Round2(req.Spend),
			ReportDate: day,
		})
	}
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		return s.repo.UpsertAdSpends(txCtx, rows)
	})
	if err != nil {
		return nil, fmt.Errorf("import ad spend: %w", err)
	}
	return &ImportResult{Imported: len(rows)}, nil
}

func (s *satelliteService) ImportBills(ctx context.Context, reqs []BillRecordRequest) (*ImportResult, error) {
	if len(reqs) == 0 {
		return nil, fmt.Errorf("%w: no bill rows", ErrInvalidInput)
	}
	rows := make([]model.BillRecord, 0, len(reqs))
	for _, req := range reqs {
		day, err := s.normalizeDay("bill_date", req.BillDate)
		if err != nil {
			return nil, err
		}
		rows = append(rows, model.BillRecord{
			BillID:    strings.TrimSpace(req.BillID),
			StoreID:   strings.TrimSpace(req.StoreID),
			OrderID:   strings.TrimSpace(req.OrderID),
			Amount:    reconcile.Round2(req.Amount),
			BillDate:  day,
			ClassDesc: req.ClassDesc,
		})
	}
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		return s.repo.UpsertBills(txCtx, rows)
	})
	if err != nil {
		return nil, fmt.Errorf("import bills: %w", err)
	}
	return &ImportResult{Imported: len(rows)}, nil
}
