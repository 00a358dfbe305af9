package service

import (
	"context"
	"testing"

	"github.com/AcebergChristian/jushuitan-sub000/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSatelliteService_Import(t *testing.T) {
	e := newTestEnv(t)
	svc := NewSatelliteService(e.satellite, e.tx, testLoc)
	ctx := context.Background()

	res, err := svc.ImportAdSpends(ctx, []AdSpendRequest{
		{AdID: "a1", GoodsID: "G1", StoreID: "S1", Spend: 10.005, ReportDate: "2026-01-15"},
		{AdID: "a2", GoodsID: "G1", StoreID: "S1", Spend: 5, ReportDate: " 2026-01-15 "},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Imported)

	ads, err := e.satellite.AdSpendByGoods(ctx, []string{"G1"})
	require.NoError(t, err)
	assert.InDelta(t, 15.01, ads[repository.JoinKey{StoreID: "S1", Ref: "G1"}], 0.001)

	_, err = svc.ImportAdSpends(ctx, []AdSpendRequest{{AdID: "a3", GoodsID: "G1", StoreID: "S1", ReportDate: "15/01/2026"}})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.ImportAdSpends(ctx, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	res, err = svc.ImportBills(ctx, []BillRecordRequest{
		{BillID: "b1", StoreID: "S1", OrderID: "O1", Amount: -3.5, BillDate: "2026-01-15"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Imported)

	refunds, err := e.satellite.RefundByStoreDay(ctx, []string{"S1"})
	require.NoError(t, err)
	assert.InDelta(t, 3.5, refunds[repository.JoinKey{StoreID: "S1", Ref: "2026-01-15"}], 0.001)
}
