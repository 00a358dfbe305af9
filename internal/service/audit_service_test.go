package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/AcebergChristian/jushuitan-sub000/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditService_RecordAndList(t *testing.T) {
	e := newTestEnv(t)
	svc := NewAuditService(e.audit)
	ctx := context.Background()
	admin := e.createUser(t, "root", model.RoleAdmin)

	require.NoError(t, svc.Record(ctx, AuditEntry{
		ActorID:    admin.ID.String(),
		Action:     model.ActionUpdateEntitlements,
		EntityID:   "u-1",
		EntityName: "alice",
		Details:    []model.Entitlement{{GoodID: "G1"}},
	}))
	require.NoError(t, svc.Record(ctx, AuditEntry{Action: model.ActionSyncGoods, EntityID: "2026-01-15"}))

	logs, total, err := svc.GetAuditLogs(ctx, "", 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, logs, 2)

	byAction := map[string]AuditLogResponse{}
	for _, l := range logs {
		byAction[l.Action] = l
	}
	ent := byAction[model.ActionUpdateEntitlements]
	assert.Equal(t, "root", ent.Username)
	assert.Equal(t, admin.ID.String(), ent.UserID)
	var details []model.Entitlement
	require.NoError(t, json.Unmarshal(ent.Details, &details))
	assert.Equal(t, "G1", details[0].GoodID)

	assert.Equal(t, "System", byAction[model.ActionSyncGoods].Username)
	assert.Empty(t, byAction[model.ActionSyncGoods].UserID)

	logs, total, err = svc.GetAuditLogs(ctx, model.ActionSyncGoods, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, logs, 1)
}

func TestSyncAll_WritesAuditEntry(t *testing.T) {
	e := newTestEnv(t)
	o := rawOrder("O1", "S1", "2026-01-15 10:00:00", 10, 1, model.OrderStatusSent, "A")
	svc := e.syncService(t, &fakeSource{gross: []model.RawOrder{o}, net: []model.RawOrder{o}}, nil)
	ctx := context.Background()

	_, err := svc.SyncAll(ctx, day("2026-01-15"))
	require.NoError(t, err)
	_, err = svc.SyncAggregates(ctx, day("2026-01-15"))
	require.NoError(t, err)

	logs, total, err := e.audit.List(ctx, model.ActionSyncOrders, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "2026-01-15", logs[0].EntityID)
	assert.Nil(t, logs[0].UserID)

	_, total, err = e.audit.List(ctx, model.ActionSyncGoods, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestSyncAll_FailureWritesNoAudit(t *testing.T) {
	e := newTestEnv(t)
	svc := e.syncService(t, &fakeSource{err: assert.AnError}, nil)

	_, err := svc.SyncAll(context.Background(), day("2026-01-15"))
	require.Error(t, err)

	_, total, err := e.audit.List(context.Background(), "", 1, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
}
