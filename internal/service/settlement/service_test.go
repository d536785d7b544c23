package settlement

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/lovelys-studio/backoffice/internal/domain/auth"
	"github.com/lovelys-studio/backoffice/internal/domain/settlement"
	"github.com/lovelys-studio/backoffice/internal/domain/studio"
	"github.com/lovelys-studio/backoffice/internal/pkg/storage"
	"github.com/lovelys-studio/backoffice/internal/service/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*SettlementServiceImpl, string) {
	t.Helper()

	dir := t.TempDir()
	fs, err := storage.NewLocalStorage(dir, "http://localhost:8080/uploads")
	require.NoError(t, err)

	store := state.NewStore(studio.State{
		Rooms: []studio.Room{modelRoom()},
		Rules: studioRules(),
	})

	svc := NewSettlementService(store, fs, "Lovely's Studio").(*SettlementServiceImpl)
	svc.now = func() time.Time { return time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC) }
	return svc, dir
}

func actorCtx(role studio.Role, roomID *int) context.Context {
	return auth.NewContext(context.Background(), auth.Actor{UserID: "acc-1", Username: "tester", Role: role, RoomID: roomID})
}

func TestSettlementService_DefaultsToCurrentPeriod(t *testing.T) {
	svc, _ := newTestService(t)

	result, err := svc.GetSettlement(actorCtx(studio.RoleManager, nil), 1, settlement.PeriodQuery{})
	require.NoError(t, err)

	assert.Equal(t, settlement.PeriodQ1, result.Period.Type)
	assert.Equal(t, "2024-01-05", result.Period.Start)
	assertDecimal(t, "180000", result.NetPayout)
}

func TestSettlementService_ModelSeesOnlyOwnRoom(t *testing.T) {
	svc, _ := newTestService(t)
	own, other := 1, 2

	_, err := svc.GetSettlement(actorCtx(studio.RoleModel, &own), 1, settlement.PeriodQuery{})
	assert.NoError(t, err)

	_, err = svc.GetSettlement(actorCtx(studio.RoleModel, &other), 1, settlement.PeriodQuery{})
	assert.ErrorIs(t, err, auth.ErrRoomAccessDenied)
}

func TestSettlementService_Errors(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := actorCtx(studio.RoleAdmin, nil)

	_, err := svc.GetSettlement(ctx, 99, settlement.PeriodQuery{})
	assert.ErrorIs(t, err, studio.ErrRoomNotFound)

	_, err = svc.GetSettlement(ctx, 1, settlement.PeriodQuery{Type: "custom", Start: "2024-02-01", End: "2024-01-01"})
	assert.ErrorIs(t, err, settlement.ErrInvalidPeriodRange)

	_, err = svc.GetSettlement(context.Background(), 1, settlement.PeriodQuery{})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestSettlementService_RenderReceipt(t *testing.T) {
	svc, _ := newTestService(t)

	var buf bytes.Buffer
	err := svc.RenderReceipt(actorCtx(studio.RoleAdmin, nil), 1, settlement.PeriodQuery{Type: "q1", Month: 1, Year: 2024}, &buf)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "$180.000")
	assert.Contains(t, buf.String(), "2024-01-15 12:00")
}

func TestSettlementService_ExportReceipt(t *testing.T) {
	svc, dir := newTestService(t)

	resp, err := svc.ExportReceipt(actorCtx(studio.RoleAdmin, nil), 1, settlement.PeriodQuery{Type: "q1", Month: 1, Year: 2024})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(resp.FileName, "receipt_1_2024-01-05_2024-01-19_"))
	assert.Equal(t, "http://localhost:8080/uploads/receipts/"+resp.FileName, resp.URL)

	content, err := os.ReadFile(filepath.Join(dir, "receipts", resp.FileName))
	require.NoError(t, err)
	assert.Contains(t, string(content), "Neto a pagar")
}
