package room

import (
	"context"
	"testing"
	"time"

	"github.com/lovelys-studio/backoffice/internal/domain/auth"
	"github.com/lovelys-studio/backoffice/internal/domain/room"
	"github.com/lovelys-studio/backoffice/internal/domain/settlement"
	"github.com/lovelys-studio/backoffice/internal/domain/studio"
	"github.com/lovelys-studio/backoffice/internal/pkg/sse"
	"github.com/lovelys-studio/backoffice/internal/service/state"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() (*RoomServiceImpl, *state.Store, *sse.Hub) {
	store := state.NewStore(studio.State{
		Rooms: []studio.Room{testRoom(), {ID: 2, Name: "Tokio Tarde", Kind: studio.RoomKindModel}},
		Rules: testRules(),
	})
	hub := sse.NewHub()
	svc := NewRoomService(store, hub).(*RoomServiceImpl)
	svc.now = func() time.Time { return time.Date(2024, 1, 22, 10, 0, 0, 0, time.UTC) }
	return svc, store, hub
}

func as(actor auth.Actor) context.Context {
	return auth.NewContext(context.Background(), actor)
}

func TestRoomService_AppliedMutationIsStoredAndPublished(t *testing.T) {
	svc, store, hub := newTestService()
	events, cleanup := hub.Subscribe("mgr-1", nil)
	defer cleanup()

	result, err := svc.AddPlatform(as(manager), room.PlatformRequest{RoomID: 1, Name: "CamSoda"})
	require.NoError(t, err)

	assert.Equal(t, room.OutcomeApplied, result.Outcome)
	stored, _ := store.Snapshot().RoomByID(1)
	assert.Contains(t, stored.Platforms, "CamSoda")

	require.Len(t, events, 1)
	ev := <-events
	assert.Equal(t, EventRoomUpdated, ev.Event)
}

func TestRoomService_ModelStreamOnlySeesOwnRoom(t *testing.T) {
	svc, _, hub := newTestService()
	events, cleanup := hub.Subscribe(model.UserID, model.CanViewRoom)
	defer cleanup()

	_, err := svc.AddPlatform(as(admin), room.PlatformRequest{RoomID: 2, Name: "CamSoda"})
	require.NoError(t, err)
	assert.Len(t, events, 0)

	_, err = svc.AddPlatform(as(admin), room.PlatformRequest{RoomID: 1, Name: "CamSoda"})
	require.NoError(t, err)
	require.Len(t, events, 1)
	ev := <-events
	require.NotNil(t, ev.RoomID)
	assert.Equal(t, 1, *ev.RoomID)
}

func TestRoomService_DeniedMutationLeavesStateUntouched(t *testing.T) {
	svc, store, hub := newTestService()
	events, cleanup := hub.Subscribe("mgr-1", nil)
	defer cleanup()
	before := store.Snapshot()

	result, err := svc.CreateAdvance(as(manager), room.CreateAdvanceRequest{RoomID: 1, Date: "2024-01-12", Concept: "x", Amount: decimal.NewFromInt(1000)})
	require.NoError(t, err)

	assert.Equal(t, room.OutcomeDenied, result.Outcome)
	assert.Equal(t, before, store.Snapshot())
	assert.Len(t, events, 0)
}

func TestRoomService_UnknownRoom(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.DeleteLog(as(admin), 42, "log-1")
	assert.ErrorIs(t, err, studio.ErrRoomNotFound)
}

func TestRoomService_ListAndGetRespectModelBinding(t *testing.T) {
	svc, _, _ := newTestService()

	all, err := svc.ListRooms(as(manager))
	require.NoError(t, err)
	assert.Len(t, all, 2)

	own, err := svc.ListRooms(as(model))
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, 1, own[0].ID)
	assert.Equal(t, 1, own[0].LogCount)

	_, err = svc.GetRoom(as(model), 2)
	assert.ErrorIs(t, err, auth.ErrRoomAccessDenied)
}

func TestRoomService_CreateLogDefaultsToPeriodStart(t *testing.T) {
	svc, _, _ := newTestService()

	result, err := svc.CreateLog(as(manager), room.CreateLogRequest{
		RoomID: 1,
		Period: settlement.PeriodQuery{Type: string(settlement.PeriodQ2), Month: 1, Year: 2024},
	})
	require.NoError(t, err)

	last := result.Room.Logs[len(result.Room.Logs)-1]
	assert.Equal(t, "2024-01-20", last.Date)
	assert.Contains(t, last.ID, "log-")
}

func TestRoomService_AdjustSnackUsesPeriodStart(t *testing.T) {
	svc, _, _ := newTestService()

	result, err := svc.AdjustSnack(as(manager), room.AdjustSnackRequest{RoomID: 1, ProductID: "s1", Delta: 1})
	require.NoError(t, err)

	require.Len(t, result.Room.SnackConsumptions, 1)
	assert.Equal(t, "2024-01-20", result.Room.SnackConsumptions[0].Date)
}

func TestRoomService_CreateRoom(t *testing.T) {
	svc, store, _ := newTestService()

	denied, err := svc.CreateRoom(as(manager), room.CreateRoomRequest{Name: "Nueva"})
	require.NoError(t, err)
	assert.Equal(t, room.OutcomeDenied, denied.Outcome)

	created, err := svc.CreateRoom(as(admin), room.CreateRoomRequest{Name: " Nueva "})
	require.NoError(t, err)
	assert.Equal(t, 3, created.Room.ID)
	assert.Equal(t, "Nueva", created.Room.Name)
	assert.Equal(t, studio.RoomKindModel, created.Room.Kind)
	assert.Equal(t, []string{"Chaturbate", "Stripchat"}, created.Room.Platforms)
	require.NotNil(t, created.Room.Billing)
	assert.Equal(t, "2024-01-20", created.Room.Billing.PeriodStart)
	assert.True(t, created.Room.Billing.UsdExchangeRate.IsZero(), "new rooms follow the studio rate")

	staff, err := svc.CreateRoom(as(admin), room.CreateRoomRequest{Name: "Monitoras", Kind: studio.RoomKindMonitor})
	require.NoError(t, err)
	assert.Empty(t, staff.Room.Platforms)
	assert.Len(t, staff.Room.MonitorShifts, 7)

	assert.Len(t, store.Snapshot().Rooms, 4)
}

func TestRoomService_DeleteRoom(t *testing.T) {
	svc, store, _ := newTestService()

	outcome, err := svc.DeleteRoom(as(manager), 2, true)
	require.NoError(t, err)
	assert.Equal(t, room.OutcomeDenied, outcome)

	_, err = svc.DeleteRoom(as(admin), 2, false)
	assert.ErrorIs(t, err, room.ErrDeleteNotConfirmed)

	outcome, err = svc.DeleteRoom(as(admin), 2, true)
	require.NoError(t, err)
	assert.Equal(t, room.OutcomeApplied, outcome)
	assert.Len(t, store.Snapshot().Rooms, 1)

	_, err = svc.DeleteRoom(as(admin), 2, true)
	assert.ErrorIs(t, err, studio.ErrRoomNotFound)
}

func TestRoomService_ModelCannotMutateForeignRoom(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.AddPlatform(as(model), room.PlatformRequest{RoomID: 2, Name: "CamSoda"})
	assert.ErrorIs(t, err, auth.ErrRoomAccessDenied)

	result, err := svc.AddPlatform(as(model), room.PlatformRequest{RoomID: 1, Name: "CamSoda"})
	require.NoError(t, err)
	assert.Equal(t, room.OutcomeDenied, result.Outcome)
}
