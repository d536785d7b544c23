package room

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lovelys-studio/backoffice/internal/domain/auth"
	"github.com/lovelys-studio/backoffice/internal/domain/room"
	"github.com/lovelys-studio/backoffice/internal/domain/settlement"
	"github.com/lovelys-studio/backoffice/internal/domain/studio"
	"github.com/lovelys-studio/backoffice/internal/fixtures"
	"github.com/lovelys-studio/backoffice/internal/pkg/sse"
	settlementsvc "github.com/lovelys-studio/backoffice/internal/service/settlement"
)

// errDenied aborts a store update without swapping the snapshot.
var errDenied = errors.New("mutation denied")

const EventRoomUpdated = "room.updated"

type RoomServiceImpl struct {
	store studio.StateStore
	hub   *sse.Hub
	now   func() time.Time
}

func NewRoomService(store studio.StateStore, hub *sse.Hub) room.RoomService {
	return &RoomServiceImpl{
		store: store,
		hub:   hub,
		now:   time.Now,
	}
}

func newID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

// apply runs m against the current room inside one store update.
func (s *RoomServiceImpl) apply(ctx context.Context, roomID int, m Mutation) (room.MutationResult, error) {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return room.MutationResult{}, err
	}
	if !actor.CanViewRoom(roomID) {
		return room.MutationResult{}, auth.ErrRoomAccessDenied
	}

	var result room.MutationResult
	_, err = s.store.Update(func(st studio.State) (studio.State, error) {
		current, ok := st.RoomByID(roomID)
		if !ok {
			return st, studio.ErrRoomNotFound
		}
		next, outcome, err := m.Run(current, st.Rules, actor)
		if err != nil {
			return st, err
		}
		result = room.MutationResult{Outcome: outcome, Room: next}
		if outcome == room.OutcomeDenied {
			return st, errDenied
		}
		return st.WithRoom(next), nil
	})

	switch {
	case errors.Is(err, errDenied):
		slog.Warn("Room mutation denied", "room_id", roomID, "user_id", actor.UserID, "role", actor.Role)
		return result, nil
	case err != nil:
		return room.MutationResult{}, err
	}

	s.publish(roomID, actor)
	return result, nil
}

func (s *RoomServiceImpl) publish(roomID int, actor auth.Actor) {
	if s.hub == nil {
		return
	}
	s.hub.Broadcast(sse.Event{
		Event:  EventRoomUpdated,
		RoomID: &roomID,
		Data:   map[string]interface{}{"room_id": roomID, "by": actor.Username},
	})
}

func (s *RoomServiceImpl) resolvePeriod(query settlement.PeriodQuery) (settlement.Period, error) {
	return settlementsvc.ResolvePeriod(query, s.now())
}

// ========== ROOMS ==========

// ListRooms implements room.RoomService.
func (s *RoomServiceImpl) ListRooms(ctx context.Context) ([]room.RoomSummary, error) {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}

	st := s.store.Snapshot()
	summaries := make([]room.RoomSummary, 0, len(st.Rooms))
	for _, r := range st.Rooms {
		if !actor.CanViewRoom(r.ID) {
			continue
		}
		summaries = append(summaries, room.RoomSummary{
			ID:        r.ID,
			Name:      r.Name,
			Kind:      r.Kind,
			Platforms: r.Platforms,
			LogCount:  len(r.Logs),
		})
	}
	return summaries, nil
}

// GetRoom implements room.RoomService.
func (s *RoomServiceImpl) GetRoom(ctx context.Context, roomID int) (studio.Room, error) {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return studio.Room{}, err
	}
	if !actor.CanViewRoom(roomID) {
		return studio.Room{}, auth.ErrRoomAccessDenied
	}

	r, ok := s.store.Snapshot().RoomByID(roomID)
	if !ok {
		return studio.Room{}, studio.ErrRoomNotFound
	}
	return r, nil
}

// CreateRoom implements room.RoomService.
func (s *RoomServiceImpl) CreateRoom(ctx context.Context, req room.CreateRoomRequest) (room.MutationResult, error) {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return room.MutationResult{}, err
	}
	if !actor.IsAdmin() {
		return room.MutationResult{Outcome: room.OutcomeDenied}, nil
	}

	kind := req.Kind
	if kind == "" {
		kind = studio.RoomKindModel
	}
	period := settlementsvc.CurrentPeriod(s.now())

	var created studio.Room
	_, err = s.store.Update(func(st studio.State) (studio.State, error) {
		id := st.NextRoomID()
		name := strings.TrimSpace(req.Name)

		if kind.IsStaff() {
			created = fixtures.NewEmptyRoom(id, name, kind, []string{})
			created.MonitorShifts = fixtures.GetDefaultRoster(fmt.Sprint(id), "")
		} else {
			created = fixtures.NewEmptyRoom(id, name, kind, fixtures.NewRoomPlatforms)
		}
		billing := settlementsvc.DefaultBilling(period)
		created.Billing = &billing

		st.Rooms = append(slices.Clone(st.Rooms), created)
		return st, nil
	})
	if err != nil {
		return room.MutationResult{}, err
	}

	slog.Info("Room created", "room_id", created.ID, "kind", created.Kind, "user_id", actor.UserID)
	s.publish(created.ID, actor)
	return room.Applied(created), nil
}

// UpdateRoom implements room.RoomService.
func (s *RoomServiceImpl) UpdateRoom(ctx context.Context, req room.UpdateRoomRequest) (room.MutationResult, error) {
	return s.apply(ctx, req.RoomID, Rename(req.Name))
}

// DeleteRoom implements room.RoomService. Every record of the room goes with it.
func (s *RoomServiceImpl) DeleteRoom(ctx context.Context, roomID int, confirm bool) (room.Outcome, error) {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return "", err
	}
	if !actor.IsAdmin() {
		return room.OutcomeDenied, nil
	}
	if !confirm {
		return "", room.ErrDeleteNotConfirmed
	}

	_, err = s.store.Update(func(st studio.State) (studio.State, error) {
		idx := st.RoomIndex(roomID)
		if idx < 0 {
			return st, studio.ErrRoomNotFound
		}
		st.Rooms = slices.Delete(slices.Clone(st.Rooms), idx, idx+1)
		return st, nil
	})
	if err != nil {
		return "", err
	}

	slog.Info("Room deleted", "room_id", roomID, "user_id", actor.UserID)
	s.publish(roomID, actor)
	return room.OutcomeApplied, nil
}

// ========== PLATFORMS ==========

// AddPlatform implements room.RoomService.
func (s *RoomServiceImpl) AddPlatform(ctx context.Context, req room.PlatformRequest) (room.MutationResult, error) {
	return s.apply(ctx, req.RoomID, AddPlatform(req.Name))
}

// RenamePlatform implements room.RoomService.
func (s *RoomServiceImpl) RenamePlatform(ctx context.Context, req room.PlatformRequest) (room.MutationResult, error) {
	return s.apply(ctx, req.RoomID, RenamePlatform(req.Index, req.Name))
}

// RemovePlatform implements room.RoomService.
func (s *RoomServiceImpl) RemovePlatform(ctx context.Context, roomID int, index int) (room.MutationResult, error) {
	return s.apply(ctx, roomID, RemovePlatform(index))
}

// ========== LOGS ==========

// CreateLog implements room.RoomService. Without a date the log lands on the first day of the period.
func (s *RoomServiceImpl) CreateLog(ctx context.Context, req room.CreateLogRequest) (room.MutationResult, error) {
	date := req.Date
	if date == "" {
		period, err := s.resolvePeriod(req.Period)
		if err != nil {
			return room.MutationResult{}, err
		}
		date = period.Start
	}
	return s.apply(ctx, req.RoomID, AddLog(newID("log"), date))
}

// UpdateLog implements room.RoomService.
func (s *RoomServiceImpl) UpdateLog(ctx context.Context, req room.UpdateLogRequest) (room.MutationResult, error) {
	return s.apply(ctx, req.RoomID, UpdateLog(req))
}

// DeleteLog implements room.RoomService.
func (s *RoomServiceImpl) DeleteLog(ctx context.Context, roomID int, logID string) (room.MutationResult, error) {
	return s.apply(ctx, roomID, DeleteLog(logID))
}

// ========== ADVANCES ==========

// CreateAdvance implements room.RoomService.
func (s *RoomServiceImpl) CreateAdvance(ctx context.Context, req room.CreateAdvanceRequest) (room.MutationResult, error) {
	return s.apply(ctx, req.RoomID, AddAdvance(studio.Advance{
		ID:      newID("ad"),
		Date:    req.Date,
		Concept: strings.TrimSpace(req.Concept),
		Amount:  req.Amount,
	}))
}

// UpdateAdvance implements room.RoomService.
func (s *RoomServiceImpl) UpdateAdvance(ctx context.Context, req room.UpdateAdvanceRequest) (room.MutationResult, error) {
	return s.apply(ctx, req.RoomID, UpdateAdvance(req))
}

// DeleteAdvance implements room.RoomService.
func (s *RoomServiceImpl) DeleteAdvance(ctx context.Context, roomID int, advanceID string) (room.MutationResult, error) {
	return s.apply(ctx, roomID, DeleteAdvance(advanceID))
}

// ========== SEX SHOP ==========

// AddSexShopItem implements room.RoomService.
func (s *RoomServiceImpl) AddSexShopItem(ctx context.Context, req room.CreateSexShopItemRequest) (room.MutationResult, error) {
	return s.apply(ctx, req.RoomID, AddSexShopItem(studio.SexShopItem{
		ID:        newID("ssi"),
		Date:      req.Date,
		Code:      req.Code,
		Name:      req.Name,
		UnitPrice: req.UnitPrice,
		Quantity:  req.Quantity,
	}))
}

// DeleteSexShopItem implements room.RoomService.
func (s *RoomServiceImpl) DeleteSexShopItem(ctx context.Context, roomID int, itemID string) (room.MutationResult, error) {
	return s.apply(ctx, roomID, DeleteSexShopItem(itemID))
}

// AddSexShopPayment implements room.RoomService.
func (s *RoomServiceImpl) AddSexShopPayment(ctx context.Context, req room.CreateSexShopPaymentRequest) (room.MutationResult, error) {
	return s.apply(ctx, req.RoomID, AddSexShopPayment(studio.SexShopPayment{
		ID:     newID("abono"),
		Date:   req.Date,
		Amount: req.Amount,
	}))
}

// DeleteSexShopPayment implements room.RoomService.
func (s *RoomServiceImpl) DeleteSexShopPayment(ctx context.Context, roomID int, paymentID string) (room.MutationResult, error) {
	return s.apply(ctx, roomID, DeleteSexShopPayment(paymentID))
}

// ========== SNACKS ==========

// AdjustSnack implements room.RoomService. The consumption is dated on the first day of the period.
func (s *RoomServiceImpl) AdjustSnack(ctx context.Context, req room.AdjustSnackRequest) (room.MutationResult, error) {
	period, err := s.resolvePeriod(req.Period)
	if err != nil {
		return room.MutationResult{}, err
	}
	return s.apply(ctx, req.RoomID, AdjustSnack(req.ProductID, req.Delta, period.Start, newID("cons")))
}

// ========== BILLING & SHIFTS ==========

// UpdateBilling implements room.RoomService.
func (s *RoomServiceImpl) UpdateBilling(ctx context.Context, req room.UpdateBillingRequest) (room.MutationResult, error) {
	return s.apply(ctx, req.RoomID, UpdateBilling(req, settlementsvc.CurrentPeriod(s.now())))
}

// UpdateShift implements room.RoomService.
func (s *RoomServiceImpl) UpdateShift(ctx context.Context, req room.UpdateShiftRequest) (room.MutationResult, error) {
	return s.apply(ctx, req.RoomID, UpdateShift(req))
}
