package settlement

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lovelys-studio/backoffice/internal/domain/auth"
	"github.com/lovelys-studio/backoffice/internal/domain/settlement"
	"github.com/lovelys-studio/backoffice/internal/domain/studio"
	"github.com/lovelys-studio/backoffice/internal/pkg/storage"
)

type SettlementServiceImpl struct {
	store       studio.StateStore
	fileStorage storage.FileStorage
	studioName  string
	now         func() time.Time
}

func NewSettlementService(store studio.StateStore, fileStorage storage.FileStorage, studioName string) settlement.SettlementService {
	return &SettlementServiceImpl{
		store:       store,
		fileStorage: fileStorage,
		studioName:  studioName,
		now:         time.Now,
	}
}

func (s *SettlementServiceImpl) settle(ctx context.Context, roomID int, query settlement.PeriodQuery) (settlement.Settlement, error) {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return settlement.Settlement{}, err
	}
	if !actor.CanViewRoom(roomID) {
		return settlement.Settlement{}, auth.ErrRoomAccessDenied
	}

	period, err := ResolvePeriod(query, s.now())
	if err != nil {
		return settlement.Settlement{}, err
	}

	state := s.store.Snapshot()
	room, ok := state.RoomByID(roomID)
	if !ok {
		return settlement.Settlement{}, studio.ErrRoomNotFound
	}

	return Settle(room, state.Rules, period), nil
}

// GetSettlement implements settlement.SettlementService.
func (s *SettlementServiceImpl) GetSettlement(ctx context.Context, roomID int, query settlement.PeriodQuery) (settlement.Settlement, error) {
	return s.settle(ctx, roomID, query)
}

// GetReceipt implements settlement.SettlementService.
func (s *SettlementServiceImpl) GetReceipt(ctx context.Context, roomID int, query settlement.PeriodQuery) (settlement.Receipt, error) {
	result, err := s.settle(ctx, roomID, query)
	if err != nil {
		return settlement.Receipt{}, err
	}
	return BuildReceipt(result, s.studioName, s.now()), nil
}

// RenderReceipt implements settlement.SettlementService.
func (s *SettlementServiceImpl) RenderReceipt(ctx context.Context, roomID int, query settlement.PeriodQuery, w io.Writer) error {
	receipt, err := s.GetReceipt(ctx, roomID, query)
	if err != nil {
		return err
	}
	return RenderReceipt(w, receipt)
}

// ExportReceipt implements settlement.SettlementService.
func (s *SettlementServiceImpl) ExportReceipt(ctx context.Context, roomID int, query settlement.PeriodQuery) (settlement.ReceiptExportResponse, error) {
	receipt, err := s.GetReceipt(ctx, roomID, query)
	if err != nil {
		return settlement.ReceiptExportResponse{}, err
	}

	var buf bytes.Buffer
	if err := RenderReceipt(&buf, receipt); err != nil {
		return settlement.ReceiptExportResponse{}, fmt.Errorf("failed to render receipt: %w", err)
	}

	fileName := fmt.Sprintf("receipt_%d_%s_%s_%s.html", receipt.RoomID, receipt.Period.Start, receipt.Period.End, uuid.NewString()[:8])
	path, err := s.fileStorage.Upload(ctx, &buf, "receipts/"+fileName, "text/html")
	if err != nil {
		return settlement.ReceiptExportResponse{}, fmt.Errorf("failed to store receipt: %w", err)
	}

	url, err := s.fileStorage.GetURL(ctx, path, 0)
	if err != nil {
		return settlement.ReceiptExportResponse{}, fmt.Errorf("failed to get receipt url: %w", err)
	}

	slog.Info("Receipt exported", "room_id", receipt.RoomID, "period_start", receipt.Period.Start, "path", path)
	return settlement.ReceiptExportResponse{FileName: fileName, URL: url}, nil
}
