package room

import (
	"context"

	"github.com/lovelys-studio/backoffice/internal/domain/studio"
)

// RoomService applies the room mutators to the shared state. A refused mutation
// returns OutcomeDenied with a nil error.
type RoomService interface {
	ListRooms(ctx context.Context) ([]RoomSummary, error)
	GetRoom(ctx context.Context, roomID int) (studio.Room, error)
	CreateRoom(ctx context.Context, req CreateRoomRequest) (MutationResult, error)
	UpdateRoom(ctx context.Context, req UpdateRoomRequest) (MutationResult, error)
	DeleteRoom(ctx context.Context, roomID int, confirm bool) (Outcome, error)

	AddPlatform(ctx context.Context, req PlatformRequest) (MutationResult, error)
	RenamePlatform(ctx context.Context, req PlatformRequest) (MutationResult, error)
	RemovePlatform(ctx context.Context, roomID int, index int) (MutationResult, error)

	CreateLog(ctx context.Context, req CreateLogRequest) (MutationResult, error)
	UpdateLog(ctx context.Context, req UpdateLogRequest) (MutationResult, error)
	DeleteLog(ctx context.Context, roomID int, logID string) (MutationResult, error)

	CreateAdvance(ctx context.Context, req CreateAdvanceRequest) (MutationResult, error)
	UpdateAdvance(ctx context.Context, req UpdateAdvanceRequest) (MutationResult, error)
	DeleteAdvance(ctx context.Context, roomID int, advanceID string) (MutationResult, error)

	AddSexShopItem(ctx context.Context, req CreateSexShopItemRequest) (MutationResult, error)
	DeleteSexShopItem(ctx context.Context, roomID int, itemID string) (MutationResult, error)
	AddSexShopPayment(ctx context.Context, req CreateSexShopPaymentRequest) (MutationResult, error)
	DeleteSexShopPayment(ctx context.Context, roomID int, paymentID string) (MutationResult, error)

	AdjustSnack(ctx context.Context, req AdjustSnackRequest) (MutationResult, error)
	UpdateBilling(ctx context.Context, req UpdateBillingRequest) (MutationResult, error)
	UpdateShift(ctx context.Context, req UpdateShiftRequest) (MutationResult, error)
}
