package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/lovelys-studio/backoffice/internal/domain/auth"
	"github.com/lovelys-studio/backoffice/internal/domain/room"
	"github.com/lovelys-studio/backoffice/internal/domain/settlement"
	"github.com/lovelys-studio/backoffice/internal/domain/studio"
	"github.com/lovelys-studio/backoffice/internal/pkg/storage"
	"github.com/lovelys-studio/backoffice/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrAccessDenied):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrForbidden):
		Forbidden(w, err.Error())
	case errors.Is(err, auth.ErrRoomAccessDenied):
		Forbidden(w, err.Error())

	// Studio domain errors
	case errors.Is(err, studio.ErrRoomNotFound):
		NotFound(w, "Room not found")
	case errors.Is(err, studio.ErrProductNotFound):
		NotFound(w, "Product not found")
	case errors.Is(err, studio.ErrExpenseNotFound):
		NotFound(w, "Expense not found")
	case errors.Is(err, studio.ErrIncomeRecordNotFound):
		NotFound(w, "Income record not found")
	case errors.Is(err, studio.ErrAccountNotFound):
		NotFound(w, "Account not found")
	case errors.Is(err, studio.ErrProductCodeExists):
		Conflict(w, "Product code already exists")
	case errors.Is(err, studio.ErrUsernameExists):
		Conflict(w, "Username already registered")
	case errors.Is(err, studio.ErrInvalidCatalogKind):
		BadRequest(w, "Catalog must be 'snack' or 'sexshop'", nil)
	case errors.Is(err, studio.ErrCannotDeleteSelf):
		BadRequest(w, "Cannot delete the account in use", nil)

	// Room domain errors
	case errors.Is(err, room.ErrLogNotFound):
		NotFound(w, "Daily log not found")
	case errors.Is(err, room.ErrAdvanceNotFound):
		NotFound(w, "Advance not found")
	case errors.Is(err, room.ErrItemNotFound):
		NotFound(w, "Sex-shop item not found")
	case errors.Is(err, room.ErrPaymentNotFound):
		NotFound(w, "Sex-shop payment not found")
	case errors.Is(err, room.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, room.ErrLogDateTaken):
		Conflict(w, "Room already has a log for this date")
	case errors.Is(err, room.ErrPlatformExists):
		Conflict(w, "Platform already active in this room")
	case errors.Is(err, room.ErrPlatformIndexOutOfRange):
		BadRequest(w, "Platform index out of range", nil)
	case errors.Is(err, room.ErrDeleteNotConfirmed):
		BadRequest(w, "Room deletion requires confirm=true", nil)
	case errors.Is(err, room.ErrIncompleteProduct):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, room.ErrNotStaffRoom):
		BadRequest(w, "Shifts only exist on staff rooms", nil)

	// Settlement domain errors
	case errors.Is(err, settlement.ErrInvalidPeriodRange):
		BadRequest(w, "Period start must not be after period end", nil)
	case errors.Is(err, settlement.ErrInvalidPeriodType):
		BadRequest(w, "Period type must be q1, q2 or custom", nil)

	case errors.Is(err, storage.ErrFileNotFound):
		NotFound(w, "File not found")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
