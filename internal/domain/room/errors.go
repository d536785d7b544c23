package room

import "errors"

var (
	ErrLogNotFound             = errors.New("daily log not found")
	ErrLogDateTaken            = errors.New("room already has a log for this date")
	ErrAdvanceNotFound         = errors.New("advance not found")
	ErrItemNotFound            = errors.New("sex-shop item not found")
	ErrPaymentNotFound         = errors.New("sex-shop payment not found")
	ErrShiftNotFound           = errors.New("shift not found")
	ErrPlatformExists          = errors.New("platform already active in this room")
	ErrPlatformIndexOutOfRange = errors.New("platform index out of range")
	ErrDeleteNotConfirmed      = errors.New("room deletion requires confirm=true")
	ErrIncompleteProduct       = errors.New("sex-shop item needs a name, a positive price and a positive quantity")
	ErrNotStaffRoom            = errors.New("shifts only exist on staff rooms")
)
