package studio

import "errors"

var (
	ErrStateNotFound        = errors.New("application state not found")
	ErrRoomNotFound         = errors.New("room not found")
	ErrProductNotFound      = errors.New("catalog product not found")
	ErrProductCodeExists    = errors.New("catalog product code already exists")
	ErrExpenseNotFound      = errors.New("expense not found")
	ErrIncomeRecordNotFound = errors.New("income record not found")
	ErrAccountNotFound      = errors.New("account not found")
	ErrUsernameExists       = errors.New("username already registered")
	ErrInvalidCatalogKind   = errors.New("invalid catalog kind")
	ErrCannotDeleteSelf     = errors.New("cannot delete the account in use")
)
