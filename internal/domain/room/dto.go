package room

import (
	"slices"
	"strings"

	"github.com/lovelys-studio/backoffice/internal/domain/settlement"
	"github.com/lovelys-studio/backoffice/internal/domain/studio"
	"github.com/lovelys-studio/backoffice/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== ROOM DTOs ==========

type CreateRoomRequest struct {
	Name string          `json:"name"`
	Kind studio.RoomKind `json:"kind"`
}

func (r *CreateRoomRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if r.Kind != "" && !r.Kind.IsValid() {
		errs = append(errs, validator.ValidationError{Field: "kind", Message: "must be 'model', 'monitor' or 'cleaning'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateRoomRequest struct {
	RoomID int    `json:"-"`
	Name   string `json:"name"`
}

func (r *UpdateRoomRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PlatformRequest struct {
	RoomID int    `json:"-"`
	Index  int    `json:"-"`
	Name   string `json:"name"`
}

func (r *PlatformRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== LOG DTOs ==========

type CreateLogRequest struct {
	RoomID int `json:"-"`
	// Date defaults to the start of Period.
	Date   string                 `json:"date,omitempty"`
	Period settlement.PeriodQuery `json:"-"`
}

func (r *CreateLogRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Date != "" {
		if _, ok := validator.IsValidDate(r.Date); !ok {
			errs = append(errs, validator.ValidationError{Field: "date", Message: "must be in YYYY-MM-DD format"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return r.Period.Validate()
}

type UpdateLogRequest struct {
	RoomID         int                      `json:"-"`
	LogID          string                   `json:"-"`
	Date           *string                  `json:"date,omitempty"`
	Status         *studio.AttendanceStatus `json:"status,omitempty"`
	StartTime      *string                  `json:"start_time,omitempty"`
	EndTime        *string                  `json:"end_time,omitempty"`
	TotalHours     *float64                 `json:"total_hours,omitempty"`
	PlatformTokens []studio.PlatformToken   `json:"platform_tokens,omitempty"`
	Notes          *string                  `json:"notes,omitempty"`
}

func (r *UpdateLogRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Date != nil {
		if _, ok := validator.IsValidDate(*r.Date); !ok {
			errs = append(errs, validator.ValidationError{Field: "date", Message: "must be in YYYY-MM-DD format"})
		}
	}
	if r.Status != nil && !r.Status.IsValid() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be one of present, late, absent, excused, day_off"})
	}
	if r.StartTime != nil && !validator.IsValidClock(*r.StartTime) {
		errs = append(errs, validator.ValidationError{Field: "start_time", Message: "must be in HH:MM format"})
	}
	if r.EndTime != nil && !validator.IsValidClock(*r.EndTime) {
		errs = append(errs, validator.ValidationError{Field: "end_time", Message: "must be in HH:MM format"})
	}
	if r.TotalHours != nil && (*r.TotalHours < 0 || *r.TotalHours > 24) {
		errs = append(errs, validator.ValidationError{Field: "total_hours", Message: "must be between 0 and 24"})
	}
	for _, pt := range r.PlatformTokens {
		if validator.IsEmpty(pt.Platform) {
			errs = append(errs, validator.ValidationError{Field: "platform_tokens", Message: "platform is required"})
			break
		}
		if pt.Tokens < 0 {
			errs = append(errs, validator.ValidationError{Field: "platform_tokens", Message: "tokens must be non-negative"})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== ADVANCE DTOs ==========

type CreateAdvanceRequest struct {
	RoomID  int             `json:"-"`
	Date    string          `json:"date"`
	Concept string          `json:"concept"`
	Amount  decimal.Decimal `json:"amount"`
}

func (r *CreateAdvanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be in YYYY-MM-DD format"})
	}
	if r.Amount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateAdvanceRequest struct {
	RoomID    int              `json:"-"`
	AdvanceID string           `json:"-"`
	Date      *string          `json:"date,omitempty"`
	Concept   *string          `json:"concept,omitempty"`
	Amount    *decimal.Decimal `json:"amount,omitempty"`
}

func (r *UpdateAdvanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Date != nil {
		if _, ok := validator.IsValidDate(*r.Date); !ok {
			errs = append(errs, validator.ValidationError{Field: "date", Message: "must be in YYYY-MM-DD format"})
		}
	}
	if r.Amount != nil && r.Amount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== SEX-SHOP DTOs ==========

// CreateSexShopItemRequest is filled from the catalog when Code is set, manually otherwise.
type CreateSexShopItemRequest struct {
	RoomID    int             `json:"-"`
	Date      string          `json:"date"`
	Code      string          `json:"code,omitempty"`
	Name      string          `json:"name,omitempty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

func (r *CreateSexShopItemRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be in YYYY-MM-DD format"})
	}
	if r.Quantity < 1 {
		errs = append(errs, validator.ValidationError{Field: "quantity", Message: "must be at least 1"})
	}
	if validator.IsEmpty(r.Code) {
		if validator.IsEmpty(r.Name) {
			errs = append(errs, validator.ValidationError{Field: "name", Message: "is required without a catalog code"})
		}
		if !r.UnitPrice.IsPositive() {
			errs = append(errs, validator.ValidationError{Field: "unit_price", Message: "must be greater than zero without a catalog code"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateSexShopPaymentRequest struct {
	RoomID int             `json:"-"`
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

func (r *CreateSexShopPaymentRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be in YYYY-MM-DD format"})
	}
	if !r.Amount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be greater than zero"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== SNACK DTOs ==========

type AdjustSnackRequest struct {
	RoomID    int                    `json:"-"`
	ProductID string                 `json:"product_id"`
	Delta     int                    `json:"delta"`
	Period    settlement.PeriodQuery `json:"period"`
}

func (r *AdjustSnackRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ProductID) {
		errs = append(errs, validator.ValidationError{Field: "product_id", Message: "is required"})
	}
	if r.Delta == 0 {
		errs = append(errs, validator.ValidationError{Field: "delta", Message: "must not be zero"})
	}

	if len(errs) > 0 {
		return errs
	}
	return r.Period.Validate()
}

// ========== BILLING DTOs ==========

type UpdateBillingRequest struct {
	RoomID          int              `json:"-"`
	PeriodStart     *string          `json:"period_start,omitempty"`
	PeriodEnd       *string          `json:"period_end,omitempty"`
	ModelCedula     *string          `json:"model_cedula,omitempty"`
	BankAccount     *string          `json:"bank_account,omitempty"`
	PaymentMethod   *string          `json:"payment_method,omitempty"`
	UsdExchangeRate *decimal.Decimal `json:"usd_exchange_rate,omitempty"`
	ModelPercentage *int             `json:"model_percentage,omitempty"`
	TokenValueUsd   *decimal.Decimal `json:"token_value_usd,omitempty"`
	AbsencesCount   *int             `json:"absences_count,omitempty"`
	BaseSalary      *decimal.Decimal `json:"base_salary,omitempty"`
}

func (r *UpdateBillingRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.PeriodStart != nil && *r.PeriodStart != "" {
		if _, ok := validator.IsValidDate(*r.PeriodStart); !ok {
			errs = append(errs, validator.ValidationError{Field: "period_start", Message: "must be in YYYY-MM-DD format"})
		}
	}
	if r.PeriodEnd != nil && *r.PeriodEnd != "" {
		if _, ok := validator.IsValidDate(*r.PeriodEnd); !ok {
			errs = append(errs, validator.ValidationError{Field: "period_end", Message: "must be in YYYY-MM-DD format"})
		}
	}
	if r.UsdExchangeRate != nil && r.UsdExchangeRate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "usd_exchange_rate", Message: "must be non-negative"})
	}
	if r.ModelPercentage != nil && !slices.Contains(ModelPercentages, *r.ModelPercentage) {
		errs = append(errs, validator.ValidationError{Field: "model_percentage", Message: "must be one of 60, 65, 70, 75, 80"})
	}
	if r.TokenValueUsd != nil && r.TokenValueUsd.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "token_value_usd", Message: "must be non-negative"})
	}
	if r.AbsencesCount != nil && *r.AbsencesCount < 0 {
		errs = append(errs, validator.ValidationError{Field: "absences_count", Message: "must be non-negative"})
	}
	if r.BaseSalary != nil && r.BaseSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "base_salary", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== SHIFT DTOs ==========

type UpdateShiftRequest struct {
	RoomID      int               `json:"-"`
	ShiftID     string            `json:"-"`
	ShiftType   *studio.ShiftType `json:"shift_type,omitempty"`
	MonitorName *string           `json:"monitor_name,omitempty"`
}

func (r *UpdateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ShiftType != nil && !r.ShiftType.IsValid() {
		errs = append(errs, validator.ValidationError{Field: "shift_type", Message: "is not a known shift"})
	}
	if r.MonitorName != nil && len(strings.TrimSpace(*r.MonitorName)) > 100 {
		errs = append(errs, validator.ValidationError{Field: "monitor_name", Message: "must not exceed 100 characters"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
