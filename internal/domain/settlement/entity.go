package settlement

import (
	"strings"

	"github.com/lovelys-studio/backoffice/internal/domain/studio"
	"github.com/shopspring/decimal"
)

// PeriodType selects one of the two quincenas or an explicit range.
type PeriodType string

const (
	PeriodQ1     PeriodType = "q1"
	PeriodQ2     PeriodType = "q2"
	PeriodCustom PeriodType = "custom"
)

// ParsePeriodType accepts Q1/Q2/custom in any case.
func ParsePeriodType(s string) (PeriodType, bool) {
	t := PeriodType(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case PeriodQ1, PeriodQ2, PeriodCustom:
		return t, true
	}
	return "", false
}

// Period is an inclusive range of ISO calendar dates.
type Period struct {
	Type  PeriodType `json:"type"`
	Start string     `json:"start"`
	End   string     `json:"end"`
}

// Contains compares ISO dates as strings; they sort chronologically.
func (p Period) Contains(date string) bool {
	return p.Start <= date && date <= p.End
}

// Mode is the settlement formula applied to a room.
type Mode string

const (
	ModeModel Mode = "model"
	ModeStaff Mode = "staff"
)

func ModeFor(kind studio.RoomKind) Mode {
	if kind.IsStaff() {
		return ModeStaff
	}
	return ModeModel
}

// PeriodRecords are a room's records sliced to one period, most recent first.
type PeriodRecords struct {
	Logs              []studio.DailyLog         `json:"logs"`
	Advances          []studio.Advance          `json:"advances"`
	SexShopItems      []studio.SexShopItem      `json:"sex_shop_items"`
	SexShopPayments   []studio.SexShopPayment   `json:"sex_shop_payments"`
	SnackConsumptions []studio.SnackConsumption `json:"snack_consumptions"`
}

// Aggregate holds the plain sums over one room's records inside a period.
type Aggregate struct {
	TotalTokens          int64            `json:"total_tokens"`
	TotalHours           float64          `json:"total_hours"`
	AttendedCount        int              `json:"attended_count"`
	AbsentCount          int              `json:"absent_count"`
	PerPlatformTokens    map[string]int64 `json:"per_platform_tokens"`
	SnackCost            decimal.Decimal  `json:"snack_cost"`
	AdvancesTotal        decimal.Decimal  `json:"advances_total"`
	SexShopPurchaseTotal decimal.Decimal  `json:"sex_shop_purchase_total"`
	SexShopPaymentsTotal decimal.Decimal  `json:"sex_shop_payments_total"`
}

type PlatformLine struct {
	Platform   string          `json:"platform"`
	Tokens     int64           `json:"tokens"`
	ValueUsd   decimal.Decimal `json:"value_usd"`
	ValueLocal decimal.Decimal `json:"value_local"`
}

type Deductions struct {
	Snacks         decimal.Decimal `json:"snacks"`
	Advances       decimal.Decimal `json:"advances"`
	SexShop        decimal.Decimal `json:"sex_shop"`
	AbsencePenalty decimal.Decimal `json:"absence_penalty"`
	Total          decimal.Decimal `json:"total"`
}

// Settlement is the computed payout of one room over one period.
type Settlement struct {
	RoomID           int                `json:"room_id"`
	RoomName         string             `json:"room_name"`
	Kind             studio.RoomKind    `json:"kind"`
	Mode             Mode               `json:"mode"`
	Period           Period             `json:"period"`
	Billing          studio.RoomBilling `json:"billing"`
	ExchangeRate     decimal.Decimal    `json:"exchange_rate"`
	Aggregate        Aggregate          `json:"aggregate"`
	Platforms        []PlatformLine     `json:"platforms,omitempty"`
	Gross            decimal.Decimal    `json:"gross"`
	BaseSalary       decimal.Decimal    `json:"base_salary"`
	Deductions       Deductions         `json:"deductions"`
	PaymentsCredited decimal.Decimal    `json:"payments_credited"`
	NetPayout        decimal.Decimal    `json:"net_payout"`
	Records          PeriodRecords      `json:"records"`
}

// Receipt carries every field of the printed settlement.
type Receipt struct {
	StudioName       string          `json:"studio_name"`
	IssuedAt         string          `json:"issued_at"`
	RoomID           int             `json:"room_id"`
	RoomName         string          `json:"room_name"`
	Mode             Mode            `json:"mode"`
	ModelCedula      string          `json:"model_cedula,omitempty"`
	BankAccount      string          `json:"bank_account,omitempty"`
	PaymentMethod    string          `json:"payment_method,omitempty"`
	Period           Period          `json:"period"`
	ExchangeRate     decimal.Decimal `json:"exchange_rate"`
	ModelPercentage  int             `json:"model_percentage"`
	TokenValueUsd    decimal.Decimal `json:"token_value_usd"`
	Platforms        []PlatformLine  `json:"platforms,omitempty"`
	TotalTokens      int64           `json:"total_tokens"`
	Gross            decimal.Decimal `json:"gross"`
	BaseSalary       decimal.Decimal `json:"base_salary"`
	Deductions       Deductions      `json:"deductions"`
	AbsencesCount    int             `json:"absences_count"`
	PaymentsCredited decimal.Decimal `json:"payments_credited"`
	NetPayout        decimal.Decimal `json:"net_payout"`
}
