package dashboard

import (
	"github.com/lovelys-studio/backoffice/internal/domain/settlement"
	"github.com/shopspring/decimal"
)

// ========== COMBINED DASHBOARD ==========

// DashboardResponse is the studio overview for one resolved period
type DashboardResponse struct {
	Period  settlement.Period `json:"period"`
	Rooms   []RoomLine        `json:"rooms"`
	Totals  StudioTotals      `json:"totals"`
	Ledger  LedgerSummary     `json:"ledger"`
	Updated string            `json:"updated_at"`
}

// ========== ROOM LINES ==========

// RoomLine is the condensed settlement of one room
type RoomLine struct {
	RoomID         int             `json:"room_id"`
	RoomName       string          `json:"room_name"`
	Mode           settlement.Mode `json:"mode"`
	TotalTokens    int64           `json:"total_tokens"`
	TotalHours     float64         `json:"total_hours"`
	AttendedCount  int             `json:"attended_count"`
	AbsentCount    int             `json:"absent_count"`
	Gross          decimal.Decimal `json:"gross"`
	Deductions     decimal.Decimal `json:"deductions"`
	AbsencePenalty decimal.Decimal `json:"absence_penalty"`
	NetPayout      decimal.Decimal `json:"net_payout"`
}

// ========== STUDIO TOTALS ==========

type StudioTotals struct {
	TotalTokens      int64            `json:"total_tokens"`
	PlatformTokens   map[string]int64 `json:"platform_tokens"`
	TotalHours       float64          `json:"total_hours"`
	Gross            decimal.Decimal  `json:"gross"`
	Deductions       decimal.Decimal  `json:"deductions"`
	AbsencePenalties decimal.Decimal  `json:"absence_penalties"`
	NetPayout        decimal.Decimal  `json:"net_payout"`
	StaffPayroll     decimal.Decimal  `json:"staff_payroll"` // net of staff rooms only
}

// ========== LEDGER ==========

// LedgerSummary covers income and expense records dated inside the period
type LedgerSummary struct {
	IncomeCop     decimal.Decimal `json:"income_cop"`
	IncomeUsdLost decimal.Decimal `json:"income_usd_lost"`
	ExpensesCop   decimal.Decimal `json:"expenses_cop"`
	Balance       decimal.Decimal `json:"balance"` // income + penalties - expenses
}
