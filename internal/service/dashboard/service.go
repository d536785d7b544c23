package dashboard

import (
	"context"
	"time"

	"github.com/lovelys-studio/backoffice/internal/domain/auth"
	"github.com/lovelys-studio/backoffice/internal/domain/dashboard"
	"github.com/lovelys-studio/backoffice/internal/domain/settlement"
	"github.com/lovelys-studio/backoffice/internal/domain/studio"
	settlementsvc "github.com/lovelys-studio/backoffice/internal/service/settlement"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// maxParallelSettlements bounds the goroutines settling rooms at once.
const maxParallelSettlements = 8

type DashboardServiceImpl struct {
	store studio.StateStore
	now   func() time.Time
}

func NewDashboardService(store studio.StateStore) dashboard.DashboardService {
	return &DashboardServiceImpl{
		store: store,
		now:   time.Now,
	}
}

// GetDashboard settles every room of one snapshot in parallel and folds the results.
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context, query settlement.PeriodQuery) (*dashboard.DashboardResponse, error) {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() {
		return nil, auth.ErrForbidden
	}

	now := s.now()
	period, err := settlementsvc.ResolvePeriod(query, now)
	if err != nil {
		return nil, err
	}

	st := s.store.Snapshot()
	results := make([]settlement.Settlement, len(st.Rooms))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelSettlements)
	for i, room := range st.Rooms {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			results[i] = settlementsvc.Settle(room, st.Rules, period)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	resp := &dashboard.DashboardResponse{
		Period:  period,
		Rooms:   make([]dashboard.RoomLine, 0, len(results)),
		Totals:  Totals(results),
		Updated: now.Format(time.RFC3339),
	}
	for _, r := range results {
		resp.Rooms = append(resp.Rooms, roomLine(r))
	}
	resp.Ledger = Ledger(st.Rules, period, resp.Totals.AbsencePenalties)

	return resp, nil
}

func roomLine(s settlement.Settlement) dashboard.RoomLine {
	return dashboard.RoomLine{
		RoomID:         s.RoomID,
		RoomName:       s.RoomName,
		Mode:           s.Mode,
		TotalTokens:    s.Aggregate.TotalTokens,
		TotalHours:     s.Aggregate.TotalHours,
		AttendedCount:  s.Aggregate.AttendedCount,
		AbsentCount:    s.Aggregate.AbsentCount,
		Gross:          s.Gross,
		Deductions:     s.Deductions.Total,
		AbsencePenalty: s.Deductions.AbsencePenalty,
		NetPayout:      s.NetPayout,
	}
}

// Totals sums the room settlements. Staff nets are also reported apart as payroll.
func Totals(results []settlement.Settlement) dashboard.StudioTotals {
	totals := dashboard.StudioTotals{
		PlatformTokens:   make(map[string]int64),
		Gross:            decimal.Zero,
		Deductions:       decimal.Zero,
		AbsencePenalties: decimal.Zero,
		NetPayout:        decimal.Zero,
		StaffPayroll:     decimal.Zero,
	}
	for _, s := range results {
		totals.TotalTokens += s.Aggregate.TotalTokens
		totals.TotalHours += s.Aggregate.TotalHours
		for platform, tokens := range s.Aggregate.PerPlatformTokens {
			totals.PlatformTokens[platform] += tokens
		}
		totals.Gross = totals.Gross.Add(s.Gross)
		totals.Deductions = totals.Deductions.Add(s.Deductions.Total)
		totals.AbsencePenalties = totals.AbsencePenalties.Add(s.Deductions.AbsencePenalty)
		totals.NetPayout = totals.NetPayout.Add(s.NetPayout)
		if s.Mode == settlement.ModeStaff {
			totals.StaffPayroll = totals.StaffPayroll.Add(s.NetPayout)
		}
	}
	return totals
}

// Ledger sums the income and expense records dated inside the period.
func Ledger(rules studio.Rules, period settlement.Period, penalties decimal.Decimal) dashboard.LedgerSummary {
	summary := dashboard.LedgerSummary{
		IncomeCop:     decimal.Zero,
		IncomeUsdLost: decimal.Zero,
		ExpensesCop:   decimal.Zero,
	}
	for _, inc := range settlementsvc.Filter(rules.IncomeRecords, period) {
		summary.IncomeCop = summary.IncomeCop.Add(inc.TotalCop)
		summary.IncomeUsdLost = summary.IncomeUsdLost.Add(inc.AmountUsdPaid.Sub(inc.AmountUsdReceived))
	}
	for _, exp := range settlementsvc.Filter(rules.Expenses, period) {
		summary.ExpensesCop = summary.ExpensesCop.Add(exp.Amount)
	}
	summary.Balance = summary.IncomeCop.Add(penalties).Sub(summary.ExpensesCop)
	return summary
}
