package room

import (
	"testing"

	"github.com/lovelys-studio/backoffice/internal/domain/auth"
	"github.com/lovelys-studio/backoffice/internal/domain/room"
	"github.com/lovelys-studio/backoffice/internal/domain/settlement"
	"github.com/lovelys-studio/backoffice/internal/domain/studio"
	settlementsvc "github.com/lovelys-studio/backoffice/internal/service/settlement"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	admin   = auth.Actor{UserID: "admin-1", Username: "andresb", Role: studio.RoleAdmin}
	manager = auth.Actor{UserID: "mgr-1", Username: "monica", Role: studio.RoleManager}
	model   = auth.Actor{UserID: "model-acc-1", Username: "tokiom1", Role: studio.RoleModel, RoomID: intPtr(1)}
)

func intPtr(i int) *int       { return &i }
func strPtr(s string) *string { return &s }

func testRoom() studio.Room {
	return studio.Room{
		ID:        1,
		Name:      "Tokio Mañana",
		Kind:      studio.RoomKindModel,
		Platforms: []string{"Chaturbate", "Stripchat"},
		Logs: []studio.DailyLog{
			{ID: "log-1", Date: "2024-01-10", Status: studio.StatusPresent, PlatformTokens: []studio.PlatformToken{{Platform: "Chaturbate", Tokens: 100}}},
		},
		Advances: []studio.Advance{{ID: "ad-1", Date: "2024-01-11", Concept: "Transporte", Amount: decimal.NewFromInt(20000)}},
	}
}

func testRules() studio.Rules {
	return studio.Rules{
		UsdExchangeRate: decimal.NewFromInt(4100),
		SnackCatalog: []studio.Product{
			{ID: "s1", Name: "Vive 100", UnitPrice: decimal.NewFromInt(3300)},
		},
		SexShopCatalog: []studio.Product{
			{ID: "p1", Code: "LUB-01", Name: "Lubricante", UnitPrice: decimal.NewFromInt(25000)},
		},
	}
}

func TestMutation_PrivilegeGates(t *testing.T) {
	tests := []struct {
		name     string
		mutation Mutation
		actor    auth.Actor
		want     room.Outcome
	}{
		{"manager adds log", AddLog("log-2", "2024-01-12"), manager, room.OutcomeApplied},
		{"model adds log", AddLog("log-2", "2024-01-12"), model, room.OutcomeDenied},
		{"manager adds advance", AddAdvance(studio.Advance{ID: "ad-2"}), manager, room.OutcomeDenied},
		{"admin adds advance", AddAdvance(studio.Advance{ID: "ad-2"}), admin, room.OutcomeApplied},
		{"manager renames room", Rename("Tokio AM"), manager, room.OutcomeDenied},
		{"manager edits advance concept", UpdateAdvance(room.UpdateAdvanceRequest{AdvanceID: "ad-1", Concept: strPtr("Taxi")}), manager, room.OutcomeApplied},
		{"model adds platform", AddPlatform("CamSoda"), model, room.OutcomeDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, outcome, err := tt.mutation.Run(testRoom(), testRules(), tt.actor)
			require.NoError(t, err)
			assert.Equal(t, tt.want, outcome)
		})
	}
}

func TestMutation_ManagerCannotChangeAdvanceAmount(t *testing.T) {
	amount := decimal.NewFromInt(1)
	original := testRoom()

	next, outcome, err := UpdateAdvance(room.UpdateAdvanceRequest{AdvanceID: "ad-1", Amount: &amount}).Run(original, testRules(), manager)

	require.NoError(t, err)
	assert.Equal(t, room.OutcomeDenied, outcome)
	assert.True(t, next.Advances[0].Amount.Equal(decimal.NewFromInt(20000)))
}

func TestMutation_DoesNotAlterInput(t *testing.T) {
	original := testRoom()

	next, _, err := AddLog("log-2", "2024-01-12").Run(original, testRules(), admin)
	require.NoError(t, err)

	assert.Len(t, original.Logs, 1)
	assert.Len(t, next.Logs, 2)

	next, _, err = DeleteAdvance("ad-1").Run(original, testRules(), admin)
	require.NoError(t, err)
	assert.Len(t, original.Advances, 1)
	assert.Empty(t, next.Advances)
}

func TestAddLog_DefaultsAndDateUniqueness(t *testing.T) {
	next, _, err := AddLog("log-2", "2024-01-12").Run(testRoom(), testRules(), manager)
	require.NoError(t, err)

	log := next.Logs[1]
	assert.Equal(t, studio.StatusPresent, log.Status)
	assert.Equal(t, "08:00", log.StartTime)
	assert.Equal(t, "16:00", log.EndTime)
	assert.Equal(t, 8.0, log.TotalHours)
	assert.Equal(t, []studio.PlatformToken{{Platform: "Chaturbate"}, {Platform: "Stripchat"}}, log.PlatformTokens)

	_, _, err = AddLog("log-3", "2024-01-10").Run(testRoom(), testRules(), manager)
	assert.ErrorIs(t, err, room.ErrLogDateTaken)
}

func TestUpdateLog(t *testing.T) {
	status := studio.StatusAbsent
	req := room.UpdateLogRequest{
		LogID:          "log-1",
		Status:         &status,
		Notes:          strPtr("enferma"),
		PlatformTokens: []studio.PlatformToken{{Platform: "Chaturbate", Tokens: 250}, {Platform: "Stripchat", Tokens: 40}},
	}

	next, _, err := UpdateLog(req).Run(testRoom(), testRules(), manager)
	require.NoError(t, err)

	log := next.Logs[0]
	assert.Equal(t, studio.StatusAbsent, log.Status)
	assert.Equal(t, "enferma", log.Notes)
	assert.Equal(t, int64(290), log.TokenTotal())

	_, _, err = UpdateLog(room.UpdateLogRequest{LogID: "missing"}).Run(testRoom(), testRules(), manager)
	assert.ErrorIs(t, err, room.ErrLogNotFound)
}

func TestPlatforms(t *testing.T) {
	r := testRoom()

	_, _, err := AddPlatform("Stripchat").Run(r, testRules(), manager)
	assert.ErrorIs(t, err, room.ErrPlatformExists)

	next, _, err := RenamePlatform(1, "CamSoda").Run(r, testRules(), manager)
	require.NoError(t, err)
	assert.Equal(t, []string{"Chaturbate", "CamSoda"}, next.Platforms)
	assert.Equal(t, []string{"Chaturbate", "Stripchat"}, r.Platforms)

	_, _, err = RenamePlatform(5, "X").Run(r, testRules(), manager)
	assert.ErrorIs(t, err, room.ErrPlatformIndexOutOfRange)

	next, _, err = RemovePlatform(0).Run(r, testRules(), manager)
	require.NoError(t, err)
	assert.Equal(t, []string{"Stripchat"}, next.Platforms)
	// historical tokens stay on the log
	assert.Equal(t, "Chaturbate", next.Logs[0].PlatformTokens[0].Platform)
}

func TestAddSexShopItem_CatalogLookup(t *testing.T) {
	item := studio.SexShopItem{ID: "ssi-1", Date: "2024-01-12", Code: " lub-01 ", Quantity: 2}

	next, _, err := AddSexShopItem(item).Run(testRoom(), testRules(), manager)
	require.NoError(t, err)

	require.Len(t, next.SexShopItems, 1)
	got := next.SexShopItems[0]
	assert.Equal(t, "LUB-01", got.Code)
	assert.Equal(t, "Lubricante", got.Name)
	assert.True(t, got.Subtotal().Equal(decimal.NewFromInt(50000)))
}

func TestAddSexShopItem_Errors(t *testing.T) {
	_, _, err := AddSexShopItem(studio.SexShopItem{Code: "NOPE", Quantity: 1}).Run(testRoom(), testRules(), manager)
	assert.ErrorIs(t, err, studio.ErrProductNotFound)

	_, _, err = AddSexShopItem(studio.SexShopItem{Name: "Manual", Quantity: 1}).Run(testRoom(), testRules(), manager)
	assert.ErrorIs(t, err, room.ErrIncompleteProduct)
}

func TestAdjustSnack(t *testing.T) {
	r := testRoom()
	rules := testRules()

	r, _, err := AdjustSnack("s1", 2, "2024-01-05", "cons-1").Run(r, rules, manager)
	require.NoError(t, err)
	require.Len(t, r.SnackConsumptions, 1)
	assert.Equal(t, 2, r.SnackConsumptions[0].Quantity)

	r, _, err = AdjustSnack("s1", 1, "2024-01-05", "cons-2").Run(r, rules, manager)
	require.NoError(t, err)
	require.Len(t, r.SnackConsumptions, 1)
	assert.Equal(t, 3, r.SnackConsumptions[0].Quantity)

	r, _, err = AdjustSnack("s1", -10, "2024-01-05", "cons-3").Run(r, rules, manager)
	require.NoError(t, err)
	assert.Empty(t, r.SnackConsumptions)

	r, _, err = AdjustSnack("s1", -1, "2024-01-05", "cons-4").Run(r, rules, manager)
	require.NoError(t, err)
	assert.Empty(t, r.SnackConsumptions)

	_, _, err = AdjustSnack("s99", 1, "2024-01-05", "cons-5").Run(r, rules, manager)
	assert.ErrorIs(t, err, studio.ErrProductNotFound)
}

func TestUpdateBilling_StartsFromDefaults(t *testing.T) {
	pct := 70
	period := settlement.Period{Type: settlement.PeriodQ1, Start: "2024-01-05", End: "2024-01-19"}

	next, _, err := UpdateBilling(room.UpdateBillingRequest{ModelPercentage: &pct, ModelCedula: strPtr(" 1020 ")}, period).Run(testRoom(), testRules(), admin)
	require.NoError(t, err)

	require.NotNil(t, next.Billing)
	assert.Equal(t, 70, next.Billing.ModelPercentage)
	assert.Equal(t, "1020", next.Billing.ModelCedula)
	assert.Equal(t, "2024-01-05", next.Billing.PeriodStart)
	assert.True(t, next.Billing.UsdExchangeRate.IsZero(), "lazily created billing follows the studio rate")
}

func TestUpdateBilling_LaterStudioRateChangeApplies(t *testing.T) {
	absences := 1
	period := settlementsvc.Q1(1, 2024)
	rules := testRules()
	rules.UsdExchangeRate = decimal.NewFromInt(4000)

	next, _, err := UpdateBilling(room.UpdateBillingRequest{AbsencesCount: &absences}, period).Run(testRoom(), rules, admin)
	require.NoError(t, err)

	rules.UsdExchangeRate = decimal.NewFromInt(4200)
	result := settlementsvc.Settle(next, rules, period)

	assert.True(t, result.ExchangeRate.Equal(decimal.NewFromInt(4200)), "rate %s", result.ExchangeRate)
	assert.True(t, result.Deductions.AbsencePenalty.Equal(decimal.NewFromInt(84000)), "penalty %s", result.Deductions.AbsencePenalty)
	// 100 tokens x 60% x $0.05
	assert.True(t, result.Gross.Equal(decimal.NewFromInt(12600)), "gross %s", result.Gross)
}

func TestUpdateBilling_ExplicitRateOverridesStudio(t *testing.T) {
	rate := decimal.NewFromInt(3900)
	period := settlementsvc.Q1(1, 2024)

	next, _, err := UpdateBilling(room.UpdateBillingRequest{UsdExchangeRate: &rate}, period).Run(testRoom(), testRules(), admin)
	require.NoError(t, err)
	assert.True(t, settlementsvc.Settle(next, testRules(), period).ExchangeRate.Equal(rate))

	zero := decimal.Zero
	next, _, err = UpdateBilling(room.UpdateBillingRequest{UsdExchangeRate: &zero}, period).Run(next, testRules(), admin)
	require.NoError(t, err)
	assert.True(t, settlementsvc.Settle(next, testRules(), period).ExchangeRate.Equal(decimal.NewFromInt(4100)))
}

func TestUpdateShift(t *testing.T) {
	staff := studio.Room{
		ID:   101,
		Kind: studio.RoomKindMonitor,
		MonitorShifts: []studio.MonitorShift{
			{ID: "shift-101-Lunes", Day: "Lunes", ShiftType: studio.ShiftMorning},
		},
	}
	night := studio.ShiftNight

	next, _, err := UpdateShift(room.UpdateShiftRequest{ShiftID: "shift-101-Lunes", ShiftType: &night, MonitorName: strPtr("Laura")}).Run(staff, testRules(), admin)
	require.NoError(t, err)
	assert.Equal(t, studio.ShiftNight, next.MonitorShifts[0].ShiftType)
	assert.Equal(t, "Laura", next.MonitorShifts[0].MonitorName)
	assert.Equal(t, studio.ShiftMorning, staff.MonitorShifts[0].ShiftType)

	_, _, err = UpdateShift(room.UpdateShiftRequest{ShiftID: "x"}).Run(staff, testRules(), admin)
	assert.ErrorIs(t, err, room.ErrShiftNotFound)

	_, _, err = UpdateShift(room.UpdateShiftRequest{ShiftID: "x"}).Run(testRoom(), testRules(), admin)
	assert.ErrorIs(t, err, room.ErrNotStaffRoom)
}
