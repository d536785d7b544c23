package settlement

import (
	"testing"

	"github.com/lovelys-studio/backoffice/internal/domain/settlement"
	"github.com/lovelys-studio/backoffice/internal/domain/studio"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func snackCatalog() studio.Rules {
	return studio.Rules{
		SnackCatalog: []studio.Product{
			{ID: "s1", Name: "Vive 100", UnitPrice: decimal.NewFromInt(3300)},
			{ID: "s2", Name: "Agua", UnitPrice: decimal.NewFromInt(2000)},
		},
	}
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), append([]interface{}{"want %s, got %s", want, got.String()}, msgAndArgs...)...)
}

func TestAggregate_EmptyRecords(t *testing.T) {
	agg := Aggregate(settlement.PeriodRecords{}, []string{"Chaturbate"}, snackCatalog().SnackPrice)

	assert.Equal(t, int64(0), agg.TotalTokens)
	assert.Equal(t, 0.0, agg.TotalHours)
	assert.Equal(t, map[string]int64{"Chaturbate": 0}, agg.PerPlatformTokens)
	assertDecimal(t, "0", agg.SnackCost)
	assertDecimal(t, "0", agg.AdvancesTotal)
	assertDecimal(t, "0", agg.SexShopPurchaseTotal)
	assertDecimal(t, "0", agg.SexShopPaymentsTotal)
}

func TestAggregate_LogStatistics(t *testing.T) {
	records := settlement.PeriodRecords{
		Logs: []studio.DailyLog{
			{Date: "2024-01-05", Status: studio.StatusPresent, TotalHours: 8, PlatformTokens: []studio.PlatformToken{{Platform: "Chaturbate", Tokens: 1000}}},
			{Date: "2024-01-06", Status: studio.StatusLate, TotalHours: 6.5, PlatformTokens: []studio.PlatformToken{{Platform: "Stripchat", Tokens: 500}}},
			{Date: "2024-01-07", Status: studio.StatusAbsent, TotalHours: 0},
			{Date: "2024-01-08", Status: studio.StatusExcused},
			{Date: "2024-01-09", Status: studio.StatusDayOff},
		},
	}

	agg := Aggregate(records, []string{"Chaturbate", "Stripchat", "CamSoda"}, snackCatalog().SnackPrice)

	assert.Equal(t, int64(1500), agg.TotalTokens)
	assert.Equal(t, 14.5, agg.TotalHours)
	assert.Equal(t, 2, agg.AttendedCount)
	assert.Equal(t, 1, agg.AbsentCount)
	assert.Equal(t, map[string]int64{"Chaturbate": 1000, "Stripchat": 500, "CamSoda": 0}, agg.PerPlatformTokens)
}

func TestAggregate_OrphanedPlatformTokens(t *testing.T) {
	log := studio.DailyLog{
		Date:   "2024-01-10",
		Status: studio.StatusPresent,
		PlatformTokens: []studio.PlatformToken{
			{Platform: "Chaturbate", Tokens: 300},
			{Platform: "MyFreeCams", Tokens: 200},
		},
	}

	agg := Aggregate(settlement.PeriodRecords{Logs: []studio.DailyLog{log}}, []string{"Chaturbate"}, snackCatalog().SnackPrice)

	assert.Equal(t, log.TokenTotal(), agg.TotalTokens)
	assert.Equal(t, int64(500), agg.TotalTokens)
	assert.NotContains(t, agg.PerPlatformTokens, "MyFreeCams")
	assert.Equal(t, int64(300), agg.PerPlatformTokens["Chaturbate"])
}

func TestAggregate_MoneySums(t *testing.T) {
	records := settlement.PeriodRecords{
		SnackConsumptions: []studio.SnackConsumption{
			{ProductID: "s1", Quantity: 2},
			{ProductID: "s2", Quantity: 3},
			{ProductID: "deleted", Quantity: 10},
		},
		Advances: []studio.Advance{
			{Amount: decimal.NewFromInt(50000)},
			{Amount: decimal.NewFromInt(25000)},
		},
		SexShopItems: []studio.SexShopItem{
			{UnitPrice: decimal.NewFromInt(15000), Quantity: 2},
		},
		SexShopPayments: []studio.SexShopPayment{
			{Amount: decimal.NewFromInt(10000)},
		},
	}

	agg := Aggregate(records, nil, snackCatalog().SnackPrice)

	assertDecimal(t, "12600", agg.SnackCost)
	assertDecimal(t, "75000", agg.AdvancesTotal)
	assertDecimal(t, "30000", agg.SexShopPurchaseTotal)
	assertDecimal(t, "10000", agg.SexShopPaymentsTotal)
}
