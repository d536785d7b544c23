package settlement

import (
	"testing"

	"github.com/lovelys-studio/backoffice/internal/domain/settlement"
	"github.com/lovelys-studio/backoffice/internal/domain/studio"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter_CustomRange(t *testing.T) {
	logs := []studio.DailyLog{
		{ID: "log-in", Date: "2024-01-15"},
		{ID: "log-out", Date: "2024-02-01"},
	}
	period := settlement.Period{Type: settlement.PeriodCustom, Start: "2024-01-01", End: "2024-01-31"}

	got := Filter(logs, period)

	require.Len(t, got, 1)
	assert.Equal(t, "log-in", got[0].ID)
}

func TestFilter_BoundsAreInclusive(t *testing.T) {
	advances := []studio.Advance{
		{ID: "a1", Date: "2024-03-04"},
		{ID: "a2", Date: "2024-03-05"},
		{ID: "a3", Date: "2024-03-19"},
		{ID: "a4", Date: "2024-03-20"},
	}

	got := Filter(advances, settlement.Period{Start: "2024-03-05", End: "2024-03-19"})

	require.Len(t, got, 2)
	assert.Equal(t, "a2", got[0].ID)
	assert.Equal(t, "a3", got[1].ID)
}

func TestFilter_IdempotentSubset(t *testing.T) {
	items := []studio.SexShopItem{
		{ID: "i1", Date: "2023-12-31", UnitPrice: decimal.NewFromInt(1000), Quantity: 1},
		{ID: "i2", Date: "2024-01-04", UnitPrice: decimal.NewFromInt(1000), Quantity: 2},
		{ID: "i3", Date: "2024-01-10", UnitPrice: decimal.NewFromInt(1000), Quantity: 3},
		{ID: "i4", Date: "2024-01-04", UnitPrice: decimal.NewFromInt(1000), Quantity: 4},
	}
	period := Q2(12, 2023)

	once := Filter(items, period)
	twice := Filter(once, period)

	assert.Equal(t, once, twice)
	for _, it := range once {
		assert.Contains(t, items, it)
	}
	assert.Len(t, once, 3)
	// input untouched
	assert.Equal(t, "i1", items[0].ID)
}

func TestFilter_EmptyCollection(t *testing.T) {
	got := Filter([]studio.SnackConsumption(nil), settlement.Period{Start: "2024-01-01", End: "2024-01-31"})
	assert.Empty(t, got)
}

func TestSortRecent(t *testing.T) {
	logs := []studio.DailyLog{
		{ID: "a", Date: "2024-01-05"},
		{ID: "b", Date: "2024-01-07"},
		{ID: "c", Date: "2024-01-05"},
		{ID: "d", Date: "2024-01-06"},
	}

	SortRecent(logs)

	ids := make([]string, 0, len(logs))
	for _, l := range logs {
		ids = append(ids, l.ID)
	}
	assert.Equal(t, []string{"b", "d", "a", "c"}, ids)
}

func TestSlice_AllCollections(t *testing.T) {
	room := studio.Room{
		ID:                1,
		Logs:              []studio.DailyLog{{ID: "l1", Date: "2024-05-06"}, {ID: "l2", Date: "2024-05-21"}},
		Advances:          []studio.Advance{{ID: "a1", Date: "2024-05-10"}},
		SexShopItems:      []studio.SexShopItem{{ID: "s1", Date: "2024-04-30"}},
		SexShopPayments:   []studio.SexShopPayment{{ID: "p1", Date: "2024-05-19"}},
		SnackConsumptions: []studio.SnackConsumption{{ID: "c1", Date: "2024-05-05"}},
	}

	records := Slice(room, Q1(5, 2024))

	assert.Len(t, records.Logs, 1)
	assert.Len(t, records.Advances, 1)
	assert.Empty(t, records.SexShopItems)
	assert.Len(t, records.SexShopPayments, 1)
	assert.Len(t, records.SnackConsumptions, 1)
}
