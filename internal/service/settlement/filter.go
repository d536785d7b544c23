package settlement

import (
	"cmp"
	"slices"

	"github.com/lovelys-studio/backoffice/internal/domain/settlement"
	"github.com/lovelys-studio/backoffice/internal/domain/studio"
)

// Filter keeps the records dated inside the period. The input is never modified.
func Filter[T studio.Dated](records []T, period settlement.Period) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if period.Contains(r.RecordDate()) {
			out = append(out, r)
		}
	}
	return out
}

// SortRecent orders records most recent first, keeping insertion order on equal dates.
func SortRecent[T studio.Dated](records []T) {
	slices.SortStableFunc(records, func(a, b T) int {
		return cmp.Compare(b.RecordDate(), a.RecordDate())
	})
}

// Slice filters every record collection of the room to the period.
func Slice(room studio.Room, period settlement.Period) settlement.PeriodRecords {
	records := settlement.PeriodRecords{
		Logs:              Filter(room.Logs, period),
		Advances:          Filter(room.Advances, period),
		SexShopItems:      Filter(room.SexShopItems, period),
		SexShopPayments:   Filter(room.SexShopPayments, period),
		SnackConsumptions: Filter(room.SnackConsumptions, period),
	}
	SortRecent(records.Logs)
	SortRecent(records.Advances)
	SortRecent(records.SexShopItems)
	SortRecent(records.SexShopPayments)
	SortRecent(records.SnackConsumptions)
	return records
}
