package settlement

import (
	"github.com/lovelys-studio/backoffice/internal/domain/settlement"
	"github.com/lovelys-studio/backoffice/internal/domain/studio"
	"github.com/shopspring/decimal"
)

// Aggregate reduces period records to plain sums. Tokens under platforms that are
// not in platforms still count toward TotalTokens but get no per-platform entry.
func Aggregate(records settlement.PeriodRecords, platforms []string, snackPrice func(productID string) decimal.Decimal) settlement.Aggregate {
	agg := settlement.Aggregate{
		PerPlatformTokens:    make(map[string]int64, len(platforms)),
		SnackCost:            decimal.Zero,
		AdvancesTotal:        decimal.Zero,
		SexShopPurchaseTotal: decimal.Zero,
		SexShopPaymentsTotal: decimal.Zero,
	}
	for _, p := range platforms {
		agg.PerPlatformTokens[p] = 0
	}

	for _, log := range records.Logs {
		agg.TotalHours += log.TotalHours
		switch {
		case log.Status.Attended():
			agg.AttendedCount++
		case log.Status == studio.StatusAbsent:
			agg.AbsentCount++
		}
		for _, pt := range log.PlatformTokens {
			agg.TotalTokens += pt.Tokens
			if _, active := agg.PerPlatformTokens[pt.Platform]; active {
				agg.PerPlatformTokens[pt.Platform] += pt.Tokens
			}
		}
	}

	for _, c := range records.SnackConsumptions {
		agg.SnackCost = agg.SnackCost.Add(snackPrice(c.ProductID).Mul(decimal.NewFromInt(int64(c.Quantity))))
	}
	for _, a := range records.Advances {
		agg.AdvancesTotal = agg.AdvancesTotal.Add(a.Amount)
	}
	for _, item := range records.SexShopItems {
		agg.SexShopPurchaseTotal = agg.SexShopPurchaseTotal.Add(item.Subtotal())
	}
	for _, p := range records.SexShopPayments {
		agg.SexShopPaymentsTotal = agg.SexShopPaymentsTotal.Add(p.Amount)
	}

	return agg
}
