package settlement

import (
	"github.com/lovelys-studio/backoffice/internal/domain/settlement"
	"github.com/lovelys-studio/backoffice/internal/domain/studio"
	"github.com/shopspring/decimal"
)

const DefaultModelPercentage = 60

var (
	DefaultTokenValueUsd = decimal.RequireFromString("0.05")
	DefaultExchangeRate  = decimal.NewFromInt(4000)
	// AbsencePenaltyUsd is charged per billed absence, converted at the settlement rate.
	AbsencePenaltyUsd = decimal.NewFromInt(20)
)

// DefaultBilling is the configuration of a room whose billing was never edited.
// Its exchange rate stays zero so the room follows the studio rate.
func DefaultBilling(period settlement.Period) studio.RoomBilling {
	return studio.RoomBilling{
		PeriodStart:     period.Start,
		PeriodEnd:       period.End,
		ModelPercentage: DefaultModelPercentage,
		TokenValueUsd:   DefaultTokenValueUsd,
		AbsencesCount:   0,
		BaseSalary:      decimal.Zero,
	}
}

// ResolveBilling fills missing or zero billing fields with defaults and returns the
// exchange rate the settlement uses. A positive room rate is an explicit override;
// otherwise the current studio rate applies, then 4000.
func ResolveBilling(billing *studio.RoomBilling, period settlement.Period, studioRate decimal.Decimal) (studio.RoomBilling, decimal.Decimal) {
	var resolved studio.RoomBilling
	if billing == nil {
		resolved = DefaultBilling(period)
	} else {
		resolved = *billing
	}

	if resolved.ModelPercentage <= 0 {
		resolved.ModelPercentage = DefaultModelPercentage
	}
	if !resolved.TokenValueUsd.IsPositive() {
		resolved.TokenValueUsd = DefaultTokenValueUsd
	}
	if resolved.AbsencesCount < 0 {
		resolved.AbsencesCount = 0
	}

	rate := DefaultExchangeRate
	switch {
	case resolved.UsdExchangeRate.IsPositive():
		rate = resolved.UsdExchangeRate
	case studioRate.IsPositive():
		rate = studioRate
	}
	resolved.UsdExchangeRate = rate
	return resolved, rate
}

// Calculate applies the payout formula of the room's kind. It never fails; a
// negative net payout is returned as is.
func Calculate(room studio.Room, period settlement.Period, records settlement.PeriodRecords, agg settlement.Aggregate, billing studio.RoomBilling, rate decimal.Decimal) settlement.Settlement {
	result := settlement.Settlement{
		RoomID:           room.ID,
		RoomName:         room.Name,
		Kind:             room.Kind,
		Mode:             settlement.ModeFor(room.Kind),
		Period:           period,
		Billing:          billing,
		ExchangeRate:     rate,
		Aggregate:        agg,
		Gross:            decimal.Zero,
		BaseSalary:       decimal.Zero,
		PaymentsCredited: decimal.Zero,
		Records:          records,
	}

	deductions := settlement.Deductions{
		Snacks:         agg.SnackCost,
		Advances:       agg.AdvancesTotal,
		SexShop:        agg.SexShopPurchaseTotal,
		AbsencePenalty: decimal.Zero,
	}

	switch result.Mode {
	case settlement.ModeStaff:
		deductions.Total = deductions.Snacks.Add(deductions.Advances).Add(deductions.SexShop)
		result.BaseSalary = billing.BaseSalary
		result.NetPayout = billing.BaseSalary.Sub(deductions.Total)

	default:
		share := decimal.NewFromInt(int64(billing.ModelPercentage)).Shift(-2)
		result.Gross = decimal.NewFromInt(agg.TotalTokens).Mul(share).Mul(billing.TokenValueUsd).Mul(rate)
		result.Platforms = platformLines(room.Platforms, agg.PerPlatformTokens, billing.TokenValueUsd, rate)

		deductions.AbsencePenalty = decimal.NewFromInt(int64(billing.AbsencesCount)).Mul(AbsencePenaltyUsd).Mul(rate)
		deductions.Total = deductions.Snacks.Add(deductions.Advances).Add(deductions.SexShop).Add(deductions.AbsencePenalty)

		result.PaymentsCredited = agg.SexShopPaymentsTotal
		result.NetPayout = result.Gross.Sub(deductions.Total).Add(agg.SexShopPaymentsTotal)
	}

	result.Deductions = deductions
	return result
}

// platformLines lists the raw production value of each active platform in display order.
func platformLines(platforms []string, perPlatform map[string]int64, tokenValue, rate decimal.Decimal) []settlement.PlatformLine {
	lines := make([]settlement.PlatformLine, 0, len(platforms))
	for _, p := range platforms {
		tokens := perPlatform[p]
		usd := decimal.NewFromInt(tokens).Mul(tokenValue)
		lines = append(lines, settlement.PlatformLine{
			Platform:   p,
			Tokens:     tokens,
			ValueUsd:   usd,
			ValueLocal: usd.Mul(rate),
		})
	}
	return lines
}

// Settle runs filter, aggregation and calculation for one room.
func Settle(room studio.Room, rules studio.Rules, period settlement.Period) settlement.Settlement {
	records := Slice(room, period)
	agg := Aggregate(records, room.Platforms, rules.SnackPrice)
	billing, rate := ResolveBilling(room.Billing, period, rules.UsdExchangeRate)
	return Calculate(room, period, records, agg, billing, rate)
}
