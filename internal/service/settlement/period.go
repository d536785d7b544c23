package settlement

import (
	"time"

	"github.com/lovelys-studio/backoffice/internal/domain/settlement"
	"github.com/lovelys-studio/backoffice/internal/pkg/validator"
)

// Quincena boundaries. Q2 ends on q2EndDay of the following month.
const (
	q1StartDay = 5
	q1EndDay   = 19
	q2StartDay = 20
	q2EndDay   = 4
)

func isoDate(year int, month time.Month, day int) string {
	// time.Date normalises month 13 into January of the next year.
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Format(validator.DateLayout)
}

// Q1 returns days 5 to 19 of the given month.
func Q1(month time.Month, year int) settlement.Period {
	return settlement.Period{
		Type:  settlement.PeriodQ1,
		Start: isoDate(year, month, q1StartDay),
		End:   isoDate(year, month, q1EndDay),
	}
}

// Q2 returns day 20 of the given month through day 4 of the next one.
func Q2(month time.Month, year int) settlement.Period {
	return settlement.Period{
		Type:  settlement.PeriodQ2,
		Start: isoDate(year, month, q2StartDay),
		End:   isoDate(year, month+1, q2EndDay),
	}
}

// Custom validates an explicit range. Inverted ranges are rejected.
func Custom(start, end string) (settlement.Period, error) {
	var errs validator.ValidationErrors
	if _, ok := validator.IsValidDate(start); !ok {
		errs = append(errs, validator.ValidationError{Field: "start", Message: "must be in YYYY-MM-DD format"})
	}
	if _, ok := validator.IsValidDate(end); !ok {
		errs = append(errs, validator.ValidationError{Field: "end", Message: "must be in YYYY-MM-DD format"})
	}
	if len(errs) > 0 {
		return settlement.Period{}, errs
	}
	if start > end {
		return settlement.Period{}, settlement.ErrInvalidPeriodRange
	}
	return settlement.Period{Type: settlement.PeriodCustom, Start: start, End: end}, nil
}

// CurrentPeriod returns the quincena that contains now. Days 1 to 4 still belong
// to the previous month's Q2.
func CurrentPeriod(now time.Time) settlement.Period {
	day := now.Day()
	switch {
	case day >= q1StartDay && day <= q1EndDay:
		return Q1(now.Month(), now.Year())
	case day >= q2StartDay:
		return Q2(now.Month(), now.Year())
	default:
		prev := time.Date(now.Year(), now.Month()-1, 1, 0, 0, 0, 0, time.UTC)
		return Q2(prev.Month(), prev.Year())
	}
}

// ResolvePeriod turns a period selection into a concrete interval. An empty
// selection resolves to the current quincena.
func ResolvePeriod(query settlement.PeriodQuery, now time.Time) (settlement.Period, error) {
	if query.Type == "" {
		if query.Start != "" || query.End != "" {
			return settlement.Period{}, settlement.ErrInvalidPeriodType
		}
		return CurrentPeriod(now), nil
	}

	periodType, ok := settlement.ParsePeriodType(query.Type)
	if !ok {
		return settlement.Period{}, settlement.ErrInvalidPeriodType
	}

	if periodType == settlement.PeriodCustom {
		return Custom(query.Start, query.End)
	}

	if err := query.Validate(); err != nil {
		return settlement.Period{}, err
	}
	if periodType == settlement.PeriodQ1 {
		return Q1(time.Month(query.Month), query.Year), nil
	}
	return Q2(time.Month(query.Month), query.Year), nil
}
