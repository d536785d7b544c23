package settlement

import (
	"github.com/lovelys-studio/backoffice/internal/pkg/validator"
)

// PeriodQuery is the caller's period selection. An empty Type selects the current quincena.
type PeriodQuery struct {
	Type  string `json:"type,omitempty"`
	Month int    `json:"month,omitempty"`
	Year  int    `json:"year,omitempty"`
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

func (q *PeriodQuery) IsZero() bool {
	return q.Type == "" && q.Month == 0 && q.Year == 0 && q.Start == "" && q.End == ""
}

func (q *PeriodQuery) Validate() error {
	var errs validator.ValidationErrors

	if q.Type == "" {
		if q.Start != "" || q.End != "" {
			errs = append(errs, validator.ValidationError{Field: "type", Message: "is required when start or end is given"})
		}
		if len(errs) > 0 {
			return errs
		}
		return nil
	}

	t, ok := ParsePeriodType(q.Type)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "must be 'q1', 'q2' or 'custom'"})
		return errs
	}

	switch t {
	case PeriodQ1, PeriodQ2:
		if q.Month < 1 || q.Month > 12 {
			errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
		}
		if q.Year < 1 {
			errs = append(errs, validator.ValidationError{Field: "year", Message: "must be a positive year"})
		}
	case PeriodCustom:
		if _, ok := validator.IsValidDate(q.Start); !ok {
			errs = append(errs, validator.ValidationError{Field: "start", Message: "must be in YYYY-MM-DD format"})
		}
		if _, ok := validator.IsValidDate(q.End); !ok {
			errs = append(errs, validator.ValidationError{Field: "end", Message: "must be in YYYY-MM-DD format"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ReceiptExportResponse struct {
	FileName string `json:"file_name"`
	URL      string `json:"url"`
}
