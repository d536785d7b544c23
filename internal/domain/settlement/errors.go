package settlement

import "errors"

var (
	ErrInvalidPeriodRange = errors.New("period start must not be after period end")
	ErrInvalidPeriodType  = errors.New("period type must be q1, q2 or custom")
)
