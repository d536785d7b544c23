package report

import "errors"

var (
	ErrGeneratorUnavailable = errors.New("report generator is not configured")
	ErrEmptyAnswer          = errors.New("report generator returned an empty answer")
)
