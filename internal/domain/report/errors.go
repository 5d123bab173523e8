package report

import "errors"

var (
	ErrInvalidDateRange = errors.New("to date must not be before from date")
	ErrInvalidScope     = errors.New("scope must be one of: first, second, both")
	ErrInvalidFormat    = errors.New("format must be one of: json, pdf, xlsx")
)
