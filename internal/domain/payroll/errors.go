package payroll

import "errors"

var (
	ErrInvalidPeriod = errors.New("invalid payroll period")
	ErrNegativeMoney = errors.New("salary amounts must not be negative")
)
