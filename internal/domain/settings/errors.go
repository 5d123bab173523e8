package settings

import "errors"

var (
	ErrOverlappingPeriods = errors.New("the two attendance periods must not overlap")
	ErrPasswordHash       = errors.New("failed to hash password")
)
