package attendance

import "errors"

// Attendance domain errors
var (
	ErrSyncInProgress   = errors.New("a device synchronization is already running")
	ErrInvalidDateRange = errors.New("end date must not be before start date")
)
