package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// Sync pulls the device log and reconciles it into the store in one transaction.
	Sync(ctx context.Context) (SyncResult, error)

	// ClearDevice wipes the device's attendance memory. Run Sync first.
	ClearDevice(ctx context.Context) error

	// ListAttendance retrieves stored records with filters
	ListAttendance(ctx context.Context, filter AttendanceFilter) ([]AttendanceResponse, error)

	// ListSyncRuns returns the most recent synchronizations, newest first
	ListSyncRuns(ctx context.Context, limit int) ([]SyncRunResponse, error)
}
