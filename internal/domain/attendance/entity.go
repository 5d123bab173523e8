package attendance

import (
	"time"

	"github.com/google/uuid"
	"github.com/watan-hr/fingerprint-attendance/internal/pkg/clock"
)

// Slot names which configured period a punch belongs to.
type Slot int

const (
	SlotNone Slot = iota
	SlotFirst
	SlotSecond
)

func (s Slot) String() string {
	switch s {
	case SlotFirst:
		return "first"
	case SlotSecond:
		return "second"
	default:
		return "none"
	}
}

// Punch is a device record reduced to what reconciliation needs.
type Punch struct {
	EmployeeID int
	Timestamp  time.Time
}

// Date is the calendar day the punch is filed under.
func (p Punch) Date() time.Time {
	return clock.DateOf(p.Timestamp)
}

// Time is the punch's time of day at minute precision.
func (p Punch) Time() clock.Time {
	return clock.FromTime(p.Timestamp)
}

// Attendance is the one record per employee per day.
type Attendance struct {
	ID         int64
	EmployeeID int
	Date       time.Time
	CheckIn    clock.NullTime
	CheckOut   clock.NullTime
	CheckIn2   clock.NullTime
	CheckOut2  clock.NullTime
	UpdatedAt  time.Time

	// DTO
	EmployeeName *string
}

// In returns a pointer to the entry slot of the given period.
func (a *Attendance) In(s Slot) *clock.NullTime {
	switch s {
	case SlotFirst:
		return &a.CheckIn
	case SlotSecond:
		return &a.CheckIn2
	}
	return nil
}

// Out returns a pointer to the exit slot of the given period.
func (a *Attendance) Out(s Slot) *clock.NullTime {
	switch s {
	case SlotFirst:
		return &a.CheckOut
	case SlotSecond:
		return &a.CheckOut2
	}
	return nil
}

// Key identifies a record by its unique pair.
type Key struct {
	EmployeeID int
	Date       time.Time
}

func (a Attendance) Key() Key {
	return Key{EmployeeID: a.EmployeeID, Date: a.Date}
}

// SyncRun is the audit trail of one device synchronization.
type SyncRun struct {
	ID           uuid.UUID
	StartedAt    time.Time
	FinishedAt   *time.Time
	Device       string
	Fetched      int
	Applied      int
	Duplicates   int
	Dropped      int
	Unregistered int
	Invalid      int
	Status       string
	Error        *string
}

const (
	SyncStatusRunning = "running"
	SyncStatusSuccess = "success"
	SyncStatusFailed  = "failed"
)
