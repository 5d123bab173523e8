package employee

import "time"

// Employee is identified by the numeric id enrolled on the fingerprint device.
type Employee struct {
	FingerID  int
	Name      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
