// Package device describes the fingerprint terminal as seen by the attendance
// service. The wire protocol lives in internal/pkg/zkteco.
package device

import (
	"context"
	"errors"
	"time"
)

// ErrDeviceUnavailable wraps every connector failure: connect, handshake,
// timeout or fetch.
var ErrDeviceUnavailable = errors.New("fingerprint device unavailable")

// Record is one raw punch as stored in the terminal's memory.
type Record struct {
	UserID    string
	Timestamp time.Time
	Status    int
	Punch     int
}

// Target addresses one terminal. CommKey is the numeric communication key
// configured on the device, 0 when none is set.
type Target struct {
	Address string
	Port    int
	Timeout time.Duration
	CommKey int
}

type Connector interface {
	Connect(ctx context.Context, target Target) (Session, error)
}

// Session is an open connection to the terminal.
type Session interface {
	// DisableDevice stops the terminal from accepting punches while its log is read.
	DisableDevice(ctx context.Context) error
	EnableDevice(ctx context.Context) error
	// Punches returns the attendance log in device order.
	Punches(ctx context.Context) ([]Record, error)
	ClearAttendance(ctx context.Context) error
	Disconnect() error
}
