package settings

import (
	"time"

	"github.com/watan-hr/fingerprint-attendance/internal/domain/device"
	"github.com/watan-hr/fingerprint-attendance/internal/pkg/clock"
)

// Keys of the persisted settings record.
const (
	KeyDeviceIP     = "ip"
	KeyDevicePort   = "port"
	KeyTimeout      = "timeout"
	KeyCommKey      = "comm_key"
	KeyInLimit1     = "in_limit_1"
	KeyOutLimit1    = "out_limit_1"
	KeyInLimit2     = "in_limit_2"
	KeyOutLimit2    = "out_limit_2"
	KeyWeekend1     = "weekend_1"
	KeyWeekend2     = "weekend_2"
	KeyUsername     = "username"
	KeyPasswordHash = "password_hash"
)

// Factory defaults, used for every key missing from the store.
const (
	DefaultDeviceIP    = "192.168.1.205"
	DefaultDevicePort  = 4370
	DefaultTimeout     = 10 * time.Second
	MaxCommKey         = 999999
	DefaultUsername    = "123"
	DefaultPassword    = "123"
	DefaultFirstStart  = "08:00"
	DefaultFirstEnd    = "14:00"
	DefaultSecondStart = "20:00"
	DefaultSecondEnd   = "01:00"
)

// Settings is an immutable snapshot of the configuration. Callers load it once
// per operation and pass it down by value.
type Settings struct {
	Device   Device
	First    clock.Range
	Second   clock.Range
	Weekend  [2]time.Weekday
	Username string

	// PasswordHash is a bcrypt hash; it never leaves the service layer.
	PasswordHash string
}

// Device describes how to reach the fingerprint terminal.
type Device struct {
	Address string
	Port    int
	Timeout time.Duration
	CommKey int
}

func (d Device) Target() device.Target {
	return device.Target{
		Address: d.Address,
		Port:    d.Port,
		Timeout: d.Timeout,
		CommKey: d.CommKey,
	}
}

// Defaults returns the factory configuration without credentials.
func Defaults() Settings {
	return Settings{
		Device: Device{
			Address: DefaultDeviceIP,
			Port:    DefaultDevicePort,
			Timeout: DefaultTimeout,
		},
		First: clock.Range{
			Start: clock.MustParse(DefaultFirstStart),
			End:   clock.MustParse(DefaultFirstEnd),
		},
		Second: clock.Range{
			Start: clock.MustParse(DefaultSecondStart),
			End:   clock.MustParse(DefaultSecondEnd),
		},
		Weekend:  [2]time.Weekday{time.Friday, time.Saturday},
		Username: DefaultUsername,
	}
}

// IsWeekend reports whether d falls on one of the two fixed weekend days.
func (s Settings) IsWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == s.Weekend[0] || wd == s.Weekend[1]
}
