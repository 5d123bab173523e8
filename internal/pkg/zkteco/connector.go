package zkteco

import (
	"context"
	"fmt"
	"slices"

	"github.com/watan-hr/fingerprint-attendance/internal/domain/device"
)

// Connector opens terminal sessions for the attendance service.
type Connector struct {
	Options []Option
}

func NewConnector(opts ...Option) *Connector {
	return &Connector{Options: opts}
}

func (c *Connector) Connect(ctx context.Context, target device.Target) (device.Session, error) {
	opts := append(slices.Clone(c.Options), WithPassword(target.CommKey))
	client, err := Dial(ctx, target.Address, target.Port, target.Timeout, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", device.ErrDeviceUnavailable, err)
	}
	return &session{client: client}, nil
}

type session struct {
	client *Client
}

func (s *session) DisableDevice(ctx context.Context) error {
	return unavailable(s.client.DisableDevice(ctx))
}

func (s *session) EnableDevice(ctx context.Context) error {
	return unavailable(s.client.EnableDevice(ctx))
}

func (s *session) Punches(ctx context.Context) ([]device.Record, error) {
	logs, err := s.client.Attendance(ctx)
	if err != nil {
		return nil, unavailable(err)
	}
	records := make([]device.Record, 0, len(logs))
	for _, l := range logs {
		records = append(records, device.Record{
			UserID:    l.UserID,
			Timestamp: l.Timestamp,
			Status:    l.Status,
			Punch:     l.Punch,
		})
	}
	return records, nil
}

func (s *session) ClearAttendance(ctx context.Context) error {
	return unavailable(s.client.ClearAttendance(ctx))
}

func (s *session) Disconnect() error {
	return unavailable(s.client.Close())
}

func unavailable(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", device.ErrDeviceUnavailable, err)
}
