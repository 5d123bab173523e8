package settings

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"maps"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/watan-hr/fingerprint-attendance/internal/domain/settings"
	"github.com/watan-hr/fingerprint-attendance/internal/pkg/validator"
	"golang.org/x/crypto/bcrypt"
)

type memoryRepo struct {
	values map[string]string
	err    error
}

func (m *memoryRepo) GetAll(ctx context.Context) (map[string]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	return maps.Clone(m.values), nil
}

func (m *memoryRepo) SaveAll(ctx context.Context, values map[string]string) error {
	if m.values == nil {
		m.values = map[string]string{}
	}
	maps.Copy(m.values, values)
	return nil
}

type passthroughTx struct{}

func (passthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newService(repo *memoryRepo) settings.SettingsService {
	return NewSettingsService(repo, passthroughTx{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func validRequest() settings.UpdateSettingsRequest {
	return settings.UpdateSettingsRequest{
		IP:        "10.0.0.5",
		Port:      4370,
		InLimit1:  "07:30",
		OutLimit1: "13:45",
		InLimit2:  "19:00",
		OutLimit2: "02:15",
		Weekend:   []string{"Friday", "Saturday"},
		Username:  "admin",
	}
}

func TestLoad_DefaultsWhenEmpty(t *testing.T) {
	svc := newService(&memoryRepo{})

	snap, err := svc.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, settings.DefaultDeviceIP, snap.Device.Address)
	assert.Equal(t, "08:00", snap.First.Start.String())
	assert.Equal(t, "01:00", snap.Second.End.String())
	assert.Equal(t, [2]time.Weekday{time.Friday, time.Saturday}, snap.Weekend)
	assert.Equal(t, settings.DefaultUsername, snap.Username)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(snap.PasswordHash), []byte(settings.DefaultPassword)))
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	svc := newService(&memoryRepo{values: map[string]string{
		settings.KeyDeviceIP:   "not a host!",
		settings.KeyDevicePort: "99999",
		settings.KeyCommKey:    "-5",
		settings.KeyInLimit1:   "8am",
		settings.KeyOutLimit1:  "15:00",
		settings.KeyWeekend1:   "Sunday",
		settings.KeyWeekend2:   "Someday",
	}})

	snap, err := svc.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, settings.DefaultDeviceIP, snap.Device.Address)
	assert.Equal(t, settings.DefaultDevicePort, snap.Device.Port)
	assert.Zero(t, snap.Device.CommKey)
	assert.Equal(t, "08:00", snap.First.Start.String())
	assert.Equal(t, "15:00", snap.First.End.String())
	assert.Equal(t, [2]time.Weekday{time.Sunday, time.Saturday}, snap.Weekend)
}

func TestLoad_RepositoryError(t *testing.T) {
	boom := errors.New("boom")
	svc := newService(&memoryRepo{err: boom})

	_, err := svc.Load(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestUpdate_RoundTrip(t *testing.T) {
	repo := &memoryRepo{}
	svc := newService(repo)
	ctx := context.Background()

	req := validRequest()
	req.CommKey = 4321
	_, err := svc.Update(ctx, req)
	require.NoError(t, err)

	// a fresh service reads only what was persisted
	snap, err := newService(repo).Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, "10.0.0.5", snap.Device.Address)
	assert.Equal(t, "07:30", repo.values[settings.KeyInLimit1])
	assert.Equal(t, "07:30", snap.First.Start.String())
	assert.Equal(t, "13:45", snap.First.End.String())
	assert.Equal(t, "19:00", snap.Second.Start.String())
	assert.Equal(t, "02:15", snap.Second.End.String())
	assert.Equal(t, "admin", snap.Username)
	assert.Equal(t, settings.DefaultTimeout, snap.Device.Timeout)
	assert.Equal(t, "4321", repo.values[settings.KeyCommKey])
	assert.Equal(t, 4321, snap.Device.CommKey)
	assert.Equal(t, 4321, snap.Device.Target().CommKey)
}

func TestUpdate_Password(t *testing.T) {
	repo := &memoryRepo{}
	svc := newService(repo)
	ctx := context.Background()

	req := validRequest()
	pw := "s3cret"
	req.Password = &pw
	_, err := svc.Update(ctx, req)
	require.NoError(t, err)

	hash := repo.values[settings.KeyPasswordHash]
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret")))

	// a later update without password keeps the hash
	_, err = svc.Update(ctx, validRequest())
	require.NoError(t, err)
	assert.Equal(t, hash, repo.values[settings.KeyPasswordHash])
}

func TestUpdate_RejectsOverlap(t *testing.T) {
	repo := &memoryRepo{}
	svc := newService(repo)

	req := validRequest()
	req.InLimit2 = "13:00"
	req.OutLimit2 = "18:00"
	_, err := svc.Update(context.Background(), req)

	assert.ErrorIs(t, err, settings.ErrOverlappingPeriods)
	assert.Empty(t, repo.values)
}

func TestUpdate_RejectsOvernightOverlap(t *testing.T) {
	req := validRequest()
	req.InLimit1 = "00:30"
	req.OutLimit1 = "06:00"

	_, err := newService(&memoryRepo{}).Update(context.Background(), req)

	assert.ErrorIs(t, err, settings.ErrOverlappingPeriods)
}

func TestUpdate_ValidationErrors(t *testing.T) {
	req := validRequest()
	req.InLimit1 = "7:30"
	req.Weekend = []string{"Friday", "friday"}
	req.CommKey = settings.MaxCommKey + 1

	_, err := newService(&memoryRepo{}).Update(context.Background(), req)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, settings.KeyInLimit1)
	assert.Contains(t, fields, "weekend")
	assert.Contains(t, fields, settings.KeyCommKey)
}

func TestGet_HidesPasswordHash(t *testing.T) {
	resp, err := newService(&memoryRepo{}).Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Friday", "Saturday"}, resp.Weekend)
	assert.Equal(t, 4370, resp.Port)
	assert.Equal(t, 10, resp.TimeoutSeconds)
}
