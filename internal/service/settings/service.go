package settings

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/watan-hr/fingerprint-attendance/internal/domain/settings"
	"github.com/watan-hr/fingerprint-attendance/internal/pkg/clock"
	"github.com/watan-hr/fingerprint-attendance/internal/pkg/database"
	"github.com/watan-hr/fingerprint-attendance/internal/pkg/validator"
	"golang.org/x/crypto/bcrypt"
)

type SettingsServiceImpl struct {
	repo   settings.SettingsRepository
	tx     database.Transactor
	logger *slog.Logger

	defaultHashOnce sync.Once
	defaultHash     string
	defaultHashErr  error
}

func NewSettingsService(repo settings.SettingsRepository, tx database.Transactor, logger *slog.Logger) settings.SettingsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SettingsServiceImpl{
		repo:   repo,
		tx:     tx,
		logger: logger.With("component", "settings"),
	}
}

// Load implements settings.SettingsService. Missing or unreadable values fall
// back to the factory defaults with a warning.
func (s *SettingsServiceImpl) Load(ctx context.Context) (settings.Settings, error) {
	values, err := s.repo.GetAll(ctx)
	if err != nil {
		return settings.Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}

	snap := decode(values, s.logger)
	if snap.PasswordHash == "" {
		hash, err := s.defaultPasswordHash()
		if err != nil {
			return settings.Settings{}, err
		}
		snap.PasswordHash = hash
	}
	return snap, nil
}

// Get implements settings.SettingsService.
func (s *SettingsServiceImpl) Get(ctx context.Context) (settings.SettingsResponse, error) {
	snap, err := s.Load(ctx)
	if err != nil {
		return settings.SettingsResponse{}, err
	}
	return settings.NewSettingsResponse(snap), nil
}

// Update implements settings.SettingsService.
func (s *SettingsServiceImpl) Update(ctx context.Context, req settings.UpdateSettingsRequest) (settings.SettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return settings.SettingsResponse{}, err
	}

	var saved settings.Settings
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.Load(ctx)
		if err != nil {
			return err
		}

		next := req.Apply(current)
		if next.First.Overlaps(next.Second) {
			return settings.ErrOverlappingPeriods
		}
		if req.Password != nil {
			hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("%w: %v", settings.ErrPasswordHash, err)
			}
			next.PasswordHash = string(hash)
		}

		if err := s.repo.SaveAll(ctx, encode(next)); err != nil {
			return err
		}
		saved = next
		return nil
	})
	if err != nil {
		return settings.SettingsResponse{}, err
	}

	s.logger.Info("Settings updated",
		"device", saved.Device.Address,
		"first", saved.First.String(),
		"second", saved.Second.String(),
		"password_changed", req.Password != nil,
	)
	return settings.NewSettingsResponse(saved), nil
}

func (s *SettingsServiceImpl) defaultPasswordHash() (string, error) {
	s.defaultHashOnce.Do(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte(settings.DefaultPassword), bcrypt.DefaultCost)
		if err != nil {
			s.defaultHashErr = fmt.Errorf("%w: %v", settings.ErrPasswordHash, err)
			return
		}
		s.defaultHash = string(hash)
	})
	return s.defaultHash, s.defaultHashErr
}

func encode(s settings.Settings) map[string]string {
	values := map[string]string{
		settings.KeyDeviceIP:   s.Device.Address,
		settings.KeyDevicePort: strconv.Itoa(s.Device.Port),
		settings.KeyTimeout:    strconv.Itoa(int(s.Device.Timeout / time.Second)),
		settings.KeyCommKey:    strconv.Itoa(s.Device.CommKey),
		settings.KeyInLimit1:   s.First.Start.String(),
		settings.KeyOutLimit1:  s.First.End.String(),
		settings.KeyInLimit2:   s.Second.Start.String(),
		settings.KeyOutLimit2:  s.Second.End.String(),
		settings.KeyWeekend1:   s.Weekend[0].String(),
		settings.KeyWeekend2:   s.Weekend[1].String(),
		settings.KeyUsername:   s.Username,
	}
	if s.PasswordHash != "" {
		values[settings.KeyPasswordHash] = s.PasswordHash
	}
	return values
}

func decode(values map[string]string, logger *slog.Logger) settings.Settings {
	snap := settings.Defaults()

	warn := func(key, value string) {
		logger.Warn("Ignoring invalid setting, using default", "key", key, "value", value)
	}

	if v, ok := values[settings.KeyDeviceIP]; ok {
		if validator.IsValidHost(v) {
			snap.Device.Address = v
		} else {
			warn(settings.KeyDeviceIP, v)
		}
	}
	if v, ok := values[settings.KeyDevicePort]; ok {
		if port, err := strconv.Atoi(v); err == nil && validator.IsValidPort(port) {
			snap.Device.Port = port
		} else {
			warn(settings.KeyDevicePort, v)
		}
	}
	if v, ok := values[settings.KeyTimeout]; ok {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			snap.Device.Timeout = time.Duration(secs) * time.Second
		} else {
			warn(settings.KeyTimeout, v)
		}
	}
	if v, ok := values[settings.KeyCommKey]; ok {
		if key, err := strconv.Atoi(v); err == nil && key >= 0 && key <= settings.MaxCommKey {
			snap.Device.CommKey = key
		} else {
			warn(settings.KeyCommKey, v)
		}
	}

	for key, dst := range map[string]*clock.Time{
		settings.KeyInLimit1:  &snap.First.Start,
		settings.KeyOutLimit1: &snap.First.End,
		settings.KeyInLimit2:  &snap.Second.Start,
		settings.KeyOutLimit2: &snap.Second.End,
	} {
		v, ok := values[key]
		if !ok {
			continue
		}
		if t, err := clock.Parse(v); err == nil {
			*dst = t
		} else {
			warn(key, v)
		}
	}

	for i, key := range []string{settings.KeyWeekend1, settings.KeyWeekend2} {
		v, ok := values[key]
		if !ok {
			continue
		}
		if d, ok := validator.ParseWeekday(v); ok {
			snap.Weekend[i] = d
		} else {
			warn(key, v)
		}
	}

	if v := values[settings.KeyUsername]; v != "" {
		snap.Username = v
	}
	snap.PasswordHash = values[settings.KeyPasswordHash]
	return snap
}
