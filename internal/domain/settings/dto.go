package settings

import (
	"time"

	"github.com/watan-hr/fingerprint-attendance/internal/pkg/clock"
	"github.com/watan-hr/fingerprint-attendance/internal/pkg/validator"
)

type SettingsResponse struct {
	IP             string   `json:"ip"`
	Port           int      `json:"port"`
	TimeoutSeconds int      `json:"timeout_seconds"`
	CommKey        int      `json:"comm_key"`
	InLimit1       string   `json:"in_limit_1"`
	OutLimit1      string   `json:"out_limit_1"`
	InLimit2       string   `json:"in_limit_2"`
	OutLimit2      string   `json:"out_limit_2"`
	Weekend        []string `json:"weekend"`
	Username       string   `json:"username"`
}

func NewSettingsResponse(s Settings) SettingsResponse {
	return SettingsResponse{
		IP:             s.Device.Address,
		Port:           s.Device.Port,
		TimeoutSeconds: int(s.Device.Timeout / time.Second),
		CommKey:        s.Device.CommKey,
		InLimit1:       s.First.Start.String(),
		OutLimit1:      s.First.End.String(),
		InLimit2:       s.Second.Start.String(),
		OutLimit2:      s.Second.End.String(),
		Weekend:        []string{s.Weekend[0].String(), s.Weekend[1].String()},
		Username:       s.Username,
	}
}

// UpdateSettingsRequest replaces the whole record. Password is optional; when
// nil the stored hash is kept.
type UpdateSettingsRequest struct {
	IP             string   `json:"ip"`
	Port           int      `json:"port"`
	TimeoutSeconds int      `json:"timeout_seconds"`
	CommKey        int      `json:"comm_key"`
	InLimit1       string   `json:"in_limit_1"`
	OutLimit1      string   `json:"out_limit_1"`
	InLimit2       string   `json:"in_limit_2"`
	OutLimit2      string   `json:"out_limit_2"`
	Weekend        []string `json:"weekend"`
	Username       string   `json:"username"`
	Password       *string  `json:"password,omitempty"`
}

func (r *UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.IP) {
		errs = append(errs, validator.ValidationError{
			Field:   "ip",
			Message: "ip is required",
		})
	} else if !validator.IsValidHost(r.IP) {
		errs = append(errs, validator.ValidationError{
			Field:   "ip",
			Message: "ip must be an IP address or hostname",
		})
	}

	if r.Port == 0 {
		r.Port = DefaultDevicePort
	}
	if !validator.IsValidPort(r.Port) {
		errs = append(errs, validator.ValidationError{
			Field:   "port",
			Message: "port must be between 1 and 65535",
		})
	}

	if r.TimeoutSeconds == 0 {
		r.TimeoutSeconds = int(DefaultTimeout / time.Second)
	}
	if r.TimeoutSeconds < 1 || r.TimeoutSeconds > 120 {
		errs = append(errs, validator.ValidationError{
			Field:   "timeout_seconds",
			Message: "timeout_seconds must be between 1 and 120",
		})
	}

	if r.CommKey < 0 || r.CommKey > MaxCommKey {
		errs = append(errs, validator.ValidationError{
			Field:   KeyCommKey,
			Message: "comm_key must be between 0 and 999999",
		})
	}

	for field, value := range map[string]string{
		KeyInLimit1:  r.InLimit1,
		KeyOutLimit1: r.OutLimit1,
		KeyInLimit2:  r.InLimit2,
		KeyOutLimit2: r.OutLimit2,
	} {
		if _, ok := validator.IsValidTimeOfDay(value); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: field + " must be a time in HH:MM format",
			})
		}
	}

	if len(r.Weekend) != 2 {
		errs = append(errs, validator.ValidationError{
			Field:   "weekend",
			Message: "weekend must name exactly two days",
		})
	} else {
		d1, ok1 := validator.ParseWeekday(r.Weekend[0])
		d2, ok2 := validator.ParseWeekday(r.Weekend[1])
		switch {
		case !ok1 || !ok2:
			errs = append(errs, validator.ValidationError{
				Field:   "weekend",
				Message: "weekend days must be English weekday names",
			})
		case d1 == d2:
			errs = append(errs, validator.ValidationError{
				Field:   "weekend",
				Message: "weekend days must be distinct",
			})
		}
	}

	if validator.IsEmpty(r.Username) {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: "username is required",
		})
	}
	if r.Password != nil && len(*r.Password) < 3 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 3 characters long",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Apply builds the new snapshot on top of current. Validate must have passed.
// The password hash is left to the caller.
func (r *UpdateSettingsRequest) Apply(current Settings) Settings {
	next := current
	next.Device = Device{
		Address: r.IP,
		Port:    r.Port,
		Timeout: time.Duration(r.TimeoutSeconds) * time.Second,
		CommKey: r.CommKey,
	}
	next.First = clock.Range{Start: clock.MustParse(r.InLimit1), End: clock.MustParse(r.OutLimit1)}
	next.Second = clock.Range{Start: clock.MustParse(r.InLimit2), End: clock.MustParse(r.OutLimit2)}
	d1, _ := validator.ParseWeekday(r.Weekend[0])
	d2, _ := validator.ParseWeekday(r.Weekend[1])
	next.Weekend = [2]time.Weekday{d1, d2}
	next.Username = r.Username
	return next
}
