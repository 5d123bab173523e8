// Package clock models wall-clock times of day as recorded by the fingerprint
// terminal. Dates are handled separately; a Time here never carries one.
package clock

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MinutesPerDay is the number of distinct Time values.
const MinutesPerDay = 24 * 60

// Placeholder is what an empty slot renders as in tables and exports.
const Placeholder = "--"

// Time is a time of day with minute precision, stored as minutes since midnight.
type Time int

// New builds a Time from an hour and minute. It does not validate its input;
// use Parse for untrusted values.
func New(hour, minute int) Time {
	return Time(hour*60 + minute)
}

// FromTime returns the time of day of t, dropping seconds.
func FromTime(t time.Time) Time {
	return New(t.Hour(), t.Minute())
}

// Parse reads "HH:MM" or "HH:MM:SS". The seconds component is ignored.
func Parse(s string) (Time, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid time of day %q: expected HH:MM", s)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}

	return New(hour, minute), nil
}

// MustParse is Parse for constants; it panics on malformed input.
func MustParse(s string) Time {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

func (t Time) Hour() int    { return int(t) / 60 }
func (t Time) Minute() int  { return int(t) % 60 }
func (t Time) Minutes() int { return int(t) }

// String formats t as zero-padded "HH:MM".
func (t Time) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

func (t Time) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Time) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// IsAbsent reports whether a stored or displayed slot value means "no punch".
// Every absence check in the codebase goes through this predicate.
func IsAbsent(s string) bool {
	switch v := strings.TrimSpace(s); {
	case v == "", v == Placeholder, v == "0", v == "00:00:00":
		return true
	case strings.EqualFold(v, "none"), strings.EqualFold(v, "none:none"), strings.EqualFold(v, "null"):
		return true
	}
	return false
}

// NullTime is an optional attendance slot.
//
// Unparsed keeps a stored value that is neither absent nor a valid time of
// day. Such a slot counts as attended but never accrues lateness.
type NullTime struct {
	Time     Time
	Valid    bool
	Unparsed string
}

// Some wraps a valid time.
func Some(t Time) NullTime {
	return NullTime{Time: t, Valid: true}
}

// ParseNull converts a raw slot value. It never fails.
func ParseNull(s string) NullTime {
	if IsAbsent(s) {
		return NullTime{}
	}
	t, err := Parse(s)
	if err != nil {
		return NullTime{Unparsed: strings.TrimSpace(s)}
	}
	return Some(t)
}

// Present reports whether the slot holds anything at all.
func (n NullTime) Present() bool {
	return n.Valid || n.Unparsed != ""
}

func (n NullTime) String() string {
	switch {
	case n.Valid:
		return n.Time.String()
	case n.Unparsed != "":
		return n.Unparsed
	default:
		return Placeholder
	}
}

// Ptr returns the formatted slot or nil when empty.
func (n NullTime) Ptr() *string {
	if !n.Present() {
		return nil
	}
	s := n.String()
	return &s
}

// Scan implements sql.Scanner for TEXT slot columns.
func (n *NullTime) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*n = NullTime{}
	case string:
		*n = ParseNull(v)
	case []byte:
		*n = ParseNull(string(v))
	case time.Time:
		*n = Some(FromTime(v))
	default:
		return fmt.Errorf("clock: cannot scan %T into NullTime", src)
	}
	return nil
}

// Value implements driver.Valuer.
func (n NullTime) Value() (driver.Value, error) {
	if !n.Present() {
		return nil, nil
	}
	return n.String(), nil
}

func (n NullTime) MarshalJSON() ([]byte, error) {
	if !n.Present() {
		return []byte("null"), nil
	}
	return json.Marshal(n.String())
}

func (n *NullTime) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*n = NullTime{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*n = ParseNull(s)
	return nil
}

// Late returns how many minutes actual falls after target, floored at zero.
// Empty and unparsed slots are never late.
func Late(actual NullTime, target Time) int {
	if !actual.Valid {
		return 0
	}
	if d := actual.Time.Minutes() - target.Minutes(); d > 0 {
		return d
	}
	return 0
}

// MinutesLate is Late over raw strings. Sentinels and malformed input on
// either side yield zero rather than an error.
func MinutesLate(actual, target string) int {
	t, err := Parse(target)
	if err != nil {
		return 0
	}
	return Late(ParseNull(actual), t)
}

// DateOf strips the time of day from t, keeping its calendar date in UTC so
// that dates compare and map-key cleanly.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
