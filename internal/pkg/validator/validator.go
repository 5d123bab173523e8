package validator

import (
	"net"
	"regexp"
	"strings"
	"time"

	"github.com/watan-hr/fingerprint-attendance/internal/pkg/clock"
)

// DateLayout is the calendar date format used on every surface.
const DateLayout = "2006-01-02"

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse(DateLayout, dateStr)
	return date, err == nil
}

// IsValidTimeOfDay accepts "HH:MM" only; seconds are rejected here even though
// stored values may carry them.
var timeOfDayRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

func IsValidTimeOfDay(s string) (clock.Time, bool) {
	if !timeOfDayRegex.MatchString(s) {
		return 0, false
	}
	t, err := clock.Parse(s)
	return t, err == nil
}

// hostnameRegex follows RFC 1123 labels.
var hostnameRegex = regexp.MustCompile(`^([a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)(\.[a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)

// IsValidHost accepts an IPv4/IPv6 literal or a hostname.
func IsValidHost(host string) bool {
	if net.ParseIP(host) != nil {
		return true
	}
	return len(host) <= 253 && hostnameRegex.MatchString(host)
}

// IsValidPort checks the TCP port range.
func IsValidPort(port int) bool {
	return port > 0 && port <= 65535
}

// ParseWeekday accepts English weekday names in any case, full or three-letter.
func ParseWeekday(s string) (time.Weekday, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if s == name || (len(s) == 3 && strings.HasPrefix(name, s)) {
			return d, true
		}
	}
	return 0, false
}
