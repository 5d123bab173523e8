package clock

import "fmt"

// Range is an inclusive span of times of day. A range whose End is before its
// Start wraps past midnight.
type Range struct {
	Start Time `json:"start"`
	End   Time `json:"end"`
}

// Overnight reports whether r crosses midnight.
func (r Range) Overnight() bool {
	return r.Start > r.End
}

// Contains reports whether t falls inside r, both ends included.
func (r Range) Contains(t Time) bool {
	if r.Overnight() {
		return t >= r.Start || t <= r.End
	}
	return r.Start <= t && t <= r.End
}

// Overlaps reports whether any minute belongs to both ranges.
func (r Range) Overlaps(other Range) bool {
	for _, a := range r.segments() {
		for _, b := range other.segments() {
			if a[0] <= b[1] && b[0] <= a[1] {
				return true
			}
		}
	}
	return false
}

func (r Range) segments() [][2]Time {
	if r.Overnight() {
		return [][2]Time{{r.Start, MinutesPerDay - 1}, {0, r.End}}
	}
	return [][2]Time{{r.Start, r.End}}
}

func (r Range) String() string {
	return fmt.Sprintf("%s-%s", r.Start, r.End)
}
