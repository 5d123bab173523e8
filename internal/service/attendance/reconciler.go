package attendance

import (
	"context"

	"github.com/watan-hr/fingerprint-attendance/internal/domain/attendance"
	"github.com/watan-hr/fingerprint-attendance/internal/pkg/clock"
)

// Classify returns the period t belongs to. When both match, the first period
// wins; overlapping periods are rejected when settings are saved.
func Classify(t clock.Time, first, second clock.Range) attendance.Slot {
	switch {
	case first.Contains(t):
		return attendance.SlotFirst
	case second.Contains(t):
		return attendance.SlotSecond
	default:
		return attendance.SlotNone
	}
}

// Outcome describes what one punch did to its day record.
type Outcome int

const (
	OutcomeDropped Outcome = iota
	OutcomeCreated
	OutcomeCheckIn
	OutcomeCheckOut
	OutcomeDuplicate
)

// Changed reports whether the punch modified a record.
func (o Outcome) Changed() bool {
	return o == OutcomeCreated || o == OutcomeCheckIn || o == OutcomeCheckOut
}

// Apply folds one punch into rec, which is nil when the day has no record yet.
// The first punch of a day only ever fills an entry slot; a later punch that
// differs from the entry overwrites the exit slot.
func Apply(rec *attendance.Attendance, p attendance.Punch, first, second clock.Range) (*attendance.Attendance, Outcome) {
	t := p.Time()
	slot := Classify(t, first, second)
	if slot == attendance.SlotNone {
		return rec, OutcomeDropped
	}

	if rec == nil {
		rec = &attendance.Attendance{EmployeeID: p.EmployeeID, Date: p.Date()}
		*rec.In(slot) = clock.Some(t)
		return rec, OutcomeCreated
	}

	in := rec.In(slot)
	switch {
	case !in.Present():
		*in = clock.Some(t)
		return rec, OutcomeCheckIn
	case in.Valid && in.Time == t:
		return rec, OutcomeDuplicate
	default:
		*rec.Out(slot) = clock.Some(t)
		return rec, OutcomeCheckOut
	}
}

// Lookup fetches the stored record for a day, or nil.
type Lookup func(ctx context.Context, key attendance.Key) (*attendance.Attendance, error)

// Tally counts punch outcomes of one batch.
type Tally struct {
	Applied    int
	Duplicates int
	Dropped    int
}

// Reconcile applies punches in order and returns the records that changed, in
// the order they were first touched. Each key is looked up at most once.
func Reconcile(ctx context.Context, punches []attendance.Punch, first, second clock.Range, lookup Lookup) ([]attendance.Attendance, Tally, error) {
	var (
		tally   Tally
		records = make(map[attendance.Key]*attendance.Attendance)
		loaded  = make(map[attendance.Key]bool)
		order   []attendance.Key
		dirty   = make(map[attendance.Key]bool)
	)

	for _, p := range punches {
		if Classify(p.Time(), first, second) == attendance.SlotNone {
			tally.Dropped++
			continue
		}

		key := attendance.Key{EmployeeID: p.EmployeeID, Date: p.Date()}
		if !loaded[key] {
			rec, err := lookup(ctx, key)
			if err != nil {
				return nil, Tally{}, err
			}
			records[key] = rec
			loaded[key] = true
		}

		rec, outcome := Apply(records[key], p, first, second)
		records[key] = rec
		switch {
		case outcome == OutcomeDuplicate:
			tally.Duplicates++
		case outcome.Changed():
			tally.Applied++
			if !dirty[key] {
				dirty[key] = true
				order = append(order, key)
			}
		}
	}

	changed := make([]attendance.Attendance, 0, len(order))
	for _, key := range order {
		changed = append(changed, *records[key])
	}
	return changed, tally, nil
}
