package clock

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"08:00", "08:00", false},
		{"8:05", "08:05", false},
		{"23:59", "23:59", false},
		{"00:00", "00:00", false},
		{"14:10:59", "14:10", false},
		{" 09:30 ", "09:30", false},
		{"24:00", "", true},
		{"12:60", "", true},
		{"12:5", "", true},
		{"noon", "", true},
		{"", "", true},
		{"1:2:3:4", "", true},
	}
	for _, c := range cases {
		got, err := Parse(c.input)
		if c.wantErr {
			assert.Error(t, err, "Parse(%q)", c.input)
			continue
		}
		require.NoError(t, err, "Parse(%q)", c.input)
		assert.Equal(t, c.want, got.String(), "Parse(%q)", c.input)
	}
}

func TestParse_StringRoundTrip(t *testing.T) {
	for m := 0; m < MinutesPerDay; m += 7 {
		tm := Time(m)
		back, err := Parse(tm.String())
		require.NoError(t, err)
		assert.Equal(t, tm, back)
	}
}

func TestFromTime(t *testing.T) {
	ts := time.Date(2024, 3, 1, 23, 50, 41, 0, time.UTC)
	assert.Equal(t, "23:50", FromTime(ts).String())
}

func TestIsAbsent(t *testing.T) {
	absent := []string{"", "  ", "--", "0", "00:00:00", "None", "none", "None:None", "null"}
	present := []string{"00:00", "08:01", "garbage", "7"}
	for _, s := range absent {
		assert.True(t, IsAbsent(s), "IsAbsent(%q)", s)
	}
	for _, s := range present {
		assert.False(t, IsAbsent(s), "IsAbsent(%q)", s)
	}
}

func TestMinutesLate(t *testing.T) {
	cases := []struct {
		actual, target string
		want           int
	}{
		{"14:10", "14:00", 10},
		{"13:55", "14:00", 0},
		{"14:00", "14:00", 0},
		{"--", "14:00", 0},
		{"", "08:00", 0},
		{"00:00:00", "08:00", 0},
		{"None", "08:00", 0},
		{"09:15:45", "08:00", 75},
		{"xx:yy", "08:00", 0},
		{"09:00", "bad", 0},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, MinutesLate(c.actual, c.target), "MinutesLate(%q, %q)", c.actual, c.target)
	}
}

func TestNullTime_Unparsed(t *testing.T) {
	n := ParseNull("8h05")
	assert.False(t, n.Valid)
	assert.True(t, n.Present())
	assert.Equal(t, "8h05", n.String())
	assert.Equal(t, 0, Late(n, MustParse("08:00")))
}

func TestNullTime_Scan(t *testing.T) {
	var n NullTime
	require.NoError(t, n.Scan(nil))
	assert.False(t, n.Present())

	require.NoError(t, n.Scan("08:01"))
	assert.True(t, n.Valid)
	assert.Equal(t, New(8, 1), n.Time)

	require.NoError(t, n.Scan([]byte("--")))
	assert.False(t, n.Present())

	assert.Error(t, n.Scan(42))
}

func TestNullTime_Value(t *testing.T) {
	v, err := NullTime{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = Some(New(20, 5)).Value()
	require.NoError(t, err)
	assert.Equal(t, "20:05", v)
}

func TestNullTime_JSON(t *testing.T) {
	type row struct {
		In  NullTime `json:"in"`
		Out NullTime `json:"out"`
	}
	b, err := json.Marshal(row{In: Some(New(8, 1))})
	require.NoError(t, err)
	assert.JSONEq(t, `{"in":"08:01","out":null}`, string(b))

	var back row
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, Some(New(8, 1)), back.In)
	assert.False(t, back.Out.Present())
}

func TestRange_Contains(t *testing.T) {
	day := Range{Start: MustParse("08:00"), End: MustParse("14:00")}
	for _, s := range []string{"08:00", "10:30", "14:00"} {
		assert.True(t, day.Contains(MustParse(s)), s)
	}
	for _, s := range []string{"07:59", "14:01", "23:30", "00:30"} {
		assert.False(t, day.Contains(MustParse(s)), s)
	}

	night := Range{Start: MustParse("20:00"), End: MustParse("01:00")}
	assert.True(t, night.Overnight())
	for _, s := range []string{"20:00", "23:30", "00:00", "00:30", "01:00"} {
		assert.True(t, night.Contains(MustParse(s)), s)
	}
	for _, s := range []string{"10:00", "01:01", "19:59"} {
		assert.False(t, night.Contains(MustParse(s)), s)
	}
}

func TestRange_ContainsMatchesBounds(t *testing.T) {
	// exhaustive check of the non-overnight definition
	r := Range{Start: MustParse("09:15"), End: MustParse("17:45")}
	for m := 0; m < MinutesPerDay; m++ {
		tm := Time(m)
		assert.Equal(t, r.Start <= tm && tm <= r.End, r.Contains(tm), tm.String())
	}
}

func TestRange_Overlaps(t *testing.T) {
	day := Range{Start: MustParse("08:00"), End: MustParse("14:00")}
	night := Range{Start: MustParse("20:00"), End: MustParse("01:00")}
	assert.False(t, day.Overlaps(night))
	assert.False(t, night.Overlaps(day))

	lateShift := Range{Start: MustParse("13:00"), End: MustParse("18:00")}
	assert.True(t, day.Overlaps(lateShift))

	earlyMorning := Range{Start: MustParse("00:30"), End: MustParse("06:00")}
	assert.True(t, night.Overlaps(earlyMorning))
	assert.True(t, earlyMorning.Overlaps(night))

	touching := Range{Start: MustParse("14:00"), End: MustParse("15:00")}
	assert.True(t, day.Overlaps(touching))
}
