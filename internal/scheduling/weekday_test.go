package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalWeekdayAcceptsLocaleVariants(t *testing.T) {
	cases := map[string]Weekday{
		"Monday":    Monday,
		" friday ":  Friday,
		"Pazartesi": Monday,
		"salı":      Tuesday,
		"sali":      Tuesday,
		"çarşamba":  Wednesday,
		"carsamba":  Wednesday,
		"Perşembe":  Thursday,
		"CUMA":      Friday,
	}
	for raw, want := range cases {
		day, ok := CanonicalWeekday(raw)
		require.True(t, ok, "expected %q to resolve", raw)
		assert.Equal(t, want, day)
	}

	_, ok := CanonicalWeekday("saturday")
	assert.False(t, ok)
}

func TestWeekdayOfRejectsWeekends(t *testing.T) {
	// 2026-06-01 is a Monday, 2026-06-06 a Saturday.
	day, ok := WeekdayOf(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, Monday, day)

	_, ok = WeekdayOf(time.Date(2026, 6, 6, 0, 0, 0, 0, time.UTC))
	assert.False(t, ok)
}

func TestWeekdaysInRangeSkipsWeekends(t *testing.T) {
	start := time.Date(2026, 6, 5, 0, 0, 0, 0, time.UTC) // Friday
	end := time.Date(2026, 6, 9, 0, 0, 0, 0, time.UTC)   // Tuesday

	dates := WeekdaysInRange(start, end)
	require.Len(t, dates, 3)
	assert.Equal(t, time.Friday, dates[0].Weekday())
	assert.Equal(t, time.Monday, dates[1].Weekday())
	assert.Equal(t, time.Tuesday, dates[2].Weekday())
}

func TestWeekdaysInRangeEmptyWhenReversed(t *testing.T) {
	start := time.Date(2026, 6, 9, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 5, 0, 0, 0, 0, time.UTC)
	assert.Empty(t, WeekdaysInRange(start, end))
}

func TestAvailableWeekdaysDefaultsToAll(t *testing.T) {
	available := AvailableWeekdays(nil)
	assert.Len(t, available, 5)

	available = AvailableWeekdays([]string{"nonsense"})
	assert.Len(t, available, 5)

	available = AvailableWeekdays([]string{"Pazartesi", "cuma"})
	assert.Equal(t, map[Weekday]bool{Monday: true, Friday: true}, available)
}
