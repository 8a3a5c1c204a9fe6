package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeSlotOverlapsIsHalfOpen(t *testing.T) {
	morning := TimeSlot{Start: 9 * 60, End: 11 * 60}
	adjacent := TimeSlot{Start: 11 * 60, End: 13 * 60}
	inside := TimeSlot{Start: 10 * 60, End: 10*60 + 30}

	assert.False(t, morning.Overlaps(adjacent), "touching endpoints must not collide")
	assert.False(t, adjacent.Overlaps(morning))
	assert.True(t, morning.Overlaps(inside))
	assert.True(t, inside.Overlaps(morning))
}

func TestTimeSlotFits(t *testing.T) {
	slot := TimeSlot{Start: 9 * 60, End: 11 * 60}

	assert.True(t, slot.Fits(120))
	assert.True(t, slot.Fits(90))
	assert.False(t, slot.Fits(121))
}

func TestEndForClampsToEndOfDay(t *testing.T) {
	assert.Equal(t, 10*60, EndFor(9*60, 60))
	assert.Equal(t, 23*60+59, EndFor(23*60, 120))
}

func TestParseClock(t *testing.T) {
	minutes, err := ParseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, 9*60+30, minutes)

	_, err = ParseClock("24:00")
	assert.Error(t, err)

	_, err = ParseClock("oops")
	assert.Error(t, err)
}

func TestParseTimeSlot(t *testing.T) {
	slot, err := ParseTimeSlot("11:30-13:30")
	require.NoError(t, err)
	assert.Equal(t, TimeSlot{Start: 11*60 + 30, End: 13*60 + 30}, slot)
	assert.Equal(t, "11:30-13:30", slot.String())

	_, err = ParseTimeSlot("13:30-11:30")
	assert.Error(t, err)

	_, err = ParseTimeSlot("11:30")
	assert.Error(t, err)
}

func TestParseTimeSlotsFallsBackToDefaults(t *testing.T) {
	slots, err := ParseTimeSlots(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultTimeSlots(), slots)

	slots, err = ParseTimeSlots([]string{"08:00-10:00", "10:30-12:30"})
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, 8*60, slots[0].Start)

	_, err = ParseTimeSlots([]string{"08:00-10:00", "bad"})
	assert.Error(t, err)
}
