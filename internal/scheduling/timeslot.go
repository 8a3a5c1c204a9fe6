package scheduling

import (
	"fmt"
	"strings"
)

// TimeSlot is an immutable clock interval measured in minutes from midnight.
// Intervals are half-open: a slot ending at 11:00 does not collide with one
// starting at 11:00.
type TimeSlot struct {
	Start int
	End   int
}

// Overlaps reports whether the two intervals share any minute.
func (t TimeSlot) Overlaps(other TimeSlot) bool {
	return !(t.End <= other.Start || other.End <= t.Start)
}

// DurationMinutes returns the interval length.
func (t TimeSlot) DurationMinutes() int {
	return t.End - t.Start
}

// Fits reports whether an exam of the given duration fits into the slot.
func (t TimeSlot) Fits(duration int) bool {
	return t.DurationMinutes() >= duration
}

// String renders the slot as HH:MM-HH:MM.
func (t TimeSlot) String() string {
	return FormatClock(t.Start) + "-" + FormatClock(t.End)
}

// EndFor computes the actual end minute for an exam starting at start,
// clamped to the end of the day.
func EndFor(start, duration int) int {
	end := start + duration
	if end > 23*60+59 {
		end = 23*60 + 59
	}
	return end
}

// ParseClock converts HH:MM into minutes from midnight.
func ParseClock(raw string) (int, error) {
	var hours, minutes int
	if _, err := fmt.Sscanf(strings.TrimSpace(raw), "%d:%d", &hours, &minutes); err != nil {
		return 0, fmt.Errorf("parse clock %q: %w", raw, err)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("parse clock %q: out of range", raw)
	}
	return hours*60 + minutes, nil
}

// FormatClock renders minutes from midnight as HH:MM.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ParseTimeSlot converts HH:MM-HH:MM into a TimeSlot.
func ParseTimeSlot(raw string) (TimeSlot, error) {
	parts := strings.SplitN(strings.TrimSpace(raw), "-", 2)
	if len(parts) != 2 {
		return TimeSlot{}, fmt.Errorf("parse time slot %q: want HH:MM-HH:MM", raw)
	}
	start, err := ParseClock(parts[0])
	if err != nil {
		return TimeSlot{}, err
	}
	end, err := ParseClock(parts[1])
	if err != nil {
		return TimeSlot{}, err
	}
	if end <= start {
		return TimeSlot{}, fmt.Errorf("parse time slot %q: end must be after start", raw)
	}
	return TimeSlot{Start: start, End: end}, nil
}

// ParseTimeSlots converts configured slot expressions, falling back to the
// default daily grid when the list is empty.
func ParseTimeSlots(raw []string) ([]TimeSlot, error) {
	if len(raw) == 0 {
		return DefaultTimeSlots(), nil
	}
	slots := make([]TimeSlot, 0, len(raw))
	for _, expr := range raw {
		slot, err := ParseTimeSlot(expr)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	return slots, nil
}

// DefaultTimeSlots returns the standard four-slot exam day.
func DefaultTimeSlots() []TimeSlot {
	return []TimeSlot{
		{Start: 9 * 60, End: 11 * 60},
		{Start: 11*60 + 30, End: 13*60 + 30},
		{Start: 14 * 60, End: 16 * 60},
		{Start: 16*60 + 30, End: 18*60 + 30},
	}
}
