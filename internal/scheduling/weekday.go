package scheduling

import (
	"strings"
	"time"
)

// Weekday is one of the five canonical exam weekdays.
type Weekday string

const (
	Monday    Weekday = "MONDAY"
	Tuesday   Weekday = "TUESDAY"
	Wednesday Weekday = "WEDNESDAY"
	Thursday  Weekday = "THURSDAY"
	Friday    Weekday = "FRIDAY"
)

// AllWeekdays lists the canonical weekdays Monday first.
var AllWeekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}

// weekdayAliases maps locale-variant spellings, with and without diacritics,
// onto canonical weekdays. Lookups are lowercased first.
var weekdayAliases = map[string]Weekday{
	"monday":    Monday,
	"tuesday":   Tuesday,
	"wednesday": Wednesday,
	"thursday":  Thursday,
	"friday":    Friday,
	"pazartesi": Monday,
	"sali":      Tuesday,
	"salı":      Tuesday,
	"carsamba":  Wednesday,
	"çarsamba":  Wednesday,
	"çarşamba":  Wednesday,
	"carşamba":  Wednesday,
	"persembe":  Thursday,
	"perşembe":  Thursday,
	"cuma":      Friday,
}

var goWeekdays = map[time.Weekday]Weekday{
	time.Monday:    Monday,
	time.Tuesday:   Tuesday,
	time.Wednesday: Wednesday,
	time.Thursday:  Thursday,
	time.Friday:    Friday,
}

// CanonicalWeekday normalises a raw weekday spelling. The second return is
// false when the spelling is unknown.
func CanonicalWeekday(raw string) (Weekday, bool) {
	day, ok := weekdayAliases[strings.ToLower(strings.TrimSpace(raw))]
	return day, ok
}

// WeekdayOf maps a calendar date onto a canonical weekday. Weekend dates
// return false.
func WeekdayOf(date time.Time) (Weekday, bool) {
	day, ok := goWeekdays[date.Weekday()]
	return day, ok
}

// WeekdaysInRange returns every Monday-Friday date between start and end
// inclusive, ascending.
func WeekdaysInRange(start, end time.Time) []time.Time {
	var dates []time.Time
	for current := start; !current.After(end); current = current.AddDate(0, 0, 1) {
		if _, ok := WeekdayOf(current); ok {
			dates = append(dates, current)
		}
	}
	return dates
}

// AvailableWeekdays normalises an instructor's configured weekday set.
// Unknown spellings are dropped; an empty or fully unknown set falls back to
// all five weekdays, matching the "no restriction" default.
func AvailableWeekdays(raw []string) map[Weekday]bool {
	available := make(map[Weekday]bool, len(raw))
	for _, entry := range raw {
		if day, ok := CanonicalWeekday(entry); ok {
			available[day] = true
		}
	}
	if len(available) == 0 {
		for _, day := range AllWeekdays {
			available[day] = true
		}
	}
	return available
}
