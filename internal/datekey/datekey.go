// Package datekey holds the canonical date keys used by all date-scoped
// records: days are "YYYY-MM-DD" strings, weekdays are three-letter tokens.
package datekey

import "time"

// Weekday tokens in time.Weekday order (Sunday == 0).
var weekdayKeys = [...]string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}

// WeekdayOrder is the display order of the weekly diet template (mon..sun).
var WeekdayOrder = []string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}

// Day returns the canonical day key for t, e.g. "2025-04-06".
func Day(t time.Time) string {
	return t.Format("2006-01-02")
}

// Today returns the day key of the current date.
func Today() string {
	return Day(time.Now())
}

// Weekday returns the weekday key for t: "sun".."sat".
func Weekday(t time.Time) string {
	return weekdayKeys[t.Weekday()]
}

// WeekdayOfDay returns the weekday key of a day key, or "" for an
// unparseable key.
func WeekdayOfDay(dayKey string) string {
	t, err := time.Parse("2006-01-02", dayKey)
	if err != nil {
		return ""
	}
	return Weekday(t)
}

// Month returns the month bucket of a day key: its first 7 chars ("YYYY-MM").
func Month(dayKey string) string {
	if len(dayKey) < 7 {
		return dayKey
	}
	return dayKey[:7]
}

// IsValidWeekday reports whether key is one of sun..sat.
func IsValidWeekday(key string) bool {
	for _, wd := range weekdayKeys {
		if wd == key {
			return true
		}
	}
	return false
}
