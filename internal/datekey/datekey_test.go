package datekey

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDay(t *testing.T) {
	d := time.Date(2025, 4, 6, 14, 30, 0, 0, time.UTC)
	assert.Equal(t, "2025-04-06", Day(d))
	assert.Equal(t, "2025-12-31", Day(time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)))
}

func TestWeekday(t *testing.T) {
	// 2025-04-06 is a Sunday
	sunday := time.Date(2025, 4, 6, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "sun", Weekday(sunday))
	assert.Equal(t, "mon", Weekday(sunday.AddDate(0, 0, 1)))
	assert.Equal(t, "sat", Weekday(sunday.AddDate(0, 0, 6)))
}

func TestWeekdayOfDay(t *testing.T) {
	assert.Equal(t, "sun", WeekdayOfDay("2025-04-06"))
	assert.Equal(t, "wed", WeekdayOfDay("2025-04-09"))
	assert.Empty(t, WeekdayOfDay("not-a-date"))
	assert.Empty(t, WeekdayOfDay(""))
}

func TestMonth(t *testing.T) {
	assert.Equal(t, "2025-04", Month("2025-04-06"))
	assert.Equal(t, "2024-11", Month("2024-11-01"))
	assert.Equal(t, "short", Month("short"))
}

func TestToday(t *testing.T) {
	assert.Equal(t, Day(time.Now()), Today())
	assert.True(t, IsValidWeekday(WeekdayOfDay(Today())))
}

func TestIsValidWeekday(t *testing.T) {
	for _, wd := range []string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"} {
		assert.True(t, IsValidWeekday(wd))
	}
	assert.False(t, IsValidWeekday("monday"))
	assert.False(t, IsValidWeekday(""))
}
