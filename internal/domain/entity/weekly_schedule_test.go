package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultWeeklySchedule(t *testing.T) {
	entries := DefaultWeeklySchedule()

	assert.Len(t, entries, 7)

	byDay := map[string]WeeklyScheduleEntry{}
	for _, e := range entries {
		byDay[e.Day] = e
	}

	for _, day := range []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"} {
		entry, ok := byDay[day]
		assert.True(t, ok, day)
		assert.True(t, entry.IsAvailable, day)
		assert.Equal(t, "09:00", entry.StartTime)
		assert.Equal(t, "17:00", entry.EndTime)
	}

	for _, day := range []string{"Saturday", "Sunday"} {
		entry, ok := byDay[day]
		assert.True(t, ok, day)
		assert.False(t, entry.IsAvailable, day)
	}
}

func TestDayName(t *testing.T) {
	assert.Equal(t, "Monday", DayName(time.Monday))
	assert.Equal(t, "Sunday", DayName(time.Sunday))
}
