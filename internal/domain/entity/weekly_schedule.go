package entity

import "time"

// Canonical day names, Monday first. Weekly schedules always carry exactly
// one entry per day in this order.
var WeekDays = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// WeeklyScheduleEntry is one day of a location's recurring weekly schedule.
// StartTime < EndTime must hold whenever IsAvailable is true.
type WeeklyScheduleEntry struct {
	ID          int       `gorm:"primaryKey;autoIncrement" json:"id"`
	LocationID  int       `gorm:"not null;index:idx_schedule_location_day,unique" json:"location_id"`
	Day         string    `gorm:"type:varchar(10);not null;index:idx_schedule_location_day,unique" json:"day"`
	StartTime   string    `gorm:"type:varchar(5);not null" json:"start_time"`
	EndTime     string    `gorm:"type:varchar(5);not null" json:"end_time"`
	IsAvailable bool      `gorm:"not null;default:false" json:"is_available"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (WeeklyScheduleEntry) TableName() string {
	return "weekly_schedule_entries"
}

// DefaultWeeklySchedule returns the standard starting schedule:
// Monday through Friday 09:00-17:00 available, weekend unavailable.
func DefaultWeeklySchedule() []WeeklyScheduleEntry {
	entries := make([]WeeklyScheduleEntry, 0, len(WeekDays))
	for _, day := range WeekDays {
		available := day != "Saturday" && day != "Sunday"
		entries = append(entries, WeeklyScheduleEntry{
			Day:         day,
			StartTime:   "09:00",
			EndTime:     "17:00",
			IsAvailable: available,
		})
	}
	return entries
}

// DayName maps a time.Weekday onto the canonical day string.
func DayName(weekday time.Weekday) string {
	return weekday.String()
}
