package repository

import (
	"time"

	"schedula/internal/domain/entity"

	"gorm.io/gorm"
)

// ScheduleRepository covers a location's recurring weekly schedule and its
// date-specific exceptions.
type ScheduleRepository interface {
	ReplaceWeeklySchedule(db *gorm.DB, locationID int, entries []entity.WeeklyScheduleEntry) error
	FindWeeklySchedule(db *gorm.DB, locationID int) ([]entity.WeeklyScheduleEntry, error)
	ReplaceExceptions(db *gorm.DB, locationID int, exceptions []entity.AvailabilityException) error
	FindExceptionsByDate(db *gorm.DB, locationID int, date time.Time) ([]entity.AvailabilityException, error)
}
