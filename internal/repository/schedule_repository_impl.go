package repository

import (
	"time"

	"schedula/internal/domain/entity"
	domainRepo "schedula/internal/domain/repository"

	"gorm.io/gorm"
)

type scheduleRepository struct{}

func NewScheduleRepository() domainRepo.ScheduleRepository {
	return &scheduleRepository{}
}

// ReplaceWeeklySchedule drops the existing week and inserts the new one.
// Callers run this inside a transaction together with ReplaceExceptions.
func (r *scheduleRepository) ReplaceWeeklySchedule(db *gorm.DB, locationID int, entries []entity.WeeklyScheduleEntry) error {
	if err := db.Where("location_id = ?", locationID).Delete(&entity.WeeklyScheduleEntry{}).Error; err != nil {
		return err
	}
	for i := range entries {
		entries[i].ID = 0
		entries[i].LocationID = locationID
	}
	if len(entries) == 0 {
		return nil
	}
	return db.Create(&entries).Error
}

func (r *scheduleRepository) FindWeeklySchedule(db *gorm.DB, locationID int) ([]entity.WeeklyScheduleEntry, error) {
	var entries []entity.WeeklyScheduleEntry
	err := db.Where("location_id = ?", locationID).Order("id ASC").Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *scheduleRepository) ReplaceExceptions(db *gorm.DB, locationID int, exceptions []entity.AvailabilityException) error {
	if err := db.Where("location_id = ?", locationID).Delete(&entity.AvailabilityException{}).Error; err != nil {
		return err
	}
	for i := range exceptions {
		exceptions[i].ID = 0
		exceptions[i].LocationID = locationID
	}
	if len(exceptions) == 0 {
		return nil
	}
	return db.Create(&exceptions).Error
}

func (r *scheduleRepository) FindExceptionsByDate(db *gorm.DB, locationID int, date time.Time) ([]entity.AvailabilityException, error) {
	var exceptions []entity.AvailabilityException
	err := db.Where("location_id = ? AND date = ?", locationID, date.Format("2006-01-02")).
		Find(&exceptions).Error
	if err != nil {
		return nil, err
	}
	return exceptions, nil
}
