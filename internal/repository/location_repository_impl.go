package repository

import (
	"errors"

	"schedula/internal/domain/entity"
	domainRepo "schedula/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type locationRepository struct{}

func NewLocationRepository() domainRepo.LocationRepository {
	return &locationRepository{}
}

func (r *locationRepository) Create(db *gorm.DB, location *entity.PracticeLocation) error {
	return db.Create(location).Error
}

func (r *locationRepository) FindByID(db *gorm.DB, id int) (*entity.PracticeLocation, error) {
	var location entity.PracticeLocation
	err := db.Where("id = ?", id).First(&location).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &location, nil
}

func (r *locationRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.PracticeLocation, error) {
	var locations []entity.PracticeLocation
	err := db.Where("doctor_id = ?", doctorID).Order("created_at ASC").Find(&locations).Error
	if err != nil {
		return nil, err
	}
	return locations, nil
}
