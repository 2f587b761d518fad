package repository

import (
	"schedula/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LocationRepository interface {
	Create(db *gorm.DB, location *entity.PracticeLocation) error
	FindByID(db *gorm.DB, id int) (*entity.PracticeLocation, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.PracticeLocation, error)
}
