package repository

import (
	"time"

	"schedula/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error)
	FindBookedTimes(db *gorm.DB, doctorID uuid.UUID, locationID int, date time.Time) ([]string, error)
	Update(db *gorm.DB, appointment *entity.Appointment) error
	UpdateStatus(db *gorm.DB, id uuid.UUID, status entity.AppointmentStatus) (int64, error)
}
