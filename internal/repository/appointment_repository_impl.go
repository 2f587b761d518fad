package repository

import (
	"errors"
	"time"

	"schedula/internal/domain/entity"
	domainRepo "schedula/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Doctor.User").Preload("Location").Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.Preload("Doctor.User").Preload("Location").
		Where("patient_id = ?", patientID).
		Order("date DESC, time DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// FindBookedTimes returns the start times already consumed by non-cancelled
// appointments for a doctor at a location on a given date.
func (r *appointmentRepository) FindBookedTimes(db *gorm.DB, doctorID uuid.UUID, locationID int, date time.Time) ([]string, error) {
	var times []string
	err := db.Model(&entity.Appointment{}).
		Where("doctor_id = ? AND location_id = ? AND date = ? AND status != ?",
			doctorID, locationID, date.Format("2006-01-02"), entity.AppointmentStatusCancelled).
		Pluck("time", &times).Error
	if err != nil {
		return nil, err
	}
	return times, nil
}

func (r *appointmentRepository) Update(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Omit("Doctor", "Patient", "Location").Save(appointment).Error
}

// UpdateStatus atomically moves an appointment into the given status unless it
// is already cancelled. Returns affected rows: 0 means already cancelled.
func (r *appointmentRepository) UpdateStatus(db *gorm.DB, id uuid.UUID, status entity.AppointmentStatus) (int64, error) {
	result := db.Model(&entity.Appointment{}).
		Where("id = ? AND status != ?", id, entity.AppointmentStatusCancelled).
		Update("status", status)
	return result.RowsAffected, result.Error
}
