package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the stored status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusUpcoming  AppointmentStatus = "upcoming"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// Appointment is a patient's booking for a doctor at a practice location.
// Rescheduling rewrites Date and Time only; ID and Status never change on
// reschedule. Cancellation is irreversible.
type Appointment struct {
	ID         uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DoctorID   uuid.UUID         `gorm:"type:uuid;not null;index" json:"doctor_id"`
	PatientID  uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	LocationID int               `gorm:"not null;index" json:"location_id"`
	Date       time.Time         `gorm:"type:date;not null;index" json:"date"`
	Time       string            `gorm:"type:varchar(5);not null" json:"time"`
	Status     AppointmentStatus `gorm:"type:varchar(20);not null;default:'upcoming';index" json:"status"`
	Reason     string            `gorm:"type:text;not null" json:"reason"`
	Notes      string            `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt  time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor   DoctorProfile    `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Patient  User             `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Location PracticeLocation `gorm:"foreignKey:LocationID" json:"location,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsCancelled checks if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

// Cancel changes appointment status to cancelled
func (a *Appointment) Cancel() {
	a.Status = AppointmentStatusCancelled
}

// StartsAt combines Date and Time into a single instant.
func (a *Appointment) StartsAt() time.Time {
	t, err := time.Parse("15:04", a.Time)
	if err != nil {
		if t, err = time.Parse("15:04:05", a.Time); err != nil {
			return a.Date
		}
	}
	return time.Date(a.Date.Year(), a.Date.Month(), a.Date.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)
}

// EffectiveStatus resolves "completed" on read: an upcoming appointment whose
// start has passed is reported as completed without mutating the stored row.
func (a *Appointment) EffectiveStatus(now time.Time) AppointmentStatus {
	if a.Status == AppointmentStatusUpcoming && a.StartsAt().Before(now) {
		return AppointmentStatusCompleted
	}
	return a.Status
}
