package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type BookAppointmentRequest struct {
	DoctorID   uuid.UUID `json:"doctor_id" validate:"required"`
	LocationID int       `json:"location_id" validate:"required,min=1"`
	Date       string    `json:"date" validate:"required"` // Format: YYYY-MM-DD
	Time       string    `json:"time" validate:"required"` // Format: HH:MM
	Reason     string    `json:"reason" validate:"required,min=10"`
}

type RescheduleAppointmentRequest struct {
	Date string `json:"date" validate:"required"`
	Time string `json:"time" validate:"required"`
}

// Response DTOs

type AppointmentResponse struct {
	ID         uuid.UUID         `json:"id"`
	DoctorID   uuid.UUID         `json:"doctor_id"`
	PatientID  uuid.UUID         `json:"patient_id"`
	LocationID int               `json:"location_id"`
	Date       string            `json:"date"`
	Time       string            `json:"time"`
	Status     string            `json:"status"`
	Reason     string            `json:"reason"`
	Notes      string            `json:"notes,omitempty"`
	Doctor     *DoctorResponse   `json:"doctor,omitempty"`
	Location   *LocationResponse `json:"location,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

type CancelAppointmentResponse struct {
	AppointmentID uuid.UUID `json:"appointment_id"`
	Status        string    `json:"status"`
}
