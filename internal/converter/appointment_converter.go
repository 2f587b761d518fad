package converter

import (
	"time"

	"schedula/internal/domain/entity"
	"schedula/pkg/dto"

	"github.com/google/uuid"
)

// AppointmentToStoredResponse converts an Appointment entity to
// AppointmentResponse DTO, reporting the status exactly as persisted. Write
// paths use this so a freshly booked row always reads back "upcoming".
func AppointmentToStoredResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:         appointment.ID,
		DoctorID:   appointment.DoctorID,
		PatientID:  appointment.PatientID,
		LocationID: appointment.LocationID,
		Date:       appointment.Date.Format("2006-01-02"),
		Time:       appointment.Time,
		Status:     string(appointment.Status),
		Reason:     appointment.Reason,
		Notes:      appointment.Notes,
		CreatedAt:  appointment.CreatedAt,
		UpdatedAt:  appointment.UpdatedAt,
	}

	if appointment.Doctor.UserID != uuid.Nil {
		response.Doctor = DoctorProfileToResponse(&appointment.Doctor)
	}
	if appointment.Location.ID != 0 {
		response.Location = LocationToResponse(&appointment.Location)
	}

	return response
}

// AppointmentToResponse converts an Appointment entity to AppointmentResponse
// DTO, resolving "completed" on read against now.
func AppointmentToResponse(appointment *entity.Appointment, now time.Time) *dto.AppointmentResponse {
	response := AppointmentToStoredResponse(appointment)
	if response != nil {
		response.Status = string(appointment.EffectiveStatus(now))
	}
	return response
}

// AppointmentsToResponses converts a slice of Appointment entities
func AppointmentsToResponses(appointments []entity.Appointment, now time.Time) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i], now)
	}
	return responses
}
