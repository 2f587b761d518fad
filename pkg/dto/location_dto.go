package dto

import "github.com/google/uuid"

// Request DTOs

type CreateLocationRequest struct {
	Name    string `json:"name" validate:"required,min=2"`
	Address string `json:"address" validate:"required,min=10"`
	Phone   string `json:"phone" validate:"required,phone"`
}

type WeeklyScheduleEntryRequest struct {
	Day         string `json:"day" validate:"required,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	StartTime   string `json:"start_time" validate:"required"`
	EndTime     string `json:"end_time" validate:"required"`
	IsAvailable bool   `json:"is_available"`
}

type AvailabilityExceptionRequest struct {
	Date      string `json:"date" validate:"required"` // Format: YYYY-MM-DD
	Type      string `json:"type" validate:"required,oneof=leave special"`
	StartTime string `json:"start_time" validate:"omitempty"`
	EndTime   string `json:"end_time" validate:"omitempty"`
	Reason    string `json:"reason" validate:"omitempty"`
}

type SetAvailabilityRequest struct {
	WeeklySchedule []WeeklyScheduleEntryRequest   `json:"weekly_schedule" validate:"required,len=7,dive"`
	Exceptions     []AvailabilityExceptionRequest `json:"exceptions" validate:"dive"`
}

// Response DTOs

type LocationResponse struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

type LocationListResponse struct {
	Locations []LocationResponse `json:"locations"`
	Total     int                `json:"total"`
}

type WeeklyScheduleEntryResponse struct {
	Day         string `json:"day"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	IsAvailable bool   `json:"is_available"`
}

type AvailabilityExceptionResponse struct {
	Date      string `json:"date"`
	Type      string `json:"type"`
	StartTime string `json:"start_time,omitempty"`
	EndTime   string `json:"end_time,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

type LocationAvailabilityResponse struct {
	LocationID     int                             `json:"location_id"`
	WeeklySchedule []WeeklyScheduleEntryResponse   `json:"weekly_schedule"`
	Exceptions     []AvailabilityExceptionResponse `json:"exceptions"`
}

type AvailableSlotsResponse struct {
	DoctorID       uuid.UUID `json:"doctor_id"`
	LocationID     int       `json:"location_id"`
	Date           string    `json:"date"`
	AvailableTimes []string  `json:"available_times"`
}
