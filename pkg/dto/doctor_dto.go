package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

// SetupProfileRequest is step 2 of doctor onboarding
type SetupProfileRequest struct {
	Specialization    string          `json:"specialization" validate:"required"`
	YearsOfExperience int             `json:"years_of_experience" validate:"gte=0,lte=50"`
	ClinicName        string          `json:"clinic_name" validate:"required,min=2"`
	Address           string          `json:"address" validate:"required,min=10"`
	ConsultationFee   decimal.Decimal `json:"consultation_fee" validate:"omitempty"`
	ProfilePhoto      string          `json:"profile_photo" validate:"omitempty"`
}

// Response DTOs

type DoctorResponse struct {
	ID                        uuid.UUID          `json:"id"`
	Email                     string             `json:"email"`
	FullName                  string             `json:"full_name"`
	Phone                     string             `json:"phone,omitempty"`
	MedicalRegistrationNumber string             `json:"medical_registration_number"`
	Specialization            string             `json:"specialization"`
	YearsOfExperience         int                `json:"years_of_experience"`
	ClinicName                string             `json:"clinic_name,omitempty"`
	ClinicAddress             string             `json:"clinic_address,omitempty"`
	ConsultationFee           decimal.Decimal    `json:"consultation_fee"`
	OnboardingStatus          string             `json:"onboarding_status"`
	Locations                 []LocationResponse `json:"locations,omitempty"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}

type OnboardingStatusResponse struct {
	Status string `json:"status"`
}
