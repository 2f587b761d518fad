package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RegisterDoctorRequest is step 1 of doctor onboarding
type RegisterDoctorRequest struct {
	Email                     string `json:"email" validate:"required,email"`
	Password                  string `json:"password" validate:"required,password"`
	FullName                  string `json:"full_name" validate:"required,min=2"`
	Phone                     string `json:"phone" validate:"required,phone"`
	MedicalRegistrationNumber string `json:"medical_registration_number" validate:"required,min=5"`
}

type RegisterPatientRequest struct {
	FullName    string `json:"full_name" validate:"required,min=2"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,password"`
	Phone       string `json:"phone" validate:"required,phone"`
	DateOfBirth string `json:"date_of_birth" validate:"required"` // Format: YYYY-MM-DD
	Gender      string `json:"gender" validate:"required,oneof=male female other"`
	Address     string `json:"address" validate:"required,min=10"`
}

// Response DTOs

type TokenResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	ExpiresIn    int64         `json:"expires_in"`
	User         *UserResponse `json:"user,omitempty"`
}

type UserResponse struct {
	ID                        uuid.UUID  `json:"id"`
	Email                     string     `json:"email"`
	FullName                  string     `json:"full_name"`
	Role                      string     `json:"role"`
	Phone                     string     `json:"phone,omitempty"`
	MedicalRegistrationNumber string     `json:"medical_registration_number,omitempty"`
	DateOfBirth               *time.Time `json:"date_of_birth,omitempty"`
	Gender                    string     `json:"gender,omitempty"`
	Address                   string     `json:"address,omitempty"`
	CreatedAt                 time.Time  `json:"created_at"`
	UpdatedAt                 time.Time  `json:"updated_at"`
}
