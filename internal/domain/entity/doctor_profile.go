package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OnboardingStatus tracks how far a doctor has progressed through setup
type OnboardingStatus string

const (
	OnboardingInProgress          OnboardingStatus = "in_progress"
	OnboardingPendingVerification OnboardingStatus = "pending_verification"
)

// DoctorProfile represents doctor-specific profile data
type DoctorProfile struct {
	UserID                    uuid.UUID        `gorm:"type:uuid;primaryKey" json:"user_id"`
	MedicalRegistrationNumber string           `gorm:"column:medical_registration_number;type:varchar(50);uniqueIndex;not null" json:"medical_registration_number"`
	Specialization            string           `gorm:"type:varchar(100);index" json:"specialization"`
	YearsOfExperience         int              `gorm:"default:0" json:"years_of_experience"`
	ClinicName                string           `gorm:"type:varchar(255)" json:"clinic_name"`
	ClinicAddress             string           `gorm:"type:text" json:"clinic_address"`
	ConsultationFee           decimal.Decimal  `gorm:"type:decimal(10,2);default:0" json:"consultation_fee"`
	OnboardingStatus          OnboardingStatus `gorm:"type:varchar(30);not null;default:'in_progress'" json:"onboarding_status"`

	// Relationships
	User      User               `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Locations []PracticeLocation `gorm:"foreignKey:DoctorID" json:"locations,omitempty"`
}

func (DoctorProfile) TableName() string {
	return "doctor_profiles"
}

// IsProfileComplete reports whether the profile step of onboarding was done.
func (p *DoctorProfile) IsProfileComplete() bool {
	return p.Specialization != "" && p.ClinicName != ""
}
