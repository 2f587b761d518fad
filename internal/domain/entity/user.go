package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents the centralized authentication table. Role-specific data
// lives in DoctorProfile; patient demographics are stored inline since the
// patient side has no further onboarding.
type User struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RoleID      int        `gorm:"not null;index" json:"role_id"`
	Email       string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password    string     `gorm:"type:text;not null" json:"-"`
	FullName    string     `gorm:"type:varchar(255);not null" json:"full_name"`
	Phone       string     `gorm:"type:varchar(20)" json:"phone,omitempty"`
	DateOfBirth *time.Time `gorm:"type:date" json:"date_of_birth,omitempty"`
	Gender      string     `gorm:"type:varchar(10)" json:"gender,omitempty"`
	Address     string     `gorm:"type:text" json:"address,omitempty"`
	ProfilePhoto string    `gorm:"type:text" json:"profile_photo,omitempty"`
	IsActive    *bool      `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Role          Role           `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	DoctorProfile *DoctorProfile `gorm:"foreignKey:UserID" json:"doctor_profile,omitempty"`
}

func (User) TableName() string {
	return "users"
}
