package entity

import (
	"time"

	"github.com/google/uuid"
)

// PracticeLocation is a place where a doctor sees patients. A doctor may
// practice at several locations, each with its own weekly schedule.
type PracticeLocation struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID  uuid.UUID `gorm:"type:uuid;not null;index" json:"doctor_id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Address   string    `gorm:"type:text;not null" json:"address"`
	Phone     string    `gorm:"type:varchar(20);not null" json:"phone"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor         DoctorProfile           `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	WeeklySchedule []WeeklyScheduleEntry   `gorm:"foreignKey:LocationID" json:"weekly_schedule,omitempty"`
	Exceptions     []AvailabilityException `gorm:"foreignKey:LocationID" json:"exceptions,omitempty"`
}

func (PracticeLocation) TableName() string {
	return "practice_locations"
}
