package entity

import "time"

// ExceptionType distinguishes full-day leave from a special session override.
type ExceptionType string

const (
	ExceptionLeave   ExceptionType = "leave"
	ExceptionSpecial ExceptionType = "special"
)

// AvailabilityException is a date-specific override of a location's weekly
// schedule. A "leave" blocks the whole day and carries no times; a "special"
// blocks the StartTime-EndTime window only.
type AvailabilityException struct {
	ID         int           `gorm:"primaryKey;autoIncrement" json:"id"`
	LocationID int           `gorm:"not null;index" json:"location_id"`
	Date       time.Time     `gorm:"type:date;not null;index" json:"date"`
	Type       ExceptionType `gorm:"type:varchar(10);not null" json:"type"`
	StartTime  string        `gorm:"type:varchar(5)" json:"start_time,omitempty"`
	EndTime    string        `gorm:"type:varchar(5)" json:"end_time,omitempty"`
	Reason     string        `gorm:"type:text" json:"reason,omitempty"`
	CreatedAt  time.Time     `gorm:"autoCreateTime" json:"created_at"`
}

func (AvailabilityException) TableName() string {
	return "availability_exceptions"
}

// CoversWholeDay reports whether the exception removes the entire day.
func (e *AvailabilityException) CoversWholeDay() bool {
	return e.Type == ExceptionLeave
}
