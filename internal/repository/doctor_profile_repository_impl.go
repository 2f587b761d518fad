package repository

import (
	"errors"

	"schedula/internal/domain/entity"
	domainRepo "schedula/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type doctorProfileRepository struct{}

func NewDoctorProfileRepository() domainRepo.DoctorProfileRepository {
	return &doctorProfileRepository{}
}

func (r *doctorProfileRepository) Create(db *gorm.DB, profile *entity.DoctorProfile) error {
	return db.Create(profile).Error
}

func (r *doctorProfileRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error) {
	var profile entity.DoctorProfile
	err := db.Preload("User").Preload("Locations").Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// FindAvailable returns profiles of active doctors, with their practice
// locations preloaded. A non-empty specialization narrows the result with a
// case-insensitive substring match.
func (r *doctorProfileRepository) FindAvailable(db *gorm.DB, specialization string) ([]entity.DoctorProfile, error) {
	var profiles []entity.DoctorProfile
	query := db.
		Joins("JOIN users ON users.id = doctor_profiles.user_id").
		Where("users.is_active = ?", true)

	if specialization != "" {
		query = query.Where("doctor_profiles.specialization ILIKE ?", "%"+specialization+"%")
	}

	err := query.
		Preload("User").Preload("Locations").
		Order("doctor_profiles.specialization ASC").
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *doctorProfileRepository) Update(db *gorm.DB, profile *entity.DoctorProfile) error {
	return db.Omit("User", "Locations").Save(profile).Error
}
