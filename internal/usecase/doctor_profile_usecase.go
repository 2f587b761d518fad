package usecase

import (
	"context"
	"errors"

	"schedula/internal/converter"
	"schedula/internal/delivery/http/middleware"
	"schedula/internal/domain/entity"
	"schedula/internal/domain/repository"
	"schedula/internal/service"
	"schedula/pkg/dto"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrDoctorNotFound    = errors.New("doctor not found")
	ErrProfileIncomplete = errors.New("profile setup is not complete")
	ErrNoLocations       = errors.New("at least one practice location is required")
	ErrOnboardingDone    = errors.New("onboarding already completed")
	ErrUserNotInContext  = errors.New("user not found in context")
)

// Specializations is the fixed list offered during profile setup.
var Specializations = []string{
	"Anesthesiology", "Cardiology", "Dermatology", "Emergency Medicine",
	"Endocrinology", "Family Medicine", "Gastroenterology", "General Surgery",
	"Hematology", "Infectious Disease", "Internal Medicine", "Nephrology",
	"Neurology", "Neurosurgery", "Obstetrics and Gynecology", "Oncology",
	"Ophthalmology", "Orthopedics", "Otolaryngology", "Pathology",
	"Pediatrics", "Plastic Surgery", "Psychiatry", "Pulmonology",
	"Radiology", "Rheumatology", "Urology",
}

type DoctorProfileUsecase interface {
	SetupProfile(ctx context.Context, req *dto.SetupProfileRequest) (*dto.DoctorResponse, error)
	GetDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error)
	GetAvailableDoctors(ctx context.Context, specialization string) (*dto.DoctorListResponse, error)
	GetSpecializations(ctx context.Context) []string
	CompleteOnboarding(ctx context.Context) (*dto.OnboardingStatusResponse, error)
}

type doctorProfileUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	doctorProfileRepo repository.DoctorProfileRepository
	locationRepo      repository.LocationRepository
	auditService      service.AuditService
}

func NewDoctorProfileUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorProfileRepo repository.DoctorProfileRepository,
	locationRepo repository.LocationRepository,
	auditService service.AuditService,
) DoctorProfileUsecase {
	return &doctorProfileUsecase{
		db:                db,
		log:               log,
		doctorProfileRepo: doctorProfileRepo,
		locationRepo:      locationRepo,
		auditService:      auditService,
	}
}

// SetupProfile fills in the professional details of the signed-in doctor;
// step 2 of onboarding. The profile row already exists from registration.
func (u *doctorProfileUsecase) SetupProfile(ctx context.Context, req *dto.SetupProfileRequest) (*dto.DoctorResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUserNotInContext
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.doctorProfileRepo.FindByUserID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}

	old := converter.DoctorProfileToResponse(profile)

	profile.Specialization = req.Specialization
	profile.YearsOfExperience = req.YearsOfExperience
	profile.ClinicName = req.ClinicName
	profile.ClinicAddress = req.Address
	profile.ConsultationFee = req.ConsultationFee
	if req.ProfilePhoto != "" {
		profile.User.ProfilePhoto = req.ProfilePhoto
	}

	if err := u.doctorProfileRepo.Update(tx, profile); err != nil {
		u.log.Warnf("Failed to update doctor profile: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionProfileUpdate, "doctor_profile", userID.String(), old, converter.DoctorProfileToResponse(profile)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.DoctorProfileToResponse(profile), nil
}

func (u *doctorProfileUsecase) GetDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error) {
	profile, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}

	return converter.DoctorProfileToResponse(profile), nil
}

// GetAvailableDoctors lists active doctors, optionally narrowed by a
// case-insensitive specialization substring, with nested locations.
func (u *doctorProfileUsecase) GetAvailableDoctors(ctx context.Context, specialization string) (*dto.DoctorListResponse, error) {
	profiles, err := u.doctorProfileRepo.FindAvailable(u.db.WithContext(ctx), specialization)
	if err != nil {
		u.log.Warnf("Failed to find available doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorProfilesToResponses(profiles),
		Total:   len(profiles),
	}, nil
}

func (u *doctorProfileUsecase) GetSpecializations(ctx context.Context) []string {
	return Specializations
}

// CompleteOnboarding is the final onboarding step: requires the profile to be
// filled and at least one practice location, then moves the doctor into
// pending verification.
func (u *doctorProfileUsecase) CompleteOnboarding(ctx context.Context) (*dto.OnboardingStatusResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUserNotInContext
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.doctorProfileRepo.FindByUserID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}
	if profile.OnboardingStatus == entity.OnboardingPendingVerification {
		return nil, ErrOnboardingDone
	}
	if !profile.IsProfileComplete() {
		return nil, ErrProfileIncomplete
	}

	locations, err := u.locationRepo.FindByDoctorID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find locations: %+v", err)
		return nil, err
	}
	if len(locations) == 0 {
		return nil, ErrNoLocations
	}

	profile.OnboardingStatus = entity.OnboardingPendingVerification
	if err := u.doctorProfileRepo.Update(tx, profile); err != nil {
		u.log.Warnf("Failed to update doctor profile: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionOnboardingComplete, "doctor_profile", userID.String(), entity.OnboardingInProgress, entity.OnboardingPendingVerification); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return &dto.OnboardingStatusResponse{
		Status: string(entity.OnboardingPendingVerification),
	}, nil
}
