package usecase

import (
	"context"
	"testing"

	"schedula/internal/domain/entity"
	"schedula/pkg/dto"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDoctorUsecaseForTest(t *testing.T) (DoctorProfileUsecase, *stubDoctorProfileRepo, *stubLocationRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newTestDB(t)
	profileRepo := newStubDoctorProfileRepo()
	locationRepo := newStubLocationRepo()
	u := NewDoctorProfileUsecase(db, newTestLogger(), profileRepo, locationRepo, &stubAuditService{})
	return u, profileRepo, locationRepo, mock
}

func seedDoctor(repo *stubDoctorProfileRepo, userID uuid.UUID) *entity.DoctorProfile {
	profile := &entity.DoctorProfile{
		UserID:                    userID,
		MedicalRegistrationNumber: "MRN-" + userID.String()[:8],
		OnboardingStatus:          entity.OnboardingInProgress,
	}
	repo.byUserID[userID] = profile
	return profile
}

func TestSetupProfileUpdatesFields(t *testing.T) {
	u, profileRepo, _, mock := newDoctorUsecaseForTest(t)
	doctorID := uuid.New()
	seedDoctor(profileRepo, doctorID)

	mock.ExpectBegin()
	mock.ExpectCommit()

	doctor, err := u.SetupProfile(ctxWithUser(doctorID), &dto.SetupProfileRequest{
		Specialization:    "Cardiology",
		YearsOfExperience: 12,
		ClinicName:        "Heart Clinic",
		Address:           "1 Clinic Road, Springfield",
		ConsultationFee:   decimal.NewFromInt(150),
	})
	require.NoError(t, err)

	assert.Equal(t, "Cardiology", doctor.Specialization)
	assert.Equal(t, "Heart Clinic", doctor.ClinicName)

	stored := profileRepo.byUserID[doctorID]
	assert.Equal(t, 12, stored.YearsOfExperience)
	assert.True(t, stored.ConsultationFee.Equal(decimal.NewFromInt(150)))
	// Onboarding does not advance until complete-onboarding is called.
	assert.Equal(t, entity.OnboardingInProgress, stored.OnboardingStatus)
}

func TestSetupProfileUnknownDoctor(t *testing.T) {
	u, _, _, mock := newDoctorUsecaseForTest(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := u.SetupProfile(ctxWithUser(uuid.New()), &dto.SetupProfileRequest{
		Specialization: "Cardiology",
		ClinicName:     "Heart Clinic",
		Address:        "1 Clinic Road, Springfield",
	})
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestCompleteOnboardingRequiresProfile(t *testing.T) {
	u, profileRepo, locationRepo, mock := newDoctorUsecaseForTest(t)
	doctorID := uuid.New()
	seedDoctor(profileRepo, doctorID)
	locationRepo.Create(nil, &entity.PracticeLocation{DoctorID: doctorID, Name: "Main Clinic"})

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := u.CompleteOnboarding(ctxWithUser(doctorID))
	assert.ErrorIs(t, err, ErrProfileIncomplete)
}

func TestCompleteOnboardingRequiresLocation(t *testing.T) {
	u, profileRepo, _, mock := newDoctorUsecaseForTest(t)
	doctorID := uuid.New()
	profile := seedDoctor(profileRepo, doctorID)
	profile.Specialization = "Cardiology"
	profile.ClinicName = "Heart Clinic"

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := u.CompleteOnboarding(ctxWithUser(doctorID))
	assert.ErrorIs(t, err, ErrNoLocations)
}

func TestCompleteOnboardingFlipsStatusOnce(t *testing.T) {
	u, profileRepo, locationRepo, mock := newDoctorUsecaseForTest(t)
	doctorID := uuid.New()
	profile := seedDoctor(profileRepo, doctorID)
	profile.Specialization = "Cardiology"
	profile.ClinicName = "Heart Clinic"
	locationRepo.Create(nil, &entity.PracticeLocation{DoctorID: doctorID, Name: "Main Clinic"})

	mock.ExpectBegin()
	mock.ExpectCommit()

	status, err := u.CompleteOnboarding(ctxWithUser(doctorID))
	require.NoError(t, err)
	assert.Equal(t, string(entity.OnboardingPendingVerification), status.Status)
	assert.Equal(t, entity.OnboardingPendingVerification, profileRepo.byUserID[doctorID].OnboardingStatus)

	// Completing twice is a conflict.
	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = u.CompleteOnboarding(ctxWithUser(doctorID))
	assert.ErrorIs(t, err, ErrOnboardingDone)
}

func TestGetSpecializationsIsStable(t *testing.T) {
	u, _, _, _ := newDoctorUsecaseForTest(t)

	first := u.GetSpecializations(context.Background())
	second := u.GetSpecializations(context.Background())

	require.NotEmpty(t, first)
	assert.Equal(t, first, second)
	assert.Contains(t, first, "Cardiology")
}
