package usecase

import (
	"context"
	"testing"

	"schedula/pkg/dto"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthUsecaseForTest(t *testing.T) (AuthUsecase, *stubUserRepo, *stubDoctorProfileRepo, sqlmock.Sqlmock) {
	t.Helper()

	db, mock := newTestDB(t)
	userRepo := newStubUserRepo()
	profileRepo := newStubDoctorProfileRepo()
	u := NewAuthUsecase(db, newTestLogger(), userRepo, profileRepo, &stubAuditService{}, newTestJWTService(), newTestRedis(t))
	return u, userRepo, profileRepo, mock
}

func TestRegisterPatientThenLogin(t *testing.T) {
	u, userRepo, _, mock := newAuthUsecaseForTest(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	req := &dto.RegisterPatientRequest{
		FullName:    "Jane Smith",
		Email:       "jane@example.com",
		Password:    "Password1",
		Phone:       "+6281234567890",
		DateOfBirth: "1990-04-02",
		Gender:      "female",
		Address:     "12 Harbor Street, Springfield",
	}

	user, err := u.RegisterPatient(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", user.Email)
	assert.Equal(t, "patient", user.Role)

	// The stored password is a hash, never the plaintext.
	stored := userRepo.byEmail["jane@example.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "Password1", stored.Password)

	tokens, err := u.Login(context.Background(), &dto.LoginRequest{
		Email:    "jane@example.com",
		Password: "Password1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	require.NotNil(t, tokens.User)
	assert.Equal(t, user.ID, tokens.User.ID)
}

func TestRegisterPatientDuplicateEmail(t *testing.T) {
	u, userRepo, _, mock := newAuthUsecaseForTest(t)
	mock.ExpectBegin()
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectRollback()

	req := &dto.RegisterPatientRequest{
		FullName:    "Jane Smith",
		Email:       "jane@example.com",
		Password:    "Password1",
		Phone:       "+6281234567890",
		DateOfBirth: "1990-04-02",
		Gender:      "female",
		Address:     "12 Harbor Street, Springfield",
	}

	_, err := u.RegisterPatient(context.Background(), req)
	require.NoError(t, err)

	second := *req
	second.FullName = "Someone Else"
	_, err = u.RegisterPatient(context.Background(), &second)
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)

	// Idempotent rejection: no second row, original untouched.
	assert.Len(t, userRepo.byEmail, 1)
	assert.Equal(t, "Jane Smith", userRepo.byEmail["jane@example.com"].FullName)
}

func TestRegisterPatientInvalidDateOfBirth(t *testing.T) {
	u, _, _, _ := newAuthUsecaseForTest(t)

	_, err := u.RegisterPatient(context.Background(), &dto.RegisterPatientRequest{
		FullName:    "Jane Smith",
		Email:       "jane@example.com",
		Password:    "Password1",
		Phone:       "+6281234567890",
		DateOfBirth: "02-04-1990",
		Gender:      "female",
		Address:     "12 Harbor Street, Springfield",
	})

	assert.ErrorIs(t, err, ErrInvalidDateFormat)
}

func TestRegisterDoctorCreatesProfileAndIssuesTokens(t *testing.T) {
	u, _, profileRepo, mock := newAuthUsecaseForTest(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	tokens, err := u.RegisterDoctor(context.Background(), &dto.RegisterDoctorRequest{
		Email:                     "doc@example.com",
		Password:                  "Password1",
		FullName:                  "Dr. Gregory House",
		Phone:                     "+6281234567890",
		MedicalRegistrationNumber: "MRN-12345",
	})
	require.NoError(t, err)

	// Tokens are issued immediately so onboarding continues authenticated.
	assert.NotEmpty(t, tokens.AccessToken)
	require.NotNil(t, tokens.User)
	assert.Equal(t, "doctor", tokens.User.Role)
	assert.Equal(t, "MRN-12345", tokens.User.MedicalRegistrationNumber)

	profile := profileRepo.byUserID[tokens.User.ID]
	require.NotNil(t, profile)
	assert.Equal(t, "MRN-12345", profile.MedicalRegistrationNumber)
}

func TestRegisterDoctorDuplicateRegistrationNumber(t *testing.T) {
	u, _, _, mock := newAuthUsecaseForTest(t)
	mock.ExpectBegin()
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectRollback()

	first := &dto.RegisterDoctorRequest{
		Email:                     "doc@example.com",
		Password:                  "Password1",
		FullName:                  "Dr. Gregory House",
		Phone:                     "+6281234567890",
		MedicalRegistrationNumber: "MRN-12345",
	}
	_, err := u.RegisterDoctor(context.Background(), first)
	require.NoError(t, err)

	second := *first
	second.Email = "other@example.com"
	_, err = u.RegisterDoctor(context.Background(), &second)
	assert.ErrorIs(t, err, ErrRegistrationNumberExists)
}

func TestLoginFailureIsUniform(t *testing.T) {
	u, _, _, mock := newAuthUsecaseForTest(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	_, err := u.RegisterPatient(context.Background(), &dto.RegisterPatientRequest{
		FullName:    "Jane Smith",
		Email:       "jane@example.com",
		Password:    "Password1",
		Phone:       "+6281234567890",
		DateOfBirth: "1990-04-02",
		Gender:      "female",
		Address:     "12 Harbor Street, Springfield",
	})
	require.NoError(t, err)

	// Unknown email and wrong password fail identically, so callers cannot
	// tell which accounts exist.
	_, unknownErr := u.Login(context.Background(), &dto.LoginRequest{
		Email:    "invalid@example.com",
		Password: "Password1",
	})
	_, wrongErr := u.Login(context.Background(), &dto.LoginRequest{
		Email:    "jane@example.com",
		Password: "WrongPass1",
	})

	assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, ErrInvalidCredentials)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestRefreshTokenRotatesPair(t *testing.T) {
	u, _, _, mock := newAuthUsecaseForTest(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	_, err := u.RegisterPatient(context.Background(), &dto.RegisterPatientRequest{
		FullName:    "Jane Smith",
		Email:       "jane@example.com",
		Password:    "Password1",
		Phone:       "+6281234567890",
		DateOfBirth: "1990-04-02",
		Gender:      "female",
		Address:     "12 Harbor Street, Springfield",
	})
	require.NoError(t, err)

	tokens, err := u.Login(context.Background(), &dto.LoginRequest{Email: "jane@example.com", Password: "Password1"})
	require.NoError(t, err)

	refreshed, err := u.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	// The old refresh token was revoked by the rotation.
	_, err = u.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestRefreshTokenRejectsAccessToken(t *testing.T) {
	u, _, _, mock := newAuthUsecaseForTest(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	_, err := u.RegisterPatient(context.Background(), &dto.RegisterPatientRequest{
		FullName:    "Jane Smith",
		Email:       "jane@example.com",
		Password:    "Password1",
		Phone:       "+6281234567890",
		DateOfBirth: "1990-04-02",
		Gender:      "female",
		Address:     "12 Harbor Street, Springfield",
	})
	require.NoError(t, err)

	tokens, err := u.Login(context.Background(), &dto.LoginRequest{Email: "jane@example.com", Password: "Password1"})
	require.NoError(t, err)

	_, err = u.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: tokens.AccessToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}
