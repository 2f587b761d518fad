package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"schedula/internal/usecase"
	"schedula/pkg/dto"
	"schedula/pkg/validator"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAuthUsecase lets each test dictate the usecase outcome.
type stubAuthUsecase struct {
	loginErr            error
	registerPatientErr  error
	registeredPatients  int
	registerDoctorErr   error
	registerDoctorCalls int
}

func (s *stubAuthUsecase) RegisterDoctor(_ context.Context, _ *dto.RegisterDoctorRequest) (*dto.TokenResponse, error) {
	s.registerDoctorCalls++
	if s.registerDoctorErr != nil {
		return nil, s.registerDoctorErr
	}
	return &dto.TokenResponse{AccessToken: "access", RefreshToken: "refresh"}, nil
}

func (s *stubAuthUsecase) RegisterPatient(_ context.Context, req *dto.RegisterPatientRequest) (*dto.UserResponse, error) {
	if s.registerPatientErr != nil {
		return nil, s.registerPatientErr
	}
	s.registeredPatients++
	return &dto.UserResponse{ID: uuid.New(), Email: req.Email, FullName: req.FullName}, nil
}

func (s *stubAuthUsecase) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return &dto.TokenResponse{AccessToken: "access", RefreshToken: "refresh"}, nil
}

func (s *stubAuthUsecase) Logout(_ context.Context, _, _ string) error {
	return nil
}

func (s *stubAuthUsecase) RefreshToken(_ context.Context, _ *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	return &dto.TokenResponse{AccessToken: "access", RefreshToken: "refresh"}, nil
}

func (s *stubAuthUsecase) GetCurrentUser(_ context.Context, _ uuid.UUID) (*dto.UserResponse, error) {
	return nil, usecase.ErrUserNotFound
}

type envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    json.RawMessage     `json:"data"`
	Errors  map[string][]string `json:"errors"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func newAuthHandlerForTest(stub *stubAuthUsecase) *AuthHandler {
	return NewAuthHandler(stub, validator.NewValidator(), nil)
}

func TestRegisterPatientMissingAddress(t *testing.T) {
	stub := &stubAuthUsecase{}
	h := newAuthHandlerForTest(stub)

	body := `{
		"full_name": "Jane Smith",
		"email": "jane@example.com",
		"password": "Password1",
		"phone": "+6281234567890",
		"date_of_birth": "1990-04-02",
		"gender": "female"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/patients/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.RegisterPatient(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
	require.Contains(t, env.Errors, "address")
	assert.NotEmpty(t, env.Errors["address"])
	// Validation failed before the usecase, so no account was created.
	assert.Equal(t, 0, stub.registeredPatients)
}

func TestRegisterPatientDuplicateEmailConflict(t *testing.T) {
	stub := &stubAuthUsecase{registerPatientErr: usecase.ErrEmailAlreadyExists}
	h := newAuthHandlerForTest(stub)

	body := `{
		"full_name": "Jane Smith",
		"email": "jane@example.com",
		"password": "Password1",
		"phone": "+6281234567890",
		"date_of_birth": "1990-04-02",
		"gender": "female",
		"address": "12 Harbor Street, Springfield"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/patients/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.RegisterPatient(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, "Email already exists", env.Message)
}

func TestLoginInvalidCredentials(t *testing.T) {
	stub := &stubAuthUsecase{loginErr: usecase.ErrInvalidCredentials}
	h := newAuthHandlerForTest(stub)

	body := `{"email": "invalid@example.com", "password": "Whatever1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, "Invalid email or password", env.Message)
}

func TestLoginMalformedBody(t *testing.T) {
	h := newAuthHandlerForTest(&stubAuthUsecase{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader("{"))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterDoctorWeakPassword(t *testing.T) {
	stub := &stubAuthUsecase{}
	h := newAuthHandlerForTest(stub)

	body := `{
		"email": "doc@example.com",
		"password": "alllowercase1",
		"full_name": "Dr. Gregory House",
		"phone": "+6281234567890",
		"medical_registration_number": "MRN-12345"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/doctors/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.RegisterDoctor(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	require.Contains(t, env.Errors, "password")
	assert.Equal(t, 0, stub.registerDoctorCalls)
}
