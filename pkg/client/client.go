package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"schedula/pkg/dto"

	"github.com/google/uuid"
)

// APIError is the typed form of a non-2xx envelope response.
type APIError struct {
	Status  int
	Message string
	Errors  map[string][]string
}

func (e *APIError) Error() string {
	if len(e.Errors) > 0 {
		return fmt.Sprintf("%s (status %d, %d field errors)", e.Message, e.Status, len(e.Errors))
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// FieldError returns the first message recorded for a field, if any.
func (e *APIError) FieldError(field string) string {
	if msgs, ok := e.Errors[field]; ok && len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// envelope mirrors the server's response wrapper.
type envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    json.RawMessage     `json:"data"`
	Errors  map[string][]string `json:"errors"`
}

// Client is the HTTP API client. The session is injected at construction and
// the bearer token is attached whenever the session holds one.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *Session
}

type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func New(baseURL string, session *Session, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		session:    session,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session exposes the injected session, for callers that need token state.
func (c *Client) Session() *Session {
	return c.session
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.session.AccessToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return &APIError{Status: resp.StatusCode, Message: "unexpected response from server"}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !env.Success {
		return &APIError{Status: resp.StatusCode, Message: env.Message, Errors: env.Errors}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode response data: %w", err)
		}
	}
	return nil
}

// RegisterDoctor creates a doctor account and stores the returned tokens so
// the rest of onboarding runs authenticated.
func (c *Client) RegisterDoctor(ctx context.Context, req *dto.RegisterDoctorRequest) (*dto.TokenResponse, error) {
	var tokens dto.TokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/doctors/register", req, &tokens); err != nil {
		return nil, err
	}
	if err := c.session.SetTokens(tokens.AccessToken, tokens.RefreshToken); err != nil {
		return nil, err
	}
	return &tokens, nil
}

// RegisterPatient creates a patient account. No tokens are issued; the
// patient logs in afterwards.
func (c *Client) RegisterPatient(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.UserResponse, error) {
	var user dto.UserResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/patients/register", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login authenticates and stores tokens in the session.
func (c *Client) Login(ctx context.Context, email, password string) (*dto.TokenResponse, error) {
	var tokens dto.TokenResponse
	req := dto.LoginRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", &req, &tokens); err != nil {
		return nil, err
	}
	if err := c.session.SetTokens(tokens.AccessToken, tokens.RefreshToken); err != nil {
		return nil, err
	}
	return &tokens, nil
}

// Logout revokes the server-side tokens and clears the session. The session
// is cleared even when the server call fails.
func (c *Client) Logout(ctx context.Context) error {
	body := map[string]string{"refresh_token": c.session.RefreshToken()}
	err := c.do(ctx, http.MethodPost, "/api/v1/auth/logout", body, nil)
	if clearErr := c.session.Clear(); clearErr != nil && err == nil {
		err = clearErr
	}
	return err
}

// CurrentUser fetches the authenticated user's record.
func (c *Client) CurrentUser(ctx context.Context) (*dto.UserResponse, error) {
	var user dto.UserResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// SetupProfile submits the doctor's professional details.
func (c *Client) SetupProfile(ctx context.Context, req *dto.SetupProfileRequest) (*dto.DoctorResponse, error) {
	var doctor dto.DoctorResponse
	if err := c.do(ctx, http.MethodPut, "/api/v1/doctors/profile", req, &doctor); err != nil {
		return nil, err
	}
	return &doctor, nil
}

// GetSpecializations fetches the selectable specialization list.
func (c *Client) GetSpecializations(ctx context.Context) ([]string, error) {
	var specializations []string
	if err := c.do(ctx, http.MethodGet, "/api/v1/doctors/specializations", nil, &specializations); err != nil {
		return nil, err
	}
	return specializations, nil
}

// CreateLocation adds a practice location for the authenticated doctor.
func (c *Client) CreateLocation(ctx context.Context, req *dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	var location dto.LocationResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/doctors/locations", req, &location); err != nil {
		return nil, err
	}
	return &location, nil
}

// SetAvailability replaces a location's weekly schedule and exceptions.
func (c *Client) SetAvailability(ctx context.Context, locationID int, req *dto.SetAvailabilityRequest) (*dto.LocationAvailabilityResponse, error) {
	var availability dto.LocationAvailabilityResponse
	path := fmt.Sprintf("/api/v1/doctors/locations/%d/availability", locationID)
	if err := c.do(ctx, http.MethodPut, path, req, &availability); err != nil {
		return nil, err
	}
	return &availability, nil
}

// CompleteOnboarding finalizes doctor onboarding.
func (c *Client) CompleteOnboarding(ctx context.Context) (*dto.OnboardingStatusResponse, error) {
	var status dto.OnboardingStatusResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/doctors/complete-onboarding", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// GetAvailableDoctors lists bookable doctors, optionally filtered by
// specialization substring.
func (c *Client) GetAvailableDoctors(ctx context.Context, specialization string) (*dto.DoctorListResponse, error) {
	path := "/api/v1/doctors/available"
	if specialization != "" {
		path += "?specialization=" + url.QueryEscape(specialization)
	}
	var doctors dto.DoctorListResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &doctors); err != nil {
		return nil, err
	}
	return &doctors, nil
}

// GetAvailableSlots fetches the open slot times for a doctor's location on a
// date (YYYY-MM-DD).
func (c *Client) GetAvailableSlots(ctx context.Context, doctorID uuid.UUID, locationID int, date string) (*dto.AvailableSlotsResponse, error) {
	path := fmt.Sprintf("/api/v1/doctors/%s/locations/%d/availability?date=%s", doctorID, locationID, url.QueryEscape(date))
	var slots dto.AvailableSlotsResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &slots); err != nil {
		return nil, err
	}
	return &slots, nil
}

// ListAppointments fetches all of the authenticated patient's appointments.
func (c *Client) ListAppointments(ctx context.Context) (*dto.AppointmentListResponse, error) {
	var appointments dto.AppointmentListResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/patients/appointments", nil, &appointments); err != nil {
		return nil, err
	}
	return &appointments, nil
}

// BookAppointment books a slot for the authenticated patient.
func (c *Client) BookAppointment(ctx context.Context, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
	var appointment dto.AppointmentResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/patients/appointments", req, &appointment); err != nil {
		return nil, err
	}
	return &appointment, nil
}

// RescheduleAppointment moves an upcoming appointment to a new date and time.
func (c *Client) RescheduleAppointment(ctx context.Context, appointmentID uuid.UUID, req *dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error) {
	var appointment dto.AppointmentResponse
	path := fmt.Sprintf("/api/v1/patients/appointments/%s", appointmentID)
	if err := c.do(ctx, http.MethodPut, path, req, &appointment); err != nil {
		return nil, err
	}
	return &appointment, nil
}

// CancelAppointment cancels an appointment owned by the authenticated patient.
func (c *Client) CancelAppointment(ctx context.Context, appointmentID uuid.UUID) (*dto.CancelAppointmentResponse, error) {
	var result dto.CancelAppointmentResponse
	path := fmt.Sprintf("/api/v1/patients/appointments/%s", appointmentID)
	if err := c.do(ctx, http.MethodDelete, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
