package handler

import (
	"encoding/json"
	"net/http"

	"schedula/internal/usecase"
	"schedula/pkg/dto"
	"schedula/pkg/response"
	"schedula/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type DoctorHandler struct {
	doctorUsecase   usecase.DoctorProfileUsecase
	locationUsecase usecase.LocationUsecase
	validator       *validator.CustomValidator
}

func NewDoctorHandler(doctorUsecase usecase.DoctorProfileUsecase, locationUsecase usecase.LocationUsecase, validator *validator.CustomValidator) *DoctorHandler {
	return &DoctorHandler{
		doctorUsecase:   doctorUsecase,
		locationUsecase: locationUsecase,
		validator:       validator,
	}
}

// SetupProfile handles doctor professional profile setup
// @Summary Set up doctor profile
// @Description Fill in specialization, experience and clinic details for the authenticated doctor
// @Tags Doctors
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.SetupProfileRequest true "Setup Profile Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctors/profile [put]
func (h *DoctorHandler) SetupProfile(w http.ResponseWriter, r *http.Request) {
	var req dto.SetupProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	doctor, err := h.doctorUsecase.SetupProfile(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrUserNotInContext:
			response.Unauthorized(w, "Invalid token")
		default:
			response.InternalServerError(w, "Failed to set up profile")
		}
		return
	}

	response.Success(w, http.StatusOK, "Profile updated successfully", doctor)
}

// GetSpecializations returns the list of selectable specializations
// @Summary List specializations
// @Tags Doctors
// @Produce json
// @Success 200 {object} response.Response
// @Router /doctors/specializations [get]
func (h *DoctorHandler) GetSpecializations(w http.ResponseWriter, r *http.Request) {
	specializations := h.doctorUsecase.GetSpecializations(r.Context())
	response.Success(w, http.StatusOK, "Specializations retrieved successfully", specializations)
}

// GetAvailableDoctors lists bookable doctors, optionally filtered by specialization
// @Summary List available doctors
// @Tags Doctors
// @Produce json
// @Param specialization query string false "Specialization filter"
// @Success 200 {object} response.Response
// @Router /doctors/available [get]
func (h *DoctorHandler) GetAvailableDoctors(w http.ResponseWriter, r *http.Request) {
	specialization := r.URL.Query().Get("specialization")

	doctors, err := h.doctorUsecase.GetAvailableDoctors(r.Context(), specialization)
	if err != nil {
		response.InternalServerError(w, "Failed to get doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

// GetDoctor returns a single doctor's public profile
// @Summary Get doctor by ID
// @Tags Doctors
// @Produce json
// @Param id path string true "Doctor ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctors/{id} [get]
func (h *DoctorHandler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	doctor, err := h.doctorUsecase.GetDoctor(r.Context(), doctorID)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to get doctor")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctor retrieved successfully", doctor)
}

// GetDoctorSlots returns computed open slots for a doctor's location on a date
// @Summary Get available slots
// @Tags Doctors
// @Produce json
// @Param id path string true "Doctor ID"
// @Param locationId path int true "Location ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctors/{id}/locations/{locationId}/availability [get]
func (h *DoctorHandler) GetDoctorSlots(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	locationID, err := parseIntVar(vars, "locationId")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid location ID", nil)
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		response.Error(w, http.StatusBadRequest, "Query parameter 'date' is required", nil)
		return
	}

	slots, err := h.locationUsecase.GetAvailableSlots(r.Context(), doctorID, locationID, date)
	if err != nil {
		switch err {
		case usecase.ErrLocationNotFound:
			response.NotFound(w, "Location not found")
		case usecase.ErrInvalidDateFormat:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to get available slots")
		}
		return
	}

	response.Success(w, http.StatusOK, "Available slots retrieved successfully", slots)
}

// CompleteOnboarding finalizes the doctor onboarding flow
// @Summary Complete onboarding
// @Tags Doctors
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /doctors/complete-onboarding [post]
func (h *DoctorHandler) CompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	status, err := h.doctorUsecase.CompleteOnboarding(r.Context())
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrProfileIncomplete, usecase.ErrNoLocations:
			response.Error(w, http.StatusUnprocessableEntity, err.Error(), nil)
		case usecase.ErrOnboardingDone:
			response.Error(w, http.StatusConflict, "Onboarding already completed", nil)
		case usecase.ErrUserNotInContext:
			response.Unauthorized(w, "Invalid token")
		default:
			response.InternalServerError(w, "Failed to complete onboarding")
		}
		return
	}

	response.Success(w, http.StatusOK, "Onboarding submitted for verification", status)
}
