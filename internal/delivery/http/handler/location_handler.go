package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"schedula/internal/usecase"
	"schedula/pkg/dto"
	"schedula/pkg/response"
	"schedula/pkg/validator"

	"github.com/gorilla/mux"
)

type LocationHandler struct {
	locationUsecase usecase.LocationUsecase
	validator       *validator.CustomValidator
}

func NewLocationHandler(locationUsecase usecase.LocationUsecase, validator *validator.CustomValidator) *LocationHandler {
	return &LocationHandler{
		locationUsecase: locationUsecase,
		validator:       validator,
	}
}

// CreateLocation adds a practice location for the authenticated doctor
// @Summary Create practice location
// @Description Add a practice location seeded with a default weekly schedule
// @Tags Locations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateLocationRequest true "Create Location Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /doctors/locations [post]
func (h *LocationHandler) CreateLocation(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	location, err := h.locationUsecase.CreateLocation(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrUserNotInContext:
			response.Unauthorized(w, "Invalid token")
		default:
			response.InternalServerError(w, "Failed to create location")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Location created successfully", location)
}

// ListMyLocations lists the authenticated doctor's practice locations
// @Summary List my locations
// @Tags Locations
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /doctors/locations [get]
func (h *LocationHandler) ListMyLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.locationUsecase.ListMyLocations(r.Context())
	if err != nil {
		switch err {
		case usecase.ErrUserNotInContext:
			response.Unauthorized(w, "Invalid token")
		default:
			response.InternalServerError(w, "Failed to get locations")
		}
		return
	}

	response.Success(w, http.StatusOK, "Locations retrieved successfully", locations)
}

// SetAvailability replaces a location's weekly schedule and exceptions
// @Summary Set location availability
// @Tags Locations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Location ID"
// @Param request body dto.SetAvailabilityRequest true "Set Availability Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctors/locations/{id}/availability [put]
func (h *LocationHandler) SetAvailability(w http.ResponseWriter, r *http.Request) {
	locationID, err := parseIntVar(mux.Vars(r), "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid location ID", nil)
		return
	}

	var req dto.SetAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	availability, err := h.locationUsecase.SetAvailability(r.Context(), locationID, &req)
	if err != nil {
		switch err {
		case usecase.ErrLocationNotFound:
			response.NotFound(w, "Location not found")
		case usecase.ErrInvalidTimeFormat,
			usecase.ErrInvalidScheduleRange,
			usecase.ErrDuplicateScheduleDay,
			usecase.ErrSpecialNeedsTimes,
			usecase.ErrLeaveCarriesTimes,
			usecase.ErrInvalidDateFormat:
			response.Error(w, http.StatusUnprocessableEntity, err.Error(), nil)
		case usecase.ErrUserNotInContext:
			response.Unauthorized(w, "Invalid token")
		default:
			response.InternalServerError(w, "Failed to set availability")
		}
		return
	}

	response.Success(w, http.StatusOK, "Availability updated successfully", availability)
}

func parseIntVar(vars map[string]string, name string) (int, error) {
	return strconv.Atoi(vars[name])
}
