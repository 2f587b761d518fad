package usecase

import (
	"context"
	"errors"
	"strconv"
	"time"

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
	ErrLocationNotFound     = errors.New("location not found")
	ErrInvalidTimeFormat    = errors.New("invalid time format, use HH:MM")
	ErrInvalidScheduleRange = errors.New("start time must be before end time on available days")
	ErrDuplicateScheduleDay = errors.New("weekly schedule must contain each day exactly once")
	ErrSpecialNeedsTimes    = errors.New("special exceptions require start and end times")
	ErrLeaveCarriesTimes    = errors.New("leave exceptions must not carry times")
)

type LocationUsecase interface {
	CreateLocation(ctx context.Context, req *dto.CreateLocationRequest) (*dto.LocationResponse, error)
	ListMyLocations(ctx context.Context) (*dto.LocationListResponse, error)
	SetAvailability(ctx context.Context, locationID int, req *dto.SetAvailabilityRequest) (*dto.LocationAvailabilityResponse, error)
	GetAvailableSlots(ctx context.Context, doctorID uuid.UUID, locationID int, date string) (*dto.AvailableSlotsResponse, error)
}

type locationUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	locationRepo    repository.LocationRepository
	scheduleRepo    repository.ScheduleRepository
	appointmentRepo repository.AppointmentRepository
	slotService     *service.SlotService
	auditService    service.AuditService
}

func NewLocationUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	locationRepo repository.LocationRepository,
	scheduleRepo repository.ScheduleRepository,
	appointmentRepo repository.AppointmentRepository,
	slotService *service.SlotService,
	auditService service.AuditService,
) LocationUsecase {
	return &locationUsecase{
		db:              db,
		log:             log,
		locationRepo:    locationRepo,
		scheduleRepo:    scheduleRepo,
		appointmentRepo: appointmentRepo,
		slotService:     slotService,
		auditService:    auditService,
	}
}

// CreateLocation adds a practice location for the signed-in doctor and seeds
// it with the default weekly schedule so slot queries work before the doctor
// customizes anything.
func (u *locationUsecase) CreateLocation(ctx context.Context, req *dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUserNotInContext
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	location := &entity.PracticeLocation{
		DoctorID: userID,
		Name:     req.Name,
		Address:  req.Address,
		Phone:    req.Phone,
	}

	if err := u.locationRepo.Create(tx, location); err != nil {
		u.log.Warnf("Failed to create location: %+v", err)
		return nil, err
	}

	if err := u.scheduleRepo.ReplaceWeeklySchedule(tx, location.ID, entity.DefaultWeeklySchedule()); err != nil {
		u.log.Warnf("Failed to seed weekly schedule: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &userID, entity.AuditActionLocationCreate, "practice_location", strconv.Itoa(location.ID), converter.LocationToResponse(location)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.LocationToResponse(location), nil
}

func (u *locationUsecase) ListMyLocations(ctx context.Context) (*dto.LocationListResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUserNotInContext
	}

	locations, err := u.locationRepo.FindByDoctorID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find locations: %+v", err)
		return nil, err
	}

	responses := converter.LocationsToResponses(locations)
	if responses == nil {
		responses = []dto.LocationResponse{}
	}
	return &dto.LocationListResponse{
		Locations: responses,
		Total:     len(responses),
	}, nil
}

// SetAvailability replaces a location's weekly schedule and exceptions in one
// transaction. Ownership is enforced: a location belonging to another doctor
// reads as not found.
func (u *locationUsecase) SetAvailability(ctx context.Context, locationID int, req *dto.SetAvailabilityRequest) (*dto.LocationAvailabilityResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUserNotInContext
	}

	entries, err := buildWeeklySchedule(req.WeeklySchedule)
	if err != nil {
		return nil, err
	}

	exceptions, err := buildExceptions(req.Exceptions)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	location, err := u.locationRepo.FindByID(tx, locationID)
	if err != nil {
		u.log.Warnf("Failed to find location %d: %+v", locationID, err)
		return nil, err
	}
	if location == nil || location.DoctorID != userID {
		return nil, ErrLocationNotFound
	}

	if err := u.scheduleRepo.ReplaceWeeklySchedule(tx, locationID, entries); err != nil {
		u.log.Warnf("Failed to replace weekly schedule: %+v", err)
		return nil, err
	}
	if err := u.scheduleRepo.ReplaceExceptions(tx, locationID, exceptions); err != nil {
		u.log.Warnf("Failed to replace exceptions: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionAvailabilityUpdate, "practice_location", strconv.Itoa(locationID), nil, req); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return &dto.LocationAvailabilityResponse{
		LocationID:     locationID,
		WeeklySchedule: converter.WeeklyScheduleToResponses(entries),
		Exceptions:     converter.ExceptionsToResponses(exceptions),
	}, nil
}

// GetAvailableSlots computes the bookable "HH:MM" start times for a doctor at
// a location on a date: weekly schedule minus exceptions minus existing
// non-cancelled appointments.
func (u *locationUsecase) GetAvailableSlots(ctx context.Context, doctorID uuid.UUID, locationID int, date string) (*dto.AvailableSlotsResponse, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	db := u.db.WithContext(ctx)

	location, err := u.locationRepo.FindByID(db, locationID)
	if err != nil {
		u.log.Warnf("Failed to find location %d: %+v", locationID, err)
		return nil, err
	}
	if location == nil || location.DoctorID != doctorID {
		return nil, ErrLocationNotFound
	}

	weekly, err := u.scheduleRepo.FindWeeklySchedule(db, locationID)
	if err != nil {
		u.log.Warnf("Failed to find weekly schedule: %+v", err)
		return nil, err
	}

	exceptions, err := u.scheduleRepo.FindExceptionsByDate(db, locationID, day)
	if err != nil {
		u.log.Warnf("Failed to find exceptions: %+v", err)
		return nil, err
	}

	booked, err := u.appointmentRepo.FindBookedTimes(db, doctorID, locationID, day)
	if err != nil {
		u.log.Warnf("Failed to find booked times: %+v", err)
		return nil, err
	}

	return &dto.AvailableSlotsResponse{
		DoctorID:       doctorID,
		LocationID:     locationID,
		Date:           date,
		AvailableTimes: u.slotService.AvailableSlots(day, weekly, exceptions, booked),
	}, nil
}

// buildWeeklySchedule validates and converts the seven submitted entries:
// every day exactly once, HH:MM parseable, start before end where available.
func buildWeeklySchedule(reqs []dto.WeeklyScheduleEntryRequest) ([]entity.WeeklyScheduleEntry, error) {
	seen := make(map[string]bool, len(reqs))
	entries := make([]entity.WeeklyScheduleEntry, 0, len(reqs))

	for _, req := range reqs {
		if seen[req.Day] {
			return nil, ErrDuplicateScheduleDay
		}
		seen[req.Day] = true

		start, err := time.Parse("15:04", req.StartTime)
		if err != nil {
			return nil, ErrInvalidTimeFormat
		}
		end, err := time.Parse("15:04", req.EndTime)
		if err != nil {
			return nil, ErrInvalidTimeFormat
		}
		if req.IsAvailable && !start.Before(end) {
			return nil, ErrInvalidScheduleRange
		}

		entries = append(entries, entity.WeeklyScheduleEntry{
			Day:         req.Day,
			StartTime:   req.StartTime,
			EndTime:     req.EndTime,
			IsAvailable: req.IsAvailable,
		})
	}

	for _, day := range entity.WeekDays {
		if !seen[day] {
			return nil, ErrDuplicateScheduleDay
		}
	}

	return entries, nil
}

// buildExceptions validates the type-dependent time fields: special carries a
// start/end pair, leave carries neither.
func buildExceptions(reqs []dto.AvailabilityExceptionRequest) ([]entity.AvailabilityException, error) {
	exceptions := make([]entity.AvailabilityException, 0, len(reqs))

	for _, req := range reqs {
		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}

		exceptionType := entity.ExceptionType(req.Type)
		switch exceptionType {
		case entity.ExceptionSpecial:
			if req.StartTime == "" || req.EndTime == "" {
				return nil, ErrSpecialNeedsTimes
			}
			if _, err := time.Parse("15:04", req.StartTime); err != nil {
				return nil, ErrInvalidTimeFormat
			}
			if _, err := time.Parse("15:04", req.EndTime); err != nil {
				return nil, ErrInvalidTimeFormat
			}
		case entity.ExceptionLeave:
			if req.StartTime != "" || req.EndTime != "" {
				return nil, ErrLeaveCarriesTimes
			}
		}

		exceptions = append(exceptions, entity.AvailabilityException{
			Date:      date,
			Type:      exceptionType,
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
			Reason:    req.Reason,
		})
	}

	return exceptions, nil
}
