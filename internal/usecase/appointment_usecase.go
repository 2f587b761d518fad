package usecase

import (
	"context"
	"errors"
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
	ErrAppointmentNotFound         = errors.New("appointment not found")
	ErrSlotUnavailable             = errors.New("requested time slot is not available")
	ErrAppointmentAlreadyCancelled = errors.New("appointment is already cancelled")
	ErrAppointmentNotUpcoming      = errors.New("only upcoming appointments can be rescheduled")
)

type AppointmentUsecase interface {
	ListMyAppointments(ctx context.Context) (*dto.AppointmentListResponse, error)
	BookAppointment(ctx context.Context, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error)
	RescheduleAppointment(ctx context.Context, appointmentID uuid.UUID, req *dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error)
	CancelAppointment(ctx context.Context, appointmentID uuid.UUID) (*dto.CancelAppointmentResponse, error)
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	locationRepo    repository.LocationRepository
	scheduleRepo    repository.ScheduleRepository
	slotService     *service.SlotService
	auditService    service.AuditService
	now             func() time.Time
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	locationRepo repository.LocationRepository,
	scheduleRepo repository.ScheduleRepository,
	slotService *service.SlotService,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		locationRepo:    locationRepo,
		scheduleRepo:    scheduleRepo,
		slotService:     slotService,
		auditService:    auditService,
		now:             time.Now,
	}
}

// ListMyAppointments returns the signed-in patient's appointments newest
// first, with "completed" resolved on read.
func (u *appointmentUsecase) ListMyAppointments(ctx context.Context) (*dto.AppointmentListResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUserNotInContext
	}

	appointments, err := u.appointmentRepo.FindByPatientID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find appointments for patient %s: %+v", userID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments, u.now()),
		Total:        len(appointments),
	}, nil
}

// BookAppointment creates an upcoming appointment after re-validating the
// requested slot against the location's schedule, its exceptions and the
// doctor's existing bookings on that date.
func (u *appointmentUsecase) BookAppointment(ctx context.Context, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUserNotInContext
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	if _, err := time.Parse("15:04", req.Time); err != nil {
		return nil, ErrInvalidTimeFormat
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	location, err := u.locationRepo.FindByID(tx, req.LocationID)
	if err != nil {
		u.log.Warnf("Failed to find location %d: %+v", req.LocationID, err)
		return nil, err
	}
	if location == nil || location.DoctorID != req.DoctorID {
		return nil, ErrLocationNotFound
	}

	if err := u.checkSlot(tx, req.DoctorID, req.LocationID, date, req.Time); err != nil {
		return nil, err
	}

	appointment := &entity.Appointment{
		DoctorID:   req.DoctorID,
		PatientID:  userID,
		LocationID: req.LocationID,
		Date:       date,
		Time:       req.Time,
		Status:     entity.AppointmentStatusUpcoming,
		Reason:     req.Reason,
	}

	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		// The location or doctor can disappear between checkSlot and the
		// insert; the violated reference reads as not found.
		if isForeignKeyError(err, "appointments_location_id_fkey") {
			return nil, ErrLocationNotFound
		}
		if isForeignKeyError(err, "appointments_doctor_id_fkey") {
			return nil, ErrDoctorNotFound
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &userID, entity.AuditActionAppointmentBook, "appointment", appointment.ID.String(), converter.AppointmentToStoredResponse(appointment)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Appointment booked: id=%s, doctor=%s, date=%s %s", appointment.ID, req.DoctorID, req.Date, req.Time)
	return converter.AppointmentToStoredResponse(appointment), nil
}

// RescheduleAppointment moves an upcoming appointment to a new date and time.
// Only Date and Time change; ID and Status are preserved. A foreign
// appointment reads as not found rather than forbidden.
func (u *appointmentUsecase) RescheduleAppointment(ctx context.Context, appointmentID uuid.UUID, req *dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUserNotInContext
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	if _, err := time.Parse("15:04", req.Time); err != nil {
		return nil, ErrInvalidTimeFormat
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByID(tx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil || appointment.PatientID != userID {
		return nil, ErrAppointmentNotFound
	}
	if appointment.Status != entity.AppointmentStatusUpcoming {
		return nil, ErrAppointmentNotUpcoming
	}

	if err := u.checkSlot(tx, appointment.DoctorID, appointment.LocationID, date, req.Time); err != nil {
		return nil, err
	}

	oldDate, oldTime := appointment.Date.Format("2006-01-02"), appointment.Time
	appointment.Date = date
	appointment.Time = req.Time

	if err := u.appointmentRepo.Update(tx, appointment); err != nil {
		u.log.Warnf("Failed to update appointment %s: %+v", appointmentID, err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionAppointmentReschedule, "appointment", appointmentID.String(),
		map[string]interface{}{"date": oldDate, "time": oldTime},
		map[string]interface{}{"date": req.Date, "time": req.Time},
	); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.AppointmentToStoredResponse(appointment), nil
}

// CancelAppointment sets the appointment to cancelled. Ownership is checked
// first; an appointment owned by someone else reads as not found.
func (u *appointmentUsecase) CancelAppointment(ctx context.Context, appointmentID uuid.UUID) (*dto.CancelAppointmentResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUserNotInContext
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByID(tx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil || appointment.PatientID != userID {
		return nil, ErrAppointmentNotFound
	}
	if appointment.IsCancelled() {
		return nil, ErrAppointmentAlreadyCancelled
	}

	affected, err := u.appointmentRepo.UpdateStatus(tx, appointmentID, entity.AppointmentStatusCancelled)
	if err != nil {
		u.log.Warnf("Failed to cancel appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrAppointmentAlreadyCancelled
	}

	if err := u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionAppointmentCancel, "appointment", appointmentID.String(),
		string(entity.AppointmentStatusUpcoming), string(entity.AppointmentStatusCancelled),
	); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Appointment cancelled: id=%s", appointmentID)
	return &dto.CancelAppointmentResponse{
		AppointmentID: appointmentID,
		Status:        string(entity.AppointmentStatusCancelled),
	}, nil
}

// checkSlot re-runs the availability computation server-side; the client's
// resolved slot set is never trusted.
func (u *appointmentUsecase) checkSlot(db *gorm.DB, doctorID uuid.UUID, locationID int, date time.Time, slot string) error {
	weekly, err := u.scheduleRepo.FindWeeklySchedule(db, locationID)
	if err != nil {
		u.log.Warnf("Failed to find weekly schedule: %+v", err)
		return err
	}
	exceptions, err := u.scheduleRepo.FindExceptionsByDate(db, locationID, date)
	if err != nil {
		u.log.Warnf("Failed to find exceptions: %+v", err)
		return err
	}
	booked, err := u.appointmentRepo.FindBookedTimes(db, doctorID, locationID, date)
	if err != nil {
		u.log.Warnf("Failed to find booked times: %+v", err)
		return err
	}

	if !u.slotService.IsSlotAvailable(date, slot, weekly, exceptions, booked) {
		return ErrSlotUnavailable
	}
	return nil
}
