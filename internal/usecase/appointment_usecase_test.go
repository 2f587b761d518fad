package usecase

import (
	"testing"
	"time"

	"schedula/internal/domain/entity"
	"schedula/internal/service"
	"schedula/pkg/dto"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type appointmentFixture struct {
	usecase         AppointmentUsecase
	mock            sqlmock.Sqlmock
	appointmentRepo *stubAppointmentRepo
	locationRepo    *stubLocationRepo
	scheduleRepo    *stubScheduleRepo
	audit           *stubAuditService
	doctorID        uuid.UUID
	patientID       uuid.UUID
	locationID      int
}

// newAppointmentFixture wires a doctor with one location carrying the
// default weekly schedule, so weekday slots 09:00-16:30 are open.
func newAppointmentFixture(t *testing.T) *appointmentFixture {
	t.Helper()

	db, mock := newTestDB(t)
	appointmentRepo := newStubAppointmentRepo()
	locationRepo := newStubLocationRepo()
	scheduleRepo := newStubScheduleRepo()
	audit := &stubAuditService{}

	doctorID := uuid.New()
	location := &entity.PracticeLocation{DoctorID: doctorID, Name: "Main Clinic", Address: "1 Clinic Road, Springfield", Phone: "+6281234567890"}
	require.NoError(t, locationRepo.Create(nil, location))
	require.NoError(t, scheduleRepo.ReplaceWeeklySchedule(nil, location.ID, entity.DefaultWeeklySchedule()))

	u := NewAppointmentUsecase(db, newTestLogger(), appointmentRepo, locationRepo, scheduleRepo, service.NewSlotService(), audit)
	// Pin the clock so completed-on-read resolution is deterministic.
	u.(*appointmentUsecase).now = func() time.Time {
		return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	}

	return &appointmentFixture{
		usecase:         u,
		mock:            mock,
		appointmentRepo: appointmentRepo,
		locationRepo:    locationRepo,
		scheduleRepo:    scheduleRepo,
		audit:           audit,
		doctorID:        doctorID,
		patientID:       uuid.New(),
		locationID:      location.ID,
	}
}

func (f *appointmentFixture) book(t *testing.T, date, timeSlot string) *dto.AppointmentResponse {
	t.Helper()
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()
	appointment, err := f.usecase.BookAppointment(ctxWithUser(f.patientID), &dto.BookAppointmentRequest{
		DoctorID:   f.doctorID,
		LocationID: f.locationID,
		Date:       date,
		Time:       timeSlot,
		Reason:     "Regular checkup, 20 chars",
	})
	require.NoError(t, err)
	return appointment
}

func TestBookAppointment(t *testing.T) {
	f := newAppointmentFixture(t)

	appointment := f.book(t, "2024-01-15", "10:00")

	assert.Equal(t, "upcoming", appointment.Status)
	assert.Equal(t, "2024-01-15", appointment.Date)
	assert.Equal(t, "10:00", appointment.Time)
	assert.Len(t, f.audit.calls, 1)
	assert.Equal(t, entity.AuditActionAppointmentBook, f.audit.calls[0].action)
}

func TestBookAppointmentReportsStoredStatus(t *testing.T) {
	f := newAppointmentFixture(t)

	// 2024-01-15 precedes the fixture's pinned clock: the create response
	// still reports the row as stored, not resolved against now.
	appointment := f.book(t, "2024-01-15", "10:00")
	assert.Equal(t, "upcoming", appointment.Status)

	// A later read resolves the same row as completed.
	list, err := f.usecase.ListMyAppointments(ctxWithUser(f.patientID))
	require.NoError(t, err)
	require.Len(t, list.Appointments, 1)
	assert.Equal(t, "completed", list.Appointments[0].Status)
}

func TestBookAppointmentSlotTaken(t *testing.T) {
	f := newAppointmentFixture(t)
	f.book(t, "2024-01-15", "10:00")

	f.mock.ExpectBegin()
	f.mock.ExpectRollback()
	otherPatient := uuid.New()
	_, err := f.usecase.BookAppointment(ctxWithUser(otherPatient), &dto.BookAppointmentRequest{
		DoctorID:   f.doctorID,
		LocationID: f.locationID,
		Date:       "2024-01-15",
		Time:       "10:00",
		Reason:     "Follow-up consultation",
	})

	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestBookAppointmentOutsideSchedule(t *testing.T) {
	f := newAppointmentFixture(t)

	f.mock.ExpectBegin()
	f.mock.ExpectRollback()
	// 2024-01-20 is a Saturday, unavailable by default.
	_, err := f.usecase.BookAppointment(ctxWithUser(f.patientID), &dto.BookAppointmentRequest{
		DoctorID:   f.doctorID,
		LocationID: f.locationID,
		Date:       "2024-01-20",
		Time:       "10:00",
		Reason:     "Weekend appointment attempt",
	})

	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestBookAppointmentLocationOfOtherDoctor(t *testing.T) {
	f := newAppointmentFixture(t)

	f.mock.ExpectBegin()
	f.mock.ExpectRollback()
	_, err := f.usecase.BookAppointment(ctxWithUser(f.patientID), &dto.BookAppointmentRequest{
		DoctorID:   uuid.New(),
		LocationID: f.locationID,
		Date:       "2024-01-15",
		Time:       "10:00",
		Reason:     "Mismatched doctor and location",
	})

	assert.ErrorIs(t, err, ErrLocationNotFound)
}

func TestBookAppointmentLocationDeletedDuringBooking(t *testing.T) {
	f := newAppointmentFixture(t)
	f.appointmentRepo.createErr = foreignKeyError("appointments_location_id_fkey")

	f.mock.ExpectBegin()
	f.mock.ExpectRollback()
	_, err := f.usecase.BookAppointment(ctxWithUser(f.patientID), &dto.BookAppointmentRequest{
		DoctorID:   f.doctorID,
		LocationID: f.locationID,
		Date:       "2024-01-15",
		Time:       "10:00",
		Reason:     "Location vanished mid-booking",
	})

	assert.ErrorIs(t, err, ErrLocationNotFound)
}

func TestCancelAppointmentNotOwned(t *testing.T) {
	f := newAppointmentFixture(t)
	appointment := f.book(t, "2024-01-15", "10:00")

	f.mock.ExpectBegin()
	f.mock.ExpectRollback()
	stranger := uuid.New()
	_, err := f.usecase.CancelAppointment(ctxWithUser(stranger), appointment.ID)

	// Foreign appointments read as not found, and the row is untouched.
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
	stored := f.appointmentRepo.byID[appointment.ID]
	assert.Equal(t, entity.AppointmentStatusUpcoming, stored.Status)
}

func TestCancelAppointment(t *testing.T) {
	f := newAppointmentFixture(t)
	appointment := f.book(t, "2024-01-15", "10:00")

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()
	result, err := f.usecase.CancelAppointment(ctxWithUser(f.patientID), appointment.ID)
	require.NoError(t, err)

	assert.Equal(t, appointment.ID, result.AppointmentID)
	assert.Equal(t, "cancelled", result.Status)
	assert.Equal(t, entity.AppointmentStatusCancelled, f.appointmentRepo.byID[appointment.ID].Status)

	// Cancelling again conflicts.
	f.mock.ExpectBegin()
	f.mock.ExpectRollback()
	_, err = f.usecase.CancelAppointment(ctxWithUser(f.patientID), appointment.ID)
	assert.ErrorIs(t, err, ErrAppointmentAlreadyCancelled)
}

func TestRescheduleChangesOnlyDateAndTime(t *testing.T) {
	f := newAppointmentFixture(t)
	appointment := f.book(t, "2024-01-15", "10:00")

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()
	updated, err := f.usecase.RescheduleAppointment(ctxWithUser(f.patientID), appointment.ID, &dto.RescheduleAppointmentRequest{
		Date: "2024-01-16",
		Time: "11:00",
	})
	require.NoError(t, err)

	assert.Equal(t, appointment.ID, updated.ID)
	assert.Equal(t, "2024-01-16", updated.Date)
	assert.Equal(t, "11:00", updated.Time)
	assert.Equal(t, appointment.Status, updated.Status)
	assert.Equal(t, appointment.Reason, updated.Reason)
}

func TestRescheduleNotOwned(t *testing.T) {
	f := newAppointmentFixture(t)
	appointment := f.book(t, "2024-01-15", "10:00")

	f.mock.ExpectBegin()
	f.mock.ExpectRollback()
	_, err := f.usecase.RescheduleAppointment(ctxWithUser(uuid.New()), appointment.ID, &dto.RescheduleAppointmentRequest{
		Date: "2024-01-16",
		Time: "11:00",
	})

	assert.ErrorIs(t, err, ErrAppointmentNotFound)
	stored := f.appointmentRepo.byID[appointment.ID]
	assert.Equal(t, "10:00", stored.Time)
}

func TestRescheduleToTakenSlot(t *testing.T) {
	f := newAppointmentFixture(t)
	first := f.book(t, "2024-01-15", "10:00")
	_ = first
	second := f.book(t, "2024-01-15", "11:00")

	f.mock.ExpectBegin()
	f.mock.ExpectRollback()
	_, err := f.usecase.RescheduleAppointment(ctxWithUser(f.patientID), second.ID, &dto.RescheduleAppointmentRequest{
		Date: "2024-01-15",
		Time: "10:00",
	})

	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestListMyAppointmentsResolvesCompleted(t *testing.T) {
	f := newAppointmentFixture(t)

	past := &entity.Appointment{
		DoctorID:   f.doctorID,
		PatientID:  f.patientID,
		LocationID: f.locationID,
		Date:       time.Date(2020, 1, 6, 0, 0, 0, 0, time.UTC),
		Time:       "10:00",
		Status:     entity.AppointmentStatusUpcoming,
		Reason:     "Old visit from years ago",
	}
	require.NoError(t, f.appointmentRepo.Create(nil, past))

	list, err := f.usecase.ListMyAppointments(ctxWithUser(f.patientID))
	require.NoError(t, err)

	require.Len(t, list.Appointments, 1)
	assert.Equal(t, "completed", list.Appointments[0].Status)
	// The stored status stays upcoming; completion is computed on read.
	assert.Equal(t, entity.AppointmentStatusUpcoming, f.appointmentRepo.byID[past.ID].Status)
}
