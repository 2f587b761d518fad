package usecase

import (
	"context"
	"io"
	"testing"
	"time"

	"schedula/config"
	"schedula/internal/delivery/http/middleware"
	"schedula/internal/domain/entity"
	"schedula/pkg/jwt"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestJWTService() *jwt.JWTService {
	return jwt.NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  time.Hour,
		RefreshExpiry: 2 * time.Hour,
	})
}

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func ctxWithUser(userID uuid.UUID) context.Context {
	return context.WithValue(context.Background(), middleware.UserIDKey, userID)
}

func duplicateKeyError(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

func foreignKeyError(constraint string) error {
	return &pgconn.PgError{Code: "23503", ConstraintName: constraint}
}

// In-memory repository stubs. The db argument is ignored; transaction
// behavior is exercised through sqlmock's Begin/Commit expectations.

type stubUserRepo struct {
	byEmail map[string]*entity.User
	byID    map[uuid.UUID]*entity.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		byEmail: map[string]*entity.User{},
		byID:    map[uuid.UUID]*entity.User{},
	}
}

func (s *stubUserRepo) Create(_ *gorm.DB, user *entity.User) error {
	if _, exists := s.byEmail[user.Email]; exists {
		return duplicateKeyError("idx_users_email")
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	s.byEmail[user.Email] = user
	s.byID[user.ID] = user
	return nil
}

func (s *stubUserRepo) FindByEmail(_ *gorm.DB, email string) (*entity.User, error) {
	return s.byEmail[email], nil
}

func (s *stubUserRepo) FindByID(_ *gorm.DB, id uuid.UUID) (*entity.User, error) {
	return s.byID[id], nil
}

func (s *stubUserRepo) Update(_ *gorm.DB, user *entity.User) error {
	s.byEmail[user.Email] = user
	s.byID[user.ID] = user
	return nil
}

type stubDoctorProfileRepo struct {
	byUserID  map[uuid.UUID]*entity.DoctorProfile
	available []entity.DoctorProfile
}

func newStubDoctorProfileRepo() *stubDoctorProfileRepo {
	return &stubDoctorProfileRepo{byUserID: map[uuid.UUID]*entity.DoctorProfile{}}
}

func (s *stubDoctorProfileRepo) Create(_ *gorm.DB, profile *entity.DoctorProfile) error {
	for _, existing := range s.byUserID {
		if existing.MedicalRegistrationNumber == profile.MedicalRegistrationNumber {
			return duplicateKeyError("idx_doctor_profiles_medical_registration_number")
		}
	}
	s.byUserID[profile.UserID] = profile
	return nil
}

func (s *stubDoctorProfileRepo) FindByUserID(_ *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error) {
	return s.byUserID[userID], nil
}

func (s *stubDoctorProfileRepo) FindAvailable(_ *gorm.DB, _ string) ([]entity.DoctorProfile, error) {
	return s.available, nil
}

func (s *stubDoctorProfileRepo) Update(_ *gorm.DB, profile *entity.DoctorProfile) error {
	s.byUserID[profile.UserID] = profile
	return nil
}

type stubLocationRepo struct {
	byID   map[int]*entity.PracticeLocation
	nextID int
}

func newStubLocationRepo() *stubLocationRepo {
	return &stubLocationRepo{byID: map[int]*entity.PracticeLocation{}, nextID: 1}
}

func (s *stubLocationRepo) Create(_ *gorm.DB, location *entity.PracticeLocation) error {
	location.ID = s.nextID
	s.nextID++
	s.byID[location.ID] = location
	return nil
}

func (s *stubLocationRepo) FindByID(_ *gorm.DB, id int) (*entity.PracticeLocation, error) {
	return s.byID[id], nil
}

func (s *stubLocationRepo) FindByDoctorID(_ *gorm.DB, doctorID uuid.UUID) ([]entity.PracticeLocation, error) {
	var locations []entity.PracticeLocation
	for _, loc := range s.byID {
		if loc.DoctorID == doctorID {
			locations = append(locations, *loc)
		}
	}
	return locations, nil
}

type stubScheduleRepo struct {
	weekly     map[int][]entity.WeeklyScheduleEntry
	exceptions map[int][]entity.AvailabilityException
}

func newStubScheduleRepo() *stubScheduleRepo {
	return &stubScheduleRepo{
		weekly:     map[int][]entity.WeeklyScheduleEntry{},
		exceptions: map[int][]entity.AvailabilityException{},
	}
}

func (s *stubScheduleRepo) ReplaceWeeklySchedule(_ *gorm.DB, locationID int, entries []entity.WeeklyScheduleEntry) error {
	s.weekly[locationID] = entries
	return nil
}

func (s *stubScheduleRepo) FindWeeklySchedule(_ *gorm.DB, locationID int) ([]entity.WeeklyScheduleEntry, error) {
	return s.weekly[locationID], nil
}

func (s *stubScheduleRepo) ReplaceExceptions(_ *gorm.DB, locationID int, exceptions []entity.AvailabilityException) error {
	s.exceptions[locationID] = exceptions
	return nil
}

func (s *stubScheduleRepo) FindExceptionsByDate(_ *gorm.DB, locationID int, date time.Time) ([]entity.AvailabilityException, error) {
	var matched []entity.AvailabilityException
	for _, exc := range s.exceptions[locationID] {
		if exc.Date.Equal(date) {
			matched = append(matched, exc)
		}
	}
	return matched, nil
}

type stubAppointmentRepo struct {
	byID      map[uuid.UUID]*entity.Appointment
	createErr error
}

func newStubAppointmentRepo() *stubAppointmentRepo {
	return &stubAppointmentRepo{byID: map[uuid.UUID]*entity.Appointment{}}
}

func (s *stubAppointmentRepo) Create(_ *gorm.DB, appointment *entity.Appointment) error {
	if s.createErr != nil {
		return s.createErr
	}
	if appointment.ID == uuid.Nil {
		appointment.ID = uuid.New()
	}
	stored := *appointment
	s.byID[appointment.ID] = &stored
	return nil
}

func (s *stubAppointmentRepo) FindByID(_ *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	if appointment, ok := s.byID[id]; ok {
		copied := *appointment
		return &copied, nil
	}
	return nil, nil
}

func (s *stubAppointmentRepo) FindByPatientID(_ *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	for _, appointment := range s.byID {
		if appointment.PatientID == patientID {
			appointments = append(appointments, *appointment)
		}
	}
	return appointments, nil
}

func (s *stubAppointmentRepo) FindBookedTimes(_ *gorm.DB, doctorID uuid.UUID, locationID int, date time.Time) ([]string, error) {
	var times []string
	for _, appointment := range s.byID {
		if appointment.DoctorID == doctorID &&
			appointment.LocationID == locationID &&
			appointment.Date.Equal(date) &&
			appointment.Status != entity.AppointmentStatusCancelled {
			times = append(times, appointment.Time)
		}
	}
	return times, nil
}

func (s *stubAppointmentRepo) Update(_ *gorm.DB, appointment *entity.Appointment) error {
	stored := *appointment
	s.byID[appointment.ID] = &stored
	return nil
}

func (s *stubAppointmentRepo) UpdateStatus(_ *gorm.DB, id uuid.UUID, status entity.AppointmentStatus) (int64, error) {
	appointment, ok := s.byID[id]
	if !ok || appointment.Status == entity.AppointmentStatusCancelled {
		return 0, nil
	}
	appointment.Status = status
	return 1, nil
}

type auditCall struct {
	action   string
	entityID string
}

type stubAuditService struct {
	calls []auditCall
}

func (s *stubAuditService) LogCreate(_ context.Context, _ *gorm.DB, _ *uuid.UUID, action, _, entityID string, _ interface{}) error {
	s.calls = append(s.calls, auditCall{action: action, entityID: entityID})
	return nil
}

func (s *stubAuditService) LogUpdate(_ context.Context, _ *gorm.DB, _ *uuid.UUID, action, _, entityID string, _, _ interface{}) error {
	s.calls = append(s.calls, auditCall{action: action, entityID: entityID})
	return nil
}
