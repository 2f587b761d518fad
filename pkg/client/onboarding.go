package client

import (
	"context"
	"errors"
	"fmt"

	"schedula/pkg/dto"

	"github.com/shopspring/decimal"
)

// OnboardingStep identifies one of the four wizard states.
type OnboardingStep int

const (
	StepRegistration OnboardingStep = iota
	StepProfile
	StepAvailability
	StepReview
)

func (s OnboardingStep) String() string {
	switch s {
	case StepRegistration:
		return "registration"
	case StepProfile:
		return "profile"
	case StepAvailability:
		return "availability"
	case StepReview:
		return "review"
	}
	return fmt.Sprintf("step(%d)", int(s))
}

var (
	ErrWrongStep      = errors.New("data does not belong to the current step")
	ErrNotOnReview    = errors.New("only allowed from the review step")
	ErrInvalidStep    = errors.New("invalid step index")
	ErrAlreadyOnFirst = errors.New("already on the first step")
)

// RegistrationData is the payload of the first wizard step.
type RegistrationData struct {
	Email                     string
	Password                  string
	ConfirmPassword           string
	FullName                  string
	Phone                     string
	MedicalRegistrationNumber string
}

// ProfileData is the payload of the second wizard step.
type ProfileData struct {
	Specialization    string
	YearsOfExperience int
	ClinicName        string
	Address           string
	ConsultationFee   decimal.Decimal
	ProfilePhoto      string
}

// LocationDraft is one practice location with its availability, entered in
// the third wizard step.
type LocationDraft struct {
	Name           string
	Address        string
	Phone          string
	WeeklySchedule []dto.WeeklyScheduleEntryRequest
	Exceptions     []dto.AvailabilityExceptionRequest
}

// AvailabilityData is the payload of the third wizard step.
type AvailabilityData struct {
	Locations []LocationDraft
}

// StepData is implemented by the three step payload types.
type StepData interface {
	step() OnboardingStep
}

func (RegistrationData) step() OnboardingStep { return StepRegistration }
func (ProfileData) step() OnboardingStep      { return StepProfile }
func (AvailabilityData) step() OnboardingStep { return StepAvailability }

// OnboardingDraft accumulates the payloads of all completed steps.
type OnboardingDraft struct {
	Registration RegistrationData
	Profile      ProfileData
	Locations    []LocationDraft
}

// SubmitError wraps a failure from one sub-step of Submit, naming the step
// it came from. Earlier sub-steps are not rolled back.
type SubmitError struct {
	Step OnboardingStep
	Err  error
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("onboarding failed at %s: %v", e.Step, e.Err)
}

func (e *SubmitError) Unwrap() error {
	return e.Err
}

// OnboardingWizard drives a doctor through account registration, profile
// setup, availability and review. Transitions are linear; only EditStep may
// jump, and only from Review.
type OnboardingWizard struct {
	client      *Client
	currentStep OnboardingStep
	draft       OnboardingDraft
}

func NewOnboardingWizard(client *Client) *OnboardingWizard {
	return &OnboardingWizard{client: client}
}

// CurrentStep returns the wizard's current state.
func (w *OnboardingWizard) CurrentStep() OnboardingStep {
	return w.currentStep
}

// Draft returns a copy of the accumulated draft.
func (w *OnboardingWizard) Draft() OnboardingDraft {
	draft := w.draft
	draft.Locations = append([]LocationDraft(nil), w.draft.Locations...)
	return draft
}

// DefaultWeeklySchedule returns the standard starting schedule: seven
// entries, Monday through Friday 09:00-17:00 available, weekend unavailable.
func DefaultWeeklySchedule() []dto.WeeklyScheduleEntryRequest {
	days := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	entries := make([]dto.WeeklyScheduleEntryRequest, 0, len(days))
	for _, day := range days {
		entries = append(entries, dto.WeeklyScheduleEntryRequest{
			Day:         day,
			StartTime:   "09:00",
			EndTime:     "17:00",
			IsAvailable: day != "Saturday" && day != "Sunday",
		})
	}
	return entries
}

// CompleteStep validates data against the current step, merges it into the
// draft and advances. On validation failure the returned FieldErrors is
// non-empty and neither the draft nor the step changes. Each step's payload
// only overwrites its own section of the draft, so edit-then-continue
// preserves everything entered for other steps.
func (w *OnboardingWizard) CompleteStep(data StepData) (FieldErrors, error) {
	if data.step() != w.currentStep {
		return nil, ErrWrongStep
	}

	switch d := data.(type) {
	case RegistrationData:
		if fe := validateRegistration(d); !fe.Empty() {
			return fe, nil
		}
		w.draft.Registration = d
	case ProfileData:
		if fe := validateProfile(d); !fe.Empty() {
			return fe, nil
		}
		w.draft.Profile = d
	case AvailabilityData:
		if fe := validateAvailability(d); !fe.Empty() {
			return fe, nil
		}
		w.draft.Locations = append([]LocationDraft(nil), d.Locations...)
	}

	if w.currentStep < StepReview {
		w.currentStep++
	}
	return nil, nil
}

// Back moves one step backwards. The draft is never mutated.
func (w *OnboardingWizard) Back() error {
	if w.currentStep == StepRegistration {
		return ErrAlreadyOnFirst
	}
	w.currentStep--
	return nil
}

// EditStep jumps from Review to an earlier step for correction. Data already
// entered for later steps stays in the draft.
func (w *OnboardingWizard) EditStep(step OnboardingStep) error {
	if w.currentStep != StepReview {
		return ErrNotOnReview
	}
	if step < StepRegistration || step >= StepReview {
		return ErrInvalidStep
	}
	w.currentStep = step
	return nil
}

// Submit runs the backend sequence from the Review step: register account,
// set up profile, then per location create it and set its availability, and
// finally complete onboarding. The first failure aborts the rest and is
// returned as a *SubmitError; side effects of earlier sub-steps are not
// rolled back and nothing is retried.
func (w *OnboardingWizard) Submit(ctx context.Context) (*dto.OnboardingStatusResponse, error) {
	if w.currentStep != StepReview {
		return nil, ErrNotOnReview
	}

	reg := w.draft.Registration
	if _, err := w.client.RegisterDoctor(ctx, &dto.RegisterDoctorRequest{
		Email:                     reg.Email,
		Password:                  reg.Password,
		FullName:                  reg.FullName,
		Phone:                     reg.Phone,
		MedicalRegistrationNumber: reg.MedicalRegistrationNumber,
	}); err != nil {
		return nil, &SubmitError{Step: StepRegistration, Err: err}
	}

	profile := w.draft.Profile
	if _, err := w.client.SetupProfile(ctx, &dto.SetupProfileRequest{
		Specialization:    profile.Specialization,
		YearsOfExperience: profile.YearsOfExperience,
		ClinicName:        profile.ClinicName,
		Address:           profile.Address,
		ConsultationFee:   profile.ConsultationFee,
		ProfilePhoto:      profile.ProfilePhoto,
	}); err != nil {
		return nil, &SubmitError{Step: StepProfile, Err: err}
	}

	for i := range w.draft.Locations {
		loc := w.draft.Locations[i]
		created, err := w.client.CreateLocation(ctx, &dto.CreateLocationRequest{
			Name:    loc.Name,
			Address: loc.Address,
			Phone:   loc.Phone,
		})
		if err != nil {
			return nil, &SubmitError{Step: StepAvailability, Err: err}
		}

		schedule := loc.WeeklySchedule
		if len(schedule) == 0 {
			schedule = DefaultWeeklySchedule()
		}
		if _, err := w.client.SetAvailability(ctx, created.ID, &dto.SetAvailabilityRequest{
			WeeklySchedule: schedule,
			Exceptions:     loc.Exceptions,
		}); err != nil {
			return nil, &SubmitError{Step: StepAvailability, Err: err}
		}
	}

	status, err := w.client.CompleteOnboarding(ctx)
	if err != nil {
		return nil, &SubmitError{Step: StepReview, Err: err}
	}
	return status, nil
}

func validateRegistration(d RegistrationData) FieldErrors {
	fe := FieldErrors{}
	checkEmail(fe, "email", d.Email)
	checkPassword(fe, "password", d.Password)
	if d.Password != d.ConfirmPassword {
		fe.add("confirm_password", "passwords do not match")
	}
	checkMinLength(fe, "full_name", d.FullName, 2)
	checkPhone(fe, "phone", d.Phone)
	checkMinLength(fe, "medical_registration_number", d.MedicalRegistrationNumber, 5)
	return fe
}

func validateProfile(d ProfileData) FieldErrors {
	fe := FieldErrors{}
	checkRequired(fe, "specialization", d.Specialization)
	if d.YearsOfExperience < 0 || d.YearsOfExperience > 50 {
		fe.add("years_of_experience", "years of experience must be between 0 and 50")
	}
	checkMinLength(fe, "clinic_name", d.ClinicName, 2)
	checkMinLength(fe, "address", d.Address, 10)
	return fe
}

func validateAvailability(d AvailabilityData) FieldErrors {
	fe := FieldErrors{}
	if len(d.Locations) == 0 {
		fe.add("locations", "at least one practice location is required")
		return fe
	}
	for i, loc := range d.Locations {
		prefix := fmt.Sprintf("locations[%d].", i)
		checkRequired(fe, prefix+"name", loc.Name)
		checkRequired(fe, prefix+"address", loc.Address)
		checkPhone(fe, prefix+"phone", loc.Phone)
		if n := len(loc.WeeklySchedule); n != 0 && n != 7 {
			fe.add(prefix+"weekly_schedule", "weekly schedule must cover all 7 days")
		}
		for j, exc := range loc.Exceptions {
			excPrefix := fmt.Sprintf("%sexceptions[%d].", prefix, j)
			checkRequired(fe, excPrefix+"date", exc.Date)
			if exc.Type == "special" && (exc.StartTime == "" || exc.EndTime == "") {
				fe.add(excPrefix+"start_time", "special exceptions require start and end times")
			}
		}
	}
	return fe
}
