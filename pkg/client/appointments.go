package client

import (
	"context"
	"errors"
	"fmt"

	"schedula/pkg/dto"

	"github.com/google/uuid"
)

var (
	ErrNoResolvedSlots = errors.New("no resolved slot set for this doctor, location and date")
	ErrSlotNotInSet    = errors.New("requested time is not in the resolved slot set")
	ErrReasonTooShort  = errors.New("reason must be at least 10 characters")
	ErrConfirmRequired = errors.New("cancellation requires a confirmation callback")
	ErrNotConfirmed    = errors.New("cancellation was not confirmed")
	ErrUnknownLocalID  = errors.New("appointment is not in the loaded list")
)

type slotKey struct {
	doctorID   uuid.UUID
	locationID int
	date       string
}

// AppointmentController manages the signed-in patient's appointment list.
// Local state mirrors server-confirmed changes: cancel flips the status in
// place, reschedule overwrites date and time in place, booking reloads the
// whole list.
type AppointmentController struct {
	client        *Client
	appointments  []dto.AppointmentResponse
	resolvedSlots map[slotKey][]string
}

func NewAppointmentController(client *Client) *AppointmentController {
	return &AppointmentController{
		client:        client,
		resolvedSlots: make(map[slotKey][]string),
	}
}

// Appointments returns the currently loaded list.
func (c *AppointmentController) Appointments() []dto.AppointmentResponse {
	return c.appointments
}

// Load fetches all appointments. On failure the list is left empty.
func (c *AppointmentController) Load(ctx context.Context) error {
	c.appointments = nil
	list, err := c.client.ListAppointments(ctx)
	if err != nil {
		return err
	}
	c.appointments = list.Appointments
	return nil
}

// ResolveSlots fetches and caches the open slot set for a doctor's location
// on a date. Book and Reschedule require a resolved set for their target.
func (c *AppointmentController) ResolveSlots(ctx context.Context, doctorID uuid.UUID, locationID int, date string) ([]string, error) {
	slots, err := c.client.GetAvailableSlots(ctx, doctorID, locationID, date)
	if err != nil {
		return nil, err
	}
	c.resolvedSlots[slotKey{doctorID, locationID, date}] = slots.AvailableTimes
	return slots.AvailableTimes, nil
}

// Book books a slot and reloads the whole list on success; there is no
// local append. The slot must come from a previously resolved set.
func (c *AppointmentController) Book(ctx context.Context, doctorID uuid.UUID, locationID int, date, timeSlot, reason string) (*dto.AppointmentResponse, error) {
	if len(reason) < 10 {
		return nil, ErrReasonTooShort
	}
	if err := c.requireResolvedSlot(doctorID, locationID, date, timeSlot); err != nil {
		return nil, err
	}

	appointment, err := c.client.BookAppointment(ctx, &dto.BookAppointmentRequest{
		DoctorID:   doctorID,
		LocationID: locationID,
		Date:       date,
		Time:       timeSlot,
		Reason:     reason,
	})
	if err != nil {
		return nil, err
	}

	if err := c.Load(ctx); err != nil {
		return appointment, fmt.Errorf("booked but failed to reload: %w", err)
	}
	return appointment, nil
}

// Cancel cancels an appointment after the confirm callback approves. On
// success the local status flips to cancelled without a refetch.
func (c *AppointmentController) Cancel(ctx context.Context, appointmentID uuid.UUID, confirm func() bool) error {
	if confirm == nil {
		return ErrConfirmRequired
	}
	if !confirm() {
		return ErrNotConfirmed
	}

	result, err := c.client.CancelAppointment(ctx, appointmentID)
	if err != nil {
		return err
	}

	for i := range c.appointments {
		if c.appointments[i].ID == appointmentID {
			c.appointments[i].Status = result.Status
			return nil
		}
	}
	return nil
}

// Reschedule moves an appointment to a new date and time. The new slot must
// come from a set resolved for the new date. On success only the local date
// and time fields change; status and position stay as they were.
func (c *AppointmentController) Reschedule(ctx context.Context, appointmentID uuid.UUID, newDate, newTime string) error {
	idx := -1
	for i := range c.appointments {
		if c.appointments[i].ID == appointmentID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrUnknownLocalID
	}

	appt := c.appointments[idx]
	if err := c.requireResolvedSlot(appt.DoctorID, appt.LocationID, newDate, newTime); err != nil {
		return err
	}

	updated, err := c.client.RescheduleAppointment(ctx, appointmentID, &dto.RescheduleAppointmentRequest{
		Date: newDate,
		Time: newTime,
	})
	if err != nil {
		return err
	}

	c.appointments[idx].Date = updated.Date
	c.appointments[idx].Time = updated.Time
	return nil
}

func (c *AppointmentController) requireResolvedSlot(doctorID uuid.UUID, locationID int, date, timeSlot string) error {
	slots, ok := c.resolvedSlots[slotKey{doctorID, locationID, date}]
	if !ok {
		return ErrNoResolvedSlots
	}
	for _, s := range slots {
		if s == timeSlot {
			return nil
		}
	}
	return ErrSlotNotInSet
}
