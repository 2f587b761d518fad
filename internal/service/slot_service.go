package service

import (
	"time"

	"schedula/internal/domain/entity"
)

// SlotDuration is the fixed size of a bookable slot.
const SlotDuration = 30 * time.Minute

// SlotService computes the bookable slots for a location on a date. It is a
// pure calculation over the weekly schedule, date exceptions and existing
// bookings; callers fetch those three inputs and hand them over.
type SlotService struct{}

func NewSlotService() *SlotService {
	return &SlotService{}
}

// AvailableSlots carves the weekly entry's open interval for the date's
// weekday into fixed-size slots, then removes slots blocked by an exception
// and slots already taken by a non-cancelled appointment.
//
// A "leave" exception empties the whole day. A "special" exception blocks its
// start-end window only. Slots are "HH:MM" strings sorted ascending.
func (s *SlotService) AvailableSlots(
	date time.Time,
	weekly []entity.WeeklyScheduleEntry,
	exceptions []entity.AvailabilityException,
	bookedTimes []string,
) []string {
	day := entity.DayName(date.Weekday())

	var entry *entity.WeeklyScheduleEntry
	for i := range weekly {
		if weekly[i].Day == day {
			entry = &weekly[i]
			break
		}
	}
	if entry == nil || !entry.IsAvailable {
		return []string{}
	}

	start, err := parseClock(entry.StartTime)
	if err != nil {
		return []string{}
	}
	end, err := parseClock(entry.EndTime)
	if err != nil || !start.Before(end) {
		return []string{}
	}

	for i := range exceptions {
		if exceptions[i].CoversWholeDay() {
			return []string{}
		}
	}

	booked := make(map[string]struct{}, len(bookedTimes))
	for _, t := range bookedTimes {
		booked[t] = struct{}{}
	}

	slots := []string{}
	for t := start; !t.Add(SlotDuration).After(end); t = t.Add(SlotDuration) {
		label := t.Format("15:04")
		if _, taken := booked[label]; taken {
			continue
		}
		if blockedByException(t, exceptions) {
			continue
		}
		slots = append(slots, label)
	}
	return slots
}

// IsSlotAvailable reports whether a specific "HH:MM" start time is in the
// computed set for the date.
func (s *SlotService) IsSlotAvailable(
	date time.Time,
	slot string,
	weekly []entity.WeeklyScheduleEntry,
	exceptions []entity.AvailabilityException,
	bookedTimes []string,
) bool {
	for _, available := range s.AvailableSlots(date, weekly, exceptions, bookedTimes) {
		if available == slot {
			return true
		}
	}
	return false
}

// blockedByException reports whether a slot starting at t falls inside a
// special exception's window. Slots overlapping the window boundary are
// blocked too: a slot is blocked when its interval intersects the window.
func blockedByException(t time.Time, exceptions []entity.AvailabilityException) bool {
	slotEnd := t.Add(SlotDuration)
	for i := range exceptions {
		e := &exceptions[i]
		if e.Type != entity.ExceptionSpecial {
			continue
		}
		winStart, err := parseClock(e.StartTime)
		if err != nil {
			continue
		}
		winEnd, err := parseClock(e.EndTime)
		if err != nil {
			continue
		}
		if t.Before(winEnd) && winStart.Before(slotEnd) {
			return true
		}
	}
	return false
}

// parseClock accepts "HH:MM" and the "HH:MM:SS" shape database drivers
// produce for TIME columns.
func parseClock(value string) (time.Time, error) {
	if t, err := time.Parse("15:04", value); err == nil {
		return t, nil
	}
	return time.Parse("15:04:05", value)
}
