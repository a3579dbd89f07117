package slot_engine

import (
	"time"

	"github.com/citamed/agenda-slots-service/internal/core/domain"
	"github.com/citamed/agenda-slots-service/internal/core/json_types"
)

// SlotGranularity is the fixed quantization of bookable start times. Slot
// boundaries are aligned to it starting from the rule's startTime.
const SlotGranularity = 30 * time.Minute

// GenerateDaySlots produces the ordered slot sequence for one (doctor, date)
// pair. booked holds the HH:MM start times of occupying-status appointments
// on that date. now must be injected by the caller; the engine never reads
// the system clock.
//
// A slot is available unless it is booked, or the date is today and the slot
// starts at or before now's time-of-day. A missing or inactive rule for the
// weekday yields an empty sequence, not an error. A booked time off the slot
// grid matches no candidate and is ignored.
func GenerateDaySlots(rules *RuleSet, date json_types.Date, booked map[string]struct{}, now time.Time) []domain.TimeSlot {
	slots := make([]domain.TimeSlot, 0)

	window, ok := rules.Window(NormalizeWeekday(date.Time))
	if !ok {
		return slots
	}

	isToday := date.Equal(json_types.DateOf(now))
	nowClock := json_types.ClockTimeOf(now)

	for start := window.start; start.Before(window.end); start = start.Add(SlotGranularity) {
		available := true
		if _, taken := booked[start.String()]; taken {
			available = false
		}
		if isToday && !start.After(nowClock) {
			available = false
		}

		slots = append(slots, domain.TimeSlot{
			Date:      date,
			StartTime: start,
			Available: available,
		})
	}

	return slots
}

// OccupiedStartTimes reduces raw appointments to the booked sets consumed by
// GenerateDaySlots, keyed first by date (YYYY-MM-DD) then by start time
// (HH:MM). Non-occupying statuses are skipped; a status outside the closed
// vocabulary fails with UnknownStatusError.
func OccupiedStartTimes(appointments []domain.Appointment) (map[string]map[string]struct{}, error) {
	occupied := make(map[string]map[string]struct{})

	for _, appointment := range appointments {
		occupies, err := domain.StatusOccupies(appointment.Status)
		if err != nil {
			return nil, err
		}
		if !occupies {
			continue
		}

		day := appointment.Date.String()
		if occupied[day] == nil {
			occupied[day] = make(map[string]struct{})
		}
		occupied[day][appointment.StartTime.String()] = struct{}{}
	}

	return occupied, nil
}
