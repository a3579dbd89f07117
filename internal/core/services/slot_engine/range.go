package slot_engine

import (
	"fmt"
	"time"

	"github.com/citamed/agenda-slots-service/internal/core/domain"
	"github.com/citamed/agenda-slots-service/internal/core/json_types"
)

// GenerateRangeAvailability applies the day generator across the inclusive
// range [from, to] and reduces the result per the view mode:
//
//   - day: the full slot sequence for from (callers pass from == to);
//   - week/month: per-date availability flags plus the compact list of dates
//     with at least one open slot.
//
// Dates with no active rule or no open slot are simply absent from
// AvailableDates, never an error. An empty or inverted range yields an empty
// result. Output ordering is dates ascending, times ascending within a date.
func GenerateRangeAvailability(
	rules *RuleSet,
	from, to json_types.Date,
	appointments []domain.Appointment,
	now time.Time,
	viewMode domain.ViewMode,
) (*domain.RangeAvailability, error) {
	if !viewMode.Valid() {
		return nil, fmt.Errorf("unknown view mode %q", viewMode)
	}

	occupied, err := OccupiedStartTimes(appointments)
	if err != nil {
		return nil, err
	}

	result := &domain.RangeAvailability{ViewMode: viewMode}

	if viewMode == domain.ViewModeDay {
		result.Slots = GenerateDaySlots(rules, from, occupied[from.String()], now)
		return result, nil
	}

	result.Days = make([]domain.DayAvailability, 0)
	result.AvailableDates = make([]json_types.Date, 0)

	for date := from; !date.After(to); date = date.AddDays(1) {
		slots := GenerateDaySlots(rules, date, occupied[date.String()], now)

		hasAvailable := false
		for _, slot := range slots {
			if slot.Available {
				hasAvailable = true
				break
			}
		}

		result.Days = append(result.Days, domain.DayAvailability{
			Date:         date,
			HasAvailable: hasAvailable,
		})
		if hasAvailable {
			result.AvailableDates = append(result.AvailableDates, date)
		}
	}

	return result, nil
}
