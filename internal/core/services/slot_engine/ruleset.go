package slot_engine

import (
	"fmt"

	"github.com/citamed/agenda-slots-service/internal/core/domain"
	"github.com/citamed/agenda-slots-service/internal/core/json_types"
)

type dayWindow struct {
	start json_types.ClockTime
	end   json_types.ClockTime
}

// RuleSet is a doctor's weekly schedule, validated once at load time so that
// slot generation never has to deal with malformed rules. Inactive days are
// validated too but carry no window.
type RuleSet struct {
	windows map[domain.Weekday]dayWindow
}

// NewRuleSet validates raw availability rules and rejects with
// InvalidRuleError: weekday outside 1..7, malformed HH:MM, startTime after
// endTime, or a duplicate weekday. startTime equal to endTime is accepted and
// yields an empty day.
func NewRuleSet(rules []domain.AvailabilityRule) (*RuleSet, error) {
	windows := make(map[domain.Weekday]dayWindow)
	seen := make(map[domain.Weekday]bool)

	for _, rule := range rules {
		if !rule.DayOfWeek.Valid() {
			return nil, &domain.InvalidRuleError{
				DayOfWeek: rule.DayOfWeek,
				Reason:    "dayOfWeek must be between 1 (Monday) and 7 (Sunday)",
			}
		}
		if seen[rule.DayOfWeek] {
			return nil, &domain.InvalidRuleError{
				DayOfWeek: rule.DayOfWeek,
				Reason:    "duplicate rule for weekday",
			}
		}
		seen[rule.DayOfWeek] = true

		start, err := json_types.ParseClockTime(rule.StartTime)
		if err != nil {
			return nil, &domain.InvalidRuleError{
				DayOfWeek: rule.DayOfWeek,
				Reason:    fmt.Sprintf("malformed startTime %q", rule.StartTime),
			}
		}
		end, err := json_types.ParseClockTime(rule.EndTime)
		if err != nil {
			return nil, &domain.InvalidRuleError{
				DayOfWeek: rule.DayOfWeek,
				Reason:    fmt.Sprintf("malformed endTime %q", rule.EndTime),
			}
		}
		if start.After(end) {
			return nil, &domain.InvalidRuleError{
				DayOfWeek: rule.DayOfWeek,
				Reason:    fmt.Sprintf("startTime %s is after endTime %s", rule.StartTime, rule.EndTime),
			}
		}

		if !rule.Active {
			continue
		}
		windows[rule.DayOfWeek] = dayWindow{start: start, end: end}
	}

	return &RuleSet{windows: windows}, nil
}

// Window returns the attending window for a weekday, if the doctor has an
// active rule for it.
func (rs *RuleSet) Window(day domain.Weekday) (dayWindow, bool) {
	window, ok := rs.windows[day]
	return window, ok
}
