package domain

import (
	"github.com/citamed/agenda-slots-service/internal/core/json_types"
)

// TimeSlot is a derived value, never persisted: a pure function of the
// doctor's rules, the booked set and "now".
type TimeSlot struct {
	Date      json_types.Date      `json:"date"`
	StartTime json_types.ClockTime `json:"startTime"`
	Available bool                 `json:"available"`
}

type ViewMode string

const (
	ViewModeDay   ViewMode = "day"
	ViewModeWeek  ViewMode = "week"
	ViewModeMonth ViewMode = "month"
)

func (v ViewMode) Valid() bool {
	return v == ViewModeDay || v == ViewModeWeek || v == ViewModeMonth
}

type DayAvailability struct {
	Date         json_types.Date `json:"date"`
	HasAvailable bool            `json:"hasAvailable"`
}

// RangeAvailability is the range aggregator output. Slots is populated in day
// view; Days and AvailableDates in week and month views.
type RangeAvailability struct {
	ViewMode       ViewMode          `json:"viewMode"`
	Slots          []TimeSlot        `json:"slots,omitempty"`
	Days           []DayAvailability `json:"days,omitempty"`
	AvailableDates []json_types.Date `json:"availableDates,omitempty"`
}
