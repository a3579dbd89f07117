package domain

import (
	"errors"
	"fmt"
)

// ErrSlotTaken is returned when a booking targets a slot already claimed by an
// occupying-status appointment, including a concurrent claim rejected by the
// store's uniqueness constraint.
var ErrSlotTaken = errors.New("time slot is already taken")

// ErrSlotUnavailable is returned when a booking targets a time the doctor does
// not offer: no active rule, off the slot grid, or already in the past.
var ErrSlotUnavailable = errors.New("time slot is not bookable")

// UnknownStatusError reports a status token outside the closed vocabulary.
type UnknownStatusError struct {
	Token string
}

func (e *UnknownStatusError) Error() string {
	return fmt.Sprintf("unknown appointment status %q", e.Token)
}

// InvalidRuleError reports a malformed weekly availability rule, raised when
// rules are loaded into the slot engine rather than during slot iteration.
type InvalidRuleError struct {
	DayOfWeek Weekday
	Reason    string
}

func (e *InvalidRuleError) Error() string {
	return fmt.Sprintf("invalid availability rule for weekday %d: %s", e.DayOfWeek, e.Reason)
}
