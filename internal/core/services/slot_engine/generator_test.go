package slot_engine

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citamed/agenda-slots-service/internal/core/domain"
	"github.com/citamed/agenda-slots-service/internal/core/json_types"
)

func mustDate(t *testing.T, str string) json_types.Date {
	t.Helper()
	date, err := json_types.ParseDate(str)
	require.NoError(t, err)
	return date
}

func mustClock(t *testing.T, str string) json_types.ClockTime {
	t.Helper()
	clock, err := json_types.ParseClockTime(str)
	require.NoError(t, err)
	return clock
}

func weekdayRules(t *testing.T) *RuleSet {
	t.Helper()
	rules := make([]domain.AvailabilityRule, 0, 5)
	for day := domain.Monday; day <= domain.Friday; day++ {
		rules = append(rules, domain.AvailabilityRule{
			DayOfWeek: day, Active: true, StartTime: "09:00", EndTime: "12:00",
		})
	}
	ruleSet, err := NewRuleSet(rules)
	require.NoError(t, err)
	return ruleSet
}

func startTimes(slots []domain.TimeSlot) []string {
	times := make([]string, 0, len(slots))
	for _, slot := range slots {
		times = append(times, slot.StartTime.String())
	}
	return times
}

func TestGenerateDaySlots_NoActiveRuleYieldsEmpty(t *testing.T) {
	rules := weekdayRules(t)
	sunday := mustDate(t, "2026-03-08")
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	slots := GenerateDaySlots(rules, sunday, nil, now)
	assert.Empty(t, slots)
}

func TestGenerateDaySlots_ZeroRulesYieldsEmptyForEveryDate(t *testing.T) {
	ruleSet, err := NewRuleSet(nil)
	require.NoError(t, err)

	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		date := mustDate(t, "2026-03-02").AddDays(i)
		assert.Empty(t, GenerateDaySlots(ruleSet, date, nil, now))
	}
}

func TestGenerateDaySlots_GridAndBookedExclusion(t *testing.T) {
	ruleSet, err := NewRuleSet([]domain.AvailabilityRule{
		{DayOfWeek: domain.Monday, Active: true, StartTime: "09:00", EndTime: "10:00"},
	})
	require.NoError(t, err)

	monday := mustDate(t, "2026-03-02")
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	booked := map[string]struct{}{"09:30": {}}

	slots := GenerateDaySlots(ruleSet, monday, booked, now)
	require.Len(t, slots, 2)

	assert.Equal(t, []string{"09:00", "09:30"}, startTimes(slots))
	assert.True(t, slots[0].Available)
	assert.False(t, slots[1].Available)
	assert.Equal(t, monday.String(), slots[0].Date.String())
}

func TestGenerateDaySlots_PastTimeExclusionOnlyToday(t *testing.T) {
	ruleSet, err := NewRuleSet([]domain.AvailabilityRule{
		{DayOfWeek: domain.Monday, Active: true, StartTime: "09:00", EndTime: "10:00"},
	})
	require.NoError(t, err)

	monday := mustDate(t, "2026-03-02")
	// now is 09:15 on the queried Monday
	now := time.Date(2026, 3, 2, 9, 15, 0, 0, time.UTC)

	t.Run("today", func(t *testing.T) {
		slots := GenerateDaySlots(ruleSet, monday, nil, now)
		require.Len(t, slots, 2)
		assert.False(t, slots[0].Available, "09:00 is in the past")
		assert.True(t, slots[1].Available, "09:30 is still ahead")
	})

	t.Run("future date unaffected by time of day", func(t *testing.T) {
		nextMonday := mustDate(t, "2026-03-09")
		slots := GenerateDaySlots(ruleSet, nextMonday, nil, now)
		require.Len(t, slots, 2)
		assert.True(t, slots[0].Available)
		assert.True(t, slots[1].Available)
	})

	t.Run("slot starting exactly now is past", func(t *testing.T) {
		atNine := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
		slots := GenerateDaySlots(ruleSet, monday, nil, atNine)
		require.Len(t, slots, 2)
		assert.False(t, slots[0].Available, "a slot starting at now is not bookable")
		assert.True(t, slots[1].Available)
	})
}

func TestGenerateDaySlots_EmptyWindow(t *testing.T) {
	ruleSet, err := NewRuleSet([]domain.AvailabilityRule{
		{DayOfWeek: domain.Monday, Active: true, StartTime: "09:00", EndTime: "09:00"},
	})
	require.NoError(t, err)

	monday := mustDate(t, "2026-03-02")
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	assert.Empty(t, GenerateDaySlots(ruleSet, monday, nil, now))
}

func TestGenerateDaySlots_OffGridBookingIsIgnored(t *testing.T) {
	ruleSet, err := NewRuleSet([]domain.AvailabilityRule{
		{DayOfWeek: domain.Monday, Active: true, StartTime: "09:00", EndTime: "10:00"},
	})
	require.NoError(t, err)

	monday := mustDate(t, "2026-03-02")
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	// Booked before the doctor's grid changed; matches no candidate
	booked := map[string]struct{}{"09:45": {}}

	slots := GenerateDaySlots(ruleSet, monday, booked, now)
	require.Len(t, slots, 2)
	assert.True(t, slots[0].Available)
	assert.True(t, slots[1].Available)
}

func TestGenerateDaySlots_Idempotent(t *testing.T) {
	ruleSet := weekdayRules(t)
	monday := mustDate(t, "2026-03-02")
	now := time.Date(2026, 3, 2, 10, 5, 0, 0, time.UTC)
	booked := map[string]struct{}{"11:00": {}}

	first := GenerateDaySlots(ruleSet, monday, booked, now)
	second := GenerateDaySlots(ruleSet, monday, booked, now)

	assert.Equal(t, first, second)
}

func TestOccupiedStartTimes(t *testing.T) {
	monday := mustDate(t, "2026-03-02")
	doctorID := uuid.New()

	appointments := []domain.Appointment{
		{ID: uuid.New(), DoctorID: doctorID, Date: monday, StartTime: mustClock(t, "09:00"), Status: domain.AppointmentStatusConfirmed},
		{ID: uuid.New(), DoctorID: doctorID, Date: monday, StartTime: mustClock(t, "09:30"), Status: domain.AppointmentStatusCancelled},
		{ID: uuid.New(), DoctorID: doctorID, Date: monday.AddDays(1), StartTime: mustClock(t, "10:00"), Status: domain.AppointmentStatusScheduled},
	}

	occupied, err := OccupiedStartTimes(appointments)
	require.NoError(t, err)

	_, taken := occupied[monday.String()]["09:00"]
	assert.True(t, taken, "confirmed appointment occupies its slot")

	_, taken = occupied[monday.String()]["09:30"]
	assert.False(t, taken, "cancelled appointment does not occupy")

	_, taken = occupied[monday.AddDays(1).String()]["10:00"]
	assert.True(t, taken)
}

func TestOccupiedStartTimes_UnknownStatus(t *testing.T) {
	monday := mustDate(t, "2026-03-02")
	appointments := []domain.Appointment{
		{ID: uuid.New(), Date: monday, StartTime: mustClock(t, "09:00"), Status: "scheduled"},
	}

	_, err := OccupiedStartTimes(appointments)
	require.Error(t, err)

	var unknown *domain.UnknownStatusError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "scheduled", unknown.Token)
}
