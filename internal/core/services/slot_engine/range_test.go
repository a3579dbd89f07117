package slot_engine

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citamed/agenda-slots-service/internal/core/domain"
)

func TestGenerateRangeAvailability_WeekNeverReportsDayWithoutOpenSlot(t *testing.T) {
	ruleSet := weekdayRules(t)
	from := mustDate(t, "2026-03-02")
	to := mustDate(t, "2026-03-08")
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	doctorID := uuid.New()

	// Fully book the Tuesday: 09:00..11:30 is six 30-minute slots
	appointments := make([]domain.Appointment, 0, 6)
	tuesday := mustDate(t, "2026-03-03")
	for _, start := range []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"} {
		appointments = append(appointments, domain.Appointment{
			ID: uuid.New(), DoctorID: doctorID, Date: tuesday,
			StartTime: mustClock(t, start), Status: domain.AppointmentStatusScheduled,
		})
	}

	result, err := GenerateRangeAvailability(ruleSet, from, to, appointments, now, domain.ViewModeWeek)
	require.NoError(t, err)
	require.Len(t, result.Days, 7)

	occupied, err := OccupiedStartTimes(appointments)
	require.NoError(t, err)

	// Cross-check: a day is reported available iff its day view holds at
	// least one open slot
	for _, day := range result.Days {
		slots := GenerateDaySlots(ruleSet, day.Date, occupied[day.Date.String()], now)
		hasOpen := false
		for _, slot := range slots {
			if slot.Available {
				hasOpen = true
				break
			}
		}
		assert.Equal(t, hasOpen, day.HasAvailable, "date %s", day.Date)
	}

	for _, date := range result.AvailableDates {
		assert.NotEqual(t, tuesday.String(), date.String(), "fully booked Tuesday must not be available")
	}
	// Mon, Wed, Thu, Fri remain open; Sat and Sun have no rule
	assert.Len(t, result.AvailableDates, 4)
}

func TestGenerateRangeAvailability_SingleMorningMonday(t *testing.T) {
	ruleSet, err := NewRuleSet([]domain.AvailabilityRule{
		{DayOfWeek: domain.Monday, Active: true, StartTime: "08:00", EndTime: "09:00"},
	})
	require.NoError(t, err)

	from := mustDate(t, "2026-03-02")
	to := mustDate(t, "2026-03-08")
	// The queried Monday at 07:00
	now := time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC)

	t.Run("day view", func(t *testing.T) {
		result, err := GenerateRangeAvailability(ruleSet, from, from, nil, now, domain.ViewModeDay)
		require.NoError(t, err)
		require.Len(t, result.Slots, 2)

		assert.Equal(t, []string{"08:00", "08:30"}, startTimes(result.Slots))
		assert.True(t, result.Slots[0].Available)
		assert.True(t, result.Slots[1].Available)
		assert.Empty(t, result.Days)
	})

	t.Run("week view", func(t *testing.T) {
		result, err := GenerateRangeAvailability(ruleSet, from, to, nil, now, domain.ViewModeWeek)
		require.NoError(t, err)

		require.Len(t, result.AvailableDates, 1)
		assert.Equal(t, "2026-03-02", result.AvailableDates[0].String())

		require.Len(t, result.Days, 7)
		for i, day := range result.Days {
			assert.Equal(t, i == 0, day.HasAvailable, "only the Monday has openings")
		}
	})
}

func TestGenerateRangeAvailability_DatesAscending(t *testing.T) {
	ruleSet := weekdayRules(t)
	from := mustDate(t, "2026-03-01")
	to := mustDate(t, "2026-03-31")
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	result, err := GenerateRangeAvailability(ruleSet, from, to, nil, now, domain.ViewModeMonth)
	require.NoError(t, err)
	require.Len(t, result.Days, 31)

	for i := 1; i < len(result.Days); i++ {
		assert.True(t, result.Days[i-1].Date.Before(result.Days[i].Date))
	}
	for i := 1; i < len(result.AvailableDates); i++ {
		assert.True(t, result.AvailableDates[i-1].Before(result.AvailableDates[i]))
	}
}

func TestGenerateRangeAvailability_InvertedRangeIsEmpty(t *testing.T) {
	ruleSet := weekdayRules(t)
	from := mustDate(t, "2026-03-08")
	to := mustDate(t, "2026-03-02")
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	result, err := GenerateRangeAvailability(ruleSet, from, to, nil, now, domain.ViewModeWeek)
	require.NoError(t, err)
	assert.Empty(t, result.Days)
	assert.Empty(t, result.AvailableDates)
}

func TestGenerateRangeAvailability_UnknownViewMode(t *testing.T) {
	ruleSet := weekdayRules(t)
	from := mustDate(t, "2026-03-02")
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	_, err := GenerateRangeAvailability(ruleSet, from, from, nil, now, domain.ViewMode("quarter"))
	require.Error(t, err)
}
