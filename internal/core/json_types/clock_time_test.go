package json_types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClockTime_RejectsMalformed(t *testing.T) {
	for _, str := range []string{"9am", "25:00", "09:61", "0900", ""} {
		_, err := ParseClockTime(str)
		assert.Error(t, err, "%q should not parse", str)
	}
}

func TestClockTimeOf_TruncatesToMinute(t *testing.T) {
	// Seconds must not make a slot starting this minute look bookable
	now := time.Date(2026, 3, 2, 9, 30, 45, 0, time.UTC)
	clock := ClockTimeOf(now)

	slot, err := ParseClockTime("09:30")
	require.NoError(t, err)

	assert.True(t, clock.Equal(slot))
	assert.False(t, slot.After(clock))
}

func TestDateComparisons(t *testing.T) {
	monday, err := ParseDate("2026-03-02")
	require.NoError(t, err)

	tuesday := monday.AddDays(1)
	assert.Equal(t, "2026-03-03", tuesday.String())
	assert.True(t, monday.Before(tuesday))
	assert.True(t, tuesday.After(monday))
	assert.True(t, monday.Equal(DateOf(time.Date(2026, 3, 2, 23, 59, 0, 0, time.UTC))))
}
