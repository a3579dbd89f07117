package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapStatus_RoundTrip(t *testing.T) {
	persisted := []string{"programada", "confirmada", "en_curso", "completada", "cancelada", "no_asistio"}

	for _, token := range persisted {
		t.Run(token, func(t *testing.T) {
			presentation, err := MapStatus(token, StatusToPresentation)
			require.NoError(t, err)

			back, err := MapStatus(presentation, StatusToPersisted)
			require.NoError(t, err)

			assert.Equal(t, token, back)
		})
	}
}

func TestMapStatus_PresentationForms(t *testing.T) {
	cases := map[string]string{
		"programada": "programada",
		"confirmada": "confirmada",
		"en_curso":   "en-curso",
		"completada": "completada",
		"cancelada":  "cancelada",
		"no_asistio": "no-show",
	}

	for persisted, presentation := range cases {
		got, err := MapStatus(persisted, StatusToPresentation)
		require.NoError(t, err)
		assert.Equal(t, presentation, got)
	}
}

func TestMapStatus_UnknownTokenBothDirections(t *testing.T) {
	for _, direction := range []StatusDirection{StatusToPresentation, StatusToPersisted} {
		_, err := MapStatus("pending", direction)
		require.Error(t, err)

		var unknown *UnknownStatusError
		require.True(t, errors.As(err, &unknown))
		assert.Equal(t, "pending", unknown.Token)
	}

	// The presentation form of no_asistio is not a valid persisted token
	_, err := MapStatus("no-show", StatusToPresentation)
	require.Error(t, err)

	// And the persisted form of en_curso is not a valid presentation token
	_, err = MapStatus("en_curso", StatusToPersisted)
	require.Error(t, err)
}

func TestStatusOccupies(t *testing.T) {
	occupying := []AppointmentStatus{
		AppointmentStatusScheduled,
		AppointmentStatusConfirmed,
		AppointmentStatusInProgress,
		AppointmentStatusCompleted,
	}
	for _, status := range occupying {
		occupies, err := StatusOccupies(status)
		require.NoError(t, err)
		assert.True(t, occupies, "%s should occupy", status)
	}

	for _, status := range []AppointmentStatus{AppointmentStatusCancelled, AppointmentStatusNoShow} {
		occupies, err := StatusOccupies(status)
		require.NoError(t, err)
		assert.False(t, occupies, "%s should not occupy", status)
	}

	_, err := StatusOccupies("booked")
	require.Error(t, err)
}

func TestOccupyingStatuses_MatchesTable(t *testing.T) {
	for _, token := range OccupyingStatuses() {
		occupies, err := StatusOccupies(AppointmentStatus(token))
		require.NoError(t, err)
		assert.True(t, occupies)
	}
	assert.Len(t, OccupyingStatuses(), 4)
}
