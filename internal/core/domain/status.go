package domain

// AppointmentStatus is the persisted status vocabulary. The presentation
// layer uses a second lexical form; the two are bridged by MapStatus over a
// closed table, never by ad-hoc string rewriting.
type AppointmentStatus string

const (
	AppointmentStatusScheduled  AppointmentStatus = "programada"
	AppointmentStatusConfirmed  AppointmentStatus = "confirmada"
	AppointmentStatusInProgress AppointmentStatus = "en_curso"
	AppointmentStatusCompleted  AppointmentStatus = "completada"
	AppointmentStatusCancelled  AppointmentStatus = "cancelada"
	AppointmentStatusNoShow     AppointmentStatus = "no_asistio"
)

type StatusDirection string

const (
	StatusToPresentation StatusDirection = "toPresentation"
	StatusToPersisted    StatusDirection = "toPersisted"
)

var statusToPresentation = map[AppointmentStatus]string{
	AppointmentStatusScheduled:  "programada",
	AppointmentStatusConfirmed:  "confirmada",
	AppointmentStatusInProgress: "en-curso",
	AppointmentStatusCompleted:  "completada",
	AppointmentStatusCancelled:  "cancelada",
	AppointmentStatusNoShow:     "no-show",
}

var statusToPersisted = map[string]AppointmentStatus{
	"programada": AppointmentStatusScheduled,
	"confirmada": AppointmentStatusConfirmed,
	"en-curso":   AppointmentStatusInProgress,
	"completada": AppointmentStatusCompleted,
	"cancelada":  AppointmentStatusCancelled,
	"no-show":    AppointmentStatusNoShow,
}

// statusOccupies marks which statuses block a slot from rebooking.
var statusOccupies = map[AppointmentStatus]bool{
	AppointmentStatusScheduled:  true,
	AppointmentStatusConfirmed:  true,
	AppointmentStatusInProgress: true,
	AppointmentStatusCompleted:  true,
	AppointmentStatusCancelled:  false,
	AppointmentStatusNoShow:     false,
}

// MapStatus converts a status token between the persisted and presentation
// vocabularies. Tokens outside the closed table fail with UnknownStatusError
// rather than passing through: slot occupancy depends on knowing every status.
func MapStatus(token string, direction StatusDirection) (string, error) {
	switch direction {
	case StatusToPresentation:
		presentation, ok := statusToPresentation[AppointmentStatus(token)]
		if !ok {
			return "", &UnknownStatusError{Token: token}
		}
		return presentation, nil
	case StatusToPersisted:
		persisted, ok := statusToPersisted[token]
		if !ok {
			return "", &UnknownStatusError{Token: token}
		}
		return string(persisted), nil
	default:
		return "", &UnknownStatusError{Token: token}
	}
}

// ParseStatus maps a presentation-form token to its persisted status.
func ParseStatus(token string) (AppointmentStatus, error) {
	persisted, ok := statusToPersisted[token]
	if !ok {
		return "", &UnknownStatusError{Token: token}
	}
	return persisted, nil
}

// StatusOccupies reports whether an appointment in this status blocks its
// slot. Unknown statuses are an error, never silently non-occupying.
func StatusOccupies(status AppointmentStatus) (bool, error) {
	occupies, ok := statusOccupies[status]
	if !ok {
		return false, &UnknownStatusError{Token: string(status)}
	}
	return occupies, nil
}

// OccupyingStatuses returns the persisted tokens that block a slot, for the
// store layer's uniqueness checks.
func OccupyingStatuses() []string {
	return []string{
		string(AppointmentStatusScheduled),
		string(AppointmentStatusConfirmed),
		string(AppointmentStatusInProgress),
		string(AppointmentStatusCompleted),
	}
}
