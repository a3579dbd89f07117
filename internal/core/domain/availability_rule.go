package domain

// Weekday is the rule numbering for days of the week: 1 = Monday .. 7 = Sunday.
// It is distinct from time.Weekday, which starts at 0 = Sunday; conversions
// between the two live in the slot engine.
type Weekday int

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

func (w Weekday) Valid() bool {
	return w >= Monday && w <= Sunday
}

// AvailabilityRule is one day of a doctor's weekly recurring schedule, in the
// raw form supplied by the agenda store. StartTime and EndTime are HH:MM
// strings; they are parsed and validated when the rule set is loaded into the
// slot engine, not here.
type AvailabilityRule struct {
	DayOfWeek Weekday `json:"dayOfWeek"`
	Active    bool    `json:"active"`
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
}
