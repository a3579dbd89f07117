package json_types

import (
	"encoding/json"
	"fmt"
	"time"
)

const clockLayout = "15:04"

// ClockTime is a wall-clock time-of-day, serialized as HH:MM (24h).
type ClockTime struct {
	Time time.Time
}

func ParseClockTime(str string) (ClockTime, error) {
	parsed, err := time.Parse(clockLayout, str)
	if err != nil {
		return ClockTime{}, fmt.Errorf("failed to parse time %q: %w", str, err)
	}
	return ClockTime{Time: parsed}, nil
}

// ClockTimeOf extracts the time-of-day from t, truncated to the minute.
func ClockTimeOf(t time.Time) ClockTime {
	return ClockTime{Time: time.Date(0, time.January, 1, t.Hour(), t.Minute(), 0, 0, time.UTC)}
}

func (c *ClockTime) UnmarshalJSON(data []byte) error {
	if len(data) < 2 {
		return fmt.Errorf("failed to parse time: %q", string(data))
	}
	// Strip surrounding quotes
	str := string(data[1 : len(data)-1])

	parsed, err := ParseClockTime(str)
	if err != nil {
		return err
	}

	*c = parsed
	return nil
}

func (c ClockTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Time.Format(clockLayout))
}

func (c ClockTime) String() string {
	return c.Time.Format(clockLayout)
}

func (c ClockTime) Equal(other ClockTime) bool {
	return c.Time.Equal(other.Time)
}

func (c ClockTime) Before(other ClockTime) bool {
	return c.Time.Before(other.Time)
}

func (c ClockTime) After(other ClockTime) bool {
	return c.Time.After(other.Time)
}

func (c ClockTime) Add(d time.Duration) ClockTime {
	return ClockTime{Time: c.Time.Add(d)}
}
