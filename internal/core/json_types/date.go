package json_types

import (
	"encoding/json"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar date without time-of-day, serialized as YYYY-MM-DD.
type Date struct {
	Time time.Time
}

func ParseDate(str string) (Date, error) {
	parsed, err := time.Parse(dateLayout, str)
	if err != nil {
		return Date{}, fmt.Errorf("failed to parse date %q: %w", str, err)
	}
	return Date{Time: parsed}, nil
}

// DateOf truncates t to its calendar date.
func DateOf(t time.Time) Date {
	return Date{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if len(data) < 2 {
		return fmt.Errorf("failed to parse date: %q", string(data))
	}
	// Strip surrounding quotes
	str := string(data[1 : len(data)-1])

	parsed, err := ParseDate(str)
	if err != nil {
		return err
	}

	*d = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Time.Format(dateLayout))
}

func (d Date) String() string {
	return d.Time.Format(dateLayout)
}

func (d Date) IsZero() bool {
	return d.Time.IsZero()
}

func (d Date) Equal(other Date) bool {
	return d.String() == other.String()
}

func (d Date) Before(other Date) bool {
	return d.String() < other.String()
}

func (d Date) After(other Date) bool {
	return d.String() > other.String()
}

func (d Date) AddDays(days int) Date {
	return Date{Time: d.Time.AddDate(0, 0, days)}
}
