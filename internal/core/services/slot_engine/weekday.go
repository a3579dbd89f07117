package slot_engine

import (
	"time"

	"github.com/citamed/agenda-slots-service/internal/core/domain"
)

// NormalizeWeekday converts Go's Sunday-first weekday numbering (0..6) to the
// rule numbering (1 = Monday .. 7 = Sunday).
func NormalizeWeekday(date time.Time) domain.Weekday {
	platformDay := int(date.Weekday())
	if platformDay == 0 {
		return domain.Sunday
	}
	return domain.Weekday(platformDay)
}
