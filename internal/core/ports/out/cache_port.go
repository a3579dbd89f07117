package out

import (
	"context"

	"github.com/google/uuid"

	"github.com/citamed/agenda-slots-service/internal/core/domain"
	"github.com/citamed/agenda-slots-service/internal/core/json_types"
)

type CachePort interface {
	GetDaySlots(ctx context.Context, doctorID uuid.UUID, date json_types.Date) ([]domain.TimeSlot, bool)
	StoreDaySlots(ctx context.Context, doctorID uuid.UUID, date json_types.Date, slots []domain.TimeSlot)
	InvalidateDoctor(ctx context.Context, doctorID uuid.UUID)
}
