package in

import (
	"context"

	"github.com/google/uuid"

	"github.com/citamed/agenda-slots-service/internal/core/domain"
	"github.com/citamed/agenda-slots-service/internal/core/json_types"
)

type SlotEngineUseCase interface {
	// Full slot sequence for one doctor and date (booking wizard).
	GetDaySlots(ctx context.Context, doctorID uuid.UUID, date json_types.Date) ([]domain.TimeSlot, error)

	// Day/week/month availability over an inclusive date range (search and
	// calendar views).
	GetRangeAvailability(ctx context.Context, doctorID uuid.UUID, from, to json_types.Date, viewMode domain.ViewMode) (*domain.RangeAvailability, error)

	// Day slots for several doctors at once (reception desk).
	GetBatchDaySlots(ctx context.Context, doctorIDs []uuid.UUID, date json_types.Date) (map[uuid.UUID][]domain.TimeSlot, error)

	// Optimistic booking: re-checks availability, then inserts; the store
	// rejects a concurrently taken slot.
	BookAppointment(ctx context.Context, dto domain.CreateAppointmentDTO) (*domain.Appointment, error)

	// Status change using the presentation vocabulary.
	ChangeAppointmentStatus(ctx context.Context, appointmentID uuid.UUID, presentationStatus string) (*domain.Appointment, error)
}
