package out

import (
	"context"

	"github.com/google/uuid"

	"github.com/citamed/agenda-slots-service/internal/core/domain"
	"github.com/citamed/agenda-slots-service/internal/core/json_types"
)

// AgendaPort is the doctor/appointment store. The slot engine only reads from
// it; the single write path is appointment creation, where the store must
// reject a slot concurrently claimed by an occupying-status appointment.
type AgendaPort interface {
	GetWeeklyRules(ctx context.Context, doctorID uuid.UUID) ([]domain.AvailabilityRule, error)

	GetAppointments(ctx context.Context, doctorID uuid.UUID, from, to json_types.Date) ([]domain.Appointment, error)
	GetAppointmentByID(ctx context.Context, appointmentID uuid.UUID) (*domain.Appointment, error)
	CreateAppointment(ctx context.Context, appointment domain.Appointment) error
	UpdateAppointmentStatus(ctx context.Context, appointmentID uuid.UUID, status domain.AppointmentStatus) error
}
