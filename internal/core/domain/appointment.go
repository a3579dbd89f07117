package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/citamed/agenda-slots-service/internal/core/json_types"
)

type Appointment struct {
	ID        uuid.UUID            `json:"id"`
	DoctorID  uuid.UUID            `json:"doctorId"`
	PatientID uuid.UUID            `json:"patientId"`
	Date      json_types.Date      `json:"date"`
	StartTime json_types.ClockTime `json:"startTime"`
	Status    AppointmentStatus    `json:"status"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`
}

type CreateAppointmentDTO struct {
	DoctorID  uuid.UUID
	PatientID uuid.UUID
	Date      json_types.Date
	StartTime json_types.ClockTime
}
