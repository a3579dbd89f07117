package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/citamed/agenda-slots-service/internal/core/domain"
	"github.com/citamed/agenda-slots-service/internal/core/json_types"
	"github.com/citamed/agenda-slots-service/internal/core/ports/out"
)

const pgUniqueViolation = "23505"

type AgendaAdapter struct {
	db     *pgxpool.Pool
	logger out.LoggerPort
}

func NewAgendaAdapter(db *pgxpool.Pool, logger out.LoggerPort) *AgendaAdapter {
	return &AgendaAdapter{
		db:     db,
		logger: logger.WithModule("AgendaAdapter"),
	}
}

func (a *AgendaAdapter) GetWeeklyRules(ctx context.Context, doctorID uuid.UUID) ([]domain.AvailabilityRule, error) {
	query := `
		SELECT day_of_week, active, start_time, end_time
		FROM weekly_availability_rules
		WHERE doctor_id = $1
		ORDER BY day_of_week
	`

	rows, err := a.db.Query(ctx, query, doctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to query weekly rules: %w", err)
	}
	defer rows.Close()

	rules := make([]domain.AvailabilityRule, 0)
	for rows.Next() {
		var rule domain.AvailabilityRule
		var dayOfWeek int
		if err := rows.Scan(&dayOfWeek, &rule.Active, &rule.StartTime, &rule.EndTime); err != nil {
			return nil, fmt.Errorf("failed to scan weekly rule: %w", err)
		}
		rule.DayOfWeek = domain.Weekday(dayOfWeek)
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return rules, nil
}

func (a *AgendaAdapter) GetAppointments(ctx context.Context, doctorID uuid.UUID, from, to json_types.Date) ([]domain.Appointment, error) {
	query := `
		SELECT id, doctor_id, patient_id, date, start_time, status, created_at, updated_at
		FROM appointments
		WHERE doctor_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date, start_time
	`

	rows, err := a.db.Query(ctx, query, doctorID, from.Time, to.Time)
	if err != nil {
		return nil, fmt.Errorf("failed to query appointments: %w", err)
	}
	defer rows.Close()

	appointments := make([]domain.Appointment, 0)
	for rows.Next() {
		appointment, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		appointments = append(appointments, *appointment)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return appointments, nil
}

func (a *AgendaAdapter) GetAppointmentByID(ctx context.Context, appointmentID uuid.UUID) (*domain.Appointment, error) {
	query := `
		SELECT id, doctor_id, patient_id, date, start_time, status, created_at, updated_at
		FROM appointments
		WHERE id = $1
	`

	row := a.db.QueryRow(ctx, query, appointmentID)
	appointment, err := scanAppointment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("appointment %s not found", appointmentID)
		}
		return nil, err
	}

	return appointment, nil
}

// CreateAppointment inserts with a check-then-insert transaction. The partial
// unique index on (doctor_id, date, start_time) for occupying statuses closes
// the race between the check and the insert; a violation maps to ErrSlotTaken.
func (a *AgendaAdapter) CreateAppointment(ctx context.Context, appointment domain.Appointment) error {
	tx, err := a.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	checkQuery := `
		SELECT COUNT(*)
		FROM appointments
		WHERE doctor_id = $1 AND date = $2 AND start_time = $3 AND status = ANY($4)
	`

	var count int
	err = tx.QueryRow(ctx, checkQuery,
		appointment.DoctorID,
		appointment.Date.Time,
		appointment.StartTime.String(),
		domain.OccupyingStatuses(),
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to check slot occupancy: %w", err)
	}
	if count > 0 {
		return domain.ErrSlotTaken
	}

	insertQuery := `
		INSERT INTO appointments (id, doctor_id, patient_id, date, start_time, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err = tx.Exec(ctx, insertQuery,
		appointment.ID,
		appointment.DoctorID,
		appointment.PatientID,
		appointment.Date.Time,
		appointment.StartTime.String(),
		string(appointment.Status),
		appointment.CreatedAt,
		appointment.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return domain.ErrSlotTaken
		}
		return fmt.Errorf("failed to insert appointment: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return domain.ErrSlotTaken
		}
		return fmt.Errorf("failed to commit appointment: %w", err)
	}

	return nil
}

func (a *AgendaAdapter) UpdateAppointmentStatus(ctx context.Context, appointmentID uuid.UUID, status domain.AppointmentStatus) error {
	query := `
		UPDATE appointments
		SET status = $2, updated_at = now()
		WHERE id = $1
	`

	tag, err := a.db.Exec(ctx, query, appointmentID, string(status))
	if err != nil {
		return fmt.Errorf("failed to update appointment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("appointment %s not found", appointmentID)
	}

	return nil
}

func scanAppointment(row pgx.Row) (*domain.Appointment, error) {
	var appointment domain.Appointment
	var date time.Time
	var startTime string
	var status string

	err := row.Scan(
		&appointment.ID,
		&appointment.DoctorID,
		&appointment.PatientID,
		&date,
		&startTime,
		&status,
		&appointment.CreatedAt,
		&appointment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	appointment.Date = json_types.DateOf(date)
	appointment.Status = domain.AppointmentStatus(status)

	clock, err := json_types.ParseClockTime(startTime)
	if err != nil {
		return nil, fmt.Errorf("failed to parse stored start time: %w", err)
	}
	appointment.StartTime = clock

	return &appointment, nil
}
