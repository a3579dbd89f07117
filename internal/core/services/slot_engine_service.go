package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/citamed/agenda-slots-service/internal/config"
	"github.com/citamed/agenda-slots-service/internal/core/domain"
	"github.com/citamed/agenda-slots-service/internal/core/json_types"
	"github.com/citamed/agenda-slots-service/internal/core/ports/out"
	"github.com/citamed/agenda-slots-service/internal/core/services/slot_engine"
)

type SlotEngineService struct {
	agendaPort out.AgendaPort
	cachePort  out.CachePort
	logger     out.LoggerPort
	cfg        *config.Config
	now        func() time.Time
}

func NewSlotEngineService(
	agendaPort out.AgendaPort,
	cachePort out.CachePort,
	logger out.LoggerPort,
	cfg *config.Config,
) *SlotEngineService {
	return &SlotEngineService{
		agendaPort: agendaPort,
		cachePort:  cachePort,
		logger:     logger.WithModule("SlotEngineService"),
		cfg:        cfg,
		now:        time.Now,
	}
}

// WithClock replaces the clock; tests inject a fixed "now" so slot
// computation stays deterministic.
func (s *SlotEngineService) WithClock(now func() time.Time) *SlotEngineService {
	s.now = now
	return s
}

func (s *SlotEngineService) GetDaySlots(ctx context.Context, doctorID uuid.UUID, date json_types.Date) ([]domain.TimeSlot, error) {
	s.logger.Info("slots.day.started", out.LogFields{
		"doctorId": doctorID,
		"date":     date.String(),
	})

	now := s.now()

	// Today's slots depend on the current time, so only other dates are
	// worth caching.
	cacheable := s.cacheEnabled() && !date.Equal(json_types.DateOf(now))

	if cacheable {
		if slots, exists := s.cachePort.GetDaySlots(ctx, doctorID, date); exists {
			s.logger.Debug("slots.day.cache.hit", out.LogFields{
				"doctorId":   doctorID,
				"date":       date.String(),
				"slotsCount": len(slots),
			})
			return slots, nil
		}
		s.logger.Debug("slots.day.cache.miss", out.LogFields{
			"doctorId": doctorID,
			"date":     date.String(),
		})
	}

	ruleSet, err := s.loadRuleSet(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	appointments, err := s.agendaPort.GetAppointments(ctx, doctorID, date, date)
	if err != nil {
		s.logger.Error("slots.day.appointments.fetch_failed", out.LogFields{
			"doctorId": doctorID,
			"error":    err.Error(),
		})
		return nil, fmt.Errorf("slots.day.appointments.fetch_failed: %w", err)
	}

	occupied, err := slot_engine.OccupiedStartTimes(appointments)
	if err != nil {
		s.logger.Error("slots.day.status.unknown", out.LogFields{
			"doctorId": doctorID,
			"error":    err.Error(),
		})
		return nil, err
	}

	slots := slot_engine.GenerateDaySlots(ruleSet, date, occupied[date.String()], now)

	if cacheable {
		s.cachePort.StoreDaySlots(ctx, doctorID, date, slots)
	}

	return slots, nil
}

func (s *SlotEngineService) GetRangeAvailability(ctx context.Context, doctorID uuid.UUID, from, to json_types.Date, viewMode domain.ViewMode) (*domain.RangeAvailability, error) {
	s.logger.Info("slots.range.started", out.LogFields{
		"doctorId": doctorID,
		"from":     from.String(),
		"to":       to.String(),
		"viewMode": viewMode,
	})

	ruleSet, err := s.loadRuleSet(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	appointments, err := s.agendaPort.GetAppointments(ctx, doctorID, from, to)
	if err != nil {
		s.logger.Error("slots.range.appointments.fetch_failed", out.LogFields{
			"doctorId": doctorID,
			"error":    err.Error(),
		})
		return nil, fmt.Errorf("slots.range.appointments.fetch_failed: %w", err)
	}

	result, err := slot_engine.GenerateRangeAvailability(ruleSet, from, to, appointments, s.now(), viewMode)
	if err != nil {
		s.logger.Error("slots.range.generate_failed", out.LogFields{
			"doctorId": doctorID,
			"error":    err.Error(),
		})
		return nil, err
	}

	return result, nil
}

func (s *SlotEngineService) GetBatchDaySlots(ctx context.Context, doctorIDs []uuid.UUID, date json_types.Date) (map[uuid.UUID][]domain.TimeSlot, error) {
	result := make(map[uuid.UUID][]domain.TimeSlot)
	var mu sync.Mutex
	var wg sync.WaitGroup
	errCh := make(chan error, len(doctorIDs))

	for _, id := range doctorIDs {
		wg.Add(1)
		go func(doctorID uuid.UUID) {
			defer wg.Done()

			slots, err := s.GetDaySlots(ctx, doctorID, date)
			if err != nil {
				errCh <- err
				return
			}

			mu.Lock()
			result[doctorID] = slots
			mu.Unlock()
		}(id)
	}

	wg.Wait()
	close(errCh)

	for err := range errCh {
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

func (s *SlotEngineService) BookAppointment(ctx context.Context, dto domain.CreateAppointmentDTO) (*domain.Appointment, error) {
	s.logger.Info("appointment.book.started", out.LogFields{
		"doctorId":  dto.DoctorID,
		"date":      dto.Date.String(),
		"startTime": dto.StartTime.String(),
	})

	// Optimistic re-check against a fresh snapshot; the store's uniqueness
	// constraint is the final arbiter for concurrent claims.
	slots, err := s.GetDaySlots(ctx, dto.DoctorID, dto.Date)
	if err != nil {
		return nil, err
	}

	bookable := false
	for _, slot := range slots {
		if slot.StartTime.Equal(dto.StartTime) {
			if !slot.Available {
				return nil, domain.ErrSlotTaken
			}
			bookable = true
			break
		}
	}
	if !bookable {
		return nil, domain.ErrSlotUnavailable
	}

	now := s.now()
	appointment := domain.Appointment{
		ID:        uuid.New(),
		DoctorID:  dto.DoctorID,
		PatientID: dto.PatientID,
		Date:      dto.Date,
		StartTime: dto.StartTime,
		Status:    domain.AppointmentStatusScheduled,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.agendaPort.CreateAppointment(ctx, appointment); err != nil {
		s.logger.Error("appointment.book.failed", out.LogFields{
			"doctorId": dto.DoctorID,
			"error":    err.Error(),
		})
		return nil, err
	}

	if s.cacheEnabled() {
		s.cachePort.InvalidateDoctor(ctx, dto.DoctorID)
	}

	s.logger.Info("appointment.book.created", out.LogFields{
		"appointmentId": appointment.ID,
		"doctorId":      dto.DoctorID,
	})

	return &appointment, nil
}

func (s *SlotEngineService) ChangeAppointmentStatus(ctx context.Context, appointmentID uuid.UUID, presentationStatus string) (*domain.Appointment, error) {
	status, err := domain.ParseStatus(presentationStatus)
	if err != nil {
		s.logger.Error("appointment.status.unknown", out.LogFields{
			"appointmentId": appointmentID,
			"status":        presentationStatus,
		})
		return nil, err
	}

	if err := s.agendaPort.UpdateAppointmentStatus(ctx, appointmentID, status); err != nil {
		s.logger.Error("appointment.status.update_failed", out.LogFields{
			"appointmentId": appointmentID,
			"error":         err.Error(),
		})
		return nil, fmt.Errorf("appointment.status.update_failed: %w", err)
	}

	appointment, err := s.agendaPort.GetAppointmentByID(ctx, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("appointment.status.fetch_failed: %w", err)
	}

	if s.cacheEnabled() {
		s.cachePort.InvalidateDoctor(ctx, appointment.DoctorID)
	}

	return appointment, nil
}

func (s *SlotEngineService) loadRuleSet(ctx context.Context, doctorID uuid.UUID) (*slot_engine.RuleSet, error) {
	rules, err := s.agendaPort.GetWeeklyRules(ctx, doctorID)
	if err != nil {
		s.logger.Error("slots.rules.fetch_failed", out.LogFields{
			"doctorId": doctorID,
			"error":    err.Error(),
		})
		return nil, fmt.Errorf("slots.rules.fetch_failed: %w", err)
	}

	ruleSet, err := slot_engine.NewRuleSet(rules)
	if err != nil {
		s.logger.Error("slots.rules.invalid", out.LogFields{
			"doctorId": doctorID,
			"error":    err.Error(),
		})
		return nil, err
	}

	return ruleSet, nil
}

func (s *SlotEngineService) cacheEnabled() bool {
	return s.cachePort != nil && s.cfg.Cache.Enabled
}
