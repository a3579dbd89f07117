package cache

import (
	"context"
	"sync"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/citamed/agenda-slots-service/internal/config"
	"github.com/citamed/agenda-slots-service/internal/core/domain"
	"github.com/citamed/agenda-slots-service/internal/core/json_types"
	"github.com/citamed/agenda-slots-service/internal/core/ports/out"
)

// doctorSlotsEntry holds one doctor's cached day slots keyed by date, so the
// whole doctor can be dropped in one invalidation when an appointment event
// arrives.
type doctorSlotsEntry struct {
	days map[string][]domain.TimeSlot
}

type CacheAdapter struct {
	doctors *lru.Cache[uuid.UUID, *doctorSlotsEntry]
	mu      sync.RWMutex
	logger  out.LoggerPort
}

func NewCacheAdapter(cfg *config.Config, logger out.LoggerPort) (*CacheAdapter, error) {
	if !cfg.Cache.Enabled {
		logger.Info("cache.disabled", out.LogFields{
			"message": "Cache is disabled",
		})
		return nil, nil
	}

	doctors, err := lru.New[uuid.UUID, *doctorSlotsEntry](cfg.Cache.DoctorsSize)
	if err != nil {
		logger.Error("cache.init.failed", out.LogFields{
			"error": err.Error(),
			"size":  cfg.Cache.DoctorsSize,
		})
		return nil, err
	}

	return &CacheAdapter{
		doctors: doctors,
		logger:  logger.WithModule("CacheAdapter"),
	}, nil
}

func (c *CacheAdapter) GetDaySlots(ctx context.Context, doctorID uuid.UUID, date json_types.Date) ([]domain.TimeSlot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.doctors.Get(doctorID)
	if !exists {
		return nil, false
	}

	slots, exists := entry.days[date.String()]
	if !exists {
		return nil, false
	}

	c.logger.Debug("cache.slots.get.hit", out.LogFields{
		"doctorId":   doctorID,
		"date":       date.String(),
		"slotsCount": len(slots),
	})
	return slots, true
}

func (c *CacheAdapter) StoreDaySlots(ctx context.Context, doctorID uuid.UUID, date json_types.Date, slots []domain.TimeSlot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.doctors.Get(doctorID)
	if !exists {
		entry = &doctorSlotsEntry{days: make(map[string][]domain.TimeSlot)}
	}

	entry.days[date.String()] = slots
	c.doctors.Add(doctorID, entry)

	c.logger.Debug("cache.slots.store", out.LogFields{
		"doctorId":   doctorID,
		"date":       date.String(),
		"slotsCount": len(slots),
	})
}

func (c *CacheAdapter) InvalidateDoctor(ctx context.Context, doctorID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.doctors.Remove(doctorID)

	c.logger.Debug("cache.slots.invalidate", out.LogFields{
		"doctorId": doctorID,
	})
}
