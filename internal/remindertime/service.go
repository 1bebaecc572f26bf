package remindertime

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Rajeshwarantask/Daily-Task-Monitor/internal/logger"
	"github.com/Rajeshwarantask/Daily-Task-Monitor/internal/routine"
)

// Rescheduler is the scheduler operation the service pushes configuration
// changes into. The scheduler never observes the store on its own.
type Rescheduler interface {
	ScheduleAll(ctx context.Context) error
}

// Service owns reminder-time reads and writes.
type Service struct {
	store     Store
	scheduler Rescheduler
	logger    *logger.Logger
}

// NewService creates a new reminder-time service.
func NewService(store Store, scheduler Rescheduler, logger *logger.Logger) *Service {
	return &Service{
		store:     store,
		scheduler: scheduler,
		logger:    logger,
	}
}

// Get returns both configured trigger times, creating defaulted records on
// first read.
func (s *Service) Get(ctx context.Context) (Times, error) {
	return s.store.Get(ctx)
}

// Set parses both HH:MM strings, upserts both slot records and pushes a
// reschedule. Validation happens before any write: a malformed string leaves
// the store untouched.
func (s *Service) Set(ctx context.Context, morning, night string) (Times, error) {
	log := s.logger.WithContext(ctx).WithComponent("remindertime")

	morningHour, morningMinute, err := ParseClock("morning", morning)
	if err != nil {
		return Times{}, err
	}
	nightHour, nightMinute, err := ParseClock("night", night)
	if err != nil {
		return Times{}, err
	}

	times := Times{
		Morning: ReminderTime{Hour: morningHour, Minute: morningMinute, TimeOfDay: routine.SlotMorning},
		Evening: ReminderTime{Hour: nightHour, Minute: nightMinute, TimeOfDay: routine.SlotEvening},
	}

	if err := s.store.Put(ctx, times.Morning); err != nil {
		return Times{}, fmt.Errorf("save morning reminder time: %w", err)
	}
	if err := s.store.Put(ctx, times.Evening); err != nil {
		return Times{}, fmt.Errorf("save evening reminder time: %w", err)
	}

	log.Info("reminder times updated",
		slog.String("morning", times.Morning.Clock()),
		slog.String("evening", times.Evening.Clock()),
	)

	// Fail-soft: the write succeeded, so a reschedule failure keeps the
	// previous timers pending rather than failing the whole update.
	if err := s.scheduler.ScheduleAll(ctx); err != nil {
		log.Error("reschedule after update failed, previous timers remain",
			slog.String("error", err.Error()))
	}

	return times, nil
}
