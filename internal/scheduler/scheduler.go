package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Rajeshwarantask/Daily-Task-Monitor/internal/config"
	"github.com/Rajeshwarantask/Daily-Task-Monitor/internal/logger"
	"github.com/Rajeshwarantask/Daily-Task-Monitor/internal/push"
	"github.com/Rajeshwarantask/Daily-Task-Monitor/internal/remindertime"
	"github.com/Rajeshwarantask/Daily-Task-Monitor/internal/routine"
	"github.com/Rajeshwarantask/Daily-Task-Monitor/internal/subscription"
)

// fireTimeout bounds one delivery fan-out, not individual sends.
const fireTimeout = 60 * time.Second

// ConfigSource supplies the current trigger times. The scheduler reads it only
// inside ScheduleAll: configuration changes must be pushed, never observed.
type ConfigSource interface {
	Get(ctx context.Context) (remindertime.Times, error)
}

// SubscriptionSource supplies the current push registrations at fire time.
type SubscriptionSource interface {
	All(ctx context.Context) ([]subscription.Subscription, error)
}

// Scheduler owns the two daily reminder timers. Each slot holds at most one
// cron entry; ScheduleAll replaces both atomically.
type Scheduler struct {
	cron     *cron.Cron
	config   ConfigSource
	subs     SubscriptionSource
	sender   push.Sender
	messages config.Messages
	logger   *logger.Logger

	mu      sync.Mutex
	entries map[routine.Slot]cron.EntryID
}

// New creates a stopped scheduler. Call ScheduleAll to install the timers and
// Start to begin firing them.
func New(cfgSource ConfigSource, subs SubscriptionSource, sender push.Sender, messages config.Messages, log *logger.Logger) *Scheduler {
	s := &Scheduler{
		config:   cfgSource,
		subs:     subs,
		sender:   sender,
		messages: messages,
		logger:   log.WithComponent("scheduler"),
		entries:  make(map[routine.Slot]cron.EntryID),
	}
	// A slot must never overlap an earlier run of itself. Reconfiguration is
	// handled separately: cron.Remove never interrupts a job mid-run.
	s.cron = cron.New(cron.WithChain(cron.SkipIfStillRunning(cronLogger{s.logger})))
	return s
}

// Start begins running installed timers.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop cancels future timers and returns a context that is done once any
// in-progress fire has finished. An in-flight delivery is never cut short.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// ScheduleAll reads the current configuration and replaces both slot timers.
// It is idempotent: repeated calls always leave exactly one timer per slot.
// A configuration read error is fail-soft: the previous timers stay pending.
func (s *Scheduler) ScheduleAll(ctx context.Context) error {
	times, err := s.config.Get(ctx)
	if err != nil {
		s.logger.Error("failed to read reminder configuration, keeping previous schedule",
			slog.String("error", err.Error()))
		return fmt.Errorf("read reminder configuration: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, slot := range routine.Slots() {
		rt := times.ForSlot(slot)

		// Cancel-before-install: the old entry is gone before the new one
		// exists, so no duplicate can survive this call.
		if id, ok := s.entries[slot]; ok {
			s.cron.Remove(id)
			delete(s.entries, slot)
		}

		spec := fmt.Sprintf("%d %d * * *", rt.Minute, rt.Hour)
		slot := slot
		id, err := s.cron.AddFunc(spec, func() { s.fire(slot) })
		if err != nil {
			// Unreachable with store-validated times; the other slot still
			// gets its timer.
			s.logger.Error("failed to install reminder timer",
				slog.String("slot", string(slot)),
				slog.String("spec", spec),
				slog.String("error", err.Error()))
			continue
		}
		s.entries[slot] = id

		s.logger.Info("reminder scheduled",
			slog.String("slot", string(slot)),
			slog.String("at", rt.Clock()))
	}

	return nil
}

// fire runs the delivery fan-out for one slot. Task-completion state is
// deliberately not consulted here: the server reminds unconditionally at the
// configured time, and the completion rule lives with the client tracker.
func (s *Scheduler) fire(slot routine.Slot) {
	ctx, cancel := context.WithTimeout(context.Background(), fireTimeout)
	defer cancel()

	s.logger.Info("reminder fired", slog.String("slot", string(slot)))

	sent, failed, err := s.Broadcast(ctx, s.payloadFor(slot))
	if err != nil {
		s.logger.Error("reminder fan-out aborted",
			slog.String("slot", string(slot)),
			slog.String("error", err.Error()))
		return
	}

	s.logger.Info("reminder fan-out finished",
		slog.String("slot", string(slot)),
		slog.Int("sent", sent),
		slog.Int("failed", failed))
}

// Broadcast sends one payload to every registered subscription independently.
// A failed send is logged and never aborts delivery to the remaining
// subscribers. The returned error only reflects failure to load the
// registrations at all.
func (s *Scheduler) Broadcast(ctx context.Context, p push.Payload) (sent, failed int, err error) {
	subs, err := s.subs.All(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("load subscriptions: %w", err)
	}

	for _, sub := range subs {
		if err := s.sender.Send(ctx, sub.Payload, p); err != nil {
			failed++
			s.logger.Error("failed to send notification",
				slog.String("subscription_id", sub.ID),
				slog.String("user_name", sub.UserName),
				slog.String("error", err.Error()))
			continue
		}
		sent++
	}
	return sent, failed, nil
}

func (s *Scheduler) payloadFor(slot routine.Slot) push.Payload {
	msg := s.messages.Morning
	if slot == routine.SlotEvening {
		msg = s.messages.Evening
	}
	return push.Payload{Title: msg.Title, Body: msg.Body, Tag: msg.Tag}
}

// entryCount reports how many timers a slot currently holds in the cron
// runner. Used by tests to verify reschedule idempotence.
func (s *Scheduler) entryCount(slot routine.Slot) int {
	s.mu.Lock()
	id, ok := s.entries[slot]
	s.mu.Unlock()
	if !ok {
		return 0
	}
	count := 0
	for _, e := range s.cron.Entries() {
		if e.ID == id {
			count++
		}
	}
	return count
}

// totalEntries reports every live cron entry, tracked or leaked.
func (s *Scheduler) totalEntries() int {
	return len(s.cron.Entries())
}

// cronLogger adapts our logger to the cron.Logger interface used by the
// skip-if-still-running chain.
type cronLogger struct {
	l *logger.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Info(msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	args := append([]interface{}{"error", err}, keysAndValues...)
	c.l.Error(msg, args...)
}
