// Package tracker decides, on the client side, whether a fired reminder may
// be dismissed. The server reminds unconditionally at the configured time;
// the completion rule lives here.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Rajeshwarantask/Daily-Task-Monitor/internal/logger"
	"github.com/Rajeshwarantask/Daily-Task-Monitor/internal/remindertime"
	"github.com/Rajeshwarantask/Daily-Task-Monitor/internal/routine"
	"github.com/Rajeshwarantask/Daily-Task-Monitor/internal/taskfile"
)

var (
	// ErrDismissRejected is returned when a dismiss request arrives while the
	// slot's tasks are still incomplete. The caller must surface it; it is
	// not a silent no-op.
	ErrDismissRejected = errors.New("cannot dismiss reminder: tasks are still incomplete")

	// ErrTaskNotFound is returned when a toggle names an unknown task.
	ErrTaskNotFound = errors.New("task not found")
)

// TimesSource supplies the configured trigger times.
type TimesSource interface {
	Get(ctx context.Context) (remindertime.Times, error)
}

// StaticTimes is a TimesSource with fixed values.
type StaticTimes remindertime.Times

func (s StaticTimes) Get(ctx context.Context) (remindertime.Times, error) {
	return remindertime.Times(s), nil
}

// State is the transient notification state. Active implies a known slot.
type State struct {
	Active    bool
	Slot      routine.Slot
	StartedAt time.Time
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock replaces the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithPollIntervals overrides the reminder-check and completion-check
// cadences.
func WithPollIntervals(reminder, completion time.Duration) Option {
	return func(t *Tracker) {
		t.reminderPoll = reminder
		t.completionPoll = completion
	}
}

// WithUserName sets the household member completed tasks are stamped with.
func WithUserName(name string) Option {
	return func(t *Tracker) { t.userName = name }
}

// Tracker owns the Idle/Active state machine for one page context. All state
// transitions happen under one lock, so every polling tick and every API call
// is a logically atomic step. One background goroutine exists between Start
// and Stop; concurrent trackers over the same store are not coordinated.
type Tracker struct {
	store    *taskfile.Store
	times    TimesSource
	notifier Notifier
	logger   *logger.Logger

	now            func() time.Time
	reminderPoll   time.Duration
	completionPoll time.Duration
	userName       string

	mu      sync.Mutex
	snap    *taskfile.Snapshot
	state   State
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// New creates a tracker. Call Start to load state and begin polling.
func New(store *taskfile.Store, times TimesSource, notifier Notifier, log *logger.Logger, opts ...Option) *Tracker {
	t := &Tracker{
		store:          store,
		times:          times,
		notifier:       notifier,
		logger:         log.WithComponent("tracker"),
		now:            time.Now,
		reminderPoll:   60 * time.Second,
		completionPoll: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Start loads the persisted task state, rolls the day over if the snapshot is
// stale, and starts the polling goroutine. Stop releases it.
func (t *Tracker) Start(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running {
		return errors.New("tracker already started")
	}

	snap, err := t.store.Load()
	if err != nil {
		return fmt.Errorf("load task state: %w", err)
	}
	t.snap = snap

	if t.userName != "" && t.snap.UserName != t.userName {
		t.snap.UserName = t.userName
	}
	t.rolloverLocked()
	if err := t.store.Save(t.snap); err != nil {
		return fmt.Errorf("save task state: %w", err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	t.cancel = cancel
	t.done = make(chan struct{})
	t.running = true
	go t.loop(runCtx)

	t.logger.Info("tracker started",
		slog.String("user_name", t.snap.UserName),
		slog.Duration("reminder_poll", t.reminderPoll),
		slog.Duration("completion_poll", t.completionPoll))
	return nil
}

// Stop cancels the polling goroutine and waits for it to exit.
func (t *Tracker) Stop() {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return
	}
	t.running = false
	cancel, done := t.cancel, t.done
	t.mu.Unlock()

	cancel()
	<-done
	t.logger.Info("tracker stopped")
}

// State returns the current notification state.
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Tasks returns a copy of the current task lists.
func (t *Tracker) Tasks() routine.Tasks {
	t.mu.Lock()
	defer t.mu.Unlock()
	return routine.Tasks{
		Morning: append([]routine.Task(nil), t.snap.Tasks.Morning...),
		Evening: append([]routine.Task(nil), t.snap.Tasks.Evening...),
	}
}

// ToggleTask flips one task's completion, stamping or clearing the
// completed-by fields, and persists the change. Completing the last open task
// of the active slot clears the reminder in the same step.
func (t *Tracker) ToggleTask(slot routine.Slot, id string) (routine.Task, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	task := t.snap.Tasks.Find(slot, id)
	if task == nil {
		return routine.Task{}, ErrTaskNotFound
	}

	task.Toggle(t.snap.UserName, t.now())
	if err := t.store.Save(t.snap); err != nil {
		return routine.Task{}, fmt.Errorf("save task state: %w", err)
	}

	t.disarmIfCompleteLocked()
	return *task, nil
}

// Dismiss clears the active reminder, but only when the slot's completion
// predicate already holds. Dismissing while Idle is a no-op.
func (t *Tracker) Dismiss() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.state.Active {
		return nil
	}
	if !routine.AllComplete(t.snap.Tasks.ForSlot(t.state.Slot)) {
		return ErrDismissRejected
	}

	t.toIdleLocked("dismissed")
	return nil
}

// Reset is the manual reset action: every task returns to incomplete and any
// active reminder is forced down, since the predicate turns vacuous for the
// cleared set.
func (t *Tracker) Reset() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.snap.Tasks.ResetAll()
	if err := t.store.Save(t.snap); err != nil {
		return fmt.Errorf("save task state: %w", err)
	}
	if t.state.Active {
		t.toIdleLocked("manual reset")
	}
	return nil
}

func (t *Tracker) loop(ctx context.Context) {
	defer close(t.done)

	reminder := time.NewTicker(t.reminderPoll)
	defer reminder.Stop()
	completion := time.NewTicker(t.completionPoll)
	defer completion.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-reminder.C:
			t.reminderTick(ctx)
		case <-completion.C:
			t.completionTick()
		}
	}
}

// reminderTick is one atomic step: day rollover, then trigger-minute check.
func (t *Tracker) reminderTick(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.rolloverLocked()
	t.armLocked(ctx)
	t.disarmIfCompleteLocked()
}

// completionTick is one atomic step: day rollover, then predicate check.
func (t *Tracker) completionTick() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.rolloverLocked()
	t.disarmIfCompleteLocked()
}

// rolloverLocked resets all tasks when the local calendar day has changed.
// The reset forces Active -> Idle on its own; it must not depend on a later
// poll noticing the now-vacuous predicate. No re-arming happens here; the
// tracker only re-enters Active at the next trigger minute.
func (t *Tracker) rolloverLocked() {
	today := taskfile.DateOf(t.now())
	if t.snap.Date == today {
		return
	}

	t.snap.Date = today
	t.snap.Tasks.ResetAll()
	if err := t.store.Save(t.snap); err != nil {
		t.logger.Error("failed to persist day rollover", slog.String("error", err.Error()))
	}
	if t.state.Active {
		t.toIdleLocked("midnight reset")
	}
	t.logger.Info("day rolled over", slog.String("date", today))
}

// armLocked transitions Idle -> Active when the wall-clock minute matches a
// slot's configured time and that slot still has incomplete tasks.
func (t *Tracker) armLocked(ctx context.Context) {
	if t.state.Active {
		return
	}

	times, err := t.times.Get(ctx)
	if err != nil {
		t.logger.Error("failed to read reminder times, skipping check", slog.String("error", err.Error()))
		return
	}

	now := t.now()
	for _, slot := range routine.Slots() {
		rt := times.ForSlot(slot)
		if now.Hour() != rt.Hour || now.Minute() != rt.Minute {
			continue
		}

		tasks := t.snap.Tasks.ForSlot(slot)
		if routine.AllComplete(tasks) {
			continue
		}

		incomplete := 0
		for i := range tasks {
			if !tasks[i].Completed {
				incomplete++
			}
		}

		t.state = State{Active: true, Slot: slot, StartedAt: now}
		t.notifier.Notify(slot, slotTitle(slot),
			fmt.Sprintf("You have %d incomplete tasks. Please complete all items before dismissing.", incomplete))
		t.logger.Info("reminder armed",
			slog.String("slot", string(slot)),
			slog.Int("incomplete", incomplete))
		return
	}
}

// disarmIfCompleteLocked transitions Active -> Idle the moment the active
// slot's predicate holds.
func (t *Tracker) disarmIfCompleteLocked() {
	if !t.state.Active {
		return
	}
	if !routine.AllComplete(t.snap.Tasks.ForSlot(t.state.Slot)) {
		return
	}
	t.toIdleLocked("all tasks complete")
}

func (t *Tracker) toIdleLocked(reason string) {
	slot := t.state.Slot
	t.state = State{}
	t.notifier.Clear(slot)
	t.logger.Info("reminder cleared",
		slog.String("slot", string(slot)),
		slog.String("reason", reason))
}

func slotTitle(slot routine.Slot) string {
	if slot == routine.SlotEvening {
		return "Evening Routine Reminder"
	}
	return "Morning Routine Reminder"
}
