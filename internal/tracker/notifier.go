package tracker

import (
	"log/slog"

	"github.com/Rajeshwarantask/Daily-Task-Monitor/internal/logger"
	"github.com/Rajeshwarantask/Daily-Task-Monitor/internal/routine"
)

// Notifier is the surface a reminder is raised on: a platform notification
// plus the in-app banner. Notifications raised through it are persistent and
// stay up until Clear.
type Notifier interface {
	Notify(slot routine.Slot, title, body string)
	Clear(slot routine.Slot)
}

// LogNotifier writes reminders to the log. It stands in for a real
// notification surface in headless runs.
type LogNotifier struct {
	Logger *logger.Logger
}

func (n *LogNotifier) Notify(slot routine.Slot, title, body string) {
	n.Logger.Info("reminder raised",
		slog.String("slot", string(slot)),
		slog.String("title", title),
		slog.String("body", body))
}

func (n *LogNotifier) Clear(slot routine.Slot) {
	n.Logger.Info("reminder cleared", slog.String("slot", string(slot)))
}
