// Command tracker runs the client-side completion tracker headlessly: it
// watches the local task file, raises reminders at the configured times and
// refuses dismissal until the slot's checklist is done. Trigger times come
// from the reminder server when -server is set, otherwise from flags.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Rajeshwarantask/Daily-Task-Monitor/internal/logger"
	"github.com/Rajeshwarantask/Daily-Task-Monitor/internal/remindertime"
	"github.com/Rajeshwarantask/Daily-Task-Monitor/internal/routine"
	"github.com/Rajeshwarantask/Daily-Task-Monitor/internal/taskfile"
	"github.com/Rajeshwarantask/Daily-Task-Monitor/internal/tracker"
)

func main() {
	var (
		taskPath  = flag.String("tasks", "tasks.json", "path to the local task file")
		userName  = flag.String("user", "", "household member completed tasks are stamped with")
		serverURL = flag.String("server", "", "reminder server base URL; overrides -morning/-evening")
		morning   = flag.String("morning", "06:30", "morning trigger time (HH:MM)")
		evening   = flag.String("evening", "22:30", "evening trigger time (HH:MM)")
	)
	flag.Parse()

	log := logger.New(logger.FromConfig(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT")))

	times, err := timesSource(*serverURL, *morning, *evening)
	if err != nil {
		log.Error("invalid trigger times", slog.String("error", err.Error()))
		os.Exit(1)
	}

	store := taskfile.NewStore(*taskPath)
	tr := tracker.New(store, times, &tracker.LogNotifier{Logger: log}, log,
		tracker.WithUserName(*userName))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := tr.Start(ctx); err != nil {
		log.Error("failed to start tracker", slog.String("error", err.Error()))
		os.Exit(1)
	}

	<-ctx.Done()
	tr.Stop()
}

func timesSource(serverURL, morning, evening string) (tracker.TimesSource, error) {
	if serverURL != "" {
		return &serverTimes{
			url:    serverURL + "/api/reminder-time",
			client: &http.Client{Timeout: 10 * time.Second},
		}, nil
	}

	morningHour, morningMinute, err := remindertime.ParseClock("morning", morning)
	if err != nil {
		return nil, err
	}
	eveningHour, eveningMinute, err := remindertime.ParseClock("evening", evening)
	if err != nil {
		return nil, err
	}
	return tracker.StaticTimes{
		Morning: remindertime.ReminderTime{Hour: morningHour, Minute: morningMinute, TimeOfDay: routine.SlotMorning},
		Evening: remindertime.ReminderTime{Hour: eveningHour, Minute: eveningMinute, TimeOfDay: routine.SlotEvening},
	}, nil
}

// serverTimes reads the configured trigger times from the reminder server,
// the same way the web client does.
type serverTimes struct {
	url    string
	client *http.Client
}

func (s *serverTimes) Get(ctx context.Context) (remindertime.Times, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return remindertime.Times{}, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return remindertime.Times{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return remindertime.Times{}, fmt.Errorf("reminder server returned status %d", resp.StatusCode)
	}

	var records []remindertime.ReminderTime
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return remindertime.Times{}, err
	}

	var times remindertime.Times
	for _, rt := range records {
		switch rt.TimeOfDay {
		case routine.SlotMorning:
			times.Morning = rt
		case routine.SlotEvening:
			times.Evening = rt
		}
	}
	return times, nil
}
