package remindertime

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/Rajeshwarantask/Daily-Task-Monitor/internal/routine"
)

// ReminderTime is the configured trigger time for one slot.
// One record exists per time of day; records are never deleted.
type ReminderTime struct {
	Hour      int          `json:"hour" firestore:"hour"`
	Minute    int          `json:"minute" firestore:"minute"`
	TimeOfDay routine.Slot `json:"timeOfDay" firestore:"timeOfDay"`
}

// Clock renders the time as HH:MM.
func (r ReminderTime) Clock() string {
	return fmt.Sprintf("%02d:%02d", r.Hour, r.Minute)
}

// Times holds the configured trigger time for both slots.
type Times struct {
	Morning ReminderTime `json:"morning"`
	Evening ReminderTime `json:"evening"`
}

// ForSlot returns the trigger time of a slot.
func (t Times) ForSlot(slot routine.Slot) ReminderTime {
	if slot == routine.SlotEvening {
		return t.Evening
	}
	return t.Morning
}

// ValidationError reports a malformed trigger-time string.
// It is returned before any store mutation happens.
type ValidationError struct {
	Field string
	Value string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s reminder time %q: want HH:MM in 24-hour form", e.Field, e.Value)
}

// clockPattern accepts strict 24-hour HH:MM with a leading zero.
var clockPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):([0-5][0-9])$`)

// ParseClock parses a strict HH:MM string into hour and minute.
func ParseClock(field, value string) (hour, minute int, err error) {
	m := clockPattern.FindStringSubmatch(value)
	if m == nil {
		return 0, 0, &ValidationError{Field: field, Value: value}
	}
	hour, _ = strconv.Atoi(m[1])
	minute, _ = strconv.Atoi(m[2])
	return hour, minute, nil
}

// MustParse builds a ReminderTime from a known-good HH:MM string, such as the
// built-in defaults. It panics on malformed input.
func MustParse(slot routine.Slot, value string) ReminderTime {
	hour, minute, err := ParseClock(string(slot), value)
	if err != nil {
		panic(err)
	}
	return ReminderTime{Hour: hour, Minute: minute, TimeOfDay: slot}
}
