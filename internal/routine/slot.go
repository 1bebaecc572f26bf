package routine

import (
	"fmt"
)

// Slot is one of the two daily reminder occasions.
type Slot string

const (
	SlotMorning Slot = "morning"
	SlotEvening Slot = "evening"
)

// Slots lists both occasions in day order.
func Slots() []Slot {
	return []Slot{SlotMorning, SlotEvening}
}

// ParseSlot validates a slot name.
func ParseSlot(s string) (Slot, error) {
	switch Slot(s) {
	case SlotMorning, SlotEvening:
		return Slot(s), nil
	}
	return "", fmt.Errorf("unknown time of day: %q", s)
}

// Valid reports whether the slot is one of the known occasions.
func (s Slot) Valid() bool {
	return s == SlotMorning || s == SlotEvening
}
