package routine

import (
	"time"
)

// Task is a single checklist item in one of the daily routines.
type Task struct {
	ID          string     `json:"id" firestore:"id"`
	Text        string     `json:"text" firestore:"text"`
	Completed   bool       `json:"completed" firestore:"completed"`
	CompletedBy string     `json:"completedBy,omitempty" firestore:"completedBy,omitempty"`
	TimeOfDay   Slot       `json:"timeOfDay" firestore:"timeOfDay"`
	CompletedAt *time.Time `json:"completedAt,omitempty" firestore:"completedAt,omitempty"`
}

// Toggle flips the task's completion. Completing stamps who did it and when;
// un-completing clears both, leaving no residue on the task itself.
func (t *Task) Toggle(userName string, now time.Time) {
	if t.Completed {
		t.Completed = false
		t.CompletedBy = ""
		t.CompletedAt = nil
		return
	}
	t.Completed = true
	t.CompletedBy = userName
	at := now
	t.CompletedAt = &at
}

// ResetCompletion returns the task to its untouched state.
func (t *Task) ResetCompletion() {
	t.Completed = false
	t.CompletedBy = ""
	t.CompletedAt = nil
}

// AllComplete is the completion predicate over a task set.
// It is vacuously true for an empty set.
func AllComplete(tasks []Task) bool {
	for i := range tasks {
		if !tasks[i].Completed {
			return false
		}
	}
	return true
}

// Tasks groups the two ordered daily task lists.
type Tasks struct {
	Morning []Task `json:"morning"`
	Evening []Task `json:"evening"`
}

// ForSlot returns the list for a slot. The returned slice aliases the
// underlying storage, so callers may mutate tasks in place.
func (ts *Tasks) ForSlot(slot Slot) []Task {
	if slot == SlotEvening {
		return ts.Evening
	}
	return ts.Morning
}

// Find locates a task by slot and ID.
func (ts *Tasks) Find(slot Slot, id string) *Task {
	list := ts.ForSlot(slot)
	for i := range list {
		if list[i].ID == id {
			return &list[i]
		}
	}
	return nil
}

// ResetAll clears completion state on every task in both lists.
func (ts *Tasks) ResetAll() {
	for i := range ts.Morning {
		ts.Morning[i].ResetCompletion()
	}
	for i := range ts.Evening {
		ts.Evening[i].ResetCompletion()
	}
}
