package history

import (
	"time"

	"github.com/Rajeshwarantask/Daily-Task-Monitor/internal/routine"
)

// Entry is an append-only record of a task's state at save time. History is
// derived from task state, never the other way around; toggling a task back
// to incomplete does not touch entries already written.
type Entry struct {
	ID          string       `json:"id" firestore:"id"`
	UserID      string       `json:"userId" firestore:"userId"`
	Task        routine.Task `json:"task" firestore:"task"`
	CompletedAt time.Time    `json:"completedAt" firestore:"completedAt"`
}
