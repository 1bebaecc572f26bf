package routine

import (
	"testing"
	"time"
)

func TestToggleRoundTrip(t *testing.T) {
	now := time.Date(2025, 3, 14, 7, 15, 0, 0, time.Local)
	task := Task{ID: "t1", Text: "Make the beds", TimeOfDay: SlotMorning}

	task.Toggle("Priya", now)
	if !task.Completed {
		t.Fatal("task not completed after toggle")
	}
	if task.CompletedBy != "Priya" {
		t.Errorf("expected CompletedBy 'Priya', got %q", task.CompletedBy)
	}
	if task.CompletedAt == nil || !task.CompletedAt.Equal(now) {
		t.Errorf("expected CompletedAt %v, got %v", now, task.CompletedAt)
	}

	task.Toggle("Priya", now.Add(time.Minute))
	if task.Completed {
		t.Error("task still completed after second toggle")
	}
	if task.CompletedBy != "" {
		t.Errorf("CompletedBy not cleared: %q", task.CompletedBy)
	}
	if task.CompletedAt != nil {
		t.Errorf("CompletedAt not cleared: %v", task.CompletedAt)
	}
}

func TestAllComplete(t *testing.T) {
	tests := []struct {
		name  string
		tasks []Task
		want  bool
	}{
		{
			name:  "empty set is vacuously complete",
			tasks: nil,
			want:  true,
		},
		{
			name: "one incomplete",
			tasks: []Task{
				{ID: "1", Completed: true},
				{ID: "2", Completed: false},
			},
			want: false,
		},
		{
			name: "all complete",
			tasks: []Task{
				{ID: "1", Completed: true},
				{ID: "2", Completed: true},
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AllComplete(tt.tasks); got != tt.want {
				t.Errorf("AllComplete() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResetAll(t *testing.T) {
	now := time.Now()
	ts := Tasks{
		Morning: []Task{
			{ID: "m1", Completed: true, CompletedBy: "Arun", CompletedAt: &now},
		},
		Evening: []Task{
			{ID: "e1", Completed: true, CompletedBy: "Priya", CompletedAt: &now},
			{ID: "e2"},
		},
	}

	ts.ResetAll()

	for _, task := range append(ts.Morning, ts.Evening...) {
		if task.Completed || task.CompletedBy != "" || task.CompletedAt != nil {
			t.Errorf("task %s not fully reset: %+v", task.ID, task)
		}
	}
}

func TestForSlotAliasesStorage(t *testing.T) {
	ts := Tasks{Morning: []Task{{ID: "m1"}}}

	list := ts.ForSlot(SlotMorning)
	list[0].Completed = true

	if !ts.Morning[0].Completed {
		t.Error("ForSlot returned a copy; mutations must reach the stored list")
	}
}

func TestParseSlot(t *testing.T) {
	if _, err := ParseSlot("afternoon"); err == nil {
		t.Error("expected error for unknown slot")
	}
	slot, err := ParseSlot("evening")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if slot != SlotEvening {
		t.Errorf("expected evening, got %s", slot)
	}
}
