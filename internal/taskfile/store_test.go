package taskfile

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Rajeshwarantask/Daily-Task-Monitor/internal/routine"
)

func TestLoadMissingFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "tasks.json"))

	snap, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if snap.Date != "" || len(snap.Tasks.Morning) != 0 || len(snap.Tasks.Evening) != 0 {
		t.Errorf("expected empty snapshot, got %+v", snap)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "tasks.json"))
	now := time.Date(2025, 3, 14, 8, 0, 0, 0, time.Local)

	in := &Snapshot{
		Date:     DateOf(now),
		UserName: "Priya",
		Tasks: routine.Tasks{
			Morning: []routine.Task{
				{ID: "m1", Text: "Make the beds", TimeOfDay: routine.SlotMorning},
				{ID: "m2", Text: "Water the plants", TimeOfDay: routine.SlotMorning, Completed: true, CompletedBy: "Priya", CompletedAt: &now},
			},
			Evening: []routine.Task{
				{ID: "e1", Text: "Lock the door", TimeOfDay: routine.SlotEvening},
			},
		},
	}

	if err := store.Save(in); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	out, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if out.Date != "2025-03-14" || out.UserName != "Priya" {
		t.Errorf("header mismatch: %+v", out)
	}
	if len(out.Tasks.Morning) != 2 || len(out.Tasks.Evening) != 1 {
		t.Fatalf("task lists mismatch: %+v", out.Tasks)
	}
	got := out.Tasks.Morning[1]
	if !got.Completed || got.CompletedBy != "Priya" || got.CompletedAt == nil || !got.CompletedAt.Equal(now) {
		t.Errorf("completed task not preserved: %+v", got)
	}
	// Order within a list is meaningful and must survive the round trip.
	if out.Tasks.Morning[0].ID != "m1" {
		t.Errorf("list order not preserved: %+v", out.Tasks.Morning)
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(filepath.Join(dir, "tasks.json"))

	if err := store.Save(&Snapshot{Date: "2025-03-14"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "tasks.json" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("unexpected directory contents: %v", names)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewStore(path).Load(); err == nil {
		t.Error("expected error for corrupt file")
	}
}
