// Package taskfile persists a day's task lists on local disk, playing the
// role browser local storage plays for the web client: synchronous reads and
// writes, one writer per process, last write wins.
package taskfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Rajeshwarantask/Daily-Task-Monitor/internal/routine"
)

// Snapshot is everything the tracker persists between runs.
type Snapshot struct {
	// Date is the local calendar day (YYYY-MM-DD) the completion state
	// belongs to. A snapshot from an earlier day is reset on load.
	Date     string        `json:"date"`
	UserName string        `json:"userName"`
	Tasks    routine.Tasks `json:"tasks"`
}

// DateOf renders a time as the snapshot's local calendar-day key.
func DateOf(t time.Time) string {
	return t.Format("2006-01-02")
}

// Store reads and writes one snapshot file.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore creates a store at path. The file is created on first Save.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the snapshot. A missing file yields an empty snapshot rather
// than an error.
func (s *Store) Load() (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Snapshot{}, nil
		}
		return nil, fmt.Errorf("read task file: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse task file: %w", err)
	}
	return &snap, nil
}

// Save writes the snapshot atomically (temp file + rename), so a crash
// mid-write never corrupts the previous state.
func (s *Store) Save(snap *Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode task file: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create task file directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tasks-*.json")
	if err != nil {
		return fmt.Errorf("create temp task file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write task file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close task file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace task file: %w", err)
	}
	return nil
}
