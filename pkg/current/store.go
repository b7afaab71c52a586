// Package current remembers the task being worked on between invocations so
// rankings can favour staying in the same context.
package current

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/csainsbury/kairos/pkg/config"
	"github.com/csainsbury/kairos/pkg/model"
)

const stateFile = "current.json"

// Entry is a snapshot of the current task. Only the fields used for context
// scoring are kept, so the entry stays useful if the source changes.
type Entry struct {
	TaskID      string       `json:"task_id"`
	Description string       `json:"description"`
	Domain      model.Domain `json:"domain,omitempty"`
	ProjectID   string       `json:"project_id,omitempty"`
	Started     time.Time    `json:"started"`
}

// Task returns the entry as a task for context-switch scoring.
func (e Entry) Task() model.Task {
	return model.Task{
		ID:          e.TaskID,
		Description: e.Description,
		Domain:      e.Domain,
		ProjectID:   e.ProjectID,
		Status:      model.StatusInProgress,
	}
}

// FromTask snapshots t as started at the given time.
func FromTask(t model.Task, started time.Time) Entry {
	return Entry{
		TaskID:      t.ID,
		Description: t.Description,
		Domain:      t.Domain,
		ProjectID:   t.ProjectID,
		Started:     started,
	}
}

type Store struct {
	Path  string
	mu    sync.RWMutex
	entry *Entry
	dirty bool
}

// DefaultPath is current.json next to the config file.
func DefaultPath() (string, error) {
	cfgPath, err := config.GetConfigPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(cfgPath), stateFile), nil
}

// NewStore opens the store at path, loading it if the file exists.
func NewStore(path string) (*Store, error) {
	s := &Store{Path: path}
	if _, err := os.Stat(path); err == nil {
		if err := s.Load(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Store) Load() error {
	f, err := os.Open(s.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	var entry *Entry
	if err := json.NewDecoder(f).Decode(&entry); err != nil {
		return err
	}
	s.mu.Lock()
	s.entry = entry
	s.dirty = false
	s.mu.Unlock()
	return nil
}

// Save writes the store if it changed since the last load or save. A cleared
// store removes the file.
func (s *Store) Save() error {
	s.mu.RLock()
	if !s.dirty {
		s.mu.RUnlock()
		return nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.entry == nil {
		if err := os.Remove(s.Path); err != nil && !os.IsNotExist(err) {
			return err
		}
		s.dirty = false
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(s.Path), 0700); err != nil {
		return err
	}
	f, err := os.OpenFile(s.Path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(s.entry); err != nil {
		return err
	}
	s.dirty = false
	return nil
}

// Get returns the current entry, if any.
func (s *Store) Get() (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.entry == nil {
		return Entry{}, false
	}
	return *s.entry, true
}

func (s *Store) Set(e Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.entry == nil || *s.entry != e {
		s.entry = &e
		s.dirty = true
	}
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.entry != nil {
		s.entry = nil
		s.dirty = true
	}
}
