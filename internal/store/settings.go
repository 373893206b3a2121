package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"cleantrack/internal/core"
)

// SettingsStore owns config.json, including the invoice-number counter.
// NextInvoiceNumber is the only way the counter moves, and it only moves
// forward; atomicity holds within this process only.
type SettingsStore struct {
	mu   sync.Mutex
	path string
}

func NewSettingsStore(path string) *SettingsStore {
	return &SettingsStore{path: path}
}

// Load returns the persisted settings with defaults merged underneath:
// keys absent from the file keep their default values, so adding a setting
// needs no migration.
func (s *SettingsStore) Load() (core.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Save overwrites config.json with the given settings.
func (s *SettingsStore) Save(settings core.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(settings)
}

// NextInvoiceNumber returns the current counter value and persists the
// incremented counter in the same call.
func (s *SettingsStore) NextInvoiceNumber() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings, err := s.load()
	if err != nil {
		return 0, err
	}
	n := settings.NextInvoiceNumber
	settings.NextInvoiceNumber = n + 1
	if err := s.save(settings); err != nil {
		return 0, fmt.Errorf("advance invoice counter: %w", err)
	}
	return n, nil
}

func (s *SettingsStore) load() (core.Settings, error) {
	settings := core.DefaultSettings()
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return settings, nil
	}
	if err != nil {
		return settings, fmt.Errorf("read %s: %w", s.path, err)
	}
	if err := json.Unmarshal(data, &settings); err != nil {
		return settings, fmt.Errorf("parse %s: %w", s.path, err)
	}
	return settings, nil
}

func (s *SettingsStore) save(settings core.Settings) error {
	return writeJSONFile(s.path, settings)
}
