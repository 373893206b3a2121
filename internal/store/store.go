// Package store persists record collections and settings as flat JSON
// files under a data directory. Each collection owns one file and
// overwrites it wholesale on every save; there is no cross-process
// locking, so the last writer wins.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// ErrNotFound is returned by operations that require an existing record.
// Delete deliberately never returns it: deleting an absent id is a no-op.
var ErrNotFound = errors.New("record not found")

// Collection is a JSON-file-backed list of records. The id accessor points
// at the record's id field so Add can assign and Delete can match.
type Collection[T any] struct {
	mu   sync.Mutex
	path string
	id   func(*T) *string
}

func NewCollection[T any](path string, id func(*T) *string) *Collection[T] {
	return &Collection[T]{path: path, id: id}
}

// Load returns all records in file order. A missing file is an empty
// collection, not an error; malformed JSON is surfaced as a parse error.
func (c *Collection[T]) Load() ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load()
}

// Save overwrites the whole file with the given records.
func (c *Collection[T]) Save(records []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.save(records)
}

// Add assigns a fresh unique id to the record, appends it, and persists
// the collection. The stored record is returned.
func (c *Collection[T]) Add(record T) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.load()
	if err != nil {
		return record, err
	}
	*c.id(&record) = uuid.NewString()
	records = append(records, record)
	if err := c.save(records); err != nil {
		return record, err
	}
	return record, nil
}

// Delete removes the record with the given id. A missing id is a silent
// no-op so deletion is idempotent for callers.
func (c *Collection[T]) Delete(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.load()
	if err != nil {
		return err
	}
	kept := records[:0]
	for i := range records {
		if *c.id(&records[i]) != id {
			kept = append(kept, records[i])
		}
	}
	if len(kept) == len(records) {
		return nil
	}
	return c.save(kept)
}

// Replace updates the record whose id matches, keeping its position.
func (c *Collection[T]) Replace(record T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.load()
	if err != nil {
		return err
	}
	want := *c.id(&record)
	for i := range records {
		if *c.id(&records[i]) == want {
			records[i] = record
			return c.save(records)
		}
	}
	return fmt.Errorf("replace %q: %w", want, ErrNotFound)
}

// Get returns the record with the given id, if present.
func (c *Collection[T]) Get(id string) (T, bool, error) {
	var zero T
	c.mu.Lock()
	defer c.mu.Unlock()

	records, err := c.load()
	if err != nil {
		return zero, false, err
	}
	for i := range records {
		if *c.id(&records[i]) == id {
			return records[i], true, nil
		}
	}
	return zero, false, nil
}

// Clear removes every record.
func (c *Collection[T]) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.save([]T{})
}

func (c *Collection[T]) load() ([]T, error) {
	data, err := os.ReadFile(c.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c.path, err)
	}
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse %s: %w", c.path, err)
	}
	return records, nil
}

func (c *Collection[T]) save(records []T) error {
	return writeJSONFile(c.path, records)
}

// writeJSONFile writes via a temp file and rename so readers never see a
// half-written file.
func writeJSONFile(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
