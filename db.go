package skit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Store is a single-key JSON store: one file per name under its root,
// laid out as <root>/<name>.json with a body of {"value": <payload>}.
// Mutations are full-replace writes; there is no locking because scripts
// run sequentially.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir. The directory is created lazily
// on first write.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// Get reads the value stored under name into out. A missing file or a null
// value is a miss (false, nil), not an error. A record whose shape no
// longer matches out decodes to ErrSchemaOutOfDate.
func (s *Store) Get(name string, out any) (bool, error) {
	data, err := os.ReadFile(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read store %q: %w", name, err)
	}

	var record map[string]json.RawMessage
	if err := json.Unmarshal(data, &record); err != nil {
		return false, fmt.Errorf("store %q: %w", name, ErrSchemaOutOfDate)
	}

	value, ok := record["value"]
	if !ok {
		// Pre-"value" layouts land here too
		return false, fmt.Errorf("store %q: %w", name, ErrSchemaOutOfDate)
	}

	if len(value) == 0 || string(value) == "null" {
		return false, nil
	}

	if err := json.Unmarshal(value, out); err != nil {
		return false, fmt.Errorf("store %q: %w", name, ErrSchemaOutOfDate)
	}
	return true, nil
}

// Write stores value under name, replacing any previous record. The file is
// written to a temp path and renamed so a crash never leaves a torn record.
func (s *Store) Write(name string, value any) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode value for store %q: %w", name, err)
	}

	data, err := json.Marshal(map[string]json.RawMessage{"value": raw})
	if err != nil {
		return fmt.Errorf("failed to encode record for store %q: %w", name, err)
	}

	path := s.path(name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write store %q: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace store %q: %w", name, err)
	}

	return nil
}

// GetOrFetch reads the value under name, or on a miss calls fetch, stores
// its result, and decodes it into out. A schema-out-of-date record is an
// error, never a silent refetch.
func (s *Store) GetOrFetch(ctx context.Context, name string, out any, fetch func(ctx context.Context) (any, error)) error {
	ok, err := s.Get(name, out)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}

	value, err := fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetch for store %q failed: %w", name, err)
	}

	if err := s.Write(name, value); err != nil {
		return err
	}

	// Round-trip through JSON so out sees exactly what a later Get would
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode fetched value for store %q: %w", name, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &DecodeError{Call: "db.get", Err: err}
	}
	return nil
}

// Clear removes the record under name. Clearing a name that was never
// written is not an error.
func (s *Store) Clear(name string) error {
	if err := os.Remove(s.path(name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to clear store %q: %w", name, err)
	}
	return nil
}
