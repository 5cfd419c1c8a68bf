package jsonstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/idilsaglam/sheetdb/internal/model"
)

// JSON-backed record store. Single file, human-readable, portable.
// Stands in for the SheetDB sheet when running with --local; the file holds
// the same rows the sheet would.

// ErrNotFound is returned when no row carries the requested id.
var ErrNotFound = errors.New("jsonstore: record not found")

// Store keeps records in one JSON file. The mutex serializes access from
// this process only; there is no cross-process locking.
type Store struct {
	mu   sync.Mutex
	path string
}

// New returns a store backed by the file at path. The file is created on the
// first write.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file.
func (s *Store) Path() string { return s.path }

// List returns every record in file order.
func (s *Store) List(ctx context.Context) ([]model.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Create appends rec.
func (s *Store) Create(ctx context.Context, rec model.Record) error {
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("jsonstore create: %w", err)
	}
	return s.mutate(ctx, func(records []model.Record) ([]model.Record, error) {
		return append(records, rec), nil
	})
}

// Update replaces every field of the record whose id equals id.
func (s *Store) Update(ctx context.Context, id string, rec model.Record) error {
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("jsonstore update: %w", err)
	}
	return s.mutate(ctx, func(records []model.Record) ([]model.Record, error) {
		idx := indexOf(records, id)
		if idx < 0 {
			return nil, fmt.Errorf("update %q: %w", id, ErrNotFound)
		}
		rec.ID = id
		records[idx] = rec
		return records, nil
	})
}

// Delete removes the record whose id equals id.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.mutate(ctx, func(records []model.Record) ([]model.Record, error) {
		idx := indexOf(records, id)
		if idx < 0 {
			return nil, fmt.Errorf("delete %q: %w", id, ErrNotFound)
		}
		return append(records[:idx], records[idx+1:]...), nil
	})
}

func (s *Store) mutate(ctx context.Context, fn func([]model.Record) ([]model.Record, error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return err
	}
	records, err = fn(records)
	if err != nil {
		return err
	}
	return s.save(records)
}

func (s *Store) load() ([]model.Record, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Record{}, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	var records []model.Record
	if err := json.Unmarshal(b, &records); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if records == nil {
		records = []model.Record{}
	}
	return records, nil
}

func (s *Store) save(records []model.Record) error {
	b, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

func indexOf(records []model.Record, id string) int {
	for i, r := range records {
		if r.ID == id {
			return i
		}
	}
	return -1
}
