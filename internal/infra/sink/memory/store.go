// Package memory is the in-memory sink used by tests.
package memory

import (
	"context"
	"sync"

	"plantforge/internal/core"
	"plantforge/pkg/domain"
)

// Store collects generated tables in memory for inspection.
type Store struct {
	mu     sync.Mutex
	tables map[string]*domain.Table
}

// New constructs an empty in-memory sink.
func New() *Store {
	return &Store{tables: make(map[string]*domain.Table)}
}

// WriteTable stores the table, replacing any prior one of the same name.
func (s *Store) WriteTable(_ context.Context, table *domain.Table) error {
	s.mu.Lock()
	s.tables[table.Name] = table
	s.mu.Unlock()
	return nil
}

type tableWriter struct {
	store *Store
	table *domain.Table
}

func (w *tableWriter) Append(row []string) error { return w.table.AppendRow(row) }

func (w *tableWriter) Close() error {
	w.store.mu.Lock()
	w.store.tables[w.table.Name] = w.table
	w.store.mu.Unlock()
	return nil
}

// OpenTable returns a writer accumulating rows into an in-memory table that
// becomes visible on Close.
func (s *Store) OpenTable(_ context.Context, name string, columns []string) (core.TableWriter, error) {
	return &tableWriter{store: s, table: domain.NewTable(name, columns)}, nil
}

// Table returns the stored table by name, if present.
func (s *Store) Table(name string) (*domain.Table, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tables[name]
	return t, ok
}

// Names returns the stored table names.
func (s *Store) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.tables))
	for name := range s.tables {
		out = append(out, name)
	}
	return out
}

// Close is a no-op.
func (s *Store) Close() error { return nil }
