// Package fs writes generated tables as flat CSV files in a single output
// directory keyed by fixed filenames. Re-running a plan overwrites prior
// output; there is no namespacing by run or timestamp.
package fs

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"plantforge/internal/core"
	"plantforge/pkg/domain"
)

// Store is the filesystem sink. Buffered tables are written atomically via a
// temp file rename; streamed tables write through an incremental CSV writer.
type Store struct {
	root string
}

// New returns a filesystem sink rooted at dir, creating it if needed.
func New(dir string) (*Store, error) {
	if dir == "" {
		dir = "data"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &Store{root: dir}, nil
}

// Root returns the configured output directory.
func (s *Store) Root() string { return s.root }

func (s *Store) pathFor(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("empty table name")
	}
	if strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		return "", fmt.Errorf("invalid table name %q", name)
	}
	return filepath.Join(s.root, name+".csv"), nil
}

// WriteTable renders the whole table and replaces any prior file for it.
func (s *Store) WriteTable(_ context.Context, table *domain.Table) error {
	path, err := s.pathFor(table.Name)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.root, ".tmp-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	w := csv.NewWriter(tmp)
	if err := w.Write(table.Columns); err != nil {
		_ = tmp.Close()
		return err
	}
	for _, row := range table.Rows {
		if err := w.Write(row); err != nil {
			_ = tmp.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

type tableWriter struct {
	f *os.File
	w *csv.Writer
}

func (t *tableWriter) Append(row []string) error { return t.w.Write(row) }

func (t *tableWriter) Close() error {
	t.w.Flush()
	if err := t.w.Error(); err != nil {
		_ = t.f.Close()
		return err
	}
	return t.f.Close()
}

// OpenTable opens a streaming CSV writer for high-volume tables. The header
// is written immediately; rows hit the file as the generator appends them.
func (s *Store) OpenTable(_ context.Context, name string, columns []string) (core.TableWriter, error) {
	path, err := s.pathFor(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w := csv.NewWriter(f)
	if err := w.Write(columns); err != nil {
		_ = f.Close()
		return nil, err
	}
	return &tableWriter{f: f, w: w}, nil
}

// Close is a no-op; each table write owns its file handle.
func (s *Store) Close() error { return nil }
