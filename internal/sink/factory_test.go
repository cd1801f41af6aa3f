package sink

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"plantforge/pkg/domain"
)

func TestOpenDefaultsToFilesystem(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(context.Background(), "", dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = s.Close() }()
	if s.Driver() != DriverFilesystem {
		t.Fatalf("expected fs driver, got %s", s.Driver())
	}
	tbl := domain.NewTable("facilities", []string{"facility_id"})
	_ = tbl.AppendRow([]string{"FAC-00000001"})
	if err := s.WriteTable(context.Background(), tbl); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "facilities.csv")); err != nil {
		t.Fatalf("expected csv output: %v", err)
	}
}

func TestOpenMemory(t *testing.T) {
	s, err := Open(context.Background(), DriverMemory, "")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if s.Driver() != DriverMemory {
		t.Fatalf("expected memory driver, got %s", s.Driver())
	}
}

func TestOpenSQLiteUsesOutputDirDefault(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PLANTFORGE_SINK_SQLITE_PATH", "")
	s, err := Open(context.Background(), DriverSQLite, dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = s.Close() }()
	tbl := domain.NewTable("equipment", []string{"equipment_id"})
	if err := s.WriteTable(context.Background(), tbl); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "plantforge.db")); err != nil {
		t.Fatalf("expected sqlite database in output dir: %v", err)
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "oracle", "")
	if !errors.Is(err, ErrUnknownDriver) {
		t.Fatalf("expected ErrUnknownDriver, got %v", err)
	}
}

func TestOpenFromEnvSelectsDriver(t *testing.T) {
	t.Setenv("PLANTFORGE_SINK_DRIVER", "memory")
	s, err := OpenFromEnv(context.Background(), "")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if s.Driver() != DriverMemory {
		t.Fatalf("expected memory driver, got %s", s.Driver())
	}
}
