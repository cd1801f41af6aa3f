package sink

import (
	"context"
	"testing"

	"plantforge/pkg/domain"
)

func openMemory(t *testing.T) Sink {
	t.Helper()
	s, err := Open(context.Background(), DriverMemory, "")
	if err != nil {
		t.Fatalf("open memory: %v", err)
	}
	return s
}

func TestMultiFansOutWrites(t *testing.T) {
	a, b := openMemory(t), openMemory(t)
	m := NewMulti(a, b)
	if m.Driver() != DriverMulti {
		t.Fatalf("expected multi driver, got %s", m.Driver())
	}
	tbl := domain.NewTable("equipment", []string{"equipment_id"})
	_ = tbl.AppendRow([]string{"EQ-00000001"})
	if err := m.WriteTable(context.Background(), tbl); err != nil {
		t.Fatalf("write: %v", err)
	}
	// Both memory sinks received the table through their own adapters.
	for i, s := range []Sink{a, b} {
		w, err := s.OpenTable(context.Background(), "probe", []string{"id"})
		if err != nil {
			t.Fatalf("sink %d unusable after fan-out: %v", i, err)
		}
		if err := w.Close(); err != nil {
			t.Fatalf("close probe: %v", err)
		}
	}
}

func TestMultiStreamedWrites(t *testing.T) {
	a, b := openMemory(t), openMemory(t)
	m := NewMulti(a, b)
	w, err := m.OpenTable(context.Background(), "alarms", []string{"alarm_id"})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := w.Append([]string{"ALM-00000001"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestMultiSingleSinkUnwrapped(t *testing.T) {
	a := openMemory(t)
	if m := NewMulti(a); m.Driver() != DriverMemory {
		t.Fatalf("single sink must be returned unwrapped, got %s", m.Driver())
	}
}
