package sink

import (
	"context"
	"errors"

	"plantforge/internal/core"
	"plantforge/pkg/domain"
)

// DriverMulti identifies a fan-out over several concrete sinks.
const DriverMulti Driver = "multi"

type multi struct {
	sinks []Sink
}

// NewMulti fans every write out to each sink in order, so a run can emit CSV
// files and mirror them into a database at the same time. A single sink is
// returned unwrapped.
func NewMulti(sinks ...Sink) Sink {
	if len(sinks) == 1 {
		return sinks[0]
	}
	return &multi{sinks: sinks}
}

func (m *multi) Driver() Driver { return DriverMulti }

func (m *multi) WriteTable(ctx context.Context, table *domain.Table) error {
	for _, s := range m.sinks {
		if err := s.WriteTable(ctx, table); err != nil {
			return err
		}
	}
	return nil
}

type multiWriter struct {
	writers []core.TableWriter
}

func (w *multiWriter) Append(row []string) error {
	for _, inner := range w.writers {
		if err := inner.Append(row); err != nil {
			return err
		}
	}
	return nil
}

func (w *multiWriter) Close() error {
	var errs []error
	for _, inner := range w.writers {
		errs = append(errs, inner.Close())
	}
	return errors.Join(errs...)
}

func (m *multi) OpenTable(ctx context.Context, name string, columns []string) (core.TableWriter, error) {
	writers := make([]core.TableWriter, 0, len(m.sinks))
	for _, s := range m.sinks {
		w, err := s.OpenTable(ctx, name, columns)
		if err != nil {
			for _, opened := range writers {
				_ = opened.Close()
			}
			return nil, err
		}
		writers = append(writers, w)
	}
	return &multiWriter{writers: writers}, nil
}

func (m *multi) Close() error {
	var errs []error
	for _, s := range m.sinks {
		errs = append(errs, s.Close())
	}
	return errors.Join(errs...)
}
