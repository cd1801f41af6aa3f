package core

import (
	"context"
	"math/rand"
	"time"

	"plantforge/pkg/domain"
)

// TableWriter streams rows of one table to a sink.
type TableWriter interface {
	Append(row []string) error
	Close() error
}

// Sink receives generated tables. Buffered generators hand back a full table;
// high-volume generators open a writer and stream rows to bound memory.
type Sink interface {
	WriteTable(ctx context.Context, table *domain.Table) error
	OpenTable(ctx context.Context, name string, columns []string) (TableWriter, error)
}

// Env carries the shared per-run state every generator draws from: the
// identifier pools, the seeded random stream, the sink for streaming tables,
// and the run clock anchoring generated date windows.
type Env struct {
	Pools *IdentifierPool
	Rand  *rand.Rand
	Log   Logger
	Sink  Sink
	Now   time.Time
}

// GenerateResult reports one generator invocation. Buffered generators set
// Table and leave Rows zero (the orchestrator writes the table and counts its
// rows); streaming generators write through the sink themselves and report
// Rows only.
type GenerateResult struct {
	Table *domain.Table
	Rows  int
}

// Generator produces one entity table per run.
type Generator interface {
	// Table is the CSV base name, e.g. "equipment" for equipment.csv.
	Table() string
	// DefaultCount is the row count used when the plan does not override it.
	DefaultCount() int
	Generate(ctx context.Context, n int, env *Env) (GenerateResult, error)
}

// ReferenceSource names a prior-level CSV column that can seed a pool when
// the run is asked to reuse that level's output.
type ReferenceSource struct {
	Level  int
	Kind   domain.EntityKind
	File   string
	Column string
}
