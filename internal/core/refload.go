package core

import (
	"encoding/csv"
	"io"
	"os"

	"plantforge/pkg/domain"
)

// ReferenceLoader seeds identifier pools from a previous level's CSV output.
// Every failure mode is soft: a missing file, missing column, or parse error
// is logged at warn and yields an empty result so the caller falls back to
// synthetic generation. One-shot, no retry.
type ReferenceLoader struct {
	log Logger
}

// NewReferenceLoader constructs a loader. A nil logger falls back to NopLogger.
func NewReferenceLoader(log Logger) *ReferenceLoader {
	if log == nil {
		log = NopLogger{}
	}
	return &ReferenceLoader{log: log}
}

// Load reads path and returns the unique non-empty values of column, in first
// seen order.
func (l *ReferenceLoader) Load(path, column string) []domain.Identifier {
	f, err := os.Open(path)
	if err != nil {
		l.log.Warn("reference file unavailable", "path", path, "error", err)
		return nil
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		l.log.Warn("reference header unreadable", "path", path, "error", err)
		return nil
	}
	idx := -1
	for i, name := range header {
		if name == column {
			idx = i
			break
		}
	}
	if idx < 0 {
		l.log.Warn("reference column missing", "path", path, "column", column)
		return nil
	}

	seen := make(map[string]struct{})
	var ids []domain.Identifier
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			l.log.Warn("reference rows unreadable, discarding partial result",
				"path", path, "error", err)
			return nil
		}
		if idx >= len(record) {
			continue
		}
		v := record[idx]
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		ids = append(ids, domain.Identifier(v))
	}
	return ids
}

// SeedPool loads path/column and registers the result under kind, returning
// the number of identifiers recovered.
func (l *ReferenceLoader) SeedPool(pool *IdentifierPool, kind domain.EntityKind, path, column string) int {
	ids := l.Load(path, column)
	pool.Register(kind, ids...)
	return len(ids)
}
