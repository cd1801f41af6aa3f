package core

import (
	"math/rand"
	"regexp"
	"testing"

	"plantforge/pkg/domain"
)

var tokenPattern = regexp.MustCompile(`^[A-Z]+-[0-9A-F]{8}$`)

func newTestPool(seed int64) *IdentifierPool {
	return NewIdentifierPool(rand.New(rand.NewSource(seed)))
}

func TestNewIdentifierShape(t *testing.T) {
	pool := newTestPool(1)
	id, err := pool.NewIdentifier(domain.KindEquipment)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if !tokenPattern.MatchString(string(id)) {
		t.Fatalf("identifier %q does not match prefix-hex shape", id)
	}
	if !id.MatchesKind(domain.KindEquipment) {
		t.Fatalf("identifier %q missing EQ prefix", id)
	}
}

func TestNewIdentifierUnknownKind(t *testing.T) {
	pool := newTestPool(1)
	if _, err := pool.NewIdentifier(domain.EntityKind("bogus")); err == nil {
		t.Fatalf("expected ErrUnknownKind")
	}
}

func TestGetOrCreateTopsUpAndOverSupplies(t *testing.T) {
	pool := newTestPool(7)
	first, err := pool.GetOrCreate(domain.KindFacility, 3)
	if err != nil {
		t.Fatalf("get or create: %v", err)
	}
	if len(first) != 3 {
		t.Fatalf("expected 3 fresh ids, got %d", len(first))
	}
	// Smaller request returns the whole existing pool, never truncated.
	again, err := pool.GetOrCreate(domain.KindFacility, 1)
	if err != nil {
		t.Fatalf("get or create: %v", err)
	}
	if len(again) != 3 {
		t.Fatalf("expected over-supply of 3, got %d", len(again))
	}
	for i := range first {
		if first[i] != again[i] {
			t.Fatalf("pool entries changed between calls: %v vs %v", first, again)
		}
	}
	// Larger request tops up without discarding existing entries.
	more, err := pool.GetOrCreate(domain.KindFacility, 5)
	if err != nil {
		t.Fatalf("get or create: %v", err)
	}
	if len(more) != 5 {
		t.Fatalf("expected top-up to 5, got %d", len(more))
	}
	for i := range first {
		if more[i] != first[i] {
			t.Fatalf("top-up must preserve existing order")
		}
	}
}

func TestSampleFallsBackToFreshIdentifier(t *testing.T) {
	pool := newTestPool(3)
	id := pool.Sample(domain.KindWorkOrder)
	if !id.MatchesKind(domain.KindWorkOrder) {
		t.Fatalf("fallback identifier %q missing WO prefix", id)
	}
	if pool.Len(domain.KindWorkOrder) != 0 {
		t.Fatalf("fallback must not register, pool size %d", pool.Len(domain.KindWorkOrder))
	}
}

func TestSampleDrawsFromRegisteredPool(t *testing.T) {
	pool := newTestPool(3)
	pool.Register(domain.KindEquipment, "EQ-00000001", "EQ-00000002")
	members := map[domain.Identifier]struct{}{"EQ-00000001": {}, "EQ-00000002": {}}
	for i := 0; i < 50; i++ {
		if _, ok := members[pool.Sample(domain.KindEquipment)]; !ok {
			t.Fatalf("sample escaped the registered pool")
		}
	}
}

func TestSeededPoolIsDeterministic(t *testing.T) {
	a := newTestPool(42)
	b := newTestPool(42)
	idsA, err := a.GetOrCreate(domain.KindBatch, 10)
	if err != nil {
		t.Fatalf("get or create: %v", err)
	}
	idsB, err := b.GetOrCreate(domain.KindBatch, 10)
	if err != nil {
		t.Fatalf("get or create: %v", err)
	}
	for i := range idsA {
		if idsA[i] != idsB[i] {
			t.Fatalf("same seed produced different identifiers at %d: %s vs %s", i, idsA[i], idsB[i])
		}
	}
}
