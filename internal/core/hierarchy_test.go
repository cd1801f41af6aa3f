package core

import (
	"fmt"
	"math/rand"
	"testing"

	"plantforge/pkg/domain"
)

func makeIDs(n int) []domain.Identifier {
	ids := make([]domain.Identifier, n)
	for i := range ids {
		ids[i] = domain.Identifier(fmt.Sprintf("EQ-%08X", i))
	}
	return ids
}

func TestAssignParentsReservesExactStratum(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	ids := makeIDs(100)
	a := AssignParents(rng, ids, 0.2, 0.3)
	if len(a.Parents) != 20 {
		t.Fatalf("expected 20 potential parents, got %d", len(a.Parents))
	}
}

func TestAssignParentsTwoTierInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	ids := makeIDs(100)
	a := AssignParents(rng, ids, 0.2, 0.4)
	parentSet := make(map[domain.Identifier]struct{})
	for _, p := range a.Parents {
		parentSet[p] = struct{}{}
	}
	for _, id := range ids {
		cell := a.ParentCell(id)
		if _, isParent := parentSet[id]; isParent {
			if cell != "" {
				t.Fatalf("parent stratum member %s was itself parented to %s", id, cell)
			}
			continue
		}
		if cell == "" {
			continue
		}
		if cell == string(id) {
			t.Fatalf("%s assigned itself as parent", id)
		}
		if _, ok := parentSet[domain.Identifier(cell)]; !ok {
			t.Fatalf("%s parented to %s outside the parent stratum", id, cell)
		}
	}
}

func TestAssignParentsZeroFraction(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	a := AssignParents(rng, makeIDs(10), 0, 1)
	if len(a.Parents) != 0 {
		t.Fatalf("expected no parents, got %d", len(a.Parents))
	}
	for _, id := range makeIDs(10) {
		if a.ParentCell(id) != "" {
			t.Fatalf("no parent stratum, yet %s was parented", id)
		}
	}
}

func TestAssignParentsTinyPopulation(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	// floor(3 * 0.2) == 0: too few ids for a stratum.
	a := AssignParents(rng, makeIDs(3), 0.2, 1)
	if len(a.Parents) != 0 {
		t.Fatalf("expected empty stratum, got %v", a.Parents)
	}
}

func TestAssignParentsChildProbabilityOne(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	ids := makeIDs(50)
	a := AssignParents(rng, ids, 0.1, 1)
	for _, id := range ids {
		if a.IsParent(id) {
			continue
		}
		if a.ParentCell(id) == "" {
			t.Fatalf("childProb=1 left %s unparented", id)
		}
	}
}
