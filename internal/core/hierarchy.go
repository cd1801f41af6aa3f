package core

import (
	"math"
	"math/rand"

	"plantforge/pkg/domain"
)

// HierarchyAssignment is the result of a two-tier parent assignment pass. The
// parent stratum is selected up front and its members never receive parents in
// the same pass, so the structure is acyclic by construction: there are only
// two tiers, never grandparents.
type HierarchyAssignment struct {
	Parents  []domain.Identifier
	parentOf map[domain.Identifier]domain.Identifier
}

// ParentCell returns the parent identifier cell for id: empty for parents,
// unparented children, and unknown identifiers.
func (a HierarchyAssignment) ParentCell(id domain.Identifier) string {
	return string(a.parentOf[id])
}

// IsParent reports whether id was reserved into the parent stratum.
func (a HierarchyAssignment) IsParent(id domain.Identifier) bool {
	for _, p := range a.Parents {
		if p == id {
			return true
		}
	}
	return false
}

// AssignParents reserves floor(len(ids)*parentFraction) identifiers as the
// parent stratum (sampled without replacement), then parents each remaining
// identifier with probability childProb. Identifiers outside the parent
// stratum either point at a stratum member or stay unparented.
func AssignParents(rng *rand.Rand, ids []domain.Identifier, parentFraction, childProb float64) HierarchyAssignment {
	a := HierarchyAssignment{parentOf: make(map[domain.Identifier]domain.Identifier, len(ids))}
	n := int(math.Floor(float64(len(ids)) * parentFraction))
	if n <= 0 {
		return a
	}
	perm := rng.Perm(len(ids))
	parentSet := make(map[domain.Identifier]struct{}, n)
	a.Parents = make([]domain.Identifier, 0, n)
	for _, i := range perm[:n] {
		a.Parents = append(a.Parents, ids[i])
		parentSet[ids[i]] = struct{}{}
	}
	for _, id := range ids {
		if _, isParent := parentSet[id]; isParent {
			continue
		}
		if rng.Float64() < childProb {
			a.parentOf[id] = a.Parents[rng.Intn(len(a.Parents))]
		}
	}
	return a
}
