package core

import (
	"encoding/hex"
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"

	"plantforge/pkg/domain"
)

// IdentifierPool holds the per-run identifier pools, one per entity kind.
// Pools only ever grow: generators register freshly minted identifiers, the
// reference loader registers identifiers recovered from prior-level files,
// and every consumer in the same run draws from the same pool. The pool is
// not safe for concurrent use; the orchestrator is its only writer.
type IdentifierPool struct {
	rng   *rand.Rand
	kinds map[domain.EntityKind][]domain.Identifier
}

// NewIdentifierPool constructs an empty pool. The rng doubles as the entropy
// source for UUID-derived tokens so a fixed seed reproduces identifier text.
func NewIdentifierPool(rng *rand.Rand) *IdentifierPool {
	return &IdentifierPool{
		rng:   rng,
		kinds: make(map[domain.EntityKind][]domain.Identifier),
	}
}

// NewIdentifier mints one fresh identifier of the kind without registering it.
func (p *IdentifierPool) NewIdentifier(kind domain.EntityKind) (domain.Identifier, error) {
	prefix := kind.Prefix()
	if prefix == "" {
		return "", domain.ErrUnknownKind{Kind: kind}
	}
	u, err := uuid.NewRandomFromReader(p.rng)
	if err != nil {
		// math/rand readers do not fail; fall back to the library default.
		u = uuid.New()
	}
	token := strings.ToUpper(hex.EncodeToString(u[:4]))
	return domain.Identifier(fmt.Sprintf("%s-%s", prefix, token)), nil
}

// GetOrCreate returns the pool for kind, minting identifiers as needed to
// reach count. A pool already holding count or more entries is returned whole;
// over-supply is tolerated, never truncated. Freshly minted identifiers are
// registered before being returned.
func (p *IdentifierPool) GetOrCreate(kind domain.EntityKind, count int) ([]domain.Identifier, error) {
	if !kind.Known() {
		return nil, domain.ErrUnknownKind{Kind: kind}
	}
	for len(p.kinds[kind]) < count {
		id, err := p.NewIdentifier(kind)
		if err != nil {
			return nil, err
		}
		p.kinds[kind] = append(p.kinds[kind], id)
	}
	return append([]domain.Identifier(nil), p.kinds[kind]...), nil
}

// Register appends identifiers to the kind's pool for downstream consumers.
func (p *IdentifierPool) Register(kind domain.EntityKind, ids ...domain.Identifier) {
	if len(ids) == 0 {
		return
	}
	p.kinds[kind] = append(p.kinds[kind], ids...)
}

// Sample returns one random member of the kind's pool. When the pool is empty
// it falls back to a fresh synthetic identifier of the matching prefix; the
// fallback is not registered, mirroring the "never fail on missing upstream
// data" policy.
func (p *IdentifierPool) Sample(kind domain.EntityKind) domain.Identifier {
	pool := p.kinds[kind]
	if len(pool) == 0 {
		id, err := p.NewIdentifier(kind)
		if err != nil {
			return ""
		}
		return id
	}
	return pool[p.rng.Intn(len(pool))]
}

// Len reports the pool size for kind.
func (p *IdentifierPool) Len(kind domain.EntityKind) int {
	return len(p.kinds[kind])
}

// All returns a copy of the kind's pool.
func (p *IdentifierPool) All(kind domain.EntityKind) []domain.Identifier {
	return append([]domain.Identifier(nil), p.kinds[kind]...)
}
