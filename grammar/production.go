package grammar

import (
	"crypto/sha256"
	"encoding/binary"
)

// productionID identifies a production by the hash of its LHS and RHS
// element indices, so identical alternatives loaded twice (e.g. the same
// alternative written twice for one rule) collapse to one object.
type productionID [32]byte

func genProductionID(lhs Index, rhs []Index) productionID {
	var buf []byte
	put := func(idx Index) {
		var b [8]byte
		binary.BigEndian.PutUint64(b[:], uint64(idx))
		buf = append(buf, b[:]...)
	}
	put(lhs)
	for _, idx := range rhs {
		put(idx)
	}
	return productionID(sha256.Sum256(buf))
}

// Production is one right-hand-side alternative for a non-terminal. It is
// shared by pointer: the director map and the owning NonTerminalRules both
// point at the same *Production value.
type Production struct {
	id  productionID
	LHS Index
	RHS []Index // nil/empty means the Empty production
}

// IsEmpty reports whether the production is the `#` alternative.
func (p *Production) IsEmpty() bool {
	return len(p.RHS) == 0
}

func newProduction(lhs Index, rhs []Index) *Production {
	return &Production{
		id:  genProductionID(lhs, rhs),
		LHS: lhs,
		RHS: rhs,
	}
}

// productionSet deduplicates productions by id and indexes them by LHS.
type productionSet struct {
	byLHS map[Index][]*Production
	byID  map[productionID]*Production
}

func newProductionSet() *productionSet {
	return &productionSet{
		byLHS: map[Index][]*Production{},
		byID:  map[productionID]*Production{},
	}
}

// add interns prod by id, returning the canonical (possibly pre-existing)
// production value so callers can always compare by pointer.
func (ps *productionSet) add(lhs Index, rhs []Index) *Production {
	prod := newProduction(lhs, rhs)
	if existing, ok := ps.byID[prod.id]; ok {
		return existing
	}
	ps.byID[prod.id] = prod
	ps.byLHS[lhs] = append(ps.byLHS[lhs], prod)
	return prod
}

func (ps *productionSet) forLHS(lhs Index) []*Production {
	return ps.byLHS[lhs]
}

func (ps *productionSet) all() map[productionID]*Production {
	return ps.byID
}
