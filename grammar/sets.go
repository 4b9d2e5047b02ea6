package grammar

import "fmt"

// firstCache computes FIRST sets via memoised recursion. A non-terminal
// revisited while its own computation is still in progress indicates left
// recursion, which is rejected rather than looped on forever.
type firstCache struct {
	data       *ParserData
	memo       map[Index]*Set
	inProgress map[Index]bool
}

func newFirstCache(data *ParserData) *firstCache {
	return &firstCache{
		data:       data,
		memo:       map[Index]*Set{},
		inProgress: map[Index]bool{},
	}
}

func (fc *firstCache) firstOfNonTerminal(idx Index) (*Set, error) {
	if s, ok := fc.memo[idx]; ok {
		return s, nil
	}
	if fc.inProgress[idx] {
		elem, _ := fc.data.Element(idx)
		return nil, &LeftRecursionError{NonTerminal: elem.Name, Row: elem.Row}
	}
	fc.inProgress[idx] = true

	rules, ok := fc.data.Rules(idx)
	if !ok {
		return nil, fmt.Errorf("%w: non-terminal index %v", ErrMissingProduction, idx)
	}

	acc := newSet()
	for _, prod := range rules.Productions {
		entry, err := fc.firstOfSequence(prod.RHS, 0)
		if err != nil {
			return nil, err
		}
		acc.Merge(entry)
		if entry.HasEmpty() {
			acc.Add(Empty)
		}
	}

	delete(fc.inProgress, idx)
	fc.memo[idx] = acc
	return acc, nil
}

// firstOfSequence computes FIRST(seq[head:]), per the classic definition:
// the first non-nullable symbol's FIRST set terminates the scan; if every
// symbol from head onward is nullable, the result itself is nullable.
func (fc *firstCache) firstOfSequence(seq []Index, head int) (*Set, error) {
	entry := newSet()
	if head >= len(seq) {
		entry.Add(Empty)
		return entry, nil
	}
	for i := head; i < len(seq); i++ {
		elem, err := fc.data.Element(seq[i])
		if err != nil {
			return nil, err
		}
		if elem.Kind == Terminal {
			entry.Add(Char([]rune(elem.Name)[0]))
			return entry, nil
		}
		sub, err := fc.firstOfNonTerminal(elem.Index)
		if err != nil {
			return nil, err
		}
		entry.Merge(sub)
		if !sub.HasEmpty() {
			return entry, nil
		}
	}
	entry.Add(Empty)
	return entry, nil
}

// directorSet computes (FIRST(N) \ {Empty}) ∪ (FOLLOW(N) if Empty ∈
// FIRST(N) else ∅).
func directorSet(first, follow *Set) *Set {
	d := newSet()
	for _, m := range first.Members() {
		if m != Empty {
			d.Add(m)
		}
	}
	if first.HasEmpty() {
		d.Merge(follow)
		if follow.Has(Terminate) {
			d.Add(Terminate)
		}
	}
	return d
}

// Compiled is the set-analysis result (C3): FIRST, FOLLOW, and director
// sets per non-terminal, plus the director map used to drive parsing.
type Compiled struct {
	Data        *ParserData
	First       map[Index]*Set
	Follow      map[Index]*Set
	Director    map[Index]*Set
	DirectorMap map[Index]map[Member]*Production
}

// Compile runs FIRST/FOLLOW/director-set computation over data and builds
// the per-non-terminal director map, rejecting grammars that are not
// LL(1) or that contain left recursion.
func Compile(data *ParserData) (*Compiled, error) {
	fc := newFirstCache(data)
	first := map[Index]*Set{}
	for _, nt := range data.NonTerminals() {
		s, err := fc.firstOfNonTerminal(nt)
		if err != nil {
			return nil, err
		}
		first[nt] = s
	}

	follow, err := computeFollow(data, fc)
	if err != nil {
		return nil, err
	}

	director := map[Index]*Set{}
	for _, nt := range data.NonTerminals() {
		director[nt] = directorSet(first[nt], follow[nt])
	}

	dmap := map[Index]map[Member]*Production{}
	for _, nt := range data.NonTerminals() {
		rules, _ := data.Rules(nt)
		ntElem, _ := data.Element(nt)
		m := map[Member]*Production{}
		for _, prod := range rules.Productions {
			if prod.IsEmpty() {
				for _, k := range follow[nt].Members() {
					if err := insertDirector(m, ntElem, k, prod); err != nil {
						return nil, err
					}
				}
				continue
			}
			first0 := prod.RHS[0]
			elem, err := data.Element(first0)
			if err != nil {
				return nil, err
			}
			if elem.Kind == Terminal {
				r := []rune(elem.Name)[0]
				if err := insertDirector(m, ntElem, Char(r), prod); err != nil {
					return nil, err
				}
				continue
			}
			for _, k := range director[first0].Members() {
				if err := insertDirector(m, ntElem, k, prod); err != nil {
					return nil, err
				}
			}
		}
		dmap[nt] = m
	}

	return &Compiled{
		Data:        data,
		First:       first,
		Follow:      follow,
		Director:    director,
		DirectorMap: dmap,
	}, nil
}

func insertDirector(m map[Member]*Production, ntElem Element, k Member, prod *Production) error {
	if existing, ok := m[k]; ok && existing != prod {
		return &DirectorConflictError{NonTerminal: ntElem.Name, Symbol: k.String(), Row: ntElem.Row}
	}
	m[k] = prod
	return nil
}
