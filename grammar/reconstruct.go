package grammar

import (
	"github.com/hbrokkoli/steuer/lex"
	"github.com/hbrokkoli/steuer/vm"
)

// RuleSnapshot is the plain-data shape a cached compiled grammar supplies
// per non-terminal when rebuilding a Compiled result without re-running the
// loader or set analyzer (see spec.CompiledGrammar.Reconstruct). It mirrors
// NonTerminalRules plus the non-terminal's director-map entries flattened to
// primitive types, so the spec package (which holds the serializable form)
// never needs to reach into this package's unexported table/production
// machinery.
type RuleSnapshot struct {
	Index       Index
	Name        string
	Ignore      Index
	HasAction   bool
	Productions [][]Index // one entry per alternative; nil/empty RHS means the `#` production
	Director    []DirectorSnapshot
}

// DirectorSnapshot is one look-ahead-to-production entry, keyed by
// production index into the owning RuleSnapshot.Productions.
type DirectorSnapshot struct {
	IsTerminate bool
	Char        rune
	Production  int
}

// FromSnapshot rebuilds a Compiled result from the element table and
// per-rule data a CompiledGrammar snapshot carries, instead of re-running
// Load+Compile over grammar text. The snapshot does not retain FIRST/FOLLOW
// sets (the parser only needs Data and DirectorMap to run), so First/Follow/
// Director on the returned value are left empty; callers that need them
// must compile from source instead.
//
// A rule flagged HasAction gets its Action filled in by calling
// machine.MakeAction with an empty cursor: every built-in VM dispatches
// purely on rule name and fully ignores the action-body text it's handed
// (see vm.NullVM/StackVM/CountingVM), so this reproduces the same Action a
// fresh Load would have captured, without persisting action source text in
// the cache.
func FromSnapshot(elements []Element, rules []RuleSnapshot, start, defaultIgnore Index, machine vm.VM) (*Compiled, error) {
	tbl := newTable()
	w := tbl.writer()
	maxIdx := 0
	for _, e := range elements {
		if int(e.Index) > maxIdx {
			maxIdx = int(e.Index)
		}
	}
	w.elems = make([]Element, maxIdx+1)
	for _, e := range elements {
		w.elems[e.Index] = e
		w.byKey[tableKey{name: e.Name, kind: e.Kind}] = e.Index
	}

	ps := newProductionSet()
	byNT := map[Index]*NonTerminalRules{}
	dmap := map[Index]map[Member]*Production{}

	for _, rs := range rules {
		var action vm.Action
		if rs.HasAction {
			a, err := machine.MakeAction(rs.Name, lex.New(""))
			if err != nil {
				return nil, err
			}
			action = a
		}

		nt := &NonTerminalRules{Name: rs.Name, Ignore: rs.Ignore, Action: action}
		prods := make([]*Production, len(rs.Productions))
		for i, rhs := range rs.Productions {
			prods[i] = ps.add(rs.Index, rhs)
		}
		nt.Productions = prods
		byNT[rs.Index] = nt

		m := map[Member]*Production{}
		for _, d := range rs.Director {
			if d.Production < 0 || d.Production >= len(prods) {
				return nil, ErrMissingProduction
			}
			key := Char(d.Char)
			if d.IsTerminate {
				key = Terminate
			}
			m[key] = prods[d.Production]
		}
		dmap[rs.Index] = m
	}

	data := &ParserData{elems: tbl, rules: byNT, Start: start, DefaultIgnore: defaultIgnore}
	return &Compiled{
		Data:        data,
		First:       map[Index]*Set{},
		Follow:      map[Index]*Set{},
		Director:    map[Index]*Set{},
		DirectorMap: dmap,
	}, nil
}
