package grammar

import "github.com/hbrokkoli/steuer/vm"

// NonTerminalRules holds everything the loader gathered for one
// non-terminal: its alternatives in source order, the ignore element woven
// between adjacent symbols (if any), and the semantic action captured from
// a trailing `{ ... }` block (if any).
type NonTerminalRules struct {
	Name        string
	Productions []*Production
	Ignore      Index // nilIndex means "no ignore for this rule"
	Action      vm.Action
}

// ParserData is the full grammar table produced by the loader (C2): the
// interned element vector and the per-non-terminal rule map, plus the
// grammar-wide default ignore element set by `$IGNORE: name;`.
type ParserData struct {
	elems         *table
	rules         map[Index]*NonTerminalRules
	Start         Index
	DefaultIgnore Index
}

// Element resolves idx to its interned Element.
func (d *ParserData) Element(idx Index) (Element, error) {
	return d.elems.reader().element(idx)
}

// Rules returns the NonTerminalRules for a non-terminal's index.
func (d *ParserData) Rules(idx Index) (*NonTerminalRules, bool) {
	r, ok := d.rules[idx]
	return r, ok
}

// NonTerminals returns every interned non-terminal's index.
func (d *ParserData) NonTerminals() []Index {
	return d.elems.reader().nonTerminalIndices()
}

// Lookup resolves a (kind, name) pair to its interned index, if present.
func (d *ParserData) Lookup(kind Kind, name string) (Index, bool) {
	return d.elems.reader().lookup(kind, name)
}
