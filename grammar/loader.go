package grammar

import (
	"fmt"

	"github.com/hbrokkoli/steuer/lex"
	"github.com/hbrokkoli/steuer/vm"
)

// startSymbolName is the identifier the loader requires the grammar to
// define; every example in this specification names its entry rule
// "start", and the loader enforces that convention rather than guessing.
const startSymbolName = "start"

const ignoreDirective = "IGNORE"

type rawElement struct {
	kind Kind
	name string
	row  int
}

type rawAlt struct {
	empty bool
	elems []rawElement
}

type ruleBuilder struct {
	name       string
	row        int // source row of the rule's first definition
	alts       []rawAlt
	ignoreSet  bool
	ignoreNone bool
	ignoreName string
	ignoreRow  int
	action     vm.Action
}

// Load parses grammar text into a ParserData: it runs the full C2 pipeline
// (meta-language parsing, merging, ignore weaving) but does not run set
// analysis (see Compile in sets.go).
func Load(src string, machine vm.VM) (*ParserData, error) {
	cur := lex.New(src)
	cur.SkipWhitespace()

	defaultIgnoreSet, defaultIgnoreNone, defaultIgnoreName, defaultIgnoreRow, err := maybeParseSpecial(cur)
	if err != nil {
		return nil, err
	}
	cur.SkipWhitespace()

	builders := map[string]*ruleBuilder{}
	var order []string
	for {
		if _, ok := cur.Peek(); !ok {
			break
		}
		if err := parseRuleItem(cur, machine, builders, &order); err != nil {
			return nil, err
		}
		cur.SkipWhitespace()
	}

	if len(order) == 0 {
		return nil, &UnexpectedElementError{Reason: "grammar defines no rules"}
	}

	tbl := newTable()
	w := tbl.writer()
	rd := tbl.reader()
	for _, name := range order {
		w.internRow(NonTerminal, name, builders[name].row)
	}

	rawByIdx := map[Index][]struct {
		empty bool
		elems []Index
	}{}
	for _, name := range order {
		b := builders[name]
		lhs, _ := rd.lookup(NonTerminal, name)
		var alts []struct {
			empty bool
			elems []Index
		}
		for _, a := range b.alts {
			if a.empty {
				alts = append(alts, struct {
					empty bool
					elems []Index
				}{empty: true})
				continue
			}
			elems := make([]Index, len(a.elems))
			for i, e := range a.elems {
				if e.kind == Terminal {
					elems[i] = w.intern(Terminal, e.name)
					continue
				}
				idx, ok := rd.lookup(NonTerminal, e.name)
				if !ok {
					return nil, &UndefinedNonTerminalError{Name: e.name, Row: e.row}
				}
				elems[i] = idx
			}
			alts = append(alts, struct {
				empty bool
				elems []Index
			}{elems: elems})
		}
		rawByIdx[lhs] = alts
	}

	startIdx, ok := rd.lookup(NonTerminal, startSymbolName)
	if !ok {
		return nil, &UndefinedNonTerminalError{Name: startSymbolName}
	}

	var defaultIgnoreIdx Index
	if defaultIgnoreSet && !defaultIgnoreNone {
		idx, ok := rd.lookup(NonTerminal, defaultIgnoreName)
		if !ok {
			return nil, &UndefinedNonTerminalError{Name: defaultIgnoreName, Row: defaultIgnoreRow}
		}
		defaultIgnoreIdx = idx
	}

	rules := map[Index]*NonTerminalRules{}
	ps := newProductionSet()
	for _, name := range order {
		b := builders[name]
		lhs, _ := rd.lookup(NonTerminal, name)

		effIgnore := defaultIgnoreIdx
		if b.ignoreSet {
			if b.ignoreNone {
				effIgnore = nilIndex
			} else {
				idx, ok := rd.lookup(NonTerminal, b.ignoreName)
				if !ok {
					return nil, &UndefinedNonTerminalError{Name: b.ignoreName, Row: b.ignoreRow}
				}
				effIgnore = idx
			}
		}
		if effIgnore != nilIndex && reaches(effIgnore, lhs, rawByIdx) {
			effIgnore = nilIndex
		}

		nt := &NonTerminalRules{Name: name, Ignore: effIgnore, Action: b.action}
		for _, a := range rawByIdx[lhs] {
			if a.empty {
				nt.Productions = append(nt.Productions, ps.add(lhs, nil))
				continue
			}
			rhs := a.elems
			if effIgnore != nilIndex && len(rhs) > 1 {
				woven := make([]Index, 0, len(rhs)*2-1)
				for i, e := range rhs {
					woven = append(woven, e)
					if i < len(rhs)-1 {
						woven = append(woven, effIgnore)
					}
				}
				rhs = woven
			}
			nt.Productions = append(nt.Productions, ps.add(lhs, rhs))
		}
		rules[lhs] = nt
	}

	return &ParserData{elems: tbl, rules: rules, Start: startIdx, DefaultIgnore: defaultIgnoreIdx}, nil
}

// reaches reports whether non-terminal `from` transitively reaches `to`
// through at least one production (i.e. to appears somewhere in the
// expansion of from). The visited set is local to this call, per the
// weaving self-derivation check's per-query semantics.
func reaches(from, to Index, rawByIdx map[Index][]struct {
	empty bool
	elems []Index
}) bool {
	visited := map[Index]bool{}
	var visit func(Index) bool
	visit = func(n Index) bool {
		if visited[n] {
			return false
		}
		visited[n] = true
		for _, alt := range rawByIdx[n] {
			for _, e := range alt.elems {
				if e == to {
					return true
				}
				if visit(e) {
					return true
				}
			}
		}
		return false
	}
	return visit(from)
}

func maybeParseSpecial(cur *lex.Cursor) (set, none bool, name string, row int, err error) {
	r, ok := cur.Peek()
	if !ok || r != '$' {
		return false, false, "", 0, nil
	}
	cur.Next()
	ident, err := cur.ParseIdentifier()
	if err != nil {
		return false, false, "", 0, err
	}
	if ident != ignoreDirective {
		return false, false, "", 0, lex.UnknownSpecialOp(cur, ident)
	}
	if err := cur.ParseSymbol(':'); err != nil {
		return false, false, "", 0, err
	}
	cur.SkipWhitespace()
	if r, ok := cur.Peek(); ok && r == '#' {
		cur.Next()
		if err := finishSemicolon(cur); err != nil {
			return false, false, "", 0, err
		}
		return true, true, "", 0, nil
	}
	targetRow := cur.Row()
	target, err := cur.ParseIdentifier()
	if err != nil {
		return false, false, "", 0, err
	}
	if err := finishSemicolon(cur); err != nil {
		return false, false, "", 0, err
	}
	return true, false, target, targetRow, nil
}

func finishSemicolon(cur *lex.Cursor) error {
	cur.SkipWhitespace()
	return cur.ParseSymbol(';')
}

func parseRuleItem(cur *lex.Cursor, machine vm.VM, builders map[string]*ruleBuilder, order *[]string) error {
	row := cur.Row()
	name, err := cur.ParseIdentifier()
	if err != nil {
		return err
	}
	cur.SkipWhitespace()
	if err := cur.ParseSymbol('-'); err != nil {
		return err
	}
	if err := cur.ParseSymbol('>'); err != nil {
		return err
	}
	cur.SkipWhitespace()

	overrideSet, overrideNone, overrideName, overrideRow, err := maybeParseOverride(cur)
	if err != nil {
		return err
	}
	cur.SkipWhitespace()

	var alts []rawAlt
	for {
		alt, err := parseAlternative(cur)
		if err != nil {
			return err
		}
		alts = append(alts, alt)
		cur.SkipWhitespace()
		r, ok := cur.Peek()
		if !ok || r != '|' {
			break
		}
		cur.Next()
		cur.SkipWhitespace()
	}

	var action vm.Action
	r, ok := cur.Peek()
	if ok && r == '{' {
		cur.Next()
		sub := cur.OpenBounded('}', '\\')
		a, err := machine.MakeAction(name, sub)
		if err != nil {
			return fmt.Errorf("vm error in rule %q: %w", name, err)
		}
		cur.SyncFrom(sub)
		if err := cur.ParseSymbol('}'); err != nil {
			return err
		}
		action = a
		cur.SkipWhitespace()
	}

	if err := cur.ParseSymbol(';'); err != nil {
		return err
	}

	b, exists := builders[name]
	if !exists {
		b = &ruleBuilder{name: name, row: row}
		builders[name] = b
		*order = append(*order, name)
	}
	b.alts = append(b.alts, alts...)
	if overrideSet {
		b.ignoreSet = true
		b.ignoreNone = overrideNone
		b.ignoreName = overrideName
		b.ignoreRow = overrideRow
	}
	if action != nil {
		b.action = action
	}
	return nil
}

func maybeParseOverride(cur *lex.Cursor) (set, none bool, name string, row int, err error) {
	r, ok := cur.Peek()
	if !ok || r != '$' {
		return false, false, "", 0, nil
	}
	cur.Next()
	if err := cur.ParseSymbol('['); err != nil {
		return false, false, "", 0, err
	}
	ident, err := cur.ParseIdentifier()
	if err != nil {
		return false, false, "", 0, err
	}
	if ident != ignoreDirective {
		return false, false, "", 0, lex.UnknownSpecialOp(cur, ident)
	}
	if err := cur.ParseSymbol(':'); err != nil {
		return false, false, "", 0, err
	}
	cur.SkipWhitespace()
	if r, ok := cur.Peek(); ok && r == '#' {
		cur.Next()
		cur.SkipWhitespace()
		if err := cur.ParseSymbol(']'); err != nil {
			return false, false, "", 0, err
		}
		return true, true, "", 0, nil
	}
	targetRow := cur.Row()
	target, err := cur.ParseIdentifier()
	if err != nil {
		return false, false, "", 0, err
	}
	cur.SkipWhitespace()
	if err := cur.ParseSymbol(']'); err != nil {
		return false, false, "", 0, err
	}
	return true, false, target, targetRow, nil
}

func parseAlternative(cur *lex.Cursor) (rawAlt, error) {
	var elems []rawElement
	sawEmpty := false
	for {
		cur.SkipWhitespace()
		r, ok := cur.Peek()
		if !ok {
			return rawAlt{}, lex.EndOfInput(cur)
		}
		switch {
		case r == '|' || r == ';' || r == '{':
			if sawEmpty && len(elems) > 0 {
				return rawAlt{}, &UnexpectedElementError{Reason: "`#` cannot be mixed with other elements in an alternative"}
			}
			if sawEmpty {
				return rawAlt{empty: true}, nil
			}
			if len(elems) == 0 {
				return rawAlt{}, &UnexpectedElementError{Reason: "an alternative must contain `#` or at least one element"}
			}
			return rawAlt{elems: elems}, nil
		case r == '#':
			cur.Next()
			sawEmpty = true
		case r == '"':
			cur.Next()
			lit, err := parseTerminalLiteral(cur)
			if err != nil {
				return rawAlt{}, err
			}
			if lit == "" {
				return rawAlt{}, &EmptyLiteralError{Row: cur.Row()}
			}
			elems = append(elems, rawElement{kind: Terminal, name: lit})
		default:
			identRow := cur.Row()
			ident, err := cur.ParseIdentifier()
			if err != nil {
				return rawAlt{}, err
			}
			elems = append(elems, rawElement{kind: NonTerminal, name: ident, row: identRow})
		}
	}
}

// parseTerminalLiteral consumes characters up to (and including) the
// closing unescaped '"', handling `\"` and `\\` escapes, and returns the
// unescaped literal text.
func parseTerminalLiteral(cur *lex.Cursor) (string, error) {
	var out []rune
	for {
		r, ok := cur.Next()
		if !ok {
			return "", lex.EndOfInput(cur)
		}
		if r == '\\' {
			esc, ok := cur.Next()
			if !ok {
				return "", lex.EndOfInput(cur)
			}
			switch esc {
			case '"', '\\':
				out = append(out, esc)
			default:
				return "", lex.UnexpectedChar(cur, esc, '"')
			}
			continue
		}
		if r == '"' {
			return string(out), nil
		}
		out = append(out, r)
	}
}
