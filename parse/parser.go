// Package parse implements the predictive parse driver (C4): walking a
// compiled grammar's director maps to pick, at each non-terminal, the
// single production whose director set contains the current look-ahead,
// building a parse tree as it goes and firing semantic actions on the way
// out of each rule.
package parse

import (
	"github.com/hbrokkoli/steuer/grammar"
	"github.com/hbrokkoli/steuer/lex"
	"github.com/hbrokkoli/steuer/support/tree"
	"github.com/hbrokkoli/steuer/vm"
)

// Parser runs a compiled grammar's director maps against input text.
type Parser struct {
	compiled *grammar.Compiled
	machine  vm.VM
}

// New builds a Parser from set-analysis output and a virtual machine for
// running the grammar's semantic actions.
func New(compiled *grammar.Compiled, machine vm.VM) *Parser {
	return &Parser{compiled: compiled, machine: machine}
}

// Parse runs the grammar's start symbol against input, returning the
// resulting parse tree. state accumulates whatever the grammar's semantic
// actions do with it; pass p.machine.NewState() for a fresh run.
func (p *Parser) Parse(input string, state vm.State) (*tree.Tree, error) {
	cur := lex.New(input)
	t := tree.New()

	startElem, err := p.compiled.Data.Element(p.compiled.Data.Start)
	if err != nil {
		return nil, err
	}
	root, err := t.Root(startElem.Name)
	if err != nil {
		return nil, err
	}

	if err := p.parseNonTerminal(t, root, p.compiled.Data.Start, cur, state); err != nil {
		return nil, err
	}

	if got, ok := cur.Peek(); ok {
		return nil, &TrailingInputError{Row: cur.Row(), Got: got}
	}
	return t, nil
}

func (p *Parser) parseNonTerminal(t *tree.Tree, node tree.NodeID, nt grammar.Index, cur *lex.Cursor, state vm.State) error {
	data := p.compiled.Data
	rules, ok := data.Rules(nt)
	if !ok {
		return grammar.ErrMissingProduction
	}

	dmap := p.compiled.DirectorMap[nt]
	lookahead := lookaheadMember(cur)
	prod, ok := dmap[lookahead]
	if !ok {
		got, hasMore := cur.Peek()
		return &NoProductionError{NonTerminal: rules.Name, Row: cur.Row(), Got: got, AtEOF: !hasMore}
	}

	for _, e := range prod.RHS {
		elem, err := data.Element(e)
		if err != nil {
			return err
		}
		if elem.Kind == grammar.Terminal {
			if err := p.matchTerminal(t, node, elem, cur); err != nil {
				return err
			}
			continue
		}
		child, err := t.AddNode(elem.Name, node)
		if err != nil {
			return err
		}
		if err := p.parseNonTerminal(t, child, elem.Index, cur, state); err != nil {
			return err
		}
	}

	if rules.Action != nil {
		if err := rules.Action(t, node, state); err != nil {
			return err
		}
	}
	return nil
}

func (p *Parser) matchTerminal(t *tree.Tree, parent tree.NodeID, elem grammar.Element, cur *lex.Cursor) error {
	node, err := t.AddNode(elem.Name, parent)
	if err != nil {
		return err
	}
	for _, want := range elem.Name {
		got, ok := cur.Next()
		if !ok {
			return lex.EndOfInput(cur)
		}
		if got != want {
			return lex.UnexpectedChar(cur, got, want)
		}
	}
	return t.SetPayload(node, elem.Name)
}

func lookaheadMember(cur *lex.Cursor) grammar.Member {
	if r, ok := cur.Peek(); ok {
		return grammar.Char(r)
	}
	return grammar.Terminate
}
