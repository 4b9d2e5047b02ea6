// Package spec defines CompiledGrammar, a serializable snapshot of a
// compiled grammar (element table, productions, and director maps) used by
// the check subcommand to report analysis results and to round-trip a
// grammar's analysis without re-running FIRST/FOLLOW/director computation.
package spec

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/dekarrin/rezi"

	"github.com/hbrokkoli/steuer/grammar"
	"github.com/hbrokkoli/steuer/vm"
)

// ElementRecord is one interned grammar symbol.
type ElementRecord struct {
	Index int    `json:"index"`
	Kind  string `json:"kind"`
	Name  string `json:"name"`
}

// ProductionRecord is one alternative's right-hand side, as element
// indices; an empty RHS denotes the `#` production.
type ProductionRecord struct {
	RHS []int `json:"rhs"`
}

// DirectorEntry is one (look-ahead, production) pair from a non-terminal's
// director map. Production is an index into the owning RuleRecord's
// Productions slice.
type DirectorEntry struct {
	Kind       string `json:"kind"` // "char" or "terminate"
	Char       string `json:"char,omitempty"`
	Production int    `json:"production"`
}

// RuleRecord is one non-terminal's compiled rule set.
type RuleRecord struct {
	Name        string             `json:"name"`
	Ignore      int                `json:"ignore,omitempty"`
	HasAction   bool               `json:"has_action"`
	Productions []ProductionRecord `json:"productions"`
	Director    []DirectorEntry    `json:"director_map"`
}

// CompiledGrammar is the full, flattened snapshot of a grammar.Compiled
// result: every interned element, every non-terminal's productions and
// director map, and the start symbol's index.
type CompiledGrammar struct {
	Elements      []ElementRecord `json:"elements"`
	Rules         []RuleRecord    `json:"rules"`
	Start         int             `json:"start"`
	DefaultIgnore int             `json:"default_ignore,omitempty"`
}

// FromCompiled flattens a grammar.Compiled result into a CompiledGrammar
// snapshot suitable for serialization.
func FromCompiled(c *grammar.Compiled) (*CompiledGrammar, error) {
	data := c.Data

	nts := data.NonTerminals()
	sort.Slice(nts, func(i, j int) bool { return nts[i] < nts[j] })

	maxIdx := int(data.Start)
	for _, nt := range nts {
		if int(nt) > maxIdx {
			maxIdx = int(nt)
		}
	}

	var elements []ElementRecord
	seen := map[grammar.Index]bool{}
	addElement := func(idx grammar.Index) error {
		if idx == 0 || seen[idx] {
			return nil
		}
		seen[idx] = true
		elem, err := data.Element(idx)
		if err != nil {
			return err
		}
		elements = append(elements, ElementRecord{Index: int(idx), Kind: elem.Kind.String(), Name: elem.Name})
		return nil
	}

	var rules []RuleRecord
	for _, nt := range nts {
		if err := addElement(nt); err != nil {
			return nil, err
		}
		r, ok := data.Rules(nt)
		if !ok {
			return nil, fmt.Errorf("spec: non-terminal %v has no rules", nt)
		}

		prodIndex := map[*grammar.Production]int{}
		var prodRecords []ProductionRecord
		for i, p := range r.Productions {
			prodIndex[p] = i
			rhs := make([]int, len(p.RHS))
			for j, e := range p.RHS {
				rhs[j] = int(e)
				if err := addElement(e); err != nil {
					return nil, err
				}
			}
			prodRecords = append(prodRecords, ProductionRecord{RHS: rhs})
		}

		dmap := c.DirectorMap[nt]
		members := make([]grammar.Member, 0, len(dmap))
		for m := range dmap {
			members = append(members, m)
		}
		sort.Slice(members, func(i, j int) bool { return members[i].String() < members[j].String() })

		var entries []DirectorEntry
		for _, m := range members {
			prod := dmap[m]
			idx, ok := prodIndex[prod]
			if !ok {
				return nil, fmt.Errorf("spec: director entry for %q references an unlisted production", r.Name)
			}
			if m.IsTerminate() {
				entries = append(entries, DirectorEntry{Kind: "terminate", Production: idx})
			} else {
				entries = append(entries, DirectorEntry{Kind: "char", Char: string(m.Rune()), Production: idx})
			}
		}

		rules = append(rules, RuleRecord{
			Name:        r.Name,
			Ignore:      int(r.Ignore),
			HasAction:   r.Action != nil,
			Productions: prodRecords,
			Director:    entries,
		})
	}

	sort.Slice(elements, func(i, j int) bool { return elements[i].Index < elements[j].Index })

	return &CompiledGrammar{
		Elements:      elements,
		Rules:         rules,
		Start:         int(data.Start),
		DefaultIgnore: int(data.DefaultIgnore),
	}, nil
}

// Reconstruct rebuilds a runnable grammar.Compiled from this snapshot,
// without re-running the loader or set analyzer — the mechanism behind
// `steuer parse --from-cache`/`steuer repl --from-cache` reading back what
// `steuer check -o` wrote.
func (c *CompiledGrammar) Reconstruct(machine vm.VM) (*grammar.Compiled, error) {
	elements := make([]grammar.Element, len(c.Elements))
	for i, er := range c.Elements {
		kind, err := grammar.ParseKind(er.Kind)
		if err != nil {
			return nil, err
		}
		elements[i] = grammar.Element{Index: grammar.Index(er.Index), Kind: kind, Name: er.Name}
	}

	byName := map[string]grammar.Index{}
	for _, er := range c.Elements {
		if er.Kind == grammar.NonTerminal.String() {
			byName[er.Name] = grammar.Index(er.Index)
		}
	}

	rules := make([]grammar.RuleSnapshot, len(c.Rules))
	for i, rr := range c.Rules {
		idx, ok := byName[rr.Name]
		if !ok {
			return nil, fmt.Errorf("spec: rule %q has no matching element", rr.Name)
		}

		prods := make([][]grammar.Index, len(rr.Productions))
		for j, pr := range rr.Productions {
			rhs := make([]grammar.Index, len(pr.RHS))
			for k, e := range pr.RHS {
				rhs[k] = grammar.Index(e)
			}
			prods[j] = rhs
		}

		director := make([]grammar.DirectorSnapshot, len(rr.Director))
		for j, de := range rr.Director {
			ds := grammar.DirectorSnapshot{Production: de.Production}
			if de.Kind == "terminate" {
				ds.IsTerminate = true
			} else {
				runes := []rune(de.Char)
				if len(runes) != 1 {
					return nil, fmt.Errorf("spec: director entry for %q has a malformed char %q", rr.Name, de.Char)
				}
				ds.Char = runes[0]
			}
			director[j] = ds
		}

		rules[i] = grammar.RuleSnapshot{
			Index:       idx,
			Name:        rr.Name,
			Ignore:      grammar.Index(rr.Ignore),
			HasAction:   rr.HasAction,
			Productions: prods,
			Director:    director,
		}
	}

	return grammar.FromSnapshot(elements, rules, grammar.Index(c.Start), grammar.Index(c.DefaultIgnore), machine)
}

// ToJSON renders the snapshot as indented JSON.
func (c *CompiledGrammar) ToJSON() ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}

// FromJSON parses a snapshot previously produced by ToJSON.
func FromJSON(data []byte) (*CompiledGrammar, error) {
	var c CompiledGrammar
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("spec: decode JSON: %w", err)
	}
	return &c, nil
}

// ToBinary renders the snapshot using REZI's binary encoding, for the
// `--format bin` CLI option.
func (c *CompiledGrammar) ToBinary() []byte {
	return rezi.EncBinary(c)
}

// FromBinary parses a snapshot previously produced by ToBinary.
func FromBinary(data []byte) (*CompiledGrammar, error) {
	var c CompiledGrammar
	n, err := rezi.DecBinary(data, &c)
	if err != nil {
		return nil, fmt.Errorf("spec: decode REZI binary: %w", err)
	}
	if n != len(data) {
		return nil, fmt.Errorf("spec: REZI decode consumed %d/%d bytes", n, len(data))
	}
	return &c, nil
}
