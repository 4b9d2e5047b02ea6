package grammar

import "github.com/hbrokkoli/steuer/support/graph"

// computeFollow computes FOLLOW(N) for every non-terminal N. FOLLOW(start)
// is seeded with Terminate; for every occurrence of a non-terminal B inside
// a production A -> ... B beta, FIRST(beta)\{Empty} is merged directly into
// FOLLOW(B), and an edge A -> B is recorded whenever beta is nullable (so
// FOLLOW(A) must also propagate into FOLLOW(B)). The edges are then
// propagated to a fixed point over a work-graph rather than computed in one
// pass, since FOLLOW dependencies can cross non-terminals in either
// direction.
func computeFollow(data *ParserData, fc *firstCache) (map[Index]*Set, error) {
	g := graph.NewNamed[Index, *Set]()
	for _, nt := range data.NonTerminals() {
		g.AddNode(nt, newSet())
	}

	startSet, ok := g.Payload(data.Start)
	if !ok {
		return nil, &UndefinedNonTerminalError{Name: startSymbolName}
	}
	(*startSet).Add(Terminate)

	for _, nt := range data.NonTerminals() {
		rules, _ := data.Rules(nt)
		for _, prod := range rules.Productions {
			for i, e := range prod.RHS {
				elem, err := data.Element(e)
				if err != nil {
					return nil, err
				}
				if elem.Kind != NonTerminal {
					continue
				}
				betaFirst, err := fc.firstOfSequence(prod.RHS, i+1)
				if err != nil {
					return nil, err
				}
				payload, ok := g.Payload(e)
				if !ok {
					return nil, &UndefinedNonTerminalError{Name: elem.Name, Row: elem.Row}
				}
				(*payload).Merge(betaFirst)
				if betaFirst.HasEmpty() {
					g.AddEdge(prod.LHS, e)
				}
			}
		}
	}

	for {
		changed := false
		for _, nt := range data.NonTerminals() {
			src, _ := g.Payload(nt)
			for _, succKey := range g.Successors(nt) {
				dst, _ := g.Payload(succKey)
				for _, m := range (*src).Members() {
					if (*dst).Add(m) {
						changed = true
					}
				}
			}
		}
		if !changed {
			break
		}
	}

	result := make(map[Index]*Set, len(data.NonTerminals()))
	for _, nt := range data.NonTerminals() {
		p, _ := g.Payload(nt)
		result[nt] = *p
	}
	return result, nil
}
