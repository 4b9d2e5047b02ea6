package grammar

import (
	"strings"
	"testing"

	"github.com/hbrokkoli/steuer/lex"
	"github.com/hbrokkoli/steuer/support/tree"
	"github.com/hbrokkoli/steuer/vm"
)

func TestLoadBasicGrammar(t *testing.T) {
	src := `
start -> "a" "b" ;
`
	data, err := Load(src, vm.NullVM{})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if _, ok := data.Lookup(NonTerminal, "start"); !ok {
		t.Fatalf("start non-terminal not interned")
	}
	rules, ok := data.Rules(data.Start)
	if !ok || len(rules.Productions) != 1 {
		t.Fatalf("start rule = %+v, %v; want one production", rules, ok)
	}
	if len(rules.Productions[0].RHS) != 2 {
		t.Fatalf("start production RHS length = %d; want 2", len(rules.Productions[0].RHS))
	}
}

func TestLoadMissingStartIsUndefined(t *testing.T) {
	src := `other -> "x" ;`
	_, err := Load(src, vm.NullVM{})
	if err == nil {
		t.Fatalf("Load() with no start rule did not error")
	}
	undef, ok := err.(*UndefinedNonTerminalError)
	if !ok || undef.Name != startSymbolName {
		t.Fatalf("error = %#v; want UndefinedNonTerminalError{start}", err)
	}
	if undef.Row != 0 {
		t.Fatalf("UndefinedNonTerminalError.Row = %d; want 0 (a missing `start` rule has no single source location)", undef.Row)
	}
}

func TestLoadRejectsEmptyLiteral(t *testing.T) {
	src := `start -> "" ;`
	_, err := Load(src, vm.NullVM{})
	if _, ok := err.(*EmptyLiteralError); !ok {
		t.Fatalf("error = %#v; want EmptyLiteralError", err)
	}
}

func TestLoadRejectsEmptyMixedWithOtherElements(t *testing.T) {
	src := `start -> "a" # ;`
	_, err := Load(src, vm.NullVM{})
	if _, ok := err.(*UnexpectedElementError); !ok {
		t.Fatalf("error = %#v; want UnexpectedElementError", err)
	}
}

func TestLoadRejectsUndefinedNonTerminal(t *testing.T) {
	src := `start -> missing ;`
	_, err := Load(src, vm.NullVM{})
	undef, ok := err.(*UndefinedNonTerminalError)
	if !ok || undef.Name != "missing" {
		t.Fatalf("error = %#v; want UndefinedNonTerminalError{missing}", err)
	}
	if undef.Row != 1 {
		t.Fatalf("UndefinedNonTerminalError.Row = %d; want 1", undef.Row)
	}
}

func TestLoadMergesRepeatedRuleDefinitions(t *testing.T) {
	src := `
start -> a ;
a -> "x" ;
a -> "y" ;
`
	data, err := Load(src, vm.NullVM{})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	aIdx, _ := data.Lookup(NonTerminal, "a")
	rules, _ := data.Rules(aIdx)
	if len(rules.Productions) != 2 {
		t.Fatalf("merged rule `a` has %d productions; want 2", len(rules.Productions))
	}
}

func TestLoadWeavesDefaultIgnoreBetweenAdjacentSymbols(t *testing.T) {
	src := `
$IGNORE: ws;
start -> "a" "b" "c" ;
ws -> " " ;
`
	data, err := Load(src, vm.NullVM{})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	rules, _ := data.Rules(data.Start)
	rhs := rules.Productions[0].RHS
	// a ws b ws c: 3 real elements with an ignore woven between each pair.
	if len(rhs) != 5 {
		t.Fatalf("woven production length = %d; want 5", len(rhs))
	}
	wsIdx, _ := data.Lookup(NonTerminal, "ws")
	if rhs[1] != wsIdx || rhs[3] != wsIdx {
		t.Fatalf("ignore element not woven at expected positions: %v", rhs)
	}
}

func TestLoadSkipsWeavingWhenIgnoreSelfDerives(t *testing.T) {
	// ws would directly appear inside its own expansion if woven into its
	// own rule's multi-element alternative; the loader must leave this rule
	// unwoven rather than weaving forever.
	src := `
$IGNORE: ws;
start -> "x" ;
ws -> " " ws "b" ;
`
	data, err := Load(src, vm.NullVM{})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	wsIdx, _ := data.Lookup(NonTerminal, "ws")
	rules, _ := data.Rules(wsIdx)
	rhs := rules.Productions[0].RHS
	if len(rhs) != 3 {
		t.Fatalf("self-derivable rule was woven anyway: RHS = %v", rhs)
	}
}

func TestLoadPerRuleIgnoreOverride(t *testing.T) {
	src := `
$IGNORE: ws;
start -> "a" "b" ;
lit -> $[IGNORE: #] "c" "d" ;
ws -> " " ;
`
	data, err := Load(src, vm.NullVM{})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	startRules, _ := data.Rules(data.Start)
	if len(startRules.Productions[0].RHS) != 3 {
		t.Fatalf("start (default ignore) RHS = %v; want 3 elements", startRules.Productions[0].RHS)
	}
	litIdx, _ := data.Lookup(NonTerminal, "lit")
	litRules, _ := data.Rules(litIdx)
	if len(litRules.Productions[0].RHS) != 2 {
		t.Fatalf("lit ($[IGNORE: #]) RHS = %v; want 2 elements (no weaving)", litRules.Productions[0].RHS)
	}
}

func TestLoadCapturesSemanticAction(t *testing.T) {
	captured := ""
	rec := recordingVM{onAction: func(name string) { captured = name }}
	src := `start -> "x" { anything in here } ;`
	_, err := Load(src, rec)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if captured != "start" {
		t.Fatalf("captured rule name = %q; want start", captured)
	}
}

// recordingVM is a minimal vm.VM used only to observe which rule name an
// action block was captured for.
type recordingVM struct {
	onAction func(ruleName string)
}

func (r recordingVM) NewState() vm.State { return nil }
func (r recordingVM) MakeAction(ruleName string, cur *lex.Cursor) (vm.Action, error) {
	r.onAction(ruleName)
	for {
		if _, ok := cur.Next(); !ok {
			break
		}
	}
	return func(_ *tree.Tree, _ tree.NodeID, _ vm.State) error { return nil }, nil
}

func TestLoadNoRulesErrors(t *testing.T) {
	_, err := Load("   ", vm.NullVM{})
	if err == nil {
		t.Fatalf("Load() on empty grammar text did not error")
	}
	if !strings.Contains(err.Error(), "no rules") {
		t.Fatalf("error = %v; want a no-rules message", err)
	}
}
