package grammar

import (
	"testing"

	"github.com/hbrokkoli/steuer/vm"
)

const arithmeticGrammar = `
start -> expr print ;
expr -> digit rest ;
rest -> add | sub | # ;
add -> "+" digit ;
sub -> "-" digit ;
digit -> "0" | "1" | "2" | "3" | "4" | "5" | "6" | "7" | "8" | "9" ;
print -> "` + "\n" + `" ;
`

func compileArithmetic(t *testing.T) *Compiled {
	t.Helper()
	data, err := Load(arithmeticGrammar, vm.NullVM{})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	compiled, err := Compile(data)
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}
	return compiled
}

func TestCompileBuildsDirectorMapForEachAlternative(t *testing.T) {
	compiled := compileArithmetic(t)
	restIdx, _ := compiled.Data.Lookup(NonTerminal, "rest")

	dmap := compiled.DirectorMap[restIdx]
	if len(dmap) == 0 {
		t.Fatalf("rest has no director map entries")
	}
	if _, ok := dmap[Char('+')]; !ok {
		t.Fatalf("rest director map missing '+' (the add alternative)")
	}
	if _, ok := dmap[Char('-')]; !ok {
		t.Fatalf("rest director map missing '-' (the sub alternative)")
	}
	// rest's epsilon alternative should be reachable via FOLLOW(rest),
	// which includes '\n' (print's only literal) since rest is in tail
	// position of expr, which is followed by print in start.
	if _, ok := dmap[Char('\n')]; !ok {
		t.Fatalf("rest director map missing '\\n' (FOLLOW-driven epsilon alternative)")
	}
}

func TestCompileNullableNonTerminalHasEmptyInFirst(t *testing.T) {
	compiled := compileArithmetic(t)
	restIdx, _ := compiled.Data.Lookup(NonTerminal, "rest")
	if !compiled.First[restIdx].HasEmpty() {
		t.Fatalf("FIRST(rest) does not contain Empty, but rest has an epsilon alternative")
	}
}

func TestCompileRejectsDirectorConflict(t *testing.T) {
	src := `
start -> a ;
a -> b | c ;
b -> "x" ;
c -> "x" ;
`
	data, err := Load(src, vm.NullVM{})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	_, err = Compile(data)
	conflict, ok := err.(*DirectorConflictError)
	if !ok {
		t.Fatalf("error = %#v; want DirectorConflictError", err)
	}
	if conflict.Row != 3 {
		t.Fatalf("DirectorConflictError.Row = %d; want 3 (where `a` is defined)", conflict.Row)
	}
}

func TestCompileRejectsLeftRecursion(t *testing.T) {
	src := `
start -> a ;
a -> a "x" | "y" ;
`
	data, err := Load(src, vm.NullVM{})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	_, err = Compile(data)
	lr, ok := err.(*LeftRecursionError)
	if !ok || lr.NonTerminal != "a" {
		t.Fatalf("error = %#v; want LeftRecursionError{a}", err)
	}
	if lr.Row != 3 {
		t.Fatalf("LeftRecursionError.Row = %d; want 3 (where `a` is defined)", lr.Row)
	}
}

func TestCompileFollowOfStartContainsTerminate(t *testing.T) {
	compiled := compileArithmetic(t)
	if !compiled.Follow[compiled.Data.Start].Has(Terminate) {
		t.Fatalf("FOLLOW(start) does not contain Terminate")
	}
}
