package vm

import (
	"testing"

	"github.com/hbrokkoli/steuer/lex"
	"github.com/hbrokkoli/steuer/support/tree"
)

func TestNullVMDrainsAndNoOps(t *testing.T) {
	cur := lex.New("whatever body")
	action, err := NullVM{}.MakeAction("anything", cur)
	if err != nil {
		t.Fatalf("MakeAction() error: %v", err)
	}
	if _, ok := cur.Peek(); ok {
		t.Fatalf("NullVM.MakeAction did not drain the cursor")
	}
	if err := action(nil, 0, NullVM{}.NewState()); err != nil {
		t.Fatalf("action() error: %v", err)
	}
}

func TestStackVMArithmetic(t *testing.T) {
	m := StackVM{}
	state := m.NewState().(*StackState)
	state.push(3)
	state.push(4)

	addAction, err := m.MakeAction("add", lex.New(""))
	if err != nil {
		t.Fatalf("MakeAction(add) error: %v", err)
	}
	if err := addAction(nil, 0, state); err != nil {
		t.Fatalf("add action error: %v", err)
	}
	top, ok := state.Top()
	if !ok || top != 7 {
		t.Fatalf("stack top after add = %v, %v; want 7, true", top, ok)
	}
}

func TestStackVMDigit(t *testing.T) {
	m := StackVM{}
	state := m.NewState().(*StackState)

	tr := tree.New()
	root, _ := tr.Root("digit")
	leaf, _ := tr.AddNode("\"5\"", root)
	tr.SetPayload(leaf, "5")

	action, err := m.MakeAction("digit", lex.New(""))
	if err != nil {
		t.Fatalf("MakeAction(digit) error: %v", err)
	}
	if err := action(tr, root, state); err != nil {
		t.Fatalf("digit action error: %v", err)
	}
	top, ok := state.Top()
	if !ok || top != 5 {
		t.Fatalf("stack top after digit = %v, %v; want 5, true", top, ok)
	}
}

func TestCountingVMCountsEveryAction(t *testing.T) {
	m := CountingVM{}
	state := m.NewState()
	action, err := m.MakeAction("whatever", lex.New(""))
	if err != nil {
		t.Fatalf("MakeAction() error: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := action(nil, 0, state); err != nil {
			t.Fatalf("action() error: %v", err)
		}
	}
	cs := state.(*CountingState)
	if cs.Count != 3 {
		t.Fatalf("Count = %d; want 3", cs.Count)
	}
}
