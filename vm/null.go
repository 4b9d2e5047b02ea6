package vm

import (
	"github.com/hbrokkoli/steuer/lex"
	"github.com/hbrokkoli/steuer/support/tree"
)

// counterState is the dummy state shared by the null VM; it exists purely
// so NullVM.NewState has something concrete to hand back.
type counterState struct {
	count uint
}

// NullVM performs no semantic actions; every rule's action, if present, is
// a no-op. Useful for exercising the parser without an interpreter.
type NullVM struct{}

func (NullVM) MakeAction(ruleName string, cur *lex.Cursor) (Action, error) {
	drain(cur)
	return func(_ *tree.Tree, _ tree.NodeID, _ State) error {
		return nil
	}, nil
}

func (NullVM) NewState() State {
	return &counterState{}
}

func drain(cur *lex.Cursor) {
	for {
		if _, ok := cur.Next(); !ok {
			return
		}
	}
}
