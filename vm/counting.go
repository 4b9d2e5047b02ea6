package vm

import (
	"github.com/hbrokkoli/steuer/lex"
	"github.com/hbrokkoli/steuer/support/tree"
)

// CountingState tracks how many actions have fired across one parse.
type CountingState struct {
	Count uint64
}

// CountingVM increments its counter on every action regardless of rule
// name; a smoke test that semantic actions fire the expected number of
// times for a given input.
type CountingVM struct{}

func (CountingVM) NewState() State {
	return &CountingState{}
}

func (CountingVM) MakeAction(ruleName string, cur *lex.Cursor) (Action, error) {
	drain(cur)
	return func(_ *tree.Tree, _ tree.NodeID, state State) error {
		state.(*CountingState).Count++
		return nil
	}, nil
}
