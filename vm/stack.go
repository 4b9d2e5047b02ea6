package vm

import (
	"fmt"
	"strconv"

	"github.com/hbrokkoli/steuer/lex"
	"github.com/hbrokkoli/steuer/support/tree"
)

// StackState is the run-time state for StackVM: a stack of unsigned
// integers that built-in actions push to and pop from.
type StackState struct {
	Stack []uint64
}

// Top returns the value on top of the stack without popping it.
func (s *StackState) Top() (uint64, bool) {
	if len(s.Stack) == 0 {
		return 0, false
	}
	return s.Stack[len(s.Stack)-1], true
}

func (s *StackState) push(v uint64) {
	s.Stack = append(s.Stack, v)
}

func (s *StackState) pop() (uint64, error) {
	if len(s.Stack) == 0 {
		return 0, fmt.Errorf("stack vm: pop from empty stack")
	}
	v := s.Stack[len(s.Stack)-1]
	s.Stack = s.Stack[:len(s.Stack)-1]
	return v, nil
}

// StackVM dispatches actions by rule name to a handful of built-in
// arithmetic routines operating on a stack of unsigned integers.
type StackVM struct{}

func (StackVM) NewState() State {
	return &StackState{}
}

func (StackVM) MakeAction(ruleName string, cur *lex.Cursor) (Action, error) {
	drain(cur)

	switch ruleName {
	case "add":
		return func(_ *tree.Tree, _ tree.NodeID, state State) error {
			s := state.(*StackState)
			b, err := s.pop()
			if err != nil {
				return err
			}
			a, err := s.pop()
			if err != nil {
				return err
			}
			s.push(a + b)
			return nil
		}, nil

	case "sub":
		return func(_ *tree.Tree, _ tree.NodeID, state State) error {
			s := state.(*StackState)
			b, err := s.pop()
			if err != nil {
				return err
			}
			a, err := s.pop()
			if err != nil {
				return err
			}
			s.push(a - b)
			return nil
		}, nil

	case "digit":
		return func(t *tree.Tree, node tree.NodeID, state State) error {
			s := state.(*StackState)
			first, err := t.NthChild(node, 0)
			if err != nil {
				return err
			}
			n, err := t.Node(first)
			if err != nil {
				return err
			}
			v, err := strconv.ParseUint(n.Payload, 10, 64)
			if err != nil {
				return fmt.Errorf("stack vm: digit: %w", err)
			}
			s.push(v)
			return nil
		}, nil

	case "number_s_":
		return func(_ *tree.Tree, _ tree.NodeID, state State) error {
			s := state.(*StackState)
			digit, err := s.pop()
			if err != nil {
				return err
			}
			prev, err := s.pop()
			if err != nil {
				return err
			}
			s.push(prev*10 + digit)
			return nil
		}, nil

	case "print":
		return func(_ *tree.Tree, _ tree.NodeID, state State) error {
			s := state.(*StackState)
			v, err := s.pop()
			if err != nil {
				return err
			}
			fmt.Println(v)
			return nil
		}, nil

	default:
		return func(_ *tree.Tree, _ tree.NodeID, _ State) error {
			return nil
		}, nil
	}
}
