// Package vm defines the pluggable virtual-machine contract that semantic
// actions close over, plus the three built-in VMs.
package vm

import (
	"github.com/hbrokkoli/steuer/lex"
	"github.com/hbrokkoli/steuer/support/tree"
)

// State is the run-time object threaded into every Action call. Each VM
// defines its own concrete state type.
type State interface{}

// Action is an opaque callable bound to a grammar rule's `{ ... }` body. It
// runs once per reduction of that rule, after all of the rule's children
// have been parsed.
type Action func(t *tree.Tree, node tree.NodeID, state State) error

// VM is the interface the parser is generic over.
type VM interface {
	// MakeAction is called once per rule while loading the grammar, with a
	// cursor bounded to the `{ ... }` body text (already positioned past
	// the opening brace). Implementations must fully consume cur before
	// returning, since the loader then expects the closing brace.
	MakeAction(ruleName string, cur *lex.Cursor) (Action, error)

	// NewState creates the state object for one Parse call.
	NewState() State
}
