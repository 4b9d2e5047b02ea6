package main

import (
	errpkg "github.com/hbrokkoli/steuer/error"
	"github.com/hbrokkoli/steuer/grammar"
	"github.com/hbrokkoli/steuer/lex"
	"github.com/hbrokkoli/steuer/parse"
)

// rowOf extracts the source row from whichever error domain err belongs
// to, or 0 if it doesn't carry one.
func rowOf(err error) int {
	switch e := err.(type) {
	case *lex.Error:
		return e.Row
	case *grammar.UnexpectedElementError:
		return e.Row
	case *grammar.EmptyLiteralError:
		return e.Row
	case *grammar.UndefinedNonTerminalError:
		return e.Row
	case *grammar.LeftRecursionError:
		return e.Row
	case *grammar.DirectorConflictError:
		return e.Row
	case *parse.NoProductionError:
		return e.Row
	case *parse.TrailingInputError:
		return e.Row
	default:
		return 0
	}
}

// reportError wraps err in the shared SpecError presentation so every
// subcommand prints errors the same way, with a source row when one is
// available.
func reportError(err error) error {
	if err == nil {
		return nil
	}
	return &errpkg.SpecError{Cause: err, Row: rowOf(err)}
}
