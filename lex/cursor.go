// Package lex provides the peekable rune cursor shared by the grammar
// loader and the script parser.
package lex

import "fmt"

// Error is the ParserError domain: failures detected while scanning
// characters, whether from grammar text or from a script being parsed.
type Error struct {
	Kind     ErrorKind
	Pos      int
	Row      int
	Got      rune
	Expected rune
	Op       string
}

type ErrorKind int

const (
	ErrUnexpectedChar ErrorKind = iota
	ErrEndOfInput
	ErrUnknownSpecialOp
)

func (e *Error) Error() string {
	switch e.Kind {
	case ErrUnexpectedChar:
		return fmt.Sprintf("unexpected character %q, expected %q", e.Got, e.Expected)
	case ErrEndOfInput:
		return "unexpected end of input"
	case ErrUnknownSpecialOp:
		return fmt.Sprintf("unknown special operator %q", e.Op)
	default:
		return "lex: internal error"
	}
}

func unexpectedChar(c *Cursor, got, expected rune) error {
	return &Error{Kind: ErrUnexpectedChar, Pos: c.pos, Row: c.row, Got: got, Expected: expected}
}

func endOfInput(c *Cursor) error {
	return &Error{Kind: ErrEndOfInput, Pos: c.pos, Row: c.row}
}

func unknownSpecialOp(c *Cursor, op string) error {
	return &Error{Kind: ErrUnknownSpecialOp, Pos: c.pos, Row: c.row, Op: op}
}

// Cursor is a peekable rune stream with a running position and two optional
// modal flags: a stop rune, past which peek/next report nothing, and an
// escape rune that toggles a one-shot escape state so the stop rune can
// appear literally when preceded by it.
type Cursor struct {
	runes []rune
	pos   int
	row   int

	hasStop   bool
	stopRune  rune
	hasEscape bool
	escRune   rune
	escaping  bool
}

// New creates a cursor with no stop/escape rune configured.
func New(src string) *Cursor {
	return &Cursor{runes: []rune(src)}
}

// Sub creates a bounded cursor over src that stops at stop (unless escaped
// by esc) without consuming the stop rune itself.
func Sub(src string, stop rune, esc rune) *Cursor {
	return &Cursor{
		runes:     []rune(src),
		hasStop:   true,
		stopRune:  stop,
		hasEscape: true,
		escRune:   esc,
	}
}

// Pos returns the current rune offset.
func (c *Cursor) Pos() int {
	return c.pos
}

// Row returns the current 1-based line number.
func (c *Cursor) Row() int {
	return c.row + 1
}

func (c *Cursor) atStop() bool {
	if !c.hasStop || c.pos >= len(c.runes) {
		return false
	}
	return !c.escaping && c.runes[c.pos] == c.stopRune
}

// Peek returns the next rune without consuming it. The second return value
// is false at the stop rune or end of input.
func (c *Cursor) Peek() (rune, bool) {
	if c.pos >= len(c.runes) || c.atStop() {
		return 0, false
	}
	return c.runes[c.pos], true
}

// Next consumes and returns the next rune.
func (c *Cursor) Next() (rune, bool) {
	r, ok := c.Peek()
	if !ok {
		return 0, false
	}
	c.pos++
	if r == '\n' {
		c.row++
	}
	if c.hasEscape {
		if c.escaping {
			c.escaping = false
		} else if r == c.escRune {
			c.escaping = true
		}
	}
	return r, true
}

// NextIf consumes and returns the next rune if it satisfies pred.
func (c *Cursor) NextIf(pred func(rune) bool) (rune, bool) {
	r, ok := c.Peek()
	if !ok || !pred(r) {
		return 0, false
	}
	return c.Next()
}

// Remaining returns the unconsumed text from the current position to the
// end of the input; any stop rune is ignored.
func (c *Cursor) Remaining() string {
	return string(c.runes[c.pos:])
}

// OpenBounded returns a new cursor sharing the same underlying text,
// positioned where c currently is, but configured to stop at stop (unless
// escaped by esc). The grammar loader uses it to capture a semantic action
// body as a sub-scan without copying the source text. Once the caller is
// done with the sub-cursor, call c.SyncFrom(sub) to advance c past the
// consumed text, then consume the stop rune on c itself.
func (c *Cursor) OpenBounded(stop, esc rune) *Cursor {
	return &Cursor{
		runes:     c.runes,
		pos:       c.pos,
		row:       c.row,
		hasStop:   true,
		stopRune:  stop,
		hasEscape: true,
		escRune:   esc,
	}
}

// SyncFrom advances c's position and row counters to match sub, which must
// have been created by c.OpenBounded.
func (c *Cursor) SyncFrom(sub *Cursor) {
	c.pos = sub.pos
	c.row = sub.row
}

// SkipWhitespace consumes runs of space, tab, and newline characters.
func (c *Cursor) SkipWhitespace() {
	for {
		if _, ok := c.NextIf(isSpace); !ok {
			return
		}
	}
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isAlnumOrUnderscore(r rune) bool {
	return isAlpha(r) || isDigit(r) || r == '_'
}

// ParseDigits consumes one or more decimal digits, returning the literal
// text consumed.
func (c *Cursor) ParseDigits() (string, error) {
	var b []rune
	for {
		r, ok := c.NextIf(isDigit)
		if !ok {
			break
		}
		b = append(b, r)
	}
	if len(b) == 0 {
		got, ok := c.Peek()
		if !ok {
			return "", endOfInput(c)
		}
		return "", unexpectedChar(c, got, '0')
	}
	return string(b), nil
}

// ParseUint parses an unsigned decimal integer.
func (c *Cursor) ParseUint() (uint64, error) {
	s, err := c.ParseDigits()
	if err != nil {
		return 0, err
	}
	var v uint64
	for _, r := range s {
		v = v*10 + uint64(r-'0')
	}
	return v, nil
}

// ParseInt parses a decimal integer with an optional leading '-'.
func (c *Cursor) ParseInt() (int64, error) {
	neg := false
	if _, ok := c.NextIf(func(r rune) bool { return r == '-' }); ok {
		neg = true
	}
	v, err := c.ParseUint()
	if err != nil {
		return 0, err
	}
	if neg {
		return -int64(v), nil
	}
	return int64(v), nil
}

// ParseSymbol consumes the expected rune r or fails with UnexpectedChar.
func (c *Cursor) ParseSymbol(r rune) error {
	got, ok := c.Peek()
	if !ok {
		return endOfInput(c)
	}
	if got != r {
		return unexpectedChar(c, got, r)
	}
	c.Next()
	return nil
}

// ParseIdentifier consumes one alphabetic rune followed by any number of
// alphanumeric/underscore runes.
func (c *Cursor) ParseIdentifier() (string, error) {
	first, ok := c.NextIf(isAlpha)
	if !ok {
		got, hasMore := c.Peek()
		if !hasMore {
			return "", endOfInput(c)
		}
		return "", unexpectedChar(c, got, 'a')
	}
	b := []rune{first}
	for {
		r, ok := c.NextIf(isAlnumOrUnderscore)
		if !ok {
			break
		}
		b = append(b, r)
	}
	return string(b), nil
}

// UnknownSpecialOp builds an UnknownSpecialOp error for the given operator
// name at the cursor's current position, for callers outside this package
// (the grammar loader recognizes special directives by name).
func UnknownSpecialOp(c *Cursor, op string) error {
	return unknownSpecialOp(c, op)
}

// EndOfInput builds an EndOfInput error at the cursor's current position.
func EndOfInput(c *Cursor) error {
	return endOfInput(c)
}

// UnexpectedChar builds an UnexpectedChar error at the cursor's current
// position for callers that already consumed the offending rune.
func UnexpectedChar(c *Cursor, got, expected rune) error {
	return unexpectedChar(c, got, expected)
}
