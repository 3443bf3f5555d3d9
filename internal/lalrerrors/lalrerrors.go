// Package lalrerrors holds the error types surfaced at the boundary of the
// table generator and the parser driver. None of them are retried or
// swallowed internally; a caller either gets a usable ParseTable or one of
// these describing why not.
package lalrerrors

import (
	"fmt"

	"github.com/dekarrin/lalrgen/internal/util"
)

// GrammarMalformed is returned from generator construction when the input
// Grammar fails validation: a missing start production, an empty production
// list for some referenced nonterminal, or a symbol index that doesn't
// resolve against the grammar's terminal/nonterminal tables.
type GrammarMalformed struct {
	Reason string
}

func (e *GrammarMalformed) Error() string {
	return fmt.Sprintf("grammar malformed: %s", e.Reason)
}

// Malformedf builds a GrammarMalformed from a format string, mirroring the
// fmt.Errorf convention used throughout the package.
func Malformedf(format string, a ...interface{}) error {
	return &GrammarMalformed{Reason: fmt.Sprintf(format, a...)}
}

// Conflict is returned during table emission when two actions would occupy
// the same (state, lookahead) cell. It carries enough context to name the
// state, the lookahead symbol, and the two competing actions so a caller can
// render a useful diagnostic without re-deriving the table.
type Conflict struct {
	State     int
	Lookahead string
	Existing  string
	Incoming  string
}

func (e *Conflict) Error() string {
	return fmt.Sprintf("conflict in state %d on lookahead %q: %s vs %s", e.State, e.Lookahead, e.Existing, e.Incoming)
}

// ParseError is returned by the Parser driver when no action exists for the
// (state, lookahead) pair currently on top of the stack. The parser's stack
// remains inspectable after this error is returned; Feed does not mutate
// state once it has decided to report an error.
type ParseError struct {
	State     int
	Lookahead string
	Expected  []string
}

func (e *ParseError) Error() string {
	switch len(e.Expected) {
	case 0:
		return fmt.Sprintf("unexpected input %q in state %d", e.Lookahead, e.State)
	case 1:
		return fmt.Sprintf("unexpected input %q in state %d (expected %s %s)", e.Lookahead, e.State, util.ArticleFor(e.Expected[0], false), e.Expected[0])
	default:
		return fmt.Sprintf("unexpected input %q in state %d (expected %s)", e.Lookahead, e.State, util.MakeTextList(e.Expected))
	}
}
