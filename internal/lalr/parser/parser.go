// Package parser implements the shift-reduce driver that consumes a
// generated table: a stack of state indices and a loop that looks up
// actions[top][lookahead] until it shifts, reduces, accepts, or fails. The
// driver carries no grammar-specific knowledge of its own - everything it
// does is dictated by the table and grammar it was initialized with.
package parser

import (
	"fmt"

	"github.com/dekarrin/lalrgen/internal/lalr/grammar"
	"github.com/dekarrin/lalrgen/internal/lalr/lookahead"
	"github.com/dekarrin/lalrgen/internal/lalr/table"
	"github.com/dekarrin/lalrgen/internal/lalrerrors"
	"github.com/dekarrin/lalrgen/internal/util"
)

// StepKind distinguishes the three things Feed can report happened; a failed
// step is reported as an error instead.
type StepKind int

const (
	Shift StepKind = iota
	Reduce
	Accept
)

func (k StepKind) String() string {
	switch k {
	case Shift:
		return "shift"
	case Reduce:
		return "reduce"
	case Accept:
		return "accept"
	default:
		return "?"
	}
}

// Step is what Feed returns on success: what the driver did, and (for
// Reduce/Accept) which production it acted on.
type Step struct {
	Kind StepKind
	Prod int // valid when Kind == Reduce or Kind == Accept
}

func (s Step) String() string {
	if s.Kind == Reduce || s.Kind == Accept {
		return fmt.Sprintf("%s #%d", s.Kind, s.Prod)
	}
	return s.Kind.String()
}

// Parser drives a ParseTable over a stream of lookahead terminals fed to it
// one at a time by the caller. It holds no input buffer of its own; a caller
// that gets a Reduce step back must call Feed again with the same terminal,
// since a reduce never consumes the input token that triggered it.
type Parser struct {
	tbl   *table.Table
	g     grammar.Grammar
	stack util.Stack[int]
	trace func(s string)
}

// Init returns a Parser over tbl with its stack initialized to [0]. g
// supplies the RHS length and LHS of the production named by a reduce
// action, and the human-readable symbol names in trace output and ParseError
// messages; every action and goto is looked up in tbl.
func Init(tbl *table.Table, g grammar.Grammar) *Parser {
	p := &Parser{tbl: tbl, g: g}
	p.stack.Push(0)
	return p
}

// RegisterTraceListener installs fn to be called with a description of every
// internal step the driver takes (state peeks/pushes/pops, the action
// chosen). Passing nil disables tracing. Intended for debugging a grammar
// interactively, not for production use.
func (p *Parser) RegisterTraceListener(fn func(s string)) {
	p.trace = fn
}

func (p *Parser) notifyTrace(format string, args ...interface{}) {
	if p.trace != nil {
		p.trace(fmt.Sprintf(format, args...))
	}
}

// Stack returns the parser's current state stack, top last. The returned
// slice is a snapshot; mutating it has no effect on the parser.
func (p *Parser) Stack() []int {
	cp := make([]int, len(p.stack.Of))
	copy(cp, p.stack.Of)
	return cp
}

// Feed advances the driver by one lookahead index (lookahead.Eof or
// lookahead.Of(t)). A Reduce step does not consume the token: the caller
// must call Feed again with the same lookahead until it gets back a Shift,
// an Accept, or an error, per the driver algorithm's "input token has not
// been consumed" rule for reduces. An Accept ends the parse.
func (p *Parser) Feed(la int) (Step, error) {
	s := p.stack.Peek()
	p.notifyTrace("state peek: %d", s)

	act := p.tbl.GetAction(s, la)
	p.notifyTrace("action: %s", act)

	switch act.Kind {
	case table.Shift:
		p.stack.Push(act.State)
		p.notifyTrace("state push: %d", act.State)
		return Step{Kind: Shift}, nil

	case table.Reduce:
		prod := p.g.Productions[act.Prod]
		for i := 0; i < len(prod.RHS); i++ {
			popped := p.stack.Pop()
			p.notifyTrace("state pop: %d", popped)
		}
		top := p.stack.Peek()
		target, ok := p.tbl.GetGoto(top, prod.LHS)
		if !ok {
			return Step{}, lalrerrors.Malformedf("no goto defined from state %d on nonterminal %q after reducing production %d", top, p.g.NonTerminalName(prod.LHS), act.Prod)
		}
		p.stack.Push(target)
		p.notifyTrace("state push: %d", target)
		return Step{Kind: Reduce, Prod: act.Prod}, nil

	case table.Accept:
		return Step{Kind: Accept, Prod: act.Prod}, nil

	default:
		return Step{}, p.parseError(s, la)
	}
}

func (p *Parser) parseError(state, la int) error {
	name := "$"
	if la != lookahead.Eof {
		name = p.g.TerminalName(la - 1)
	}

	var expected []string
	for t := 0; t < p.g.NumTerminals(); t++ {
		if p.tbl.GetAction(state, lookahead.Of(t)).Kind != table.Err {
			expected = append(expected, p.g.TerminalName(t))
		}
	}
	if p.tbl.GetAction(state, lookahead.Eof).Kind != table.Err {
		expected = append(expected, "$")
	}

	return &lalrerrors.ParseError{State: state, Lookahead: name, Expected: expected}
}
