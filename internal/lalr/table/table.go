// Package table implements the dense action/goto arrays a shift-reduce
// parser consumes. Nothing here builds the arrays from a grammar - that's
// the generator's job - this package only owns their storage, lookup, and
// conflict-detecting insertion.
package table

import (
	"fmt"

	"github.com/dekarrin/rosed"

	"github.com/dekarrin/lalrgen/internal/lalr/grammar"
	"github.com/dekarrin/lalrgen/internal/lalrerrors"
)

// ActionKind distinguishes the four things a parser can be told to do on a
// given (state, lookahead) cell.
type ActionKind int

const (
	Err ActionKind = iota
	Shift
	Reduce
	Accept
)

func (k ActionKind) String() string {
	switch k {
	case Shift:
		return "shift"
	case Reduce:
		return "reduce"
	case Accept:
		return "accept"
	default:
		return "err"
	}
}

// Action is one cell of the action table.
type Action struct {
	Kind ActionKind
	// State is the target state, valid when Kind == Shift.
	State int
	// Prod is the production reference, valid when Kind == Reduce or
	// Kind == Accept.
	Prod int
}

func (a Action) String() string {
	switch a.Kind {
	case Shift:
		return fmt.Sprintf("shift %d", a.State)
	case Reduce:
		return fmt.Sprintf("reduce #%d", a.Prod)
	case Accept:
		return fmt.Sprintf("accept #%d", a.Prod)
	default:
		return "err"
	}
}

// Equal reports whether two actions describe the same thing, used to
// distinguish a genuine conflict from an idempotent re-assignment of the
// same action to the same cell.
func (a Action) Equal(o Action) bool {
	if a.Kind != o.Kind {
		return false
	}
	switch a.Kind {
	case Shift:
		return a.State == o.State
	case Reduce, Accept:
		return a.Prod == o.Prod
	default:
		return true
	}
}

const noGoto = -1

// Table is the two-dimensional action/goto structure a Parser consumes.
// actions is states x (numTerminals+1), indexed by lookahead.Of(t) /
// lookahead.Eof; gotos is states x numNonTerminals, -1 meaning "no
// transition defined".
type Table struct {
	States          int
	numTerminals    int
	numNonTerminals int
	actions         [][]Action
	gotos           [][]int
}

// New allocates a Table for the given number of states, sized against a
// grammar's terminal/nonterminal counts. All actions initialize to Err and
// all gotos initialize to "none".
func New(states, numTerminals, numNonTerminals int) *Table {
	t := &Table{
		States:          states,
		numTerminals:    numTerminals,
		numNonTerminals: numNonTerminals,
		actions:         make([][]Action, states),
		gotos:           make([][]int, states),
	}
	for s := 0; s < states; s++ {
		t.actions[s] = make([]Action, numTerminals+1)
		t.gotos[s] = make([]int, numNonTerminals)
		for n := range t.gotos[s] {
			t.gotos[s][n] = noGoto
		}
	}
	return t
}

// GetAction returns the action for (state, lookahead); lookahead uses the
// lookahead package's index space (0 = eof, i+1 = terminal i).
func (t *Table) GetAction(state, lookahead int) Action {
	return t.actions[state][lookahead]
}

// GetGoto returns the successor state for (state, nonterminal), or ok=false
// if no transition is defined.
func (t *Table) GetGoto(state, nonterminal int) (int, bool) {
	s := t.gotos[state][nonterminal]
	if s == noGoto {
		return 0, false
	}
	return s, true
}

// PutAction assigns act to (state, lookahead). If the cell is already
// occupied by a different action, returns a *lalrerrors.Conflict describing
// both and leaves the table's existing entry in place: generation fails
// rather than silently picking a winner.
func (t *Table) PutAction(state, lookaheadIdx int, act Action, lookaheadName string) error {
	existing := t.actions[state][lookaheadIdx]
	if existing.Kind != Err && !existing.Equal(act) {
		return &lalrerrors.Conflict{
			State:     state,
			Lookahead: lookaheadName,
			Existing:  existing.String(),
			Incoming:  act.String(),
		}
	}
	t.actions[state][lookaheadIdx] = act
	return nil
}

// PutGoto assigns the goto transition for (state, nonterminal). Unlike
// actions, gotos never conflict under a correct LALR construction - each
// state has at most one successor per symbol by construction of GOTO - so
// this simply overwrites.
func (t *Table) PutGoto(state, nonterminal, target int) {
	t.gotos[state][nonterminal] = target
}

// Dump renders the table as a human-readable grid, state rows against
// lookahead/nonterminal columns, using g to resolve symbol names.
func (t *Table) Dump(g grammar.Grammar) string {
	headers := []string{"state", "|"}
	headers = append(headers, "$")
	for i := 0; i < t.numTerminals; i++ {
		headers = append(headers, g.TerminalName(i))
	}
	headers = append(headers, "|")
	for i := 0; i < t.numNonTerminals; i++ {
		headers = append(headers, g.NonTerminalName(i))
	}

	data := [][]string{headers}
	for s := 0; s < t.States; s++ {
		row := []string{fmt.Sprintf("%d", s), "|"}
		for la := 0; la <= t.numTerminals; la++ {
			act := t.actions[s][la]
			cell := ""
			switch act.Kind {
			case Shift:
				cell = fmt.Sprintf("s%d", act.State)
			case Reduce:
				cell = fmt.Sprintf("r%d", act.Prod)
			case Accept:
				cell = "acc"
			}
			row = append(row, cell)
		}
		row = append(row, "|")
		for n := 0; n < t.numNonTerminals; n++ {
			cell := ""
			if target, ok := t.GetGoto(s, n); ok {
				cell = fmt.Sprintf("%d", target)
			}
			row = append(row, cell)
		}
		data = append(data, row)
	}

	return rosed.
		Edit("").
		InsertTableOpts(0, data, 10, rosed.Options{
			TableHeaders:             true,
			NoTrailingLineSeparators: true,
		}).
		String()
}
