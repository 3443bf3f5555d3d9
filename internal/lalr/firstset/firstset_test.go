package firstset

import (
	"testing"

	"github.com/dekarrin/lalrgen/internal/lalr/grammar"
	"github.com/dekarrin/lalrgen/internal/lalr/lookahead"
	"github.com/stretchr/testify/assert"
)

// Terminals: 0=id, 1=plus, 2=lparen, 3=rparen
// Nonterminals: 0=S (start), 1=E, 2=T
//
// S -> E
// E -> E plus T | T
// T -> id | lparen E rparen
func exprGrammar(t *testing.T) grammar.Grammar {
	const (
		id = iota
		plus
		lparen
		rparen
	)
	const (
		S = iota
		E
		T
	)
	g, err := grammar.NewGrammar(
		[]string{"id", "plus", "lparen", "rparen"},
		[]string{"S", "E", "T"},
		[]grammar.Production{
			{LHS: S, Tag: "s-e", RHS: []grammar.Symbol{grammar.NonTerm(E)}},
			{LHS: E, Tag: "e-plus", RHS: []grammar.Symbol{grammar.NonTerm(E), grammar.Term(plus), grammar.NonTerm(T)}},
			{LHS: E, Tag: "e-t", RHS: []grammar.Symbol{grammar.NonTerm(T)}},
			{LHS: T, Tag: "t-id", RHS: []grammar.Symbol{grammar.Term(id)}},
			{LHS: T, Tag: "t-paren", RHS: []grammar.Symbol{grammar.Term(lparen), grammar.NonTerm(E), grammar.Term(rparen)}},
		},
	)
	assert.NoError(t, err)
	return g
}

func Test_Compute_Soundness(t *testing.T) {
	g := exprGrammar(t)
	fs := Compute(g)

	const (
		id = iota
		plus
		lparen
		rparen
	)
	const (
		S = iota
		E
		T
	)

	for _, n := range []int{S, E, T} {
		first := fs.Of(n)
		assert.True(t, first.Contains(lookahead.Of(id)), "FIRST(%d) should contain id", n)
		assert.True(t, first.Contains(lookahead.Of(lparen)), "FIRST(%d) should contain lparen", n)
		assert.False(t, first.Contains(lookahead.Of(plus)), "FIRST(%d) should not contain plus", n)
		assert.False(t, first.Contains(lookahead.Of(rparen)), "FIRST(%d) should not contain rparen", n)
		assert.False(t, first.Contains(lookahead.Eof), "this grammar has no epsilon productions")
	}
}

func Test_BaseFirst_Epsilon(t *testing.T) {
	// X -> ε | a ; S -> X b
	g, err := grammar.NewGrammar(
		[]string{"a", "b"},
		[]string{"S", "X"},
		[]grammar.Production{
			{LHS: 0, Tag: "s", RHS: []grammar.Symbol{grammar.NonTerm(1), grammar.Term(1)}},
			{LHS: 1, Tag: "x-eps", RHS: nil},
			{LHS: 1, Tag: "x-a", RHS: []grammar.Symbol{grammar.Term(0)}},
		},
	)
	assert.NoError(t, err)

	fs := Compute(g)
	xFirst := fs.Of(1)
	assert.True(t, xFirst.Contains(lookahead.Eof))
	assert.True(t, xFirst.Contains(lookahead.Of(0)))

	// FIRST(S) = FIRST(X b): X can derive eps so b's first joins in, and X's
	// real firsts (a) join in too; eof should NOT appear since the sequence
	// doesn't end in an all-epsilon tail beyond b, which is a terminal.
	sFirst := fs.Of(0)
	assert.True(t, sFirst.Contains(lookahead.Of(0))) // a
	assert.True(t, sFirst.Contains(lookahead.Of(1))) // b
	assert.False(t, sFirst.Contains(lookahead.Eof))
}

func Test_First_SubstitutesOuterLookahead(t *testing.T) {
	g, err := grammar.NewGrammar(
		[]string{"a"},
		[]string{"S", "X"},
		[]grammar.Production{
			{LHS: 0, Tag: "s", RHS: []grammar.Symbol{grammar.NonTerm(1)}},
			{LHS: 1, Tag: "x-eps", RHS: nil},
		},
	)
	assert.NoError(t, err)
	fs := Compute(g)

	outer := lookahead.New(g.NumTerminals())
	outer.Insert(lookahead.Eof)

	result := fs.First([]grammar.Symbol{grammar.NonTerm(1)}, outer)
	assert.True(t, result.Contains(lookahead.Eof))
	assert.False(t, result.Contains(lookahead.Of(0)))
}
