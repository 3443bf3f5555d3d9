// Package grammar holds the input data model the table generator consumes: a
// fixed, already-validated-on-demand description of terminals, nonterminals,
// and the productions that relate them. Nothing in this package builds item
// sets or tables; it only describes the grammar and answers structural
// questions about it (what LHS a production belongs to, whether an index is
// in range, what the augmented start production looks like).
package grammar

import (
	"fmt"
	"strings"

	"github.com/dekarrin/lalrgen/internal/lalrerrors"
)

// SymbolKind distinguishes the two kinds of grammar symbol that may appear on
// the right-hand side of a production.
type SymbolKind int

const (
	Terminal SymbolKind = iota
	NonTerminal
)

func (k SymbolKind) String() string {
	if k == Terminal {
		return "terminal"
	}
	return "nonterminal"
}

// Symbol is a tagged reference to either a terminal or a nonterminal, by
// index into the owning Grammar's terminal/nonterminal tables.
type Symbol struct {
	Kind  SymbolKind
	Index int
}

// Term builds a terminal Symbol.
func Term(i int) Symbol { return Symbol{Kind: Terminal, Index: i} }

// NonTerm builds a nonterminal Symbol.
func NonTerm(i int) Symbol { return Symbol{Kind: NonTerminal, Index: i} }

// IsTerminal returns whether the symbol refers to a terminal.
func (s Symbol) IsTerminal() bool { return s.Kind == Terminal }

// Equal reports whether two symbols refer to the same kind and index.
func (s Symbol) Equal(o Symbol) bool {
	return s.Kind == o.Kind && s.Index == o.Index
}

// Production is a single rewriting rule: LHS -> RHS, identified within its
// LHS's group of productions by Tag. Tag is required to be unique among
// productions sharing an LHS, but need not be unique grammar-wide; it exists
// purely so diagnostics and tests can name a production without spelling out
// its full RHS.
type Production struct {
	LHS int
	RHS []Symbol
	Tag string
}

// Grammar is an immutable, ordered description of a context-free grammar.
// Productions must be grouped by LHS (all productions for nonterminal n form
// a contiguous range); NewGrammar enforces this by construction.
//
// Nonterminal 0 is always the designated start symbol.
type Grammar struct {
	TerminalNames    []string
	NonTerminalNames []string

	// Productions holds every production, grouped by LHS in ascending order.
	Productions []Production

	// firstProd[n] is the index into Productions of the first production
	// with LHS == n; firstProd[n+1] (or len(Productions) for the last
	// nonterminal) bounds the range. Populated by NewGrammar.
	firstProd []int
}

// NewGrammar builds a Grammar from terminal names, nonterminal names, and a
// flat list of productions in any order; it groups them by LHS (keeping the
// caller's relative order within each group) and returns an error only if a
// production's LHS index is out of range.
//
// NewGrammar does NOT validate referential integrity (dangling symbol
// indices, nonterminals with no productions) - call Validate for that. It
// only establishes the LHS-grouping invariant the rest of the package relies
// on.
func NewGrammar(terminals, nonterminals []string, productions []Production) (Grammar, error) {
	g := Grammar{
		TerminalNames:    terminals,
		NonTerminalNames: nonterminals,
	}

	byLHS := make([][]Production, len(nonterminals))
	for _, p := range productions {
		if p.LHS < 0 || p.LHS >= len(nonterminals) {
			return Grammar{}, lalrerrors.Malformedf("production %q has LHS index %d out of range [0, %d)", p.Tag, p.LHS, len(nonterminals))
		}
		byLHS[p.LHS] = append(byLHS[p.LHS], p)
	}

	g.Productions = make([]Production, 0, len(productions))
	g.firstProd = make([]int, len(nonterminals)+1)
	for n := range nonterminals {
		g.firstProd[n] = len(g.Productions)
		g.Productions = append(g.Productions, byLHS[n]...)
	}
	g.firstProd[len(nonterminals)] = len(g.Productions)

	return g, nil
}

// NumTerminals returns the number of terminals T in the grammar. The
// lookahead index space is {0: eof, 1..T: terminals}.
func (g Grammar) NumTerminals() int { return len(g.TerminalNames) }

// NumNonTerminals returns the number of nonterminals N in the grammar.
func (g Grammar) NumNonTerminals() int { return len(g.NonTerminalNames) }

// StartSymbol is always nonterminal 0.
func (g Grammar) StartSymbol() int { return 0 }

// ProductionsOf returns the indices, into g.Productions, of every production
// with the given nonterminal as LHS.
func (g Grammar) ProductionsOf(nonterminal int) []int {
	lo, hi := g.firstProd[nonterminal], g.firstProd[nonterminal+1]
	idxs := make([]int, 0, hi-lo)
	for i := lo; i < hi; i++ {
		idxs = append(idxs, i)
	}
	return idxs
}

// TerminalName returns the declared name of terminal i, for diagnostics.
func (g Grammar) TerminalName(i int) string {
	if i < 0 || i >= len(g.TerminalNames) {
		return fmt.Sprintf("terminal#%d", i)
	}
	return g.TerminalNames[i]
}

// NonTerminalName returns the declared name of nonterminal i, for
// diagnostics.
func (g Grammar) NonTerminalName(i int) string {
	if i < 0 || i >= len(g.NonTerminalNames) {
		return fmt.Sprintf("nonterm#%d", i)
	}
	return g.NonTerminalNames[i]
}

// SymbolName renders a Symbol using the owning grammar's name tables.
func (g Grammar) SymbolName(s Symbol) string {
	if s.IsTerminal() {
		return g.TerminalName(s.Index)
	}
	return g.NonTerminalName(s.Index)
}

// ProductionString renders "LHS -> RHS" for diagnostics and test fixtures.
func (g Grammar) ProductionString(p Production) string {
	parts := make([]string, len(p.RHS))
	for i, sym := range p.RHS {
		parts[i] = g.SymbolName(sym)
	}
	rhs := strings.Join(parts, " ")
	if rhs == "" {
		rhs = "ε"
	}
	return fmt.Sprintf("%s -> %s", g.NonTerminalName(p.LHS), rhs)
}

// Validate checks the invariants from the data model: productions grouped by
// LHS (guaranteed by construction via NewGrammar, re-checked here defensively
// since a Grammar can also be built by hand), at least one production per
// referenced nonterminal, at least one production for the start symbol, and
// no symbol index pointing outside its table.
func (g Grammar) Validate() error {
	if len(g.NonTerminalNames) == 0 {
		return lalrerrors.Malformedf("grammar has no nonterminals")
	}
	if len(g.Productions) == 0 {
		return lalrerrors.Malformedf("grammar has no productions")
	}

	lastLHS := -1
	seen := make([]bool, len(g.NonTerminalNames))
	for i, p := range g.Productions {
		if p.LHS < lastLHS {
			return lalrerrors.Malformedf("productions are not grouped by LHS: production %d (%q) breaks the ordering", i, p.Tag)
		}
		lastLHS = p.LHS
		if p.LHS < 0 || p.LHS >= len(g.NonTerminalNames) {
			return lalrerrors.Malformedf("production %q has out-of-range LHS %d", p.Tag, p.LHS)
		}
		seen[p.LHS] = true

		for _, sym := range p.RHS {
			if sym.IsTerminal() {
				if sym.Index < 0 || sym.Index >= len(g.TerminalNames) {
					return lalrerrors.Malformedf("production %q references out-of-range terminal %d", p.Tag, sym.Index)
				}
			} else if sym.Index < 0 || sym.Index >= len(g.NonTerminalNames) {
				return lalrerrors.Malformedf("production %q references out-of-range nonterminal %d", p.Tag, sym.Index)
			}
		}
	}

	for n, ok := range seen {
		if !ok {
			return lalrerrors.Malformedf("nonterminal %q has no productions", g.NonTerminalNames[n])
		}
	}

	if !seen[g.StartSymbol()] {
		return lalrerrors.Malformedf("start nonterminal %q has no productions", g.NonTerminalNames[g.StartSymbol()])
	}

	return nil
}

// AugmentedStartTag is the Tag given to the synthetic start production added
// by Augment.
const AugmentedStartTag = "<augmented-start>"

// Augment returns a copy of g with a fresh nonterminal S' prepended as
// nonterminal 0 and a single production S' -> S added, where S is g's
// original start symbol. This is the augmented-start convention: acceptance
// is recorded as a reduce of this production under lookahead eof, never by
// comparing LHS identity to the original start symbol.
//
// The returned Grammar's StartSymbol() is the new S'; the caller can recover
// the original start symbol as the sole RHS element of its only production.
func (g Grammar) Augment() Grammar {
	augNonTerms := make([]string, 0, len(g.NonTerminalNames)+1)
	augNonTerms = append(augNonTerms, g.uniqueNonTerminalName("start'"))
	augNonTerms = append(augNonTerms, g.NonTerminalNames...)

	augProds := make([]Production, 0, len(g.Productions)+1)
	augProds = append(augProds, Production{
		LHS: 0,
		RHS: []Symbol{NonTerm(g.StartSymbol() + 1)},
		Tag: AugmentedStartTag,
	})
	for _, p := range g.Productions {
		shifted := Production{LHS: p.LHS + 1, Tag: p.Tag, RHS: make([]Symbol, len(p.RHS))}
		for i, sym := range p.RHS {
			shifted.RHS[i] = sym
			if !sym.IsTerminal() {
				shifted.RHS[i].Index = sym.Index + 1
			}
		}
		augProds = append(augProds, shifted)
	}

	aug := Grammar{
		TerminalNames:    g.TerminalNames,
		NonTerminalNames: augNonTerms,
		Productions:      augProds,
		firstProd:        make([]int, len(augNonTerms)+1),
	}
	for n := range augNonTerms {
		aug.firstProd[n] = len(aug.Productions)
	}
	// recompute ranges properly since Productions is already grouped (shift
	// preserves relative LHS order, and the new S' occupies slot 0)
	aug.firstProd[0] = 0
	lhs := 1
	for i, p := range aug.Productions[1:] {
		for lhs <= p.LHS {
			aug.firstProd[lhs] = i + 1
			lhs++
		}
	}
	for lhs <= len(augNonTerms) {
		aug.firstProd[lhs] = len(aug.Productions)
		lhs++
	}

	return aug
}

func (g Grammar) uniqueNonTerminalName(base string) string {
	name := base
	for {
		clash := false
		for _, n := range g.NonTerminalNames {
			if n == name {
				clash = true
				break
			}
		}
		if !clash {
			return name
		}
		name = name + "'"
	}
}
