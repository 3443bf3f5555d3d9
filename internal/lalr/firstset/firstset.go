// Package firstset computes per-nonterminal FIRST sets over a Grammar,
// folding the "derives ε" question into the eof bit of a lookahead.Set rather
// than introducing a second boolean per nonterminal. This is a deliberate
// overload: callers must remember that when a lookahead.Set here has its eof
// bit set, it means "this can derive the empty string", not "this can be
// followed by end-of-input". Sets.First (as opposed to Sets.BaseFirst)
// exists specifically to resolve the overload back into real lookaheads
// before it escapes this package.
package firstset

import (
	"github.com/dekarrin/lalrgen/internal/lalr/grammar"
	"github.com/dekarrin/lalrgen/internal/lalr/lookahead"
)

// Sets holds FIRST(A) for every nonterminal A in a grammar.
type Sets struct {
	g     grammar.Grammar
	first []lookahead.Set
}

// Compute runs the fixpoint to completion: repeat until no set changes in a
// full pass, merging the contribution of every production's RHS into its
// LHS's FIRST set.
func Compute(g grammar.Grammar) Sets {
	fs := Sets{
		g:     g,
		first: make([]lookahead.Set, g.NumNonTerminals()),
	}
	for i := range fs.first {
		fs.first[i] = lookahead.New(g.NumTerminals())
	}

	changed := true
	for changed {
		changed = false
		for _, p := range g.Productions {
			contribution := fs.BaseFirst(p.RHS)
			if fs.first[p.LHS].Merge(contribution) {
				changed = true
			}
		}
	}

	return fs
}

// Of returns the raw FIRST set computed for nonterminal n, eof bit meaning
// ε-derivability. Most callers want BaseFirst or First instead; Of is mainly
// useful for tests and diagnostics that want to inspect the fixpoint's
// result directly.
func (fs Sets) Of(n int) lookahead.Set {
	return fs.first[n]
}

// BaseFirst computes FIRST(α) for a symbol sequence α, with the eof bit
// meaning "every symbol of α can derive ε":
//
//  1. Start with empty result.
//  2. For each symbol s in α:
//     - if s is a terminal t: insert t; return (α does not derive ε through
//     this path).
//     - if s is a nonterminal b: merge FIRST(b) into result; remove the eof
//     bit; if FIRST(b) did not contain eof, return.
//  3. If the loop completes (every symbol of α could derive ε): insert eof.
func (fs Sets) BaseFirst(alpha []grammar.Symbol) lookahead.Set {
	result := lookahead.New(fs.g.NumTerminals())

	for _, sym := range alpha {
		if sym.IsTerminal() {
			result.Insert(lookahead.Of(sym.Index))
			return result
		}

		bFirst := fs.first[sym.Index]
		hadEof := bFirst.Contains(lookahead.Eof)
		result.Merge(bFirst)
		result.Remove(lookahead.Eof)
		if !hadEof {
			return result
		}
	}

	result.Insert(lookahead.Eof)
	return result
}

// First computes the proper FIRST(α, la): BaseFirst(α) with the ε overload
// resolved by substituting the outer lookahead la wherever α could derive
// the empty string.
func (fs Sets) First(alpha []grammar.Symbol, la lookahead.Set) lookahead.Set {
	result := fs.BaseFirst(alpha)
	if result.Contains(lookahead.Eof) {
		result.Remove(lookahead.Eof)
		result.Merge(la)
	}
	return result
}
