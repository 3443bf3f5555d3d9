// Package item implements the LR(1) item and item-set abstractions the
// generator builds its state family from. An item's identity - used for
// hashing, deduplication, and LALR's core-equivalence test - is its
// (production, dot) pair alone; the lookahead attached to it is a mutable
// value keyed by that identity, never part of it. Keeping the two concerns
// apart (accidentally folding lookahead into the hash) is what makes LALR
// merging possible at all: two states with the same cores but different
// lookaheads must compare equal so they collapse into one family entry.
package item

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dekarrin/lalrgen/internal/lalr/grammar"
	"github.com/dekarrin/lalrgen/internal/lalr/lookahead"
)

// Core is an item stripped of its lookahead: a dotted production. Core values
// are plain comparable structs, so they can be used directly as map keys -
// no string hashing required, unlike a symbol-named grammar representation.
type Core struct {
	Prod int // index into grammar.Productions
	Dot  int // dot position, in [0, len(RHS)]
}

// Item is an LR(1) item: a Core plus the lookahead set attached to it as a
// value.
type Item struct {
	Core
	Lookahead lookahead.Set
}

// SymAtDot returns the symbol immediately after the dot and true, or the
// zero Symbol and false if the dot is at the end of the production.
func SymAtDot(g grammar.Grammar, c Core) (grammar.Symbol, bool) {
	rhs := g.Productions[c.Prod].RHS
	if c.Dot >= len(rhs) {
		return grammar.Symbol{}, false
	}
	return rhs[c.Dot], true
}

// NonTerminalAtDot returns the nonterminal index after the dot and true, or
// (0, false) if the dot is at the end or the symbol there is a terminal.
func NonTerminalAtDot(g grammar.Grammar, c Core) (int, bool) {
	sym, ok := SymAtDot(g, c)
	if !ok || sym.IsTerminal() {
		return 0, false
	}
	return sym.Index, true
}

// SymsAfterDot returns the RHS symbols strictly after the dot (what the
// CLOSURE algorithm calls β).
func SymsAfterDot(g grammar.Grammar, c Core) []grammar.Symbol {
	rhs := g.Productions[c.Prod].RHS
	if c.Dot >= len(rhs) {
		return nil
	}
	return rhs[c.Dot+1:]
}

// Shift returns the item with the dot advanced by one, or false if the dot
// is already at the end of the production.
func Shift(g grammar.Grammar, c Core) (Core, bool) {
	rhs := g.Productions[c.Prod].RHS
	if c.Dot >= len(rhs) {
		return Core{}, false
	}
	return Core{Prod: c.Prod, Dot: c.Dot + 1}, true
}

// AtEnd reports whether the dot has reached the end of the production (the
// item is a candidate for reduction or acceptance).
func AtEnd(g grammar.Grammar, c Core) bool {
	return c.Dot >= len(g.Productions[c.Prod].RHS)
}

// CoreString renders a core as "LHS -> α . β" for diagnostics.
func CoreString(g grammar.Grammar, c Core) string {
	rhs := g.Productions[c.Prod].RHS
	lhs := g.NonTerminalName(g.Productions[c.Prod].LHS)

	left := make([]string, c.Dot)
	for i := 0; i < c.Dot; i++ {
		left[i] = g.SymbolName(rhs[i])
	}
	right := make([]string, len(rhs)-c.Dot)
	for i := c.Dot; i < len(rhs); i++ {
		right[i-c.Dot] = g.SymbolName(rhs[i])
	}

	leftStr := strings.Join(left, " ")
	rightStr := strings.Join(right, " ")
	if leftStr != "" {
		leftStr += " "
	}
	if rightStr != "" {
		rightStr = " " + rightStr
	}
	return fmt.Sprintf("%s -> %s.%s", lhs, leftStr, rightStr)
}

// Set is an ordered, deduplicated collection of items: a mapping from core
// identity to lookahead value. Equality and hashing of a Set - the
// foundation of LALR merging - depend only on its set of cores, never on the
// lookaheads attached to them.
type Set struct {
	cores []Core
	la    []lookahead.Set
	index map[Core]int
}

// NewSet returns an empty item Set.
func NewSet() *Set {
	return &Set{index: map[Core]int{}}
}

// Insert adds item with lookahead la, or if its core is already present,
// merges la into the existing lookahead. Returns whether the set's lookahead
// for that core changed (false both when the core was brand new - there is
// nothing to "change" relative to, so the caller should check the returned
// isNew instead - and when the merge added no bits).
func (s *Set) Insert(core Core, la lookahead.Set) (changed bool, isNew bool) {
	if idx, ok := s.index[core]; ok {
		return s.la[idx].Merge(la), false
	}
	s.index[core] = len(s.cores)
	s.cores = append(s.cores, core)
	s.la = append(s.la, la)
	return false, true
}

// Len returns the number of distinct cores in the set.
func (s *Set) Len() int {
	return len(s.cores)
}

// At returns the core and lookahead at position i, in the set's current
// (post-Sort, if called) order.
func (s *Set) At(i int) (Core, lookahead.Set) {
	return s.cores[i], s.la[i]
}

// Lookahead returns the lookahead currently attached to core, or ok=false if
// core isn't in the set.
func (s *Set) Lookahead(core Core) (lookahead.Set, bool) {
	idx, ok := s.index[core]
	if !ok {
		return lookahead.Set{}, false
	}
	return s.la[idx], true
}

// Sort canonicalizes the set's iteration order by (production, dot). A
// canonical order is required for ItemSet equality to be an O(n) scan and for
// hashing/observable output (conflict reports, table emission) to be
// deterministic despite any non-deterministic map iteration upstream.
func (s *Set) Sort() {
	order := make([]int, len(s.cores))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		ca, cb := s.cores[order[a]], s.cores[order[b]]
		if ca.Prod != cb.Prod {
			return ca.Prod < cb.Prod
		}
		return ca.Dot < cb.Dot
	})

	newCores := make([]Core, len(s.cores))
	newLa := make([]lookahead.Set, len(s.la))
	for newPos, oldPos := range order {
		newCores[newPos] = s.cores[oldPos]
		newLa[newPos] = s.la[oldPos]
		s.index[s.cores[oldPos]] = newPos
	}
	s.cores = newCores
	s.la = newLa
}

// CoreKey returns a string uniquely determined by the set's cores (not its
// lookaheads), suitable for use as a ConvergentProcess dedup key when
// interning item sets into a family. Sort must have been called first so the
// key is independent of insertion order.
func (s *Set) CoreKey() string {
	var sb strings.Builder
	for i, c := range s.cores {
		if i > 0 {
			sb.WriteByte(';')
		}
		fmt.Fprintf(&sb, "%d.%d", c.Prod, c.Dot)
	}
	return sb.String()
}

// CoreEqual reports whether a and b have exactly the same set of cores,
// ignoring lookaheads and their current ordering (cores are looked up in the
// sets' indexes; neither set is sorted or mutated).
func CoreEqual(a, b *Set) bool {
	if a.Len() != b.Len() {
		return false
	}
	for c := range a.index {
		if _, ok := b.index[c]; !ok {
			return false
		}
	}
	return true
}

// MergeLookaheads bitwise-ORs other's lookaheads into s's, pairwise by core.
// Both sets must have identical cores (CoreEqual(s, other) == true); this is
// the LALR merge step. Returns whether any lookahead actually changed.
func (s *Set) MergeLookaheads(other *Set) bool {
	changed := false
	for i, c := range other.cores {
		idx, ok := s.index[c]
		if !ok {
			// shouldn't happen if CoreEqual held, but be defensive rather
			// than silently drop lookaheads
			s.index[c] = len(s.cores)
			s.cores = append(s.cores, c)
			s.la = append(s.la, other.la[i].Clone())
			changed = true
			continue
		}
		if s.la[idx].Merge(other.la[i]) {
			changed = true
		}
	}
	return changed
}

// Clone returns an independent deep copy of the set.
func (s *Set) Clone() *Set {
	cp := &Set{
		cores: make([]Core, len(s.cores)),
		la:    make([]lookahead.Set, len(s.la)),
		index: make(map[Core]int, len(s.index)),
	}
	copy(cp.cores, s.cores)
	for i, l := range s.la {
		cp.la[i] = l.Clone()
	}
	for k, v := range s.index {
		cp.index[k] = v
	}
	return cp
}
