// Package generator implements the central algorithm: CLOSURE, GOTO, and the
// construction of the LALR(1) family of item sets with re-closure on merge,
// resolved into a conflict-checked action/goto table. Everything it needs
// from the other lalr packages is read-only except for its own working
// state, which lives entirely in a single Generate call and is discarded
// once a Table (or an error) is produced.
package generator

import (
	"sort"

	"github.com/dekarrin/lalrgen/internal/lalr/convergent"
	"github.com/dekarrin/lalrgen/internal/lalr/firstset"
	"github.com/dekarrin/lalrgen/internal/lalr/grammar"
	"github.com/dekarrin/lalrgen/internal/lalr/item"
	"github.com/dekarrin/lalrgen/internal/lalr/lookahead"
	"github.com/dekarrin/lalrgen/internal/lalr/table"
	"github.com/dekarrin/lalrgen/internal/lalrerrors"
	"github.com/dekarrin/lalrgen/internal/util"
)

// closureProcess interns closure items by core identity while a single item
// set is being saturated.
type closureProcess = convergent.Process[closureItem, item.Core]

// familyProcess interns whole item sets by core-set identity while the LALR
// family is being constructed.
type familyProcess = convergent.Process[*item.Set, string]

func newProcess[T any, H comparable](key func(T) H) *convergent.Process[T, H] {
	return convergent.New(key)
}

// closureItem is the worklist payload used while saturating a single item
// set: a core plus the lookahead currently attached to it.
type closureItem struct {
	item.Core
	La lookahead.Set
}

// Result bundles the generated table together with the internal family of
// item sets it was derived from, so callers (tests, diagnostics) can inspect
// the construction without re-deriving it.
type Result struct {
	Table *table.Table

	// Augmented is the grammar actually used to build the family: the
	// caller's grammar with a synthetic start production S' -> S prepended.
	Augmented grammar.Grammar

	// Family holds the LALR(1) item sets in the order they were interned;
	// Family[i] is the item set for state i.
	Family []*item.Set

	// Transitions[s][X] is the successor state for symbol X in state s, in
	// terms of the augmented grammar's symbol indices (nonterminal indices
	// are offset by one from the original grammar's).
	Transitions []map[grammar.Symbol]int
}

// Generate builds the LALR(1) action/goto table for g. g is validated first
// (GrammarMalformed on failure); any action-table cell that would receive two
// different actions fails the whole generation with a *lalrerrors.Conflict
// naming the state, the lookahead, and the two actions. Generation never
// picks a winner on its own - a grammar that isn't LALR(1) is a malformed
// input, not a case to paper over.
func Generate(g grammar.Grammar) (*Result, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	aug := g.Augment()
	fs := firstset.Compute(aug)

	startProds := aug.ProductionsOf(aug.StartSymbol())
	if len(startProds) != 1 {
		return nil, lalrerrors.Malformedf("augmented start symbol must have exactly one production, got %d", len(startProds))
	}

	initLa := lookahead.New(aug.NumTerminals())
	initLa.Insert(lookahead.Eof)
	seed := item.NewSet()
	seed.Insert(item.Core{Prod: startProds[0], Dot: 0}, initLa)

	i0 := closure(aug, fs, seed)

	family, transitions := buildFamily(aug, fs, i0)

	tbl, err := emit(aug, g, family, transitions)
	if err != nil {
		return nil, err
	}

	return &Result{
		Table:       tbl,
		Augmented:   aug,
		Family:      family,
		Transitions: transitions,
	}, nil
}

// closure saturates seed into a complete, sorted item set: for every item
// (A -> alpha . B beta, la) with B a nonterminal, every production B -> gamma
// gets a new item (B -> . gamma, FIRST(beta, la)) added, merging lookaheads
// into any core that's already present and reprocessing it so the widened
// lookahead propagates further. This is driven by a convergent.Process over
// item cores - see that package for why the requeue-on-change shape
// terminates.
func closure(g grammar.Grammar, fs firstset.Sets, seed *item.Set) *item.Set {
	proc := newClosureProcess()

	for i := 0; i < seed.Len(); i++ {
		core, la := seed.At(i)
		proc.Enqueue(closureItem{Core: core, La: la.Clone()})
	}

	proc.Run(func(idx int) {
		ci := proc.Items()[idx]

		nt, ok := item.NonTerminalAtDot(g, ci.Core)
		if !ok {
			return
		}

		beta := item.SymsAfterDot(g, ci.Core)
		chi := fs.First(beta, ci.La)

		for _, prodIdx := range g.ProductionsOf(nt) {
			newCore := item.Core{Prod: prodIdx, Dot: 0}
			newIdx, found := proc.Enqueue(closureItem{Core: newCore, La: chi.Clone()})
			if found {
				existing := proc.Items()[newIdx]
				if existing.La.Merge(chi) {
					proc.Set(newIdx, existing)
					proc.Requeue(newIdx)
				}
			}
		}
	})

	result := item.NewSet()
	for _, ci := range proc.Items() {
		result.Insert(ci.Core, ci.La)
	}
	result.Sort()
	return result
}

// gotoSet computes GOTO(i, X): every item in i with the dot immediately
// before X, shifted one position, then closed.
func gotoSet(g grammar.Grammar, fs firstset.Sets, i *item.Set, x grammar.Symbol) *item.Set {
	shifted := item.NewSet()
	for k := 0; k < i.Len(); k++ {
		core, la := i.At(k)
		sym, ok := item.SymAtDot(g, core)
		if !ok || !sym.Equal(x) {
			continue
		}
		newCore, _ := item.Shift(g, core)
		shifted.Insert(newCore, la.Clone())
	}
	if shifted.Len() == 0 {
		return shifted
	}
	return closure(g, fs, shifted)
}

// buildFamily runs the second convergent.Process, this one keyed by item-set
// core identity rather than single-item core identity, constructing the
// family of LALR(1) states. Two item sets that share the same cores are
// merged into a single family entry whose lookaheads are the union of both;
// because a merge can widen the lookaheads on items whose closure hasn't
// been fully propagated to *their* successors yet, a merged state is
// requeued so CLOSURE and GOTO get reapplied with the wider lookaheads. This
// re-closure-on-merge is what makes the construction LALR rather than a
// family of independent LR(0) states with unioned-after-the-fact
// lookaheads.
func buildFamily(g grammar.Grammar, fs firstset.Sets, i0 *item.Set) ([]*item.Set, []map[grammar.Symbol]int) {
	proc := newFamilyProcess()
	proc.Enqueue(i0)

	var transitions []map[grammar.Symbol]int
	ensureTransitionRow := func(idx int) {
		for len(transitions) <= idx {
			transitions = append(transitions, map[grammar.Symbol]int{})
		}
	}

	proc.Run(func(stateIdx int) {
		ensureTransitionRow(stateIdx)
		j := proc.Items()[stateIdx]

		for _, x := range distinctSymbolsAfterDot(g, j) {
			succ := gotoSet(g, fs, j, x)
			if succ.Len() == 0 {
				continue
			}

			targetIdx, found := proc.Enqueue(succ)
			if found {
				existing := proc.Items()[targetIdx]
				if existing.MergeLookaheads(succ) {
					proc.Requeue(targetIdx)
				}
			}
			ensureTransitionRow(stateIdx)
			transitions[stateIdx][x] = targetIdx
		}
	})

	return proc.Items(), transitions
}

// distinctSymbolsAfterDot returns, in canonical (kind, index) order, every
// symbol that appears immediately after a dot somewhere in j. The canonical
// order only affects the order GOTO is invoked in, not its result, but
// keeping it deterministic makes the family construction's trace
// reproducible.
func distinctSymbolsAfterDot(g grammar.Grammar, j *item.Set) []grammar.Symbol {
	seen := util.NewKeySet[grammar.Symbol]()
	for i := 0; i < j.Len(); i++ {
		core, _ := j.At(i)
		if sym, ok := item.SymAtDot(g, core); ok {
			seen.Add(sym)
		}
	}

	syms := seen.Elements()
	sort.Slice(syms, func(a, b int) bool {
		if syms[a].Kind != syms[b].Kind {
			return syms[a].Kind < syms[b].Kind
		}
		return syms[a].Index < syms[b].Index
	})
	return syms
}

// emit resolves the stabilized family into a dense action/goto table over
// orig's (unaugmented) symbol space. Production references in the emitted
// table are translated back to orig's production indices: aug.Productions[j]
// for j>=1 corresponds to orig.Productions[j-1], since Augment appends the
// caller's productions immediately after the single synthetic one.
func emit(aug, orig grammar.Grammar, family []*item.Set, transitions []map[grammar.Symbol]int) (*table.Table, error) {
	numT := orig.NumTerminals()
	numN := orig.NumNonTerminals()
	tbl := table.New(len(family), numT, numN)

	for s, j := range family {
		j.Sort() // canonical order for deterministic conflict reporting

		for i := 0; i < j.Len(); i++ {
			core, la := j.At(i)

			if item.AtEnd(aug, core) {
				prod := aug.Productions[core.Prod]
				if prod.LHS == aug.StartSymbol() {
					if err := tbl.PutAction(s, lookahead.Eof, table.Action{Kind: table.Accept, Prod: -1}, "$"); err != nil {
						return nil, err
					}
					continue
				}

				origProd := core.Prod - 1
				var emitErr error
				la.Iterate(func(laIdx int) {
					if emitErr != nil {
						return
					}
					name := lookaheadName(orig, laIdx)
					emitErr = tbl.PutAction(s, laIdx, table.Action{Kind: table.Reduce, Prod: origProd}, name)
				})
				if emitErr != nil {
					return nil, emitErr
				}
				continue
			}

			sym, _ := item.SymAtDot(aug, core)
			target, ok := transitions[s][sym]
			if !ok {
				continue
			}

			if sym.IsTerminal() {
				name := orig.TerminalName(sym.Index)
				if err := tbl.PutAction(s, lookahead.Of(sym.Index), table.Action{Kind: table.Shift, State: target}, name); err != nil {
					return nil, err
				}
			} else {
				tbl.PutGoto(s, sym.Index-1, target)
			}
		}
	}

	return tbl, nil
}

func lookaheadName(g grammar.Grammar, laIdx int) string {
	if laIdx == lookahead.Eof {
		return "$"
	}
	return g.TerminalName(laIdx - 1)
}

func newClosureProcess() *closureProcess {
	return newProcess(func(ci closureItem) item.Core { return ci.Core })
}

func newFamilyProcess() *familyProcess {
	return newProcess(func(s *item.Set) string {
		s.Sort()
		return s.CoreKey()
	})
}
