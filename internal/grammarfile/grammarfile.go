// Package grammarfile loads a grammar.Grammar from a TOML-based source file:
// terminal and nonterminal name tables plus a list of productions naming
// their symbols by the declared names rather than by index, so grammar
// sources stay readable without the author having to track index numbers by
// hand.
package grammarfile

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/dekarrin/lalrgen/internal/lalr/grammar"
	"github.com/dekarrin/lalrgen/internal/lalrerrors"
	"github.com/dekarrin/lalrgen/internal/util"
)

// fileFormat mirrors the on-disk TOML shape directly.
type fileFormat struct {
	Terminals    []string           `toml:"terminals"`
	NonTerminals []string           `toml:"nonterminals"`
	Productions  []productionRecord `toml:"productions"`
}

type productionRecord struct {
	LHS string   `toml:"lhs"`
	Tag string   `toml:"tag"`
	RHS []string `toml:"rhs"`
}

// Load reads and parses the grammar source at path.
func Load(path string) (grammar.Grammar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return grammar.Grammar{}, err
	}
	return Parse(data)
}

// Parse builds a Grammar from the raw bytes of a grammar source file. The
// first-declared nonterminal is always the grammar's start symbol, per
// Grammar's own "nonterminal 0 is the start symbol" convention.
func Parse(data []byte) (grammar.Grammar, error) {
	var raw fileFormat
	if err := toml.Unmarshal(data, &raw); err != nil {
		return grammar.Grammar{}, lalrerrors.Malformedf("parsing grammar source: %s", err)
	}
	return build(raw)
}

func build(raw fileFormat) (grammar.Grammar, error) {
	if dupes := duplicateNames(raw.Terminals); !dupes.Empty() {
		return grammar.Grammar{}, lalrerrors.Malformedf("terminal(s) declared more than once: %s", dupes.StringOrdered())
	}
	if dupes := duplicateNames(raw.NonTerminals); !dupes.Empty() {
		return grammar.Grammar{}, lalrerrors.Malformedf("nonterminal(s) declared more than once: %s", dupes.StringOrdered())
	}

	termIdx := make(map[string]int, len(raw.Terminals))
	for i, n := range raw.Terminals {
		termIdx[n] = i
	}
	ntIdx := make(map[string]int, len(raw.NonTerminals))
	for i, n := range raw.NonTerminals {
		ntIdx[n] = i
	}

	resolve := func(name string) (grammar.Symbol, error) {
		_, isNT := ntIdx[name]
		_, isT := termIdx[name]
		switch {
		case isNT && isT:
			return grammar.Symbol{}, lalrerrors.Malformedf("symbol %q is declared as both a terminal and a nonterminal", name)
		case isNT:
			return grammar.NonTerm(ntIdx[name]), nil
		case isT:
			return grammar.Term(termIdx[name]), nil
		default:
			return grammar.Symbol{}, lalrerrors.Malformedf("undeclared symbol %q referenced in production", name)
		}
	}

	prods := make([]grammar.Production, 0, len(raw.Productions))
	for _, pr := range raw.Productions {
		lhsIdx, ok := ntIdx[pr.LHS]
		if !ok {
			return grammar.Grammar{}, lalrerrors.Malformedf("production %q has undeclared lhs %q", pr.Tag, pr.LHS)
		}

		rhs := make([]grammar.Symbol, len(pr.RHS))
		for i, name := range pr.RHS {
			sym, err := resolve(name)
			if err != nil {
				return grammar.Grammar{}, err
			}
			rhs[i] = sym
		}

		prods = append(prods, grammar.Production{LHS: lhsIdx, RHS: rhs, Tag: pr.Tag})
	}

	return grammar.NewGrammar(raw.Terminals, raw.NonTerminals, prods)
}

// duplicateNames returns the subset of names that appear more than once in
// names, as an unordered set (StringOrdered renders it sorted).
func duplicateNames(names []string) util.StringSet {
	seen := util.NewStringSet()
	dupes := util.NewStringSet()
	for _, n := range names {
		if seen.Has(n) {
			dupes.Add(n)
		}
		seen.Add(n)
	}
	return dupes
}
