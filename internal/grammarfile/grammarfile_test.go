package grammarfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exprSource = `
terminals = ["+", "id", "(", ")"]
nonterminals = ["S", "E", "T"]

[[productions]]
lhs = "S"
tag = "s-e"
rhs = ["E"]

[[productions]]
lhs = "E"
tag = "e-plus"
rhs = ["E", "+", "T"]

[[productions]]
lhs = "E"
tag = "e-t"
rhs = ["T"]

[[productions]]
lhs = "T"
tag = "t-id"
rhs = ["id"]

[[productions]]
lhs = "T"
tag = "t-paren"
rhs = ["(", "E", ")"]
`

func Test_Parse_BuildsValidGrammar(t *testing.T) {
	g, err := Parse([]byte(exprSource))
	require.NoError(t, err)
	require.NoError(t, g.Validate())

	assert.Equal(t, 4, g.NumTerminals())
	assert.Equal(t, 3, g.NumNonTerminals())
	assert.Equal(t, "S", g.NonTerminalName(g.StartSymbol()))
}

func Test_Parse_RejectsUndeclaredSymbol(t *testing.T) {
	const bad = `
terminals = ["a"]
nonterminals = ["S"]

[[productions]]
lhs = "S"
tag = "s-x"
rhs = ["x"]
`
	_, err := Parse([]byte(bad))
	assert.Error(t, err)
}

func Test_Parse_RejectsUndeclaredLHS(t *testing.T) {
	const bad = `
terminals = ["a"]
nonterminals = ["S"]

[[productions]]
lhs = "Q"
tag = "s-a"
rhs = ["a"]
`
	_, err := Parse([]byte(bad))
	assert.Error(t, err)
}

func Test_Parse_DuplicateTerminalNameRejected(t *testing.T) {
	const bad = `
terminals = ["a", "a"]
nonterminals = ["S"]

[[productions]]
lhs = "S"
tag = "s-a"
rhs = ["a"]
`
	_, err := Parse([]byte(bad))
	assert.Error(t, err)
}

func Test_Parse_DuplicateNonTerminalNameRejected(t *testing.T) {
	const bad = `
terminals = ["a"]
nonterminals = ["S", "S"]

[[productions]]
lhs = "S"
tag = "s-a"
rhs = ["a"]
`
	_, err := Parse([]byte(bad))
	assert.Error(t, err)
}

func Test_Parse_AmbiguousSymbolNameRejected(t *testing.T) {
	const bad = `
terminals = ["X"]
nonterminals = ["S", "X"]

[[productions]]
lhs = "S"
tag = "s-x"
rhs = ["X"]
`
	_, err := Parse([]byte(bad))
	assert.Error(t, err)
}
