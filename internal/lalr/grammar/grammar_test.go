package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Validate(t *testing.T) {
	testCases := []struct {
		name         string
		terminals    []string
		nonterminals []string
		productions  []Production
		expectErr    bool
	}{
		{
			name:      "empty grammar",
			expectErr: true,
		},
		{
			name:         "no productions",
			nonterminals: []string{"S"},
			expectErr:    true,
		},
		{
			name:         "nonterminal with no productions",
			terminals:    []string{"a"},
			nonterminals: []string{"S", "X"},
			productions: []Production{
				{LHS: 0, RHS: []Symbol{Term(0)}, Tag: "s-a"},
			},
			expectErr: true,
		},
		{
			name:         "dangling terminal reference",
			terminals:    []string{"a"},
			nonterminals: []string{"S"},
			productions: []Production{
				{LHS: 0, RHS: []Symbol{Term(5)}, Tag: "s-a"},
			},
			expectErr: true,
		},
		{
			name:         "single rule grammar",
			terminals:    []string{"a"},
			nonterminals: []string{"S"},
			productions: []Production{
				{LHS: 0, RHS: []Symbol{Term(0)}, Tag: "s-a"},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g, err := NewGrammar(tc.terminals, tc.nonterminals, tc.productions)
			if err == nil {
				err = g.Validate()
			}

			if tc.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func Test_Augment(t *testing.T) {
	g, err := NewGrammar(
		[]string{"a"},
		[]string{"S"},
		[]Production{{LHS: 0, RHS: []Symbol{Term(0)}, Tag: "s-a"}},
	)
	assert.NoError(t, err)

	aug := g.Augment()

	assert.Equal(t, 0, aug.StartSymbol())
	assert.Equal(t, []int{0}, aug.ProductionsOf(0))
	assert.Equal(t, AugmentedStartTag, aug.Productions[0].Tag)
	assert.Equal(t, NonTerm(1), aug.Productions[0].RHS[0])

	// original production shifted by one nonterminal index, symbol indices
	// within it preserved relative to their own kind
	shifted := aug.Productions[1]
	assert.Equal(t, 1, shifted.LHS)
	assert.Equal(t, Term(0), shifted.RHS[0])

	assert.NoError(t, aug.Validate())
}
