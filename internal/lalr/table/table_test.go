package table

import (
	"testing"

	"github.com/dekarrin/lalrgen/internal/lalrerrors"
	"github.com/stretchr/testify/assert"
)

func Test_PutGetAction(t *testing.T) {
	tbl := New(2, 1, 1)

	err := tbl.PutAction(0, 1, Action{Kind: Shift, State: 1}, "a")
	assert.NoError(t, err)
	assert.Equal(t, Shift, tbl.GetAction(0, 1).Kind)
	assert.Equal(t, 1, tbl.GetAction(0, 1).State)
}

func Test_PutActionIdempotent(t *testing.T) {
	tbl := New(2, 1, 1)
	assert.NoError(t, tbl.PutAction(0, 1, Action{Kind: Shift, State: 1}, "a"))
	// re-asserting the exact same action is not a conflict
	assert.NoError(t, tbl.PutAction(0, 1, Action{Kind: Shift, State: 1}, "a"))
}

func Test_PutActionConflict(t *testing.T) {
	tbl := New(2, 1, 1)
	assert.NoError(t, tbl.PutAction(0, 1, Action{Kind: Shift, State: 1}, "a"))

	err := tbl.PutAction(0, 1, Action{Kind: Reduce, Prod: 0}, "a")
	assert.Error(t, err)

	var conflict *lalrerrors.Conflict
	assert.ErrorAs(t, err, &conflict)
	assert.Equal(t, 0, conflict.State)
	assert.Equal(t, "a", conflict.Lookahead)
}

func Test_GotoDefaultsToNone(t *testing.T) {
	tbl := New(1, 1, 2)
	_, ok := tbl.GetGoto(0, 0)
	assert.False(t, ok)

	tbl.PutGoto(0, 0, 5)
	target, ok := tbl.GetGoto(0, 0)
	assert.True(t, ok)
	assert.Equal(t, 5, target)
}
