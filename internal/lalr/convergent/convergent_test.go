package convergent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type widening struct {
	core  string
	bound int
}

func Test_EnqueueDedup(t *testing.T) {
	p := New(func(w widening) string { return w.core })

	i1, found1 := p.Enqueue(widening{core: "A", bound: 1})
	i2, found2 := p.Enqueue(widening{core: "A", bound: 2})

	assert.False(t, found1)
	assert.True(t, found2)
	assert.Equal(t, i1, i2)
	assert.Equal(t, 1, p.Count())

	// the second enqueue does not overwrite the stored value
	assert.Equal(t, 1, p.Items()[i1].bound)
}

func Test_StableIndices(t *testing.T) {
	p := New(func(w widening) string { return w.core })

	a, _ := p.Enqueue(widening{core: "A"})
	b, _ := p.Enqueue(widening{core: "B"})
	aAgain, found := p.Enqueue(widening{core: "A"})

	assert.True(t, found)
	assert.Equal(t, a, aAgain)
	assert.NotEqual(t, a, b)
}

func Test_RequeueOnlyIfNotPending(t *testing.T) {
	p := New(func(w widening) string { return w.core })
	idx, _ := p.Enqueue(widening{core: "A"})

	visits := 0
	p.Run(func(i int) {
		visits++
		if visits == 1 {
			// still queued from the initial Enqueue's processing pass? no -
			// Next() already dequeued it, so Requeue should schedule another
			// visit exactly once even if called twice.
			p.Requeue(idx)
			p.Requeue(idx)
		}
	})

	assert.Equal(t, 2, visits)
}

func Test_FixpointTerminates(t *testing.T) {
	// widen a single item's bound until it reaches a cap, requeuing each
	// time it changes; must terminate.
	p := New(func(w widening) string { return w.core })
	idx, _ := p.Enqueue(widening{core: "A", bound: 0})

	p.Run(func(i int) {
		cur := p.Items()[i]
		if cur.bound < 5 {
			cur.bound++
			p.Set(i, cur)
			p.Requeue(i)
		}
	})

	assert.Equal(t, 5, p.Items()[idx].bound)
}
