package lookahead

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_InsertContains(t *testing.T) {
	s := New(3)
	assert.True(t, s.Empty())

	s.Insert(Eof)
	s.Insert(Of(1))

	assert.True(t, s.Contains(Eof))
	assert.True(t, s.Contains(Of(1)))
	assert.False(t, s.Contains(Of(0)))
	assert.False(t, s.Contains(Of(2)))
	assert.False(t, s.Empty())
}

func Test_Merge(t *testing.T) {
	a := New(70) // force multi-word sets
	b := New(70)

	a.Insert(Of(0))
	b.Insert(Of(65))

	changed := a.Merge(b)
	assert.True(t, changed)
	assert.True(t, a.Contains(Of(0)))
	assert.True(t, a.Contains(Of(65)))

	// merging again gains nothing
	changed = a.Merge(b)
	assert.False(t, changed)
}

func Test_CloneIndependence(t *testing.T) {
	a := New(4)
	a.Insert(Of(1))

	b := a.Clone()
	b.Insert(Of(2))

	assert.True(t, a.Contains(Of(1)))
	assert.False(t, a.Contains(Of(2)))
	assert.True(t, b.Contains(Of(1)))
	assert.True(t, b.Contains(Of(2)))
}

func Test_Equal(t *testing.T) {
	a := New(4)
	b := New(4)
	assert.True(t, a.Equal(b))

	a.Insert(Of(3))
	assert.False(t, a.Equal(b))

	b.Insert(Of(3))
	assert.True(t, a.Equal(b))
}

func Test_Elements(t *testing.T) {
	s := New(130) // three words
	s.Insert(Eof)
	s.Insert(Of(0))
	s.Insert(Of(129))

	assert.Equal(t, []int{Eof, Of(0), Of(129)}, s.Elements())
}

func Test_Clear(t *testing.T) {
	s := New(10)
	s.Insert(Eof)
	s.Insert(Of(5))
	s.Clear()
	assert.True(t, s.Empty())
}
