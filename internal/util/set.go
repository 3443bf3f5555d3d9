// Package util holds small generic data structures shared across the lalrgen
// packages. It exists because the grammar/automaton code needs the same
// handful of container shapes (an ordered stack, a dedup set) over and over,
// and pulling in a general-purpose collections package for that would be
// overkill.
package util

import (
	"fmt"
	"sort"
	"strings"
)

// KeySet is a simple set of comparable elements, backed by a map. It is used
// wherever the construction algorithms need to track "have I seen this
// symbol/state already" without caring about ordering.
type KeySet[E comparable] map[E]bool

// NewKeySet creates a new KeySet, optionally seeded from existing map(s).
func NewKeySet[E comparable](of ...map[E]bool) KeySet[E] {
	ks := KeySet[E]{}
	for _, m := range of {
		for k, v := range m {
			if v {
				ks[k] = true
			}
		}
	}
	return ks
}

// KeySetOf creates a KeySet containing every element of sl.
func KeySetOf[E comparable](sl []E) KeySet[E] {
	ks := KeySet[E]{}
	for _, v := range sl {
		ks[v] = true
	}
	return ks
}

// Add adds value to the set. No effect if it is already present.
func (s KeySet[E]) Add(value E) {
	s[value] = true
}

// Remove removes value from the set. No effect if it is not present.
func (s KeySet[E]) Remove(value E) {
	delete(s, value)
}

// Has returns whether value is in the set.
func (s KeySet[E]) Has(value E) bool {
	return s[value]
}

// Len returns the number of elements in the set.
func (s KeySet[E]) Len() int {
	return len(s)
}

// Empty returns whether the set has no elements.
func (s KeySet[E]) Empty() bool {
	return len(s) == 0
}

// Copy returns a shallow copy of the set.
func (s KeySet[E]) Copy() KeySet[E] {
	cp := make(KeySet[E], len(s))
	for k, v := range s {
		cp[k] = v
	}
	return cp
}

// Elements returns the elements of the set in unspecified order.
func (s KeySet[E]) Elements() []E {
	elems := make([]E, 0, len(s))
	for k, v := range s {
		if v {
			elems = append(elems, k)
		}
	}
	return elems
}

// StringSet is a set of strings, kept distinct from KeySet[string] so that
// StringOrdered (needed for deterministic error messages) has somewhere
// natural to live.
type StringSet map[string]bool

// NewStringSet creates a new StringSet, optionally seeded from existing
// map(s).
func NewStringSet(of ...map[string]bool) StringSet {
	ss := StringSet{}
	for _, m := range of {
		for k, v := range m {
			if v {
				ss[k] = true
			}
		}
	}
	return ss
}

// StringSetOf creates a StringSet containing every element of sl.
func StringSetOf(sl []string) StringSet {
	ss := StringSet{}
	for _, v := range sl {
		ss[v] = true
	}
	return ss
}

func (s StringSet) Add(value string)    { s[value] = true }
func (s StringSet) Remove(value string) { delete(s, value) }
func (s StringSet) Has(value string) bool {
	return s[value]
}
func (s StringSet) Len() int {
	return len(s)
}
func (s StringSet) Empty() bool {
	return len(s) == 0
}

func (s StringSet) Elements() []string {
	elems := make([]string, 0, len(s))
	for k, v := range s {
		if v {
			elems = append(elems, k)
		}
	}
	return elems
}

// StringOrdered returns the elements of the set joined in sorted order, for
// use in output that must be deterministic (e.g. the grammar loader's
// duplicate-name errors).
func (s StringSet) StringOrdered() string {
	elems := s.Elements()
	sort.Strings(elems)
	return strings.Join(elems, ", ")
}

func (s StringSet) String() string {
	return fmt.Sprintf("{%s}", s.StringOrdered())
}
