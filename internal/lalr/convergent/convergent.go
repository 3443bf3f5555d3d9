// Package convergent implements the single worklist shape that every
// fixpoint loop in the table generator reduces to: dedup-intern a value by
// some key, process it, and requeue it if a later merge widens it. CLOSURE
// and the LALR family construction both run on this Process, so the
// termination argument only has to be made once for them. The FIRST-set
// fixpoint (package firstset) does not use it; it repeats full passes over
// the productions until none changes.
package convergent

// Process drives a worklist over values of type T, deduplicated and
// interned by a caller-supplied key of type H. Every distinct T (by H) is
// assigned a stable ascending index the first time it is enqueued; indices
// are never reused or reordered.
//
// Process is not safe for concurrent use; the generator that owns one runs
// it synchronously to completion.
type Process[T any, H comparable] struct {
	key func(T) H

	items   []T
	indexOf map[H]int
	queued  []bool
	queue   []int
}

// New builds a Process whose identity for deduplication is given by key. key
// must return the same H for values that should be considered "the same
// item" regardless of any mutable payload they carry (e.g. an Item's core,
// ignoring its lookahead).
func New[T any, H comparable](key func(T) H) *Process[T, H] {
	return &Process[T, H]{
		key:     key,
		indexOf: map[H]int{},
	}
}

// Enqueue interns v if its key hasn't been seen before, assigning it the next
// ascending index and queuing it for processing. If the key has been seen
// before, found is true and index is the existing item's stable index, but
// Enqueue does not touch the queue or the stored value for it - the caller is
// responsible both for merging any new payload into the existing item and
// for calling Requeue if that merge actually changed something. Looking an
// existing key up this way must never by itself schedule more work, or a
// cycle in the graph being traversed (any two items that reference each
// other, which every nontrivial grammar's item sets do) would requeue one
// another forever regardless of whether anything was still changing.
func (p *Process[T, H]) Enqueue(v T) (index int, found bool) {
	k := p.key(v)
	if idx, ok := p.indexOf[k]; ok {
		return idx, true
	}

	idx := len(p.items)
	p.indexOf[k] = idx
	p.items = append(p.items, v)
	p.queued = append(p.queued, true)
	p.queue = append(p.queue, idx)
	return idx, false
}

// Requeue pushes index back onto the worklist iff it is not already queued.
// Used after mutating Items()[index] in place (e.g. merging a wider
// lookahead into it) to ensure its consequences get reprocessed.
func (p *Process[T, H]) Requeue(index int) {
	if !p.queued[index] {
		p.queue = append(p.queue, index)
		p.queued[index] = true
	}
}

// Next pops the next index to process, marking it not-queued. ok is false
// once the worklist is drained.
func (p *Process[T, H]) Next() (index int, ok bool) {
	if len(p.queue) == 0 {
		return 0, false
	}
	idx := p.queue[0]
	p.queue = p.queue[1:]
	p.queued[idx] = false
	return idx, true
}

// Items exposes the append-only interned sequence. Index i is stable for the
// lifetime of the Process once assigned by Enqueue.
func (p *Process[T, H]) Items() []T {
	return p.items
}

// Count returns the number of distinct items interned so far.
func (p *Process[T, H]) Count() int {
	return len(p.items)
}

// Set overwrites the value stored at index, for use after merging a wider
// payload (e.g. a union of lookaheads) into an already-interned item.
func (p *Process[T, H]) Set(index int, v T) {
	p.items[index] = v
}

// Run drains the worklist, calling step for each popped index until none
// remain. step is expected to call Enqueue/Requeue as needed to drive further
// iterations; Run returns once a full pass produces no more work.
func (p *Process[T, H]) Run(step func(index int)) {
	for {
		idx, ok := p.Next()
		if !ok {
			return
		}
		step(idx)
	}
}
