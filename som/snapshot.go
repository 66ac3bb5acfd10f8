package som

import "sync/atomic"

// Snapshot holds an immutable structure that can be swapped atomically.
// Readers that loaded an earlier value keep seeing it unchanged.
type Snapshot[S any] struct {
	p atomic.Pointer[S]
}

// Load returns the current structure. Before the first Store it returns a
// fresh zero structure, so a zero Snapshot is usable.
func (s *Snapshot[S]) Load() *S {
	if v := s.p.Load(); v != nil {
		return v
	}
	return new(S)
}

// Store replaces the current structure.
func (s *Snapshot[S]) Store(v S) {
	s.p.Store(&v)
}
