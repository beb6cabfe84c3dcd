// Package sequence issues the strictly monotonic sequence numbers that
// order trade emission.
package sequence

import "sync/atomic"

// Sequencer generates strictly monotonic sequence IDs. Issuance order is
// the deterministic total order downstream consumers replay by, so it is
// independent of wall-clock time.
type Sequencer struct {
	next atomic.Uint64
}

// New creates a sequencer whose first Next returns start+1.
func New(start uint64) *Sequencer {
	s := &Sequencer{}
	s.next.Store(start)
	return s
}

// Next returns the next sequence ID.
func (s *Sequencer) Next() uint64 {
	return s.next.Add(1)
}

// Current returns the last issued sequence, start if none issued yet.
func (s *Sequencer) Current() uint64 {
	return s.next.Load()
}
