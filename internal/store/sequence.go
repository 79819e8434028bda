package store

import "sync/atomic"

// Sequence issues strictly increasing identifiers starting at 1.
// Each store owns its own sequence; users and products never share one.
// Safe for concurrent use.
type Sequence struct {
	n atomic.Int64
}

// NewSequence creates a sequence whose first Next call returns 1.
func NewSequence() *Sequence {
	return &Sequence{}
}

// Next returns the next identifier. Never returns the same value twice.
func (s *Sequence) Next() int64 {
	return s.n.Add(1)
}

// Current returns the last issued identifier, or 0 if none was issued yet.
func (s *Sequence) Current() int64 {
	return s.n.Load()
}
