// Package fairness implements the per-grade FIFO waiter queues the engine
// uses to arbitrate turn order among purchases contending for the same fuel
// grade.
//
// The queues decide nothing about stock; they only answer "whose turn is it".
// A waiter for a grade with free matching stock must still yield to the head
// of that grade's queue. An empty queue means nobody has claimed priority and
// anyone may proceed.
package fairness

import (
	"errors"
	"slices"

	"github.com/dT3nGu/gasstation-assessment/fuel"
)

// ErrQueueFull is returned by Enroll when a grade's queue is at capacity.
// This is a configured-limits condition, not a business outcome.
var ErrQueueFull = errors.New("fairness: waiter queue full")

// DefaultCapacity bounds each grade's queue unless overridden.
const DefaultCapacity = 100

// Set holds one bounded FIFO of waiter tokens per fuel grade.
//
// Set is not safe for concurrent use on its own; the engine serializes all
// access under its pool lock.
type Set struct {
	capacity int
	queues   [fuel.MaxTypes][]uint64
}

// NewSet creates a queue set with the given per-grade capacity. A capacity
// of 0 or less selects DefaultCapacity.
func NewSet(capacity int) *Set {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Set{capacity: capacity}
}

// Enroll appends waiter to the back of ft's queue. Enrolling a waiter that
// is already queued is a no-op, so retry loops can enroll unconditionally.
func (s *Set) Enroll(ft fuel.Type, waiter uint64) error {
	q := s.queues[ft]
	if slices.Contains(q, waiter) {
		return nil
	}
	if len(q) >= s.capacity {
		return ErrQueueFull
	}
	s.queues[ft] = append(q, waiter)
	return nil
}

// IsHead reports whether waiter may claim a source of grade ft: either the
// queue is empty (nobody holds priority) or waiter is at its head.
func (s *Set) IsHead(ft fuel.Type, waiter uint64) bool {
	q := s.queues[ft]
	return len(q) == 0 || q[0] == waiter
}

// Advance removes the head of ft's queue. Called exactly once, by the head,
// at the moment it claims a source. Advancing an empty queue is a no-op.
func (s *Set) Advance(ft fuel.Type) {
	if q := s.queues[ft]; len(q) > 0 {
		s.queues[ft] = q[1:]
	}
}

// Remove deletes waiter from ft's queue wherever it sits. Used when a queued
// waiter fails terminally (out of stock, cancelled) so it cannot wedge the
// line behind it.
func (s *Set) Remove(ft fuel.Type, waiter uint64) {
	q := s.queues[ft]
	if i := slices.Index(q, waiter); i >= 0 {
		s.queues[ft] = slices.Delete(q, i, i+1)
	}
}

// Len returns the number of waiters queued for ft.
func (s *Set) Len(ft fuel.Type) int {
	return len(s.queues[ft])
}
