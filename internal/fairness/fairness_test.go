package fairness

import (
	"errors"
	"testing"

	"github.com/dT3nGu/gasstation-assessment/fuel"
)

func TestEnrollIsIdempotent(t *testing.T) {
	s := NewSet(0)

	if err := s.Enroll(fuel.Diesel, 1); err != nil {
		t.Fatalf("Enroll: %v", err)
	}
	if err := s.Enroll(fuel.Diesel, 1); err != nil {
		t.Fatalf("re-Enroll: %v", err)
	}
	if got := s.Len(fuel.Diesel); got != 1 {
		t.Fatalf("queue length after double enroll: got %d, want 1", got)
	}
}

func TestHeadDiscipline(t *testing.T) {
	s := NewSet(0)

	// Empty queue: nobody holds priority, anyone may proceed.
	if !s.IsHead(fuel.Regular, 7) {
		t.Fatal("empty queue should let any waiter proceed")
	}

	s.Enroll(fuel.Regular, 1)
	s.Enroll(fuel.Regular, 2)
	s.Enroll(fuel.Regular, 3)

	if !s.IsHead(fuel.Regular, 1) {
		t.Fatal("waiter 1 should be head")
	}
	if s.IsHead(fuel.Regular, 2) {
		t.Fatal("waiter 2 must yield to the head")
	}

	s.Advance(fuel.Regular)
	if !s.IsHead(fuel.Regular, 2) {
		t.Fatal("waiter 2 should be head after advance")
	}

	// Queues are per grade.
	if !s.IsHead(fuel.Super, 99) {
		t.Fatal("another grade's queue must not impose order")
	}
}

func TestAdvanceEmptyIsNoop(t *testing.T) {
	s := NewSet(0)
	s.Advance(fuel.Diesel) // must not panic
	if got := s.Len(fuel.Diesel); got != 0 {
		t.Fatalf("length after advancing empty queue: got %d", got)
	}
}

func TestRemove(t *testing.T) {
	s := NewSet(0)
	s.Enroll(fuel.Diesel, 1)
	s.Enroll(fuel.Diesel, 2)
	s.Enroll(fuel.Diesel, 3)

	// Removing the middle keeps order around it.
	s.Remove(fuel.Diesel, 2)
	if !s.IsHead(fuel.Diesel, 1) {
		t.Fatal("head should be unaffected by removing waiter 2")
	}
	s.Advance(fuel.Diesel)
	if !s.IsHead(fuel.Diesel, 3) {
		t.Fatal("waiter 3 should follow waiter 1 after waiter 2 left")
	}

	// Removing the head hands priority to the next in line.
	s.Remove(fuel.Diesel, 3)
	if got := s.Len(fuel.Diesel); got != 0 {
		t.Fatalf("queue should be empty, got %d", got)
	}
	s.Remove(fuel.Diesel, 42) // absent waiter: no-op
}

func TestCapacityBound(t *testing.T) {
	s := NewSet(2)

	if err := s.Enroll(fuel.Super, 1); err != nil {
		t.Fatalf("Enroll 1: %v", err)
	}
	if err := s.Enroll(fuel.Super, 2); err != nil {
		t.Fatalf("Enroll 2: %v", err)
	}
	if err := s.Enroll(fuel.Super, 3); !errors.Is(err, ErrQueueFull) {
		t.Fatalf("Enroll over capacity: got %v, want ErrQueueFull", err)
	}

	// Re-enrolling a queued waiter never trips the bound.
	if err := s.Enroll(fuel.Super, 2); err != nil {
		t.Fatalf("re-Enroll at capacity: %v", err)
	}

	// Other grades have their own bound.
	if err := s.Enroll(fuel.Diesel, 3); err != nil {
		t.Fatalf("Enroll other grade: %v", err)
	}
}
