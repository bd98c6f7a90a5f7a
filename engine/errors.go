package engine

import "errors"

var (
	// ErrTooExpensive is returned when the buyer's price ceiling is below
	// the current unit price, either at request time or when the price
	// changed while the purchase was queued.
	ErrTooExpensive = errors.New("fuel too expensive")

	// ErrNoStock is returned when no pump of the requested grade, busy or
	// free, holds enough fuel to satisfy the purchase in one draw.
	ErrNoStock = errors.New("not enough fuel in stock")

	// ErrWaitQueueFull is returned when the requested grade's fairness
	// queue is at capacity. It signals a configured-limits problem, not a
	// business outcome, and increments no cancellation counter.
	ErrWaitQueueFull = errors.New("waiter queue full")
)
