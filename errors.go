package gasstation

import "github.com/dT3nGu/gasstation-assessment/engine"

// Errors returned by Purchase. Both are terminal: the engine never retries
// on the caller's behalf, and a failed purchase leaves pool state untouched
// beyond its cancellation counter.
var (
	// ErrTooExpensive means the buyer's ceiling was below the unit price,
	// at request time or at commit time (the price changed while queued).
	ErrTooExpensive = engine.ErrTooExpensive

	// ErrNoStock means no single pump of the requested grade, busy or
	// free, holds enough fuel for the full amount.
	ErrNoStock = engine.ErrNoStock

	// ErrWaitQueueFull means the grade's fairness queue hit its configured
	// bound (see WithQueueCapacity).
	ErrWaitQueueFull = engine.ErrWaitQueueFull
)
