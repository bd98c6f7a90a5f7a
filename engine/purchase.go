package engine

import (
	"context"
	"fmt"
	"math"

	"github.com/dT3nGu/gasstation-assessment/fuel"
	"github.com/dT3nGu/gasstation-assessment/pump"
)

// Purchase buys litres of a grade at up to ceiling per litre and returns the
// committed charge.
//
// The purchase fails with ErrTooExpensive if the current price exceeds the
// ceiling, checked once up front and again at commit time (the price may
// change while the purchase is queued). It fails with ErrNoStock if no pump
// of the grade, busy or free, can satisfy the full amount in one draw. A
// purchase that merely has to wait for a busy pump or for its turn blocks
// until stock is released or added; ctx cancellation is honored while
// waiting, but once the sale commits the dispense runs to completion.
func (e *Engine) Purchase(ctx context.Context, ft fuel.Type, litres, ceiling float64) (float64, error) {
	if !ft.Valid() {
		return 0, fmt.Errorf("engine: invalid fuel type %d", int(ft))
	}
	if litres < 0 || math.IsNaN(litres) || math.IsInf(litres, 0) {
		return 0, fmt.Errorf("engine: invalid amount %v", litres)
	}
	if math.IsNaN(ceiling) {
		return 0, fmt.Errorf("engine: invalid price ceiling %v", ceiling)
	}

	// A cancelled context must be able to wake this purchase off the
	// condition variable. The broadcast takes the pool mutex so it cannot
	// slip between a waiter's last ctx check and its park.
	if ctx.Done() != nil {
		stop := context.AfterFunc(ctx, func() {
			e.mu.Lock()
			e.cond.Broadcast()
			e.mu.Unlock()
		})
		defer stop()
	}

	e.mu.Lock()

	// Cheap rejection before queueing. Not authoritative: commit re-checks.
	if price := e.prices.Get(ft); ceiling < price {
		e.cancelledExpensive++
		e.mu.Unlock()
		return 0, fmt.Errorf("%w: ceiling %.4f below current %s price %.4f",
			ErrTooExpensive, ceiling, ft, price)
	}

	e.waiterSeq++
	waiter := e.waiterSeq

	var (
		chosen   *pump.Pump
		chosenID uint32
	)
	for {
		if err := ctx.Err(); err != nil {
			e.abandonLocked(ft, waiter)
			return 0, err
		}

		p, id, err := e.tryAcquireLocked(ft, litres, waiter)
		if err != nil {
			// Terminal: total pool stock cannot satisfy this purchase.
			e.cancelledNoStock++
			e.abandonLocked(ft, waiter)
			return 0, err
		}
		if p != nil {
			chosen, chosenID = p, id
			break
		}

		// Not yet available: take a place in line before parking so a
		// wakeup between unlock and park cannot be missed, then wait for
		// a release, a new pump, or a price change.
		if err := e.queues.Enroll(ft, waiter); err != nil {
			e.mu.Unlock()
			return 0, fmt.Errorf("%w: %s queue at capacity", ErrWaitQueueFull, ft)
		}
		e.cond.Wait()
	}

	// Commit. Price is re-read under the pool mutex; a raise past the
	// ceiling aborts and returns the pump to the next waiter.
	price := e.prices.Get(ft)
	if ceiling < price {
		e.occupied.Remove(chosenID)
		e.cancelledExpensive++
		e.cond.Broadcast()
		e.mu.Unlock()
		return 0, fmt.Errorf("%w: %s price rose to %.4f while queued (ceiling %.4f)",
			ErrTooExpensive, ft, price, ceiling)
	}
	charge := litres * price
	e.revenue += charge
	e.sales++
	e.mu.Unlock()

	// Dispense outside the pool mutex; the sale is committed, so caller
	// cancellation no longer applies.
	dispenseErr := chosen.Dispense(context.WithoutCancel(ctx), litres)

	e.mu.Lock()
	e.occupied.Remove(chosenID)
	e.cond.Broadcast()
	e.mu.Unlock()

	if dispenseErr != nil {
		// Stock was verified under the mutex and only the occupant draws,
		// so this indicates a broken occupancy protocol.
		return 0, fmt.Errorf("engine: dispense after commit failed: %w", dispenseErr)
	}

	e.logger.Debug("sale committed",
		"fuel", ft.String(), "litres", litres, "price", price, "charge", charge)
	return charge, nil
}

// abandonLocked drops a waiter that is exiting the wait loop on a terminal
// path. Removing it from its queue keeps a dead head from wedging the line;
// the broadcast lets the next in line notice. Unlocks e.mu.
func (e *Engine) abandonLocked(ft fuel.Type, waiter uint64) {
	e.queues.Remove(ft, waiter)
	e.cond.Broadcast()
	e.mu.Unlock()
}

// tryAcquireLocked runs one arbitration round for a purchase. Caller holds
// e.mu.
//
// Outcomes: a granted pump (reserved in the occupied set, queue advanced if
// the waiter was head), (nil, 0, nil) meaning "not yet available, park and
// retry", or ErrNoStock when no pump of the grade anywhere in the pool holds
// enough fuel.
func (e *Engine) tryAcquireLocked(ft fuel.Type, litres float64, waiter uint64) (*pump.Pump, uint32, error) {
	// Total-pool check first, ignoring occupancy: a busy-but-adequate pump
	// means waiting, an inadequate pool means permanent failure.
	exists := false
	for _, p := range e.pumps {
		if p.Fuel() == ft && p.Remaining() >= litres {
			exists = true
			break
		}
	}
	if !exists {
		return nil, 0, fmt.Errorf("%w: no %s pump holds %.2f litres",
			ErrNoStock, ft, litres)
	}

	var (
		candidate   *pump.Pump
		candidateID uint32
	)
	for i, p := range e.pumps {
		if e.occupied.Contains(uint32(i)) {
			continue
		}
		if p.Fuel() == ft && p.Remaining() >= litres {
			candidate, candidateID = p, uint32(i)
			break
		}
	}
	if candidate == nil {
		return nil, 0, nil
	}

	// A free pump is not enough: the head of the grade's queue gets first
	// refusal. An empty queue means nobody holds priority.
	if !e.queues.IsHead(ft, waiter) {
		return nil, 0, nil
	}

	e.queues.Advance(ft)
	e.occupied.Add(candidateID)
	return candidate, candidateID, nil
}
