// Package pump models a single fuel dispensing unit: one fuel grade, a
// finite remaining amount, and an optional simulated hardware flow rate.
//
// A Pump performs no locking of its own. The station engine guarantees that
// at most one transaction occupies a pump at a time, so Dispense is only ever
// called by the sole occupant. Remaining is stored atomically because the
// engine scans pool stock under its lock while a dispense may be running
// outside it.
package pump

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync/atomic"

	"golang.org/x/time/rate"

	"github.com/dT3nGu/gasstation-assessment/fuel"
)

// ErrInsufficientStock is returned by Dispense when the requested amount
// exceeds the pump's remaining stock.
var ErrInsufficientStock = errors.New("insufficient stock")

// Options configures a Pump.
type Options struct {
	// FlowRate is the simulated dispensing speed in litres per second.
	// If 0, dispensing is instantaneous.
	FlowRate float64
}

// Pump is a single dispensing unit for one fuel grade.
type Pump struct {
	fuelType  fuel.Type
	remaining atomic.Uint64 // float64 bits
	limiter   *rate.Limiter // nil if flow is instantaneous
}

// New creates a pump holding the given initial amount of a fuel grade.
func New(ft fuel.Type, litres float64, optFns ...func(o *Options)) (*Pump, error) {
	opts := Options{}
	for _, fn := range optFns {
		fn(&opts)
	}

	if !ft.Valid() {
		return nil, fmt.Errorf("pump: invalid fuel type %d", int(ft))
	}
	if litres < 0 || math.IsNaN(litres) || math.IsInf(litres, 0) {
		return nil, fmt.Errorf("pump: invalid initial amount %v", litres)
	}
	if opts.FlowRate < 0 {
		return nil, fmt.Errorf("pump: invalid flow rate %v", opts.FlowRate)
	}

	p := &Pump{fuelType: ft}
	p.remaining.Store(math.Float64bits(litres))
	if opts.FlowRate > 0 {
		// Burst of one litre keeps the flow steady instead of front-loaded.
		p.limiter = rate.NewLimiter(rate.Limit(opts.FlowRate), 1)
	}
	return p, nil
}

// Fuel returns the grade this pump dispenses.
func (p *Pump) Fuel() fuel.Type {
	return p.fuelType
}

// Remaining returns the current remaining amount in litres.
func (p *Pump) Remaining() float64 {
	return math.Float64frombits(p.remaining.Load())
}

// Dispense draws litres from the pump, waiting out the simulated flow time.
//
// Dispense fails with ErrInsufficientStock if litres exceeds the remaining
// amount, without drawing anything. It is not safe for concurrent use; the
// caller must hold exclusive occupancy of the pump.
func (p *Pump) Dispense(ctx context.Context, litres float64) error {
	if litres < 0 || math.IsNaN(litres) {
		return fmt.Errorf("pump: invalid dispense amount %v", litres)
	}

	rem := p.Remaining()
	if litres > rem {
		return fmt.Errorf("%w: need %.2f litres of %s, %.2f remaining",
			ErrInsufficientStock, litres, p.fuelType, rem)
	}

	if p.limiter != nil {
		// One reservation per litre models a constant-rate hose.
		for i := 0; i < int(math.Ceil(litres)); i++ {
			if err := p.limiter.Wait(ctx); err != nil {
				return fmt.Errorf("pump: flow interrupted: %w", err)
			}
		}
	}

	p.remaining.Store(math.Float64bits(rem - litres))
	return nil
}

// Snapshot is an immutable copy of a pump's externally visible state.
type Snapshot struct {
	Fuel      fuel.Type
	Remaining float64
}

// Snapshot returns a copy of the pump's current state. Mutating the copy has
// no effect on the live pump.
func (p *Pump) Snapshot() Snapshot {
	return Snapshot{Fuel: p.fuelType, Remaining: p.Remaining()}
}
