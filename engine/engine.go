package engine

import (
	"io"
	"log/slog"
	"sync"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/dT3nGu/gasstation-assessment/fuel"
	"github.com/dT3nGu/gasstation-assessment/internal/fairness"
	"github.com/dT3nGu/gasstation-assessment/pricing"
	"github.com/dT3nGu/gasstation-assessment/pump"
)

// Options configures an Engine.
type Options struct {
	// QueueCapacity bounds each grade's fairness queue. 0 or less selects
	// fairness.DefaultCapacity.
	QueueCapacity int

	// Logger receives engine events. If nil, logging is disabled.
	Logger *slog.Logger
}

// Engine owns one station's allocation state. Create with New; the zero
// value is not usable.
type Engine struct {
	logger *slog.Logger
	prices *pricing.Table

	mu        sync.Mutex
	cond      *sync.Cond      // paired with mu; broadcast on release/add/price change
	pumps     []*pump.Pump    // pump ID = slice index, stable for the station's lifetime
	occupied  *roaring.Bitmap // pump IDs reserved by in-flight purchases
	queues    *fairness.Set
	waiterSeq uint64

	sales              uint64
	cancelledExpensive uint64
	cancelledNoStock   uint64
	revenue            float64
}

// New creates an empty engine: no pumps, every grade priced at 0.
func New(optFns ...func(o *Options)) *Engine {
	opts := Options{}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	e := &Engine{
		logger:   opts.Logger,
		prices:   pricing.New(),
		occupied: roaring.New(),
		queues:   fairness.NewSet(opts.QueueCapacity),
	}
	e.cond = sync.NewCond(&e.mu)
	return e
}

// AddPump registers a pump with the pool and returns its handle. New stock
// may unblock queued purchases of any grade, so all waiters are woken.
func (e *Engine) AddPump(p *pump.Pump) uint32 {
	e.mu.Lock()
	id := uint32(len(e.pumps))
	e.pumps = append(e.pumps, p)
	e.cond.Broadcast()
	e.mu.Unlock()

	e.logger.Info("pump added",
		"pump", id, "fuel", p.Fuel().String(), "litres", p.Remaining())
	return id
}

// SetPrice overwrites the unit price for a grade, effective immediately,
// including for purchases already queued. Waiters are woken so a purchase
// whose ceiling the new price exceeds fails promptly instead of at its next
// incidental wakeup.
func (e *Engine) SetPrice(ft fuel.Type, price float64) {
	if !ft.Valid() {
		e.logger.Warn("ignoring price for unknown fuel type", "type", int(ft))
		return
	}
	e.prices.Set(ft, price)

	e.mu.Lock()
	e.cond.Broadcast()
	e.mu.Unlock()

	e.logger.Debug("price set", "fuel", ft.String(), "price", price)
}

// Price returns the current unit price for a grade (0 until set).
func (e *Engine) Price(ft fuel.Type) float64 {
	if !ft.Valid() {
		return 0
	}
	return e.prices.Get(ft)
}

// Snapshots returns copies of all registered pumps, in registration order.
func (e *Engine) Snapshots() []pump.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]pump.Snapshot, len(e.pumps))
	for i, p := range e.pumps {
		out[i] = p.Snapshot()
	}
	return out
}

// Stats is one consistent reading of the engine's accounting state.
type Stats struct {
	Sales                     uint64
	CancellationsTooExpensive uint64
	CancellationsNoStock      uint64
	Revenue                   float64
}

// Stats returns all counters and the revenue accumulator as one atomic
// snapshot.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Stats{
		Sales:                     e.sales,
		CancellationsTooExpensive: e.cancelledExpensive,
		CancellationsNoStock:      e.cancelledNoStock,
		Revenue:                   e.revenue,
	}
}

// Revenue returns the accumulated value of all committed sales.
func (e *Engine) Revenue() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.revenue
}

// Sales returns the number of committed sales.
func (e *Engine) Sales() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sales
}

// CancellationsTooExpensive returns the number of purchases rejected on
// price, at request time or at commit time.
func (e *Engine) CancellationsTooExpensive() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cancelledExpensive
}

// CancellationsNoStock returns the number of purchases rejected because no
// single pump held enough of the requested grade.
func (e *Engine) CancellationsNoStock() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cancelledNoStock
}
