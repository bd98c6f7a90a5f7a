package gasstation

import (
	"context"
	"time"

	"github.com/dT3nGu/gasstation-assessment/engine"
	"github.com/dT3nGu/gasstation-assessment/fuel"
	"github.com/dT3nGu/gasstation-assessment/pump"
)

// Station is the public face of one fuel station: a pump pool, a price
// table, and sale accounting. Safe for concurrent use by any number of
// goroutines. Create with New; the zero value is not usable.
type Station struct {
	engine  *engine.Engine
	logger  *Logger
	metrics MetricsCollector
}

// New creates an empty station: no pumps, every grade priced at 0.
func New(opts ...Option) *Station {
	o := options{
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
	}
	for _, fn := range opts {
		fn(&o)
	}

	eng := engine.New(func(eo *engine.Options) {
		eo.QueueCapacity = o.queueCapacity
		eo.Logger = o.logger.Logger
	})

	return &Station{
		engine:  eng,
		logger:  o.logger,
		metrics: o.metricsCollector,
	}
}

// AddPump registers a pump with the station and returns its handle. Adding
// stock wakes every queued purchase, since a new pump may satisfy waiters of
// its grade.
func (s *Station) AddPump(p *pump.Pump) uint32 {
	id := s.engine.AddPump(p)
	s.metrics.RecordPumpAdded()
	return id
}

// SetPrice sets the unit price for a fuel grade, effective immediately —
// including for purchases already queued, which re-validate their ceiling
// against the latest price when they commit.
func (s *Station) SetPrice(ft fuel.Type, price float64) {
	s.engine.SetPrice(ft, price)
	s.metrics.RecordPriceChange()
}

// Price returns the current unit price for a fuel grade. Grades start at 0
// until explicitly priced.
func (s *Station) Price(ft fuel.Type) float64 {
	return s.engine.Price(ft)
}

// Pumps returns point-in-time copies of all registered pumps. The copies
// are detached: mutating them does not affect the station.
func (s *Station) Pumps() []pump.Snapshot {
	return s.engine.Snapshots()
}

// Purchase buys litres of a fuel grade, paying at most ceiling per litre,
// and returns the committed charge.
//
// Purchase blocks while every adequate pump of the grade is busy or while
// earlier buyers of the same grade are still ahead in line; ctx cancellation
// is honored during that wait. It fails with ErrTooExpensive or ErrNoStock
// as described on those errors. The returned charge is exactly
// litres × price-at-commit-time and never exceeds litres × ceiling.
func (s *Station) Purchase(ctx context.Context, ft fuel.Type, litres, ceiling float64) (float64, error) {
	start := time.Now()
	charge, err := s.engine.Purchase(ctx, ft, litres, ceiling)
	s.metrics.RecordPurchase(time.Since(start), err)
	return charge, err
}

// Stats returns one consistent snapshot of the station's accounting: a sale
// is never visible without its revenue.
func (s *Station) Stats() engine.Stats {
	return s.engine.Stats()
}

// Revenue returns the accumulated value of all committed sales.
func (s *Station) Revenue() float64 {
	return s.engine.Revenue()
}

// Sales returns the number of committed sales.
func (s *Station) Sales() uint64 {
	return s.engine.Sales()
}

// CancellationsTooExpensive returns how many purchases were rejected on
// price.
func (s *Station) CancellationsTooExpensive() uint64 {
	return s.engine.CancellationsTooExpensive()
}

// CancellationsNoStock returns how many purchases were rejected because no
// single pump held enough of the requested grade.
func (s *Station) CancellationsNoStock() uint64 {
	return s.engine.CancellationsNoStock()
}
