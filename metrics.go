package gasstation

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus.
//
// Callbacks may be invoked concurrently and must be safe for concurrent use.
type MetricsCollector interface {
	// RecordPurchase is called after each purchase attempt, successful or
	// not. duration covers the whole call including queue wait and
	// dispense time; err is nil on a committed sale.
	RecordPurchase(duration time.Duration, err error)

	// RecordPriceChange is called after each price update.
	RecordPriceChange()

	// RecordPumpAdded is called after each pump registration.
	RecordPumpAdded()
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordPurchase(time.Duration, error) {}
func (NoopMetricsCollector) RecordPriceChange()                  {}
func (NoopMetricsCollector) RecordPumpAdded()                    {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	PurchaseCount      atomic.Int64
	PurchaseErrors     atomic.Int64
	PurchaseTotalNanos atomic.Int64
	PriceChangeCount   atomic.Int64
	PumpAddedCount     atomic.Int64
}

// RecordPurchase implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPurchase(duration time.Duration, err error) {
	b.PurchaseCount.Add(1)
	b.PurchaseTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.PurchaseErrors.Add(1)
	}
}

// RecordPriceChange implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPriceChange() {
	b.PriceChangeCount.Add(1)
}

// RecordPumpAdded implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPumpAdded() {
	b.PumpAddedCount.Add(1)
}

// AveragePurchaseNanos returns the mean purchase latency in nanoseconds, or
// 0 if no purchase has been recorded.
func (b *BasicMetricsCollector) AveragePurchaseNanos() int64 {
	n := b.PurchaseCount.Load()
	if n == 0 {
		return 0
	}
	return b.PurchaseTotalNanos.Load() / n
}
