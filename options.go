package gasstation

import "github.com/dT3nGu/gasstation-assessment/internal/fairness"

type options struct {
	logger           *Logger
	metricsCollector MetricsCollector
	queueCapacity    int
}

// Option configures Station construction.
type Option func(*options)

// WithLogger configures structured logging for the station. If nil is
// passed, logging stays disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector plugs an operational metrics sink into the station.
// If nil is passed, NoopMetricsCollector is used.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithQueueCapacity bounds each fuel grade's waiter queue. Purchases that
// would exceed the bound fail with ErrWaitQueueFull instead of waiting.
//
// The default (100) is generous: hitting it means the station is configured
// for far more concurrent buyers than it can serve, not that business load
// is momentarily high.
func WithQueueCapacity(n int) Option {
	return func(o *options) {
		if n <= 0 {
			n = fairness.DefaultCapacity
		}
		o.queueCapacity = n
	}
}
