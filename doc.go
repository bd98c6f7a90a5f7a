// Package gasstation provides an embedded, concurrency-safe fuel station
// engine for Go.
//
// A Station owns a finite pool of pumps, a per-grade price table, and exact
// sale/cancellation accounting. Any number of goroutines may buy fuel
// concurrently; the engine guarantees:
//
//   - A buyer is never charged more than its declared price ceiling, even if
//     the price changes while the buyer is queued (the price is re-validated
//     at commit time).
//   - A buyer is never granted a pump that cannot satisfy the full requested
//     amount in one draw.
//   - Buyers contending for the same fuel grade are served in strict arrival
//     order; a fast re-polling buyer cannot jump a buyer that has been
//     waiting longer.
//   - Sale and cancellation counters and the revenue accumulator stay
//     exactly consistent with the sequence of outcomes under arbitrary
//     interleavings.
//
// # Quick start
//
//	st := gasstation.New()
//
//	diesel, _ := pump.New(fuel.Diesel, 500)
//	st.AddPump(diesel)
//	st.SetPrice(fuel.Diesel, 1.15)
//
//	charge, err := st.Purchase(ctx, fuel.Diesel, 40, 1.20)
//	switch {
//	case errors.Is(err, gasstation.ErrTooExpensive):
//		// price above ceiling at request or commit time
//	case errors.Is(err, gasstation.ErrNoStock):
//		// no single pump holds 40 litres of diesel
//	default:
//		fmt.Printf("paid %.2f\n", charge)
//	}
//
// # Blocking behavior
//
// A purchase that cannot be satisfied by any pump of its grade, busy or
// free, fails immediately with ErrNoStock. A purchase that only has to wait
// for a busy pump, or for its turn behind earlier buyers of the same grade,
// blocks until stock is released or added. Context cancellation and
// deadlines are honored while waiting; once a sale commits, the dispense
// runs to completion.
//
// # Observability
//
// Structured logging goes through a slog-backed Logger (disabled by
// default); operational counters can be exported by plugging a
// MetricsCollector via WithMetricsCollector.
package gasstation
