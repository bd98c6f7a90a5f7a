// Package engine implements the station's allocation core: a shared pump
// pool, per-grade FIFO arbitration, and transactional purchase accounting.
//
// All pool state (pump list, occupied set, fairness queues, counters,
// revenue) lives behind one mutex. Purchases that cannot be granted park on
// a condition variable paired with that mutex; releases, pump additions and
// price changes broadcast, and every woken purchase re-evaluates its own
// stock and turn conditions, so spurious wakeups are harmless and no wakeup
// can be missed (a waiter enrolls in its grade's fairness queue before it
// parks).
//
// The price table is read through at commit time, never cached: a purchase
// queued at one price commits at whatever the price is when its turn comes,
// and aborts if that now exceeds its ceiling.
//
// Accounting is atomic with the grant decision. Sale and cancellation
// counters and the revenue accumulator are only touched under the pool
// mutex, in the same critical section that classifies the outcome, so a
// concurrent reader can never observe a sale without its revenue.
//
// Dispensing is the one potentially slow step and runs outside the mutex.
// Exclusive occupancy of the granted pump makes that safe: stock was
// verified under the mutex, and only the occupant draws from the pump until
// it is released.
package engine
