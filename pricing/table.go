// Package pricing holds the per-grade unit prices of a station.
//
// The table is deliberately independent of allocation state: prices may be
// read and rewritten at any time, including while purchases are queued. The
// engine re-reads the table at commit time, so the only visibility
// requirement is that a write is observed by the next commit.
package pricing

import (
	"sync"

	"github.com/dT3nGu/gasstation-assessment/fuel"
)

// Table maps each fuel grade to its current unit price.
//
// All grades start at price 0 until explicitly set. Last write wins. Safe for
// concurrent use.
type Table struct {
	mu       sync.RWMutex
	perLitre [fuel.MaxTypes]float64
}

// New returns a table with every grade priced at 0.
func New() *Table {
	return &Table{}
}

// Set overwrites the unit price for a grade, effective immediately for any
// subsequent read, including commit-time re-checks of already queued
// purchases.
func (t *Table) Set(ft fuel.Type, price float64) {
	t.mu.Lock()
	t.perLitre[ft] = price
	t.mu.Unlock()
}

// Get returns the current unit price for a grade.
func (t *Table) Get(ft fuel.Type) float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.perLitre[ft]
}
