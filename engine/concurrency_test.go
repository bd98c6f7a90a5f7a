package engine

import (
	"context"
	"errors"
	"math"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/dT3nGu/gasstation-assessment/fuel"
)

// TestAccountingInvariants hammers the engine with a mix of buyers whose
// terminal outcomes are known in advance, then checks that the counters and
// revenue match the observed outcomes exactly.
func TestAccountingInvariants(t *testing.T) {
	ctx := context.Background()

	e := New()
	initial := map[fuel.Type]float64{}
	add := func(ft fuel.Type, litres float64) {
		e.AddPump(newPump(t, ft, litres))
		initial[ft] += litres
	}
	add(fuel.Diesel, 300)
	add(fuel.Diesel, 300)
	add(fuel.Regular, 250)
	add(fuel.Super, 200)

	prices := map[fuel.Type]float64{
		fuel.Diesel:  1.0,
		fuel.Regular: 1.2,
		fuel.Super:   1.4,
	}
	for ft, p := range prices {
		e.SetPrice(ft, p)
	}

	var (
		sold         atomic.Int64
		tooExpensive atomic.Int64
		noStock      atomic.Int64

		mu          sync.Mutex
		chargeSum   float64
		litresDrawn = map[fuel.Type]float64{}
	)

	var g errgroup.Group
	grades := fuel.Types()

	// Buyers that must succeed: total demand per grade stays well below
	// any single pump's stock.
	for i := 0; i < 24; i++ {
		ft := grades[i%len(grades)]
		g.Go(func() error {
			charge, err := e.Purchase(ctx, ft, 5, 10.0)
			if err != nil {
				return err
			}
			sold.Add(1)
			mu.Lock()
			chargeSum += charge
			litresDrawn[ft] += 5
			mu.Unlock()
			return nil
		})
	}

	// Buyers priced out from the start.
	for i := 0; i < 6; i++ {
		ft := grades[i%len(grades)]
		g.Go(func() error {
			_, err := e.Purchase(ctx, ft, 5, 0.5)
			if !errors.Is(err, ErrTooExpensive) {
				return err
			}
			tooExpensive.Add(1)
			return nil
		})
	}

	// Buyers asking for more than any pump holds.
	for i := 0; i < 6; i++ {
		ft := grades[i%len(grades)]
		g.Go(func() error {
			_, err := e.Purchase(ctx, ft, 1000, 10.0)
			if !errors.Is(err, ErrNoStock) {
				return err
			}
			noStock.Add(1)
			return nil
		})
	}

	require.NoError(t, g.Wait())

	stats := e.Stats()
	require.Equal(t, uint64(sold.Load()), stats.Sales)
	require.Equal(t, uint64(tooExpensive.Load()), stats.CancellationsTooExpensive)
	require.Equal(t, uint64(noStock.Load()), stats.CancellationsNoStock)
	require.InDelta(t, chargeSum, stats.Revenue, 1e-6,
		"revenue must equal the sum of returned charges")

	// Conservation: per grade, what left the pumps is what was bought.
	remaining := map[fuel.Type]float64{}
	for _, snap := range e.Snapshots() {
		remaining[snap.Fuel] += snap.Remaining
	}
	for _, ft := range grades {
		require.InDelta(t, initial[ft]-litresDrawn[ft], remaining[ft], 1e-6,
			"grade %s stock drifted", ft)
	}
}

// TestStatsAreAtomic reads Stats concurrently with purchases of identical
// value and checks that no snapshot ever shows a sale without its revenue.
func TestStatsAreAtomic(t *testing.T) {
	ctx := context.Background()

	e := New()
	e.AddPump(newPump(t, fuel.Diesel, 10000))
	e.AddPump(newPump(t, fuel.Diesel, 10000))
	e.SetPrice(fuel.Diesel, 1.0)

	const (
		buyers    = 8
		perBuyer  = 25
		saleValue = 10.0 // 10 litres at 1.0, exactly representable
	)

	done := make(chan struct{})
	var g errgroup.Group
	for i := 0; i < buyers; i++ {
		g.Go(func() error {
			for j := 0; j < perBuyer; j++ {
				if _, err := e.Purchase(ctx, fuel.Diesel, 10, 2.0); err != nil {
					return err
				}
			}
			return nil
		})
	}
	go func() {
		defer close(done)
		if err := g.Wait(); err != nil {
			t.Errorf("buyer failed: %v", err)
		}
	}()

	for {
		stats := e.Stats()
		want := float64(stats.Sales) * saleValue
		if stats.Revenue != want {
			t.Fatalf("inconsistent snapshot: %d sales but revenue %v (want %v)",
				stats.Sales, stats.Revenue, want)
		}
		select {
		case <-done:
			final := e.Stats()
			require.Equal(t, uint64(buyers*perBuyer), final.Sales)
			require.Equal(t, float64(buyers*perBuyer)*saleValue, final.Revenue)
			return
		default:
			time.Sleep(100 * time.Microsecond)
		}
	}
}

// TestNoOverdrawUnderContention checks that pumps never go negative and the
// pool never dispenses more than it ever held, even when demand exceeds
// supply and some buyers are rejected mid-run.
func TestNoOverdrawUnderContention(t *testing.T) {
	ctx := context.Background()

	e := New()
	e.AddPump(newPump(t, fuel.Super, 100))
	e.AddPump(newPump(t, fuel.Super, 100))
	e.SetPrice(fuel.Super, 1.0)

	var g errgroup.Group
	var sold atomic.Int64
	for i := 0; i < 40; i++ {
		g.Go(func() error {
			_, err := e.Purchase(ctx, fuel.Super, 7, 5.0)
			switch {
			case err == nil:
				sold.Add(1)
				return nil
			case errors.Is(err, ErrNoStock):
				// Expected once the pool runs low.
				return nil
			default:
				return err
			}
		})
	}
	require.NoError(t, g.Wait())

	total := 0.0
	for _, snap := range e.Snapshots() {
		require.GreaterOrEqual(t, snap.Remaining, 0.0, "pump overdrawn")
		total += snap.Remaining
	}
	require.InDelta(t, 200.0-float64(sold.Load())*7, total, 1e-6)
	require.False(t, math.Signbit(total))
}
