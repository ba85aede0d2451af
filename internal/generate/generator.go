// Package generate samples the reference and transaction tables a dataset
// starts from. One seed reproduces every table as long as the generators are
// called in the same order.
package generate

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/synthbooks/internal/model"
)

// Counts sets how many rows each generator produces.
type Counts struct {
	Clients        int
	Products       int
	Assets         int
	BankAccounts   int
	Sales          int
	Purchases      int
	ExtraMovements int
}

// DefaultCounts returns the standard dataset size.
func DefaultCounts() Counts {
	return Counts{
		Clients:        100,
		Products:       50,
		Assets:         30,
		BankAccounts:   5,
		Sales:          1000,
		Purchases:      500,
		ExtraMovements: 200,
	}
}

// Generator owns the random source and the horizon dates are drawn from.
// It is not safe for concurrent use.
type Generator struct {
	rng     *rand.Rand
	horizon model.Horizon
}

// New returns a Generator seeded with seed.
func New(seed int64, h model.Horizon) *Generator {
	return &Generator{
		rng:     rand.New(rand.NewPCG(uint64(seed), 0)),
		horizon: h,
	}
}

// Horizon returns the date range the generator samples from.
func (g *Generator) Horizon() model.Horizon {
	return g.horizon
}

// between returns an int in [lo, hi).
func (g *Generator) between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + g.rng.IntN(hi-lo)
}

// uniform returns a float in [lo, hi).
func (g *Generator) uniform(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}

// amount returns a uniform money amount in [lo, hi) rounded to cents.
func (g *Generator) amount(lo, hi float64) decimal.Decimal {
	return decimal.NewFromFloat(g.uniform(lo, hi)).Round(2)
}

// date returns a day in [start, end) of the horizon, or the start for a
// one-day horizon.
func (g *Generator) date() time.Time {
	return g.horizon.Start.AddDate(0, 0, g.between(0, g.horizon.Days()-1))
}

// capped returns d shifted by days, not past the horizon end.
func (g *Generator) capped(d time.Time, days int) time.Time {
	out := d.AddDate(0, 0, days)
	if out.After(g.horizon.End) {
		return g.horizon.End
	}
	return out
}

// weighted picks an index with probability proportional to weights.
func (g *Generator) weighted(weights []float64) int {
	var total float64
	for _, w := range weights {
		total += w
	}
	x := g.rng.Float64() * total
	for i, w := range weights {
		if x < w {
			return i
		}
		x -= w
	}
	return len(weights) - 1
}

func pick[T any](g *Generator, xs []T) T {
	return xs[g.rng.IntN(len(xs))]
}

// modelCode returns a short model code such as "K417".
func (g *Generator) modelCode() string {
	return fmt.Sprintf("%c%d", 'A'+rune(g.rng.IntN(26)), g.between(100, 1000))
}
