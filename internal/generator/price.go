// Package generator produces the synthetic BTC-USD order book series.
package generator

import "math/rand"

// PriceProcess evolves the mid price as a random walk with a slowly decaying
// drift term, hard-clamped to a configured band.
type PriceProcess struct {
	price   float64
	trend   float64
	floor   float64
	ceiling float64
	rng     *rand.Rand
}

// NewPriceProcess starts a walk at base, bounded to [floor, ceiling].
func NewPriceProcess(base, floor, ceiling float64, rng *rand.Rand) *PriceProcess {
	return &PriceProcess{price: base, floor: floor, ceiling: ceiling, rng: rng}
}

// Step advances the walk one tick and returns the new mid price. The drift
// keeps 99% of its previous value plus fresh gaussian noise, so directional
// moves persist for a while before washing out.
func (p *PriceProcess) Step() float64 {
	p.trend = p.trend*0.99 + p.rng.NormFloat64()*0.0001
	change := p.trend + p.rng.NormFloat64()*0.0001
	p.price = clamp(p.price*(1+change), p.floor, p.ceiling)
	return p.price
}

// Price returns the current mid without advancing the walk.
func (p *PriceProcess) Price() float64 { return p.price }

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
