package generator

import (
	"math"

	"github.com/pattty847/Sentinel/internal/book"
)

// Levels synthesizes one side of the book around mid. Offsets widen with
// depth, sizes shrink with depth under multiplicative noise, and roughly one
// level in twenty carries an outsized resting order. The returned slice is in
// book order: bids descending by price, asks ascending.
func (g *Generator) Levels(mid float64, side book.Side) []book.Level {
	baseOffset := g.cfg.BaseSpread * side.Sign()
	levels := make([]book.Level, 0, g.cfg.NumLevels)
	for i := 0; i < g.cfg.NumLevels; i++ {
		offset := baseOffset * (1 + float64(i)*0.1)
		price := mid + mid*offset

		volume := 10.0 * (1 / (1 + float64(i)*0.2))
		volume *= 0.5 + g.rng.Float64()*1.5
		if g.rng.Float64() < 0.05 {
			volume *= 5 + g.rng.Float64()*15
		}

		levels = append(levels, book.Level{Price: roundTo(price, 2), Size: roundTo(volume, 6)})
	}
	book.SortLevels(levels, side)
	return levels
}

// roundTo rounds half away from zero at the given number of decimals.
func roundTo(v float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(v*factor) / factor
}
