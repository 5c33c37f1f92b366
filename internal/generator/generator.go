package generator

import (
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/pattty847/Sentinel/internal/book"
	"github.com/pattty847/Sentinel/internal/config"
	"github.com/pattty847/Sentinel/internal/metrics"
)

// Generator assembles fixed-interval order book snapshots from the price
// process and the level synthesizer.
type Generator struct {
	cfg   config.Generator
	rng   *rand.Rand
	price *PriceProcess
	log   zerolog.Logger
}

// New builds a generator from cfg. A zero seed is replaced with the current
// clock so unrelated runs produce distinct series; any other value makes the
// whole run reproducible.
func New(cfg config.Generator, log zerolog.Logger) *Generator {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	return &Generator{
		cfg:   cfg,
		rng:   rng,
		price: NewPriceProcess(cfg.BasePrice, cfg.PriceFloor, cfg.PriceCeiling, rng),
		log:   log.With().Str("component", "generator").Logger(),
	}
}

// Snapshot advances the price one tick and assembles the full book at
// timestamp ts (unix milliseconds). The spread is taken from the sorted,
// rounded tops while the mid keeps full precision.
func (g *Generator) Snapshot(ts int64) book.Snapshot {
	mid := g.price.Step()
	bids := g.Levels(mid, book.Bid)
	asks := g.Levels(mid, book.Ask)
	return book.Snapshot{
		Timestamp: ts,
		Symbol:    book.Symbol,
		Bids:      bids,
		Asks:      asks,
		MidPrice:  mid,
		Spread:    asks[0].Price - bids[0].Price,
	}
}

// Run produces the entire series, stamping timestamps at the configured
// interval starting from start.
func (g *Generator) Run(start time.Time) []book.Snapshot {
	n := g.cfg.NumSnapshots()
	interval := int64(g.cfg.IntervalMs)
	base := start.UnixMilli()

	g.log.Info().
		Int("snapshots", n).
		Int("levels", g.cfg.NumLevels).
		Int("interval_ms", g.cfg.IntervalMs).
		Msg("generating series")

	out := make([]book.Snapshot, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, g.Snapshot(base+int64(i)*interval))
		metrics.SnapshotsTotal.WithLabelValues(g.cfg.Preset).Inc()
		if i%1000 == 0 {
			g.log.Debug().Int("generated", i).Int("total", n).Msg("progress")
		}
	}

	g.log.Info().Int("snapshots", len(out)).Msg("series complete")
	return out
}
