// Package book standardizes order book payloads shared between the generator, replay, and serialization layers.
package book

import (
	"fmt"
	"sort"
)

// Symbol is the only instrument the synthetic feed produces.
const Symbol = "BTC-USD"

// Side identifies which half of the book a set of levels belongs to.
type Side string

const (
	Bid Side = "bid"
	Ask Side = "ask"
)

// Sign returns the offset direction applied when placing levels around the mid price:
// +1 for bids, -1 for asks.
func (s Side) Sign() float64 {
	if s == Bid {
		return 1
	}
	return -1
}

// Level is a single resting price point in the book.
type Level struct {
	Price float64 `json:"price"`
	Size  float64 `json:"size"`
}

// Snapshot is one complete picture of the book at a point in time.
type Snapshot struct {
	Timestamp int64   `json:"timestamp"`
	Symbol    string  `json:"symbol"`
	Bids      []Level `json:"bids"`
	Asks      []Level `json:"asks"`
	MidPrice  float64 `json:"mid_price"`
	Spread    float64 `json:"spread"`
}

// SortLevels orders levels in book order: bids descending by price, asks ascending.
// The sort is stable so levels sharing a price keep their generation order.
func SortLevels(levels []Level, side Side) {
	if side == Bid {
		sort.SliceStable(levels, func(i, j int) bool { return levels[i].Price > levels[j].Price })
		return
	}
	sort.SliceStable(levels, func(i, j int) bool { return levels[i].Price < levels[j].Price })
}

// Validate checks the structural soundness of a snapshot: both sides carry
// exactly levels entries, each side is in book order, and the recorded spread
// matches the top of book.
func (s Snapshot) Validate(levels int) error {
	if s.Symbol == "" {
		return fmt.Errorf("snapshot missing symbol")
	}
	if len(s.Bids) != levels {
		return fmt.Errorf("bids: have %d levels, want %d", len(s.Bids), levels)
	}
	if len(s.Asks) != levels {
		return fmt.Errorf("asks: have %d levels, want %d", len(s.Asks), levels)
	}
	for i := 1; i < len(s.Bids); i++ {
		if s.Bids[i].Price > s.Bids[i-1].Price {
			return fmt.Errorf("bids out of order at index %d: %v after %v", i, s.Bids[i].Price, s.Bids[i-1].Price)
		}
	}
	for i := 1; i < len(s.Asks); i++ {
		if s.Asks[i].Price < s.Asks[i-1].Price {
			return fmt.Errorf("asks out of order at index %d: %v after %v", i, s.Asks[i].Price, s.Asks[i-1].Price)
		}
	}
	if len(s.Bids) > 0 && len(s.Asks) > 0 {
		if top := s.Asks[0].Price - s.Bids[0].Price; top != s.Spread {
			return fmt.Errorf("spread %v does not match top of book %v", s.Spread, top)
		}
	}
	return nil
}
