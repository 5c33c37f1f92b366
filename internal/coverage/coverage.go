// Package coverage reports how many complete aggregation buckets a snapshot
// series can fill at each supported timeframe.
package coverage

// Timeframe pairs a human readable label with how many base-interval snapshots
// one bucket at that timeframe consumes.
type Timeframe struct {
	Label string `yaml:"label" json:"label"`
	Ratio int    `yaml:"ratio" json:"ratio"`
}

// Small lists the timeframes reported for the short dataset variant, assuming
// a 100ms base interval.
func Small() []Timeframe {
	return []Timeframe{
		{Label: "100ms", Ratio: 1},
		{Label: "500ms", Ratio: 5},
		{Label: "1sec", Ratio: 10},
		{Label: "1min", Ratio: 600},
		{Label: "5min", Ratio: 3000},
	}
}

// Full extends the small set with the longer timeframes the hour-long variant
// can populate.
func Full() []Timeframe {
	return append(Small(),
		Timeframe{Label: "15min", Ratio: 9000},
		Timeframe{Label: "60min", Ratio: 36000},
	)
}

// Counts returns the number of complete buckets per label for a series of
// numSnapshots entries. Partial buckets are discarded, and a timeframe longer
// than the whole series reports zero. When labels repeat, the last entry wins.
func Counts(numSnapshots int, frames []Timeframe) map[string]int {
	out := make(map[string]int, len(frames))
	for _, tf := range frames {
		if tf.Ratio < 1 {
			continue
		}
		out[tf.Label] = numSnapshots / tf.Ratio
	}
	return out
}
