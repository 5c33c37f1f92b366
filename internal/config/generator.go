// Package config also carries the generator-specific configuration surface.
package config

import (
	"fmt"
	"strings"

	"github.com/pattty847/Sentinel/internal/coverage"
)

// Named dataset variants understood by Preset.
const (
	PresetSmall = "small"
	PresetFull  = "full"
)

// Generator bundles every knob of one synthetic order book run.
type Generator struct {
	Preset          string               `yaml:"preset"`
	BasePrice       float64              `yaml:"base_price"`
	BaseSpread      float64              `yaml:"base_spread"`
	PriceFloor      float64              `yaml:"price_floor"`
	PriceCeiling    float64              `yaml:"price_ceiling"`
	DurationMinutes float64              `yaml:"duration_minutes,omitempty"`
	DurationHours   float64              `yaml:"duration_hours,omitempty"`
	IntervalMs      int                  `yaml:"interval_ms"`
	NumLevels       int                  `yaml:"num_levels"`
	Seed            int64                `yaml:"seed"`
	Output          string               `yaml:"output"`
	Timeframes      []coverage.Timeframe `yaml:"timeframes"`
}

// Preset returns the generator settings for a named dataset variant.
func Preset(name string) (Generator, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case PresetSmall:
		return Generator{
			Preset:          PresetSmall,
			BasePrice:       108000,
			BaseSpread:      0.01,
			PriceFloor:      100000,
			PriceCeiling:    120000,
			DurationMinutes: 5,
			IntervalMs:      100,
			NumLevels:       20,
			Output:          "logs/small_test_orderbook_data.json",
			Timeframes:      coverage.Small(),
		}, nil
	case PresetFull:
		return Generator{
			Preset:        PresetFull,
			BasePrice:     108000,
			BaseSpread:    0.01,
			PriceFloor:    100000,
			PriceCeiling:  120000,
			DurationHours: 1,
			IntervalMs:    100,
			NumLevels:     50,
			Output:        "logs/test_orderbook_data.json",
			Timeframes:    coverage.Full(),
		}, nil
	default:
		return Generator{}, fmt.Errorf("unknown preset %q (want %s or %s)", name, PresetSmall, PresetFull)
	}
}

// DurationMs returns the configured run length in milliseconds regardless of
// which unit expressed it.
func (g Generator) DurationMs() float64 {
	if g.DurationHours > 0 {
		return g.DurationHours * 60 * 60 * 1000
	}
	return g.DurationMinutes * 60 * 1000
}

// NumSnapshots is how many fixed-interval snapshots one run produces. Runs
// shorter than a single interval produce none.
func (g Generator) NumSnapshots() int {
	if g.IntervalMs < 1 {
		return 0
	}
	return int(g.DurationMs() / float64(g.IntervalMs))
}

// Validate reports every problem with the generator section at once rather
// than stopping at the first.
func (g Generator) Validate() error {
	var problems []string
	if g.BasePrice <= 0 {
		problems = append(problems, "base_price must be positive")
	}
	if g.BaseSpread <= 0 {
		problems = append(problems, "base_spread must be positive")
	}
	if g.PriceFloor >= g.PriceCeiling {
		problems = append(problems, "price_floor must be below price_ceiling")
	} else if g.BasePrice > 0 && (g.BasePrice < g.PriceFloor || g.BasePrice > g.PriceCeiling) {
		problems = append(problems, "base_price must sit inside the clamp band")
	}
	if g.IntervalMs < 1 {
		problems = append(problems, "interval_ms must be at least 1")
	}
	if g.NumLevels < 1 {
		problems = append(problems, "num_levels must be at least 1")
	}
	switch {
	case g.DurationMinutes > 0 && g.DurationHours > 0:
		problems = append(problems, "duration_minutes and duration_hours are mutually exclusive")
	case g.DurationMinutes <= 0 && g.DurationHours <= 0:
		problems = append(problems, "one of duration_minutes or duration_hours is required")
	}
	if g.Output == "" {
		problems = append(problems, "output path is required")
	}
	seen := make(map[string]bool, len(g.Timeframes))
	for i, tf := range g.Timeframes {
		switch {
		case tf.Label == "":
			problems = append(problems, fmt.Sprintf("timeframe %d: label is required", i))
		case seen[tf.Label]:
			problems = append(problems, fmt.Sprintf("timeframe %d: duplicate label %q", i, tf.Label))
		}
		seen[tf.Label] = true
		if tf.Ratio < 1 {
			problems = append(problems, fmt.Sprintf("timeframe %d: ratio must be at least 1", i))
		}
	}
	if g.IntervalMs >= 1 && g.DurationMs() > 0 && g.NumSnapshots() < 1 {
		problems = append(problems, "duration shorter than one interval produces no snapshots")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid generator config: %s", strings.Join(problems, "; "))
	}
	return nil
}
