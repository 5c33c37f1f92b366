package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pattty847/Sentinel/internal/coverage"
)

func TestLoad(t *testing.T) {
	path := filepath.Join("testdata", "config.yaml")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.App.LogLevel != "debug" {
		t.Fatalf("unexpected App.LogLevel: %s", cfg.App.LogLevel)
	}
	if cfg.App.MetricsAddr != ":9200" {
		t.Fatalf("unexpected App.MetricsAddr: %s", cfg.App.MetricsAddr)
	}
	if cfg.Generator.Preset != "custom" {
		t.Fatalf("unexpected Generator.Preset: %s", cfg.Generator.Preset)
	}
	if cfg.Generator.BasePrice != 50000 {
		t.Fatalf("unexpected Generator.BasePrice: %.2f", cfg.Generator.BasePrice)
	}
	if cfg.Generator.BaseSpread != 0.02 {
		t.Fatalf("unexpected Generator.BaseSpread: %.4f", cfg.Generator.BaseSpread)
	}
	if cfg.Generator.PriceFloor != 40000 || cfg.Generator.PriceCeiling != 60000 {
		t.Fatalf("unexpected clamp band: %.2f..%.2f", cfg.Generator.PriceFloor, cfg.Generator.PriceCeiling)
	}
	if cfg.Generator.DurationMinutes != 2 {
		t.Fatalf("unexpected Generator.DurationMinutes: %.2f", cfg.Generator.DurationMinutes)
	}
	if cfg.Generator.IntervalMs != 250 {
		t.Fatalf("unexpected Generator.IntervalMs: %d", cfg.Generator.IntervalMs)
	}
	if cfg.Generator.NumLevels != 10 {
		t.Fatalf("unexpected Generator.NumLevels: %d", cfg.Generator.NumLevels)
	}
	if cfg.Generator.Seed != 42 {
		t.Fatalf("unexpected Generator.Seed: %d", cfg.Generator.Seed)
	}
	if cfg.Generator.Output != "logs/custom_orderbook.json" {
		t.Fatalf("unexpected Generator.Output: %s", cfg.Generator.Output)
	}
	if len(cfg.Generator.Timeframes) != 2 {
		t.Fatalf("expected 2 timeframes, got %d", len(cfg.Generator.Timeframes))
	}
	if cfg.Generator.Timeframes[1].Label != "1sec" || cfg.Generator.Timeframes[1].Ratio != 4 {
		t.Fatalf("unexpected second timeframe: %+v", cfg.Generator.Timeframes[1])
	}
	if cfg.Bridge.Addr != ":8770" {
		t.Fatalf("unexpected Bridge.Addr: %s", cfg.Bridge.Addr)
	}
	if cfg.Bridge.Upstream != "http://localhost:9000" {
		t.Fatalf("unexpected Bridge.Upstream: %s", cfg.Bridge.Upstream)
	}
	if cfg.Bridge.TimeoutMs != 2500 {
		t.Fatalf("unexpected Bridge.TimeoutMs: %d", cfg.Bridge.TimeoutMs)
	}
	if cfg.Replay.Addr != ":8095" {
		t.Fatalf("unexpected Replay.Addr: %s", cfg.Replay.Addr)
	}
	if cfg.Replay.Speed != 4 {
		t.Fatalf("unexpected Replay.Speed: %.2f", cfg.Replay.Speed)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadKeepsDefaultsForAbsentKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("app:\n  log_level: warn\n"), 0o644); err != nil {
		t.Fatalf("write partial config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.App.LogLevel != "warn" {
		t.Fatalf("expected overridden log level, got %s", cfg.App.LogLevel)
	}
	if cfg.Generator.IntervalMs != 100 {
		t.Fatalf("expected default interval, got %d", cfg.Generator.IntervalMs)
	}
	if cfg.Generator.NumLevels != 20 {
		t.Fatalf("expected default levels, got %d", cfg.Generator.NumLevels)
	}
	if cfg.Bridge.Addr != ":8765" {
		t.Fatalf("expected default bridge addr, got %s", cfg.Bridge.Addr)
	}
}

func TestLoadSeedsGeneratorFromNamedPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := "generator:\n  preset: full\n  duration_hours: 1\n  num_levels: 50\n"
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	gen := cfg.Generator
	if gen.Preset != PresetFull {
		t.Fatalf("unexpected preset %q", gen.Preset)
	}
	if gen.DurationHours != 1 || gen.DurationMinutes != 0 {
		t.Fatalf("expected a pure 1 hour run, got %.2fm/%.2fh", gen.DurationMinutes, gen.DurationHours)
	}
	if gen.NumLevels != 50 {
		t.Fatalf("expected 50 levels, got %d", gen.NumLevels)
	}
	if len(gen.Timeframes) != 7 {
		t.Fatalf("expected the full timeframe set, got %d entries", len(gen.Timeframes))
	}
	if gen.Output != "logs/test_orderbook_data.json" {
		t.Fatalf("expected the full output default, got %s", gen.Output)
	}
	if err := gen.Validate(); err != nil {
		t.Fatalf("expected a valid full run, got %v", err)
	}
	if gen.NumSnapshots() != 36000 {
		t.Fatalf("expected 36000 snapshots, got %d", gen.NumSnapshots())
	}
}

func TestLoadFileDurationReplacesPresetUnit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := "generator:\n  preset: full\n  duration_minutes: 2\n"
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Generator.DurationMinutes != 2 || cfg.Generator.DurationHours != 0 {
		t.Fatalf("expected the file's 2 minute run to replace the preset hour, got %.2fm/%.2fh",
			cfg.Generator.DurationMinutes, cfg.Generator.DurationHours)
	}
	if err := cfg.Generator.Validate(); err != nil {
		t.Fatalf("expected a valid run, got %v", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := Default()
	cfg.App.LogLevel = "trace"
	cfg.Generator.Seed = 7

	if err := Save(path, &cfg); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if loaded.App.LogLevel != "trace" {
		t.Fatalf("expected trace log level after round trip, got %s", loaded.App.LogLevel)
	}
	if loaded.Generator.Seed != 7 {
		t.Fatalf("expected seed 7 after round trip, got %d", loaded.Generator.Seed)
	}
	if loaded.Generator.NumLevels != cfg.Generator.NumLevels {
		t.Fatalf("levels changed in round trip: %d vs %d", loaded.Generator.NumLevels, cfg.Generator.NumLevels)
	}
}

func TestSaveNilConfig(t *testing.T) {
	if err := Save(filepath.Join(t.TempDir(), "config.yaml"), nil); err == nil {
		t.Fatalf("expected error for nil config")
	}
}

func TestPresetSmall(t *testing.T) {
	gen, err := Preset("small")
	if err != nil {
		t.Fatalf("Preset returned error: %v", err)
	}
	if gen.BasePrice != 108000 || gen.BaseSpread != 0.01 {
		t.Fatalf("unexpected price seed: %.2f / %.4f", gen.BasePrice, gen.BaseSpread)
	}
	if gen.DurationMinutes != 5 || gen.DurationHours != 0 {
		t.Fatalf("expected 5 minute run, got %.2fm/%.2fh", gen.DurationMinutes, gen.DurationHours)
	}
	if gen.NumLevels != 20 {
		t.Fatalf("expected 20 levels, got %d", gen.NumLevels)
	}
	if gen.Output != "logs/small_test_orderbook_data.json" {
		t.Fatalf("unexpected output path: %s", gen.Output)
	}
	if len(gen.Timeframes) != 5 {
		t.Fatalf("expected 5 timeframes, got %d", len(gen.Timeframes))
	}
	if gen.NumSnapshots() != 3000 {
		t.Fatalf("expected 3000 snapshots, got %d", gen.NumSnapshots())
	}
	if err := gen.Validate(); err != nil {
		t.Fatalf("small preset should validate, got %v", err)
	}
}

func TestPresetFull(t *testing.T) {
	gen, err := Preset("FULL")
	if err != nil {
		t.Fatalf("Preset returned error: %v", err)
	}
	if gen.DurationHours != 1 || gen.DurationMinutes != 0 {
		t.Fatalf("expected 1 hour run, got %.2fm/%.2fh", gen.DurationMinutes, gen.DurationHours)
	}
	if gen.NumLevels != 50 {
		t.Fatalf("expected 50 levels, got %d", gen.NumLevels)
	}
	if gen.Output != "logs/test_orderbook_data.json" {
		t.Fatalf("unexpected output path: %s", gen.Output)
	}
	if len(gen.Timeframes) != 7 {
		t.Fatalf("expected 7 timeframes, got %d", len(gen.Timeframes))
	}
	if gen.NumSnapshots() != 36000 {
		t.Fatalf("expected 36000 snapshots, got %d", gen.NumSnapshots())
	}
	if err := gen.Validate(); err != nil {
		t.Fatalf("full preset should validate, got %v", err)
	}
}

func TestPresetUnknown(t *testing.T) {
	if _, err := Preset("medium"); err == nil {
		t.Fatalf("expected error for unknown preset")
	}
}

func TestGeneratorValidateCollectsAllProblems(t *testing.T) {
	gen := Generator{
		BasePrice:    -1,
		BaseSpread:   0,
		PriceFloor:   5,
		PriceCeiling: 1,
		IntervalMs:   0,
		NumLevels:    0,
	}
	err := gen.Validate()
	if err == nil {
		t.Fatalf("expected validation failure")
	}
	for _, want := range []string{"base_price", "base_spread", "price_floor", "interval_ms", "num_levels", "duration", "output"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in validation error, got: %v", want, err)
		}
	}
}

func TestGeneratorValidateRejectsBothDurations(t *testing.T) {
	gen, _ := Preset(PresetSmall)
	gen.DurationHours = 1
	err := gen.Validate()
	if err == nil || !strings.Contains(err.Error(), "mutually exclusive") {
		t.Fatalf("expected mutually exclusive duration error, got %v", err)
	}
}

func TestGeneratorValidateRejectsZeroSnapshotRun(t *testing.T) {
	gen, _ := Preset(PresetSmall)
	gen.DurationMinutes = 0.001
	err := gen.Validate()
	if err == nil || !strings.Contains(err.Error(), "no snapshots") {
		t.Fatalf("expected zero snapshot error, got %v", err)
	}
}

func TestGeneratorValidateRejectsBasePriceOutsideBand(t *testing.T) {
	gen, _ := Preset(PresetSmall)
	gen.BasePrice = 99999
	err := gen.Validate()
	if err == nil || !strings.Contains(err.Error(), "clamp band") {
		t.Fatalf("expected clamp band error, got %v", err)
	}
}

func TestGeneratorValidateRejectsBadTimeframe(t *testing.T) {
	gen, _ := Preset(PresetSmall)
	gen.Timeframes = append(gen.Timeframes, coverage.Timeframe{Label: "", Ratio: 0})
	err := gen.Validate()
	if err == nil || !strings.Contains(err.Error(), "timeframe") {
		t.Fatalf("expected timeframe error, got %v", err)
	}
}

func TestGeneratorValidateRejectsDuplicateTimeframeLabel(t *testing.T) {
	gen, _ := Preset(PresetSmall)
	gen.Timeframes = append(gen.Timeframes, coverage.Timeframe{Label: "1min", Ratio: 600})
	err := gen.Validate()
	if err == nil || !strings.Contains(err.Error(), "duplicate label") {
		t.Fatalf("expected duplicate label error, got %v", err)
	}
}

func TestDurationHelpers(t *testing.T) {
	gen := Generator{DurationMinutes: 5, IntervalMs: 100}
	if ms := gen.DurationMs(); ms != 300000 {
		t.Fatalf("expected 300000ms for 5 minutes, got %.0f", ms)
	}
	gen = Generator{DurationHours: 1, IntervalMs: 100}
	if ms := gen.DurationMs(); ms != 3600000 {
		t.Fatalf("expected 3600000ms for 1 hour, got %.0f", ms)
	}
	if n := gen.NumSnapshots(); n != 36000 {
		t.Fatalf("expected 36000 snapshots, got %d", n)
	}
	gen = Generator{DurationMinutes: 0.25, IntervalMs: 7}
	if n := gen.NumSnapshots(); n != 2142 {
		t.Fatalf("expected truncated snapshot count 2142, got %d", n)
	}
}

func TestBridgeValidate(t *testing.T) {
	ok := Bridge{Addr: ":8765", Upstream: "http://localhost:8000"}
	if err := ok.Validate(); err != nil {
		t.Fatalf("expected valid bridge config, got %v", err)
	}
	bad := Bridge{TimeoutMs: -1}
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected error for empty bridge config")
	}
}

func TestReplayValidate(t *testing.T) {
	ok := Replay{Addr: ":8090", File: "logs/doc.json", Speed: 2}
	if err := ok.Validate(); err != nil {
		t.Fatalf("expected valid replay config, got %v", err)
	}
	bad := Replay{Speed: -1}
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected error for empty replay config")
	}
}
