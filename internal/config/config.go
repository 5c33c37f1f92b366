// Package config exposes strongly typed application configuration structs loaded from YAML.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// App captures process-wide runtime settings such as logging level and the metrics listener.
type App struct {
	LogLevel    string `yaml:"log_level"`
	MetricsAddr string `yaml:"metrics_addr"`
}

// Bridge configures the HTTP bridge that re-exposes the SEC data service to local consumers.
type Bridge struct {
	Addr      string `yaml:"addr"`
	Upstream  string `yaml:"upstream"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

// Replay configures the websocket server that streams recorded snapshot documents.
type Replay struct {
	Addr  string  `yaml:"addr"`
	File  string  `yaml:"file"`
	Speed float64 `yaml:"speed"`
}

// Config collects every configuration leaf for easy marshaling from YAML.
type Config struct {
	App       App       `yaml:"app"`
	Generator Generator `yaml:"generator"`
	Bridge    Bridge    `yaml:"bridge"`
	Replay    Replay    `yaml:"replay"`
}

// Default returns the configuration used when no file or only a partial file is supplied.
func Default() Config {
	gen, _ := Preset(PresetSmall)
	return Config{
		App:       App{LogLevel: "info", MetricsAddr: ":9101"},
		Generator: gen,
		Bridge:    Bridge{Addr: ":8765", Upstream: "http://localhost:8000", TimeoutMs: 10000},
		Replay:    Replay{Addr: ":8090", File: gen.Output, Speed: 1},
	}
}

// Load reads a YAML file from disk and hydrates a Config struct. A generator
// section naming a known preset overlays the file's keys onto that preset's
// defaults; all other missing keys keep the package defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}

	// First pass pulls just enough of the generator section to pick the
	// overlay base and to see which duration unit the file itself sets.
	var peek struct {
		Generator struct {
			Preset          string   `yaml:"preset"`
			DurationMinutes *float64 `yaml:"duration_minutes"`
			DurationHours   *float64 `yaml:"duration_hours"`
		} `yaml:"generator"`
	}
	if err := yaml.Unmarshal(data, &peek); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}

	config := Default()
	if base, err := Preset(peek.Generator.Preset); err == nil {
		config.Generator = base
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}

	// A file naming exactly one duration unit replaces the preset's unit
	// instead of stacking a second one next to it.
	if peek.Generator.DurationMinutes != nil && peek.Generator.DurationHours == nil {
		config.Generator.DurationHours = 0
	}
	if peek.Generator.DurationHours != nil && peek.Generator.DurationMinutes == nil {
		config.Generator.DurationMinutes = 0
	}
	return &config, nil
}

// Save persists a Config struct to disk as YAML.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Validate checks the bridge section.
func (b Bridge) Validate() error {
	var problems []string
	if b.Addr == "" {
		problems = append(problems, "addr is required")
	}
	if b.Upstream == "" {
		problems = append(problems, "upstream is required")
	}
	if b.TimeoutMs < 0 {
		problems = append(problems, "timeout_ms must not be negative")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid bridge config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Validate checks the replay section.
func (r Replay) Validate() error {
	var problems []string
	if r.Addr == "" {
		problems = append(problems, "addr is required")
	}
	if r.File == "" {
		problems = append(problems, "file is required")
	}
	if r.Speed < 0 {
		problems = append(problems, "speed must not be negative")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid replay config: %s", strings.Join(problems, "; "))
	}
	return nil
}
