package main

import (
	"flag"
	"time"

	"github.com/pattty847/Sentinel/internal/config"
	"github.com/pattty847/Sentinel/internal/document"
	"github.com/pattty847/Sentinel/internal/generator"
	"github.com/pattty847/Sentinel/internal/metrics"
	"github.com/pattty847/Sentinel/internal/util"
)

func main() {
	var (
		configPath  = flag.String("config", "internal/config/config.yaml", "path to the YAML config")
		preset      = flag.String("preset", "", "dataset preset replacing the config generator section (small or full)")
		durationMin = flag.Float64("duration-minutes", 0, "override run length in minutes")
		durationHrs = flag.Float64("duration-hours", 0, "override run length in hours")
		intervalMs  = flag.Int("interval-ms", 0, "override snapshot interval in milliseconds")
		levels      = flag.Int("levels", 0, "override levels per side")
		seed        = flag.Int64("seed", 0, "override RNG seed (0 keeps the clock-derived seed)")
		output      = flag.String("out", "", "override output path")
	)
	flag.Parse()

	log := util.NewLogger("info")

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	log = util.NewLogger(cfg.App.LogLevel)

	gen := cfg.Generator
	if *preset != "" {
		gen, err = config.Preset(*preset)
		if err != nil {
			log.Fatal().Err(err).Msg("select preset")
		}
	}
	if *durationMin > 0 {
		gen.DurationMinutes = *durationMin
		gen.DurationHours = 0
	}
	if *durationHrs > 0 {
		gen.DurationHours = *durationHrs
		gen.DurationMinutes = 0
	}
	if *intervalMs > 0 {
		gen.IntervalMs = *intervalMs
	}
	if *levels > 0 {
		gen.NumLevels = *levels
	}
	if *seed != 0 {
		gen.Seed = *seed
	}
	if *output != "" {
		gen.Output = *output
	}

	if err := gen.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid run configuration")
	}

	snapshots := generator.New(gen, log).Run(time.Now())

	doc := document.Build(gen, snapshots, time.Now())
	if err := document.Write(gen.Output, doc); err != nil {
		log.Fatal().Err(err).Msg("write document")
	}
	metrics.DocumentsTotal.WithLabelValues(gen.Preset).Inc()

	log.Info().
		Str("path", gen.Output).
		Int("snapshots", len(snapshots)).
		Msg("document written")
}
