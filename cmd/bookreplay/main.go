package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pattty847/Sentinel/internal/config"
	"github.com/pattty847/Sentinel/internal/document"
	"github.com/pattty847/Sentinel/internal/metrics"
	"github.com/pattty847/Sentinel/internal/replay"
	"github.com/pattty847/Sentinel/internal/util"
)

func main() {
	var (
		configPath = flag.String("config", "internal/config/config.yaml", "path to the YAML config")
		file       = flag.String("file", "", "document to replay (overrides config)")
		addr       = flag.String("addr", "", "listen address (overrides config)")
		speed      = flag.Float64("speed", 0, "playback speed multiplier (overrides config)")
	)
	flag.Parse()

	log := util.NewLogger("info")

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	log = util.NewLogger(cfg.App.LogLevel)

	rc := cfg.Replay
	if *file != "" {
		rc.File = *file
	}
	if *addr != "" {
		rc.Addr = *addr
	}
	if *speed > 0 {
		rc.Speed = *speed
	}
	if err := rc.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid replay configuration")
	}

	doc, err := document.Load(rc.File)
	if err != nil {
		log.Fatal().Err(err).Msg("load document")
	}

	_ = metrics.Serve(cfg.App.MetricsAddr, log)
	log.Info().Str("addr", cfg.App.MetricsAddr).Msg("metrics up")

	mux := http.NewServeMux()
	mux.Handle("/ws", replay.NewStreamer(doc, rc.Speed, log).Handler())
	srv := &http.Server{Addr: rc.Addr, Handler: mux}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go func() {
		log.Info().
			Str("addr", rc.Addr).
			Str("file", rc.File).
			Int("snapshots", doc.Metadata.NumSnapshots).
			Msg("replay server up")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
}
