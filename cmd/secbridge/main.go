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

	"github.com/joho/godotenv"

	"github.com/pattty847/Sentinel/internal/config"
	"github.com/pattty847/Sentinel/internal/metrics"
	"github.com/pattty847/Sentinel/internal/sec"
	"github.com/pattty847/Sentinel/internal/util"
)

func main() {
	configPath := flag.String("config", "internal/config/config.yaml", "path to the YAML config")
	flag.Parse()

	_ = godotenv.Load() // best-effort

	log := util.NewLogger("info")

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	log = util.NewLogger(cfg.App.LogLevel)

	bc := cfg.Bridge
	if port := os.Getenv("SEC_SERVICE_PORT"); port != "" {
		bc.Addr = ":" + port
	}
	bc.Upstream = util.Getenv("SEC_UPSTREAM_URL", bc.Upstream)
	if err := bc.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid bridge configuration")
	}

	_ = metrics.Serve(cfg.App.MetricsAddr, log)
	log.Info().Str("addr", cfg.App.MetricsAddr).Msg("metrics up")

	client := sec.NewClient(bc.Upstream, time.Duration(bc.TimeoutMs)*time.Millisecond, log)
	srv := &http.Server{
		Addr:         bc.Addr,
		Handler:      sec.NewServer(client, log).Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go func() {
		log.Info().Str("addr", bc.Addr).Str("upstream", bc.Upstream).Msg("sec bridge up")
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
