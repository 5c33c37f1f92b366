package metrics

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

var (
	SnapshotsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "orderbook_snapshots_total", Help: "Synthetic order book snapshots generated"},
		[]string{"preset"},
	)
	DocumentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "orderbook_documents_total", Help: "Snapshot documents written to disk"},
		[]string{"preset"},
	)
	ReplayFramesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "replay_frames_total", Help: "Snapshots streamed out to replay clients"},
		[]string{"symbol"},
	)
	SecRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "sec_requests_total", Help: "SEC bridge requests served"},
		[]string{"endpoint","outcome"},
	)
)

func init() {
	prometheus.MustRegister(SnapshotsTotal, DocumentsTotal, ReplayFramesTotal, SecRequestsTotal)
}

func Serve(addr string, log zerolog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{ Addr: addr, Handler: mux }
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Str("addr", addr).Msg("metrics listener failed")
		}
	}()
	return srv
}
