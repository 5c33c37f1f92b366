package sec

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/pattty847/Sentinel/internal/metrics"
)

// Server re-exposes a Fetcher over the REST surface the desktop client
// expects: a status root plus three read-only data endpoints. Failures map to
// a {"detail": ...} body the way the legacy bridge reported them.
type Server struct {
	fetcher Fetcher
	log     zerolog.Logger
}

// NewServer wires the handlers around fetcher.
func NewServer(fetcher Fetcher, log zerolog.Logger) *Server {
	return &Server{
		fetcher: fetcher,
		log:     log.With().Str("component", "sec_bridge").Logger(),
	}
}

// Router assembles the bridge routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Use(allowAllOrigins)

	r.Get("/", s.handleStatus)
	r.Get("/api/filings", s.handleFilings)
	r.Get("/api/insider-transactions", s.handleTransactions)
	r.Get("/api/financial-summary", s.handleSummary)
	return r
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.sendJSON(w, http.StatusOK, map[string]string{"status": "running", "service": "SEC Data Service"})
}

func (s *Server) handleFilings(w http.ResponseWriter, r *http.Request) {
	ticker, ok := s.requireTicker(w, r)
	if !ok {
		return
	}
	formType := r.URL.Query().Get("form_type")

	filings, err := s.fetcher.FilingsByForm(r.Context(), ticker, formType)
	if err != nil {
		s.fail(w, "filings", ticker, err)
		return
	}
	if filings == nil {
		filings = []Filing{}
	}
	metrics.SecRequestsTotal.WithLabelValues("filings", "ok").Inc()

	var form *string
	if formType != "" {
		form = &formType
	}
	s.sendJSON(w, http.StatusOK, struct {
		Ticker   string   `json:"ticker"`
		FormType *string  `json:"form_type"`
		Filings  []Filing `json:"filings"`
	}{Ticker: ticker, FormType: form, Filings: filings})
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	ticker, ok := s.requireTicker(w, r)
	if !ok {
		return
	}
	transactions, err := s.fetcher.InsiderTransactions(r.Context(), ticker)
	if err != nil {
		s.fail(w, "transactions", ticker, err)
		return
	}
	if transactions == nil {
		transactions = []Transaction{}
	}
	metrics.SecRequestsTotal.WithLabelValues("transactions", "ok").Inc()

	s.sendJSON(w, http.StatusOK, struct {
		Ticker       string        `json:"ticker"`
		Transactions []Transaction `json:"transactions"`
	}{Ticker: ticker, Transactions: transactions})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	ticker, ok := s.requireTicker(w, r)
	if !ok {
		return
	}
	summary, err := s.fetcher.FinancialSummary(r.Context(), ticker)
	if err != nil {
		s.fail(w, "summary", ticker, err)
		return
	}
	if summary == nil {
		summary = Summary{}
	}
	metrics.SecRequestsTotal.WithLabelValues("summary", "ok").Inc()

	s.sendJSON(w, http.StatusOK, struct {
		Ticker  string  `json:"ticker"`
		Summary Summary `json:"summary"`
	}{Ticker: ticker, Summary: summary})
}

func (s *Server) requireTicker(w http.ResponseWriter, r *http.Request) (string, bool) {
	ticker := strings.TrimSpace(r.URL.Query().Get("ticker"))
	if ticker == "" {
		s.sendError(w, http.StatusBadRequest, "ticker query parameter is required")
		return "", false
	}
	return ticker, true
}

func (s *Server) fail(w http.ResponseWriter, endpoint, ticker string, err error) {
	metrics.SecRequestsTotal.WithLabelValues(endpoint, "error").Inc()
	s.log.Error().Err(err).Str("ticker", ticker).Str("endpoint", endpoint).Msg("fetch failed")
	s.sendError(w, http.StatusInternalServerError, err.Error())
}

func (s *Server) sendJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error().Err(err).Msg("encode response")
	}
}

func (s *Server) sendError(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}

// logRequests traces every request with its latency.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

// allowAllOrigins mirrors the permissive CORS policy of the legacy bridge so
// the desktop webview can call it from any origin.
func allowAllOrigins(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
