// Package api implements the HTTP control surface from spec section 6: a
// small net/http server for managing the watchlist and reading back cached
// fair values. Grounded on original_source's api/app.py (add_ticker,
// get_cached_tickers, get_cached_options_for_ticker) and built with plain
// net/http, matching the teacher's own preference for the standard library
// over a router dependency everywhere it talks HTTP.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/hmac213/pde-pricer/pkg/cache"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Watchlist is the set of tickers the control surface can add to and list.
// cmd/pricer's PollLoop polls the tickers configured at startup; a ticker
// added through POST /tickers is listed by GET /tickers but is not polled.
type Watchlist interface {
	Add(ticker string)
	List() []string
}

// Server is the HTTP control surface. It never reaches into the core
// pricing engine directly; it only mutates the watchlist and reads the
// result cache a Processor callback writes into.
type Server struct {
	Watchlist Watchlist
	Cache     *cache.ResultCache
	Logger    *slog.Logger

	mux *http.ServeMux
}

// NewServer builds a Server with all routes registered.
func NewServer(watchlist Watchlist, resultCache *cache.ResultCache, logger *slog.Logger) *Server {
	s := &Server{Watchlist: watchlist, Cache: resultCache, Logger: logger}
	s.mux = http.NewServeMux()
	s.mux.HandleFunc("/healthz", s.handleHealthz)
	s.mux.HandleFunc("/tickers", s.handleTickers)
	s.mux.HandleFunc("/options", s.handleOptions)
	s.mux.Handle("/metrics", promhttp.Handler())
	return s
}

// ServeHTTP implements http.Handler, attaching a trace ID to every request
// before logging and dispatching it.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.NewString()
	if s.Logger != nil {
		s.Logger.Info("http request", "trace_id", traceID, "method", r.Method, "path", r.URL.Path)
	}
	w.Header().Set("X-Trace-Id", traceID)
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type tickerRequest struct {
	Ticker string `json:"ticker"`
}

func (s *Server) handleTickers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		var req tickerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Ticker == "" {
			http.Error(w, "ticker is required", http.StatusBadRequest)
			return
		}
		s.Watchlist.Add(req.Ticker)
		writeJSON(w, http.StatusOK, map[string]string{"message": "ticker " + req.Ticker + " added to watchlist"})
	case http.MethodGet:
		writeJSON(w, http.StatusOK, s.Watchlist.List())
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	ticker := r.URL.Query().Get("ticker")
	if ticker == "" {
		http.Error(w, "ticker query parameter is required", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, s.Cache.ForTicker(ticker))
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
