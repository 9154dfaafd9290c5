package web

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/snapchef/snapchef/internal/domain"
	"github.com/snapchef/snapchef/internal/photostore"
	"github.com/snapchef/snapchef/internal/pipeline"
	"github.com/snapchef/snapchef/internal/service"
	"github.com/snapchef/snapchef/internal/store"
)

type Server struct {
	scans      *service.ScanService
	pipeline   *pipeline.Orchestrator
	tracker    *store.TrackerStore
	photoStore photostore.PhotoStore
	samples    []domain.Recipe
	mux        *http.ServeMux
	logger     *slog.Logger
}

func NewServer(scans *service.ScanService, pipe *pipeline.Orchestrator, tracker *store.TrackerStore, ps photostore.PhotoStore, samples []domain.Recipe, logger *slog.Logger) *Server {
	s := &Server{
		scans:      scans,
		pipeline:   pipe,
		tracker:    tracker,
		photoStore: ps,
		samples:    samples,
		mux:        http.NewServeMux(),
		logger:     logger,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("POST /scan", s.handleCaptureScan)
	s.mux.HandleFunc("GET /scan", s.handleScanState)
	s.mux.HandleFunc("GET /scan/events", s.handleScanEvents)
	s.mux.HandleFunc("POST /scan/reset", s.handleResetScan)
	s.mux.HandleFunc("GET /scans", s.handleListScans)
	s.mux.HandleFunc("GET /scans/{id}/photo", s.handleGetScanPhoto)
	s.mux.HandleFunc("GET /recipes/samples", s.handleSampleRecipes)
	s.mux.HandleFunc("POST /tracker/cooked", s.handleLogCooked)
	s.mux.HandleFunc("GET /tracker/stats", s.handleTrackerStats)
}

// securityHeaders adds defensive HTTP response headers to every response.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		next.ServeHTTP(w, r)
	})
}

// statusRecorder wraps http.ResponseWriter to capture the written status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestLogger(s.logger, securityHeaders(s.mux)).ServeHTTP(w, r)
}

func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("starting server", "addr", addr)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 0, // the scan event stream stays open indefinitely
		IdleTimeout:  120 * time.Second,
	}
	return srv.ListenAndServe()
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("write response failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// parseID extracts the {id} path variable and returns it as int64.
func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

// parseLimit parses a ?limit= value, clamped to a sane page size.
func parseLimit(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, errors.New("limit must be positive")
	}
	if n > 100 {
		n = 100
	}
	return n, nil
}

// closeWithLog closes c and logs any error, using label to identify the resource.
func closeWithLog(c io.Closer, label string, logger *slog.Logger) {
	if err := c.Close(); err != nil {
		logger.Error("failed to close resource", "label", label, "error", err)
	}
}
