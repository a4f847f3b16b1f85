package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"wanderplan/internal/config"
	"wanderplan/internal/metrics"
	"wanderplan/internal/service"
)

// HTTPServer exposes the planner over a JSON REST API.
type HTTPServer struct {
	cfg       config.APIConfig
	exportDir string

	trips      *service.TripService
	activities *service.ActivityService
	plans      *service.PlanService
	extras     *service.ExtrasService
	transfer   *service.TransferService

	logger *zerolog.Logger
	server *http.Server
	auth   *HTTPAuth
}

type Services struct {
	Trips      *service.TripService
	Activities *service.ActivityService
	Plans      *service.PlanService
	Extras     *service.ExtrasService
	Transfer   *service.TransferService
}

func NewHTTPServer(cfg config.APIConfig, exportDir string, svcs Services, logger *zerolog.Logger) *HTTPServer {
	srv := &HTTPServer{
		cfg:        cfg,
		exportDir:  exportDir,
		trips:      svcs.Trips,
		activities: svcs.Activities,
		plans:      svcs.Plans,
		extras:     svcs.Extras,
		transfer:   svcs.Transfer,
		logger:     logger,
	}
	srv.auth = NewHTTPAuth(cfg)

	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("/import", srv.handleImportEcho)
	mux.HandleFunc("/export", srv.handleExportDownload)

	mux.HandleFunc("/api/v1/trip", srv.handleTrip)
	mux.HandleFunc("/api/v1/trip/summary", srv.handleSummary)
	mux.HandleFunc("/api/v1/trip/selected-day", srv.handleSelectedDay)
	mux.HandleFunc("/api/v1/activities", srv.handleActivities)
	mux.HandleFunc("/api/v1/activities/", srv.handleActivityByID)
	mux.HandleFunc("/api/v1/days/", srv.handleDays)
	mux.HandleFunc("/api/v1/flights", srv.handleFlights)
	mux.HandleFunc("/api/v1/flights/", srv.handleFlightByID)
	mux.HandleFunc("/api/v1/stays", srv.handleStays)
	mux.HandleFunc("/api/v1/stays/", srv.handleStayByID)
	mux.HandleFunc("/api/v1/expenses", srv.handleExpenses)
	mux.HandleFunc("/api/v1/expenses/", srv.handleExpenseByID)
	mux.HandleFunc("/api/v1/todos", srv.handleTodos)
	mux.HandleFunc("/api/v1/todos/", srv.handleTodoByID)
	mux.HandleFunc("/api/v1/transfer/export", srv.handleTransferExport)
	mux.HandleFunc("/api/v1/transfer/import", srv.handleTransferImport)

	handler := srv.loggingMiddleware(corsMiddleware(srv.auth.Wrap(mux)))

	srv.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	return srv
}

func (s *HTTPServer) Start() error {
	if s.server == nil {
		return fmt.Errorf("http server is not initialized")
	}
	s.logger.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Handler returns the fully wrapped handler, for tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.server.Handler
}

func (s *HTTPServer) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		dur := time.Since(start)

		metrics.IncHTTP(endpointLabel(r.URL.Path))
		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", recorder.status).
			Dur("duration", dur).
			Msg("http request")
	})
}

// endpointLabel collapses path segments that carry identifiers so the
// per-endpoint counter keeps a bounded label set.
func endpointLabel(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	for i, p := range parts {
		if p == "" {
			continue
		}
		if isIdentifier(p) {
			parts[i] = ":id"
		}
	}
	return "/" + strings.Join(parts, "/")
}

func isIdentifier(segment string) bool {
	for _, r := range segment {
		if r >= '0' && r <= '9' {
			continue
		}
		if (r >= 'a' && r <= 'f') || r == '-' {
			continue
		}
		return false
	}
	// Named routes like "export" never consist solely of hex runes.
	return strings.ContainsAny(segment, "0123456789-")
}

// corsMiddleware lets the browser client call the API from another
// origin and short-circuits preflight requests before auth runs.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Api-Key")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
