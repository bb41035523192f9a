package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"progression-engine/pkg/catalog"
	"progression-engine/pkg/engine"
	"progression-engine/pkg/metrics"
)

// Server wires the engine and catalog behind the HTTP surface.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer builds the router and returns a server listening on the given
// port once started.
func NewServer(port int, eng *engine.Engine, cat catalog.Catalog, logger *slog.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           NewRouter(eng, cat, logger),
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// NewRouter assembles the chi router. Split from NewServer so tests can mount
// the full route table on httptest servers.
func NewRouter(eng *engine.Engine, cat catalog.Catalog, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(requestLogger(logger))

	r.Get("/healthz", handleHealthz)
	r.Handle("/metrics", promhttp.Handler())

	handlers := NewHandlers(eng, cat)
	catalogHandlers := NewCatalogHandlers(cat)

	r.Route("/v1", func(r chi.Router) {
		r.Route("/players/{playerID}", func(r chi.Router) {
			r.Post("/events", handlers.HandleRecordEvent)
			r.Post("/claims", handlers.HandleClaim)
			r.Get("/progress", handlers.HandleGetProgress)
			r.Get("/progress/{definitionID}", handlers.HandleGetDefinitionProgress)
		})

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/definitions", catalogHandlers.HandleListDefinitions)
			r.Get("/definitions/{definitionID}", catalogHandlers.HandleGetDefinition)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Put("/definitions/{definitionID}", catalogHandlers.HandleUpsertDefinition)
			r.Delete("/definitions/{definitionID}", catalogHandlers.HandleDeleteDefinition)
			r.Put("/bonus-templates/{templateID}", catalogHandlers.HandleUpsertBonusTemplate)
			r.Delete("/bonus-templates/{templateID}", catalogHandlers.HandleDeleteBonusTemplate)
			r.Post("/catalog/reload", catalogHandlers.HandleReloadCatalog)
		})
	})

	return r
}

func handleHealthz(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, SuccessResponse{Message: "ok"})
}

// requestLogger logs one line per request, skipping health and metrics noise.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasPrefix(r.URL.Path, "/healthz") || strings.HasPrefix(r.URL.Path, "/metrics") {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			logger.Info("request completed",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()))
		})
	}
}

// Start starts the server and blocks until it stops.
func (s *Server) Start() error {
	s.logger.Info("HTTP server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
