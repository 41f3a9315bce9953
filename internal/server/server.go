package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"

	"trading-tools/internal/charts"
	"trading-tools/internal/interfaces"
	"trading-tools/internal/logger"
	"trading-tools/internal/store"
)

// Server is the dashboard's HTTP presentation layer. It owns no data:
// every request re-parses the statement through the record source and
// serializes what the analytics layer computes.
type Server struct {
	cfg      *store.Config
	source   interfaces.RecordSource
	fetcher  interfaces.StatementFetcher
	analyzer interfaces.Summarizer
	renderer *charts.Renderer

	httpServer *http.Server
}

func New(cfg *store.Config, source interfaces.RecordSource, fetcher interfaces.StatementFetcher, analyzer interfaces.Summarizer, renderer *charts.Renderer) *Server {
	s := &Server{
		cfg:      cfg,
		source:   source,
		fetcher:  fetcher,
		analyzer: analyzer,
		renderer: renderer,
	}
	s.httpServer = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      s.Router(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}
	return s
}

// Router assembles the chi route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/", s.handleDashboard)

	staticDir := http.Dir(s.cfg.Data.StaticDir)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(staticDir)))

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Get("/summary", s.handleSummary)
		r.Get("/trades", s.handleTrades)
		r.Get("/analysis", s.handleAnalysis)
		r.Get("/charts/profit", s.handleProfitChart)
		r.Get("/charts/volume", s.handleVolumeChart)
		r.Get("/health", s.handleHealth)
		r.Post("/refresh", s.handleRefresh)
	})

	return r
}

// ListenAndServe runs the server until ctx is cancelled, then drains
// in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		logger.Info(ctx, "Dashboard listening", "addr", s.httpServer.Addr)
		errc <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info(shutdownCtx, "Shutting down dashboard")
		return s.httpServer.Shutdown(shutdownCtx)
	}
}

// requestLogger logs each request through the shared structured logger.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		logger.Info(r.Context(), "HTTP request",
			"request_id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
