// Package api serves the operational endpoints of the bot: Prometheus
// metrics and a JSON health report.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/mediaindex/mediaindex-bot/common/cache"
	"github.com/mediaindex/mediaindex-bot/database"
	"github.com/mediaindex/mediaindex-bot/poster"
	"github.com/mediaindex/mediaindex-bot/search"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	mongo   *database.Gateway
	cache   *cache.Cache
	search  *search.Service
	posters *poster.Service
}

func New(mongo *database.Gateway, kv *cache.Cache, s *search.Service, posters *poster.Service) *Server {
	return &Server{mongo: mongo, cache: kv, search: s, posters: posters}
}

func (s *Server) Routes(logger *log.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(loggingMiddleware(logger))
	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	return r
}

// Serve listens on port until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, port int) error {
	logger := log.FromContext(ctx).WithPrefix("api")
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.Routes(logger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting ops server", "port", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown ops server: %w", err)
	}
	logger.Info("Ops server stopped")
	return nil
}
