package watch

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/birkelund/voxvault/internal/health"
	"github.com/birkelund/voxvault/internal/observe"
)

// shutdownTimeout bounds how long in-flight HTTP requests may run once
// the daemon is stopping.
const shutdownTimeout = 5 * time.Second

// Server exposes the daemon's operational endpoints: /metrics
// (Prometheus scrape of the OTel bridge), /healthz and /readyz.
type Server struct {
	addr    string
	handler http.Handler
}

// NewServer builds the operational HTTP server. checkers feed /readyz;
// pass health.PathWritable probes for the vault and drop folders.
func NewServer(addr string, metrics *observe.Metrics, checkers ...health.Checker) *Server {
	mux := http.NewServeMux()
	health.New(checkers...).Register(mux)
	mux.Handle("GET /metrics", promhttp.Handler())

	return &Server{
		addr:    addr,
		handler: observe.Middleware(metrics)(mux),
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	slog.Info("watch: http endpoint up", "addr", s.addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
