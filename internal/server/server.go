// Package server exposes the receipt scan pipeline over HTTP: a multipart
// scan endpoint, a WebSocket stream with per-stage progress, health, and
// prometheus metrics.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// New creates a server around an already-built pipeline.
func New(scanner scannerInterface, cfg Config) *Server {
	return &Server{
		scanner:     scanner,
		corsOrigin:  cfg.CORSOrigin,
		maxUploadMB: cfg.MaxUploadMB,
		timeoutSec:  cfg.TimeoutSec,
	}
}

// Routes builds the HTTP mux for the scan API.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/scan", s.withCORS(withMetrics("/scan", s.scanHandler)))
	mux.HandleFunc("/scan/stream", s.scanStreamHandler)
	mux.HandleFunc("/healthz", withMetrics("/healthz", s.healthHandler))
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// Start runs the HTTP server until ctx is canceled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context, host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		// No write timeout: a scan blocked on the cloud round-trip holds
		// its connection and there is no in-flight cancellation.
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Receipt scan server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(s.timeoutSec)*time.Second)
		defer cancel()
		slog.Info("Shutting down receipt scan server")
		return srv.Shutdown(shutdownCtx)
	}
}
