package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/scythe504/sketchrooms/internal/config"
	"github.com/scythe504/sketchrooms/internal/game"
	"go.uber.org/zap"
)

type Server struct {
	cfg      config.HTTPConfig
	registry *game.Registry
	ws       http.Handler
	metrics  http.Handler
	log      *zap.SugaredLogger
}

// NewServer wires the HTTP surface. metrics may be nil.
func NewServer(cfg config.HTTPConfig, registry *game.Registry, ws, metrics http.Handler, log *zap.SugaredLogger) *Server {
	return &Server{cfg: cfg, registry: registry, ws: ws, metrics: metrics, log: log}
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         net.JoinHostPort(s.cfg.Host, strconv.Itoa(int(s.cfg.Port))),
		Handler:      s.RegisterRoutes(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.log.Infow("shutting down", "addr", srv.Addr)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		shutdown <- srv.Shutdown(shutdownCtx)
	}()

	s.log.Infow("server has started", "addr", srv.Addr)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen on %s: %w", srv.Addr, err)
	}
	if err := <-shutdown; err != nil {
		return err
	}
	s.log.Infow("server has stopped", "addr", srv.Addr)
	return nil
}
