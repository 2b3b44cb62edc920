package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/yanqian/outfit-concierge/internal/infra/config"
)

const shutdownGrace = 10 * time.Second

// App owns the HTTP server lifecycle.
type App struct {
	cfg    *config.Config
	logger *slog.Logger
	server *http.Server
}

// NewApp is the final node of the dependency graph.
func NewApp(cfg *config.Config, logger *slog.Logger, server *http.Server) *App {
	return &App{cfg: cfg, logger: logger.With("component", "bootstrap"), server: server}
}

// Run serves until the context is cancelled or the listener fails, then drains
// in-flight requests within the shutdown grace period.
func (a *App) Run(ctx context.Context) error {
	serveErr := make(chan error, 1)
	go func() {
		a.logger.Info("listening", "address", a.cfg.HTTP.Address)
		serveErr <- a.server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		return a.shutdown()
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (a *App) shutdown() error {
	a.logger.Info("shutting down", "grace", shutdownGrace.String())
	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return a.server.Shutdown(ctx)
}
