package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ledgerview/txn-ui-api/config"
	httpx "github.com/ledgerview/txn-ui-api/internal/http"
	"github.com/ledgerview/txn-ui-api/internal/observability/statsd"
)

const (
	httpReadHeaderTimeout = 10 * time.Second
	httpShutdownTimeout   = 15 * time.Second
)

// HTTPServerConfig groups what RunHTTPServer needs.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services *ServiceContainer
	Metrics  statsd.Sink
	Logger   *slog.Logger
}

// RunHTTPServer builds the router, serves until the context is cancelled or
// a termination signal arrives, then shuts down gracefully.
func RunHTTPServer(ctx context.Context, cfg *HTTPServerConfig) error {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	appCfg := cfg.Config

	cookieSecure := appCfg.HTTP.CookieSecure
	if appCfg.IsDev {
		cookieSecure = false
	}

	handler := httpx.NewRouter(httpx.RouterServices{
		Sessions:          cfg.Services.Sessions,
		Gateway:           cfg.Services.Gateway,
		AdminUsername:     appCfg.Auth.Admin.Username,
		AdminPasswordHash: appCfg.Auth.Admin.PasswordHash,
		CookieDomain:      appCfg.HTTP.CookieDomain,
		CookieSecure:      cookieSecure,
		Logger:            logger,
		Metrics:           cfg.Metrics,
	})

	server := &http.Server{
		Addr:              appCfg.HTTP.Addr,
		Handler:           handler,
		ReadHeaderTimeout: httpReadHeaderTimeout,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.InfoContext(gctx, "starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), httpShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	})

	return g.Wait()
}
