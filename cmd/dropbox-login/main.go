// Command dropbox-login serves a minimal "Sign in with Dropbox" flow.
//
// Configuration comes from the environment; see config for the variables.
package main

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

	"github.com/caarlos0/env/v11"
	"github.com/getsentry/sentry-go"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/dropboxauth/pkg/dropbox"
	"github.com/dmitrymomot/dropboxauth/pkg/logger"
	"github.com/dmitrymomot/dropboxauth/pkg/oauth"
)

type config struct {
	Addr            string        `env:"HTTP_ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	Log             logger.Config
	Sentry          logger.SentryConfig
	Dropbox         dropbox.Config
	OAuth           oauth.HandlerConfig
}

func main() {
	cfg, err := env.ParseAs[config]()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log := logger.NewWithSentry(cfg.Log, cfg.Sentry, logger.StrategyExtractor(), requestIDExtractor())
	defer sentry.Flush(2 * time.Second)

	if err := run(cfg, log); err != nil {
		log.Error("server error", slog.String("error", err.Error()))
		sentry.Flush(2 * time.Second)
		os.Exit(1)
	}
}

func run(cfg config, log *slog.Logger) error {
	strategy, err := dropbox.New(cfg.Dropbox, oauth.WithLogger(log))
	if err != nil {
		return fmt.Errorf("dropbox strategy: %w", err)
	}
	log.Info("dropbox strategy ready",
		slog.String("strategy", strategy.Name()),
		slog.String("api_version", strategy.Config().APIVersion.String()),
	)

	h, err := oauth.NewHandler(strategy, verifyProfile, cfg.OAuth,
		oauth.WithHandlerLogger(log),
		oauth.WithSuccess(writeUser),
	)
	if err != nil {
		return fmt.Errorf("oauth handler: %w", err)
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newRouter(h),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server starting", slog.String("address", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
