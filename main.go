// @title Hahn Software Auth API
// @version 1.0
// @description Registration, login, Google sign-in and token refresh.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hahn-software/backend/internal/client"
	"github.com/hahn-software/backend/internal/config"
	"github.com/hahn-software/backend/internal/db"
	"github.com/hahn-software/backend/internal/handler"
	"github.com/hahn-software/backend/internal/service"
	"golang.org/x/sync/errgroup"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	startupCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	pool, err := db.NewPostgresPool(startupCtx, cfg.Postgres)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := db.Migrate(startupCtx, pool); err != nil {
		return err
	}

	codec, err := service.NewTokenCodec(cfg.Auth)
	if err != nil {
		return err
	}

	opts := []service.AuthOption{service.WithLogger(logger)}
	if cfg.Google.ClientID != "" {
		google, err := client.NewGoogleVerifier(startupCtx, cfg.Google)
		if err != nil {
			return err
		}
		opts = append(opts, service.WithIdentityVerifier(google))
		if google.CodeExchangeEnabled() {
			opts = append(opts, service.WithCodeExchanger(google))
		}
	} else {
		logger.Warn("GOOGLE_CLIENT_ID not set, google login disabled")
	}

	authService, err := service.NewAuthService(db.NewPostgres(pool), codec, cfg.Auth, opts...)
	if err != nil {
		return err
	}
	if err := authService.EnsureAdmin(startupCtx, cfg.Admin); err != nil {
		return err
	}

	router := handler.NewRouter(authService, handler.RouterConfig{
		StrictStatus: cfg.Auth.StrictStatus,
		CORS:         cfg.CORS,
	})
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http server listening", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		logger.Info("shutting down http server")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
