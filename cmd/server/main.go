package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/youruser/recapapp/internal/api"
	"github.com/youruser/recapapp/internal/config"
	imagepkg "github.com/youruser/recapapp/internal/image"
	"github.com/youruser/recapapp/pkg/logger"
	"github.com/youruser/recapapp/pkg/metrics"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "recap server:", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := logger.Init(); err != nil {
		return err
	}
	log := logger.Named("server")

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		return err
	}

	m := metrics.Default()
	renderer, err := imagepkg.NewRendererFromConfig(cfg, logger.Get(), m)
	if err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	api.RegisterRoutes(r, api.NewHandler(renderer, cfg.AssetVersion, cfg.MatchURL, logger.Named("api")), m)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "listening", logger.String("addr", cfg.Addr), logger.String("asset_version", cfg.AssetVersion))
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

	log.Info(context.Background(), "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
