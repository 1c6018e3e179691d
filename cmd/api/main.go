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
	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/rdv-service/internal/app"
	"github.com/BruksfildServices01/rdv-service/internal/config"
	"github.com/BruksfildServices01/rdv-service/internal/logger"
	"github.com/BruksfildServices01/rdv-service/internal/routes"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, cfg, log)
	stop()

	if err != nil {
		log.WithError(err).Error("server stopped")
		os.Exit(1)
	}
}

// run returns once ctx is cancelled or the listener fails. Deferred cleanup
// runs on every exit path.
func run(ctx context.Context, cfg *config.Config, log *logrus.Logger) error {
	a, err := app.New(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("startup: %w", err)
	}
	defer a.Close()

	if err := a.Migrate(); err != nil {
		return err
	}

	sweep, err := a.ArchiveSweep()
	if err != nil {
		return err
	}
	sweep.Start()
	defer sweep.Stop()

	reminder := a.Reminder()
	reminder.Start(ctx)
	defer reminder.Stop()

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	routes.RegisterRoutes(r, a.Routes())

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return serve(ctx, srv, log)
}

// serve runs srv until ctx is cancelled, then shuts it down. A listener
// failure is returned instead of exiting the process.
func serve(ctx context.Context, srv *http.Server, log logrus.FieldLogger) error {
	serveErr := make(chan error, 1)
	go func() {
		log.WithField("addr", srv.Addr).Info("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("listen %s: %w", srv.Addr, err)
		}
	case <-ctx.Done():
	}
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}
