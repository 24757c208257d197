package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/TWRT/task-king/internal/api"
	"github.com/TWRT/task-king/internal/config"
	"github.com/TWRT/task-king/internal/logging"
	"github.com/TWRT/task-king/internal/repository"
)

func main() {
	cfg, err := config.LoadServer()
	if err != nil {
		logging.NewFromConfig("info", "text").Fatal("Error loading configuration", "err", err)
	}
	logger := logging.NewFromConfig(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := repository.OpenStore(ctx, cfg.StoreURI, cfg.Database)
	if err != nil {
		logger.Fatal("Store connection error", "err", err)
	}
	logger.Info("Store connected", "backend", store.Backend)

	router := api.SetupRouter(store.Tasks, logger, api.RouterOptions{
		ExposeErrorDetails: cfg.ExposeErrorDetails,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server listening", "port", cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Error starting server", "err", err)
		}
	case <-ctx.Done():
		logger.Info("Shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error shutting down server", "err", err)
	}
	if err := store.Close(shutdownCtx); err != nil {
		logger.Error("Error closing store", "err", err)
	}
}
