package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"moviedash/internal/config"
	"moviedash/internal/dataset"
	"moviedash/internal/logger"
	"moviedash/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(true).Error("config: %v", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogTimestamps)

	log.Info("Using data dir: %s", cfg.DataDir)
	start := time.Now()
	store, loadErr := dataset.NewLoader(cfg.DataDir).Load()
	if loadErr != nil {
		// Keep serving: the pages report the problem instead of the data.
		log.Warn("Data load warning: %v", loadErr)
	} else {
		log.Info("Loaded %d movies, %d ratings in %s", len(store.Movies()), len(store.Ratings()), time.Since(start))
		if n := store.SkippedRows(); n > 0 {
			log.Warn("Skipped %d malformed rows", n)
		}
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.New(store, loadErr, log).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("Starting server on %s", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown: %v", err)
	}
	log.Info("Server stopped")
}
