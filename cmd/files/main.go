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

	"emodiary/internal/config"
	"emodiary/internal/files"
	"emodiary/internal/logger"
	"emodiary/internal/metrics"
	"emodiary/internal/storage"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log)
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("Files Service exited with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	log.Info("Starting Files Service",
		"port", cfg.Server.Port,
		"storage_backend", cfg.Storage.Backend,
	)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	generator, err := storage.New(initCtx, cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("initialize storage: %w", err)
	}
	if s3, ok := generator.(*storage.S3); ok {
		if err := s3.EnsureBucket(initCtx); err != nil {
			log.Warn("Failed to ensure bucket exists", "error", err)
		}
	}

	m, err := metrics.New()
	if err != nil {
		return fmt.Errorf("initialize metrics: %w", err)
	}

	filesService := files.NewService(generator, m)
	server := files.NewServer(filesService, cfg.CORS, m, log)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           server.RegisterRoutes(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("Files Service listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		return fmt.Errorf("listen: %w", err)
	case sig := <-quit:
		log.Info("Shutting down Files Service", "signal", sig.String())
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Files Service stopped")
	return nil
}
