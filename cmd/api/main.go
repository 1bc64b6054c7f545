package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"flowcanvas-backend/infrastructure/config"
	"flowcanvas-backend/infrastructure/di"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	container, err := di.InitializeContainer(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	logger := container.Logger

	// Start the websocket hub before accepting connections
	go container.Hub.Run()

	// Optional settings file with hot reload
	var watcher *config.SettingsWatcher
	if cfg.SettingsPath != "" {
		watcher, err = config.NewSettingsWatcher(cfg.SettingsPath, logger)
		if err != nil {
			logger.Fatal("Failed to start settings watcher", zap.Error(err))
		}
		watcher.OnChange(func(settings *config.Settings) {
			logger.Info("canvas settings updated",
				zap.Float64("gridSize", settings.Canvas.GridSize),
				zap.Bool("snapToGrid", settings.Canvas.SnapToGrid),
			)
		})
		watcher.Start()
	}

	srv := &http.Server{
		Addr:         cfg.ServerAddress,
		Handler:      container.Handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting server",
			zap.String("address", cfg.ServerAddress),
			zap.String("environment", cfg.Environment),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", zap.Error(err))
	}

	container.Hub.Stop()
	if watcher != nil {
		watcher.Stop()
	}

	if err := logger.Sync(); err != nil {
		log.Printf("Failed to sync logger: %v", err)
	}

	log.Println("Server stopped")
}
