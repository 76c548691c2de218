package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/veronicaguo/electricitymap-contrib/internal/config"
	"github.com/veronicaguo/electricitymap-contrib/internal/logger"
	"github.com/veronicaguo/electricitymap-contrib/internal/server"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	if level := logger.ParseLogLevel(cfg.LogLevel); level != -1 {
		logger.GetGlobalLogger().SetLevel(level)
	}
	if format := logger.ParseLogFormat(cfg.LogFormat); format != -1 {
		logger.GetGlobalLogger().SetFormat(format)
	}

	logger.Infof("Starting zone mix graph service v%s on port %s", config.GetVersion(), cfg.Port)
	logger.Infof("Environment: %s, deployment: %s", cfg.Environment, cfg.Deployment)

	srv, err := server.NewServer(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to create server", err)
	}
	defer srv.Close()

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv.SetupRoutes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Infof("Server listening on :%s", cfg.Port)
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", err)
	}

	logger.Info("Server stopped")
}
