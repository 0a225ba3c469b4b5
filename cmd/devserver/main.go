package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"vercel-runtime/internal/config"
	"vercel-runtime/internal/devserver"
	"vercel-runtime/internal/logging"
	"vercel-runtime/pkg/server"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	log, err := logging.Setup(cfg)
	if err != nil {
		logrus.Fatalf("Failed to configure logging: %v", err)
	}

	container := server.NewContainer(cfg, log, nil)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           devserver.NewRouter(cfg, log, container.Handler()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.WithField("port", cfg.Port).Info("Dev server started")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down dev server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Dev server forced to shutdown: %v", err)
	}

	log.Info("Dev server exited")
}
