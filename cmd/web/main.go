package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ifc-reuse-backend/internal/config"
	"ifc-reuse-backend/internal/logger"
	"ifc-reuse-backend/internal/web"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// apiTimeout covers a proxied upload, which converts every element before answering
const apiTimeout = 10 * time.Minute

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal("Failed to load configuration: ", err)
	}
	logger.Setup(cfg.LogLevel)

	sessions := web.NewSessionManager(cfg.SessionSecret, cfg.IsProduction())
	client := web.NewAPIClient(cfg.APIBaseURL, apiTimeout)
	server, err := web.NewServer(client, sessions, web.Options{
		APIBaseURL:     cfg.APIBaseURL,
		MaxUploadBytes: cfg.MaxUploadBytes,
	})
	if err != nil {
		logrus.Fatal("Failed to build web server: ", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.WebPort,
		Handler:           server.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logrus.WithFields(logrus.Fields{"port": cfg.WebPort, "api": cfg.APIBaseURL}).Info("Starting web front end")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatal("Failed to start web front end: ", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Web front end forced to shut down")
	}
}
