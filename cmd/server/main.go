package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ifc-reuse-backend/internal/api/routes"
	"ifc-reuse-backend/internal/config"
	"ifc-reuse-backend/internal/database"
	"ifc-reuse-backend/internal/logger"
	"ifc-reuse-backend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	_ "ifc-reuse-backend/docs" // This is needed for swag
)

//	@title			IFC Reuse Backend API
//	@version		1.0
//	@description	Backend API for uploading IFC building models, cataloguing their components and recording reuse decisions.
//	@termsOfService	http://swagger.io/terms/

//	@contact.name	API Support
//	@contact.url	http://www.example.com/support
//	@contact.email	support@example.com

//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT

//	@host		localhost:8000
//	@BasePath	/

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and JWT token.

const shutdownTimeout = 15 * time.Second

func main() {
	// Load environment variables from .env file in development
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal("Failed to load configuration: ", err)
	}

	logger.Setup(cfg.LogLevel)

	db, err := database.Initialize(cfg.DatabaseURL, &database.Options{Driver: cfg.DatabaseDriver})
	if err != nil {
		logrus.Fatal("Failed to initialize database: ", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logrus.WithError(err).Warn("Failed to close database")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storage.NewFromConfig(ctx, cfg)
	if err != nil {
		logrus.Fatal("Failed to initialize storage: ", err)
	}
	if err := os.MkdirAll(cfg.WorkDir, 0o755); err != nil {
		logrus.Fatal("Failed to create work directory: ", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router, err := routes.SetupRoutes(db, cfg, store)
	if err != nil {
		logrus.Fatal("Failed to set up routes: ", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logrus.WithFields(logrus.Fields{
			"port":    cfg.Port,
			"storage": cfg.StorageType,
			"db":      cfg.DatabaseDriver,
		}).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatal("Failed to start server: ", err)
		}
	}()

	<-ctx.Done()
	logrus.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Server forced to shut down")
	}
}
