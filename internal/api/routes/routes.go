package routes

import (
	"fmt"

	"ifc-reuse-backend/internal/api/handlers"
	"ifc-reuse-backend/internal/api/middleware"
	"ifc-reuse-backend/internal/auth"
	"ifc-reuse-backend/internal/config"
	"ifc-reuse-backend/internal/converter"
	"ifc-reuse-backend/internal/pipeline"
	"ifc-reuse-backend/internal/repository"
	"ifc-reuse-backend/internal/service"
	"ifc-reuse-backend/internal/storage"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// multipartOverhead leaves room for form fields and part headers around the file
const multipartOverhead = 1 << 20

// SetupRoutes configures all the routes for the application
func SetupRoutes(db *gorm.DB, cfg *config.Config, store storage.Store) (*gin.Engine, error) {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	validator := service.NewValidator()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	componentRepo := repository.NewComponentRepository(db)

	// Auth
	authService, err := auth.NewAuthService(auth.NewAuthConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize auth service: %w", err)
	}
	authHandler := auth.NewAuthHandler(authService)
	authMiddleware := auth.NewAuthMiddleware(authService)

	// Conversion pipeline
	ifcConvert := converter.NewIfcConvert(cfg.IfcConvertPath, cfg.IfcConvertArgs, cfg.ConverterTimeout)
	pipe := pipeline.New(ifcConvert, cfg.WorkDir, cfg.MeshFormat)

	// Services
	userService := service.NewUserService(userRepo, authService, validator, cfg.IsAdminEmail)
	ingestService := service.NewIngestService(projectRepo, componentRepo, store, pipe, validator, service.IngestOptions{
		MaxUploadBytes:  cfg.MaxUploadBytes,
		DefaultReusable: cfg.DefaultReusable,
		WorkDir:         cfg.WorkDir,
	})
	reuseService := service.NewReuseService(projectRepo, componentRepo, store, pipe, validator)
	catalogService := service.NewCatalogService(componentRepo, projectRepo)
	projectService := service.NewProjectService(projectRepo, store)
	meshService := service.NewMeshService(componentRepo, store)

	// Handlers
	healthHandler := handlers.NewHealthHandler(db, store)
	userHandler := handlers.NewUserHandler(userService)
	uploadHandler := handlers.NewUploadHandler(ingestService)
	reuseHandler := handlers.NewReuseHandler(reuseService)
	projectHandler := handlers.NewProjectHandler(projectService)
	componentHandler := handlers.NewComponentHandler(catalogService, meshService)

	// Health check routes
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/health/live", healthHandler.Live)

	// Swagger documentation route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authRoutes := router.Group("/api/auth")
	{
		authRoutes.POST("/register", userHandler.Register)
		authRoutes.POST("/login", userHandler.Login)
		authRoutes.POST("/logout", authHandler.Logout)
		authRoutes.POST("/validate", authHandler.ValidateToken)
	}

	// Meshes are public so 3D viewers can fetch them without a token
	router.GET("/api/v1/components/:id/mesh", componentHandler.GetMesh)
	router.GET("/components/:id/glb", componentHandler.GetMesh)

	v1 := router.Group("/api/v1")
	v1.Use(authMiddleware.RequireAuth())
	{
		v1.POST("/uploads", middleware.BodyLimit(cfg.MaxUploadBytes+multipartOverhead), uploadHandler.Upload)
		v1.POST("/mark-reusable", reuseHandler.MarkReusable)

		projects := v1.Group("/projects")
		{
			projects.GET("", projectHandler.ListProjects)
			projects.DELETE("", authMiddleware.RequireAdmin(), projectHandler.DeleteAllProjects)
			projects.GET("/:id", projectHandler.GetProject)
			projects.DELETE("/:id", projectHandler.DeleteProject)
			projects.GET("/:id/files/:name", projectHandler.DownloadFile)
		}

		components := v1.Group("/components")
		{
			components.GET("", componentHandler.ListComponents)
			components.GET("/:id", componentHandler.GetComponent)
			components.PATCH("/:id/reuse", componentHandler.SetReusable)
		}

		v1.GET("/users/me", userHandler.GetCurrentUser)
	}

	// Catch-all route for undefined endpoints
	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"error":      "Endpoint not found",
			"path":       c.Request.URL.Path,
			"method":     c.Request.Method,
			"request_id": middleware.GetRequestID(c),
		})
	})

	return router, nil
}

// SetupHealthRoutes sets up only health check routes (useful for testing)
func SetupHealthRoutes(db *gorm.DB, store storage.Store) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	healthHandler := handlers.NewHealthHandler(db, store)
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/health/live", healthHandler.Live)

	return router
}
