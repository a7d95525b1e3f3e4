// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"log/slog"
	"sync"
	"time"

	_ "ratil/docs" // swagger docs
	"ratil/internal/config"
	"ratil/internal/database"
	"ratil/internal/middleware"
	"ratil/internal/models"
	"ratil/internal/repository"
	"ratil/internal/service"
	"ratil/internal/storage"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/go-resty/resty/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const serviceName = "ratil-api"

var (
	promOnce sync.Once
	prom     *fiberprometheus.FiberPrometheus
)

// metrics returns the process-wide Prometheus middleware. Collectors can only
// be registered once per registry.
func metrics() *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		prom = middleware.InitMetrics(serviceName)
	})
	return prom
}

// Server holds all dependencies and provides handlers
type Server struct {
	config           *config.Config
	db               *gorm.DB
	redis            *redis.Client
	app              *fiber.App
	promMiddleware   *fiberprometheus.FiberPrometheus
	uploader         storage.Uploader
	userService      *service.UserService
	catalogService   *service.CatalogService
	clientService    *service.ClientService
	portfolioService *service.PortfolioService
}

// NewUploader builds the asset host client from configuration.
func NewUploader(cfg *config.Config) storage.Uploader {
	client := resty.New().
		SetTimeout(2 * time.Minute).
		SetHeader("User-Agent", serviceName)
	return storage.NewCloudinaryUploader(storage.CloudinaryConfig{
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
		BaseURL:   cfg.CloudinaryUploadURL,
	}, client)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// The bootstrap layer establishes DB/Redis and performs the startup seeding;
// tests pass an in-memory database and a fake uploader.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, uploader storage.Uploader) *Server {
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	contentRepo := repository.NewContentRepository(db)
	clientRepo := repository.NewClientRepository(db)
	portfolioRepo := repository.NewPortfolioRepository(db)

	return &Server{
		config:           cfg,
		db:               db,
		redis:            redisClient,
		promMiddleware:   metrics(),
		uploader:         uploader,
		userService:      service.NewUserService(userRepo),
		catalogService:   service.NewCatalogService(categoryRepo, contentRepo, uploader, cfg.ContentUploadFolder),
		clientService:    service.NewClientService(clientRepo),
		portfolioService: service.NewPortfolioService(portfolioRepo, categoryRepo, clientRepo, uploader),
	}
}

// NewApp builds the fiber app with middleware and routes installed.
func (s *Server) NewApp() *fiber.App {
	bodyLimit := s.config.BodyLimitMB
	if bodyLimit <= 0 {
		bodyLimit = 50
	}

	app := fiber.New(fiber.Config{
		AppName:      "Ratil Group API",
		BodyLimit:    bodyLimit * 1024 * 1024,
		ErrorHandler: ErrorHandler,
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// ErrorHandler reports errors that escaped a handler, such as unknown routes
// or oversized bodies, in the standard error shape.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := models.StatusFor(err)
	if status >= fiber.StatusInternalServerError {
		middleware.Logger.ErrorContext(c.UserContext(), "unhandled request error",
			slog.String("path", c.Path()),
			slog.String("error", err.Error()),
		)
		if !models.IsCode(err, models.CodeUpstream) {
			err = models.NewInternalError(err)
		}
	}
	return models.RespondWithError(c, status, err)
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Tracing runs before the context middleware so the trace id reaches the logger.
	app.Use(middleware.TracingMiddleware())

	// Context Middleware to propagate Request ID and trace ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "*"
	}
	// Credentials cannot be combined with a wildcard origin.
	allowCredentials := origins != "*"

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,POST,PUT,DELETE",
		AllowCredentials: allowCredentials,
		MaxAge:           86400, // 24 hours
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/", s.Welcome)

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api")

	// Swagger documentation
	api.Get("/swagger/*", swagger.HandlerDefault)

	// Auth and user routes
	api.Post("/login", s.Login)
	users := api.Group("/users")
	users.Get("/", s.GetUsers)
	users.Post("/", s.CreateUser)
	// Specific /:username/:action routes BEFORE generic /:username
	users.Put("/:username/change-password", s.ChangePassword)
	users.Put("/:username", s.UpdateUser)
	users.Delete("/:username", s.DeleteUser)

	// Categories
	api.Get("/categories", s.GetCategories)
	adminCategories := api.Group("/admin/categories")
	adminCategories.Post("/", s.CreateCategory)
	adminCategories.Put("/:category", s.UpdateCategory)
	adminCategories.Delete("/:category", s.DeleteCategory)

	// Flattened content review
	api.Get("/admin/content", s.GetAdminContent)

	// Public content reads
	content := api.Group("/content")
	// Define /:category/subcategories BEFORE the generic /:category/:subcategoryId
	content.Get("/:category/subcategories", s.GetSubcategories)
	content.Get("/:category/:subcategoryId", s.GetContentItems)

	// Content writes are served under both prefixes
	for _, prefix := range []string{"/content", "/admin/content"} {
		writes := api.Group(prefix)
		writes.Post("/:category/subcategories", s.CreateSubcategory)
		writes.Put("/:category/subcategories/:subcategoryId", s.UpdateSubcategory)
		writes.Delete("/:category/subcategories/:subcategoryId", s.DeleteSubcategory)
		writes.Post("/:category/:subcategoryId", s.CreateContentItem)
		writes.Put("/:category/:subcategoryId/:itemId", s.UpdateContentItem)
		writes.Delete("/:category/:subcategoryId/:itemId", s.DeleteContentItem)
	}

	// Clients
	clients := api.Group("/clients")
	clients.Get("/", s.GetClients)
	clients.Post("/", s.CreateClient)
	clients.Get("/:id", s.GetClient)
	clients.Put("/:id", s.UpdateClient)
	clients.Delete("/:id", s.DeleteClient)

	// Portfolio
	portfolio := api.Group("/portfolio")
	portfolio.Post("/upload", s.UploadPortfolioItem)
	portfolio.Get("/items", s.GetPortfolioItems)
	portfolio.Get("/items/:id", s.GetPortfolioItem)
	portfolio.Put("/items/:id", s.UpdatePortfolioItem)
	portfolio.Delete("/items/:id", s.DeletePortfolioItem)
}

// Welcome handles GET /
func (s *Server) Welcome(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Welcome to Ratil Group API"})
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests. Redis is optional; only
// an unreachable configured Redis makes the service unready.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	if err := database.Ping(ctx, s.db); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "disabled"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" || redisStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"version": "1.0.0",
		"status":  overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start builds the app and listens on the configured port. It blocks until
// the listener stops.
func (s *Server) Start() error {
	s.app = s.NewApp()
	middleware.Logger.Info("Server starting", slog.String("port", s.config.Port))
	return s.app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", slog.String("error", err.Error()))
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			middleware.Logger.Error("error closing sql DB", slog.String("error", cerr.Error()))
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			middleware.Logger.Error("error closing redis", slog.String("error", rerr.Error()))
		}
	}

	middleware.Logger.Info("Server shutdown complete")
	return nil
}
