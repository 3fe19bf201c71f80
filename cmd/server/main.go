package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/joho/godotenv"
	"github.com/localnerve/shopdb/data"
	"github.com/localnerve/shopdb/internal/config"
	"github.com/localnerve/shopdb/internal/database"
	"github.com/localnerve/shopdb/internal/handlers"
	"github.com/localnerve/shopdb/internal/services"
	"github.com/localnerve/shopdb/internal/store"
	log "github.com/sirupsen/logrus"

	_ "github.com/localnerve/shopdb/docs/api" // Swagger docs
)

// @title ShopDB API
// @version 1.0.0
// @description Go Fiber e-commerce service over relational or document storage
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/localnerve/shopdb
// @contact.email info@localnerve.com

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:5000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	// A missing .env is fine, the environment may already be set
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	setupLogging(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	st, err := database.Open(ctx, cfg)
	if err != nil {
		cancel()
		log.Fatalf("Failed to open %s storage: %v", cfg.DBType, err)
	}

	// Reference roles must exist before anyone registers
	roles, err := data.RoleNames()
	if err != nil {
		cancel()
		log.Fatalf("Failed to read reference roles: %v", err)
	}
	created, err := store.EnsureRoles(ctx, st, roles)
	cancel()
	if err != nil {
		log.Fatalf("Failed to ensure reference roles: %v", err)
	}
	if created > 0 {
		log.WithField("created", created).Info("Seeded reference roles")
	}

	app := newApp(cfg, st)

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Info("Gracefully shutting down...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.WithError(err).Warn("Shutdown did not complete cleanly")
		}
	}()

	// Start server
	port := cfg.Port
	log.Infof("Starting server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer closeCancel()
	database.Close(closeCtx, st)

	log.Info("Server stopped")
}

func newApp(cfg *config.Config, st store.Store) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.NewErrorHandler(cfg.IsProduction()),
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		AppName:      "shopdb",
	})

	// Global middleware
	app.Use(recover.New(recover.Config{EnableStackTrace: !cfg.IsProduction()}))
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(cors.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("shopdb")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	health := &handlers.HealthHandler{Config: cfg, Store: st}
	app.Get("/health", health.Check)

	// API routes under /api
	auth := services.NewAuthService(st, cfg)
	handlers.RegisterRoutes(app.Group("/api"), st, auth)

	// 404 handler
	app.Use(handlers.NotFound)

	return app
}

func setupLogging(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
	if cfg.IsProduction() {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
