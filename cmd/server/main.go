package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/ahmetcoskunkizilkaya/quality-moderation/internal/apps"
	"github.com/ahmetcoskunkizilkaya/quality-moderation/internal/config"
	"github.com/ahmetcoskunkizilkaya/quality-moderation/internal/database"
	"github.com/ahmetcoskunkizilkaya/quality-moderation/internal/guidelines"
	"github.com/ahmetcoskunkizilkaya/quality-moderation/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/quality-moderation/internal/logging"
	"github.com/ahmetcoskunkizilkaya/quality-moderation/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/quality-moderation/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/quality-moderation/internal/routes"
	"github.com/ahmetcoskunkizilkaya/quality-moderation/internal/services"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Guideline catalog (embedded unless GUIDELINES_PATH is set)
	catalog, err := guidelines.Load(cfg.GuidelinesPath)
	if err != nil {
		slog.Error("failed to load guideline catalog", "path", cfg.GuidelinesPath, "error", err)
		os.Exit(1)
	}
	slog.Info("guideline catalog loaded", "categories", len(catalog.Categories()), "guidelines", catalog.Len())

	// App catalog
	registry, err := apps.LoadFromFile(cfg.AppsConfigPath)
	if err != nil {
		slog.Error("failed to load app registry", "path", cfg.AppsConfigPath, "error", err)
		os.Exit(1)
	}
	slog.Info("app registry loaded", "apps", len(registry.AppIDs()))

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(database.DB); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	stopDBLogs := logging.AttachDatabase(database.DB)

	// Log retention
	cleanup, err := logging.StartCleanup(database.DB, cfg.LogCleanupSchedule, cfg.LogRetentionDays)
	if err != nil {
		slog.Error("log cleanup not scheduled", "error", err)
		os.Exit(1)
	}

	// Services
	var qualityMetrics *metrics.QualityMetrics
	if cfg.MetricsEnabled {
		qualityMetrics = metrics.NewQualityMetrics()
	}
	verdictStore := services.NewGormVerdictStore(database.DB)
	qualityService := services.NewQualityService(verdictStore, catalog, registry, qualityMetrics, services.QualityServiceConfig{
		RejectReadOnly: cfg.RejectReadOnlyVerdicts,
	})
	if cfg.RejectReadOnlyVerdicts {
		slog.Info("verdicts for read-only guidelines will be rejected")
	}

	// Handlers
	healthHandler := handlers.NewHealthHandler(registry, catalog, database.Ping)
	qualityHandler := handlers.NewQualityHandler(qualityService)

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    64 * 1024,
		ErrorHandler: customErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		return c.Next()
	})

	// Routes
	routes.Setup(app, cfg, database.DB, healthHandler, qualityHandler, qualityMetrics)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	<-cleanup.Stop().Done()
	stopDBLogs()
	sentry.Flush(2 * time.Second)

	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
