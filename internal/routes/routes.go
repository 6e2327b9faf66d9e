package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/quality-moderation/internal/config"
	"github.com/ahmetcoskunkizilkaya/quality-moderation/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/quality-moderation/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/quality-moderation/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	healthHandler *handlers.HealthHandler,
	qualityHandler *handlers.QualityHandler,
	qualityMetrics *metrics.QualityMetrics,
) {
	if cfg.MetricsEnabled && qualityMetrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(qualityMetrics.Handler()))
	}

	api := app.Group("/api")

	// General API rate limit per IP
	api.Use(limiter.New(limiter.Config{
		Max:               cfg.RateLimitPerMinute,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	qm := api.Group("/quality-moderation")
	moderator := []fiber.Handler{
		middleware.JWTProtected(cfg),
		middleware.QualityModeratorRequired(db, cfg),
	}

	// /status must be registered before /:app_id, it matches the app id pattern.
	qm.Get("/status", append(moderator, qualityHandler.ListStatus)...)
	qm.Get("/:app_id/status", qualityHandler.GetAppStatus)
	qm.Get("/:app_id", append(moderator, qualityHandler.GetApp)...)
	qm.Post("/:app_id", append(moderator, qualityHandler.SetVerdict)...)
}
