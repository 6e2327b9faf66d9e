package handlers

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/quality-moderation/internal/apps"
	"github.com/ahmetcoskunkizilkaya/quality-moderation/internal/dto"
	"github.com/ahmetcoskunkizilkaya/quality-moderation/internal/guidelines"
	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	registry *apps.Registry
	catalog  *guidelines.Catalog
	ping     func() error
}

func NewHealthHandler(registry *apps.Registry, catalog *guidelines.Catalog, ping func() error) *HealthHandler {
	return &HealthHandler{registry: registry, catalog: catalog, ping: ping}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	status := "ok"
	dbStatus := "ok"
	if err := h.ping(); err != nil {
		status = "degraded"
		dbStatus = "unhealthy: " + err.Error()
	}

	code := fiber.StatusOK
	if status != "ok" {
		code = fiber.StatusServiceUnavailable
	}

	return c.Status(code).JSON(dto.HealthResponse{
		Status:         status,
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
		DB:             dbStatus,
		AppCount:       len(h.registry.AppIDs()),
		GuidelineCount: h.catalog.Len(),
	})
}
