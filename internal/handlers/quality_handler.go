package handlers

import (
	"errors"
	"log/slog"
	"regexp"
	"strings"

	"github.com/ahmetcoskunkizilkaya/quality-moderation/internal/dto"
	"github.com/ahmetcoskunkizilkaya/quality-moderation/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/quality-moderation/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

var appIDPattern = regexp.MustCompile(`^[A-Za-z_][\w\-\.]+$`)

const (
	appIDMinLen = 6
	appIDMaxLen = 255
)

type QualityHandler struct {
	qualityService *services.QualityService
}

func NewQualityHandler(qualityService *services.QualityService) *QualityHandler {
	return &QualityHandler{qualityService: qualityService}
}

// validAppID mirrors the app id format of the catalog, e.g. org.gnome.Glade.
func validAppID(id string) bool {
	return len(id) >= appIDMinLen && len(id) <= appIDMaxLen && appIDPattern.MatchString(id)
}

// parseAppID copies the path parameter: fiber reuses the underlying buffer
// once the request completes.
func parseAppID(c *fiber.Ctx) (string, bool) {
	id := utils.CopyString(c.Params("app_id"))
	return id, validAppID(id)
}

func invalidAppID(c *fiber.Ctx, id string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: "Invalid app_id: " + id,
	})
}

// ListStatus returns the status of every app in the catalog (moderators only).
func (h *QualityHandler) ListStatus(c *fiber.Ctx) error {
	statuses, err := h.qualityService.StatusAll()
	if err != nil {
		slog.Error("quality status listing failed", "action", "list_status", "request_id", requestID(c), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to compute quality moderation status",
		})
	}
	return c.JSON(dto.QualityStatusListResponse{Apps: statuses})
}

// GetApp returns the catalog and every stored verdict of the app (moderators only).
func (h *QualityHandler) GetApp(c *fiber.Ctx) error {
	appID, ok := parseAppID(c)
	if !ok {
		return invalidAppID(c, appID)
	}

	detail, err := h.qualityService.Detail(appID)
	if err != nil {
		slog.Error("quality detail failed", "action", "get_app", "app_id", appID, "request_id", requestID(c), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch quality moderation",
		})
	}
	return c.JSON(detail)
}

// SetVerdict upserts a moderator verdict (moderators only).
func (h *QualityHandler) SetVerdict(c *fiber.Ctx) error {
	appID, ok := parseAppID(c)
	if !ok {
		return invalidAppID(c, appID)
	}

	moderatorID, ok := middleware.GetModeratorID(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "not_logged_in",
		})
	}

	var req dto.UpsertQualityModerationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	req.GuidelineID = strings.TrimSpace(req.GuidelineID)
	if req.GuidelineID == "" || req.Passed == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "guideline_id and passed are required",
		})
	}

	if err := h.qualityService.SetVerdict(appID, req.GuidelineID, *req.Passed, moderatorID); err != nil {
		if errors.Is(err, services.ErrReadOnlyGuideline) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		slog.Error("quality verdict upsert failed",
			"action", "set_verdict",
			"app_id", appID,
			"guideline_id", req.GuidelineID,
			"moderator_id", moderatorID.String(),
			"request_id", requestID(c),
			"error", err,
		)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to save quality moderation",
		})
	}

	return c.JSON(fiber.Map{"message": "Quality moderation saved"})
}

// GetAppStatus returns the compliance report of one app (public).
func (h *QualityHandler) GetAppStatus(c *fiber.Ctx) error {
	appID, ok := parseAppID(c)
	if !ok {
		return invalidAppID(c, appID)
	}

	report, err := h.qualityService.Status(appID)
	if err != nil {
		slog.Error("quality status failed", "action", "get_app_status", "app_id", appID, "request_id", requestID(c), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to compute quality moderation status",
		})
	}
	return c.JSON(report)
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}
