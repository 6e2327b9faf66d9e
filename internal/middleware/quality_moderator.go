package middleware

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/quality-moderation/internal/config"
	"github.com/ahmetcoskunkizilkaya/quality-moderation/internal/dto"
	"github.com/ahmetcoskunkizilkaya/quality-moderation/internal/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// QualityModeratorRequired admits a request when the token subject is:
// 1. listed in QUALITY_MODERATOR_IDS, or
// 2. a users row flagged is_quality_moderator.
// It must run after JWTProtected. db may be nil, in which case only the
// configured list is consulted.
func QualityModeratorRequired(db *gorm.DB, cfg *config.Config) fiber.Handler {
	moderators := make(map[string]bool)
	for _, id := range cfg.ModeratorIDs() {
		moderators[id] = true
	}

	return func(c *fiber.Ctx) error {
		userID, err := GetUserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "not_logged_in",
			})
		}

		allowed := moderators[userID.String()]
		if !allowed && db != nil {
			var user models.User
			err := db.Select("id", "is_quality_moderator").First(&user, "id = ?", userID).Error
			switch {
			case err == nil:
				allowed = user.IsQualityModerator
			case !errors.Is(err, gorm.ErrRecordNotFound):
				slog.Error("moderator lookup failed", "action", "moderator_lookup", "error", err)
				return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
					Error: true, Message: "Internal server error",
				})
			}
		}

		if !allowed {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "not_quality_moderator",
			})
		}

		c.Locals(moderatorIDKey, userID)
		return c.Next()
	}
}
