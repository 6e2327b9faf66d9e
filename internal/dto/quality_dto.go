package dto

import (
	"github.com/ahmetcoskunkizilkaya/quality-moderation/internal/guidelines"
	"github.com/ahmetcoskunkizilkaya/quality-moderation/internal/models"
	"github.com/ahmetcoskunkizilkaya/quality-moderation/internal/quality"
)

// UpsertQualityModerationRequest is the body of POST /quality-moderation/:app_id.
// Passed is a pointer so a missing field is rejected instead of read as false.
type UpsertQualityModerationRequest struct {
	GuidelineID string `json:"guideline_id"`
	Passed      *bool  `json:"passed"`
}

type AppQualityStatus struct {
	ID     string          `json:"id"`
	Status *quality.Report `json:"quality-moderation-status"`
}

type QualityStatusListResponse struct {
	Apps []AppQualityStatus `json:"apps"`
}

type QualityModerationDetail struct {
	Categories []guidelines.Category               `json:"categories"`
	Marks      map[string]models.QualityModeration `json:"marks"`
}
