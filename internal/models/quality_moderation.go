package models

import (
	"time"

	"github.com/google/uuid"
)

// QualityModeration is a moderator verdict for one (app, guideline) pair.
// The composite primary key keeps at most one row per pair; upserts
// overwrite it in place and no history is retained.
type QualityModeration struct {
	AppID       string    `gorm:"primaryKey;size:255" json:"app_id"`
	GuidelineID string    `gorm:"primaryKey;type:text" json:"guideline_id"`
	Passed      bool      `gorm:"not null" json:"passed"`
	UpdatedBy   uuid.UUID `gorm:"type:uuid;not null;index" json:"updated_by"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime:false" json:"updated_at"`
}

func (QualityModeration) TableName() string {
	return "quality_moderation"
}
