package services

import (
	"fmt"
	"time"

	"github.com/ahmetcoskunkizilkaya/quality-moderation/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VerdictStore persists moderator verdicts keyed by (app id, guideline id).
type VerdictStore interface {
	FindByApp(appID string) ([]models.QualityModeration, error)
	Upsert(appID, guidelineID string, passed bool, moderatorID uuid.UUID) error
}

// GormVerdictStore keeps one row per (app_id, guideline_id). Writes are
// last-write-wins: a concurrent upsert to the same pair simply overwrites.
type GormVerdictStore struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGormVerdictStore(db *gorm.DB) *GormVerdictStore {
	return &GormVerdictStore{db: db, now: time.Now}
}

// WithClock overrides the source of updated_at.
func (s *GormVerdictStore) WithClock(now func() time.Time) *GormVerdictStore {
	s.now = now
	return s
}

func (s *GormVerdictStore) FindByApp(appID string) ([]models.QualityModeration, error) {
	var items []models.QualityModeration
	if err := s.db.Where("app_id = ?", appID).Order("guideline_id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to load verdicts for %s: %w", appID, err)
	}
	return items, nil
}

func (s *GormVerdictStore) Upsert(appID, guidelineID string, passed bool, moderatorID uuid.UUID) error {
	item := models.QualityModeration{
		AppID:       appID,
		GuidelineID: guidelineID,
		Passed:      passed,
		UpdatedBy:   moderatorID,
		UpdatedAt:   s.now().UTC(),
	}

	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "app_id"}, {Name: "guideline_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"passed", "updated_by", "updated_at"}),
	}).Create(&item).Error
	if err != nil {
		return fmt.Errorf("failed to upsert verdict %s/%s: %w", appID, guidelineID, err)
	}
	return nil
}
