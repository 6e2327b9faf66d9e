package services

import (
	"errors"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/quality-moderation/internal/dto"
	"github.com/ahmetcoskunkizilkaya/quality-moderation/internal/guidelines"
	"github.com/ahmetcoskunkizilkaya/quality-moderation/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/quality-moderation/internal/models"
	"github.com/ahmetcoskunkizilkaya/quality-moderation/internal/quality"
	"github.com/google/uuid"
)

var ErrReadOnlyGuideline = errors.New("guideline is read-only")

// AppLister enumerates the app catalog.
type AppLister interface {
	AppIDs() []string
}

type QualityServiceConfig struct {
	// RejectReadOnly refuses verdicts for read-only guidelines. Off by
	// default: the flag is advisory and writes are accepted.
	RejectReadOnly bool
	// Now is the evaluation clock. Defaults to time.Now.
	Now func() time.Time
}

type QualityService struct {
	store   VerdictStore
	catalog *guidelines.Catalog
	apps    AppLister
	metrics *metrics.QualityMetrics
	cfg     QualityServiceConfig
}

func NewQualityService(store VerdictStore, catalog *guidelines.Catalog, apps AppLister, m *metrics.QualityMetrics, cfg QualityServiceConfig) *QualityService {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &QualityService{
		store:   store,
		catalog: catalog,
		apps:    apps,
		metrics: m,
		cfg:     cfg,
	}
}

// Status computes the compliance report of one app.
func (s *QualityService) Status(appID string) (*quality.Report, error) {
	start := time.Now()

	verdicts, err := s.store.FindByApp(appID)
	if err != nil {
		s.metrics.RecordStoreError("find_by_app")
		return nil, err
	}

	report := quality.Evaluate(appID, s.catalog, verdicts, s.cfg.Now())
	s.metrics.RecordEvaluation(report.Passes, time.Since(start))
	return &report, nil
}

// StatusAll computes the report of every app in the catalog, in catalog order.
func (s *QualityService) StatusAll() ([]dto.AppQualityStatus, error) {
	ids := s.apps.AppIDs()
	result := make([]dto.AppQualityStatus, 0, len(ids))
	for _, id := range ids {
		report, err := s.Status(id)
		if err != nil {
			return nil, err
		}
		result = append(result, dto.AppQualityStatus{ID: id, Status: report})
	}
	return result, nil
}

// Detail returns the full catalog and every stored verdict of the app,
// regardless of activation time.
func (s *QualityService) Detail(appID string) (*dto.QualityModerationDetail, error) {
	verdicts, err := s.store.FindByApp(appID)
	if err != nil {
		s.metrics.RecordStoreError("find_by_app")
		return nil, err
	}

	marks := make(map[string]models.QualityModeration, len(verdicts))
	for _, v := range verdicts {
		marks[v.GuidelineID] = v
	}
	return &dto.QualityModerationDetail{
		Categories: s.catalog.Categories(),
		Marks:      marks,
	}, nil
}

// SetVerdict records a moderator verdict. Guideline ids are not checked
// against the catalog; only Status decides which verdicts are surfaced.
func (s *QualityService) SetVerdict(appID, guidelineID string, passed bool, moderatorID uuid.UUID) error {
	if s.cfg.RejectReadOnly {
		if g, ok := s.catalog.Lookup(guidelineID); ok && g.ReadOnly {
			return ErrReadOnlyGuideline
		}
	}

	if err := s.store.Upsert(appID, guidelineID, passed, moderatorID); err != nil {
		s.metrics.RecordStoreError("upsert")
		return err
	}
	s.metrics.RecordUpsert(passed)

	slog.Info("quality verdict set",
		"app_id", appID,
		"guideline_id", guidelineID,
		"passed", passed,
		"moderator_id", moderatorID.String(),
	)
	return nil
}
