// Package quality computes app compliance reports from the guideline
// catalog and the stored moderator verdicts.
package quality

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/quality-moderation/internal/guidelines"
	"github.com/ahmetcoskunkizilkaya/quality-moderation/internal/models"
)

// Check is the state of one active guideline for an app.
type Check struct {
	Category          string     `json:"category"`
	Guideline         string     `json:"guideline"`
	NeededToPassSince time.Time  `json:"needed_to_pass_since"`
	Passed            Mark       `json:"passed"`
	UpdatedAt         *time.Time `json:"updated_at"`
}

// Report is the compliance summary for one app at one instant.
type Report struct {
	Passes      bool      `json:"passes"`
	Unrated     int       `json:"unrated"`
	Passed      int       `json:"passed"`
	NotPassed   int       `json:"not-passed"`
	LastUpdated time.Time `json:"last-updated"`
	Checks      []Check   `json:"checks"`
}

// Evaluate builds the report for appID. It never fails: an unknown app,
// no verdicts or verdicts for retired guidelines all produce a report.
//
// Guidelines activating after now are skipped entirely. Tallies of passed
// and not-passed additionally require the activation to be strictly
// before now, so a guideline activating exactly at now is listed (and
// counted as unrated if it has no verdict) but never counted as passed
// or failed.
func Evaluate(appID string, catalog *guidelines.Catalog, verdicts []models.QualityModeration, now time.Time) Report {
	byGuideline := make(map[string]models.QualityModeration, len(verdicts))
	var lastUpdated time.Time
	for _, v := range verdicts {
		if v.AppID != appID {
			continue
		}
		if _, seen := byGuideline[v.GuidelineID]; !seen {
			byGuideline[v.GuidelineID] = v
		}
		if v.UpdatedAt.After(lastUpdated) {
			lastUpdated = v.UpdatedAt
		}
	}

	report := Report{
		LastUpdated: lastUpdated,
		Checks:      []Check{},
	}

	for _, entry := range catalog.Entries() {
		g := entry.Guideline
		if !g.ActiveAt(now) {
			continue
		}

		check := Check{
			Category:          entry.CategoryID,
			Guideline:         g.ID,
			NeededToPassSince: g.NeededToPassSince,
			Passed:            Unrated,
		}
		if v, ok := byGuideline[g.ID]; ok {
			updatedAt := v.UpdatedAt
			check.Passed = MarkOf(v.Passed)
			check.UpdatedAt = &updatedAt
		}
		report.Checks = append(report.Checks, check)
	}

	for _, check := range report.Checks {
		enforced := check.NeededToPassSince.Before(now)
		switch {
		case check.Passed == Unrated:
			report.Unrated++
		case check.Passed == Passed && enforced:
			report.Passed++
		case check.Passed == Failed && enforced:
			report.NotPassed++
		}
	}

	report.Passes = report.Unrated+report.NotPassed == 0
	return report
}
