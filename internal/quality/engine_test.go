package quality

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/quality-moderation/internal/guidelines"
	"github.com/ahmetcoskunkizilkaya/quality-moderation/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCatalog = `
categories:
  - id: general
    guidelines:
      - id: G
        url: https://example.org/g
        needed_to_pass_since: 2023-09-01T00:00:00Z
  - id: later
    guidelines:
      - id: H
        url: https://example.org/h
        needed_to_pass_since: 2099-01-01T00:00:00Z
      - id: R
        url: https://example.org/r
        needed_to_pass_since: 2023-09-30T00:00:00Z
        read_only: true
`

func mustCatalog(t *testing.T, yaml string) *guidelines.Catalog {
	t.Helper()
	c, err := guidelines.Parse([]byte(yaml))
	require.NoError(t, err)
	return c
}

func verdict(appID, guidelineID string, passed bool, at time.Time) models.QualityModeration {
	return models.QualityModeration{
		AppID:       appID,
		GuidelineID: guidelineID,
		Passed:      passed,
		UpdatedBy:   uuid.New(),
		UpdatedAt:   at,
	}
}

var now = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestEvaluate_NoVerdicts(t *testing.T) {
	c := mustCatalog(t, `
categories:
  - id: general
    guidelines:
      - id: G
        url: https://example.org/g
        needed_to_pass_since: 2023-09-01T00:00:00Z
`)

	r := Evaluate("X", c, nil, now)

	assert.Equal(t, 1, r.Unrated)
	assert.Equal(t, 0, r.Passed)
	assert.Equal(t, 0, r.NotPassed)
	assert.False(t, r.Passes)
	assert.True(t, r.LastUpdated.IsZero())
	require.Len(t, r.Checks, 1)
	assert.Equal(t, Unrated, r.Checks[0].Passed)
	assert.Nil(t, r.Checks[0].UpdatedAt)
}

func TestEvaluate_SinglePass(t *testing.T) {
	c := mustCatalog(t, `
categories:
  - id: general
    guidelines:
      - id: G
        url: https://example.org/g
        needed_to_pass_since: 2023-09-01T00:00:00Z
`)
	at := time.Date(2023, 12, 1, 10, 0, 0, 0, time.UTC)

	r := Evaluate("X", c, []models.QualityModeration{verdict("X", "G", true, at)}, now)

	assert.Equal(t, 0, r.Unrated)
	assert.Equal(t, 1, r.Passed)
	assert.Equal(t, 0, r.NotPassed)
	assert.True(t, r.Passes)
	assert.True(t, at.Equal(r.LastUpdated))
	require.Len(t, r.Checks, 1)
	assert.Equal(t, Passed, r.Checks[0].Passed)
	require.NotNil(t, r.Checks[0].UpdatedAt)
	assert.True(t, at.Equal(*r.Checks[0].UpdatedAt))
}

func TestEvaluate_FutureGuidelineExcluded(t *testing.T) {
	c := mustCatalog(t, testCatalog)

	r := Evaluate("X", c, nil, now)

	for _, check := range r.Checks {
		assert.NotEqual(t, "H", check.Guideline)
	}
	assert.Equal(t, 2, r.Unrated)
	assert.Equal(t, 0, r.Passed+r.NotPassed)
}

func TestEvaluate_Counters(t *testing.T) {
	c := mustCatalog(t, testCatalog)
	at := time.Date(2023, 11, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		verdicts  []models.QualityModeration
		unrated   int
		passed    int
		notPassed int
		passes    bool
	}{
		{
			name:    "nothing rated",
			unrated: 2,
		},
		{
			name:     "all pass",
			verdicts: []models.QualityModeration{verdict("X", "G", true, at), verdict("X", "R", true, at)},
			passed:   2,
			passes:   true,
		},
		{
			name:      "one fails",
			verdicts:  []models.QualityModeration{verdict("X", "G", true, at), verdict("X", "R", false, at)},
			passed:    1,
			notPassed: 1,
		},
		{
			name:     "one unrated",
			verdicts: []models.QualityModeration{verdict("X", "G", true, at)},
			unrated:  1,
			passed:   1,
		},
		{
			name:     "future guideline failing does not count",
			verdicts: []models.QualityModeration{verdict("X", "G", true, at), verdict("X", "R", true, at), verdict("X", "H", false, at)},
			passed:   2,
			passes:   true,
		},
		{
			name:     "retired guideline ignored",
			verdicts: []models.QualityModeration{verdict("X", "G", true, at), verdict("X", "R", true, at), verdict("X", "gone", false, at)},
			passed:   2,
			passes:   true,
		},
		{
			name:     "other apps ignored",
			verdicts: []models.QualityModeration{verdict("Y", "G", false, at), verdict("Y", "R", false, at)},
			unrated:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Evaluate("X", c, tt.verdicts, now)
			assert.Equal(t, tt.unrated, r.Unrated, "unrated")
			assert.Equal(t, tt.passed, r.Passed, "passed")
			assert.Equal(t, tt.notPassed, r.NotPassed, "not-passed")
			assert.Equal(t, tt.passes, r.Passes, "passes")
			assert.Equal(t, r.Unrated == 0 && r.NotPassed == 0, r.Passes)
			assert.LessOrEqual(t, r.Unrated+r.Passed+r.NotPassed, len(r.Checks))
		})
	}
}

func TestEvaluate_LastUpdatedIncludesInactiveAndRetired(t *testing.T) {
	c := mustCatalog(t, testCatalog)
	early := time.Date(2023, 10, 1, 0, 0, 0, 0, time.UTC)
	futureMark := time.Date(2023, 12, 24, 0, 0, 0, 0, time.UTC)
	retiredMark := time.Date(2023, 12, 30, 0, 0, 0, 0, time.UTC)

	r := Evaluate("X", c, []models.QualityModeration{
		verdict("X", "G", true, early),
		verdict("X", "H", true, futureMark),
	}, now)
	assert.True(t, futureMark.Equal(r.LastUpdated))

	r = Evaluate("X", c, []models.QualityModeration{
		verdict("X", "G", true, early),
		verdict("X", "gone", true, retiredMark),
	}, now)
	assert.True(t, retiredMark.Equal(r.LastUpdated))
}

func TestEvaluate_ActivationAtNow(t *testing.T) {
	c := mustCatalog(t, `
categories:
  - id: general
    guidelines:
      - id: edge
        url: https://example.org/edge
        needed_to_pass_since: 2024-01-01T00:00:00Z
`)

	// Unrated at the exact activation instant: listed and counted.
	r := Evaluate("X", c, nil, now)
	require.Len(t, r.Checks, 1)
	assert.Equal(t, 1, r.Unrated)
	assert.False(t, r.Passes)

	// Rated at the exact activation instant: listed but not tallied.
	r = Evaluate("X", c, []models.QualityModeration{verdict("X", "edge", false, now)}, now)
	require.Len(t, r.Checks, 1)
	assert.Equal(t, Failed, r.Checks[0].Passed)
	assert.Equal(t, 0, r.Unrated)
	assert.Equal(t, 0, r.NotPassed)
	assert.True(t, r.Passes)

	r = Evaluate("X", c, []models.QualityModeration{verdict("X", "edge", false, now)}, now.Add(time.Nanosecond))
	assert.Equal(t, 1, r.NotPassed)
	assert.False(t, r.Passes)
}

func TestEvaluate_AllFutureTriviallyPasses(t *testing.T) {
	c := mustCatalog(t, `
categories:
  - id: later
    guidelines:
      - id: H
        url: https://example.org/h
        needed_to_pass_since: 2099-01-01T00:00:00Z
`)

	r := Evaluate("unknown.app", c, nil, now)

	assert.True(t, r.Passes)
	assert.Empty(t, r.Checks)
	assert.Equal(t, 0, r.Unrated+r.Passed+r.NotPassed)
}

func TestEvaluate_PreservesCatalogOrder(t *testing.T) {
	r := Evaluate("X", guidelines.Default(), nil, now)

	entries := guidelines.Default().Entries()
	require.Len(t, r.Checks, len(entries))
	for i, e := range entries {
		assert.Equal(t, e.CategoryID, r.Checks[i].Category)
		assert.Equal(t, e.Guideline.ID, r.Checks[i].Guideline)
	}
}

func TestEvaluate_FirstVerdictWins(t *testing.T) {
	c := mustCatalog(t, testCatalog)
	at := time.Date(2023, 11, 1, 0, 0, 0, 0, time.UTC)

	r := Evaluate("X", c, []models.QualityModeration{
		verdict("X", "G", false, at),
		verdict("X", "G", true, at.Add(time.Hour)),
	}, now)

	assert.Equal(t, Failed, r.Checks[0].Passed)
	assert.True(t, at.Add(time.Hour).Equal(r.LastUpdated))
}

func TestReport_JSON(t *testing.T) {
	r := Report{
		Passes:    false,
		Unrated:   1,
		Passed:    2,
		NotPassed: 3,
		Checks: []Check{
			{Category: "c", Guideline: "g", NeededToPassSince: now, Passed: Unrated},
		},
	}

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"passes": false,
		"unrated": 1,
		"passed": 2,
		"not-passed": 3,
		"last-updated": "0001-01-01T00:00:00Z",
		"checks": [{"category":"c","guideline":"g","needed_to_pass_since":"2024-01-01T00:00:00Z","passed":null,"updated_at":null}]
	}`, string(data))
}
