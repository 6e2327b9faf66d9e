package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQualityMetrics_Record(t *testing.T) {
	m := NewQualityMetrics()

	m.RecordEvaluation(true, 2*time.Millisecond)
	m.RecordEvaluation(false, time.Millisecond)
	m.RecordEvaluation(false, time.Millisecond)
	m.RecordUpsert(true)
	m.RecordStoreError("find_by_app")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.evaluationsTotal.WithLabelValues("pass")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.evaluationsTotal.WithLabelValues("fail")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.upsertsTotal.WithLabelValues("true")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.upsertsTotal.WithLabelValues("false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.storeErrorsTotal.WithLabelValues("find_by_app")))
}

func TestQualityMetrics_NilSafe(t *testing.T) {
	var m *QualityMetrics
	assert.NotPanics(t, func() {
		m.RecordEvaluation(true, time.Second)
		m.RecordUpsert(false)
		m.RecordStoreError("upsert")
	})
}

func TestQualityMetrics_Handler(t *testing.T) {
	m := NewQualityMetrics()
	m.RecordUpsert(false)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, string(body), `quality_moderation_verdict_upserts_total{passed="false"} 1`)
}
