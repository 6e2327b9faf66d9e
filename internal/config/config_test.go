package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"DB_HOST", "PORT", "QUALITY_MODERATOR_IDS", "QUALITY_REJECT_READ_ONLY",
		"METRICS_ENABLED", "LOG_RETENTION_DAYS", "RATE_LIMIT_PER_MINUTE", "GUIDELINES_PATH",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "8080", cfg.Port)
	assert.False(t, cfg.RejectReadOnlyVerdicts)
	assert.True(t, cfg.MetricsEnabled)
	assert.Equal(t, 30, cfg.LogRetentionDays)
	assert.Equal(t, 120, cfg.RateLimitPerMinute)
	assert.Equal(t, "0 3 * * *", cfg.LogCleanupSchedule)
	assert.Empty(t, cfg.GuidelinesPath)
	assert.Nil(t, cfg.ModeratorIDs())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("QUALITY_MODERATOR_IDS", " a , ,b")
	t.Setenv("QUALITY_REJECT_READ_ONLY", "true")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("LOG_RETENTION_DAYS", "-4")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "10")

	cfg := Load()

	assert.Equal(t, []string{"a", "b"}, cfg.ModeratorIDs())
	assert.True(t, cfg.RejectReadOnlyVerdicts)
	assert.False(t, cfg.MetricsEnabled)
	assert.Equal(t, 30, cfg.LogRetentionDays)
	assert.Equal(t, 10, cfg.RateLimitPerMinute)
}

func TestDSN(t *testing.T) {
	cfg := &Config{DBHost: "db", DBUser: "u", DBPassword: "p", DBName: "n", DBPort: "5432", DBSSLMode: "disable"}
	assert.Equal(t, "host=db user=u password=p dbname=n port=5432 sslmode=disable TimeZone=UTC", cfg.DSN())
}
