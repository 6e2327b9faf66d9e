package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT issued by the account service
	JWTSecret string

	// Quality moderation
	QualityModeratorIDs    string
	RejectReadOnlyVerdicts bool
	GuidelinesPath         string

	// Server
	Port               string
	CORSOrigins        string
	RateLimitPerMinute int
	MetricsEnabled     bool

	// Logging
	LogRetentionDays   int
	LogCleanupSchedule string

	// App catalog
	AppsConfigPath string
}

func Load() *Config {
	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "quality_moderation"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret: getEnv("JWT_SECRET", ""),

		QualityModeratorIDs:    getEnv("QUALITY_MODERATOR_IDS", ""),
		RejectReadOnlyVerdicts: parseBool(getEnv("QUALITY_REJECT_READ_ONLY", "false")),
		GuidelinesPath:         getEnv("GUIDELINES_PATH", ""),

		Port:               getEnv("PORT", "8080"),
		CORSOrigins:        getEnv("CORS_ORIGINS", "*"),
		RateLimitPerMinute: parseInt(getEnv("RATE_LIMIT_PER_MINUTE", "120"), 120),
		MetricsEnabled:     parseBool(getEnv("METRICS_ENABLED", "true")),

		LogRetentionDays:   parseInt(getEnv("LOG_RETENTION_DAYS", "30"), 30),
		LogCleanupSchedule: getEnv("LOG_CLEANUP_SCHEDULE", "0 3 * * *"),

		AppsConfigPath: getEnv("APPS_CONFIG_PATH", "apps.json"),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

// ModeratorIDs returns the configured quality moderator user ids.
func (c *Config) ModeratorIDs() []string {
	return ParseCSV(c.QualityModeratorIDs)
}

func ParseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false
	}
	return b
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
