package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ahmetcoskunkizilkaya/quality-moderation/internal/apps"
	"github.com/ahmetcoskunkizilkaya/quality-moderation/internal/dto"
	"github.com/ahmetcoskunkizilkaya/quality-moderation/internal/guidelines"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler_Check(t *testing.T) {
	registry := apps.NewRegistry()
	registry.Register(&apps.AppConfig{AppID: "org.gnome.Glade"})

	tests := []struct {
		name   string
		ping   func() error
		code   int
		status string
	}{
		{"healthy", func() error { return nil }, 200, "ok"},
		{"database down", func() error { return errors.New("dial tcp: refused") }, 503, "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/health", NewHealthHandler(registry, guidelines.Default(), tt.ping).Check)

			resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.code, resp.StatusCode)

			data, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			var body dto.HealthResponse
			require.NoError(t, json.Unmarshal(data, &body))
			assert.Equal(t, tt.status, body.Status)
			assert.Equal(t, 1, body.AppCount)
			assert.Equal(t, guidelines.Default().Len(), body.GuidelineCount)
		})
	}
}

func TestValidAppID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"org.gnome.Glade", true},
		{"_under.score-app", true},
		{"short", false},
		{"9starts.with.digit", false},
		{"has space.app", false},
		{"org.example." + strings.Repeat("a", 250), false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, validAppID(tt.id))
		})
	}
}
