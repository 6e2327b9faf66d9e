package apps

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// AppConfig is one entry of the app catalog.
type AppConfig struct {
	AppID string `json:"app_id"`
	Name  string `json:"name"`
}

type AppsFile struct {
	Apps []AppConfig `json:"apps"`
}

// Registry holds the app catalog in registration order.
type Registry struct {
	mu    sync.RWMutex
	apps  map[string]*AppConfig
	order []string
}

func NewRegistry() *Registry {
	return &Registry{
		apps: make(map[string]*AppConfig),
	}
}

func LoadFromFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read apps config: %w", err)
	}

	var file AppsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse apps config: %w", err)
	}

	registry := NewRegistry()
	for i := range file.Apps {
		if file.Apps[i].AppID == "" {
			return nil, fmt.Errorf("apps config entry %d has no app_id", i)
		}
		registry.Register(&file.Apps[i])
	}
	return registry, nil
}

// Register adds or replaces an app. Replacing keeps the first position.
func (r *Registry) Register(cfg *AppConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.apps[cfg.AppID]; !ok {
		r.order = append(r.order, cfg.AppID)
	}
	r.apps[cfg.AppID] = cfg
}

// AppIDs lists every app id in registration order.
func (r *Registry) AppIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}
