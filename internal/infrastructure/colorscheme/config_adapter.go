package colorscheme

import (
	"github.com/bnema/schemewatch/internal/infrastructure/config"
)

// ConfigAdapter adapts the configuration to the ConfigProvider interface.
// It reads through a getter so reloaded config is picked up on the next Refresh.
type ConfigAdapter struct {
	get func() *config.Config
}

// NewConfigAdapter creates a config adapter over a fixed config.
func NewConfigAdapter(cfg *config.Config) *ConfigAdapter {
	return &ConfigAdapter{get: func() *config.Config { return cfg }}
}

// NewManagerAdapter creates a config adapter that follows a live config manager.
func NewManagerAdapter(m *config.Manager) *ConfigAdapter {
	return &ConfigAdapter{get: m.Get}
}

// GetColorScheme implements ConfigProvider.
func (a *ConfigAdapter) GetColorScheme() string {
	if a == nil || a.get == nil {
		return ""
	}
	cfg := a.get()
	if cfg == nil {
		return ""
	}
	return cfg.Appearance.ColorScheme
}
