// Package bootstrap assembles the color scheme stack from configuration.
package bootstrap

import (
	"context"
	"sync/atomic"

	"github.com/bnema/schemewatch/internal/application/port"
	"github.com/bnema/schemewatch/internal/infrastructure/colorscheme"
	"github.com/bnema/schemewatch/internal/infrastructure/config"
	"github.com/bnema/schemewatch/internal/logging"
)

// ColorSchemeStackInput holds the input for BuildColorSchemeStack.
type ColorSchemeStackInput struct {
	Ctx     context.Context
	Manager *config.Manager

	// Portal overrides the session bus connection. When nil and the portal
	// is enabled in config, BuildColorSchemeStack connects to it.
	Portal *colorscheme.Portal
}

// ColorSchemeStack is the assembled desktop color scheme pipeline.
type ColorSchemeStack struct {
	Resolver *colorscheme.Resolver
	Host     *colorscheme.DesktopHost
	Monitor  *colorscheme.Monitor
	Portal   *colorscheme.Portal
}

// detectionToggles mirrors the detection.* settings so reloads take effect
// without touching the config manager on the render path.
type detectionToggles struct {
	portal         atomic.Bool
	gsettings      atomic.Bool
	gtkTheme       atomic.Bool
	requireDisplay atomic.Bool
}

func (t *detectionToggles) store(cfg *config.Config) {
	t.portal.Store(cfg.Detection.Portal)
	t.gsettings.Store(cfg.Detection.Gsettings)
	t.gtkTheme.Store(cfg.Detection.GtkTheme)
	t.requireDisplay.Store(cfg.Detection.RequireDisplay)
}

// toggledDetector reports itself unavailable while its toggle is off.
type toggledDetector struct {
	port.ColorSchemeDetector
	enabled *atomic.Bool
}

func (d toggledDetector) Available() bool {
	return d.enabled.Load() && d.ColorSchemeDetector.Available()
}

// BuildColorSchemeStack registers the color scheme detectors, performs the
// initial resolution and prepares the watchers that keep it current.
//
// Config reloads trigger a refresh and apply detection.* toggles to the
// detectors and to require_display. The portal connection and the watchers
// are set up once from the config at startup.
func BuildColorSchemeStack(input ColorSchemeStackInput) ColorSchemeStack {
	ctx := input.Ctx
	log := logging.FromContext(ctx)
	cfg := input.Manager.Get()

	toggles := &detectionToggles{}
	toggles.store(cfg)

	resolver := colorscheme.NewResolver(colorscheme.NewManagerAdapter(input.Manager))

	portal := input.Portal
	if portal == nil && cfg.Detection.Portal {
		portal = colorscheme.ConnectPortal(ctx)
	}

	var watchers []port.ColorSchemeWatcher
	if portal != nil {
		resolver.RegisterDetector(toggledDetector{colorscheme.NewPortalDetector(portal), &toggles.portal})
		if cfg.Detection.Portal {
			watchers = append(watchers, colorscheme.NewPortalWatcher(portal))
		}
	}
	resolver.RegisterDetector(toggledDetector{colorscheme.NewGsettingsDetector(), &toggles.gsettings})
	if cfg.Detection.Gsettings {
		watchers = append(watchers, colorscheme.NewGsettingsWatcher())
	}
	resolver.RegisterDetector(toggledDetector{colorscheme.NewEnvDetector(), &toggles.gtkTheme})

	pref := resolver.Refresh()
	log.Debug().
		Bool("prefers_dark", pref.PrefersDark).
		Str("source", pref.Source).
		Int("detectors", len(resolver.Detectors())).
		Msg("color scheme resolved")

	input.Manager.OnConfigChange(func(updated *config.Config) {
		toggles.store(updated)
		refreshed := resolver.Refresh()
		log.Debug().
			Bool("prefers_dark", refreshed.PrefersDark).
			Str("source", refreshed.Source).
			Msg("color scheme refreshed after config change")
	})

	return ColorSchemeStack{
		Resolver: resolver,
		Host:     colorscheme.NewDesktopHostFunc(resolver, toggles.requireDisplay.Load),
		Monitor:  colorscheme.NewMonitor(resolver, watchers...),
		Portal:   portal,
	}
}

// Close releases the session bus connection, if any.
func (s ColorSchemeStack) Close() error {
	if s.Portal == nil {
		return nil
	}
	return s.Portal.Close()
}
