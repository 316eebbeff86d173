package bootstrap

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/schemewatch/internal/infrastructure/colorscheme"
	"github.com/bnema/schemewatch/internal/infrastructure/config"
	pkgcs "github.com/bnema/schemewatch/pkg/colorscheme"
)

func newTestManager(t *testing.T, mutate func(*config.Config)) *config.Manager {
	t.Helper()
	dir := t.TempDir()
	mgr, err := config.NewManagerAt(dir)
	require.NoError(t, err)
	require.NoError(t, mgr.Load())

	cfg := mgr.Get()
	cfg.Detection.Gsettings = false
	cfg.Detection.GtkTheme = false
	cfg.Detection.RequireDisplay = false
	mutate(cfg)
	require.NoError(t, mgr.Save(cfg))
	return mgr
}

func TestBuildColorSchemeStack_ConfigOverride(t *testing.T) {
	mgr := newTestManager(t, func(cfg *config.Config) {
		cfg.Appearance.ColorScheme = config.ThemePreferLight
	})

	stack := BuildColorSchemeStack(ColorSchemeStackInput{
		Ctx:     context.Background(),
		Manager: mgr,
		Portal:  &colorscheme.Portal{},
	})
	defer func() { _ = stack.Close() }()

	pref := stack.Resolver.Current()
	assert.False(t, pref.PrefersDark)
	assert.Equal(t, "config", pref.Source)
	detectors := stack.Resolver.Detectors()
	require.Len(t, detectors, 3)
	assert.Equal(t, "portal", detectors[0].Name())
	for _, d := range detectors {
		assert.False(t, d.Available(), d.Name())
	}
	require.Len(t, stack.Monitor.Watchers(), 1)
	assert.Equal(t, "portal", stack.Monitor.Watchers()[0].Name())
	assert.False(t, stack.Monitor.Watchers()[0].Available())

	hook := &pkgcs.Hook{}
	assert.True(t, hook.Read(stack.Host, nil).IsLight())
}

func TestBuildColorSchemeStack_RegistersEnabledDetectors(t *testing.T) {
	mgr := newTestManager(t, func(cfg *config.Config) {
		cfg.Detection.Portal = false
		cfg.Detection.Gsettings = true
		cfg.Detection.GtkTheme = true
	})

	stack := BuildColorSchemeStack(ColorSchemeStackInput{Ctx: context.Background(), Manager: mgr})
	defer func() { _ = stack.Close() }()

	priorities := make(map[string]int, 2)
	for _, d := range stack.Resolver.Detectors() {
		priorities[d.Name()] = d.Priority()
	}
	assert.Equal(t, map[string]int{"gsettings": 10, "GTK_THEME": 20}, priorities)
	require.Len(t, stack.Monitor.Watchers(), 1)
	assert.Equal(t, "gsettings", stack.Monitor.Watchers()[0].Name())
	assert.Nil(t, stack.Portal)
}

func TestBuildColorSchemeStack_ConfigReloadRefreshes(t *testing.T) {
	mgr := newTestManager(t, func(cfg *config.Config) {
		cfg.Detection.Portal = false
		cfg.Appearance.ColorScheme = config.ThemePreferLight
	})

	stack := BuildColorSchemeStack(ColorSchemeStackInput{Ctx: context.Background(), Manager: mgr})
	require.False(t, stack.Resolver.Current().PrefersDark)

	changed := make(chan struct{}, 1)
	hook := &pkgcs.Hook{}
	require.True(t, hook.Read(stack.Host, func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	}).IsLight())

	mgr.Watch(context.Background())

	cfg := mgr.Get()
	cfg.Appearance.ColorScheme = config.ThemePreferDark
	require.NoError(t, config.WriteConfig(cfg, mgr.ConfigFile()))

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("config reload did not schedule a re-render")
	}
	assert.True(t, hook.Read(stack.Host, nil).IsDark())
}

func TestBuildColorSchemeStack_ReloadAppliesDetectionToggles(t *testing.T) {
	t.Setenv("GTK_THEME", "Adwaita")
	t.Setenv("WAYLAND_DISPLAY", "")
	t.Setenv("DISPLAY", "")

	mgr := newTestManager(t, func(cfg *config.Config) {
		cfg.Detection.Portal = false
		cfg.Detection.GtkTheme = true
		cfg.Appearance.ColorScheme = config.ThemeDefault
	})

	stack := BuildColorSchemeStack(ColorSchemeStackInput{Ctx: context.Background(), Manager: mgr})
	pref := stack.Resolver.Current()
	require.False(t, pref.PrefersDark)
	require.Equal(t, "GTK_THEME", pref.Source)
	_, ok := stack.Host.Window()
	require.True(t, ok)

	changed := make(chan struct{}, 1)
	hook := &pkgcs.Hook{}
	require.True(t, hook.Read(stack.Host, func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	}).IsLight())

	mgr.Watch(context.Background())

	cfg := mgr.Get()
	cfg.Detection.GtkTheme = false
	cfg.Detection.RequireDisplay = true
	require.NoError(t, config.WriteConfig(cfg, mgr.ConfigFile()))

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("disabling GTK_THEME detection did not schedule a re-render")
	}
	pref = stack.Resolver.Current()
	assert.True(t, pref.PrefersDark)
	assert.Equal(t, "fallback", pref.Source)
	assert.False(t, stack.Resolver.Available())

	_, ok = stack.Host.Window()
	assert.False(t, ok, "require_display applies without a restart")
}
