package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/bnema/schemewatch/pkg/colorscheme"
)

func TestThemeFor(t *testing.T) {
	assert.Equal(t, lipgloss.Color(DefaultLightPalette().Background), ThemeFor(colorscheme.Light()).Background)
	assert.Equal(t, lipgloss.Color(DefaultDarkPalette().Background), ThemeFor(colorscheme.Dark()).Background)
	assert.Equal(t, lipgloss.Color(DefaultDarkPalette().Background),
		ThemeFor(colorscheme.Unavailable(colorscheme.ReasonNoWindow)).Background)
}

func TestSchemeBadge(t *testing.T) {
	theme := NewThemeFromPalette(DefaultDarkPalette())
	assert.Contains(t, theme.SchemeBadge(colorscheme.Dark()), "dark")
	assert.Contains(t, theme.SchemeBadge(colorscheme.Light()), "light")
	assert.Contains(t, theme.SchemeBadge(colorscheme.Unavailable("x")), "unavailable")
}

func TestDoctorRenderer(t *testing.T) {
	r := NewDoctorRenderer(NewThemeFromPalette(DefaultDarkPalette()))
	out := r.Render(DoctorReport{
		Scheme:     colorscheme.Dark(),
		Source:     "portal",
		Display:    true,
		Override:   "default",
		ConfigFile: "/tmp/config.toml",
		Detectors: []DoctorSource{
			{Name: "portal", Priority: 100, Available: true, Result: "dark"},
			{Name: "gsettings", Priority: 10},
		},
	})

	assert.Contains(t, out, "via portal")
	assert.Contains(t, out, "/tmp/config.toml")
	assert.Contains(t, out, "priority 100")
	assert.Contains(t, out, "gsettings")
	assert.Contains(t, out, "(none enabled)")
}

func TestWatchKeyMap(t *testing.T) {
	keys := DefaultWatchKeyMap()
	assert.Len(t, keys.ShortHelp(), 3)
	assert.Len(t, keys.FullHelp(), 2)
	assert.Contains(t, keys.Quit.Keys(), "ctrl+c")
}
