package colorscheme

import (
	"context"
	"os/exec"
	"strings"
	"time"
)

const (
	detectorNameGsettings = "gsettings"
	priorityGsettings     = 10

	gsettingsSchema = "org.gnome.desktop.interface"
	gsettingsKey    = "color-scheme"

	gsettingsTimeout = 2 * time.Second
)

// commandOutput runs a command and returns its stdout.
type commandOutput func(ctx context.Context, name string, args ...string) ([]byte, error)

func execOutput(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// GsettingsDetector detects color scheme from GNOME gsettings.
// This is the most reliable method for GNOME-based desktops without a portal.
type GsettingsDetector struct {
	lookPath func(string) (string, error)
	output   commandOutput
}

// NewGsettingsDetector creates a new gsettings-based detector.
func NewGsettingsDetector() *GsettingsDetector {
	return &GsettingsDetector{
		lookPath: exec.LookPath,
		output:   execOutput,
	}
}

// Name implements port.ColorSchemeDetector.
func (*GsettingsDetector) Name() string {
	return detectorNameGsettings
}

// Priority implements port.ColorSchemeDetector.
func (*GsettingsDetector) Priority() int {
	return priorityGsettings
}

// Available implements port.ColorSchemeDetector.
// Returns true if gsettings command is available.
func (d *GsettingsDetector) Available() bool {
	_, err := d.lookPath("gsettings")
	return err == nil
}

// Detect implements port.ColorSchemeDetector.
// Queries org.gnome.desktop.interface color-scheme.
func (d *GsettingsDetector) Detect() (prefersDark, ok bool) {
	ctx, cancel := context.WithTimeout(context.Background(), gsettingsTimeout)
	defer cancel()

	output, err := d.output(ctx, "gsettings", "get", gsettingsSchema, gsettingsKey)
	if err != nil {
		return false, false
	}
	return parseGsettingsColorScheme(string(output))
}

// parseGsettingsColorScheme parses output like "'prefer-dark'\n".
func parseGsettingsColorScheme(output string) (prefersDark, ok bool) {
	result := strings.TrimSpace(output)
	result = strings.Trim(result, "'\"")

	switch result {
	case "prefer-dark":
		return true, true
	case "prefer-light":
		return false, true
	default:
		// "default" means follow system, which we can't determine here
		return false, false
	}
}
