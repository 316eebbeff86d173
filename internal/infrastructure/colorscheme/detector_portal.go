package colorscheme

const (
	detectorNamePortal = "portal"
	priorityPortal     = 100
)

// PortalDetector detects color scheme from the XDG Desktop Portal.
// This is the value sandboxed apps and browsers use for prefers-color-scheme,
// and it works across GNOME, KDE and wlroots portals.
type PortalDetector struct {
	reader    settingsReader
	available func() bool
}

// NewPortalDetector creates a new portal-based detector.
func NewPortalDetector(portal *Portal) *PortalDetector {
	return &PortalDetector{
		reader:    portal,
		available: portal.Supported,
	}
}

// Name implements port.ColorSchemeDetector.
func (*PortalDetector) Name() string {
	return detectorNamePortal
}

// Priority implements port.ColorSchemeDetector.
func (*PortalDetector) Priority() int {
	return priorityPortal
}

// Available implements port.ColorSchemeDetector.
func (d *PortalDetector) Available() bool {
	return d.available()
}

// Detect implements port.ColorSchemeDetector.
// A portal reporting "no preference" is treated as a failed detection so
// lower priority detectors get a chance.
func (d *PortalDetector) Detect() (prefersDark, ok bool) {
	value, err := d.reader.ReadSetting(appearanceNamespace, colorSchemeKey)
	if err != nil {
		return false, false
	}
	return colorSchemeFromVariant(value)
}
