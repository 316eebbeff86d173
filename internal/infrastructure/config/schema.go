package config

// Color scheme values accepted by appearance.color_scheme.
const (
	ThemePreferDark  = "prefer-dark"
	ThemePreferLight = "prefer-light"
	ThemeDefault     = "default"
)

// Config represents the complete configuration for schemewatch.
type Config struct {
	Appearance AppearanceConfig `mapstructure:"appearance" toml:"appearance" json:"appearance"`
	Detection  DetectionConfig  `mapstructure:"detection" toml:"detection" json:"detection"`
	Logging    LoggingConfig    `mapstructure:"logging" toml:"logging" json:"logging"`
}

// AppearanceConfig holds the user's explicit appearance choices.
type AppearanceConfig struct {
	// ColorScheme overrides system detection: "prefer-dark", "prefer-light", or "default" (follows system)
	ColorScheme string `mapstructure:"color_scheme" toml:"color_scheme" json:"color_scheme" jsonschema:"enum=default,enum=prefer-dark,enum=prefer-light,description=Override the detected preference or follow the system"`
}

// DetectionConfig selects which system sources feed the preference.
type DetectionConfig struct {
	// Portal reads and watches org.freedesktop.appearance via the XDG Desktop Portal.
	Portal bool `mapstructure:"portal" toml:"portal" json:"portal" jsonschema:"description=Use the XDG Desktop Portal Settings interface"`
	// Gsettings reads and monitors org.gnome.desktop.interface color-scheme.
	Gsettings bool `mapstructure:"gsettings" toml:"gsettings" json:"gsettings" jsonschema:"description=Use gsettings (GNOME)"`
	// GtkTheme inspects the GTK_THEME environment variable.
	GtkTheme bool `mapstructure:"gtk_theme" toml:"gtk_theme" json:"gtk_theme" jsonschema:"description=Use the GTK_THEME environment variable"`
	// RequireDisplay reports the scheme as unavailable outside a graphical session.
	RequireDisplay bool `mapstructure:"require_display" toml:"require_display" json:"require_display" jsonschema:"description=Require a Wayland or X11 session"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level" toml:"level" json:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error,enum=fatal"`
	Format string `mapstructure:"format" toml:"format" json:"format" jsonschema:"enum=console,enum=text,enum=json"`
}
