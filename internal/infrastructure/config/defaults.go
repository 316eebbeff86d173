package config

// Default configuration constants
const (
	defaultLogLevel  = "info"
	defaultLogFormat = "console"
)

// DefaultConfig returns the default configuration.
// Every detection source is enabled; the resolver orders them by priority.
func DefaultConfig() *Config {
	return &Config{
		Appearance: AppearanceConfig{
			ColorScheme: ThemeDefault,
		},
		Detection: DetectionConfig{
			Portal:         true,
			Gsettings:      true,
			GtkTheme:       true,
			RequireDisplay: true,
		},
		Logging: LoggingConfig{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
