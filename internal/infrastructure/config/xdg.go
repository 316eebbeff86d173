package config

import (
	"os"
	"path/filepath"
)

const (
	appName        = "schemewatch"
	configFileName = "config.toml"
	logFileName    = "schemewatch.log"

	dirPerm  = 0o755
	filePerm = 0o644
)

// GetConfigDir returns $XDG_CONFIG_HOME/schemewatch (default: ~/.config/schemewatch).
func GetConfigDir() (string, error) {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// GetStateDir returns $XDG_STATE_HOME/schemewatch (default: ~/.local/state/schemewatch).
func GetStateDir() (string, error) {
	return xdgDir("XDG_STATE_HOME", filepath.Join(".local", "state"))
}

// GetConfigFile returns the path of the TOML config file.
func GetConfigFile() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// GetLogFile returns the path of the log file used by the TUI.
func GetLogFile() (string, error) {
	dir, err := GetStateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, logFileName), nil
}

func xdgDir(envVar, homeFallback string) (string, error) {
	// Development mode: use .dev directory in current working directory
	if os.Getenv("ENV") == "dev" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		return filepath.Join(cwd, ".dev", appName), nil
	}

	base := os.Getenv(envVar)
	if base == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(homeDir, homeFallback)
	}
	return filepath.Join(base, appName), nil
}
