// ABOUTME: XDG Base Directory specification helpers
// ABOUTME: Resolves data and config directories and the default notemma paths
package config

import (
	"os"
	"path/filepath"
)

// AppName names notemma's directories under the XDG roots.
const AppName = "notemma"

// GetDataHome returns XDG_DATA_HOME or fallback to ~/.local/share
func GetDataHome() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return xdg
	}
	home := os.Getenv("HOME")
	return filepath.Join(home, ".local", "share")
}

// GetConfigHome returns XDG_CONFIG_HOME or fallback to ~/.config
func GetConfigHome() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return xdg
	}
	home := os.Getenv("HOME")
	return filepath.Join(home, ".config")
}

// DefaultDBPath is where the shared log database lives when nothing else is configured.
func DefaultDBPath() string {
	return filepath.Join(GetDataHome(), AppName, AppName+".db")
}

// DefaultConfigPath is the per-user site configuration file.
func DefaultConfigPath() string {
	return filepath.Join(GetConfigHome(), AppName, "config.toml")
}
