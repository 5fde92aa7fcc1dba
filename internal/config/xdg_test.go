// ABOUTME: Tests for XDG directory resolution
// ABOUTME: Validates fallback behavior and default notemma paths
package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetDataHome(t *testing.T) {
	t.Run("uses XDG_DATA_HOME when set", func(t *testing.T) {
		t.Setenv("XDG_DATA_HOME", "/custom/data")
		if got := GetDataHome(); got != "/custom/data" {
			t.Errorf("got %s, want /custom/data", got)
		}
	})

	t.Run("falls back to HOME/.local/share", func(t *testing.T) {
		t.Setenv("XDG_DATA_HOME", "")
		want := filepath.Join(os.Getenv("HOME"), ".local", "share")
		if got := GetDataHome(); got != want {
			t.Errorf("got %s, want %s", got, want)
		}
	})
}

func TestGetConfigHome(t *testing.T) {
	t.Run("uses XDG_CONFIG_HOME when set", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/custom/config")
		if got := GetConfigHome(); got != "/custom/config" {
			t.Errorf("got %s, want /custom/config", got)
		}
	})

	t.Run("falls back to HOME/.config", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		want := filepath.Join(os.Getenv("HOME"), ".config")
		if got := GetConfigHome(); got != want {
			t.Errorf("got %s, want %s", got, want)
		}
	})
}

func TestDefaultPaths(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/data")
	t.Setenv("XDG_CONFIG_HOME", "/config")

	if got := DefaultDBPath(); got != "/data/notemma/notemma.db" {
		t.Errorf("DefaultDBPath() = %s", got)
	}
	if got := DefaultConfigPath(); got != "/config/notemma/config.toml" {
		t.Errorf("DefaultConfigPath() = %s", got)
	}
}
