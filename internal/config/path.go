// Package config provides configuration utilities for the application.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// Default artifact and database locations, relative to the user data dir.
const (
	defaultDataDir = ".local/share/souqrisk"
)

// ExpandPath expands a leading ~ and $VAR style environment variables in a
// file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			path = home
		}
	} else if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}

	return os.ExpandEnv(path)
}

// DefaultModelPath is where train writes and score reads the model bundle
// unless overridden.
func DefaultModelPath() string {
	return filepath.Join(dataDir(), "models", "risk_model.msgpack")
}

// DefaultDatabasePath is the default SQLite location.
func DefaultDatabasePath() string {
	return filepath.Join(dataDir(), "souqrisk.db")
}

func dataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return defaultDataDir
	}
	return filepath.Join(home, defaultDataDir)
}
