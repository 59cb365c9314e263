package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// appName is the single source of truth for the application name: all
// derived identifiers (env vars, config paths) are computed from it, the
// same convention cmd/devshell's config.go uses.
const appName = "tshell"

var envConfigDir = strings.ToUpper(appName) + "_CONFIG_DIR"

// resolveConfigDir returns the base config directory for the application.
// Priority: $TSHELL_CONFIG_DIR > $XDG_CONFIG_HOME/tshell > ~/.config/tshell
func resolveConfigDir() (string, error) {
	if v := os.Getenv(envConfigDir); v != "" {
		return v, nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", appName), nil
}
