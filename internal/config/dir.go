package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// appDirName is a directory in the user's config, data and state directories where tixboard files are stored
	appDirName string = "tixboard"
)

// ConfigDir returns the directory holding tixboard configuration and preferences
func ConfigDir() (string, error) {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return filepath.Join(xdgConfigHome, appDirName), nil
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot obtain user config dir: %w", err)
	}
	return filepath.Join(configDir, appDirName), nil
}

func MustConfigDir() string {
	dir, err := ConfigDir()
	if err != nil {
		panic(err)
	}
	return dir
}

// StateDir returns the directory for logs, following XDG_STATE_HOME with a
// fallback to ~/.local/state
func StateDir() (string, error) {
	var stateDir string

	if xdgStateHome := os.Getenv("XDG_STATE_HOME"); xdgStateHome != "" {
		stateDir = xdgStateHome
	} else {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot obtain user home dir: %w", err)
		}
		stateDir = filepath.Join(homeDir, ".local", "state")
	}

	return filepath.Join(stateDir, appDirName), nil
}
