// Package config reads biblio's settings from viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/biblio/internal/common"
)

const (
	appName        = "biblio"
	databaseFile   = "biblio.db"
	envXDGDataHome = "XDG_DATA_HOME"
)

// DataDir returns the directory biblio keeps its database in:
// $XDG_DATA_HOME/biblio, or ~/.local/share/biblio when the variable is unset.
func DataDir() (string, error) {
	if dir := strings.TrimSpace(os.Getenv(envXDGDataHome)); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", appName), nil
}

// ExpandPath resolves a leading ~ and $VAR references in a configured path.
// A path that is blank before or after expansion is rejected.
func ExpandPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("%w: empty path", common.ErrInvalidConfig)
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to expand %q: %w", path, err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
	}

	expanded := os.ExpandEnv(path)
	if strings.TrimSpace(expanded) == "" {
		return "", fmt.Errorf("%w: %q expands to an empty path", common.ErrInvalidConfig, path)
	}
	return filepath.Clean(expanded), nil
}
