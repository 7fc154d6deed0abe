package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// FilePermissions is the default permission mode for regular files (read/write for owner, read for others)
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories (rwxr-xr-x)
	DirPermissions = 0755

	// HomeEnv overrides the application directory
	HomeEnv = "GNOME_SHORTCUTS_HOME"
	// GSettingsEnv overrides the gsettings binary
	GSettingsEnv = "GNOME_SHORTCUTS_GSETTINGS"

	// ShortcutsBaseName is the file name looked up when no config is given
	ShortcutsBaseName = "shortcuts"
)

// ShortcutsExtensions are the extensions tried during discovery, in order
var ShortcutsExtensions = []string{".json", ".jsonc", ".yaml", ".yml"}

var (
	// ConfigDir is the global configuration directory (~/.config/gnome-shortcuts)
	ConfigDir string

	// DatabasePath is the SQLite database file for the apply history
	DatabasePath string

	// ShortcutsFile is the default shortcuts document
	ShortcutsFile string
)

// Initialize sets up the configuration directory and paths.
// It creates the directory if it doesn't exist.
func Initialize() error {
	dir, err := resolveConfigDir()
	if err != nil {
		return err
	}

	ConfigDir = dir
	DatabasePath = filepath.Join(ConfigDir, "history.db")
	ShortcutsFile = filepath.Join(ConfigDir, ShortcutsBaseName+".json")

	if err := os.MkdirAll(ConfigDir, DirPermissions); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", ConfigDir, err)
	}

	return nil
}

func resolveConfigDir() (string, error) {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return expandHome(dir)
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "gnome-shortcuts"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "gnome-shortcuts"), nil
}

// expandHome expands a leading ~/ to the home directory
func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, path[2:]), nil
}

// FindShortcutsFiles returns the shortcuts documents found in workdir,
// followed by the ones in the configuration directory
func FindShortcutsFiles(workdir string) []string {
	var found []string
	for _, dir := range []string{workdir, ConfigDir} {
		if dir == "" {
			continue
		}
		for _, ext := range ShortcutsExtensions {
			path := filepath.Join(dir, ShortcutsBaseName+ext)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				found = append(found, path)
			}
		}
	}
	return found
}

// ResolveShortcutsFile returns the document to use when none was given
func ResolveShortcutsFile(explicit, workdir string) (string, error) {
	if explicit != "" {
		return expandHome(explicit)
	}

	candidates := FindShortcutsFiles(workdir)
	if len(candidates) == 0 {
		return "", fmt.Errorf("no shortcuts file found in %s or %s (run 'gnome-shortcuts init' to create one)", workdir, ConfigDir)
	}
	return candidates[0], nil
}
