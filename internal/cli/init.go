package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/facundojmaero/gnome-shortcuts/internal/config"
	"github.com/facundojmaero/gnome-shortcuts/internal/keybinds"
)

// InitOptions contains options for creating an example shortcuts file
type InitOptions struct {
	IO

	Path string // config.ShortcutsFile when empty
}

// Init writes the example shortcuts file. Existing files are kept.
func Init(opts InitOptions) error {
	path := opts.Path
	if path == "" {
		path = config.ShortcutsFile
	}
	if path == "" {
		return fmt.Errorf("no path given and configuration directory not initialized")
	}

	if err := os.MkdirAll(filepath.Dir(path), config.DirPermissions); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := keybinds.CreateExampleConfig(path); err != nil {
		return err
	}

	fmt.Fprintf(opts.stdout(), "Created example shortcuts file: %s\n", path)
	fmt.Fprintf(opts.stdout(), "Edit it, then run: gnome-shortcuts apply %s\n", path)
	return nil
}
