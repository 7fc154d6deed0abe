package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"

	"github.com/facundojmaero/gnome-shortcuts/internal/config"
	"github.com/facundojmaero/gnome-shortcuts/internal/keybinds"
	"github.com/facundojmaero/gnome-shortcuts/internal/shortcuts"
	"github.com/facundojmaero/gnome-shortcuts/internal/types"
)

// writeClipboard is replaced in tests
var writeClipboard = clipboard.WriteAll

// ExportOptions contains options for exporting installed shortcuts
type ExportOptions struct {
	IO
	StoreOptions

	OutputFile string
	Format     string // json or yaml, from the file extension when empty
	Clipboard  bool
	Force      bool // overwrite OutputFile
}

// Export writes the installed custom shortcuts as a shortcuts document
// that apply accepts
func Export(ctx context.Context, opts ExportOptions) error {
	format, err := exportFormat(opts)
	if err != nil {
		return err
	}

	logger := slog.Default()
	manager := shortcuts.NewManager(opts.open(logger), logger)

	current, err := manager.ReadCurrent(ctx)
	if err != nil {
		return fmt.Errorf("failed to read custom shortcuts: %w", err)
	}

	document := &types.Config{
		BuiltinShortcuts: []types.BuiltinShortcut{},
		CustomShortcuts:  make([]types.CustomShortcut, 0, current.Len()),
	}
	for _, shortcut := range current.Values() {
		document.CustomShortcuts = append(document.CustomShortcuts, types.CustomShortcut{
			Name:    shortcut.Name,
			Binding: shortcut.Binding,
			Command: shortcut.Command,
		})
	}

	data, err := keybinds.MarshalConfig(document, format)
	if err != nil {
		return fmt.Errorf("failed to encode shortcuts: %w", err)
	}

	if opts.Clipboard {
		if err := writeClipboard(string(data)); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		fmt.Fprintf(opts.stderr(), "Copied %d shortcuts to clipboard\n", len(document.CustomShortcuts))
	}

	if opts.OutputFile != "" {
		if _, err := os.Stat(opts.OutputFile); err == nil && !opts.Force {
			return fmt.Errorf("file already exists: %s (use --force to overwrite)", opts.OutputFile)
		}
		if err := os.MkdirAll(filepath.Dir(opts.OutputFile), config.DirPermissions); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
		if err := os.WriteFile(opts.OutputFile, data, config.FilePermissions); err != nil {
			return fmt.Errorf("failed to write %s: %w", opts.OutputFile, err)
		}
		fmt.Fprintf(opts.stderr(), "Exported %d shortcuts to %s\n", len(document.CustomShortcuts), opts.OutputFile)
		return nil
	}

	if !opts.Clipboard {
		_, err = opts.stdout().Write(data)
	}
	return err
}

func exportFormat(opts ExportOptions) (keybinds.Format, error) {
	switch opts.Format {
	case "":
		if opts.OutputFile != "" {
			return keybinds.FormatFromPath(opts.OutputFile), nil
		}
		return keybinds.FormatJSON, nil
	case string(keybinds.FormatJSON):
		return keybinds.FormatJSON, nil
	case string(keybinds.FormatYAML), "yml":
		return keybinds.FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported export format: %s (use json or yaml)", opts.Format)
	}
}
