package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/facundojmaero/gnome-shortcuts/internal/filter"
	"github.com/facundojmaero/gnome-shortcuts/internal/gsettings"
	"github.com/facundojmaero/gnome-shortcuts/internal/shortcuts"
	"github.com/facundojmaero/gnome-shortcuts/internal/types"
)

// ListOptions contains options for listing installed shortcuts
type ListOptions struct {
	IO
	StoreOptions

	Search        string   // fuzzy filter on names
	Query         string   // JMESPath or $(shell) over the JSON output
	Builtins      []string // built-in keys to show
	BuiltinSchema string   // schema of Builtins, media-keys when empty
	OutputFormat  string
}

// BuiltinBinding is the current value of a built-in shortcut
type BuiltinBinding struct {
	Name     string   `json:"name" yaml:"name"`
	Schema   string   `json:"schema" yaml:"schema"`
	Bindings []string `json:"bindings" yaml:"bindings"`
}

// ListResult is the output of List
type ListResult struct {
	Custom   []*types.CustomShortcut `json:"custom_shortcuts" yaml:"custom_shortcuts"`
	Builtins []BuiltinBinding        `json:"builtin_shortcuts,omitempty" yaml:"builtin_shortcuts,omitempty"`
}

// List prints the installed custom shortcuts and the requested built-ins
func List(ctx context.Context, opts ListOptions) error {
	if err := checkOutputFormat(opts.OutputFormat); err != nil {
		return err
	}
	if err := filter.CheckQuery(opts.Query); err != nil {
		return err
	}

	logger := slog.Default()
	manager := shortcuts.NewManager(opts.open(logger), logger)

	current, err := manager.ReadCurrent(ctx)
	if err != nil {
		return fmt.Errorf("failed to read custom shortcuts: %w", err)
	}

	result := ListResult{
		Custom: filter.FuzzyShortcuts(current.Values(), opts.Search),
	}

	schema := opts.BuiltinSchema
	if schema == "" {
		schema = gsettings.MediaKeysSchema
	}
	for _, key := range opts.Builtins {
		bindings, err := manager.ReadBuiltin(ctx, schema, key)
		if err != nil {
			return fmt.Errorf("failed to read built-in shortcut: %w", err)
		}
		result.Builtins = append(result.Builtins, BuiltinBinding{Name: key, Schema: schema, Bindings: bindings})
	}

	if opts.Query != "" {
		return writeQuery(ctx, opts.stdout(), result, opts.Query)
	}

	switch opts.OutputFormat {
	case OutputJSON, OutputYAML:
		return writeStructured(opts.stdout(), result, opts.OutputFormat)
	default:
		_, err := fmt.Fprint(opts.stdout(), renderList(result))
		return err
	}
}
