package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/facundojmaero/gnome-shortcuts/internal/config"
	"github.com/facundojmaero/gnome-shortcuts/internal/gsettings"
	"github.com/facundojmaero/gnome-shortcuts/internal/history"
	"github.com/facundojmaero/gnome-shortcuts/internal/keybinds"
	"github.com/facundojmaero/gnome-shortcuts/internal/shortcuts"
	"github.com/facundojmaero/gnome-shortcuts/internal/types"
)

// ApplyOptions contains options for applying a shortcuts file
type ApplyOptions struct {
	IO
	StoreOptions

	ConfigFile    string
	DryRun        bool
	BuiltinsFirst bool
	Confirm       bool   // ask before writing
	Yes           bool   // answer yes to the confirmation
	NoHistory     bool   // do not record the run
	HistoryPath   string // config.DatabasePath when empty
	OutputFormat  string // text, json, yaml
}

// ApplyResult is the outcome of an apply run
type ApplyResult struct {
	RunID      string            `json:"run_id" yaml:"run_id"`
	ConfigFile string            `json:"config_file" yaml:"config_file"`
	DryRun     bool              `json:"dry_run" yaml:"dry_run"`
	Changes    []types.Change    `json:"changes" yaml:"changes"`
	Writes     []gsettings.Write `json:"writes,omitempty" yaml:"writes,omitempty"`
	Error      string            `json:"error,omitempty" yaml:"error,omitempty"`
}

// Apply loads, validates and applies a shortcuts file.
// Configuration problems are reported before any setting is touched.
func Apply(ctx context.Context, opts ApplyOptions) error {
	if err := checkOutputFormat(opts.OutputFormat); err != nil {
		return err
	}

	path, err := resolveConfigFile(opts.IO, opts.ConfigFile)
	if err != nil {
		return err
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	cfg, validation, err := keybinds.LoadAndValidate(path)
	if err != nil {
		return err
	}
	for _, warning := range validation.Warnings {
		fmt.Fprintf(opts.stderr(), "Warning: %s\n", warning.Error())
	}

	if opts.Confirm && !opts.Yes && !opts.DryRun {
		if !opts.interactive() {
			return fmt.Errorf("confirmation required (non-interactive mode). Use --yes to apply")
		}
		question := fmt.Sprintf("Apply %d custom and %d built-in shortcuts from %s?",
			len(cfg.CustomShortcuts), len(cfg.BuiltinShortcuts), path)
		ok, err := promptYesNo(opts.IO, question)
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if !ok {
			return fmt.Errorf("apply cancelled by user")
		}
	}

	runID := history.NewRunID()
	logger := slog.Default().With("run_id", runID)

	store := opts.open(logger)
	var dryRun *gsettings.DryRunStore
	if opts.DryRun {
		dryRun = gsettings.NewDryRunStore(store, logger)
		store = dryRun
	}

	logger.Info("applying shortcuts", "config", path, "dry_run", opts.DryRun,
		"custom", len(cfg.CustomShortcuts), "builtin", len(cfg.BuiltinShortcuts))

	start := time.Now()
	manager := shortcuts.NewManager(store, logger)
	report, applyErr := manager.Apply(ctx, cfg, shortcuts.ApplyOptions{BuiltinsFirst: opts.BuiltinsFirst})
	duration := time.Since(start)

	result := ApplyResult{
		RunID:      runID,
		ConfigFile: path,
		DryRun:     opts.DryRun,
		Changes:    report.Changes,
	}
	if dryRun != nil {
		result.Writes = dryRun.Writes()
	}
	if applyErr != nil {
		result.Error = applyErr.Error()
		logger.Error("apply stopped", "error", applyErr, "applied", len(report.Changes))
	}

	if !opts.NoHistory {
		if err := recordRun(opts.HistoryPath, result, duration); err != nil {
			// Don't fail the run if history can't be saved
			fmt.Fprintf(opts.stderr(), "Warning: failed to save history: %v\n", err)
		}
	}

	if err := printApplyResult(opts.IO, result, opts.OutputFormat); err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	if applyErr != nil {
		return fmt.Errorf("failed to apply shortcuts: %w", applyErr)
	}
	return nil
}

func recordRun(dbPath string, result ApplyResult, duration time.Duration) error {
	if dbPath == "" {
		dbPath = config.DatabasePath
	}
	if dbPath == "" {
		return fmt.Errorf("history database path not configured")
	}

	mgr, err := history.NewManager(dbPath)
	if err != nil {
		return err
	}
	defer mgr.Close()

	return mgr.Save(&types.RunRecord{
		RunID:      result.RunID,
		ConfigFile: result.ConfigFile,
		DryRun:     result.DryRun,
		DurationMs: duration.Milliseconds(),
		Error:      result.Error,
		Changes:    result.Changes,
	})
}

func printApplyResult(s IO, result ApplyResult, format string) error {
	switch format {
	case OutputJSON, OutputYAML:
		return writeStructured(s.stdout(), result, format)
	default:
		_, err := fmt.Fprint(s.stdout(), renderApplyResult(result))
		return err
	}
}
