package cli

import (
	"fmt"

	"github.com/facundojmaero/gnome-shortcuts/internal/keybinds"
)

// ValidateOptions contains options for validating a shortcuts file
type ValidateOptions struct {
	IO

	ConfigFile   string
	OutputFormat string
}

// ValidateResult is the output of Validate
type ValidateResult struct {
	ConfigFile string                     `json:"config_file" yaml:"config_file"`
	Valid      bool                       `json:"valid" yaml:"valid"`
	Errors     []keybinds.ValidationError `json:"errors" yaml:"errors"`
	Warnings   []keybinds.ValidationError `json:"warnings" yaml:"warnings"`
}

// Validate loads and validates a shortcuts file without touching any setting
func Validate(opts ValidateOptions) error {
	if err := checkOutputFormat(opts.OutputFormat); err != nil {
		return err
	}

	path, err := resolveConfigFile(opts.IO, opts.ConfigFile)
	if err != nil {
		return err
	}

	cfg, err := keybinds.LoadConfig(path)
	if err != nil {
		return err
	}

	validation := keybinds.NewValidator().ValidateConfig(cfg)

	switch opts.OutputFormat {
	case OutputJSON, OutputYAML:
		result := ValidateResult{
			ConfigFile: path,
			Valid:      !validation.HasErrors(),
			Errors:     validation.Errors,
			Warnings:   validation.Warnings,
		}
		if err := writeStructured(opts.stdout(), result, opts.OutputFormat); err != nil {
			return err
		}
	default:
		fmt.Fprintf(opts.stdout(), "%s: %d custom, %d built-in shortcuts\n",
			path, len(cfg.CustomShortcuts), len(cfg.BuiltinShortcuts))
		fmt.Fprintln(opts.stdout(), validation.String())
	}

	if validation.HasErrors() {
		return fmt.Errorf("%s: %w", path, keybinds.ErrInvalidShortcuts)
	}
	return nil
}
