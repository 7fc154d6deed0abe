package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/facundojmaero/gnome-shortcuts/internal/config"
	"github.com/facundojmaero/gnome-shortcuts/internal/filter"
	"github.com/facundojmaero/gnome-shortcuts/internal/gsettings"
)

// Output formats accepted by -o
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// IO holds the streams a command reads from and writes to.
// Nil fields fall back to the process streams.
type IO struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

func (s IO) stdin() io.Reader {
	if s.In != nil {
		return s.In
	}
	return os.Stdin
}

func (s IO) stdout() io.Writer {
	if s.Out != nil {
		return s.Out
	}
	return os.Stdout
}

func (s IO) stderr() io.Writer {
	if s.Err != nil {
		return s.Err
	}
	return os.Stderr
}

// interactive reports whether prompts can be answered
func (s IO) interactive() bool {
	if s.In != nil {
		return true
	}
	return isInteractive()
}

// StoreOptions selects the settings backend of a command
type StoreOptions struct {
	GSettings string          // gsettings binary, GNOME_SHORTCUTS_GSETTINGS when empty
	Timeout   time.Duration   // per gsettings call, 0 for none
	Store     gsettings.Store // used as is when set
}

func (o StoreOptions) open(logger *slog.Logger) gsettings.Store {
	if o.Store != nil {
		return o.Store
	}
	binary := o.GSettings
	if binary == "" {
		binary = os.Getenv(config.GSettingsEnv)
	}
	return gsettings.NewCLIStore(binary, o.Timeout, logger)
}

// NewLogger returns a text logger writing to w.
// Only warnings and errors are shown unless verbose is set.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// isInteractive checks if stdin is a terminal (not piped)
func isInteractive() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}

func checkOutputFormat(format string) error {
	switch format {
	case "", OutputText, OutputJSON, OutputYAML:
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s (use text, json or yaml)", format)
	}
}

// writeStructured encodes v as JSON or YAML
func writeStructured(w io.Writer, v any, format string) error {
	switch format {
	case OutputJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err

	case OutputYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err

	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// writeQuery runs a JMESPath or $(shell) query over the JSON form of v
func writeQuery(ctx context.Context, w io.Writer, v any, query string) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	result, err := filter.Query(ctx, string(data), query)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, result)
	return err
}

// promptYesNo asks a question on stderr and reads the answer from stdin
func promptYesNo(s IO, question string) (bool, error) {
	fmt.Fprintf(s.stderr(), "%s [y/N]: ", question)

	reader := bufio.NewReader(s.stdin())
	answer, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}

	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes", nil
}

// resolveConfigFile picks the shortcuts document for a command.
// With several candidates on a terminal the user chooses one.
func resolveConfigFile(s IO, explicit string) (string, error) {
	if explicit != "" {
		return config.ResolveShortcutsFile(explicit, "")
	}

	workdir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}

	candidates := config.FindShortcutsFiles(workdir)
	if len(candidates) > 1 && s.In == nil && isInteractive() {
		return selectConfigFile(candidates)
	}
	return config.ResolveShortcutsFile("", workdir)
}
