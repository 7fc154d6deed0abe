package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/facundojmaero/gnome-shortcuts/internal/cli"
	"github.com/facundojmaero/gnome-shortcuts/internal/config"
	"github.com/facundojmaero/gnome-shortcuts/internal/version"
)

var (
	appVersion = "0.1.0"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gnome-shortcuts [file]",
	Short: "Apply keyboard shortcuts to GNOME from a file",
	Long: `gnome-shortcuts applies built-in and custom GNOME keyboard shortcuts
declared in a JSON, JSONC or YAML file through gsettings.

Custom shortcuts are matched by name against the ones already installed, so
running it again updates them in place instead of adding duplicates.
Nothing is ever removed.

Without a file, shortcuts.{json,jsonc,yaml,yml} is looked up in the current
directory, then in ~/.config/gnome-shortcuts.

Examples:
  gnome-shortcuts                          # Apply ./shortcuts.json
  gnome-shortcuts apply desktop.yaml       # Apply a specific file
  gnome-shortcuts apply --dry-run          # Show the writes without applying
  gnome-shortcuts list --search term       # Show installed custom shortcuts
  gnome-shortcuts export backup.yaml       # Save installed shortcuts
  gnome-shortcuts init                     # Create an example file`,
	Version:           appVersion,
	Args:              cobra.MaximumNArgs(1),
	PersistentPreRunE: setup,
	SilenceUsage:      true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApply(cmd, args)
	},
}

var applyCmd = &cobra.Command{
	Use:   "apply [file]",
	Short: "Apply a shortcuts file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApply(cmd, args)
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed custom shortcuts",
	Long: `List the custom shortcuts currently installed in GNOME.

Use --builtin to also show the bindings of built-in shortcuts.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.List(cmd.Context(), cli.ListOptions{
			StoreOptions:  storeOptions(),
			Search:        listSearch,
			Query:         listQuery,
			Builtins:      listBuiltins,
			BuiltinSchema: listSchema,
			OutputFormat:  listOutput,
		})
	},
}

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export installed custom shortcuts as a shortcuts file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := cli.ExportOptions{
			StoreOptions: storeOptions(),
			Format:       exportFormat,
			Clipboard:    exportClipboard,
			Force:        exportForce,
		}
		if len(args) > 0 {
			opts.OutputFile = args[0]
		}
		return cli.Export(cmd.Context(), opts)
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a shortcuts file without applying it",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.Validate(cli.ValidateOptions{
			ConfigFile:   firstArg(args),
			OutputFormat: validateOutput,
		})
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show previous apply runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.History(cmd.Context(), cli.HistoryOptions{
			Limit:        historyLimit,
			RunID:        historyRun,
			Kinds:        historyKinds,
			Query:        historyQuery,
			Clear:        historyClear,
			OutputFormat: historyOutput,
		})
	},
}

var initCmd = &cobra.Command{
	Use:   "init [file]",
	Short: "Create an example shortcuts file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.Init(cli.InitOptions{Path: firstArg(args)})
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("gnome-shortcuts %s\n", appVersion)
		if !versionCheck {
			return nil
		}

		update, err := version.CheckForUpdate(cmd.Context(), appVersion)
		if err != nil {
			return fmt.Errorf("failed to check for updates: %w", err)
		}
		if update.Available {
			fmt.Printf("A newer version is available: %s\n%s\n", update.Latest, update.URL)
		} else {
			fmt.Println("You are running the latest version")
		}
		return nil
	},
}

// Global flags
var (
	flagVerbose   bool
	flagGSettings string
	flagTimeout   time.Duration
)

// Flags for root/apply command
var (
	flagDryRun        bool
	flagBuiltinsFirst bool
	flagConfirm       bool
	flagYes           bool
	flagNoHistory     bool
	flagOutput        string
)

// Flags for list
var (
	listSearch   string
	listQuery    string
	listBuiltins []string
	listSchema   string
	listOutput   string
)

// Flags for export
var (
	exportFormat    string
	exportClipboard bool
	exportForce     bool
)

// Flags for validate, history and version
var (
	validateOutput string
	historyLimit   int
	historyRun     string
	historyKinds   []string
	historyQuery   string
	historyClear   bool
	historyOutput  string
	versionCheck   bool
)

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Log every gsettings call")
	rootCmd.PersistentFlags().StringVar(&flagGSettings, "gsettings", "", "gsettings binary (default $GNOME_SHORTCUTS_GSETTINGS or gsettings)")
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", 10*time.Second, "Timeout for each gsettings call")

	// Root command flags
	addApplyFlags(rootCmd)

	// Apply command flags (same as root)
	addApplyFlags(applyCmd)

	// list flags
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Fuzzy filter on shortcut names")
	listCmd.Flags().StringVarP(&listQuery, "query", "q", "", "JMESPath query or $(command) over the JSON output")
	listCmd.Flags().StringArrayVarP(&listBuiltins, "builtin", "b", []string{}, "Also show a built-in shortcut, can be repeated")
	listCmd.Flags().StringVar(&listSchema, "schema", "", "Schema of the --builtin keys (default media-keys)")
	listCmd.Flags().StringVarP(&listOutput, "output", "o", "", "Output format (text/json/yaml)")

	// export flags
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Output format (json/yaml, default from file extension)")
	exportCmd.Flags().BoolVarP(&exportClipboard, "clipboard", "c", false, "Copy the document to the clipboard")
	exportCmd.Flags().BoolVar(&exportForce, "force", false, "Overwrite an existing file")

	// validate flags
	validateCmd.Flags().StringVarP(&validateOutput, "output", "o", "", "Output format (text/json/yaml)")

	// history flags
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of runs to show")
	historyCmd.Flags().StringVar(&historyRun, "run", "", "Show a single run by id")
	historyCmd.Flags().StringArrayVar(&historyKinds, "kind", []string{}, "Only show changes of this kind (created/updated/builtin/disabled)")
	historyCmd.Flags().StringVarP(&historyQuery, "query", "q", "", "JMESPath query or $(command) over the JSON output")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "Delete all recorded runs")
	historyCmd.Flags().StringVarP(&historyOutput, "output", "o", "", "Output format (text/json/yaml)")

	// version flags
	versionCmd.Flags().BoolVar(&versionCheck, "check", false, "Check GitHub for a newer release")

	// Add subcommands
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}

func addApplyFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&flagDryRun, "dry-run", "n", false, "Show the writes without applying them")
	cmd.Flags().BoolVar(&flagBuiltinsFirst, "builtins-first", false, "Apply built-in shortcuts before custom ones")
	cmd.Flags().BoolVar(&flagConfirm, "confirm", false, "Ask before applying")
	cmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Answer yes to --confirm")
	cmd.Flags().BoolVar(&flagNoHistory, "no-history", false, "Do not record the run in history")
	cmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output format (text/json/yaml)")
}

// setup initializes configuration and logging for every command
func setup(cmd *cobra.Command, args []string) error {
	if err := config.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}
	slog.SetDefault(cli.NewLogger(os.Stderr, flagVerbose))
	return nil
}

func storeOptions() cli.StoreOptions {
	return cli.StoreOptions{
		GSettings: flagGSettings,
		Timeout:   flagTimeout,
	}
}

// runApply applies a shortcuts file
func runApply(cmd *cobra.Command, args []string) error {
	opts := cli.ApplyOptions{
		StoreOptions:  storeOptions(),
		ConfigFile:    firstArg(args),
		DryRun:        flagDryRun,
		BuiltinsFirst: flagBuiltinsFirst,
		Confirm:       flagConfirm,
		Yes:           flagYes,
		NoHistory:     flagNoHistory,
		OutputFormat:  flagOutput,
	}
	return cli.Apply(cmd.Context(), opts)
}

func firstArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}
