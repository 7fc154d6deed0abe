package keybinds

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path     string
		expected Format
	}{
		{"shortcuts.json", FormatJSON},
		{"shortcuts.jsonc", FormatJSON},
		{"shortcuts.yaml", FormatYAML},
		{"SHORTCUTS.YML", FormatYAML},
		{"shortcuts", FormatJSON},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := FormatFromPath(tt.path); got != tt.expected {
				t.Errorf("FormatFromPath(%q) = %q, want %q", tt.path, got, tt.expected)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name          string
		file          string
		content       string
		expectBuiltin int
		expectCustom  int
		expectErr     string
	}{
		{
			name: "json",
			file: "shortcuts.json",
			content: `{
  "builtin_shortcuts": [{"name": "home", "binding": "<Super>e"}],
  "custom_shortcuts": [{"name": "Terminal", "binding": "<Super>t", "command": "kitty"}]
}`,
			expectBuiltin: 1,
			expectCustom:  1,
		},
		{
			name: "jsonc with comments and trailing commas",
			file: "shortcuts.jsonc",
			content: `{
  // predefined actions
  "builtin_shortcuts": [
    {"name": "home", "binding": "<Super>e"},
  ],
  /* none yet */
  "custom_shortcuts": [],
}`,
			expectBuiltin: 1,
		},
		{
			name: "yaml",
			file: "shortcuts.yaml",
			content: `custom_shortcuts:
  - name: Terminal
    binding: <Super>t
    command: kitty
    builtin_replaced: terminal
  - name: Files
    binding: <Super>f
    command: nautilus
`,
			expectCustom: 2,
		},
		{
			name:    "missing lists default to empty",
			file:    "shortcuts.json",
			content: `{}`,
		},
		{
			name:    "empty yaml",
			file:    "shortcuts.yml",
			content: "",
		},
		{
			name:      "unknown json field",
			file:      "shortcuts.json",
			content:   `{"custom_shortcuts": [{"name": "A", "binding": "a", "command": "a", "bindng": "x"}]}`,
			expectErr: "unknown field",
		},
		{
			name:      "unknown yaml field",
			file:      "shortcuts.yaml",
			content:   "shortcuts: []\n",
			expectErr: "not found",
		},
		{
			name:      "malformed json",
			file:      "shortcuts.json",
			content:   `{"custom_shortcuts": [`,
			expectErr: "invalid JSON format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)

			config, err := LoadConfig(path)
			if tt.expectErr != "" {
				if err == nil {
					t.Fatalf("Expected error containing %q", tt.expectErr)
				}
				var cfgErr *ConfigurationError
				if !errors.As(err, &cfgErr) {
					t.Errorf("Expected ConfigurationError, got %T", err)
				}
				if !strings.Contains(err.Error(), tt.expectErr) {
					t.Errorf("Error %q does not contain %q", err.Error(), tt.expectErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadConfig() error = %v", err)
			}

			if len(config.BuiltinShortcuts) != tt.expectBuiltin {
				t.Errorf("Expected %d builtin shortcuts, got %d", tt.expectBuiltin, len(config.BuiltinShortcuts))
			}
			if len(config.CustomShortcuts) != tt.expectCustom {
				t.Errorf("Expected %d custom shortcuts, got %d", tt.expectCustom, len(config.CustomShortcuts))
			}
		})
	}
}

func TestLoadConfig_YAMLFields(t *testing.T) {
	path := writeFile(t, "shortcuts.yaml", `builtin_shortcuts:
  - name: close
    binding: <Super>q
    schema: org.gnome.desktop.wm.keybindings
custom_shortcuts:
  - name: Terminal
    binding: <Super>t
    command: kitty
    builtin_replaced: terminal
`)

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if got := config.BuiltinShortcuts[0].Schema; got != "org.gnome.desktop.wm.keybindings" {
		t.Errorf("Schema = %q", got)
	}
	custom := config.CustomShortcuts[0]
	if custom.BuiltinReplaced != "terminal" || custom.Command != "kitty" || custom.Binding != "<Super>t" {
		t.Errorf("Unexpected custom shortcut: %+v", custom)
	}
	if custom.HasSlot() {
		t.Error("Loaded shortcut should not carry a slot")
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
	if !strings.Contains(err.Error(), "file not found") {
		t.Errorf("Error = %q, want file not found", err.Error())
	}
}

func TestLoadConfig_Directory(t *testing.T) {
	_, err := LoadConfig(t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "not a regular file") {
		t.Errorf("Expected not a regular file error, got %v", err)
	}
}

func TestLoadAndValidate(t *testing.T) {
	t.Run("valid with warnings", func(t *testing.T) {
		path := writeFile(t, "shortcuts.json", `{"custom_shortcuts": [
  {"name": "A", "binding": "<Super>a", "command": "a"},
  {"name": "A", "binding": "<Super>b", "command": "b"}
]}`)

		config, result, err := LoadAndValidate(path)
		if err != nil {
			t.Fatalf("LoadAndValidate() error = %v", err)
		}
		if config == nil {
			t.Fatal("Expected config")
		}
		if !result.HasWarnings() {
			t.Error("Expected duplicate name warning")
		}
	})

	t.Run("validation errors", func(t *testing.T) {
		path := writeFile(t, "shortcuts.json", `{"custom_shortcuts": [{"name": "A", "binding": "<Super>a"}]}`)

		config, result, err := LoadAndValidate(path)
		if err == nil {
			t.Fatal("Expected validation error")
		}
		if config != nil {
			t.Error("Config must not be returned when validation fails")
		}
		if result == nil || !result.HasErrors() {
			t.Error("Expected validation result with errors")
		}
		if !errors.Is(err, ErrInvalidShortcuts) {
			t.Errorf("Expected ErrInvalidShortcuts, got %v", err)
		}
		if !strings.Contains(err.Error(), "command is required") {
			t.Errorf("Error should list the problems, got %q", err.Error())
		}
	})
}

func TestMarshalConfig(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			data, err := MarshalConfig(ExampleConfig(), format)
			if err != nil {
				t.Fatalf("MarshalConfig() error = %v", err)
			}

			config, err := ParseConfig(data, format)
			if err != nil {
				t.Fatalf("ParseConfig() error = %v\n%s", err, data)
			}
			if len(config.CustomShortcuts) != len(ExampleConfig().CustomShortcuts) {
				t.Errorf("Expected %d custom shortcuts after round trip, got %d",
					len(ExampleConfig().CustomShortcuts), len(config.CustomShortcuts))
			}
			if strings.Contains(string(data), `"slot"`) || strings.Contains(string(data), "slot:") {
				t.Errorf("Unallocated shortcuts should not serialize a slot:\n%s", data)
			}
		})
	}

	if _, err := MarshalConfig(ExampleConfig(), Format("toml")); err == nil {
		t.Error("Expected error for unsupported format")
	}
}

func TestCreateExampleConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shortcuts.yaml")

	if err := CreateExampleConfig(path); err != nil {
		t.Fatalf("CreateExampleConfig() error = %v", err)
	}

	config, result, err := LoadAndValidate(path)
	if err != nil {
		t.Fatalf("Example config does not load: %v", err)
	}
	if result.HasErrors() || result.HasWarnings() {
		t.Errorf("Example config should be clean, got:\n%s", result.String())
	}
	if len(config.BuiltinShortcuts) == 0 || len(config.CustomShortcuts) == 0 {
		t.Error("Example config should show both sections")
	}

	if err := CreateExampleConfig(path); err == nil {
		t.Error("Expected error when the file already exists")
	}
}
