package keybinds

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/facundojmaero/gnome-shortcuts/internal/types"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Format is the serialization of a shortcuts document
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FilePermissions is the mode used for written config files
const FilePermissions = 0644

// ConfigurationError reports a shortcuts file that cannot be used.
// It is always raised before any settings are touched.
type ConfigurationError struct {
	Path       string
	Err        error
	Validation *ValidationResult
}

func (e *ConfigurationError) Error() string {
	if e.Validation != nil && e.Validation.HasErrors() {
		return fmt.Sprintf("invalid configuration %s:\n%s", e.Path, e.Validation.String())
	}
	return fmt.Sprintf("invalid configuration %s: %v", e.Path, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// ErrInvalidShortcuts is wrapped by ConfigurationError when validation fails
var ErrInvalidShortcuts = errors.New("shortcut validation failed")

// FormatFromPath picks the format from the file extension.
// Anything that is not .yaml or .yml is read as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// LoadConfig reads a shortcuts document from a JSON, JSONC or YAML file
func LoadConfig(path string) (*types.Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &ConfigurationError{Path: path, Err: fmt.Errorf("file not found")}
		}
		return nil, &ConfigurationError{Path: path, Err: err}
	}
	if info.IsDir() {
		return nil, &ConfigurationError{Path: path, Err: fmt.Errorf("not a regular file")}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigurationError{Path: path, Err: err}
	}

	config, err := ParseConfig(data, FormatFromPath(path))
	if err != nil {
		return nil, &ConfigurationError{Path: path, Err: err}
	}
	return config, nil
}

// ParseConfig decodes a shortcuts document.
// JSON input may contain comments and trailing commas. Unknown fields are rejected.
func ParseConfig(data []byte, format Format) (*types.Config, error) {
	var config types.Config

	switch format {
	case FormatYAML:
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("invalid YAML format: %w", err)
		}
	default:
		decoder := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&config); err != nil {
			return nil, fmt.Errorf("invalid JSON format: %w", err)
		}
	}

	return &config, nil
}

// LoadAndValidate loads path and rejects documents with validation errors.
// The validation result is returned so callers can report warnings.
func LoadAndValidate(path string) (*types.Config, *ValidationResult, error) {
	config, err := LoadConfig(path)
	if err != nil {
		return nil, nil, err
	}

	result := NewValidator().ValidateConfig(config)
	if result.HasErrors() {
		return nil, result, &ConfigurationError{Path: path, Err: ErrInvalidShortcuts, Validation: result}
	}
	return config, result, nil
}

// MarshalConfig encodes a shortcuts document
func MarshalConfig(config *types.Config, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(config)
	case FormatJSON:
		data, err := json.MarshalIndent(config, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// SaveConfig writes a shortcuts document, picking the format from the extension
func SaveConfig(config *types.Config, path string) error {
	data, err := MarshalConfig(config, FormatFromPath(path))
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, FilePermissions)
}

// CreateExampleConfig writes the example document to path.
// An existing file is never overwritten.
func CreateExampleConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("file already exists: %s", path)
	}
	return SaveConfig(ExampleConfig(), path)
}
