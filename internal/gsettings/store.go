// Package gsettings reads and writes GNOME settings.
//
// Values cross the Store boundary in GVariant text format, exactly as the
// gsettings tool prints and accepts them.
package gsettings

import (
	"context"
	"strings"

	"github.com/facundojmaero/gnome-shortcuts/internal/types"
)

const (
	// MediaKeysSchema holds built-in media-key shortcuts and the custom keybinding list
	MediaKeysSchema = types.DefaultBuiltinSchema

	// CustomKeybindingsKey is the key in MediaKeysSchema listing custom slot paths
	CustomKeybindingsKey = "custom-keybindings"

	// CustomKeybindingSchema is the relocatable schema of one custom slot
	CustomKeybindingSchema = MediaKeysSchema + ".custom-keybinding"

	// CustomKeybindingsPath is the settings path under which custom slots live
	CustomKeybindingsPath = "/org/gnome/settings-daemon/plugins/media-keys/custom-keybindings/"
)

// Store is a key/value settings backend
type Store interface {
	// Get returns the GVariant text of schema/key
	Get(ctx context.Context, schema, key string) (string, error)

	// Set writes a GVariant text value to schema/key
	Set(ctx context.Context, schema, key, value string) error
}

// Write is one recorded Set call
type Write struct {
	Schema string `json:"schema" yaml:"schema"`
	Key    string `json:"key" yaml:"key"`
	Value  string `json:"value" yaml:"value"`
}

// RelocatableSchema addresses a relocatable schema instance at path
func RelocatableSchema(schema, path string) string {
	return schema + ":" + path
}

// SplitRelocatable splits "schema:path" into its parts.
// path is empty for a non-relocatable schema.
func SplitRelocatable(schemaWithPath string) (schema, path string) {
	schema, path, _ = strings.Cut(schemaWithPath, ":")
	return schema, path
}

// CustomSlotSchema returns the relocatable schema for a custom slot path
func CustomSlotSchema(path string) string {
	return RelocatableSchema(CustomKeybindingSchema, path)
}
