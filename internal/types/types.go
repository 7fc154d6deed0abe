package types

import "time"

// DefaultBuiltinSchema is the settings schema that holds the media-keys
// built-in shortcuts and the custom keybinding list.
const DefaultBuiltinSchema = "org.gnome.settings-daemon.plugins.media-keys"

// BuiltinShortcut binds a predefined desktop action.
// Name is the settings key of the action (e.g. "screenshot").
type BuiltinShortcut struct {
	Name    string `json:"name" yaml:"name"`
	Binding string `json:"binding" yaml:"binding"`
	Schema  string `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// SchemaOrDefault returns the schema the shortcut lives in
func (b BuiltinShortcut) SchemaOrDefault() string {
	if b.Schema == "" {
		return DefaultBuiltinSchema
	}
	return b.Schema
}

// CustomShortcut is a user-defined shortcut stored in a custom keybinding slot.
//
// Slot is nil until the shortcut has a storage location. Path is the
// settings path of that slot once known.
type CustomShortcut struct {
	Name            string `json:"name" yaml:"name"`
	Binding         string `json:"binding" yaml:"binding"`
	Command         string `json:"command" yaml:"command"`
	BuiltinReplaced string `json:"builtin_replaced,omitempty" yaml:"builtin_replaced,omitempty"`

	Slot *int   `json:"slot,omitempty" yaml:"slot,omitempty"`
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// HasSlot reports whether the shortcut already owns a slot
func (c *CustomShortcut) HasSlot() bool {
	return c.Slot != nil
}

// SetSlot assigns the slot index and path
func (c *CustomShortcut) SetSlot(index int, path string) {
	c.Slot = &index
	c.Path = path
}

// Clone returns a copy that does not share the slot pointer
func (c *CustomShortcut) Clone() *CustomShortcut {
	clone := *c
	if c.Slot != nil {
		slot := *c.Slot
		clone.Slot = &slot
	}
	return &clone
}

// Config is the declarative shortcuts document
type Config struct {
	BuiltinShortcuts []BuiltinShortcut `json:"builtin_shortcuts" yaml:"builtin_shortcuts"`
	CustomShortcuts  []CustomShortcut  `json:"custom_shortcuts" yaml:"custom_shortcuts"`
}

// RequestedCustom indexes the configured custom shortcuts by name.
// Entries are copies, so reconciliation never mutates the config.
func (c *Config) RequestedCustom() *ShortcutSet {
	set := NewShortcutSet()
	for i := range c.CustomShortcuts {
		shortcut := c.CustomShortcuts[i]
		shortcut.Slot = nil
		shortcut.Path = ""
		set.Put(&shortcut)
	}
	return set
}

// ChangeKind describes what a single apply step did
type ChangeKind string

const (
	ChangeCreated  ChangeKind = "created"  // New custom slot allocated
	ChangeUpdated  ChangeKind = "updated"  // Existing custom slot rewritten
	ChangeBuiltin  ChangeKind = "builtin"  // Built-in binding written
	ChangeDisabled ChangeKind = "disabled" // Built-in cleared for a replacing custom shortcut
)

// Change is one entry of an apply report
type Change struct {
	Kind    ChangeKind `json:"kind" yaml:"kind"`
	Name    string     `json:"name" yaml:"name"`
	Binding string     `json:"binding,omitempty" yaml:"binding,omitempty"`
	Command string     `json:"command,omitempty" yaml:"command,omitempty"`
	Schema  string     `json:"schema,omitempty" yaml:"schema,omitempty"`
	Slot    *int       `json:"slot,omitempty" yaml:"slot,omitempty"`
	Path    string     `json:"path,omitempty" yaml:"path,omitempty"`
}

// RunRecord is one apply invocation as stored in history
type RunRecord struct {
	ID         int64     `json:"id" yaml:"id"`
	RunID      string    `json:"run_id" yaml:"run_id"`
	Timestamp  time.Time `json:"timestamp" yaml:"timestamp"`
	ConfigFile string    `json:"config_file" yaml:"config_file"`
	DryRun     bool      `json:"dry_run" yaml:"dry_run"`
	DurationMs int64     `json:"duration_ms" yaml:"duration_ms"`
	Error      string    `json:"error,omitempty" yaml:"error,omitempty"`
	Changes    []Change  `json:"changes" yaml:"changes"`
}
