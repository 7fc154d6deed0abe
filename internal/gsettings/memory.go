package gsettings

import (
	"context"
	"fmt"
	"slices"
)

// MemoryStore is an in-memory Store.
//
// Like GNOME, it only accepts attribute writes for custom slot paths that
// are already listed under custom-keybindings.
type MemoryStore struct {
	values   map[string]map[string]string
	writes   []Write
	failures map[string]error
}

// NewMemoryStore creates a store with an empty custom keybinding list
func NewMemoryStore() *MemoryStore {
	m := &MemoryStore{
		values:   make(map[string]map[string]string),
		failures: make(map[string]error),
	}
	m.put(MediaKeysSchema, CustomKeybindingsKey, "@as []")
	return m
}

// Get returns the stored value. Unset keys of a custom slot read as ''.
func (m *MemoryStore) Get(_ context.Context, schema, key string) (string, error) {
	if err := m.failures[failureKey("get", schema, key)]; err != nil {
		return "", err
	}

	if value, ok := m.values[schema][key]; ok {
		return value, nil
	}

	if base, _ := SplitRelocatable(schema); base == CustomKeybindingSchema {
		return "''", nil
	}
	return "", fmt.Errorf("no such key %q in schema %q", key, schema)
}

// Set stores value and records the write
func (m *MemoryStore) Set(_ context.Context, schema, key, value string) error {
	if err := m.failures[failureKey("set", schema, key)]; err != nil {
		return err
	}

	if base, path := SplitRelocatable(schema); base == CustomKeybindingSchema {
		listed, err := m.SlotPaths()
		if err != nil {
			return err
		}
		if !slices.Contains(listed, path) {
			return fmt.Errorf("path %q is not listed in %s", path, CustomKeybindingsKey)
		}
	}

	m.put(schema, key, value)
	m.writes = append(m.writes, Write{Schema: schema, Key: key, Value: value})
	return nil
}

// FailOn makes the given operation ("get" or "set") on schema/key return err
func (m *MemoryStore) FailOn(op, schema, key string, err error) {
	m.failures[failureKey(op, schema, key)] = err
}

// Writes returns every Set call in order
func (m *MemoryStore) Writes() []Write {
	return slices.Clone(m.writes)
}

// ResetWrites forgets recorded writes while keeping values
func (m *MemoryStore) ResetWrites() {
	m.writes = nil
}

// Value returns the raw stored value of schema/key
func (m *MemoryStore) Value(schema, key string) (string, bool) {
	value, ok := m.values[schema][key]
	return value, ok
}

// SlotPaths returns the parsed custom keybinding list
func (m *MemoryStore) SlotPaths() ([]string, error) {
	return ParseStringList(m.values[MediaKeysSchema][CustomKeybindingsKey])
}

// SeedCustom installs a custom shortcut at path without recording writes
func (m *MemoryStore) SeedCustom(path, name, binding, command string) error {
	listed, err := m.SlotPaths()
	if err != nil {
		return err
	}
	if !slices.Contains(listed, path) {
		listed = append(listed, path)
	}
	m.put(MediaKeysSchema, CustomKeybindingsKey, FormatStringList(listed))

	schema := CustomSlotSchema(path)
	m.put(schema, "name", FormatString(name))
	m.put(schema, "binding", FormatString(binding))
	m.put(schema, "command", FormatString(command))
	return nil
}

// SeedValue stores a raw value without recording a write
func (m *MemoryStore) SeedValue(schema, key, value string) {
	m.put(schema, key, value)
}

func (m *MemoryStore) put(schema, key, value string) {
	if m.values[schema] == nil {
		m.values[schema] = make(map[string]string)
	}
	m.values[schema][key] = value
}

func failureKey(op, schema, key string) string {
	return op + " " + schema + " " + key
}
