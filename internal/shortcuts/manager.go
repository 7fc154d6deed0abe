package shortcuts

import (
	"context"
	"log/slog"

	"github.com/facundojmaero/gnome-shortcuts/internal/gsettings"
	"github.com/facundojmaero/gnome-shortcuts/internal/types"
)

// Manager reads and writes shortcuts through a settings store
type Manager struct {
	store  gsettings.Store
	logger *slog.Logger
}

// NewManager creates a manager over store
func NewManager(store gsettings.Store, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{store: store, logger: logger}
}

// ApplyOptions controls the order of an Apply run
type ApplyOptions struct {
	// BuiltinsFirst applies built-in bindings before custom shortcuts.
	// By default custom shortcuts go first.
	BuiltinsFirst bool
}

// Report summarizes the writes of an Apply run
type Report struct {
	Changes []types.Change `json:"changes" yaml:"changes"`
}

// Count returns the number of changes of the given kind
func (r *Report) Count(kind types.ChangeKind) int {
	n := 0
	for _, change := range r.Changes {
		if change.Kind == kind {
			n++
		}
	}
	return n
}

// ReadCurrent reads every installed custom shortcut, indexed by name.
//
// Slot is the customN suffix of the slot path, or the list position for
// paths that do not follow that naming.
func (m *Manager) ReadCurrent(ctx context.Context) (*types.ShortcutSet, error) {
	paths, err := m.readSlotPaths(ctx)
	if err != nil {
		return nil, err
	}

	current := types.NewShortcutSet()
	for position, path := range paths {
		shortcut, err := m.readSlot(ctx, path, position)
		if err != nil {
			return nil, err
		}
		if current.Put(shortcut) {
			m.logger.Warn("custom shortcut name installed more than once, keeping the last slot",
				"name", shortcut.Name, "path", path)
		}
	}

	return current, nil
}

// ApplyCustom writes one custom shortcut.
//
// A replaced built-in is disabled first. A shortcut without a slot gets a
// new one, listed before any of its attributes are written. Attributes are
// written in the order name, binding, command.
func (m *Manager) ApplyCustom(ctx context.Context, shortcut *types.CustomShortcut) ([]types.Change, error) {
	var changes []types.Change

	if shortcut.BuiltinReplaced != "" {
		change, err := m.disableBuiltin(ctx, shortcut.BuiltinReplaced)
		if err != nil {
			return changes, err
		}
		changes = append(changes, change)
	}

	kind := types.ChangeUpdated
	if !shortcut.HasSlot() {
		index, path, err := m.allocateSlot(ctx)
		if err != nil {
			return changes, err
		}
		shortcut.SetSlot(index, path)
		kind = types.ChangeCreated
	} else if shortcut.Path == "" {
		shortcut.Path = SlotPath(*shortcut.Slot)
	}

	schema := gsettings.CustomSlotSchema(shortcut.Path)
	attributes := []struct{ key, value string }{
		{"name", shortcut.Name},
		{"binding", shortcut.Binding},
		{"command", shortcut.Command},
	}
	for _, attr := range attributes {
		if err := m.write(ctx, schema, attr.key, gsettings.FormatString(attr.value)); err != nil {
			return changes, err
		}
	}

	m.logger.Debug("applied custom shortcut",
		"name", shortcut.Name, "slot", *shortcut.Slot, "kind", kind)

	slot := *shortcut.Slot
	changes = append(changes, types.Change{
		Kind:    kind,
		Name:    shortcut.Name,
		Binding: shortcut.Binding,
		Command: shortcut.Command,
		Slot:    &slot,
		Path:    shortcut.Path,
	})
	return changes, nil
}

// ApplyBuiltin writes the binding of a built-in shortcut unconditionally
func (m *Manager) ApplyBuiltin(ctx context.Context, builtin types.BuiltinShortcut) (types.Change, error) {
	schema := builtin.SchemaOrDefault()
	value := gsettings.FormatStringList([]string{builtin.Binding})
	if err := m.write(ctx, schema, builtin.Name, value); err != nil {
		return types.Change{}, err
	}

	m.logger.Debug("applied builtin shortcut", "name", builtin.Name, "schema", schema)

	return types.Change{
		Kind:    types.ChangeBuiltin,
		Name:    builtin.Name,
		Binding: builtin.Binding,
		Schema:  schema,
	}, nil
}

// Apply reconciles cfg against the store and writes the result.
// The returned report covers every write that succeeded, also on error.
func (m *Manager) Apply(ctx context.Context, cfg *types.Config, opts ApplyOptions) (*Report, error) {
	report := &Report{Changes: []types.Change{}}

	if opts.BuiltinsFirst {
		if err := m.applyBuiltins(ctx, cfg.BuiltinShortcuts, report); err != nil {
			return report, err
		}
	}

	requested := cfg.RequestedCustom()
	if requested.Len() > 0 {
		current, err := m.ReadCurrent(ctx)
		if err != nil {
			return report, err
		}

		for _, shortcut := range Reconcile(current, requested) {
			changes, err := m.ApplyCustom(ctx, shortcut)
			report.Changes = append(report.Changes, changes...)
			if err != nil {
				return report, err
			}
		}
	}

	if !opts.BuiltinsFirst {
		if err := m.applyBuiltins(ctx, cfg.BuiltinShortcuts, report); err != nil {
			return report, err
		}
	}

	return report, nil
}

// ReadBuiltin returns the current bindings of a built-in key
func (m *Manager) ReadBuiltin(ctx context.Context, schema, key string) ([]string, error) {
	if schema == "" {
		schema = gsettings.MediaKeysSchema
	}
	raw, err := m.store.Get(ctx, schema, key)
	if err != nil {
		return nil, &StoreReadError{Schema: schema, Key: key, Err: err}
	}
	bindings, err := gsettings.ParseStringList(raw)
	if err != nil {
		return nil, &StoreReadError{Schema: schema, Key: key, Err: err}
	}
	return bindings, nil
}

func (m *Manager) applyBuiltins(ctx context.Context, builtins []types.BuiltinShortcut, report *Report) error {
	for _, builtin := range builtins {
		change, err := m.ApplyBuiltin(ctx, builtin)
		if err != nil {
			return err
		}
		report.Changes = append(report.Changes, change)
	}
	return nil
}

func (m *Manager) disableBuiltin(ctx context.Context, key string) (types.Change, error) {
	if err := m.write(ctx, gsettings.MediaKeysSchema, key, gsettings.FormatStringList(nil)); err != nil {
		return types.Change{}, err
	}
	m.logger.Debug("disabled builtin shortcut", "name", key)
	return types.Change{
		Kind:   types.ChangeDisabled,
		Name:   key,
		Schema: gsettings.MediaKeysSchema,
	}, nil
}

// allocateSlot appends a new slot to the custom keybinding list
func (m *Manager) allocateSlot(ctx context.Context) (int, string, error) {
	paths, err := m.readSlotPaths(ctx)
	if err != nil {
		return 0, "", err
	}

	path := NextSlotPath(paths)
	index, _ := SlotIndex(path)
	updated := append(paths, path)

	err = m.write(ctx, gsettings.MediaKeysSchema, gsettings.CustomKeybindingsKey, gsettings.FormatStringList(updated))
	if err != nil {
		return 0, "", err
	}
	return index, path, nil
}

func (m *Manager) readSlotPaths(ctx context.Context) ([]string, error) {
	schema, key := gsettings.MediaKeysSchema, gsettings.CustomKeybindingsKey

	raw, err := m.store.Get(ctx, schema, key)
	if err != nil {
		return nil, &StoreReadError{Schema: schema, Key: key, Err: err}
	}
	paths, err := gsettings.ParseStringList(raw)
	if err != nil {
		return nil, &StoreReadError{Schema: schema, Key: key, Err: err}
	}
	return paths, nil
}

func (m *Manager) readSlot(ctx context.Context, path string, position int) (*types.CustomShortcut, error) {
	schema := gsettings.CustomSlotSchema(path)

	var values [3]string
	for i, key := range []string{"name", "binding", "command"} {
		raw, err := m.store.Get(ctx, schema, key)
		if err != nil {
			return nil, &StoreReadError{Schema: schema, Key: key, Err: err}
		}
		value, err := gsettings.ParseString(raw)
		if err != nil {
			return nil, &StoreReadError{Schema: schema, Key: key, Err: err}
		}
		values[i] = value
	}

	index, ok := SlotIndex(path)
	if !ok {
		m.logger.Debug("slot path without customN suffix, using list position", "path", path, "position", position)
		index = position
	}

	shortcut := &types.CustomShortcut{
		Name:    values[0],
		Binding: values[1],
		Command: values[2],
	}
	shortcut.SetSlot(index, path)
	return shortcut, nil
}

func (m *Manager) write(ctx context.Context, schema, key, value string) error {
	if err := m.store.Set(ctx, schema, key, value); err != nil {
		return &StoreWriteError{Schema: schema, Key: key, Value: value, Err: err}
	}
	return nil
}
