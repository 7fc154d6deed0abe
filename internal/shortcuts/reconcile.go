package shortcuts

import "github.com/facundojmaero/gnome-shortcuts/internal/types"

// Reconcile returns the shortcuts to apply.
//
// Every requested shortcut whose name is also in current inherits the
// current slot; requested entries are updated in place. The result
// follows the insertion order of requested. Entries only present in
// current are left alone. Reconcile has no other side effects.
func Reconcile(current, requested *types.ShortcutSet) []*types.CustomShortcut {
	for _, name := range requested.Names() {
		existing, ok := current.Get(name)
		if !ok || !existing.HasSlot() {
			continue
		}

		shortcut, _ := requested.Get(name)
		path := existing.Path
		if path == "" {
			path = SlotPath(*existing.Slot)
		}
		shortcut.SetSlot(*existing.Slot, path)
	}

	return requested.Values()
}
