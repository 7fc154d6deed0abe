package shortcuts

import (
	"testing"

	"github.com/facundojmaero/gnome-shortcuts/internal/types"
)

func installed(name string, slot int) *types.CustomShortcut {
	shortcut := &types.CustomShortcut{Name: name, Binding: "<Super>" + name, Command: name}
	shortcut.SetSlot(slot, SlotPath(slot))
	return shortcut
}

func requestedSet(names ...string) *types.ShortcutSet {
	set := types.NewShortcutSet()
	for _, name := range names {
		set.Put(&types.CustomShortcut{Name: name, Binding: "<Ctrl>" + name, Command: "new-" + name})
	}
	return set
}

func TestReconcile_MatchedInheritsSlot(t *testing.T) {
	current := types.NewShortcutSet()
	current.Put(installed("A", 4))

	result := Reconcile(current, requestedSet("A"))

	if len(result) != 1 {
		t.Fatalf("expected 1 shortcut, got %d", len(result))
	}
	if !result[0].HasSlot() || *result[0].Slot != 4 {
		t.Fatalf("matched shortcut should inherit slot 4, got %v", result[0].Slot)
	}
	if result[0].Path != SlotPath(4) {
		t.Errorf("Path = %q, want %q", result[0].Path, SlotPath(4))
	}
	if result[0].Binding != "<Ctrl>A" {
		t.Errorf("requested attributes must be kept, got binding %q", result[0].Binding)
	}
}

func TestReconcile_UnmatchedHasNoSlot(t *testing.T) {
	current := types.NewShortcutSet()
	current.Put(installed("A", 0))

	result := Reconcile(current, requestedSet("B", "C"))
	for _, shortcut := range result {
		if shortcut.HasSlot() {
			t.Errorf("%s should not have a slot yet", shortcut.Name)
		}
	}
}

func TestReconcile_PreservesRequestedOrder(t *testing.T) {
	current := types.NewShortcutSet()
	current.Put(installed("C", 0))
	current.Put(installed("A", 1))

	result := Reconcile(current, requestedSet("A", "B", "C"))

	var names []string
	for _, shortcut := range result {
		names = append(names, shortcut.Name)
	}
	if len(names) != 3 || names[0] != "A" || names[1] != "B" || names[2] != "C" {
		t.Errorf("order = %v, want [A B C]", names)
	}
}

func TestReconcile_DoesNotTouchCurrentOnly(t *testing.T) {
	current := types.NewShortcutSet()
	current.Put(installed("Keep", 0))
	before := *current.Values()[0]

	Reconcile(current, requestedSet("Other"))

	after, _ := current.Get("Keep")
	if after.Name != before.Name || after.Binding != before.Binding || after.Command != before.Command || *after.Slot != *before.Slot {
		t.Errorf("current-only entry changed: %+v", after)
	}
}

func TestReconcile_EmptyInputs(t *testing.T) {
	if result := Reconcile(types.NewShortcutSet(), types.NewShortcutSet()); len(result) != 0 {
		t.Errorf("empty requested should yield nothing, got %d", len(result))
	}

	result := Reconcile(types.NewShortcutSet(), requestedSet("A", "B"))
	if len(result) != 2 {
		t.Fatalf("expected 2 shortcuts, got %d", len(result))
	}
	for _, shortcut := range result {
		if shortcut.HasSlot() {
			t.Errorf("%s should need a fresh slot", shortcut.Name)
		}
	}
}

func TestReconcile_CaseSensitiveNames(t *testing.T) {
	current := types.NewShortcutSet()
	current.Put(installed("terminal", 0))

	result := Reconcile(current, requestedSet("Terminal"))
	if result[0].HasSlot() {
		t.Error("names differing in case must not match")
	}
}
