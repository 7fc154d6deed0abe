package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestNewSelectorModel(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "shortcuts.json")
	bad := filepath.Join(dir, "shortcuts.yaml")
	if err := os.WriteFile(good, []byte(terminalConfig), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte("custom_shortcuts: [\n"), 0644); err != nil {
		t.Fatal(err)
	}

	m := newSelectorModel([]string{good, bad})
	items := m.list.Items()
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}

	first := items[0].(item)
	if !strings.HasPrefix(first.Title(), "shortcuts.json (json, ") {
		t.Errorf("Title() = %q", first.Title())
	}
	if first.Description() != "1 custom, 1 built-in" {
		t.Errorf("Description() = %q", first.Description())
	}
	if got := items[1].(item).Description(); got != "unreadable" {
		t.Errorf("Description() of a broken file = %q, want unreadable", got)
	}
}

func TestSelectorModel_Update(t *testing.T) {
	candidates := []string{"/tmp/a/shortcuts.json", "/tmp/a/shortcuts.yaml"}

	tests := []struct {
		name     string
		keys     []tea.KeyMsg
		expected string
	}{
		{"enter picks first", []tea.KeyMsg{{Type: tea.KeyEnter}}, candidates[0]},
		{"down then enter", []tea.KeyMsg{{Type: tea.KeyDown}, {Type: tea.KeyEnter}}, candidates[1]},
		{"q cancels", []tea.KeyMsg{{Type: tea.KeyRunes, Runes: []rune("q")}}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var model tea.Model = newSelectorModel(candidates)
			for _, key := range tt.keys {
				model, _ = model.Update(key)
			}
			m := model.(selectorModel)
			if !m.quitting {
				t.Error("selector should quit")
			}
			if m.choice != tt.expected {
				t.Errorf("choice = %q, want %q", m.choice, tt.expected)
			}
			if m.View() != "" {
				t.Error("View() should be empty once quitting")
			}
		})
	}
}
