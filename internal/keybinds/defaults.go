package keybinds

import "github.com/facundojmaero/gnome-shortcuts/internal/types"

// ExampleConfig returns a document showing every supported field
func ExampleConfig() *types.Config {
	return &types.Config{
		BuiltinShortcuts: []types.BuiltinShortcut{
			{Name: "home", Binding: "<Super>e"},
			{Name: "www", Binding: "<Super>b"},
			{Name: "control-center", Binding: "<Super>i"},
			{Name: "close", Binding: "<Super>q", Schema: "org.gnome.desktop.wm.keybindings"},
		},
		CustomShortcuts: []types.CustomShortcut{
			{
				Name:            "Terminal",
				Binding:         "<Super>t",
				Command:         "gnome-terminal",
				BuiltinReplaced: "terminal",
			},
			{
				Name:            "Screenshot",
				Binding:         "Print",
				Command:         "flameshot gui",
				BuiltinReplaced: "screenshot",
			},
			{
				Name:    "System monitor",
				Binding: "<Primary><Shift>Escape",
				Command: "gnome-system-monitor",
			},
		},
	}
}
