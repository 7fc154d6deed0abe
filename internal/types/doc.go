/*
Package types defines the shortcut data structures shared by the loader,
the settings store layer and the reconciler.

# Shortcuts

BuiltinShortcut:
  - A predefined desktop action identified by its settings key
  - Configured by binding alone (no slot, no command)
  - Applied unconditionally

CustomShortcut:
  - Name, binding and command stored in a custom keybinding slot
  - Optional builtin_replaced key disabled before the shortcut is written
  - Slot is nil until allocated; Path is the slot's settings path

# Name index

ShortcutSet keeps custom shortcuts keyed by name in insertion order.
Re-adding a name replaces the value and keeps the original position,
so a config listing the same name twice resolves to the last entry.

# Example document

	{
	  "builtin_shortcuts": [
	    {"name": "screenshot", "binding": "<Shift><Super>s"}
	  ],
	  "custom_shortcuts": [
	    {
	      "name": "Terminal",
	      "binding": "<Super>t",
	      "command": "gnome-terminal",
	      "builtin_replaced": "terminal"
	    }
	  ]
	}
*/
package types
