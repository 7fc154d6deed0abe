/*
Package keybinds loads, validates and writes shortcut documents.

# Overview

A shortcut document lists built-in GNOME shortcuts to rebind and custom
shortcuts to install. It is read from JSON (comments and trailing commas
allowed) or YAML, validated, and handed to the shortcuts package.

# Configuration File Format

	{
	  // rebinding of predefined actions
	  "builtin_shortcuts": [
	    {"name": "home", "binding": "<Super>e"},
	    {"name": "close", "binding": "<Super>q", "schema": "org.gnome.desktop.wm.keybindings"}
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

Both lists are optional. Unknown fields are rejected so that typos do not
pass silently.

# Validation

The validator reports errors for:
  - Empty names or bindings
  - Custom shortcuts without a command

and warnings for:
  - Duplicate names (the last entry wins)
  - Two shortcuts sharing a binding
  - A replaced built-in that is also configured
  - Unbalanced modifier brackets or bindings without a modifier

Bindings are otherwise opaque; GNOME decides whether it accepts them.

# Example Usage

	config, result, err := LoadAndValidate("shortcuts.json")
	if err != nil {
		return err
	}
	if result.HasWarnings() {
		fmt.Fprint(os.Stderr, result.String())
	}
*/
package keybinds
