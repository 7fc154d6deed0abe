/*
Package shortcuts reconciles requested custom shortcuts with the ones
already installed and writes the result through a gsettings.Store.

# Reconciliation

Custom shortcuts are matched by name. A requested shortcut whose name is
already installed inherits that slot and is rewritten in place; an
unmatched one gets a freshly allocated slot. Installed shortcuts that are
not requested are never touched, so an incomplete config cannot delete
anything.

# Slots

A slot is a settings path such as

	/org/gnome/settings-daemon/plugins/media-keys/custom-keybindings/custom3/

listed under the media-keys custom-keybindings key. GNOME ignores
attributes of paths missing from that list, so a new slot is appended
to the list before its name, binding and command are written.

# Failure

Every store error stops the run. Writes that already succeeded stay in
place; there is no rollback.
*/
package shortcuts
