package shortcuts

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/facundojmaero/gnome-shortcuts/internal/gsettings"
)

var slotPattern = regexp.MustCompile(`/custom(\d+)/?$`)

// SlotPath returns the settings path of custom slot index
func SlotPath(index int) string {
	return fmt.Sprintf("%scustom%d/", gsettings.CustomKeybindingsPath, index)
}

// SlotIndex extracts N from a ".../customN/" path
func SlotIndex(path string) (int, bool) {
	match := slotPattern.FindStringSubmatch(path)
	if match == nil {
		return 0, false
	}
	index, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}
	return index, true
}

// NextSlotPath returns a slot path distinct from every entry of existing.
//
// The suffix is the smallest non-negative N not already used by a
// customN entry. For a list assigned without gaps (custom0..customK-1)
// that is exactly len(existing).
func NextSlotPath(existing []string) string {
	used := make(map[int]bool, len(existing))
	for _, path := range existing {
		if index, ok := SlotIndex(path); ok {
			used[index] = true
		}
	}

	next := 0
	for used[next] {
		next++
	}
	return SlotPath(next)
}
