package types

// ShortcutSet is an insertion-ordered set of custom shortcuts keyed by name.
// Put on an existing name replaces the value but keeps its position.
type ShortcutSet struct {
	order  []string
	byName map[string]*CustomShortcut
}

// NewShortcutSet creates an empty set
func NewShortcutSet() *ShortcutSet {
	return &ShortcutSet{
		byName: make(map[string]*CustomShortcut),
	}
}

// Put adds or replaces a shortcut.
// Returns true when an entry with the same name was replaced.
func (s *ShortcutSet) Put(shortcut *CustomShortcut) bool {
	if _, exists := s.byName[shortcut.Name]; exists {
		s.byName[shortcut.Name] = shortcut
		return true
	}
	s.order = append(s.order, shortcut.Name)
	s.byName[shortcut.Name] = shortcut
	return false
}

// Get returns the shortcut registered under name
func (s *ShortcutSet) Get(name string) (*CustomShortcut, bool) {
	shortcut, ok := s.byName[name]
	return shortcut, ok
}

// Names returns the names in insertion order
func (s *ShortcutSet) Names() []string {
	names := make([]string, len(s.order))
	copy(names, s.order)
	return names
}

// Values returns the shortcuts in insertion order
func (s *ShortcutSet) Values() []*CustomShortcut {
	values := make([]*CustomShortcut, 0, len(s.order))
	for _, name := range s.order {
		values = append(values, s.byName[name])
	}
	return values
}

// Len returns the number of distinct names
func (s *ShortcutSet) Len() int {
	return len(s.order)
}
