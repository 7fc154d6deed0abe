package gsettings

import (
	"reflect"
	"testing"
)

func TestParseStringList(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
		wantErr  bool
	}{
		{"empty typed list", "@as []", []string{}, false},
		{"empty typed list with newline", "@as []\n", []string{}, false},
		{"bare empty list", "[]", []string{}, false},
		{
			name:     "single path",
			input:    "['/org/gnome/settings-daemon/plugins/media-keys/custom-keybindings/custom0/']",
			expected: []string{"/org/gnome/settings-daemon/plugins/media-keys/custom-keybindings/custom0/"},
		},
		{"several entries", "['a', 'b', 'c']", []string{"a", "b", "c"}, false},
		{"double quotes", `["it's", "b"]`, []string{"it's", "b"}, false},
		{"not a list", "'a'", nil, true},
		{"blank", "   ", nil, true},
		{"garbage", "[a, b", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStringList(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseStringList(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseStringList(%q) unexpected error: %v", tt.input, err)
			}
			if len(got) != len(tt.expected) {
				t.Fatalf("ParseStringList(%q) = %v, want %v", tt.input, got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("ParseStringList(%q)[%d] = %q, want %q", tt.input, i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestParseString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{"single quoted", "'Terminal'", "Terminal", false},
		{"trailing newline", "'<Super>t'\n", "<Super>t", false},
		{"double quoted with apostrophe", `"it's"`, "it's", false},
		{"escaped quote", `'it\'s'`, "it's", false},
		{"empty string literal", "''", "", false},
		{"empty output", "", "", false},
		{"number", "42", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseString(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseString(%q) expected error, got %q", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseString(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ParseString(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFormatStringList(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected string
	}{
		{"nil", nil, "[]"},
		{"empty", []string{}, "[]"},
		{"one binding", []string{"<Super>a"}, `["<Super>a"]`},
		{"two", []string{"a", "b"}, `["a", "b"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatStringList(tt.input); got != tt.expected {
				t.Errorf("FormatStringList(%v) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	values := []string{"plain", "with space", "it's", `say "hi"`, "back\\slash", "gnome-terminal -- bash -c 'htop'"}
	for _, value := range values {
		got, err := ParseString(FormatString(value))
		if err != nil {
			t.Fatalf("ParseString(FormatString(%q)) error: %v", value, err)
		}
		if got != value {
			t.Errorf("round trip of %q = %q", value, got)
		}
	}

	list, err := ParseStringList(FormatStringList(values))
	if err != nil {
		t.Fatalf("ParseStringList(FormatStringList()) error: %v", err)
	}
	if !reflect.DeepEqual(list, values) {
		t.Errorf("list round trip = %v, want %v", list, values)
	}
}

func TestSplitRelocatable(t *testing.T) {
	schema, path := SplitRelocatable(CustomSlotSchema("/a/custom0/"))
	if schema != CustomKeybindingSchema || path != "/a/custom0/" {
		t.Errorf("SplitRelocatable() = (%q, %q)", schema, path)
	}

	schema, path = SplitRelocatable(MediaKeysSchema)
	if schema != MediaKeysSchema || path != "" {
		t.Errorf("SplitRelocatable(non-relocatable) = (%q, %q)", schema, path)
	}
}
