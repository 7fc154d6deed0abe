package gsettings

import (
	"fmt"
	"strings"

	"github.com/godbus/dbus/v5"
)

var (
	signatureString     = dbus.ParseSignatureMust("s")
	signatureStringList = dbus.ParseSignatureMust("as")
)

// emptyListAnnotation is how gsettings prints an empty typed string list
const emptyListAnnotation = "@as"

// ParseString decodes a GVariant string literal such as 'foo'
func ParseString(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", nil
	}

	v, err := dbus.ParseVariant(text, signatureString)
	if err != nil {
		return "", fmt.Errorf("invalid string value %q: %w", text, err)
	}

	s, ok := v.Value().(string)
	if !ok {
		return "", fmt.Errorf("invalid string value %q: got %s", text, v.Signature())
	}
	return s, nil
}

// FormatString encodes s as a GVariant string literal
func FormatString(s string) string {
	return dbus.MakeVariant(s).String()
}

// ParseStringList decodes a GVariant string array such as ['a', 'b'].
// The "@as" annotation used for empty lists is accepted.
func ParseStringList(text string) ([]string, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimSpace(strings.TrimPrefix(text, emptyListAnnotation))
	if text == "" {
		return nil, fmt.Errorf("invalid string list: empty value")
	}

	v, err := dbus.ParseVariant(text, signatureStringList)
	if err != nil {
		return nil, fmt.Errorf("invalid string list %q: %w", text, err)
	}

	switch items := v.Value().(type) {
	case []string:
		return items, nil
	case []interface{}:
		out := make([]string, 0, len(items))
		for _, item := range items {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("invalid string list %q: element %v is not a string", text, item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("invalid string list %q: got %s", text, v.Signature())
	}
}

// FormatStringList encodes items as a GVariant string array.
// An empty list is written as "[]".
func FormatStringList(items []string) string {
	if len(items) == 0 {
		return "[]"
	}
	return dbus.MakeVariant(items).String()
}
