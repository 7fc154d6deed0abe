package keybinds

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/facundojmaero/gnome-shortcuts/internal/types"
)

var functionKeyPattern = regexp.MustCompile(`^F\d{1,2}$`)

const (
	sectionBuiltin = "builtin_shortcuts"
	sectionCustom  = "custom_shortcuts"
)

// ValidationError represents a shortcut validation error
type ValidationError struct {
	Type    string `json:"type" yaml:"type"` // "invalid", "conflict", "warning"
	Section string `json:"section" yaml:"section"`
	Index   int    `json:"index" yaml:"index"`
	Name    string `json:"name" yaml:"name"`
	Message string `json:"message" yaml:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s[%d] '%s': %s", e.Type, e.Section, e.Index, e.Name, e.Message)
}

// ValidationResult contains all validation errors and warnings
type ValidationResult struct {
	Errors   []ValidationError `json:"errors" yaml:"errors"`
	Warnings []ValidationError `json:"warnings" yaml:"warnings"`
}

// HasErrors returns true if there are any errors
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings returns true if there are any warnings
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// String returns a human-readable summary of validation results
func (r *ValidationResult) String() string {
	var sb strings.Builder

	if len(r.Errors) > 0 {
		sb.WriteString(fmt.Sprintf("Errors (%d):\n", len(r.Errors)))
		for _, err := range r.Errors {
			sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
		}
	}

	if len(r.Warnings) > 0 {
		sb.WriteString(fmt.Sprintf("Warnings (%d):\n", len(r.Warnings)))
		for _, warn := range r.Warnings {
			sb.WriteString(fmt.Sprintf("  - %s\n", warn.Error()))
		}
	}

	if !r.HasErrors() && !r.HasWarnings() {
		sb.WriteString("No issues found")
	}

	return sb.String()
}

// Validator validates shortcut documents
type Validator struct {
	// bareKeys can be bound without a modifier without hijacking plain typing
	bareKeys map[string]bool
}

// NewValidator creates a new shortcut validator
func NewValidator() *Validator {
	return &Validator{
		bareKeys: map[string]bool{
			"Print":  true,
			"Pause":  true,
			"Menu":   true,
			"Escape": true,
		},
	}
}

// ValidateConfig validates a document before it is applied
func (v *Validator) ValidateConfig(config *types.Config) *ValidationResult {
	result := &ValidationResult{
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
	}

	v.checkRequiredFields(config, result)
	v.checkDuplicateNames(config, result)
	v.checkBindingConflicts(config, result)
	v.checkReplacedBuiltins(config, result)
	v.checkBindingSyntax(config, result)

	return result
}

// checkRequiredFields rejects shortcuts with an empty name, binding or command
func (v *Validator) checkRequiredFields(config *types.Config, result *ValidationResult) {
	for i, b := range config.BuiltinShortcuts {
		if b.Name == "" {
			result.Errors = append(result.Errors, invalid(sectionBuiltin, i, b.Name, "name is required"))
		}
		if err := ValidateBinding(b.Binding); err != nil {
			result.Errors = append(result.Errors, invalid(sectionBuiltin, i, b.Name, err.Error()))
		}
	}

	for i, c := range config.CustomShortcuts {
		if c.Name == "" {
			result.Errors = append(result.Errors, invalid(sectionCustom, i, c.Name, "name is required"))
		}
		if err := ValidateBinding(c.Binding); err != nil {
			result.Errors = append(result.Errors, invalid(sectionCustom, i, c.Name, err.Error()))
		}
		if strings.TrimSpace(c.Command) == "" {
			result.Errors = append(result.Errors, invalid(sectionCustom, i, c.Name, "command is required"))
		}
	}
}

// checkDuplicateNames warns about names listed twice; the last entry wins
func (v *Validator) checkDuplicateNames(config *types.Config, result *ValidationResult) {
	seenCustom := make(map[string]int)
	for i, c := range config.CustomShortcuts {
		if c.Name == "" {
			continue
		}
		if first, ok := seenCustom[c.Name]; ok {
			result.Warnings = append(result.Warnings, warning(sectionCustom, i, c.Name,
				fmt.Sprintf("duplicate name (also at index %d), the last entry wins", first)))
		} else {
			seenCustom[c.Name] = i
		}
	}

	seenBuiltin := make(map[string]int)
	for i, b := range config.BuiltinShortcuts {
		if b.Name == "" {
			continue
		}
		key := b.SchemaOrDefault() + " " + b.Name
		if first, ok := seenBuiltin[key]; ok {
			result.Warnings = append(result.Warnings, warning(sectionBuiltin, i, b.Name,
				fmt.Sprintf("duplicate built-in (also at index %d), the last entry wins", first)))
		} else {
			seenBuiltin[key] = i
		}
	}
}

// checkBindingConflicts warns when two distinct shortcuts share a binding
func (v *Validator) checkBindingConflicts(config *types.Config, result *ValidationResult) {
	owners := make(map[string]string)
	for i, c := range config.CustomShortcuts {
		if c.Binding == "" {
			continue
		}
		if owner, ok := owners[c.Binding]; ok && owner != c.Name {
			result.Warnings = append(result.Warnings, ValidationError{
				Type:    "conflict",
				Section: sectionCustom,
				Index:   i,
				Name:    c.Name,
				Message: fmt.Sprintf("binding %s is also used by '%s'", c.Binding, owner),
			})
			continue
		}
		owners[c.Binding] = c.Name
	}

	for i, b := range config.BuiltinShortcuts {
		if owner, ok := owners[b.Binding]; ok {
			result.Warnings = append(result.Warnings, ValidationError{
				Type:    "conflict",
				Section: sectionBuiltin,
				Index:   i,
				Name:    b.Name,
				Message: fmt.Sprintf("binding %s is also used by custom shortcut '%s'", b.Binding, owner),
			})
		}
	}
}

// checkReplacedBuiltins warns when a replaced built-in is also configured,
// since the later write decides which binding survives
func (v *Validator) checkReplacedBuiltins(config *types.Config, result *ValidationResult) {
	configured := make(map[string]bool)
	for _, b := range config.BuiltinShortcuts {
		if b.SchemaOrDefault() == types.DefaultBuiltinSchema {
			configured[b.Name] = true
		}
	}

	for i, c := range config.CustomShortcuts {
		if c.BuiltinReplaced != "" && configured[c.BuiltinReplaced] {
			result.Warnings = append(result.Warnings, warning(sectionCustom, i, c.Name,
				fmt.Sprintf("replaces built-in '%s' which is also configured in %s", c.BuiltinReplaced, sectionBuiltin)))
		}
	}
}

// checkBindingSyntax warns about bindings GNOME will most likely not accept
// as intended: unbalanced modifier brackets, or a single printable key
// without a modifier
func (v *Validator) checkBindingSyntax(config *types.Config, result *ValidationResult) {
	for i, c := range config.CustomShortcuts {
		if c.Binding == "" {
			continue
		}
		if strings.Count(c.Binding, "<") != strings.Count(c.Binding, ">") {
			result.Warnings = append(result.Warnings, warning(sectionCustom, i, c.Name,
				fmt.Sprintf("binding %q has unbalanced modifier brackets", c.Binding)))
			continue
		}
		if strings.Contains(c.Binding, "<") || v.isStandaloneKey(c.Binding) {
			continue
		}
		if len([]rune(c.Binding)) == 1 || c.Binding == "space" || c.Binding == "Return" {
			result.Warnings = append(result.Warnings, warning(sectionCustom, i, c.Name,
				fmt.Sprintf("binding %q has no modifier and captures plain typing", c.Binding)))
		}
	}
}

// isStandaloneKey reports keys that are commonly bound without a modifier
func (v *Validator) isStandaloneKey(key string) bool {
	if v.bareKeys[key] || strings.HasPrefix(key, "XF86") {
		return true
	}
	return functionKeyPattern.MatchString(key)
}

// ValidateBinding checks that a binding is present.
// Bindings are opaque accelerator strings and are not parsed.
func ValidateBinding(binding string) error {
	if strings.TrimSpace(binding) == "" {
		return fmt.Errorf("binding is required")
	}
	return nil
}

func invalid(section string, index int, name, message string) ValidationError {
	return ValidationError{Type: "invalid", Section: section, Index: index, Name: name, Message: message}
}

func warning(section string, index int, name, message string) ValidationError {
	return ValidationError{Type: "warning", Section: section, Index: index, Name: name, Message: message}
}
