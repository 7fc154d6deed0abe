package filter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"github.com/jmespath/go-jmespath"
	"github.com/sahilm/fuzzy"

	"github.com/facundojmaero/gnome-shortcuts/internal/types"
)

// QueryShellTimeout bounds a $(command) query
const QueryShellTimeout = 30 * time.Second

var shellPattern = regexp.MustCompile(`^\$\((.+)\)$`)

// Query runs expression over a JSON document.
//
// An expression of the form $(command) runs command through sh with the
// document on stdin and returns its trimmed stdout. Anything else is a
// JMESPath expression whose result is returned as indented JSON.
func Query(ctx context.Context, document, expression string) (string, error) {
	if expression == "" {
		return document, nil
	}

	if matches := shellPattern.FindStringSubmatch(expression); len(matches) > 1 {
		out, err := runShell(ctx, document, matches[1])
		if err != nil {
			return "", fmt.Errorf("failed to execute query shell command: %w", err)
		}
		return out, nil
	}

	out, err := searchJMESPath(document, expression)
	if err != nil {
		return "", fmt.Errorf("failed to apply query: %w", err)
	}
	return out, nil
}

// CheckQuery reports a malformed JMESPath expression. Shell queries are
// not checked.
func CheckQuery(expression string) error {
	if expression == "" || IsShellCommand(expression) {
		return nil
	}
	if _, err := jmespath.Compile(expression); err != nil {
		return fmt.Errorf("invalid JMESPath expression '%s': %w", expression, err)
	}
	return nil
}

// IsShellCommand reports whether a query has the $(command) form
func IsShellCommand(query string) bool {
	return shellPattern.MatchString(query)
}

func searchJMESPath(document, expression string) (string, error) {
	var data any
	if err := json.Unmarshal([]byte(document), &data); err != nil {
		return "", fmt.Errorf("invalid JSON: %w", err)
	}

	jp, err := jmespath.Compile(expression)
	if err != nil {
		return "", fmt.Errorf("invalid JMESPath expression '%s': %w", expression, err)
	}

	result, err := jp.Search(data)
	if err != nil {
		return "", fmt.Errorf("JMESPath search failed: %w", err)
	}
	if result == nil {
		return "null", nil
	}

	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}
	return string(output), nil
}

func runShell(ctx context.Context, document, command string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryShellTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Stdin = strings.NewReader(document)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := err.Error()
		if stderr.Len() > 0 {
			msg = strings.TrimSpace(stderr.String())
		}
		return "", fmt.Errorf("command '%s' failed: %s", command, msg)
	}

	return strings.TrimSpace(stdout.String()), nil
}

// shortcutSource adapts a shortcut list for fuzzy matching on names
type shortcutSource []*types.CustomShortcut

func (s shortcutSource) String(i int) string { return s[i].Name }
func (s shortcutSource) Len() int            { return len(s) }

// FuzzyShortcuts returns the shortcuts whose name fuzzily matches pattern,
// best match first. An empty pattern returns the input unchanged.
func FuzzyShortcuts(shortcuts []*types.CustomShortcut, pattern string) []*types.CustomShortcut {
	if pattern == "" {
		return shortcuts
	}

	matches := fuzzy.FindFrom(pattern, shortcutSource(shortcuts))
	filtered := make([]*types.CustomShortcut, 0, len(matches))
	for _, match := range matches {
		filtered = append(filtered, shortcuts[match.Index])
	}
	return filtered
}

// FilterChangesByKind keeps the changes of ANY of the specified kinds
func FilterChangesByKind(changes []types.Change, kinds []string) []types.Change {
	if len(kinds) == 0 {
		return changes
	}

	filtered := []types.Change{}
	for _, change := range changes {
		if hasAnyKind(change.Kind, kinds) {
			filtered = append(filtered, change)
		}
	}
	return filtered
}

func hasAnyKind(kind types.ChangeKind, kinds []string) bool {
	for _, k := range kinds {
		if strings.EqualFold(string(kind), k) {
			return true
		}
	}
	return false
}
