package cli

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"

	"github.com/facundojmaero/gnome-shortcuts/internal/types"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	createdStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	updatedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	builtinStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	disabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

// modifierLabels maps accelerator modifiers to printable names
var modifierLabels = map[string]string{
	"<Primary>": "Ctrl",
	"<Control>": "Ctrl",
	"<Ctrl>":    "Ctrl",
	"<Shift>":   "Shift",
	"<Alt>":     "Alt",
	"<Super>":   "Super",
	"<Mod4>":    "Super",
	"<Meta>":    "Meta",
	"<Hyper>":   "Hyper",
}

var acceleratorToken = regexp.MustCompile(`(<[^>]+>|[^<]+)`)

// humanizeBinding renders an accelerator for reading, e.g. "<Super>t" as "Super + T"
func humanizeBinding(binding string) string {
	if binding == "" || strings.HasPrefix(binding, "XF86") {
		return binding
	}

	var parts []string
	for _, token := range acceleratorToken.FindAllString(binding, -1) {
		switch {
		case modifierLabels[token] != "":
			parts = append(parts, modifierLabels[token])
		case strings.HasPrefix(token, "<"):
			parts = append(parts, titleWord(strings.Trim(token, "<>")))
		default:
			parts = append(parts, titleWord(token))
		}
	}
	return strings.Join(parts, " + ")
}

func titleWord(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func kindStyle(kind types.ChangeKind) lipgloss.Style {
	switch kind {
	case types.ChangeCreated:
		return createdStyle
	case types.ChangeUpdated:
		return updatedStyle
	case types.ChangeBuiltin:
		return builtinStyle
	default:
		return disabledStyle
	}
}

// padRight pads s to width display cells
func padRight(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// columnWidths returns the widest cell per column
func columnWidths(rows [][]string) []int {
	var widths []int
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

// renderRows lays out rows in aligned columns.
// style, when set, styles the first column of each row.
func renderRows(sb *strings.Builder, rows [][]string, style func(row int) lipgloss.Style) {
	widths := columnWidths(rows)
	for r, row := range rows {
		sb.WriteString("  ")
		for i, cell := range row {
			padded := cell
			if i < len(row)-1 {
				padded = padRight(cell, widths[i]) + "  "
			}
			if i == 0 && style != nil {
				padded = style(r).Render(padded)
			}
			sb.WriteString(padded)
		}
		sb.WriteString("\n")
	}
}

func changeRow(change types.Change) []string {
	location := change.Schema
	if change.Slot != nil {
		location = fmt.Sprintf("slot %d", *change.Slot)
	}
	binding := humanizeBinding(change.Binding)
	if change.Kind == types.ChangeDisabled {
		binding = "(disabled)"
	}
	return []string{string(change.Kind), change.Name, binding, location}
}

// summarizeChanges counts changes per kind, e.g. "1 created, 2 builtin"
func summarizeChanges(changes []types.Change) string {
	counts := make(map[types.ChangeKind]int)
	for _, change := range changes {
		counts[change.Kind]++
	}

	var parts []string
	for _, kind := range []types.ChangeKind{types.ChangeCreated, types.ChangeUpdated, types.ChangeBuiltin, types.ChangeDisabled} {
		if counts[kind] > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", counts[kind], kind))
		}
	}
	if len(parts) == 0 {
		return "no changes"
	}
	return strings.Join(parts, ", ")
}

// renderApplyResult formats the text report of an apply run
func renderApplyResult(result ApplyResult) string {
	var sb strings.Builder

	title := "Applied"
	if result.DryRun {
		title = "Dry run of"
	}
	sb.WriteString(headerStyle.Render(fmt.Sprintf("%s %s", title, result.ConfigFile)))
	sb.WriteString("\n")

	if len(result.Changes) > 0 {
		rows := make([][]string, 0, len(result.Changes))
		for _, change := range result.Changes {
			rows = append(rows, changeRow(change))
		}
		renderRows(&sb, rows, func(r int) lipgloss.Style {
			return kindStyle(result.Changes[r].Kind)
		})
	}

	if result.DryRun && len(result.Writes) > 0 {
		sb.WriteString("\n")
		sb.WriteString(headerStyle.Render("Planned writes (nothing was changed):"))
		sb.WriteString("\n")
		for _, write := range result.Writes {
			sb.WriteString(mutedStyle.Render(fmt.Sprintf("  gsettings set %s %s %s", write.Schema, write.Key, write.Value)))
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(summarizeChanges(result.Changes))
	sb.WriteString("\n")

	if result.Error != "" {
		sb.WriteString(errorStyle.Render("Stopped: " + result.Error))
		sb.WriteString("\n")
	}

	return sb.String()
}

// renderList formats installed shortcuts and the requested built-ins
func renderList(result ListResult) string {
	var sb strings.Builder

	sb.WriteString(headerStyle.Render(fmt.Sprintf("Custom shortcuts (%d)", len(result.Custom))))
	sb.WriteString("\n")
	if len(result.Custom) == 0 {
		sb.WriteString(mutedStyle.Render("  none installed"))
		sb.WriteString("\n")
	} else {
		rows := make([][]string, 0, len(result.Custom))
		for _, shortcut := range result.Custom {
			slot := "-"
			if shortcut.Slot != nil {
				slot = fmt.Sprintf("%d", *shortcut.Slot)
			}
			rows = append(rows, []string{slot, shortcut.Name, humanizeBinding(shortcut.Binding), shortcut.Command})
		}
		renderRows(&sb, rows, func(int) lipgloss.Style { return mutedStyle })
	}

	if len(result.Builtins) > 0 {
		sb.WriteString("\n")
		sb.WriteString(headerStyle.Render("Built-in shortcuts"))
		sb.WriteString("\n")
		rows := make([][]string, 0, len(result.Builtins))
		for _, builtin := range result.Builtins {
			labels := make([]string, 0, len(builtin.Bindings))
			for _, binding := range builtin.Bindings {
				labels = append(labels, humanizeBinding(binding))
			}
			bindings := strings.Join(labels, ", ")
			if bindings == "" {
				bindings = "(disabled)"
			}
			rows = append(rows, []string{builtin.Name, bindings})
		}
		renderRows(&sb, rows, nil)
	}

	return sb.String()
}

// renderHistory formats stored runs, newest first
func renderHistory(records []types.RunRecord) string {
	if len(records) == 0 {
		return "No runs recorded\n"
	}

	var sb strings.Builder
	for i, record := range records {
		if i > 0 {
			sb.WriteString("\n")
		}

		status := createdStyle.Render("ok")
		if record.Error != "" {
			status = errorStyle.Render("failed")
		}
		mode := ""
		if record.DryRun {
			mode = " (dry run)"
		}

		sb.WriteString(headerStyle.Render(record.Timestamp.Format("2006-01-02 15:04:05")))
		sb.WriteString(fmt.Sprintf(" %s%s %s %dms\n", status, mode, record.ConfigFile, record.DurationMs))
		sb.WriteString(mutedStyle.Render("  run " + record.RunID))
		sb.WriteString("\n")

		if len(record.Changes) > 0 {
			rows := make([][]string, 0, len(record.Changes))
			for _, change := range record.Changes {
				rows = append(rows, changeRow(change))
			}
			renderRows(&sb, rows, func(r int) lipgloss.Style {
				return kindStyle(record.Changes[r].Kind)
			})
		}
		if record.Error != "" {
			sb.WriteString("  " + record.Error + "\n")
		}
	}
	return sb.String()
}
