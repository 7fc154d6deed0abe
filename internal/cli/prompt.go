package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/facundojmaero/gnome-shortcuts/internal/config"
	"github.com/facundojmaero/gnome-shortcuts/internal/keybinds"
)

var (
	titleStyle        = lipgloss.NewStyle().MarginLeft(2).Bold(true)
	itemStyle         = lipgloss.NewStyle().PaddingLeft(4)
	selectedItemStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("170"))
	helpStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1).MarginLeft(2)
)

type item struct {
	path    string
	format  keybinds.Format
	global  bool
	summary string
}

func newItem(path string) item {
	i := item{
		path:   path,
		format: keybinds.FormatFromPath(path),
		global: config.ConfigDir != "" && filepath.Dir(path) == config.ConfigDir,
	}

	cfg, err := keybinds.LoadConfig(path)
	if err != nil {
		i.summary = "unreadable"
	} else {
		i.summary = fmt.Sprintf("%d custom, %d built-in", len(cfg.CustomShortcuts), len(cfg.BuiltinShortcuts))
	}
	return i
}

func (i item) FilterValue() string {
	return i.path
}

func (i item) Title() string {
	location := "current directory"
	if i.global {
		location = "config directory"
	}
	return fmt.Sprintf("%s (%s, %s)", filepath.Base(i.path), i.format, location)
}

func (i item) Description() string { return i.summary }

type selectorModel struct {
	list     list.Model
	choice   string
	quitting bool
}

func (m selectorModel) Init() tea.Cmd {
	return nil
}

func (m selectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			m.choice = ""
			return m, tea.Quit

		case "enter":
			i, ok := m.list.SelectedItem().(item)
			if ok {
				m.choice = i.path
			}
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m selectorModel) View() string {
	if m.quitting {
		return ""
	}

	help := helpStyle.Render("↑/↓: navigate • enter: select • q/ctrl+c: cancel")
	return fmt.Sprintf("%s\n\n%s", m.list.View(), help)
}

// newSelectorModel builds the picker over the candidate files
func newSelectorModel(candidates []string) selectorModel {
	items := make([]list.Item, 0, len(candidates))
	for _, path := range candidates {
		items = append(items, newItem(path))
	}

	const defaultWidth = 80
	const listHeight = 10

	l := list.New(items, itemDelegate{}, defaultWidth, listHeight)
	l.Title = "Several shortcuts files found, pick one to use"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = titleStyle

	return selectorModel{list: l}
}

// selectConfigFile shows an interactive list to choose a shortcuts file
func selectConfigFile(candidates []string) (string, error) {
	p := tea.NewProgram(newSelectorModel(candidates))
	finalModel, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("error running selector: %w", err)
	}

	result := finalModel.(selectorModel)
	if result.choice == "" {
		return "", fmt.Errorf("selection cancelled")
	}

	return result.choice, nil
}

// itemDelegate is a custom list item delegate
type itemDelegate struct{}

func (d itemDelegate) Height() int                             { return 1 }
func (d itemDelegate) Spacing() int                            { return 0 }
func (d itemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(item)
	if !ok {
		return
	}

	str := fmt.Sprintf("%d. %s  %s", index+1, i.Title(), mutedStyle.Render(i.Description()))

	fn := itemStyle.Render
	if index == m.Index() {
		fn = func(s ...string) string {
			return selectedItemStyle.Render("> " + strings.Join(s, " "))
		}
	}

	fmt.Fprint(w, fn(str))
}
