package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/cluso-graphstats/pkg/analysis"
)

var (
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#FF00FF")).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				Padding(0, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1)
)

type keyMap struct {
	NextTab     key.Binding
	PrevTab     key.Binding
	NextSection key.Binding
	PrevSection key.Binding
	Up          key.Binding
	Down        key.Binding
	Quit        key.Binding
}

var keys = keyMap{
	NextTab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next tab"),
	),
	PrevTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "prev tab"),
	),
	NextSection: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "next table"),
	),
	PrevSection: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "prev table"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.NextSection, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab},
		{k.NextSection, k.PrevSection, k.Up, k.Down},
		{k.Quit},
	}
}

// browser is an interactive view of a finished report. Sections are grouped
// into tabs; one section table is shown at a time.
type browser struct {
	report   *analysis.Report
	tabs     []string
	sections map[string][]section
	tab      int
	index    int
	table    table.Model
	help     help.Model
	height   int
}

func newBrowser(r *analysis.Report) browser {
	b := browser{
		report:   r,
		sections: make(map[string][]section),
		help:     help.New(),
		height:   20,
	}
	for _, s := range buildSections(r) {
		if _, ok := b.sections[s.Tab]; !ok {
			b.tabs = append(b.tabs, s.Tab)
		}
		b.sections[s.Tab] = append(b.sections[s.Tab], s)
	}
	b.refresh()
	return b
}

func (b *browser) current() section {
	return b.sections[b.tabs[b.tab]][b.index]
}

func (b *browser) refresh() {
	if len(b.tabs) == 0 {
		return
	}
	b.table = newTable(b.current(), b.height, true)
}

func (b browser) Init() tea.Cmd {
	return nil
}

func (b browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.help.Width = msg.Width
		// Title, tabs, section title, note and help
		b.height = max(5, msg.Height-10)
		b.refresh()
		return b, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return b, tea.Quit
		case len(b.tabs) == 0:
			return b, nil
		case key.Matches(msg, keys.NextTab):
			b.tab = (b.tab + 1) % len(b.tabs)
			b.index = 0
			b.refresh()
			return b, nil
		case key.Matches(msg, keys.PrevTab):
			b.tab = (b.tab + len(b.tabs) - 1) % len(b.tabs)
			b.index = 0
			b.refresh()
			return b, nil
		case key.Matches(msg, keys.NextSection):
			b.index = (b.index + 1) % len(b.sections[b.tabs[b.tab]])
			b.refresh()
			return b, nil
		case key.Matches(msg, keys.PrevSection):
			n := len(b.sections[b.tabs[b.tab]])
			b.index = (b.index + n - 1) % n
			b.refresh()
			return b, nil
		}
	}

	var cmd tea.Cmd
	b.table, cmd = b.table.Update(msg)
	return b, cmd
}

func (b browser) View() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(fmt.Sprintf("graphstats report %s", b.report.RunID)))
	s.WriteString("\n\n")

	rendered := make([]string, len(b.tabs))
	for i, tab := range b.tabs {
		if i == b.tab {
			rendered[i] = activeTabStyle.Render(tab)
		} else {
			rendered[i] = inactiveTabStyle.Render(tab)
		}
	}
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	s.WriteString("\n")

	if len(b.tabs) > 0 {
		sec := b.current()
		s.WriteString(sectionStyle.Render(fmt.Sprintf("%s (%d/%d)", sec.Title, b.index+1, len(b.sections[sec.Tab]))))
		s.WriteString("\n")
		s.WriteString(b.table.View())
		if sec.Note != "" {
			s.WriteString("\n")
			s.WriteString(noteStyle.Render(sec.Note))
		}
	}

	s.WriteString("\n")
	s.WriteString(helpStyle.Render(b.help.ShortHelpView(keys.ShortHelp())))
	return s.String()
}

// browse runs the interactive browser until the user quits.
func browse(r *analysis.Report) error {
	p := tea.NewProgram(newBrowser(r), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
