package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/cluso-graphstats/pkg/analysis"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF")).
			MarginTop(1)

	noteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)
)

func tableStyles(focused bool) table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#00FFFF")).
		BorderBottom(true).
		Bold(true)
	if focused {
		s.Selected = s.Selected.
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#FF00FF")).
			Bold(false)
	} else {
		s.Selected = lipgloss.NewStyle()
	}
	return s
}

func newTable(s section, height int, focused bool) table.Model {
	// Styles go first so the height accounts for the bordered header
	return table.New(
		table.WithStyles(tableStyles(focused)),
		table.WithColumns(s.columns()),
		table.WithRows(s.Rows),
		table.WithHeight(height),
		table.WithFocused(focused),
	)
}

// renderText writes the report as a sequence of titled tables.
func renderText(w io.Writer, r *analysis.Report) error {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("graphstats report %s", r.RunID)))
	b.WriteString("\n")
	b.WriteString(noteStyle.Render(fmt.Sprintf("generated %s in %s", r.GeneratedAt.Format("2006-01-02 15:04:05 MST"), r.Duration)))
	b.WriteString("\n")

	for _, s := range buildSections(r) {
		title := sectionStyle.Render(s.Title)
		if s.Tab == "Errors" {
			title = errorStyle.Render(s.Title)
		}
		b.WriteString(title)
		b.WriteString("\n")

		if len(s.Rows) == 0 {
			b.WriteString(noteStyle.Render("(none)"))
		} else {
			// Header plus its bottom border take two lines
			b.WriteString(newTable(s, len(s.Rows)+2, false).View())
		}
		b.WriteString("\n")
		if s.Note != "" {
			b.WriteString(noteStyle.Render(s.Note))
			b.WriteString("\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// renderJSON writes the report as indented JSON.
func renderJSON(w io.Writer, r *analysis.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
