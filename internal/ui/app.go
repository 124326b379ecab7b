// Package ui renders an analysis as a terminal report.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/spider-crawler/seotags/internal/analyzer"
	"github.com/spider-crawler/seotags/internal/ui/tabs"
	"github.com/spider-crawler/seotags/internal/ui/theme"
)

// App writes text reports to one output.
type App struct {
	out    io.Writer
	styles *theme.Styles
}

// NewApp creates an App writing to out. Colors are used only when out is a
// terminal.
func NewApp(out io.Writer) *App {
	return &App{
		out:    out,
		styles: theme.New(lipgloss.NewRenderer(out)),
	}
}

// Render writes the header and the requested tabs; no ids means all tabs.
func (a *App) Render(analysis *analyzer.SeoAnalysis, ids ...tabs.TabID) error {
	selected := tabs.AllTabs()
	if len(ids) > 0 {
		selected = selected[:0:0]
		for _, id := range ids {
			tab, ok := tabs.Lookup(id)
			if !ok {
				return fmt.Errorf("unknown tab: %s", id)
			}
			selected = append(selected, tab)
		}
	}

	var b strings.Builder
	b.WriteString(a.styles.Title.Render("SEO Tag Analysis"))
	b.WriteString(" ")
	b.WriteString(a.styles.Muted.Render(analysis.URL))
	b.WriteString("\n\n")

	for i, tab := range selected {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(tab.Render(analysis, a.styles))
	}

	_, err := io.WriteString(a.out, b.String())
	return err
}
