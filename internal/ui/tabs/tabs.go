// Package tabs defines the sections of the text report.
package tabs

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/spider-crawler/seotags/internal/analyzer"
	"github.com/spider-crawler/seotags/internal/ui/components"
	"github.com/spider-crawler/seotags/internal/ui/theme"
)

// TabID identifies a tab.
type TabID string

const (
	TabSummary    TabID = "summary"
	TabGoogle     TabID = "google"
	TabSocial     TabID = "social"
	TabCategories TabID = "categories"
)

// TabConfig defines a tab's configuration.
type TabConfig struct {
	ID     TabID
	Title  string
	render func(a *analyzer.SeoAnalysis, s *theme.Styles) string
}

// AllTabs returns all tab configurations, in display order.
func AllTabs() []TabConfig {
	return []TabConfig{
		{ID: TabSummary, Title: "Summary", render: renderSummary},
		{ID: TabGoogle, Title: "Google Preview", render: renderGoogle},
		{ID: TabSocial, Title: "Social Previews", render: renderSocial},
		{ID: TabCategories, Title: "Categories", render: renderCategories},
	}
}

// Lookup returns the tab with the given id.
func Lookup(id TabID) (TabConfig, bool) {
	for _, tab := range AllTabs() {
		if tab.ID == id {
			return tab, true
		}
	}
	return TabConfig{}, false
}

// Render renders the tab body for a.
func (t TabConfig) Render(a *analyzer.SeoAnalysis, s *theme.Styles) string {
	return s.Heading.Render(t.Title) + "\n" + t.render(a, s)
}

func renderSummary(a *analyzer.SeoAnalysis, s *theme.Styles) string {
	var b strings.Builder

	band := a.Band()
	fmt.Fprintf(&b, "%s %s\n", s.Muted.Render("Score:"), s.Band(band).Render(fmt.Sprintf("%d/100 (%s)", a.Score, band)))
	fmt.Fprintf(&b, "%s %s  %s  %s\n\n",
		s.Muted.Render("Tags:"),
		s.Status(analyzer.StatusGood).Render(fmt.Sprintf("%d good", a.GoodCount)),
		s.Status(analyzer.StatusWarning).Render(fmt.Sprintf("%d warning", a.WarningCount)),
		s.Status(analyzer.StatusMissing).Render(fmt.Sprintf("%d missing", a.MissingCount)))

	data := &components.TableData{
		Columns: []components.Column{
			{Title: "Tag", MaxWidth: 20},
			{Title: "Status", MaxWidth: 8},
			{Title: "Value", MaxWidth: 40},
			{Title: "Recommendation", MaxWidth: 70},
		},
	}
	for _, tag := range a.Tags {
		value := tag.Text()
		if tag.Value == nil {
			value = "-"
		}
		data.Rows = append(data.Rows, []string{tag.Kind.Name(), string(tag.Status), value, tag.Recommendation})
	}

	table := components.NewDataTable(data, s.Header, func(row, col int) lipgloss.Style {
		if col == 1 {
			return s.Status(a.Tags[row].Status)
		}
		return s.Plain
	})
	b.WriteString(table.Render())
	return b.String()
}

func renderGoogle(a *analyzer.SeoAnalysis, s *theme.Styles) string {
	g := a.GooglePreview

	title := "(no title)"
	if g.Title != nil {
		title = *g.Title
	}
	description := "(no description)"
	if g.Description != nil {
		description = *g.Description
	}

	snippet := s.Box.Render(strings.Join([]string{
		s.Muted.Render(g.DisplayURL()),
		s.Title.Render(components.Truncate(title, analyzer.Thresholds.TitleMaxLength)),
		components.Truncate(description, analyzer.Thresholds.DescriptionMaxLength),
	}, "\n"))

	var b strings.Builder
	b.WriteString(snippet)
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s\n", s.Status(g.TitleStatus).Render(fmt.Sprintf("Title (%d chars):", g.TitleLength)), g.TitleAnalysis())
	fmt.Fprintf(&b, "%s %s\n", s.Status(g.DescriptionStatus).Render(fmt.Sprintf("Description (%d chars):", g.DescriptionLength)), g.DescriptionAnalysis())
	return b.String()
}

func renderSocial(a *analyzer.SeoAnalysis, s *theme.Styles) string {
	og := a.SocialPreviews.OpenGraph
	tw := a.SocialPreviews.Twitter

	var b strings.Builder
	b.WriteString(card(s, "Open Graph", [][2]string{
		{"Title", deref(og.Title)},
		{"Description", deref(og.Description)},
		{"Image", deref(og.Image)},
		{"URL", deref(og.URL)},
		{"Type", deref(og.Type)},
	}, og.Issues))
	b.WriteString(card(s, "Twitter Card", [][2]string{
		{"Card", deref(tw.Card)},
		{"Title", deref(tw.Title)},
		{"Description", deref(tw.Description)},
		{"Image", deref(tw.Image)},
	}, tw.Issues))
	return b.String()
}

func card(s *theme.Styles, name string, fields [][2]string, issues []string) string {
	var b strings.Builder
	b.WriteString(s.Title.Render(name))
	b.WriteString("\n")
	for _, f := range fields {
		fmt.Fprintf(&b, "  %-12s %s\n", f[0]+":", components.Truncate(f[1], 80))
	}
	if len(issues) == 0 {
		b.WriteString(s.Status(analyzer.StatusGood).Render("  All tags present"))
		b.WriteString("\n")
	}
	for _, issue := range issues {
		b.WriteString(s.Status(analyzer.StatusMissing).Render("  - " + issue))
		b.WriteString("\n")
	}
	return b.String()
}

func renderCategories(a *analyzer.SeoAnalysis, s *theme.Styles) string {
	categories := analyzer.Categorize(a.Tags)

	data := &components.TableData{
		Columns: []components.Column{
			{Title: "Category"},
			{Title: "Good"},
			{Title: "Warning"},
			{Title: "Missing"},
			{Title: "Score"},
		},
	}
	bands := make([]analyzer.Band, 0, len(categories))
	for _, c := range categories {
		if c.Total == 0 {
			continue
		}
		data.Rows = append(data.Rows, []string{
			c.Name,
			fmt.Sprint(c.Good),
			fmt.Sprint(c.Warning),
			fmt.Sprint(c.Missing),
			fmt.Sprintf("%d%%", c.Score),
		})
		bands = append(bands, analyzer.ScoreBand(c.Score))
	}

	table := components.NewDataTable(data, s.Header, func(row, col int) lipgloss.Style {
		if col == 4 {
			return s.Band(bands[row])
		}
		return s.Plain
	})
	return table.Render()
}

func deref(v *string) string {
	if v == nil {
		return "-"
	}
	return *v
}
