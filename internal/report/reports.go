// Package report turns an analysis into tabular reports and exports them.
package report

import (
	"fmt"
	"time"

	"github.com/spider-crawler/seotags/internal/analyzer"
)

// ReportType defines the type of report.
type ReportType string

const (
	ReportAllTags    ReportType = "all_tags"
	ReportIssues     ReportType = "issues"
	ReportCategories ReportType = "categories"
	ReportSocial     ReportType = "social_issues"
)

// Column names shared by the tag reports.
const (
	ColTag            = "Tag"
	ColAttribute      = "Attribute"
	ColValue          = "Value"
	ColStatus         = "Status"
	ColRecommendation = "Recommendation"
	ColHTML           = "HTML"
)

var tagColumns = []string{ColTag, ColAttribute, ColValue, ColStatus, ColRecommendation, ColHTML}

// ReportDefinition defines a report type.
type ReportDefinition struct {
	Type        ReportType
	Name        string
	Description string
	Columns     []string
}

// AllReports returns all available report definitions.
func AllReports() []*ReportDefinition {
	return []*ReportDefinition{
		{ReportAllTags, "All Tags", "Every checked tag with its status", tagColumns},
		{ReportIssues, "Issues", "Tags that are missing or need attention", tagColumns},
		{ReportCategories, "Categories", "Scores per tag category", []string{"Category", "Description", "Good", "Warning", "Missing", "Total", "Score"}},
		{ReportSocial, "Social Issues", "Missing Open Graph and Twitter Card fields", []string{"Network", "Issue"}},
	}
}

// ReportRow represents a single row in a report.
type ReportRow struct {
	Values map[string]interface{}
}

// Summary is the headline of an analysis.
type Summary struct {
	URL          string `json:"url"`
	DisplayURL   string `json:"display_url"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Score        int    `json:"score"`
	Band         string `json:"band"`
	GoodCount    int    `json:"good_count"`
	WarningCount int    `json:"warning_count"`
	MissingCount int    `json:"missing_count"`
}

// Report represents a generated report.
type Report struct {
	Definition *ReportDefinition
	Summary    Summary
	Rows       []*ReportRow
	TotalCount int
	Generated  string // Timestamp
}

// Generator generates reports from a single analysis.
type Generator struct {
	analysis *analyzer.SeoAnalysis
	now      func() time.Time
}

// NewGenerator creates a new report generator.
func NewGenerator(a *analyzer.SeoAnalysis) *Generator {
	return &Generator{analysis: a, now: time.Now}
}

// ParseReportType validates a report name, defaulting to ReportAllTags.
func ParseReportType(name string) (ReportType, error) {
	if name == "" {
		return ReportAllTags, nil
	}
	for _, def := range AllReports() {
		if string(def.Type) == name {
			return def.Type, nil
		}
	}
	return "", fmt.Errorf("unknown report type: %s", name)
}

// Generate generates a report of the specified type.
func (g *Generator) Generate(reportType ReportType) (*Report, error) {
	def := g.getDefinition(reportType)
	if def == nil {
		return nil, fmt.Errorf("unknown report type: %s", reportType)
	}

	report := &Report{
		Definition: def,
		Summary:    g.Summary(),
		Rows:       make([]*ReportRow, 0),
		Generated:  g.now().Format(time.RFC3339),
	}

	switch reportType {
	case ReportAllTags:
		g.generateAllTags(report)
	case ReportIssues:
		g.generateAllTags(report)
		filtered := report.FilterReport(ColStatus, string(analyzer.StatusGood), false)
		filtered.Definition = def
		report = filtered
	case ReportCategories:
		g.generateCategories(report)
	case ReportSocial:
		g.generateSocialIssues(report)
	}

	report.TotalCount = len(report.Rows)
	return report, nil
}

// Summary builds the headline of the analysis.
func (g *Generator) Summary() Summary {
	a := g.analysis
	s := Summary{
		URL:          a.URL,
		DisplayURL:   a.GooglePreview.DisplayURL(),
		Score:        a.Score,
		Band:         string(a.Band()),
		GoodCount:    a.GoodCount,
		WarningCount: a.WarningCount,
		MissingCount: a.MissingCount,
	}
	if a.Title != nil {
		s.Title = *a.Title
	}
	if a.Description != nil {
		s.Description = *a.Description
	}
	return s
}

func (g *Generator) getDefinition(reportType ReportType) *ReportDefinition {
	for _, def := range AllReports() {
		if def.Type == reportType {
			return def
		}
	}
	return nil
}

func (g *Generator) generateAllTags(report *Report) {
	for _, tag := range g.analysis.Tags {
		report.Rows = append(report.Rows, &ReportRow{Values: map[string]interface{}{
			ColTag:            tag.Kind.Name(),
			ColAttribute:      tag.Attribute,
			ColValue:          tag.Text(),
			ColStatus:         string(tag.Status),
			ColRecommendation: tag.Recommendation,
			ColHTML:           tag.HTML(),
		}})
	}
}

func (g *Generator) generateCategories(report *Report) {
	for _, c := range analyzer.Categorize(g.analysis.Tags) {
		if c.Total == 0 {
			continue
		}
		report.Rows = append(report.Rows, &ReportRow{Values: map[string]interface{}{
			"Category":    c.Name,
			"Description": c.Description,
			"Good":        c.Good,
			"Warning":     c.Warning,
			"Missing":     c.Missing,
			"Total":       c.Total,
			"Score":       c.Score,
		}})
	}
}

func (g *Generator) generateSocialIssues(report *Report) {
	previews := g.analysis.SocialPreviews
	for _, issue := range previews.OpenGraph.Issues {
		report.Rows = append(report.Rows, &ReportRow{Values: map[string]interface{}{
			"Network": "Open Graph",
			"Issue":   issue,
		}})
	}
	for _, issue := range previews.Twitter.Issues {
		report.Rows = append(report.Rows, &ReportRow{Values: map[string]interface{}{
			"Network": "Twitter",
			"Issue":   issue,
		}})
	}
}

// FilterReport keeps rows whose column equals value, or differs from it when
// match is false.
func (r *Report) FilterReport(column string, value interface{}, match bool) *Report {
	filtered := &Report{
		Definition: r.Definition,
		Summary:    r.Summary,
		Rows:       make([]*ReportRow, 0),
		Generated:  r.Generated,
	}

	for _, row := range r.Rows {
		if (row.Values[column] == value) == match {
			filtered.Rows = append(filtered.Rows, row)
		}
	}

	filtered.TotalCount = len(filtered.Rows)
	return filtered
}
