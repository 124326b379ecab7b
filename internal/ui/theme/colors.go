// Package theme defines the terminal colors and styles of the text report.
package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/spider-crawler/seotags/internal/analyzer"
)

// Palette
var (
	ColorPrimary       = lipgloss.Color("#00C853") // Primary green
	ColorSuccess       = lipgloss.Color("#00C853") // Good / success band
	ColorWarning       = lipgloss.Color("#FFC107") // Warning
	ColorError         = lipgloss.Color("#F44336") // Missing / danger band
	ColorInfo          = lipgloss.Color("#2196F3") // Headings
	ColorTextSecondary = lipgloss.Color("#B3B3B3") // Secondary text
	ColorBorder        = lipgloss.Color("#3C3C3C") // Box borders
)

// Styles is the set of styles bound to one output renderer.
type Styles struct {
	Title   lipgloss.Style
	Heading lipgloss.Style
	Muted   lipgloss.Style
	Header  lipgloss.Style
	Plain   lipgloss.Style
	Box     lipgloss.Style

	good    lipgloss.Style
	warning lipgloss.Style
	missing lipgloss.Style
}

// New builds the styles for r. A renderer writing to a non-terminal produces
// uncolored output.
func New(r *lipgloss.Renderer) *Styles {
	return &Styles{
		Title:   r.NewStyle().Bold(true).Foreground(ColorPrimary),
		Heading: r.NewStyle().Bold(true).Foreground(ColorInfo),
		Muted:   r.NewStyle().Foreground(ColorTextSecondary),
		Header:  r.NewStyle().Bold(true).Underline(true),
		Plain:   r.NewStyle(),
		Box: r.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1),

		good:    r.NewStyle().Foreground(ColorSuccess),
		warning: r.NewStyle().Foreground(ColorWarning),
		missing: r.NewStyle().Foreground(ColorError),
	}
}

// Status returns the style of a tag status.
func (s *Styles) Status(status analyzer.Status) lipgloss.Style {
	switch status {
	case analyzer.StatusGood:
		return s.good
	case analyzer.StatusWarning:
		return s.warning
	default:
		return s.missing
	}
}

// Band returns the style of a score band.
func (s *Styles) Band(band analyzer.Band) lipgloss.Style {
	switch band {
	case analyzer.BandSuccess:
		return s.good.Bold(true)
	case analyzer.BandWarning:
		return s.warning.Bold(true)
	default:
		return s.missing.Bold(true)
	}
}
