package analyzer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGooglePreview(t *testing.T) {
	t.Parallel()

	v := PageValues{
		Title:       Some("Short"),
		Description: Some(strings.Repeat("d", 200)),
	}
	g := Analyze(testPageURL, v).GooglePreview

	assert.Equal(t, testPageURL, g.URL)
	assert.Equal(t, 5, g.TitleLength)
	assert.Equal(t, 200, g.DescriptionLength)
	assert.Equal(t, StatusWarning, g.TitleStatus)
	assert.Equal(t, StatusWarning, g.DescriptionStatus)
	assert.Equal(t, StatusGood, g.URLStatus)
	assert.Contains(t, g.TitleAnalysis(), "too short")
	assert.Contains(t, g.DescriptionAnalysis(), "too long")
}

func TestGooglePreviewMissing(t *testing.T) {
	t.Parallel()

	g := Analyze(testPageURL, PageValues{}).GooglePreview

	assert.Nil(t, g.Title)
	assert.Zero(t, g.TitleLength)
	assert.Zero(t, g.DescriptionLength)
	assert.Equal(t, StatusMissing, g.TitleStatus)
	assert.Equal(t, "Your page is missing a title tag.", g.TitleAnalysis())
	assert.Equal(t, "Your page is missing a meta description.", g.DescriptionAnalysis())
}

func TestGooglePreviewOptimal(t *testing.T) {
	t.Parallel()

	g := Analyze(testPageURL, optimalValues()).GooglePreview

	assert.Contains(t, g.TitleAnalysis(), "optimized")
	assert.Contains(t, g.DescriptionAnalysis(), "well-optimized")
}

func TestGooglePreviewDisplayURL(t *testing.T) {
	t.Parallel()

	g := GooglePreview{URL: "https://example.com/blog/" + strings.Repeat("x", 80) + "?ref=1"}
	display := g.DisplayURL()

	assert.Len(t, display, Thresholds.DisplayURLMaxLength)
	assert.True(t, strings.HasPrefix(display, "example.com/blog/"))
	assert.True(t, strings.HasSuffix(display, "..."))

	assert.Equal(t, "example.com/", GooglePreview{URL: testPageURL}.DisplayURL())
}

func TestCharLengthCountsUTF16Units(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, charLength(""))
	assert.Equal(t, 4, charLength("Café"))
	assert.Equal(t, 2, charLength("🚀"))
	assert.Equal(t, 11, charLength("Café — Über"))

	p := PageValues{Title: Some("Launch 🚀")}
	g := BuildGooglePreview(&p, "https://example.com/", EvaluateTitle(p.Title), EvaluateDescription(p.Description))
	assert.Equal(t, 9, g.TitleLength)
}
