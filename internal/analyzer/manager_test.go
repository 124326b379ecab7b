package analyzer

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPageURL = "https://example.com/"

func optimalValues() PageValues {
	return PageValues{
		Title:       Some(strings.Repeat("T", 45)),
		Description: Some(strings.Repeat("D", 120)),
		Canonical:   Some(testPageURL),
		Viewport:    Some("width=device-width, initial-scale=1"),
		Robots:      Some("index, follow"),
		Lang:        Some("en"),
		Charset:     Some("utf-8"),
		OpenGraph: OpenGraphValues{
			Title:       Some("OG title"),
			Description: Some("OG description"),
			Image:       Some("https://example.com/og.png"),
			URL:         Some(testPageURL),
			Type:        Some("website"),
		},
		Twitter: TwitterValues{
			Card:        Some("summary_large_image"),
			Title:       Some("Twitter title"),
			Description: Some("Twitter description"),
			Image:       Some("https://example.com/tw.png"),
		},
	}
}

func TestAnalyzeOptimalPage(t *testing.T) {
	t.Parallel()

	a := Analyze(testPageURL, optimalValues())

	require.Len(t, a.Tags, 16)
	assert.Equal(t, 100, a.Score)
	assert.Equal(t, 16, a.GoodCount)
	assert.Equal(t, 0, a.WarningCount)
	assert.Equal(t, 0, a.MissingCount)
	assert.Equal(t, BandSuccess, a.Band())
	assert.Empty(t, a.SocialPreviews.OpenGraph.Issues)
	assert.Empty(t, a.SocialPreviews.Twitter.Issues)
}

func TestAnalyzeEmptyPage(t *testing.T) {
	t.Parallel()

	a := Analyze(testPageURL, PageValues{})

	require.Len(t, a.Tags, 16)
	assert.Equal(t, 0, a.Score)
	assert.Equal(t, 0, a.GoodCount)
	assert.Equal(t, 0, a.WarningCount)
	assert.Equal(t, 16, a.MissingCount)
	assert.Nil(t, a.Title)
	assert.Nil(t, a.Description)
	assert.Len(t, a.SocialPreviews.OpenGraph.Issues, 5)
	assert.Len(t, a.SocialPreviews.Twitter.Issues, 4)

	for _, tag := range a.Tags {
		assert.Equal(t, StatusMissing, tag.Status, tag.Kind.Name())
		assert.Nil(t, tag.Value, tag.Kind.Name())
		assert.NotEmpty(t, tag.Recommendation, tag.Kind.Name())
	}
}

func TestAnalyzeTagOrder(t *testing.T) {
	t.Parallel()

	a := Analyze(testPageURL, optimalValues())

	want := []string{
		"", `name="description"`, `rel="canonical"`, `name="viewport"`, `name="robots"`,
		"lang", "charset",
		`property="og:title"`, `property="og:description"`, `property="og:image"`,
		`property="og:url"`, `property="og:type"`,
		`name="twitter:card"`, `name="twitter:title"`, `name="twitter:description"`, `name="twitter:image"`,
	}
	got := make([]string, 0, len(a.Tags))
	for _, tag := range a.Tags {
		got = append(got, tag.Attribute)
	}
	require.Len(t, got, len(Kinds()))
	for i, kind := range Kinds() {
		assert.Equal(t, kind, a.Tags[i].Kind)
		assert.Equal(t, want[i], got[i])
	}
	assert.Equal(t, TagTypeTitle, a.Tags[0].TagType)
	assert.Equal(t, TagTypeLink, a.Tags[2].TagType)
	assert.Equal(t, TagTypeHTML, a.Tags[5].TagType)
}

func TestAnalyzeLangAndCharsetExcludedFromScore(t *testing.T) {
	t.Parallel()

	v := optimalValues()
	v.Lang = None()
	v.Charset = Some("latin1")

	a := Analyze(testPageURL, v)

	assert.Equal(t, 100, a.Score)
	assert.Equal(t, 14, a.GoodCount)
	assert.Equal(t, 1, a.WarningCount)
	assert.Equal(t, 1, a.MissingCount)
}

func TestAnalyzeScoreRounding(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*PageValues)
		score  int
	}{
		{"missing title: 21/24 = 87.5", func(v *PageValues) { v.Title = None() }, 88},
		{"warning title: 22.5/24 = 93.75", func(v *PageValues) { v.Title = Some("short") }, 94},
		{"one social missing: 23/24", func(v *PageValues) { v.OpenGraph.Type = None() }, 96},
		{"only critical warnings: 7.5/24", func(v *PageValues) {
			*v = PageValues{
				Title:       Some("short"),
				Description: Some("short"),
				Canonical:   Some("https://other.example/"),
				Viewport:    Some("width=1024"),
				Robots:      Some("noindex"),
			}
		}, 31},
		{"only social: 9/24 = 37.5", func(v *PageValues) {
			og, tw := v.OpenGraph, v.Twitter
			*v = PageValues{OpenGraph: og, Twitter: tw}
		}, 38},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := optimalValues()
			tt.mutate(&v)
			assert.Equal(t, tt.score, Analyze(testPageURL, v).Score)
		})
	}
}

func TestAnalyzeCountsAlwaysSumToTagCount(t *testing.T) {
	t.Parallel()

	variants := []PageValues{{}, optimalValues()}
	partial := optimalValues()
	partial.Description = Some("short")
	partial.Twitter = TwitterValues{}
	variants = append(variants, partial)

	for _, v := range variants {
		a := Analyze(testPageURL, v)
		assert.Equal(t, len(a.Tags), a.GoodCount+a.WarningCount+a.MissingCount)
		assert.GreaterOrEqual(t, a.Score, 0)
		assert.LessOrEqual(t, a.Score, 100)
		for _, tag := range a.Tags {
			assert.Contains(t, []Status{StatusGood, StatusWarning, StatusMissing}, tag.Status)
		}
	}
}

func TestAnalyzeIsIdempotent(t *testing.T) {
	t.Parallel()

	v := optimalValues()
	v.Robots = Some("noindex")
	v.OpenGraph.Image = None()

	first, err := json.Marshal(Analyze(testPageURL, v))
	require.NoError(t, err)
	second, err := json.Marshal(Analyze(testPageURL, v))
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestAnalyzeJSONShape(t *testing.T) {
	t.Parallel()

	v := PageValues{Title: Some("Hello world page")}
	raw, err := json.Marshal(Analyze(testPageURL, v))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, testPageURL, decoded["url"])
	assert.Equal(t, "Hello world page", decoded["title"])
	assert.NotContains(t, decoded, "description")
	assert.Contains(t, decoded, "googlePreview")
	assert.Contains(t, decoded, "socialPreviews")

	tags := decoded["tags"].([]any)
	first := tags[0].(map[string]any)
	assert.Equal(t, "title", first["tagType"])
	assert.Equal(t, "", first["attribute"])
	assert.Equal(t, "good", first["status"])
	assert.NotContains(t, first, "recommendation")

	second := tags[1].(map[string]any)
	assert.NotContains(t, second, "value")
	assert.Equal(t, "missing", second["status"])
}

func TestAnalyzeTagLookup(t *testing.T) {
	t.Parallel()

	a := Analyze(testPageURL, optimalValues())

	tag, ok := a.Tag(KindTwitterCard)
	require.True(t, ok)
	assert.Equal(t, "summary_large_image", tag.Text())

	_, ok = a.Tag(TagKind(99))
	assert.False(t, ok)
}
