package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValue(t *testing.T) {
	t.Parallel()

	assert.False(t, Some("").Present())
	assert.False(t, None().Present())
	assert.Nil(t, None().Ptr())

	v := Some("hello")
	text, ok := v.Get()
	assert.True(t, ok)
	assert.Equal(t, "hello", text)
	assert.Equal(t, "hello", *v.Ptr())
	assert.NotSame(t, v.Ptr(), v.Ptr())

	assert.Equal(t, "fallback", None().Or(Some("fallback")).String())
	assert.Equal(t, "hello", v.Or(Some("fallback")).String())
}

func TestKinds(t *testing.T) {
	t.Parallel()

	kinds := Kinds()
	assert.Len(t, kinds, 16)

	var criticalCount, socialCount int
	for _, k := range kinds {
		if k.IsCritical() {
			criticalCount++
		}
		if k.IsSocial() {
			socialCount++
		}
	}
	assert.Equal(t, Weights.CriticalTags, criticalCount)
	assert.Equal(t, Weights.SocialTags, socialCount)
	assert.Equal(t, "og:title", KindOGTitle.String())
	assert.Equal(t, "TagKind(42)", TagKind(42).String())
}

func TestMetaTagHTML(t *testing.T) {
	t.Parallel()

	a := Analyze(testPageURL, PageValues{
		Title:     Some(`Fish & "Chips"`),
		Canonical: Some("https://example.com/"),
		Lang:      Some("en"),
		Charset:   Some("utf-8"),
		OpenGraph: OpenGraphValues{Title: Some("OG")},
	})

	snippets := make(map[TagKind]string)
	for _, tag := range a.Tags {
		snippets[tag.Kind] = tag.HTML()
	}

	assert.Equal(t, "<title>Fish &amp; &#34;Chips&#34;</title>", snippets[KindTitle])
	assert.Equal(t, `<link rel="canonical" href="https://example.com/">`, snippets[KindCanonical])
	assert.Equal(t, `<html lang="en">`, snippets[KindLang])
	assert.Equal(t, `<meta charset="utf-8">`, snippets[KindCharset])
	assert.Equal(t, `<meta property="og:title" content="OG">`, snippets[KindOGTitle])
	assert.Equal(t, `<meta name="description">`, snippets[KindDescription])
}

func TestTagSpecsComplete(t *testing.T) {
	t.Parallel()

	var critical, social int
	for k := TagKind(0); k < kindCount; k++ {
		spec := tagSpecs[k]
		assert.NotEmpty(t, spec.name, "kind %d has no entry", int(k))
		assert.NotEmpty(t, spec.tagType, "kind %d has no tag type", int(k))
		if k != KindTitle {
			assert.NotEmpty(t, spec.attribute, k.Name())
		}
		if k.IsCritical() {
			critical++
		}
		if k.IsSocial() {
			social++
		}
	}
	assert.Equal(t, Weights.CriticalTags, critical)
	assert.Equal(t, Weights.SocialTags, social)
}
