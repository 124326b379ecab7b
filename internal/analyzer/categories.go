package analyzer

import (
	"math"
	"slices"
)

// Category groups tags for the summary view.
type Category struct {
	Key         string    `json:"key"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Tags        []MetaTag `json:"tags"`
	Good        int       `json:"good"`
	Warning     int       `json:"warning"`
	Missing     int       `json:"missing"`
	Total       int       `json:"total"`
	Score       int       `json:"score"`
}

type categoryDef struct {
	key         string
	name        string
	description string
	kinds       []TagKind
}

// og:url, og:type and twitter:card are not listed and fall into "other".
var categoryDefs = []categoryDef{
	{"essentials", "Essential Tags", "Core tags that every page should have",
		[]TagKind{KindTitle, KindDescription, KindCanonical, KindRobots, KindViewport}},
	{"social", "Social Media", "Tags for social media sharing",
		[]TagKind{KindOGTitle, KindOGDescription, KindOGImage, KindTwitterTitle, KindTwitterDescription, KindTwitterImage}},
	{"technical", "Technical SEO", "Tags affecting indexing and rendering",
		[]TagKind{KindCharset, KindLang}},
	{"other", "Other Tags", "Additional meta tags", nil},
}

// Categorize splits tags into the summary categories, in a fixed order.
// Category scores weigh good as 1 and warning as 0.5.
func Categorize(tags []MetaTag) []Category {
	categories := make([]Category, len(categoryDefs))
	for i, def := range categoryDefs {
		categories[i] = Category{
			Key:         def.key,
			Name:        def.name,
			Description: def.description,
			Tags:        make([]MetaTag, 0),
		}
	}

	other := len(categoryDefs) - 1
	for _, tag := range tags {
		idx := other
		for i, def := range categoryDefs {
			if slices.Contains(def.kinds, tag.Kind) {
				idx = i
				break
			}
		}

		c := &categories[idx]
		c.Tags = append(c.Tags, tag)
		c.Total++
		switch tag.Status {
		case StatusGood:
			c.Good++
		case StatusWarning:
			c.Warning++
		default:
			c.Missing++
		}
	}

	for i := range categories {
		c := &categories[i]
		if c.Total == 0 {
			continue
		}
		c.Score = int(math.Round((float64(c.Good) + float64(c.Warning)*0.5) / float64(c.Total) * 100))
	}

	return categories
}
