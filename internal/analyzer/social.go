package analyzer

import (
	"fmt"
	"strings"
)

var (
	openGraphKinds = []TagKind{KindOGTitle, KindOGDescription, KindOGImage, KindOGURL, KindOGType}
	twitterKinds   = []TagKind{KindTwitterCard, KindTwitterTitle, KindTwitterDescription, KindTwitterImage}
)

// EvaluatePresence is the presence-only check used for Open Graph and Twitter
// Card fields. There is no warning tier.
func EvaluatePresence(kind TagKind, v Value) Evaluation {
	if v.Present() {
		return Evaluation{Status: StatusGood}
	}

	audience := "social media"
	if strings.HasPrefix(kind.Name(), "twitter:") {
		audience = "Twitter"
	}
	return Evaluation{
		Status:         StatusMissing,
		Recommendation: fmt.Sprintf("Add %s tag for better %s sharing", kind.Name(), audience),
	}
}

// OpenGraphIssues lists a message for every absent og:* field, in field order.
func OpenGraphIssues(p *PageValues) []string {
	return missingIssues(p, openGraphKinds)
}

// TwitterIssues lists a message for every absent twitter:* field, in field order.
func TwitterIssues(p *PageValues) []string {
	return missingIssues(p, twitterKinds)
}

func missingIssues(p *PageValues, kinds []TagKind) []string {
	issues := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		if !p.Get(kind).Present() {
			issues = append(issues, fmt.Sprintf("Missing %s meta tag", kind.Name()))
		}
	}
	return issues
}

// OpenGraphPreview is the Facebook-style share card.
type OpenGraphPreview struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Image       *string  `json:"image,omitempty"`
	URL         *string  `json:"url,omitempty"`
	Type        *string  `json:"type,omitempty"`
	Issues      []string `json:"issues"`
}

// TwitterPreview is the Twitter/X share card.
type TwitterPreview struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Image       *string  `json:"image,omitempty"`
	Card        *string  `json:"card,omitempty"`
	Issues      []string `json:"issues"`
}

// SocialPreviews groups the share cards.
type SocialPreviews struct {
	OpenGraph OpenGraphPreview `json:"openGraph"`
	Twitter   TwitterPreview   `json:"twitter"`
}

// BuildSocialPreviews resolves the display values of each share card. The
// fallbacks only affect display, never the per-tag statuses.
func BuildSocialPreviews(p *PageValues, pageURL string) SocialPreviews {
	og := p.OpenGraph
	tw := p.Twitter

	return SocialPreviews{
		OpenGraph: OpenGraphPreview{
			Title:       og.Title.Or(p.Title).Ptr(),
			Description: og.Description.Or(p.Description).Ptr(),
			Image:       og.Image.Ptr(),
			URL:         og.URL.Or(Some(pageURL)).Ptr(),
			Type:        og.Type.Ptr(),
			Issues:      OpenGraphIssues(p),
		},
		Twitter: TwitterPreview{
			Title:       tw.Title.Or(og.Title).Or(p.Title).Ptr(),
			Description: tw.Description.Or(og.Description).Or(p.Description).Ptr(),
			Image:       tw.Image.Or(og.Image).Ptr(),
			Card:        tw.Card.Ptr(),
			Issues:      TwitterIssues(p),
		},
	}
}
