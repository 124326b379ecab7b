package analyzer

import "github.com/spider-crawler/seotags/internal/urlutil"

// GooglePreview is the search result snippet view.
type GooglePreview struct {
	Title             *string `json:"title,omitempty"`
	Description       *string `json:"description,omitempty"`
	URL               string  `json:"url"`
	TitleLength       int     `json:"titleLength"`
	DescriptionLength int     `json:"descriptionLength"`
	TitleStatus       Status  `json:"titleStatus"`
	DescriptionStatus Status  `json:"descriptionStatus"`
	URLStatus         Status  `json:"urlStatus"`
}

// BuildGooglePreview assembles the search snippet. The URL is not analysed
// and is always reported good.
func BuildGooglePreview(p *PageValues, pageURL string, title, description Evaluation) GooglePreview {
	return GooglePreview{
		Title:             p.Title.Ptr(),
		Description:       p.Description.Ptr(),
		URL:               pageURL,
		TitleLength:       charLength(p.Title.String()),
		DescriptionLength: charLength(p.Description.String()),
		TitleStatus:       title.Status,
		DescriptionStatus: description.Status,
		URLStatus:         StatusGood,
	}
}

// DisplayURL is the URL as shown under a search result title.
func (g GooglePreview) DisplayURL() string {
	return urlutil.FormatForDisplay(g.URL, Thresholds.DisplayURLMaxLength)
}

// TitleAnalysis explains the title status in prose.
func (g GooglePreview) TitleAnalysis() string {
	if g.Title == nil {
		return "Your page is missing a title tag."
	}
	if g.TitleStatus == StatusWarning {
		if g.TitleLength < Thresholds.TitleMinLength {
			return "Your title tag is too short. Aim for 50-60 characters."
		}
		return "Your title tag is too long. Keep it under 60 characters to avoid truncation in search results."
	}
	return "Your title tag is optimized for search results. It's concise and descriptive."
}

// DescriptionAnalysis explains the description status in prose.
func (g GooglePreview) DescriptionAnalysis() string {
	if g.Description == nil {
		return "Your page is missing a meta description."
	}
	if g.DescriptionStatus == StatusWarning {
		if g.DescriptionLength < Thresholds.DescriptionMinLength {
			return "Your description is too short. Consider expanding it to provide more context about your page."
		}
		return "Your description is too long. Keep it under 160 characters to avoid truncation in search results."
	}
	return "Your meta description is well-optimized for search results."
}
