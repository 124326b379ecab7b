package analyzer

// SeoAnalysis is the full result for one page.
type SeoAnalysis struct {
	URL            string         `json:"url"`
	Title          *string        `json:"title,omitempty"`
	Description    *string        `json:"description,omitempty"`
	Score          int            `json:"score"`
	Tags           []MetaTag      `json:"tags"`
	GoodCount      int            `json:"goodCount"`
	WarningCount   int            `json:"warningCount"`
	MissingCount   int            `json:"missingCount"`
	GooglePreview  GooglePreview  `json:"googlePreview"`
	SocialPreviews SocialPreviews `json:"socialPreviews"`
}

// Counts returns the status tallies of the analysis.
func (a *SeoAnalysis) Counts() Counts {
	return Counts{Good: a.GoodCount, Warning: a.WarningCount, Missing: a.MissingCount}
}

// Band returns the colour band of the overall score.
func (a *SeoAnalysis) Band() Band {
	return ScoreBand(a.Score)
}

// Tag returns the evaluated tag of the given kind.
func (a *SeoAnalysis) Tag(kind TagKind) (MetaTag, bool) {
	for _, tag := range a.Tags {
		if tag.Kind == kind {
			return tag, true
		}
	}
	return MetaTag{}, false
}

// Evaluate runs the check for kind against the page values.
func Evaluate(kind TagKind, p *PageValues, pageURL string) Evaluation {
	v := p.Get(kind)
	switch kind {
	case KindTitle:
		return EvaluateTitle(v)
	case KindDescription:
		return EvaluateDescription(v)
	case KindCanonical:
		return EvaluateCanonical(v, pageURL)
	case KindViewport:
		return EvaluateViewport(v)
	case KindRobots:
		return EvaluateRobots(v)
	case KindLang:
		return EvaluateLang(v)
	case KindCharset:
		return EvaluateCharset(v)
	case KindOGTitle, KindOGDescription, KindOGImage, KindOGURL, KindOGType,
		KindTwitterCard, KindTwitterTitle, KindTwitterDescription, KindTwitterImage:
		return EvaluatePresence(kind, v)
	}
	return Evaluation{Status: StatusError, Recommendation: "Unknown tag " + kind.String()}
}

// Analyze evaluates every tag of a page and assembles the result. It is pure:
// the same inputs always produce the same analysis.
func Analyze(pageURL string, p PageValues) *SeoAnalysis {
	tags := make([]MetaTag, 0, kindCount)
	evaluations := make([]Evaluation, kindCount)

	for _, kind := range Kinds() {
		e := Evaluate(kind, &p, pageURL)
		evaluations[kind] = e
		tags = append(tags, newMetaTag(kind, p.Get(kind), e))
	}

	counts := Count(tags)

	return &SeoAnalysis{
		URL:            pageURL,
		Title:          p.Title.Ptr(),
		Description:    p.Description.Ptr(),
		Score:          Score(tags),
		Tags:           tags,
		GoodCount:      counts.Good,
		WarningCount:   counts.Warning,
		MissingCount:   counts.Missing,
		GooglePreview:  BuildGooglePreview(&p, pageURL, evaluations[KindTitle], evaluations[KindDescription]),
		SocialPreviews: BuildSocialPreviews(&p, pageURL),
	}
}
