package analyzer

import "strings"

// EvaluateCanonical checks the canonical link against the analysed page URL.
//
// A single trailing slash is ignored on both sides. A canonical that is a
// substring of the page URL also passes; this loose match is intentional and
// can accept canonicals that merely share a prefix with the page.
func EvaluateCanonical(canonical Value, pageURL string) Evaluation {
	href, ok := canonical.Get()
	if !ok {
		return Evaluation{
			Status:         StatusMissing,
			Recommendation: "Add a canonical URL to prevent duplicate content issues.",
		}
	}

	normalizedCanonical := strings.TrimSuffix(href, "/")
	normalizedPageURL := strings.TrimSuffix(pageURL, "/")

	if normalizedCanonical != normalizedPageURL && !strings.Contains(pageURL, href) {
		return Evaluation{
			Status:         StatusWarning,
			Recommendation: "Canonical URL does not match the current page URL. This may be intentional, but verify it is correct.",
		}
	}

	return Evaluation{Status: StatusGood}
}
