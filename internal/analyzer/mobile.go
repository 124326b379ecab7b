package analyzer

import "strings"

// Both directives must appear literally in the viewport content.
const (
	viewportDeviceWidth  = "width=device-width"
	viewportInitialScale = "initial-scale=1"
)

// EvaluateViewport checks the viewport meta tag.
func EvaluateViewport(viewport Value) Evaluation {
	content, ok := viewport.Get()
	if !ok {
		return Evaluation{
			Status:         StatusMissing,
			Recommendation: "Add a viewport meta tag to optimize for mobile devices.",
		}
	}

	if !strings.Contains(content, viewportDeviceWidth) || !strings.Contains(content, viewportInitialScale) {
		return Evaluation{
			Status:         StatusWarning,
			Recommendation: "Your viewport tag should include width=device-width and initial-scale=1 for proper mobile optimization.",
		}
	}

	return Evaluation{Status: StatusGood}
}
