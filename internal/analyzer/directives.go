package analyzer

import "strings"

// EvaluateRobots checks the robots meta tag for blocking directives.
func EvaluateRobots(robots Value) Evaluation {
	content, ok := robots.Get()
	if !ok {
		return Evaluation{
			Status:         StatusMissing,
			Recommendation: "Add a robots meta tag to control how search engines index your page.",
		}
	}

	if strings.Contains(content, "noindex") || strings.Contains(content, "nofollow") {
		return Evaluation{
			Status:         StatusWarning,
			Recommendation: "Your robots tag is blocking search engines from indexing or following links on this page. This may be intentional, but verify it is correct.",
		}
	}

	return Evaluation{Status: StatusGood}
}
