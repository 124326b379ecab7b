package analyzer

import "strings"

// EvaluateLang checks the <html lang> attribute. Any non-empty value passes.
func EvaluateLang(lang Value) Evaluation {
	if !lang.Present() {
		return Evaluation{
			Status:         StatusMissing,
			Recommendation: "Add a lang attribute to the html tag to specify the language of your page.",
		}
	}
	return Evaluation{Status: StatusGood}
}

// EvaluateCharset checks the <meta charset> declaration.
func EvaluateCharset(charset Value) Evaluation {
	name, ok := charset.Get()
	if !ok {
		return Evaluation{
			Status:         StatusMissing,
			Recommendation: "Add a charset meta tag to specify the character encoding of your page.",
		}
	}

	if strings.ToLower(name) != "utf-8" {
		return Evaluation{
			Status:         StatusWarning,
			Recommendation: "Consider using UTF-8 encoding for better international character support.",
		}
	}

	return Evaluation{Status: StatusGood}
}
