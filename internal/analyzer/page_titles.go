package analyzer

// EvaluateTitle checks the <title> text.
func EvaluateTitle(title Value) Evaluation {
	text, ok := title.Get()
	if !ok {
		return Evaluation{
			Status:         StatusMissing,
			Recommendation: "Add a title tag to improve SEO.",
		}
	}

	length := charLength(text)
	if length < Thresholds.TitleMinLength {
		return Evaluation{
			Status:         StatusWarning,
			Recommendation: "Your title is too short. Aim for 50-60 characters.",
		}
	}
	if length > Thresholds.TitleMaxLength {
		return Evaluation{
			Status:         StatusWarning,
			Recommendation: "Your title is too long. Keep it under 60 characters to avoid truncation in search results.",
		}
	}

	return Evaluation{Status: StatusGood}
}

// charLength counts UTF-16 code units, the length browsers report:
// characters outside the Basic Multilingual Plane, such as emoji, count as two.
func charLength(s string) int {
	n := 0
	for _, r := range s {
		if r > maxBMP {
			n += 2
			continue
		}
		n++
	}
	return n
}

const maxBMP = 0xFFFF
