package analyzer

// EvaluateDescription checks the meta description content.
func EvaluateDescription(description Value) Evaluation {
	text, ok := description.Get()
	if !ok {
		return Evaluation{
			Status:         StatusMissing,
			Recommendation: "Add a meta description to improve CTR in search results.",
		}
	}

	length := charLength(text)
	if length < Thresholds.DescriptionMinLength {
		return Evaluation{
			Status:         StatusWarning,
			Recommendation: "Your description is too short. Aim for 120-160 characters.",
		}
	}
	if length > Thresholds.DescriptionMaxLength {
		return Evaluation{
			Status:         StatusWarning,
			Recommendation: "Your description is too long. Keep it under 160 characters to avoid truncation in search results.",
		}
	}

	return Evaluation{Status: StatusGood}
}
