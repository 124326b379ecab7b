package analyzer

import "math"

// Counts tallies tags by status.
type Counts struct {
	Good    int
	Warning int
	Missing int
}

// Total is the number of tags counted.
func (c Counts) Total() int {
	return c.Good + c.Warning + c.Missing
}

func (c *Counts) add(s Status) {
	switch s {
	case StatusGood:
		c.Good++
	case StatusWarning:
		c.Warning++
	default:
		// error is displayed as missing
		c.Missing++
	}
}

// Count tallies every tag, lang and charset included.
func Count(tags []MetaTag) Counts {
	var c Counts
	for _, tag := range tags {
		c.add(tag.Status)
	}
	return c
}

// RawScore sums the weighted points of the critical and social tags.
func RawScore(tags []MetaTag) float64 {
	var raw float64
	for _, tag := range tags {
		switch {
		case tag.Kind.IsCritical():
			switch tag.Status {
			case StatusGood:
				raw += Weights.CriticalGood
			case StatusWarning:
				raw += Weights.CriticalWarning
			}
		case tag.Kind.IsSocial():
			if tag.Value != nil {
				raw += Weights.SocialPresent
			}
		}
	}
	return raw
}

// Score converts the raw score to a 0-100 percentage, rounding halves up.
func Score(tags []MetaTag) int {
	score := int(math.Round(RawScore(tags) / MaxRawScore() * 100))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// Band names the colour band of a score.
type Band string

const (
	BandSuccess Band = "success"
	BandWarning Band = "warning"
	BandDanger  Band = "danger"
)

// ScoreBand returns the band for score.
func ScoreBand(score int) Band {
	switch {
	case score >= Bands.Success:
		return BandSuccess
	case score >= Bands.Warning:
		return BandWarning
	default:
		return BandDanger
	}
}
