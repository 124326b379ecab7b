// Package analyzer evaluates the meta tags of a single page and scores them.
package analyzer

// Status classifies a single evaluated tag.
type Status string

const (
	StatusGood    Status = "good"
	StatusWarning Status = "warning"
	StatusMissing Status = "missing"
	StatusError   Status = "error"
)

// TagType is the kind of markup element a tag lives in.
type TagType string

const (
	TagTypeTitle TagType = "title"
	TagTypeMeta  TagType = "meta"
	TagTypeLink  TagType = "link"
	TagTypeHTML  TagType = "html"
)

// Evaluation is the outcome of a single tag check.
type Evaluation struct {
	Status         Status
	Recommendation string // empty when Status is good
}

// Thresholds for meta tag evaluation.
//
// TitleMinLength is deliberately far below the 50-60 range quoted in the
// short-title recommendation. Titles between 10 and 49 characters pass.
var Thresholds = struct {
	TitleMinLength       int
	TitleMaxLength       int
	DescriptionMinLength int
	DescriptionMaxLength int
	DisplayURLMaxLength  int
}{
	TitleMinLength:       10,
	TitleMaxLength:       60,
	DescriptionMinLength: 50,
	DescriptionMaxLength: 160,
	DisplayURLMaxLength:  75,
}

// Weights used by Score. Lang and charset carry no weight.
var Weights = struct {
	CriticalGood    float64
	CriticalWarning float64
	SocialPresent   float64
	CriticalTags    int
	SocialTags      int
}{
	CriticalGood:    3,
	CriticalWarning: 1.5,
	SocialPresent:   1,
	CriticalTags:    5,
	SocialTags:      9,
}

// MaxRawScore is the best achievable raw score (5*3 + 9*1 = 24).
func MaxRawScore() float64 {
	return float64(Weights.CriticalTags)*Weights.CriticalGood +
		float64(Weights.SocialTags)*Weights.SocialPresent
}

// Score bands used to colour an overall or category score.
var Bands = struct {
	Success int
	Warning int
}{
	Success: 80,
	Warning: 50,
}
