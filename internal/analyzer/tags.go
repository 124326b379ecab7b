package analyzer

import (
	"fmt"
	"html"
)

// TagKind identifies one of the fixed checks, in extraction order.
type TagKind int

const (
	KindTitle TagKind = iota
	KindDescription
	KindCanonical
	KindViewport
	KindRobots
	KindLang
	KindCharset
	KindOGTitle
	KindOGDescription
	KindOGImage
	KindOGURL
	KindOGType
	KindTwitterCard
	KindTwitterTitle
	KindTwitterDescription
	KindTwitterImage

	kindCount
)

// weightClass decides how a tag contributes to Score.
type weightClass int

const (
	unweighted weightClass = iota
	critical
	social
)

type tagSpec struct {
	tagType   TagType
	attribute string
	name      string // og:title, twitter:card, ... for social tags
	weight    weightClass
}

// tagSpecs is indexed by TagKind. A kind left out of the literal gets a zero
// tagSpec, which TestTagSpecsComplete catches.
var tagSpecs = [kindCount]tagSpec{
	KindTitle:              {TagTypeTitle, "", "title", critical},
	KindDescription:        {TagTypeMeta, `name="description"`, "description", critical},
	KindCanonical:          {TagTypeLink, `rel="canonical"`, "canonical", critical},
	KindViewport:           {TagTypeMeta, `name="viewport"`, "viewport", critical},
	KindRobots:             {TagTypeMeta, `name="robots"`, "robots", critical},
	KindLang:               {TagTypeHTML, "lang", "lang", unweighted},
	KindCharset:            {TagTypeMeta, "charset", "charset", unweighted},
	KindOGTitle:            {TagTypeMeta, `property="og:title"`, "og:title", social},
	KindOGDescription:      {TagTypeMeta, `property="og:description"`, "og:description", social},
	KindOGImage:            {TagTypeMeta, `property="og:image"`, "og:image", social},
	KindOGURL:              {TagTypeMeta, `property="og:url"`, "og:url", social},
	KindOGType:             {TagTypeMeta, `property="og:type"`, "og:type", social},
	KindTwitterCard:        {TagTypeMeta, `name="twitter:card"`, "twitter:card", social},
	KindTwitterTitle:       {TagTypeMeta, `name="twitter:title"`, "twitter:title", social},
	KindTwitterDescription: {TagTypeMeta, `name="twitter:description"`, "twitter:description", social},
	KindTwitterImage:       {TagTypeMeta, `name="twitter:image"`, "twitter:image", social},
}

// Kinds returns every TagKind in extraction order.
func Kinds() []TagKind {
	kinds := make([]TagKind, 0, kindCount)
	for k := TagKind(0); k < kindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// Name returns the tag name used in messages, e.g. "og:title".
func (k TagKind) Name() string {
	if k < 0 || k >= kindCount {
		return fmt.Sprintf("TagKind(%d)", int(k))
	}
	return tagSpecs[k].name
}

func (k TagKind) String() string {
	return k.Name()
}

// TagType returns the markup element kind for k.
func (k TagKind) TagType() TagType {
	return tagSpecs[k].tagType
}

// Attribute returns the distinguishing selector string for k.
func (k TagKind) Attribute() string {
	return tagSpecs[k].attribute
}

// IsCritical reports whether k is one of the five 3-point tags.
func (k TagKind) IsCritical() bool {
	return tagSpecs[k].weight == critical
}

// IsSocial reports whether k is an Open Graph or Twitter Card field.
func (k TagKind) IsSocial() bool {
	return tagSpecs[k].weight == social
}

// OpenGraphValues are the raw og:* values.
type OpenGraphValues struct {
	Title       Value
	Description Value
	Image       Value
	URL         Value
	Type        Value
}

// TwitterValues are the raw twitter:* values.
type TwitterValues struct {
	Card        Value
	Title       Value
	Description Value
	Image       Value
}

// PageValues holds every raw value extracted from a page.
type PageValues struct {
	Title       Value
	Description Value
	Canonical   Value
	Viewport    Value
	Robots      Value
	Lang        Value
	Charset     Value
	OpenGraph   OpenGraphValues
	Twitter     TwitterValues
}

// Get returns the raw value for kind.
func (p *PageValues) Get(kind TagKind) Value {
	switch kind {
	case KindTitle:
		return p.Title
	case KindDescription:
		return p.Description
	case KindCanonical:
		return p.Canonical
	case KindViewport:
		return p.Viewport
	case KindRobots:
		return p.Robots
	case KindLang:
		return p.Lang
	case KindCharset:
		return p.Charset
	case KindOGTitle:
		return p.OpenGraph.Title
	case KindOGDescription:
		return p.OpenGraph.Description
	case KindOGImage:
		return p.OpenGraph.Image
	case KindOGURL:
		return p.OpenGraph.URL
	case KindOGType:
		return p.OpenGraph.Type
	case KindTwitterCard:
		return p.Twitter.Card
	case KindTwitterTitle:
		return p.Twitter.Title
	case KindTwitterDescription:
		return p.Twitter.Description
	case KindTwitterImage:
		return p.Twitter.Image
	}
	return None()
}

// MetaTag is one evaluated tag.
type MetaTag struct {
	Kind           TagKind `json:"-"`
	TagType        TagType `json:"tagType"`
	Attribute      string  `json:"attribute"`
	Value          *string `json:"value,omitempty"`
	Status         Status  `json:"status"`
	Recommendation string  `json:"recommendation,omitempty"`
}

// newMetaTag builds the record for kind from its raw value and evaluation.
func newMetaTag(kind TagKind, v Value, e Evaluation) MetaTag {
	return MetaTag{
		Kind:           kind,
		TagType:        kind.TagType(),
		Attribute:      kind.Attribute(),
		Value:          v.Ptr(),
		Status:         e.Status,
		Recommendation: e.Recommendation,
	}
}

// Text returns the tag value, or "" when absent.
func (t MetaTag) Text() string {
	if t.Value == nil {
		return ""
	}
	return *t.Value
}

// HTML renders a copyable markup snippet for the tag.
func (t MetaTag) HTML() string {
	value := html.EscapeString(t.Text())
	switch t.TagType {
	case TagTypeTitle:
		return fmt.Sprintf("<title>%s</title>", value)
	case TagTypeMeta:
		if t.Attribute == "charset" {
			return fmt.Sprintf(`<meta charset="%s">`, value)
		}
		if t.Value == nil {
			return fmt.Sprintf("<meta %s>", t.Attribute)
		}
		return fmt.Sprintf(`<meta %s content="%s">`, t.Attribute, value)
	case TagTypeLink:
		return fmt.Sprintf(`<link %s href="%s">`, t.Attribute, value)
	case TagTypeHTML:
		return fmt.Sprintf(`<html %s="%s">`, t.Attribute, value)
	default:
		return fmt.Sprintf("<%s %s>%s</%s>", t.TagType, t.Attribute, value, t.TagType)
	}
}
