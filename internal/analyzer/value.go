package analyzer

// Value is a raw extracted tag value. The zero Value is absent.
//
// Empty strings are never present: an empty attribute is treated exactly like
// a missing one.
type Value struct {
	text    string
	present bool
}

// Some returns a present Value, or an absent one when s is empty.
func Some(s string) Value {
	if s == "" {
		return Value{}
	}
	return Value{text: s, present: true}
}

// None returns an absent Value.
func None() Value {
	return Value{}
}

// Get returns the text and whether the value is present.
func (v Value) Get() (string, bool) {
	return v.text, v.present
}

// Present reports whether the tag was found with a non-empty value.
func (v Value) Present() bool {
	return v.present
}

// String returns the text, or "" when absent.
func (v Value) String() string {
	return v.text
}

// Or returns v when present, otherwise fallback.
func (v Value) Or(fallback Value) Value {
	if v.present {
		return v
	}
	return fallback
}

// Ptr returns a fresh pointer to the text, or nil when absent.
func (v Value) Ptr() *string {
	if !v.present {
		return nil
	}
	s := v.text
	return &s
}
