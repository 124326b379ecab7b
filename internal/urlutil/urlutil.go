// Package urlutil provides URL validation and utility functions.
package urlutil

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrInvalidURL is wrapped by every ValidationError.
var ErrInvalidURL = errors.New("invalid url")

// invalidURLMessage is shown to the caller for any malformed input.
const invalidURLMessage = "Please enter a valid URL including https://"

// ValidationError reports a URL that cannot be analysed.
type ValidationError struct {
	Input  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s (%s)", invalidURLMessage, e.Reason)
}

// Message is the human-readable text for the caller.
func (e *ValidationError) Message() string {
	return invalidURLMessage
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidURL
}

// ValidateURL checks that raw is an absolute http(s) URL with a host.
func ValidateURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, &ValidationError{Input: raw, Reason: "url is required"}
	}

	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, &ValidationError{Input: raw, Reason: err.Error()}
	}

	if !u.IsAbs() {
		return nil, &ValidationError{Input: raw, Reason: "url must be absolute"}
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return nil, &ValidationError{Input: raw, Reason: fmt.Sprintf("unsupported scheme %q", u.Scheme)}
	}

	if u.Hostname() == "" {
		return nil, &ValidationError{Input: raw, Reason: "url has no host"}
	}

	return u, nil
}

// FormatForDisplay renders host and path, trimmed to maxLen with "...".
func FormatForDisplay(raw string, maxLen int) string {
	display := raw
	if u, err := url.Parse(raw); err == nil && u.Host != "" {
		display = u.Hostname() + u.EscapedPath()
	}
	return truncate(display, maxLen)
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if maxLen < 4 || len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}

// ExtractHost extracts the lowercased host from a URL.
func ExtractHost(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	return strings.ToLower(u.Host), nil
}

// ResolveURL resolves a possibly relative URL against a base URL.
func ResolveURL(base, ref string) (string, error) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", err
	}

	refURL, err := url.Parse(ref)
	if err != nil {
		return "", err
	}

	resolved := baseURL.ResolveReference(refURL)
	return resolved.String(), nil
}

// IsSameHost checks if two URLs have the same host.
func IsSameHost(url1, url2 string) bool {
	host1, err1 := ExtractHost(url1)
	host2, err2 := ExtractHost(url2)
	if err1 != nil || err2 != nil {
		return false
	}
	return host1 == host2
}
