// Package fetcher retrieves the page under analysis with redirect tracking.
package fetcher

import (
	"net/http"
	"strings"
	"time"
)

// Response represents the result of fetching a URL.
type Response struct {
	// Original requested URL
	RequestURL string

	// Final URL after redirects
	FinalURL string

	// HTTP status code
	StatusCode int

	// Status text (e.g., "200 OK")
	Status string

	// Response headers
	Headers http.Header

	// Content-Type without parameters
	ContentType string

	// Name of the encoding the body was decoded from
	Charset string

	// Bytes read from the wire, after decompression
	BodySize int64

	// Whether the body was cut at the configured size limit
	Truncated bool

	// Response body, decoded to UTF-8
	Body []byte

	// Redirect chain (list of URLs in redirect sequence)
	RedirectChain []RedirectHop

	// Time to first byte
	TTFB time.Duration

	// Total response time
	ResponseTime time.Duration
}

// RedirectHop represents a single redirect in the chain.
type RedirectHop struct {
	URL        string
	StatusCode int
	Location   string
}

// IsSuccess returns true if the response was successful (2xx).
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// HasRedirects returns true if there were any redirects.
func (r *Response) HasRedirects() bool {
	return len(r.RedirectChain) > 0
}

// RedirectCount returns the number of redirects.
func (r *Response) RedirectCount() int {
	return len(r.RedirectChain)
}

// IsHTML returns true if the content type is HTML or unspecified.
func (r *Response) IsHTML() bool {
	switch r.ContentType {
	case "", "text/html", "application/xhtml+xml":
		return true
	}
	return strings.HasPrefix(r.ContentType, "text/html")
}
