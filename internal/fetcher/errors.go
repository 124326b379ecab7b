package fetcher

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"strings"
)

// Category classifies why a fetch failed.
type Category string

const (
	CategoryTimeout    Category = "timeout"
	CategoryDNS        Category = "dns"
	CategoryConnection Category = "connection"
	CategoryTLS        Category = "tls"
	CategoryHTTPStatus Category = "http_status"
	CategoryRedirect   Category = "redirect"
	CategoryBody       Category = "body"
	CategoryCanceled   Category = "canceled"
	CategoryOther      Category = "other"
)

// FetchError reports a network failure or a non-2xx response.
type FetchError struct {
	URL        string
	StatusCode int    // 0 for network errors
	Status     string // reason phrase, e.g. "Not Found"
	Category   Category
	Retryable  bool
	Err        error
}

func (e *FetchError) Error() string {
	return e.Message()
}

// Message is the human-readable text for the caller.
func (e *FetchError) Message() string {
	if e.StatusCode != 0 && e.Category == CategoryHTTPStatus {
		return fmt.Sprintf("Failed to fetch website: %d %s", e.StatusCode, e.Status)
	}
	return fmt.Sprintf("Error fetching website: %v", e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// categorizeError categorizes network errors.
func categorizeError(err error) Category {
	switch {
	case err == nil:
		return CategoryOther
	case errors.Is(err, context.Canceled):
		return CategoryCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return CategoryTimeout
	}

	// Check for timeout
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return CategoryTimeout
	}

	// Check for DNS errors
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return CategoryDNS
	}

	// Check for TLS errors
	var certErr *tls.CertificateVerificationError
	var unknownAuth x509.UnknownAuthorityError
	var hostErr x509.HostnameError
	if errors.As(err, &certErr) || errors.As(err, &unknownAuth) || errors.As(err, &hostErr) ||
		strings.Contains(err.Error(), "tls:") {
		return CategoryTLS
	}

	// Check for connection refused
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return CategoryConnection
	}

	return CategoryOther
}

// isRetryableError checks if an error is worth retrying by the caller.
func isRetryableError(err error, category Category) bool {
	if err == nil {
		return false
	}

	switch category {
	case CategoryTimeout, CategoryConnection:
		return true
	case CategoryTLS, CategoryCanceled:
		return false
	}

	errStr := strings.ToLower(err.Error())
	retryablePatterns := []string{
		"connection reset",
		"connection refused",
		"no such host",
		"eof",
		"broken pipe",
	}

	for _, pattern := range retryablePatterns {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}

	return false
}

// isRetryableStatus reports whether a status code is transient.
func isRetryableStatus(code int) bool {
	return code == 429 || code >= 500
}
