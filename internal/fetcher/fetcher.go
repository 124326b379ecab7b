package fetcher

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/net/html/charset"

	"github.com/spider-crawler/seotags/internal/config"
	"github.com/spider-crawler/seotags/internal/logger"
	"github.com/spider-crawler/seotags/internal/urlutil"
)

// Fetcher handles HTTP requests with redirect tracking.
type Fetcher struct {
	client      *http.Client
	config      *config.Config
	maxBodySize int64
	transport   *http.Transport
	limiter     *HostRateLimiter
}

// NewFetcher creates a new HTTP fetcher.
func NewFetcher(cfg *config.Config) *Fetcher {
	// Create custom transport for connection pooling and timeouts
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: cfg.InsecureSkipVerify,
		},
	}

	f := &Fetcher{
		config:      cfg,
		maxBodySize: cfg.MaxResponseSize,
		transport:   transport,
		limiter:     NewHostRateLimiter(cfg.RequestsPerSecond, cfg.Burst, cfg.HostDelay),
	}

	// Redirects are followed manually so the chain can be recorded
	f.client = &http.Client{
		Transport: transport,
		Timeout:   cfg.Timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	return f
}

// Fetch fetches a URL and returns the response. Any failure, including a
// non-2xx final status, is returned as a *FetchError.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Response, error) {
	startTime := time.Now()
	response := &Response{
		RequestURL:    rawURL,
		RedirectChain: make([]RedirectHop, 0),
	}

	currentURL := rawURL
	var ttfbRecorded bool

	for i := 0; i <= f.config.MaxRedirects; i++ {
		host, _ := urlutil.ExtractHost(currentURL)
		if err := f.limiter.Wait(ctx, host); err != nil {
			return nil, f.networkError(currentURL, err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, currentURL, nil)
		if err != nil {
			return nil, &FetchError{URL: currentURL, Category: CategoryOther, Err: fmt.Errorf("failed to create request: %w", err)}
		}

		f.setRequestHeaders(req)

		reqStart := time.Now()
		resp, err := f.client.Do(req)
		if err != nil {
			return nil, f.networkError(currentURL, err)
		}

		// Record TTFB on first response
		if !ttfbRecorded {
			response.TTFB = time.Since(reqStart)
			ttfbRecorded = true
		}

		if resp.StatusCode >= 300 && resp.StatusCode < 400 {
			location := resp.Header.Get("Location")
			resp.Body.Close()

			if location != "" {
				response.RedirectChain = append(response.RedirectChain, RedirectHop{
					URL:        currentURL,
					StatusCode: resp.StatusCode,
					Location:   location,
				})

				redirectURL, err := urlutil.ResolveURL(currentURL, location)
				if err != nil {
					return nil, &FetchError{
						URL:        currentURL,
						StatusCode: resp.StatusCode,
						Category:   CategoryRedirect,
						Err:        fmt.Errorf("invalid redirect location: %w", err),
					}
				}

				if f.shouldFollowRedirect(rawURL, redirectURL) {
					logger.Log.Debug("following redirect",
						zap.String("from", currentURL),
						zap.String("to", redirectURL),
						zap.Int("status", resp.StatusCode))
					currentURL = redirectURL
					continue
				}
			}

			return nil, statusError(currentURL, resp)
		}

		response.FinalURL = currentURL
		response.StatusCode = resp.StatusCode
		response.Status = resp.Status
		response.Headers = resp.Header
		response.ContentType = extractContentType(resp.Header.Get("Content-Type"))

		if !response.IsSuccess() {
			resp.Body.Close()
			return nil, statusError(currentURL, resp)
		}

		err = f.readBody(resp, response)
		resp.Body.Close()
		if err != nil {
			return nil, &FetchError{
				URL:        currentURL,
				StatusCode: resp.StatusCode,
				Category:   CategoryBody,
				Retryable:  true,
				Err:        fmt.Errorf("failed to read body: %w", err),
			}
		}

		response.ResponseTime = time.Since(startTime)
		return response, nil
	}

	return nil, &FetchError{
		URL:      currentURL,
		Category: CategoryRedirect,
		Err:      fmt.Errorf("max redirects (%d) exceeded", f.config.MaxRedirects),
	}
}

// setRequestHeaders sets common request headers.
func (f *Fetcher) setRequestHeaders(req *http.Request) {
	req.Header.Set("User-Agent", f.config.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("Accept-Encoding", "gzip")

	for name, value := range f.config.CustomHeaders {
		req.Header.Set(name, value)
	}
}

// readBody reads the response body with size limit and decodes it to UTF-8.
func (f *Fetcher) readBody(resp *http.Response, response *Response) error {
	var reader io.Reader = resp.Body

	// Accept-Encoding is set by hand, so the transport leaves gzip to us
	if strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		gzReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return fmt.Errorf("gzip decode error: %w", err)
		}
		defer gzReader.Close()
		reader = gzReader
	}

	if f.maxBodySize > 0 {
		// one extra byte tells a full body from a truncated one
		reader = io.LimitReader(reader, f.maxBodySize+1)
	}

	raw, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	if f.maxBodySize > 0 && int64(len(raw)) > f.maxBodySize {
		raw = raw[:f.maxBodySize]
		response.Truncated = true
	}
	response.BodySize = int64(len(raw))

	// Sniffing only sees the first 1024 bytes and defaults to windows-1252,
	// so an undeclared body that is valid UTF-8 is kept as is.
	contentType := resp.Header.Get("Content-Type")
	_, name, certain := charset.DetermineEncoding(raw, contentType)
	if name == "utf-8" || (!certain && utf8.Valid(raw)) {
		response.Charset = "utf-8"
		response.Body = raw
		return nil
	}
	response.Charset = name

	decoded, err := charset.NewReader(bytes.NewReader(raw), contentType)
	if err != nil {
		return fmt.Errorf("charset decode error: %w", err)
	}
	body, err := io.ReadAll(decoded)
	if err != nil {
		return fmt.Errorf("charset decode error: %w", err)
	}
	response.Body = body
	return nil
}

// shouldFollowRedirect checks if a redirect should be followed based on policy.
func (f *Fetcher) shouldFollowRedirect(originalURL, redirectURL string) bool {
	switch f.config.RedirectPolicy {
	case config.RedirectNoFollow:
		return false
	case config.RedirectFollowSame:
		return urlutil.IsSameHost(originalURL, redirectURL)
	default: // RedirectFollow
		return true
	}
}

func (f *Fetcher) networkError(rawURL string, err error) *FetchError {
	// unwrap the *url.Error added by http.Client
	cause := err
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		cause = urlErr.Err
	}

	category := categorizeError(err)
	return &FetchError{
		URL:       rawURL,
		Category:  category,
		Retryable: isRetryableError(err, category),
		Err:       cause,
	}
}

// Close closes the fetcher and releases resources.
func (f *Fetcher) Close() {
	f.transport.CloseIdleConnections()
}

// Helper functions

func statusError(rawURL string, resp *http.Response) *FetchError {
	reason := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if reason == "" {
		reason = http.StatusText(resp.StatusCode)
	}
	return &FetchError{
		URL:        rawURL,
		StatusCode: resp.StatusCode,
		Status:     reason,
		Category:   CategoryHTTPStatus,
		Retryable:  isRetryableStatus(resp.StatusCode),
		Err:        fmt.Errorf("unexpected status %s", resp.Status),
	}
}

func extractContentType(contentType string) string {
	// Remove charset and other parameters
	if idx := strings.Index(contentType, ";"); idx != -1 {
		return strings.ToLower(strings.TrimSpace(contentType[:idx]))
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}
