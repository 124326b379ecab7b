// Package testutil provides fixture pages and a configurable HTTP server for
// exercising the analysis pipeline end to end.
package testutil

import (
	"fmt"
	"html"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

// TestServer serves canned pages, redirects and error statuses.
type TestServer struct {
	Server    *httptest.Server
	mu        sync.RWMutex
	pages     map[string]*TestPage
	delays    map[string]time.Duration
	errors    map[string]int // path -> status code
	hits      map[string]int
	redirects map[string]string
}

// TestPage is a canned response.
type TestPage struct {
	Content     string
	ContentType string
	StatusCode  int
	Headers     map[string]string
}

// NewTestServer starts a server that is closed when t finishes.
func NewTestServer(t testing.TB) *TestServer {
	t.Helper()

	ts := &TestServer{
		pages:     make(map[string]*TestPage),
		delays:    make(map[string]time.Duration),
		errors:    make(map[string]int),
		hits:      make(map[string]int),
		redirects: make(map[string]string),
	}
	ts.Server = httptest.NewServer(http.HandlerFunc(ts.handler))
	t.Cleanup(ts.Server.Close)
	return ts
}

func (ts *TestServer) handler(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	ts.mu.Lock()
	ts.hits[path]++
	ts.mu.Unlock()

	ts.mu.RLock()
	delay := ts.delays[path]
	errorCode := ts.errors[path]
	redirect := ts.redirects[path]
	page := ts.pages[path]
	ts.mu.RUnlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
	}

	if redirect != "" {
		http.Redirect(w, r, redirect, http.StatusMovedPermanently)
		return
	}

	if errorCode > 0 {
		w.WriteHeader(errorCode)
		return
	}

	if page == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	for k, v := range page.Headers {
		w.Header().Set(k, v)
	}
	w.Header().Set("Content-Type", page.ContentType)
	if page.StatusCode > 0 {
		w.WriteHeader(page.StatusCode)
	}
	io.WriteString(w, page.Content)
}

// AddPage serves content as UTF-8 HTML at path.
func (ts *TestServer) AddPage(path, content string) {
	ts.AddPageWithType(path, content, "text/html; charset=utf-8")
}

// AddPageWithType serves content with a specific content type.
func (ts *TestServer) AddPageWithType(path, content, contentType string) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	ts.pages[path] = &TestPage{
		Content:     content,
		ContentType: contentType,
		StatusCode:  http.StatusOK,
	}
}

// SetDelay delays responses for path.
func (ts *TestServer) SetDelay(path string, delay time.Duration) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.delays[path] = delay
}

// SetError makes path respond with an empty body and statusCode.
func (ts *TestServer) SetError(path string, statusCode int) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.errors[path] = statusCode
}

// SetRedirect makes from answer 301 to to.
func (ts *TestServer) SetRedirect(from, to string) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.redirects[from] = to
}

// GetHits returns how many requests path has received.
func (ts *TestServer) GetHits(path string) int {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return ts.hits[path]
}

// URL returns the server base URL joined with path.
func (ts *TestServer) URL(path string) string {
	return ts.Server.URL + path
}

// HTMLBuilder builds fixture pages carrying the meta tags under test.
type HTMLBuilder struct {
	lang      string
	charset   string
	title     string
	metaDesc  string
	canonical string
	viewport  string
	robots    string
	meta      []metaAttr
	body      string
}

type metaAttr struct {
	key     string // "name" or "property"
	name    string
	content string
}

// NewHTMLBuilder returns an empty builder.
func NewHTMLBuilder() *HTMLBuilder {
	return &HTMLBuilder{}
}

// Lang sets <html lang>.
func (b *HTMLBuilder) Lang(lang string) *HTMLBuilder {
	b.lang = lang
	return b
}

// Charset sets <meta charset>.
func (b *HTMLBuilder) Charset(charset string) *HTMLBuilder {
	b.charset = charset
	return b
}

// Title sets the page title.
func (b *HTMLBuilder) Title(title string) *HTMLBuilder {
	b.title = title
	return b
}

// MetaDescription sets the meta description.
func (b *HTMLBuilder) MetaDescription(desc string) *HTMLBuilder {
	b.metaDesc = desc
	return b
}

// Canonical sets the canonical href.
func (b *HTMLBuilder) Canonical(href string) *HTMLBuilder {
	b.canonical = href
	return b
}

// Viewport sets the viewport meta content.
func (b *HTMLBuilder) Viewport(content string) *HTMLBuilder {
	b.viewport = content
	return b
}

// Robots sets the robots meta content.
func (b *HTMLBuilder) Robots(content string) *HTMLBuilder {
	b.robots = content
	return b
}

// OpenGraph adds <meta property="og:<field>">.
func (b *HTMLBuilder) OpenGraph(field, content string) *HTMLBuilder {
	b.meta = append(b.meta, metaAttr{key: "property", name: "og:" + field, content: content})
	return b
}

// Twitter adds <meta name="twitter:<field>">.
func (b *HTMLBuilder) Twitter(field, content string) *HTMLBuilder {
	b.meta = append(b.meta, metaAttr{key: "name", name: "twitter:" + field, content: content})
	return b
}

// Body sets raw body markup.
func (b *HTMLBuilder) Body(content string) *HTMLBuilder {
	b.body = content
	return b
}

// Build generates the HTML.
func (b *HTMLBuilder) Build() string {
	var sb strings.Builder

	sb.WriteString("<!DOCTYPE html>\n")
	if b.lang != "" {
		fmt.Fprintf(&sb, "<html lang=%q>\n", b.lang)
	} else {
		sb.WriteString("<html>\n")
	}
	sb.WriteString("<head>\n")

	if b.charset != "" {
		fmt.Fprintf(&sb, "  <meta charset=\"%s\">\n", html.EscapeString(b.charset))
	}
	if b.title != "" {
		fmt.Fprintf(&sb, "  <title>%s</title>\n", html.EscapeString(b.title))
	}
	if b.metaDesc != "" {
		writeMeta(&sb, "name", "description", b.metaDesc)
	}
	if b.canonical != "" {
		fmt.Fprintf(&sb, "  <link rel=\"canonical\" href=\"%s\">\n", html.EscapeString(b.canonical))
	}
	if b.viewport != "" {
		writeMeta(&sb, "name", "viewport", b.viewport)
	}
	if b.robots != "" {
		writeMeta(&sb, "name", "robots", b.robots)
	}
	for _, m := range b.meta {
		writeMeta(&sb, m.key, m.name, m.content)
	}

	sb.WriteString("</head>\n<body>\n")
	if b.body != "" {
		sb.WriteString(b.body)
		sb.WriteString("\n")
	}
	sb.WriteString("</body>\n</html>")

	return sb.String()
}

func writeMeta(sb *strings.Builder, key, name, content string) {
	fmt.Fprintf(sb, "  <meta %s=\"%s\" content=\"%s\">\n", key, name, html.EscapeString(content))
}

// CompletePage returns a builder with every tracked tag filled in with
// values that evaluate as good for pageURL.
func CompletePage(pageURL string) *HTMLBuilder {
	return NewHTMLBuilder().
		Lang("en").
		Charset("utf-8").
		Title("Complete Fixture Page For Meta Tag Tests").
		MetaDescription("A fixture page carrying every tracked meta tag with values that sit inside the recommended ranges.").
		Canonical(pageURL).
		Viewport("width=device-width, initial-scale=1").
		Robots("index, follow").
		OpenGraph("title", "Complete Fixture").
		OpenGraph("description", "Every tag is present.").
		OpenGraph("image", "https://example.com/og.png").
		OpenGraph("url", pageURL).
		OpenGraph("type", "website").
		Twitter("card", "summary_large_image").
		Twitter("title", "Complete Fixture").
		Twitter("description", "Every tag is present.").
		Twitter("image", "https://example.com/tw.png")
}
