package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spider-crawler/seotags/internal/analyzer"
	"github.com/spider-crawler/seotags/internal/config"
	"github.com/spider-crawler/seotags/internal/fetcher"
	"github.com/spider-crawler/seotags/internal/metrics"
	"github.com/spider-crawler/seotags/internal/testutil"
	"github.com/spider-crawler/seotags/internal/urlutil"
)

const page = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>Handmade leather shoes</title>
  <meta name="description" content="Handmade leather shoes from a small workshop, resoled for life and shipped worldwide.">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <meta name="robots" content="index, follow">
  <link rel="canonical" href="https://shop.example.com/">
</head>
<body></body>
</html>`

// fakeFetcher returns a canned response or error and records the URL.
type fakeFetcher struct {
	body []byte
	err  error
	got  []string
}

func (f *fakeFetcher) Fetch(ctx context.Context, rawURL string) (*fetcher.Response, error) {
	f.got = append(f.got, rawURL)
	if f.err != nil {
		return nil, f.err
	}
	return &fetcher.Response{
		RequestURL:  rawURL,
		FinalURL:    rawURL,
		StatusCode:  http.StatusOK,
		ContentType: "text/html",
		Body:        f.body,
	}, nil
}

func TestAnalyze(t *testing.T) {
	before := promtest.ToFloat64(metrics.AnalysesTotal.WithLabelValues(metrics.OutcomeSuccess))

	f := &fakeFetcher{body: []byte(page)}
	a, err := New(f).Analyze(context.Background(), "  https://shop.example.com/ ")
	require.NoError(t, err)

	assert.Equal(t, []string{"https://shop.example.com/"}, f.got)
	assert.Equal(t, "https://shop.example.com/", a.URL)
	assert.Equal(t, 7, a.GoodCount, "core tags present")
	assert.Equal(t, 0, a.WarningCount)
	assert.Equal(t, 9, a.MissingCount, "no social tags")
	// 5 critical tags good, no social: 15/24
	assert.Equal(t, 63, a.Score)

	canonical, ok := a.Tag(analyzer.KindCanonical)
	require.True(t, ok)
	assert.Equal(t, analyzer.StatusGood, canonical.Status)

	after := promtest.ToFloat64(metrics.AnalysesTotal.WithLabelValues(metrics.OutcomeSuccess))
	assert.Equal(t, before+1, after)
}

func TestAnalyzeInvalidURL(t *testing.T) {
	before := promtest.ToFloat64(metrics.AnalysesTotal.WithLabelValues(metrics.OutcomeInvalidURL))

	f := &fakeFetcher{body: []byte(page)}
	a, err := New(f).Analyze(context.Background(), "not a url")
	require.Error(t, err)
	assert.Nil(t, a)
	assert.True(t, errors.Is(err, urlutil.ErrInvalidURL))
	assert.Empty(t, f.got, "no fetch for invalid input")

	after := promtest.ToFloat64(metrics.AnalysesTotal.WithLabelValues(metrics.OutcomeInvalidURL))
	assert.Equal(t, before+1, after)
}

func TestAnalyzeFetchFailure(t *testing.T) {
	fetchErr := &fetcher.FetchError{
		URL:        "https://shop.example.com/",
		StatusCode: http.StatusNotFound,
		Status:     "Not Found",
		Category:   fetcher.CategoryHTTPStatus,
	}
	a, err := New(&fakeFetcher{err: fetchErr}).Analyze(context.Background(), "https://shop.example.com/")
	require.Error(t, err)
	assert.Nil(t, a)

	var fe *fetcher.FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "Failed to fetch website: 404 Not Found", fe.Message())
	assert.False(t, errors.Is(err, urlutil.ErrInvalidURL))
}

func TestAnalyzeWrapsForeignFetchErrors(t *testing.T) {
	cause := errors.New("boom")
	_, err := New(&fakeFetcher{err: cause}).Analyze(context.Background(), "https://shop.example.com/")

	var fe *fetcher.FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "Error fetching website: boom", fe.Message())
	assert.True(t, errors.Is(err, cause))
}

func newRealFetcher(t *testing.T) *fetcher.Fetcher {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Timeout = 5 * time.Second
	f := fetcher.NewFetcher(cfg)
	t.Cleanup(f.Close)
	return f
}

func TestAnalyzeWithRealFetcher(t *testing.T) {
	site := testutil.NewTestServer(t)
	site.AddPage("/", page)

	a, err := New(newRealFetcher(t)).Analyze(context.Background(), site.URL("/"))
	require.NoError(t, err)
	assert.Equal(t, site.URL("/"), a.URL)
	assert.Equal(t, 1, site.GetHits("/"))

	title, ok := a.Tag(analyzer.KindTitle)
	require.True(t, ok)
	assert.Equal(t, "Handmade leather shoes", title.Text())
}

func TestAnalyzeCompletePageAfterRedirect(t *testing.T) {
	site := testutil.NewTestServer(t)
	site.SetRedirect("/old", "/new")
	// The canonical is compared with the requested URL, not the redirect target.
	site.AddPage("/new", testutil.CompletePage(site.URL("/old")).Build())

	a, err := New(newRealFetcher(t)).Analyze(context.Background(), site.URL("/old"))
	require.NoError(t, err)

	assert.Equal(t, 100, a.Score)
	assert.Equal(t, 16, a.GoodCount)
	assert.Zero(t, a.MissingCount)
	assert.Equal(t, 1, site.GetHits("/old"))
	assert.Equal(t, 1, site.GetHits("/new"))
}

func TestAnalyzeKeepsSubmittedURL(t *testing.T) {
	site := testutil.NewTestServer(t)
	pageURL := site.URL("/café")
	site.AddPage("/café", testutil.NewHTMLBuilder().Canonical(pageURL).Build())

	var got []string
	rec := &recordingFetcher{next: newRealFetcher(t), got: &got}

	a, err := New(rec).Analyze(context.Background(), pageURL+" ")
	require.NoError(t, err)

	// the request goes out escaped, the result keeps the submitted form
	assert.Equal(t, []string{site.URL("/caf%C3%A9")}, got)
	assert.Equal(t, pageURL, a.URL)
	assert.Equal(t, pageURL, a.GooglePreview.URL)
	require.NotNil(t, a.SocialPreviews.OpenGraph.URL)
	assert.Equal(t, pageURL, *a.SocialPreviews.OpenGraph.URL)

	canonical, ok := a.Tag(analyzer.KindCanonical)
	require.True(t, ok)
	assert.Equal(t, analyzer.StatusGood, canonical.Status)
	assert.Equal(t, 1, site.GetHits("/café"))
}

// recordingFetcher records requested URLs before delegating.
type recordingFetcher struct {
	next PageFetcher
	got  *[]string
}

func (r *recordingFetcher) Fetch(ctx context.Context, rawURL string) (*fetcher.Response, error) {
	*r.got = append(*r.got, rawURL)
	return r.next.Fetch(ctx, rawURL)
}
