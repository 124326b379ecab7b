package testutil_test

import (
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spider-crawler/seotags/internal/analyzer"
	"github.com/spider-crawler/seotags/internal/parser"
	"github.com/spider-crawler/seotags/internal/testutil"
)

func TestCompletePageEvaluatesGood(t *testing.T) {
	t.Parallel()

	const pageURL = "https://example.com/page"
	v, err := parser.ParseHTML([]byte(testutil.CompletePage(pageURL).Build()))
	require.NoError(t, err)

	a := analyzer.Analyze(pageURL, v)
	assert.Equal(t, 16, a.GoodCount)
	assert.Equal(t, 100, a.Score)
}

func TestHTMLBuilderEscapesValues(t *testing.T) {
	t.Parallel()

	v, err := parser.ParseHTML([]byte(testutil.NewHTMLBuilder().
		Title(`Fish & "Chips"`).
		OpenGraph("title", "<b>bold</b>").
		Build()))
	require.NoError(t, err)

	assert.Equal(t, `Fish & "Chips"`, v.Title.String())
	assert.Equal(t, "<b>bold</b>", v.OpenGraph.Title.String())
	assert.False(t, v.Twitter.Card.Present())
}

func TestTestServer(t *testing.T) {
	t.Parallel()

	site := testutil.NewTestServer(t)
	site.AddPage("/", "<html></html>")
	site.SetError("/down", http.StatusServiceUnavailable)
	site.SetRedirect("/moved", "/")

	resp, err := http.Get(site.URL("/moved"))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "<html></html>", string(body))
	assert.Equal(t, 1, site.GetHits("/moved"))
	assert.Equal(t, 1, site.GetHits("/"))

	resp, err = http.Get(site.URL("/down"))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	resp, err = http.Get(site.URL("/nowhere"))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
