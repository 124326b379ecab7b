package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/spider-crawler/seotags/internal/testutil"
)

func newSite(t *testing.T) *testutil.TestServer {
	t.Helper()
	site := testutil.NewTestServer(t)
	site.AddPage("/", testutil.NewHTMLBuilder().
		Lang("en").
		Charset("utf-8").
		Title("Command line fixture page").
		MetaDescription("A fixture page served to the command line tests of the analyzer.").
		Build())
	return site
}

func TestRunUsage(t *testing.T) {
	var stdout, stderr bytes.Buffer

	assert.Equal(t, exitUsage, run(nil, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "Usage:")

	assert.Equal(t, exitUsage, run([]string{"crawl"}, &stdout, &stderr))
	assert.Equal(t, exitUsage, run([]string{"analyze"}, &stdout, &stderr))
	assert.Equal(t, exitUsage, run([]string{"analyze", "--format", "pdf", "https://example.com"}, &stdout, &stderr))
	assert.Equal(t, exitOK, run([]string{"help"}, &stdout, &stderr))
}

func TestAnalyzeJSON(t *testing.T) {
	site := newSite(t)

	var stdout, stderr bytes.Buffer
	code := run([]string{"analyze", "--format", "json", site.URL("/")}, &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &body))
	assert.Equal(t, site.URL("/"), body["url"])
	assert.Equal(t, "Command line fixture page", body["title"])
}

func TestAnalyzeText(t *testing.T) {
	site := newSite(t)

	var stdout, stderr bytes.Buffer
	code := run([]string{"analyze", "--tab", "summary", site.URL("/")}, &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())
	assert.Contains(t, stdout.String(), "Score:")
	assert.NotContains(t, stdout.String(), "Google Preview")
}

func TestAnalyzeCSVToFile(t *testing.T) {
	site := newSite(t)
	path := filepath.Join(t.TempDir(), "issues.csv")

	var stdout, stderr bytes.Buffer
	code := run([]string{"analyze", "--format", "csv", "--report", "issues", "-o", path, site.URL("/")}, &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())
	assert.Zero(t, stdout.Len())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	records, err := csv.NewReader(bytes.NewReader(data[3:])).ReadAll()
	require.NoError(t, err)
	for _, rec := range records[1:] {
		assert.NotEqual(t, "good", rec[3])
	}
}

func TestAnalyzeXLSX(t *testing.T) {
	site := newSite(t)

	var stdout, stderr bytes.Buffer
	code := run([]string{"analyze", "--format", "xlsx", site.URL("/")}, &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())

	f, err := excelize.OpenReader(&stdout)
	require.NoError(t, err)
	defer f.Close()
	assert.Contains(t, f.GetSheetList(), "Summary")
}

func TestAnalyzeFailures(t *testing.T) {
	site := newSite(t)

	var stdout, stderr bytes.Buffer
	assert.Equal(t, exitFailure, run([]string{"analyze", "example.com"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "Please enter a valid URL including https://")

	stderr.Reset()
	assert.Equal(t, exitFailure, run([]string{"analyze", site.URL("/missing")}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "Failed to fetch website: 404 Not Found")
	assert.Zero(t, stdout.Len())
}
