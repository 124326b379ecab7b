// Package service runs a complete analysis: validate, fetch, parse, evaluate.
package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spider-crawler/seotags/internal/analyzer"
	"github.com/spider-crawler/seotags/internal/fetcher"
	"github.com/spider-crawler/seotags/internal/logger"
	"github.com/spider-crawler/seotags/internal/metrics"
	"github.com/spider-crawler/seotags/internal/parser"
	"github.com/spider-crawler/seotags/internal/urlutil"
)

// PageFetcher retrieves the page under analysis.
type PageFetcher interface {
	Fetch(ctx context.Context, rawURL string) (*fetcher.Response, error)
}

// Service analyses one page per call and holds no per-request state.
type Service struct {
	fetcher PageFetcher
}

// New creates a Service backed by f.
func New(f PageFetcher) *Service {
	return &Service{fetcher: f}
}

// Analyze validates rawURL, fetches the page and evaluates its tags. It
// returns either a complete analysis or an error, never both.
//
// Errors are a *urlutil.ValidationError for bad input, a *fetcher.FetchError
// for network or HTTP failures, or a wrapped parse error.
func (s *Service) Analyze(ctx context.Context, rawURL string) (*analyzer.SeoAnalysis, error) {
	start := time.Now()

	u, err := urlutil.ValidateURL(rawURL)
	if err != nil {
		metrics.AnalysesTotal.WithLabelValues(metrics.OutcomeInvalidURL).Inc()
		logger.Log.Debug("rejected url", zap.String("input", rawURL), zap.Error(err))
		return nil, err
	}
	// Results describe the URL as submitted; only the request uses the
	// escaped form.
	pageURL := strings.TrimSpace(rawURL)

	fetchStart := time.Now()
	resp, err := s.fetcher.Fetch(ctx, u.String())
	metrics.FetchLatency.Observe(time.Since(fetchStart).Seconds())
	if err != nil {
		category := string(fetcher.CategoryOther)
		var fe *fetcher.FetchError
		if errors.As(err, &fe) {
			category = string(fe.Category)
		} else {
			err = &fetcher.FetchError{URL: pageURL, Category: fetcher.CategoryOther, Err: err}
		}
		metrics.FetchErrors.WithLabelValues(category).Inc()
		metrics.AnalysesTotal.WithLabelValues(metrics.OutcomeFetchFailed).Inc()
		logger.Log.Warn("fetch failed",
			zap.String("url", pageURL),
			zap.String("category", category),
			zap.Error(err))
		return nil, err
	}

	if !resp.IsHTML() {
		logger.Log.Debug("analysing non-HTML response",
			zap.String("url", pageURL),
			zap.String("content_type", resp.ContentType))
	}

	values, err := parser.ParseHTMLReader(bytes.NewReader(resp.Body))
	if err != nil {
		metrics.AnalysesTotal.WithLabelValues(metrics.OutcomeError).Inc()
		logger.Log.Error("parse failed", zap.String("url", pageURL), zap.Error(err))
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	// canonical is compared against the submitted URL, not the final one
	analysis := analyzer.Analyze(pageURL, values)

	record(analysis)
	logger.Log.Info("analysis complete",
		zap.String("url", pageURL),
		zap.String("final_url", resp.FinalURL),
		zap.Int("redirects", resp.RedirectCount()),
		zap.Int("score", analysis.Score),
		zap.Int("good", analysis.GoodCount),
		zap.Int("warning", analysis.WarningCount),
		zap.Int("missing", analysis.MissingCount),
		zap.Duration("duration", time.Since(start)))

	return analysis, nil
}

func record(a *analyzer.SeoAnalysis) {
	metrics.AnalysesTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()
	metrics.ScoreDistribution.Observe(float64(a.Score))
	for _, tag := range a.Tags {
		metrics.TagStatus.WithLabelValues(tag.Kind.Name(), string(tag.Status)).Inc()
	}
}
