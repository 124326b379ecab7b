// Package server exposes the analyzer over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/spider-crawler/seotags/internal/analyzer"
	"github.com/spider-crawler/seotags/internal/config"
	"github.com/spider-crawler/seotags/internal/fetcher"
	"github.com/spider-crawler/seotags/internal/logger"
	"github.com/spider-crawler/seotags/internal/report"
	"github.com/spider-crawler/seotags/internal/urlutil"
)

// maxRequestBody bounds the JSON body of an analyze request.
const maxRequestBody = 1 << 20

// Analyzer runs a single page analysis.
type Analyzer interface {
	Analyze(ctx context.Context, rawURL string) (*analyzer.SeoAnalysis, error)
}

// New constructs the HTTP server with middleware stack and routes.
func New(cfg *config.Config, svc Analyzer) *http.Server {
	return &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           Router(svc),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Timeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// Router builds the route table. Requests carry no deadline of their own:
// the fetcher's client timeout bounds the slow part, and a failed fetch is
// answered once as 502.
func Router(svc Analyzer) http.Handler {
	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(RequestLogger)
	router.Use(chimw.Recoverer)

	h := &handlers{svc: svc}

	router.Get("/healthz", h.health)
	router.Handle("/metrics", promhttp.Handler())

	router.Post("/api/analyze", h.analyze)
	router.Get("/api/analyze/export", h.export)

	return router
}

type handlers struct {
	svc Analyzer
}

type analyzeRequest struct {
	URL string `json:"url"`
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (h *handlers) analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Invalid request body", Kind: KindInvalidRequest})
		return
	}

	analysis, err := h.svc.Analyze(r.Context(), req.URL)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, analysis)
}

func (h *handlers) export(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	format, err := report.ParseFormat(q.Get("format"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: err.Error(), Kind: KindInvalidRequest})
		return
	}
	reportType, err := report.ParseReportType(q.Get("report"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: err.Error(), Kind: KindInvalidRequest})
		return
	}

	analysis, err := h.svc.Analyze(r.Context(), q.Get("url"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	gen := report.NewGenerator(analysis)
	rep, err := gen.Generate(reportType)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="`+report.Filename(analysis.URL, reportType, format)+`"`)

	exporter := report.NewExporter(&report.ExportOptions{Format: format, Delimiter: ','})
	if err := exporter.Export(w, rep); err != nil {
		// headers are already sent
		logger.Log.Error("export failed", zap.String("url", analysis.URL), zap.Error(err))
	}
}

// Error kinds reported to clients.
const (
	KindInvalidRequest = "invalid_request"
	KindInvalidURL     = "invalid_url"
	KindFetchFailed    = "fetch_failed"
	KindInternal       = "internal"
)

type errorResponse struct {
	Message string `json:"message"`
	Kind    string `json:"kind"`
}

// writeError maps analysis errors to status codes: invalid input is 400, a
// failed fetch is 502 and anything else is 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *urlutil.ValidationError
	var ferr *fetcher.FetchError

	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: verr.Message(), Kind: KindInvalidURL})
	case errors.As(err, &ferr):
		writeJSON(w, http.StatusBadGateway, errorResponse{Message: ferr.Message(), Kind: KindFetchFailed})
	default:
		logger.Log.Error("request failed",
			zap.String("path", r.URL.Path),
			zap.String("request_id", chimw.GetReqID(r.Context())),
			zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "Failed to analyze website", Kind: KindInternal})
	}
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
