// Package main is the entry point for the SEO tag analyzer.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/spider-crawler/seotags/internal/analyzer"
	"github.com/spider-crawler/seotags/internal/config"
	"github.com/spider-crawler/seotags/internal/fetcher"
	"github.com/spider-crawler/seotags/internal/logger"
	"github.com/spider-crawler/seotags/internal/report"
	"github.com/spider-crawler/seotags/internal/server"
	"github.com/spider-crawler/seotags/internal/service"
	"github.com/spider-crawler/seotags/internal/ui"
	"github.com/spider-crawler/seotags/internal/ui/tabs"
)

// Exit codes
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

const usage = `Usage:
  seotags serve   [--config file] [--listen addr]
  seotags analyze [--config file] [--format text|json|csv|xlsx] [--report name] [--tab name] [-o file] <url>
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return exitUsage
	}

	switch args[0] {
	case "serve":
		return runServe(args[1:], stderr)
	case "analyze":
		return runAnalyze(args[1:], stdout, stderr)
	case "-h", "--help", "help":
		fmt.Fprint(stdout, usage)
		return exitOK
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return exitUsage
	}
}

func runServe(args []string, stderr io.Writer) int {
	flags := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	configPath := flags.String("config", "", "path to a config file")
	listen := flags.String("listen", "", "listen address, overrides the config")
	if err := flags.Parse(args); err != nil {
		return exitUsage
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
		return exitFailure
	}
	if *listen != "" {
		cfg.ListenAddr = *listen
	}

	if err := logger.Init(cfg.LogLevel); err != nil {
		fmt.Fprintf(stderr, "Failed to init logger: %v\n", err)
		return exitFailure
	}
	defer logger.Sync()

	f := fetcher.NewFetcher(cfg)
	defer f.Close()

	srv := server.New(cfg, service.New(f))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("HTTP server listening", zap.String("address", cfg.ListenAddr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("HTTP server failed", zap.Error(err))
			return exitFailure
		}
	case <-ctx.Done():
		logger.Log.Info("shutting down", zap.Duration("grace", cfg.ShutdownTimeout))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Log.Error("graceful shutdown failed", zap.Error(err))
			return exitFailure
		}
	}

	logger.Log.Info("shutdown complete")
	return exitOK
}

func runAnalyze(args []string, stdout, stderr io.Writer) int {
	flags := pflag.NewFlagSet("analyze", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	configPath := flags.String("config", "", "path to a config file")
	format := flags.String("format", "text", "output format: text, json, csv or xlsx")
	reportName := flags.String("report", string(report.ReportAllTags), "report for csv output: all_tags, issues, categories or social_issues")
	tabNames := flags.StringSlice("tab", nil, "tabs for text output: summary, google, social, categories")
	output := flags.StringP("output", "o", "", "write to file instead of stdout")
	logLevel := flags.String("log-level", "error", "log level")
	if err := flags.Parse(args); err != nil {
		return exitUsage
	}
	if flags.NArg() != 1 {
		fmt.Fprint(stderr, usage)
		return exitUsage
	}
	rawURL := flags.Arg(0)

	switch *format {
	case "text", "json", "csv", "xlsx":
	default:
		fmt.Fprintf(stderr, "unknown format %q\n", *format)
		return exitUsage
	}
	reportType, err := report.ParseReportType(*reportName)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
		return exitFailure
	}
	if err := logger.Init(*logLevel); err != nil {
		fmt.Fprintf(stderr, "Failed to init logger: %v\n", err)
		return exitFailure
	}
	defer logger.Sync()

	f := fetcher.NewFetcher(cfg)
	defer f.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(stderr))
	s.Suffix = " Analyzing " + rawURL
	s.Start()
	analysis, err := service.New(f).Analyze(ctx, rawURL)
	s.Stop()
	if err != nil {
		fmt.Fprintln(stderr, errorMessage(err))
		return exitFailure
	}

	out := stdout
	if *output != "" {
		file, err := os.Create(*output)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to create file: %v\n", err)
			return exitFailure
		}
		defer file.Close()
		out = file
	}

	if err := write(out, analysis, *format, reportType, *tabNames); err != nil {
		fmt.Fprintf(stderr, "Failed to write output: %v\n", err)
		return exitFailure
	}
	return exitOK
}

func write(out io.Writer, a *analyzer.SeoAnalysis, format string, reportType report.ReportType, tabNames []string) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		encoder.SetEscapeHTML(false)
		return encoder.Encode(a)
	case "csv":
		rep, err := report.NewGenerator(a).Generate(reportType)
		if err != nil {
			return err
		}
		return report.NewExporter(&report.ExportOptions{Format: report.FormatCSV, Delimiter: ','}).Export(out, rep)
	case "xlsx":
		return report.NewExporter(&report.ExportOptions{Format: report.FormatXLSX}).ExportWorkbook(out, report.NewGenerator(a))
	default:
		ids := make([]tabs.TabID, 0, len(tabNames))
		for _, name := range tabNames {
			ids = append(ids, tabs.TabID(strings.TrimSpace(name)))
		}
		return ui.NewApp(out).Render(a, ids...)
	}
}

// errorMessage returns the caller-facing text of an analysis error.
func errorMessage(err error) string {
	var msg interface{ Message() string }
	if errors.As(err, &msg) {
		return msg.Message()
	}
	return err.Error()
}
