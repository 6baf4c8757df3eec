// Package batch extracts the outlines of every document in a directory,
// several at a time, writing one JSON file per document plus a summary.
//
// A failing document is recorded in the summary and never stops the
// batch. Cancelling the context stops new documents from starting;
// documents already in progress finish.
package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/tsawler/outline"
	"github.com/tsawler/outline/cache"
	"github.com/tsawler/outline/layout"
	"github.com/tsawler/outline/pdfsource"
)

// SummaryFile is the name of the run summary written to the output
// directory
const SummaryFile = "summary.json"

// Opener opens one input document
type Opener func(path string) (outline.Source, error)

// OpenPDF opens a PDF with the default span extraction settings
func OpenPDF(path string) (outline.Source, error) {
	doc, err := pdfsource.Open(path)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Config holds configuration for a batch run
type Config struct {
	// Workers is the number of documents processed at once
	// Default: 4
	Workers int

	// Pattern selects input files by name
	// Default: "*.pdf"
	Pattern string

	// Indent pretty-prints the JSON output
	// Default: true
	Indent bool

	// Heuristics configures the outline pipeline
	Heuristics layout.Config
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		Workers:    4,
		Pattern:    "*.pdf",
		Indent:     true,
		Heuristics: layout.DefaultConfig(),
	}
}

// Result describes the outcome for one document
type Result struct {
	File       string   `json:"file"`
	Output     string   `json:"output,omitempty"`
	Title      string   `json:"title,omitempty"`
	Entries    int      `json:"entries"`
	Strategy   string   `json:"strategy,omitempty"`
	Cached     bool     `json:"cached"`
	Warnings   []string `json:"warnings,omitempty"`
	Error      string   `json:"error,omitempty"`
	DurationMS int64    `json:"duration_ms"`
}

// Summary describes a whole run
type Summary struct {
	RunID     string    `json:"run_id"`
	Input     string    `json:"input"`
	Output    string    `json:"output"`
	Started   time.Time `json:"started"`
	Finished  time.Time `json:"finished"`
	Processed int       `json:"processed"`
	Failed    int       `json:"failed"`
	Cached    int       `json:"cached"`
	Results   []Result  `json:"results"`
}

// Runner processes directories of documents
type Runner struct {
	config   Config
	pipeline *outline.Pipeline
	open     Opener
	cache    *cache.Store
	logger   *slog.Logger
}

// NewRunner creates a runner. A nil logger discards log output.
func NewRunner(config Config, logger *slog.Logger) *Runner {
	if config.Workers < 1 {
		config.Workers = 1
	}
	if config.Pattern == "" {
		config.Pattern = "*.pdf"
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{
		config:   config,
		pipeline: outline.NewPipeline(config.Heuristics),
		open:     OpenPDF,
		logger:   logger,
	}
}

// WithOpener replaces the document opener
func (r *Runner) WithOpener(open Opener) *Runner {
	r.open = open
	return r
}

// WithCache enables the result cache
func (r *Runner) WithCache(store *cache.Store) *Runner {
	r.cache = store
	return r
}

// Files lists the input files of dir matching the configured pattern, in
// name order
func (r *Runner) Files(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("input %s is not a directory", dir)
	}

	files, err := filepath.Glob(filepath.Join(dir, r.config.Pattern))
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", r.config.Pattern, err)
	}
	sort.Strings(files)
	return files, nil
}

// Run processes every matching file of inputDir and writes the results to
// outputDir. The summary is returned even when the context was cancelled,
// in which case the error is the context's.
func (r *Runner) Run(ctx context.Context, inputDir, outputDir string) (*Summary, error) {
	files, err := r.Files(inputDir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	summary := &Summary{
		RunID:   uuid.NewString(),
		Input:   inputDir,
		Output:  outputDir,
		Started: time.Now().UTC(),
		Results: make([]Result, len(files)),
	}
	logger := r.logger.With("run_id", summary.RunID)
	logger.Info("batch started", "input", inputDir, "files", len(files), "workers", r.config.Workers)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.config.Workers)

	for i, file := range files {
		summary.Results[i] = Result{File: filepath.Base(file)}
		if gctx.Err() != nil {
			summary.Results[i].Error = gctx.Err().Error()
			continue
		}
		i, file := i, file
		g.Go(func() error {
			summary.Results[i] = r.process(gctx, logger, file, outputDir)
			return nil
		})
	}
	_ = g.Wait()

	summary.Finished = time.Now().UTC()
	for _, res := range summary.Results {
		switch {
		case res.Error != "":
			summary.Failed++
		case res.Cached:
			summary.Cached++
			summary.Processed++
		default:
			summary.Processed++
		}
	}

	if err := writeJSON(filepath.Join(outputDir, SummaryFile), summary, r.config.Indent); err != nil {
		return summary, fmt.Errorf("failed to write summary: %w", err)
	}

	logger.Info("batch finished",
		"processed", summary.Processed,
		"failed", summary.Failed,
		"cached", summary.Cached,
		"elapsed", summary.Finished.Sub(summary.Started),
	)
	return summary, ctx.Err()
}

// process extracts one document; every failure ends up in the result
func (r *Runner) process(ctx context.Context, logger *slog.Logger, path, outputDir string) (res Result) {
	start := time.Now()
	res.File = filepath.Base(path)
	logger = logger.With("file", res.File)

	defer func() {
		res.DurationMS = time.Since(start).Milliseconds()
	}()

	if err := ctx.Err(); err != nil {
		res.Error = err.Error()
		return res
	}

	output := filepath.Join(outputDir, strings.TrimSuffix(res.File, filepath.Ext(res.File))+".json")

	var key cache.Key
	if r.cache != nil {
		var err error
		if key, err = cache.KeyFor(path, r.config.Heuristics); err != nil {
			res.Error = err.Error()
			logger.Error("failed to hash document", "error", err)
			return res
		}
		doc, ok, err := r.cache.Get(ctx, key)
		if err != nil {
			logger.Warn("cache lookup failed", "error", err)
		}
		if ok {
			if err := writeJSON(output, doc, r.config.Indent); err != nil {
				res.Error = err.Error()
				return res
			}
			res.Output, res.Title, res.Entries, res.Cached = output, doc.Title, len(doc.Outline), true
			logger.Debug("served from cache")
			return res
		}
	}

	src, err := r.open(path)
	if err != nil {
		res.Error = err.Error()
		logger.Error("failed to open document", "error", err)
		return res
	}
	defer src.Close()

	in, warnings, err := outline.FromSource(src).WithConfig(r.config.Heuristics).Input()
	if err != nil {
		res.Error = err.Error()
		logger.Error("failed to read document", "error", err)
		return res
	}
	for _, w := range warnings {
		res.Warnings = append(res.Warnings, w.String())
	}
	if len(warnings) > 0 {
		logger.Warn("document read with warnings", "warnings", outline.FormatWarnings(warnings))
	}

	doc, report := r.pipeline.Run(in)

	if err := writeJSON(output, doc, r.config.Indent); err != nil {
		res.Error = err.Error()
		logger.Error("failed to write outline", "error", err)
		return res
	}
	res.Output, res.Title, res.Entries = output, doc.Title, len(doc.Outline)
	res.Strategy = report.Strategy.String()

	if r.cache != nil {
		if err := r.cache.Put(ctx, key, doc); err != nil {
			logger.Warn("failed to cache outline", "error", err)
		}
	}

	logger.Debug("document processed",
		"entries", res.Entries,
		"strategy", res.Strategy,
		"spans_in", report.SpansIn,
		"spans_kept", report.SpansKept,
		"title_source", report.TitleSource.String(),
	)
	return res
}

// writeJSON writes v to path
func writeJSON(path string, v any, indent bool) error {
	var (
		data []byte
		err  error
	)
	if indent {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
