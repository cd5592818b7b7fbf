// Package batch parses and queries many files in parallel. Files are
// independent: a file that cannot be read or parsed is reported on its own
// and never aborts the others.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/src-d/enry/v2"
	"github.com/zeebo/xxh3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/Sumatoshi-tech/semtree/internal/observability"
	"github.com/Sumatoshi-tech/semtree/pkg/semtree"
	"github.com/Sumatoshi-tech/semtree/pkg/semtree/cache"
	"github.com/Sumatoshi-tech/semtree/pkg/semtree/query"
)

const (
	instrumentationName = "semtree.batch"
	spanRun             = "semtree.batch.run"
	spanFile            = "semtree.file"
)

// ErrBinary is reported for files whose content is not text.
var ErrBinary = errors.New("binary file")

// FileError is the failure of one file.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string { return e.Path + ": " + e.Err.Error() }

func (e *FileError) Unwrap() error { return e.Err }

// Result is the outcome of one file.
type Result struct {
	Path     string
	Language string
	// Digest is the xxh3 hash of the content, hex encoded.
	Digest string
	Size   int
	// File is the semantic tree; kept by Parse, and by Query only when the
	// engine was built WithTrees.
	File *semtree.File
	// Matches holds node-set results of a query.
	Matches []query.Match
	// Value holds the scalar result of a query such as count(...).
	Value any
	Err   *FileError
}

// Report aggregates a run. Results are in input order; files that failed
// are also listed in Errors and excluded from Matches.
type Report struct {
	Results []Result
	Errors  []*FileError
	Files   int
	Bytes   int64
	Matches int
	Elapsed time.Duration
}

// Engine runs parses and queries over files with bounded parallelism.
type Engine struct {
	parser   *semtree.Parser
	workers  int
	trees    bool
	language string
	cache    *cache.Trees
	logger   *slog.Logger
	tracer   trace.Tracer
	meter    metric.Meter
	metrics  *metrics
}

// Option configures an Engine.
type Option func(*Engine)

// WithWorkers bounds the number of files processed at once.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithTrees keeps the semantic trees of queried files in their results.
func WithTrees() Option {
	return func(e *Engine) { e.trees = true }
}

// WithLanguage parses every file as language instead of detecting it.
func WithLanguage(language string) Option {
	return func(e *Engine) { e.language = language }
}

// WithCache reuses trees of unchanged files across runs. Cached trees are
// shared, so callers must not modify the File of a result.
func WithCache(c *cache.Trees) Option {
	return func(e *Engine) { e.cache = c }
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithTracer sets the tracer. The default is the global provider's.
func WithTracer(tracer trace.Tracer) Option {
	return func(e *Engine) { e.tracer = tracer }
}

// WithMeter sets the meter. The default is the global provider's.
func WithMeter(meter metric.Meter) Option {
	return func(e *Engine) { e.meter = meter }
}

// New creates an engine over parser.
func New(parser *semtree.Parser, opts ...Option) (*Engine, error) {
	e := &Engine{
		parser:  parser,
		workers: runtime.NumCPU(),
		logger:  slog.Default(),
		tracer:  otel.Tracer(instrumentationName),
		meter:   otel.Meter(instrumentationName),
	}

	for _, opt := range opts {
		opt(e)
	}

	m, err := newMetrics(e.meter)
	if err != nil {
		return nil, err
	}

	e.metrics = m

	return e, nil
}

// Parse builds the semantic tree of every path.
func (e *Engine) Parse(ctx context.Context, paths []string) (*Report, error) {
	return e.run(ctx, "parse", paths, func(context.Context, *Result) {})
}

// Query evaluates expr against every path.
func (e *Engine) Query(ctx context.Context, expr *query.Expr, paths []string) (*Report, error) {
	return e.run(ctx, "query", paths, func(_ context.Context, r *Result) {
		switch v := expr.Evaluate(r.File.Doc, r.File.Root).(type) {
		case []query.Match:
			r.Matches = v
		default:
			r.Value = v
		}

		if !e.trees {
			r.File = nil
		}
	})
}

func (e *Engine) run(ctx context.Context, op string, paths []string, each func(context.Context, *Result)) (*Report, error) {
	ctx, span := e.tracer.Start(ctx, spanRun, trace.WithAttributes(
		attribute.String("op", op),
		attribute.Int("files", len(paths)),
	))
	defer span.End()

	ctx = observability.WithOperation(ctx, op)
	start := time.Now()
	results := make([]Result, len(paths))

	g := new(errgroup.Group)
	g.SetLimit(e.workers)

	for i, path := range paths {
		if ctx.Err() != nil {
			break
		}

		g.Go(func() error {
			results[i] = e.file(ctx, path, each)

			return nil
		})
	}

	_ = g.Wait() //nolint:errcheck // workers report per-file errors in their result slot.

	report := &Report{Results: results, Elapsed: time.Since(start)}

	for i := range results {
		r := &results[i]
		if r.Path == "" {
			// never started: the context ended first
			r.Path = paths[i]
			r.Err = &FileError{Path: paths[i], Err: context.Cause(ctx)}
		}

		switch {
		case r.Err != nil:
			report.Errors = append(report.Errors, r.Err)
		default:
			report.Files++
			report.Bytes += int64(r.Size)
			report.Matches += len(r.Matches)
		}
	}

	span.SetAttributes(
		attribute.Int("files.ok", report.Files),
		attribute.Int("files.failed", len(report.Errors)),
		attribute.Int("matches", report.Matches),
	)

	if err := ctx.Err(); err != nil {
		span.SetStatus(codes.Error, err.Error())

		return report, fmt.Errorf("%s interrupted: %w", op, err)
	}

	return report, nil
}

func (e *Engine) file(ctx context.Context, path string, each func(context.Context, *Result)) Result {
	if err := ctx.Err(); err != nil {
		return Result{Path: path, Err: &FileError{Path: path, Err: err}}
	}

	ctx, span := e.tracer.Start(ctx, spanFile, trace.WithAttributes(attribute.String("path", path)))
	defer span.End()

	ctx = observability.WithFile(ctx, path)

	start := time.Now()
	r := e.process(ctx, path, each)

	if r.Err != nil {
		span.RecordError(r.Err.Err)
		span.SetStatus(codes.Error, r.Err.Err.Error())
		e.logger.WarnContext(ctx, "file failed", "error", r.Err.Err)
	}

	e.metrics.record(ctx, &r, time.Since(start))

	return r
}

func (e *Engine) process(ctx context.Context, path string, each func(context.Context, *Result)) Result {
	r := Result{Path: path}

	content, err := os.ReadFile(path) //nolint:gosec // paths come from the caller's expansion.
	if err != nil {
		r.Err = &FileError{Path: path, Err: err}

		return r
	}

	sum := xxh3.Hash(content)
	r.Size = len(content)
	r.Digest = fmt.Sprintf("%016x", sum)

	if enry.IsBinary(content) {
		r.Err = &FileError{Path: path, Err: ErrBinary}

		return r
	}

	f, err := e.tree(ctx, cache.Key{Path: path, Language: e.language, Digest: sum}, content)
	if err != nil {
		r.Err = &FileError{Path: path, Err: err}

		return r
	}

	r.Language = f.Language
	r.File = f

	each(ctx, &r)

	return r
}

func (e *Engine) tree(ctx context.Context, key cache.Key, content []byte) (*semtree.File, error) {
	if e.cache != nil {
		if f, ok := e.cache.Get(key); ok {
			trace.SpanFromContext(ctx).SetAttributes(attribute.Bool("cached", true))

			return f, nil
		}
	}

	var (
		f   *semtree.File
		err error
	)

	if key.Language != "" {
		f, err = e.parser.ParseAs(ctx, key.Language, key.Path, content)
	} else {
		f, err = e.parser.Parse(ctx, key.Path, content)
	}

	if err != nil {
		return nil, err
	}

	if e.cache != nil {
		e.cache.Put(key, f, len(content))
	}

	return f, nil
}

// Digest returns the hex xxh3 hash of content.
func Digest(content []byte) string {
	return fmt.Sprintf("%016x", xxh3.Hash(content))
}
