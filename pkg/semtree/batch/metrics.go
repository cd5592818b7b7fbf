package batch

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric names.
const (
	MetricFiles        = "semtree.batch.files"
	MetricBytes        = "semtree.batch.bytes"
	MetricMatches      = "semtree.batch.matches"
	MetricFileDuration = "semtree.batch.file.duration"
)

type metrics struct {
	files    metric.Int64Counter
	bytes    metric.Int64Counter
	matches  metric.Int64Counter
	duration metric.Float64Histogram
}

func newMetrics(mt metric.Meter) (*metrics, error) {
	files, err := mt.Int64Counter(MetricFiles,
		metric.WithDescription("Files processed"),
		metric.WithUnit("{file}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", MetricFiles, err)
	}

	bytes, err := mt.Int64Counter(MetricBytes,
		metric.WithDescription("Source bytes parsed"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", MetricBytes, err)
	}

	matches, err := mt.Int64Counter(MetricMatches,
		metric.WithDescription("Query matches"),
		metric.WithUnit("{match}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", MetricMatches, err)
	}

	duration, err := mt.Float64Histogram(MetricFileDuration,
		metric.WithDescription("Per-file processing time"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", MetricFileDuration, err)
	}

	return &metrics{files: files, bytes: bytes, matches: matches, duration: duration}, nil
}

func (m *metrics) record(ctx context.Context, r *Result, elapsed time.Duration) {
	status := "ok"
	if r.Err != nil {
		status = "error"
	}

	attrs := metric.WithAttributes(
		attribute.String("status", status),
		attribute.String("language", r.Language),
	)

	m.files.Add(ctx, 1, attrs)
	m.duration.Record(ctx, elapsed.Seconds(), attrs)

	if r.Err == nil {
		m.bytes.Add(ctx, int64(r.Size), metric.WithAttributes(attribute.String("language", r.Language)))
		m.matches.Add(ctx, int64(len(r.Matches)))
	}
}
