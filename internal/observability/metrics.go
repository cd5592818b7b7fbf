package observability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric names.
const (
	MetricRequests        = "semtree.requests"
	MetricRequestDuration = "semtree.request.duration"
	MetricErrors          = "semtree.errors"
	MetricInflight        = "semtree.inflight"
)

// Operation status values.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

const (
	attrOp     = "op"
	attrStatus = "status"
)

// durationBuckets covers single small files up to whole-repository queries.
var durationBuckets = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60} //nolint:gochecknoglobals // static bucket layout.

// REDMetrics holds the rate, error and duration instruments of parse and
// query operations.
type REDMetrics struct {
	requests metric.Int64Counter
	duration metric.Float64Histogram
	errors   metric.Int64Counter
	inflight metric.Int64UpDownCounter
}

// NewREDMetrics creates RED instruments from mt. Creation errors of all
// four instruments are reported together.
func NewREDMetrics(mt metric.Meter) (*REDMetrics, error) {
	requests, reqErr := mt.Int64Counter(MetricRequests,
		metric.WithDescription("Parse and query operations"),
		metric.WithUnit("{request}"),
	)
	duration, durErr := mt.Float64Histogram(MetricRequestDuration,
		metric.WithDescription("Parse and query duration"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBuckets...),
	)
	failures, errErr := mt.Int64Counter(MetricErrors,
		metric.WithDescription("Failed parse and query operations"),
		metric.WithUnit("{error}"),
	)
	inflight, infErr := mt.Int64UpDownCounter(MetricInflight,
		metric.WithDescription("Parse and query operations in progress"),
		metric.WithUnit("{request}"),
	)

	if err := errors.Join(reqErr, durErr, errErr, infErr); err != nil {
		return nil, fmt.Errorf("create RED metrics: %w", err)
	}

	return &REDMetrics{
		requests: requests,
		duration: duration,
		errors:   failures,
		inflight: inflight,
	}, nil
}

// RecordRequest records a completed operation.
func (rm *REDMetrics) RecordRequest(ctx context.Context, op, status string, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String(attrOp, op),
		attribute.String(attrStatus, status),
	)

	rm.requests.Add(ctx, 1, attrs)
	rm.duration.Record(ctx, duration.Seconds(), attrs)

	if status == StatusError {
		rm.errors.Add(ctx, 1, metric.WithAttributes(attribute.String(attrOp, op)))
	}
}

// Track marks an operation in flight and returns the function that records
// its completion with the status derived from err.
func (rm *REDMetrics) Track(ctx context.Context, op string) func(err error) {
	start := time.Now()
	attrs := metric.WithAttributes(attribute.String(attrOp, op))
	rm.inflight.Add(ctx, 1, attrs)

	return func(err error) {
		rm.inflight.Add(ctx, -1, attrs)

		status := StatusOK
		if err != nil {
			status = StatusError
		}

		rm.RecordRequest(ctx, op, status, time.Since(start))
	}
}
