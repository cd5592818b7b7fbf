package mcp

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/Sumatoshi-tech/semtree/internal/observability"
	"github.com/Sumatoshi-tech/semtree/pkg/semtree"
	"github.com/Sumatoshi-tech/semtree/pkg/semtree/batch"
	"github.com/Sumatoshi-tech/semtree/pkg/semtree/cache"
)

func newTools(t *testing.T) *toolSet {
	t.Helper()

	p, err := semtree.NewParser()
	require.NoError(t, err)

	return &toolSet{parser: p, workers: 2, logger: slog.Default()}
}

func TestCheckSource(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		language string
		hasPath  bool
		want     error
	}{
		{"none", "", "", false, ErrNoInput},
		{"both", "x", "go", true, ErrAmbiguousInput},
		{"path only", "", "", true, nil},
		{"content without language", "x", "", false, ErrEmptyLanguage},
		{"too large", strings.Repeat("x", MaxContentBytes+1), "go", false, ErrContentTooLarge},
		{"content", "x", "go", false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := checkSource(tt.content, tt.language, tt.hasPath)
			if tt.want == nil {
				assert.NoError(t, err)

				return
			}

			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestHandleParse(t *testing.T) {
	t.Parallel()

	ts := newTools(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"a": [1, 2]}`), 0o600))

	tests := []struct {
		name    string
		input   ParseInput
		want    string
		isError bool
	}{
		{"inline xml", ParseInput{Content: "x = 1\n", Language: "toml"}, "<x>1</x>", false},
		{"file json", ParseInput{Path: path, Format: FormatJSON}, `"name": "data"`, false},
		{"spans", ParseInput{Path: path, Spans: true}, `start="1:1"`, false},
		{"unknown language", ParseInput{Content: "x", Language: "cobol"}, "unknown language", true},
		{"unknown format", ParseInput{Path: path, Format: "yaml"}, "unknown output format", true},
		{"missing file", ParseInput{Path: filepath.Join(dir, "nope.json")}, "nope.json", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, out, err := ts.handleParse(context.Background(), nil, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.isError, result.IsError)

			tc, ok := result.Content[0].(*mcpsdk.TextContent)
			require.True(t, ok)
			assert.Contains(t, tc.Text, tt.want)

			if !tt.isError {
				po, ok := out.Data.(ParseOutput)
				require.True(t, ok)
				assert.Equal(t, tc.Text, po.Tree)
			}
		})
	}
}

func TestHandleQueryContent(t *testing.T) {
	t.Parallel()

	ts := newTools(t)

	result, out, err := ts.handleQuery(context.Background(), nil, QueryInput{
		XPath:    "count(//method)",
		Content:  "class A { void F() {} void G() {} }",
		Language: "csharp",
	})
	require.NoError(t, err)
	require.False(t, result.IsError)

	qo, ok := out.Data.(*batch.Summary)
	require.True(t, ok)
	assert.Equal(t, map[string]any{inlineName: float64(2)}, qo.Values)
	assert.Empty(t, qo.Hits)
}

func TestHandleQueryFileErrors(t *testing.T) {
	t.Parallel()

	ts := newTools(t)
	dir := t.TempDir()
	good := filepath.Join(dir, "a.toml")
	bad := filepath.Join(dir, "b.toml")
	require.NoError(t, os.WriteFile(good, []byte("port = 80\n"), 0o600))
	require.NoError(t, os.WriteFile(bad, []byte{0, 1, 2, 0}, 0o600))

	result, out, err := ts.handleQuery(context.Background(), nil, QueryInput{XPath: "//data/port", Paths: []string{good, bad}})
	require.NoError(t, err)
	require.False(t, result.IsError)

	qo, ok := out.Data.(*batch.Summary)
	require.True(t, ok)
	assert.Equal(t, 1, qo.Files)
	require.Len(t, qo.Hits, 1)
	assert.Equal(t, "80", qo.Hits[0].Value)
	require.Len(t, qo.Errors, 1)
	assert.Contains(t, qo.Errors[0], "binary file")
}

func TestHandleQueryCached(t *testing.T) {
	t.Parallel()

	ts := newTools(t)
	ts.cache = cache.New(0)

	path := filepath.Join(t.TempDir(), "a.toml")
	require.NoError(t, os.WriteFile(path, []byte("port = 80\n"), 0o600))

	for range 3 {
		result, _, err := ts.handleQuery(context.Background(), nil, QueryInput{XPath: "//data/port", Paths: []string{path}})
		require.NoError(t, err)
		require.False(t, result.IsError)
	}

	stats := ts.cache.Stats()
	assert.Equal(t, int64(2), stats.Hits)
	assert.Equal(t, 1, stats.Entries)
}

func TestWithMetricsAndTracing(t *testing.T) {
	t.Parallel()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	red, err := observability.NewREDMetrics(mp.Meter("test"))
	require.NoError(t, err)

	tp := sdktrace.NewTracerProvider(sdktrace.WithSampler(sdktrace.AlwaysSample()))

	ts := newTools(t)
	handler := withMetrics(red, ToolNameParse, withTracing(tp.Tracer("test"), ToolNameParse, ts.handleParse))

	ok, _, err := handler(context.Background(), nil, ParseInput{Content: "a: 1", Language: "yaml"})
	require.NoError(t, err)
	require.Len(t, ok.Content, 2)

	last, isText := ok.Content[1].(*mcpsdk.TextContent)
	require.True(t, isText)
	assert.True(t, strings.HasPrefix(last.Text, "trace_id="))

	failed, _, err := handler(context.Background(), nil, ParseInput{})
	require.NoError(t, err)
	assert.True(t, failed.IsError)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	var errorsSeen int64

	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != observability.MetricErrors {
				continue
			}

			sum, isSum := m.Data.(metricdata.Sum[int64])
			require.True(t, isSum)

			for _, dp := range sum.DataPoints {
				errorsSeen += dp.Value
			}
		}
	}

	assert.Equal(t, int64(1), errorsSeen)
}
