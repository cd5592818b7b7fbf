package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Sumatoshi-tech/semtree/pkg/semtree/batch"
	"github.com/Sumatoshi-tech/semtree/pkg/semtree/query"
)

func (ts *toolSet) handleQuery(
	ctx context.Context,
	_ *mcpsdk.CallToolRequest,
	input QueryInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if input.XPath == "" {
		return errorResult(ErrEmptyExpression)
	}

	if err := checkSource(input.Content, input.Language, len(input.Paths) > 0); err != nil {
		return errorResult(err)
	}

	expr, err := query.Compile(input.XPath)
	if err != nil {
		return errorResult(err)
	}

	var out *batch.Summary
	if input.Content != "" {
		out, err = ts.queryContent(ctx, expr, input)
	} else {
		out, err = ts.queryPaths(ctx, expr, input)
	}

	if err != nil {
		return errorResult(err)
	}

	return jsonResult(out)
}

func (ts *toolSet) queryContent(ctx context.Context, expr *query.Expr, input QueryInput) (*batch.Summary, error) {
	f, err := ts.parser.ParseAs(ctx, input.Language, inlineName, []byte(input.Content))
	if err != nil {
		return nil, err
	}

	out := &batch.Summary{Files: 1, Hits: []batch.Hit{}}

	switch v := expr.Evaluate(f.Doc, f.Root).(type) {
	case []query.Match:
		for _, m := range v {
			out.Hits = append(out.Hits, batch.NewHit(inlineName, m))
		}
	default:
		out.Values = map[string]any{inlineName: v}
	}

	return out, nil
}

func (ts *toolSet) queryPaths(ctx context.Context, expr *query.Expr, input QueryInput) (*batch.Summary, error) {
	paths, err := batch.Expand(input.Paths, ts.parser.IsSupported)
	if err != nil {
		return nil, err
	}

	opts := []batch.Option{
		batch.WithWorkers(ts.workers),
		batch.WithLanguage(input.Language),
		batch.WithLogger(ts.logger),
	}

	if ts.cache != nil {
		opts = append(opts, batch.WithCache(ts.cache))
	}

	engine, err := batch.New(ts.parser, opts...)
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}

	report, err := engine.Query(ctx, expr, paths)
	if err != nil {
		return nil, err
	}

	return report.Summary(), nil
}
