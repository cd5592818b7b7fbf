// Package mcp implements a Model Context Protocol server exposing semantic
// tree parsing and XPath queries as MCP tools over stdio transport.
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Sumatoshi-tech/semtree/internal/observability"
	"github.com/Sumatoshi-tech/semtree/pkg/semtree"
	"github.com/Sumatoshi-tech/semtree/pkg/semtree/cache"
	"github.com/Sumatoshi-tech/semtree/pkg/version"
)

const (
	serverName = "semtree"

	toolCount = 2

	mcpSpanPrefix  = "mcp."
	traceIDMetaKey = "trace_id"
)

// ServerDeps holds injectable dependencies for the MCP server.
// Zero-value fields use production defaults.
type ServerDeps struct {
	// Parser resolves languages and builds trees. Nil builds one with the
	// built-in rule tables.
	Parser *semtree.Parser

	// Workers bounds the files a query processes at once. Zero uses the
	// number of CPUs.
	Workers int

	Logger *slog.Logger

	// Metrics is an optional RED metrics recorder. Nil disables per-tool metrics.
	Metrics *observability.REDMetrics

	// Cache keeps trees of unchanged files between query calls. Nil
	// parses every file on every call.
	Cache *cache.Trees

	// Tracer is an optional OTel tracer for per-tool-call spans. Nil disables tracing.
	Tracer trace.Tracer
}

// Server wraps the MCP SDK server with the semtree tools.
type Server struct {
	inner   *mcpsdk.Server
	tools   *toolSet
	mu      sync.RWMutex
	names   []string
	metrics *observability.REDMetrics
	tracer  trace.Tracer
}

// NewServer creates a server with every tool registered.
func NewServer(deps ServerDeps) (*Server, error) {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	parser := deps.Parser
	if parser == nil {
		p, err := semtree.NewParser(semtree.WithLogger(logger))
		if err != nil {
			return nil, fmt.Errorf("create parser: %w", err)
		}

		parser = p
	}

	inner := mcpsdk.NewServer(
		&mcpsdk.Implementation{Name: serverName, Version: version.Version},
		&mcpsdk.ServerOptions{Logger: logger},
	)

	srv := &Server{
		inner:   inner,
		tools:   &toolSet{parser: parser, workers: deps.Workers, cache: deps.Cache, logger: logger},
		names:   make([]string, 0, toolCount),
		metrics: deps.Metrics,
		tracer:  deps.Tracer,
	}

	register(srv, ToolNameParse, parseToolDescription, srv.tools.handleParse)
	register(srv, ToolNameQuery, queryToolDescription, srv.tools.handleQuery)

	return srv, nil
}

// ListToolNames returns the sorted names of all registered tools.
func (s *Server) ListToolNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, len(s.names))
	copy(names, s.names)
	sort.Strings(names)

	return names
}

// Run serves on stdio until the context is canceled or the client
// disconnects.
func (s *Server) Run(ctx context.Context) error {
	return s.RunWithTransport(ctx, &mcpsdk.StdioTransport{})
}

// RunWithTransport serves on transport until the context is canceled or
// the connection closes.
func (s *Server) RunWithTransport(ctx context.Context, transport mcpsdk.Transport) error {
	if err := s.inner.Run(ctx, transport); err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}

	return nil
}

type toolHandler[In any] = func(context.Context, *mcpsdk.CallToolRequest, In) (*mcpsdk.CallToolResult, ToolOutput, error)

func register[In any](s *Server, name, description string, handler toolHandler[In]) {
	mcpsdk.AddTool(s.inner, &mcpsdk.Tool{
		Name:        name,
		Description: description,
	}, withMetrics(s.metrics, name, withTracing(s.tracer, name, handler)))

	s.mu.Lock()
	s.names = append(s.names, name)
	s.mu.Unlock()
}

// withTracing opens a server span per call and appends the trace id to
// the result when the span is sampled.
func withTracing[In any](tracer trace.Tracer, toolName string, handler toolHandler[In]) toolHandler[In] {
	if tracer == nil {
		return handler
	}

	return func(ctx context.Context, req *mcpsdk.CallToolRequest, input In) (*mcpsdk.CallToolResult, ToolOutput, error) {
		ctx, span := tracer.Start(ctx, mcpSpanPrefix+toolName,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(attribute.String("mcp.tool", toolName)),
		)
		defer span.End()

		result, output, err := handler(ctx, req, input)

		if sc := span.SpanContext(); sc.IsSampled() && result != nil {
			result.Content = append(result.Content,
				&mcpsdk.TextContent{Text: traceIDMetaKey + "=" + sc.TraceID().String()})
		}

		return result, output, err
	}
}

// withMetrics records RED metrics per call. Tool results flagged as errors
// count as failures.
func withMetrics[In any](metrics *observability.REDMetrics, toolName string, handler toolHandler[In]) toolHandler[In] {
	if metrics == nil {
		return handler
	}

	return func(ctx context.Context, req *mcpsdk.CallToolRequest, input In) (*mcpsdk.CallToolResult, ToolOutput, error) {
		done := metrics.Track(ctx, mcpSpanPrefix+toolName)

		result, output, err := handler(ctx, req, input)

		switch {
		case err != nil:
			done(err)
		case result != nil && result.IsError:
			done(errToolFailed)
		default:
			done(nil)
		}

		return result, output, err
	}
}
