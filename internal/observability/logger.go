package observability

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

const (
	attrTraceID = "trace_id"
	attrSpanID  = "span_id"
	attrService = "service"
	attrEnv     = "env"
	attrMode    = "mode"
	attrFile    = "file"
)

type logScopeKey struct{}

// logScope is the semtree work a context belongs to.
type logScope struct {
	op   string
	file string
}

// WithOperation marks ctx as belonging to a parse or query run. Records
// logged under it carry an op attribute.
func WithOperation(ctx context.Context, op string) context.Context {
	s := scopeOf(ctx)
	s.op = op

	return context.WithValue(ctx, logScopeKey{}, s)
}

// WithFile marks ctx as belonging to the build of one file. Records logged
// under it carry a file attribute.
func WithFile(ctx context.Context, path string) context.Context {
	s := scopeOf(ctx)
	s.file = path

	return context.WithValue(ctx, logScopeKey{}, s)
}

func scopeOf(ctx context.Context) logScope {
	s, _ := ctx.Value(logScopeKey{}).(logScope)

	return s
}

// TracingHandler is an [slog.Handler] that adds service metadata, the
// active span's trace_id and span_id, and the run and file a record was
// logged for. Those attributes stay at the top level of every record;
// attributes and groups added through WithAttrs and WithGroup are replayed
// below them.
type TracingHandler struct {
	base  slog.Handler
	scope []scopeStep
}

// scopeStep is one WithGroup (group set) or WithAttrs call.
type scopeStep struct {
	group string
	attrs []slog.Attr
}

// NewTracingHandler wraps inner with service metadata and context
// attributes.
func NewTracingHandler(inner slog.Handler, service, env string, appMode AppMode) *TracingHandler {
	attrs := []slog.Attr{
		slog.String(attrService, service),
		slog.String(attrMode, string(appMode)),
	}

	if env != "" {
		attrs = append(attrs, slog.String(attrEnv, env))
	}

	return &TracingHandler{base: inner.WithAttrs(attrs)}
}

// Enabled delegates to the inner handler.
func (th *TracingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return th.base.Enabled(ctx, level)
}

// Handle attaches the context attributes, replays the handler's groups and
// attributes, then delegates.
func (th *TracingHandler) Handle(ctx context.Context, record slog.Record) error {
	h := th.base
	if attrs := contextAttrs(ctx); len(attrs) > 0 {
		h = h.WithAttrs(attrs)
	}

	for _, step := range th.scope {
		if step.group != "" {
			h = h.WithGroup(step.group)
		} else {
			h = h.WithAttrs(step.attrs)
		}
	}

	if err := h.Handle(ctx, record); err != nil {
		return fmt.Errorf("tracing handler: %w", err)
	}

	return nil
}

func contextAttrs(ctx context.Context) []slog.Attr {
	var attrs []slog.Attr

	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		attrs = append(attrs,
			slog.String(attrTraceID, sc.TraceID().String()),
			slog.String(attrSpanID, sc.SpanID().String()),
		)
	}

	s := scopeOf(ctx)

	if s.op != "" {
		attrs = append(attrs, slog.String(attrOp, s.op))
	}

	if s.file != "" {
		attrs = append(attrs, slog.String(attrFile, s.file))
	}

	return attrs
}

// WithAttrs implements [slog.Handler].
func (th *TracingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return th
	}

	return th.with(scopeStep{attrs: attrs})
}

// WithGroup implements [slog.Handler].
func (th *TracingHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return th
	}

	return th.with(scopeStep{group: name})
}

func (th *TracingHandler) with(step scopeStep) *TracingHandler {
	scope := make([]scopeStep, len(th.scope), len(th.scope)+1)
	copy(scope, th.scope)

	return &TracingHandler{base: th.base, scope: append(scope, step)}
}
