package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/semtree/internal/mcp"
	"github.com/Sumatoshi-tech/semtree/internal/observability"
	"github.com/Sumatoshi-tech/semtree/pkg/semtree/cache"
)

func (a *app) mcpCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for AI agent integration",
		Long: `Start a Model Context Protocol (MCP) server on stdio transport.

The server exposes two tools:
  - semtree_parse: convert a file or inline content into a semantic tree
  - semtree_query: evaluate an XPath expression over files or inline content

With --metrics-addr, /metrics (Prometheus), /healthz and /readyz are served
over HTTP while the server runs.`,
		Annotations: map[string]string{annotationMode: string(observability.ModeMCP)},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runMCP(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&a.metricsAddr, "metrics-addr", "", "serve metrics and health endpoints at this address (e.g. :9464)")

	return cmd
}

func (a *app) runMCP(ctx context.Context) error {
	parser, err := a.semtreeParser()
	if err != nil {
		return err
	}

	red, err := observability.NewREDMetrics(a.providers.Meter)
	if err != nil {
		return err
	}

	if a.metricsAddr != "" {
		diag, diagErr := observability.NewDiagnosticsServer(a.metricsAddr, a.providers.MetricsHandler,
			observability.ReadyCheck{Name: "grammars", Check: parser.Loader().CheckGrammars},
		)
		if diagErr != nil {
			return diagErr
		}

		a.logger.InfoContext(ctx, "diagnostics listening", "addr", diag.Addr())

		defer func() {
			if closeErr := diag.Close(context.Background()); closeErr != nil {
				a.logger.WarnContext(ctx, "diagnostics shutdown failed", "error", closeErr)
			}
		}()
	}

	deps := mcp.ServerDeps{
		Parser:  parser,
		Workers: a.cfg.Workers,
		Logger:  a.logger,
		Metrics: red,
		Tracer:  a.providers.Tracer,
	}

	if size, _ := a.cfg.MCP.CacheBytes(); size > 0 { //nolint:errcheck // checked by config.Validate.
		deps.Cache = cache.New(size)
	}

	srv, err := mcp.NewServer(deps)
	if err != nil {
		return fmt.Errorf("create mcp server: %w", err)
	}

	return srv.Run(ctx)
}
