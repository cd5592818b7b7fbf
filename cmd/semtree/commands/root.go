// Package commands implements the semtree command line.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/semtree/internal/config"
	"github.com/Sumatoshi-tech/semtree/internal/observability"
	"github.com/Sumatoshi-tech/semtree/pkg/semtree"
	"github.com/Sumatoshi-tech/semtree/pkg/semtree/rules"
	"github.com/Sumatoshi-tech/semtree/pkg/version"
)

// annotationMode marks commands that run in a mode other than ModeCLI.
const annotationMode = "semtree.mode"

// ErrFilesFailed is returned when some inputs could not be processed.
var ErrFilesFailed = errors.New("files failed")

// app is the state shared by the commands of one invocation.
type app struct {
	cfgFile     string
	verbose     bool
	quiet       bool
	noColor     bool
	metricsAddr string

	cfg       *config.Config
	providers observability.Providers
	logger    *slog.Logger
	parser    *semtree.Parser
}

// Execute runs the command line with args and releases telemetry on the
// way out.
func Execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	a := &app{logger: slog.Default()}

	root := a.rootCommand()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)

	return errors.Join(err, a.close())
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "semtree",
		Short: "Semantic XML trees for source code and configuration files",
		Long: `semtree converts source files in 21 languages into a uniform semantic XML
tree and evaluates XPath queries against it.

Configuration formats (JSON, YAML, TOML, INI) get both an ast view and a
data view of their content.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is .semtree.yaml in . or $HOME)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")
	root.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "suppress summaries and warnings")
	root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		a.parseCommand(),
		a.queryCommand(),
		a.rawCommand(),
		a.languagesCommand(),
		a.rulesCommand(),
		a.diffCommand(),
		a.mcpCommand(),
		versionCommand(),
	)

	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig(a.cfgFile)
	if err != nil {
		return err
	}

	a.cfg = cfg

	if a.noColor {
		color.NoColor = true //nolint:reassign // intentional override of library global
	}

	obs := observability.DefaultConfig()
	obs.ServiceVersion = version.Version
	obs.Environment = cfg.Telemetry.Environment
	obs.OTLPEndpoint = cfg.Telemetry.OTLPEndpoint
	obs.OTLPHeaders = observability.ParseOTLPHeaders(cfg.Telemetry.OTLPHeaders)
	obs.OTLPInsecure = cfg.Telemetry.Insecure
	obs.SampleRatio = cfg.Telemetry.SampleRatio
	obs.LogLevel = observability.ParseLevel(cfg.Log.Level)
	obs.LogJSON = cfg.Log.JSON

	switch {
	case a.verbose:
		obs.LogLevel = slog.LevelDebug
		obs.TraceVerbose = true
	case a.quiet:
		obs.LogLevel = slog.LevelError
	}

	if cmd.Annotations[annotationMode] == string(observability.ModeMCP) {
		if a.metricsAddr == "" {
			a.metricsAddr = cfg.MCP.MetricsAddr
		}

		obs.Mode = observability.ModeMCP
		obs.LogJSON = true
		obs.Prometheus = a.metricsAddr != ""
	}

	providers, err := observability.Init(obs)
	if err != nil {
		return fmt.Errorf("init observability: %w", err)
	}

	a.providers = providers
	a.logger = providers.Logger

	return nil
}

func (a *app) close() error {
	if a.providers.Shutdown == nil {
		return nil
	}

	if err := a.providers.Shutdown(context.Background()); err != nil {
		return fmt.Errorf("observability shutdown: %w", err)
	}

	return nil
}

// semtreeParser builds the parser on first use with the configured
// extension overrides and custom rule tables.
func (a *app) semtreeParser() (*semtree.Parser, error) {
	if a.parser != nil {
		return a.parser, nil
	}

	tables := make([]*rules.Table, 0, len(a.cfg.Languages.Rules))

	for _, path := range a.cfg.Languages.Rules {
		t, err := rules.LoadFile(path)
		if err != nil {
			return nil, err
		}

		tables = append(tables, t)
	}

	p, err := semtree.NewParser(
		semtree.WithLogger(a.logger),
		semtree.WithExtensions(a.cfg.ExtensionOverrides()),
		semtree.WithTables(tables...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize parser: %w", err)
	}

	a.parser = p

	return p, nil
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
