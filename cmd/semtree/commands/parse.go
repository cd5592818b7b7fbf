package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/semtree/internal/config"
	"github.com/Sumatoshi-tech/semtree/pkg/semtree"
	"github.com/Sumatoshi-tech/semtree/pkg/semtree/batch"
	"github.com/Sumatoshi-tech/semtree/pkg/semtree/node"
)

// ErrUnsupportedFormat indicates an output format the command does not render.
var ErrUnsupportedFormat = errors.New("unsupported format")

const (
	stdinName    = "<stdin>"
	prettyIndent = "  "
)

type treeOptions struct {
	format string
	pretty bool
	spans  bool
}

func (a *app) parseCommand() *cobra.Command {
	var language string

	opts := treeOptions{}

	cmd := &cobra.Command{
		Use:   "parse [files...]",
		Short: "Convert source files into semantic trees",
		Long: `Convert source files into semantic XML (or JSON) trees.

Directories are walked for supported files and glob patterns are expanded.
With no arguments the content is read from stdin.

Examples:
  semtree parse Program.cs                # XML tree on stdout
  semtree parse --pretty --spans src/     # indented, with line:column spans
  semtree parse -f json config.yaml       # JSON rendering
  cat build.gradle.kts | semtree parse -l kotlin`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.treeDefaults(cmd, &opts)

			if opts.format != config.FormatXML && opts.format != config.FormatJSON {
				return fmt.Errorf("%w: %s", ErrUnsupportedFormat, opts.format)
			}

			parser, err := a.semtreeParser()
			if err != nil {
				return err
			}

			if len(args) == 0 {
				return a.parseStdin(cmd, parser, language, opts)
			}

			return a.parseFiles(cmd.Context(), parser, args, language, opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&language, "language", "l", "", "force the language instead of detecting it")
	cmd.Flags().StringVarP(&opts.format, "format", "f", config.FormatXML, "output format (xml, json)")
	cmd.Flags().BoolVar(&opts.pretty, "pretty", false, "indent XML output")
	cmd.Flags().BoolVar(&opts.spans, "spans", false, "add start/end line:column attributes")

	return cmd
}

// treeDefaults fills flags the user did not set from the configuration.
func (a *app) treeDefaults(cmd *cobra.Command, opts *treeOptions) {
	flags := cmd.Flags()

	if !flags.Changed("format") {
		switch a.cfg.Output.Format {
		case config.FormatXML, config.FormatJSON:
			opts.format = a.cfg.Output.Format
		}
	}

	if !flags.Changed("pretty") {
		opts.pretty = a.cfg.Output.Pretty
	}

	if !flags.Changed("spans") {
		opts.spans = a.cfg.Output.Spans
	}
}

func (a *app) parseStdin(cmd *cobra.Command, parser *semtree.Parser, language string, opts treeOptions) error {
	content, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}

	var f *semtree.File
	if language != "" {
		f, err = parser.ParseAs(cmd.Context(), language, stdinName, content)
	} else {
		f, err = parser.Parse(cmd.Context(), stdinName, content)
	}

	if err != nil {
		return fmt.Errorf("parse error: %w", err)
	}

	return writeTree(cmd.OutOrStdout(), f, opts)
}

func (a *app) parseFiles(ctx context.Context, parser *semtree.Parser, args []string, language string, opts treeOptions, w io.Writer) error {
	paths, err := batch.Expand(args, parser.IsSupported)
	if err != nil {
		return err
	}

	engine, err := batch.New(parser,
		batch.WithWorkers(a.cfg.Workers),
		batch.WithLanguage(language),
		batch.WithLogger(a.logger),
	)
	if err != nil {
		return err
	}

	report, err := engine.Parse(ctx, paths)
	if err != nil {
		return err
	}

	for i := range report.Results {
		r := &report.Results[i]
		if r.File == nil {
			continue
		}

		if r.File.Partial {
			a.logger.WarnContext(ctx, "syntax errors recovered", "path", r.Path, "language", r.Language)
		}

		if err := writeTree(w, r.File, opts); err != nil {
			return err
		}
	}

	if len(report.Errors) > 0 {
		return fmt.Errorf("%w: %d of %d", ErrFilesFailed, len(report.Errors), len(paths))
	}

	return nil
}

func writeTree(w io.Writer, f *semtree.File, opts treeOptions) error {
	if opts.format == config.FormatJSON {
		if err := f.Doc.WriteJSON(w, f.Root, opts.spans); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}

		return nil
	}

	xmlOpts := node.XMLOptions{Spans: opts.spans}
	if opts.pretty {
		xmlOpts.Indent = prettyIndent
	}

	if err := f.WriteXML(w, xmlOpts); err != nil {
		return fmt.Errorf("failed to write XML: %w", err)
	}

	// indented output already ends with a newline
	if opts.pretty {
		return nil
	}

	_, err := io.WriteString(w, "\n")

	return err
}
