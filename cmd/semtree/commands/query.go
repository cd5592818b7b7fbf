package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/semtree/internal/config"
	"github.com/Sumatoshi-tech/semtree/pkg/semtree/batch"
	"github.com/Sumatoshi-tech/semtree/pkg/semtree/query"
)

type queryOptions struct {
	language string
	format   string
	workers  int
}

func (a *app) queryCommand() *cobra.Command {
	opts := queryOptions{}

	cmd := &cobra.Command{
		Use:   "query <xpath> [paths...]",
		Short: "Evaluate an XPath expression against semantic trees",
		Long: `Evaluate an XPath 1.0 expression against the semantic tree of every file.

Paths default to the current directory; directories are walked for supported
files and glob patterns are expanded. Node-set results are printed one match
per line with its position; scalar results such as count(...) per file.

Examples:
  semtree query '//method[public]/name' src/
  semtree query 'count(//class)' -f count '*.java'
  semtree query '//data/services/*/image' -f json docker-compose.yml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("format") {
				switch a.cfg.Output.Format {
				case config.FormatLines, config.FormatJSON, config.FormatCount:
					opts.format = a.cfg.Output.Format
				}
			}

			if opts.workers <= 0 {
				opts.workers = a.cfg.Workers
			}

			return a.runQuery(cmd, args[0], args[1:], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.language, "language", "l", "", "force the language instead of detecting it")
	cmd.Flags().StringVarP(&opts.format, "format", "f", config.FormatLines, "output format (lines, json, count)")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 0, "number of parallel workers (default from config)")

	return cmd
}

func (a *app) runQuery(cmd *cobra.Command, source string, args []string, opts queryOptions) error {
	switch opts.format {
	case config.FormatLines, config.FormatJSON, config.FormatCount:
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, opts.format)
	}

	expr, err := query.Compile(source)
	if err != nil {
		return err
	}

	parser, err := a.semtreeParser()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		args = []string{"."}
	}

	paths, err := batch.Expand(args, parser.IsSupported)
	if err != nil {
		return err
	}

	engine, err := batch.New(parser,
		batch.WithWorkers(opts.workers),
		batch.WithLanguage(opts.language),
		batch.WithLogger(a.logger),
	)
	if err != nil {
		return err
	}

	report, err := engine.Query(cmd.Context(), expr, paths)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	switch opts.format {
	case config.FormatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")

		if err := enc.Encode(report.Summary()); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
	case config.FormatCount:
		fmt.Fprintln(out, formatValue(total(report)))
	default:
		writeLines(out, report)
	}

	if !a.quiet {
		writeSummary(cmd.ErrOrStderr(), report)
	}

	if len(report.Errors) > 0 {
		return fmt.Errorf("%w: %d of %d", ErrFilesFailed, len(report.Errors), len(paths))
	}

	return nil
}

var (
	pathColor  = color.New(color.FgMagenta) //nolint:gochecknoglobals // shared palette.
	posColor   = color.New(color.FgGreen)   //nolint:gochecknoglobals // shared palette.
	nameColor  = color.New(color.FgCyan)    //nolint:gochecknoglobals // shared palette.
	errorColor = color.New(color.FgRed)     //nolint:gochecknoglobals // shared palette.
)

// writeLines prints path:line:col: name value per match and path: value
// per scalar result, in input order.
func writeLines(w io.Writer, report *batch.Report) {
	for i := range report.Results {
		r := &report.Results[i]
		if r.Err != nil {
			continue
		}

		if r.Value != nil {
			pathColor.Fprint(w, r.Path)
			fmt.Fprintf(w, ": %s\n", formatValue(r.Value))

			continue
		}

		for _, m := range r.Matches {
			h := batch.NewHit(r.Path, m)

			pathColor.Fprint(w, h.Path)

			if h.Start != "" {
				fmt.Fprint(w, ":")
				posColor.Fprint(w, h.Start)
			}

			name := h.Name
			if h.Attr != "" {
				name = "@" + h.Attr
			}

			fmt.Fprint(w, ": ")
			nameColor.Fprint(w, name)
			fmt.Fprintf(w, " %s\n", oneLine(h.Value))
		}
	}
}

// total adds node-set sizes and numeric scalar results.
func total(report *batch.Report) float64 {
	sum := float64(report.Matches)

	for _, v := range report.Values() {
		if f, ok := v.(float64); ok {
			sum += f
		}
	}

	return sum
}

func formatValue(v any) string {
	switch x := v.(type) {
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case string:
		return oneLine(x)
	default:
		return fmt.Sprint(x)
	}
}

func writeSummary(w io.Writer, report *batch.Report) {
	fmt.Fprintf(w, "%s matches in %s files (%s) in %s",
		humanize.Comma(int64(report.Matches)),
		humanize.Comma(int64(report.Files)),
		humanize.Bytes(uint64(max(report.Bytes, 0))),
		report.Elapsed.Round(time.Millisecond),
	)

	if n := len(report.Errors); n > 0 {
		errorColor.Fprintf(w, ", %d failed", n)
	}

	fmt.Fprintln(w)
}
