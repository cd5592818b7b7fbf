package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/semtree/internal/config"
	"github.com/Sumatoshi-tech/semtree/pkg/semtree"
	"github.com/Sumatoshi-tech/semtree/pkg/semtree/node"
	"github.com/Sumatoshi-tech/semtree/pkg/semtree/rules"
)

const (
	diffArgCount = 2

	formatText = "text"
)

func (a *app) diffCommand() *cobra.Command {
	var language, format string

	var spans bool

	cmd := &cobra.Command{
		Use:   "diff <a> <b>",
		Short: "Compare the semantic trees of two files",
		Long: `Compare the semantic trees of two files and list structural changes:
added and removed elements and modified text or attributes. Changed text is
rendered as an inline character diff.

Positions are ignored unless --spans is set, so reformatting alone does not
produce changes.

Examples:
  semtree diff old/Calc.cs new/Calc.cs
  semtree diff -f json a.yaml b.yaml`,
		Args: cobra.ExactArgs(diffArgCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser, err := a.semtreeParser()
			if err != nil {
				return err
			}

			before, err := parseOne(cmd, parser, args[0], language)
			if err != nil {
				return err
			}

			after, err := parseOne(cmd, parser, args[1], language)
			if err != nil {
				return err
			}

			changes := node.Diff(before.Doc, before.Root, after.Doc, after.Root, node.DiffOptions{
				IgnoreSpans: !spans,
				IgnoreAttrs: []string{rules.AttrPath},
			})

			switch format {
			case formatText:
				writeChanges(cmd.OutOrStdout(), changes, a.quiet)

				return nil
			case config.FormatJSON:
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")

				return enc.Encode(changes)
			default:
				return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
			}
		},
	}

	cmd.Flags().StringVarP(&language, "language", "l", "", "force the language of both files")
	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format (text, json)")
	cmd.Flags().BoolVar(&spans, "spans", false, "report position changes too")

	return cmd
}

func parseOne(cmd *cobra.Command, parser *semtree.Parser, path, language string) (*semtree.File, error) {
	src, err := readSource(path)
	if err != nil {
		return nil, err
	}

	var f *semtree.File
	if language != "" {
		f, err = parser.ParseAs(cmd.Context(), language, src.path, src.content)
	} else {
		f, err = parser.Parse(cmd.Context(), src.path, src.content)
	}

	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	return f, nil
}

func writeChanges(w io.Writer, changes []node.Change, quiet bool) {
	if len(changes) == 0 {
		if !quiet {
			fmt.Fprintln(w, "no structural changes")
		}

		return
	}

	dmp := diffmatchpatch.New()

	for _, c := range changes {
		switch c.Type {
		case node.ChangeAdded:
			color.New(color.FgGreen).Fprintf(w, "+ %s %s\n", c.Path, c.After)
		case node.ChangeRemoved:
			color.New(color.FgRed).Fprintf(w, "- %s %s\n", c.Path, c.Before)
		case node.ChangeModified:
			diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(c.Before, c.After, false))

			color.New(color.FgYellow).Fprintf(w, "~ %s ", c.Path)
			fmt.Fprintln(w, renderInline(dmp, diffs))
		}
	}

	fmt.Fprintf(w, "%d changes\n", len(changes))
}

// renderInline shows a character diff with ANSI colors, or with [-removed-]
// and {+added+} markers when color is off.
func renderInline(dmp *diffmatchpatch.DiffMatchPatch, diffs []diffmatchpatch.Diff) string {
	if !color.NoColor {
		return dmp.DiffPrettyText(diffs)
	}

	var sb strings.Builder

	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			sb.WriteString("{+" + d.Text + "+}")
		case diffmatchpatch.DiffDelete:
			sb.WriteString("[-" + d.Text + "-]")
		case diffmatchpatch.DiffEqual:
			sb.WriteString(d.Text)
		}
	}

	return sb.String()
}
