package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) rawCommand() *cobra.Command {
	var language string

	var named bool

	cmd := &cobra.Command{
		Use:   "raw <file>",
		Short: "Dump the concrete syntax tree of a file as JSON",
		Long: `Dump the tree-sitter concrete syntax tree of a file as JSON, with node
kinds, field names and positions. Useful when writing rule tables.

--language accepts any registered language or any tree-sitter grammar name
of the forest, so grammars without a rule table can be inspected too.

Examples:
  semtree raw Program.cs
  semtree raw --named -l hcl main.tf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser, err := a.semtreeParser()
			if err != nil {
				return err
			}

			src, err := readSource(args[0])
			if err != nil {
				return err
			}

			dump, err := parser.Raw(cmd.Context(), language, src.path, src.content, named)
			if err != nil {
				return fmt.Errorf("parse error in %s: %w", args[0], err)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")

			if err := enc.Encode(dump); err != nil {
				return fmt.Errorf("failed to encode JSON: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&language, "language", "l", "", "language or tree-sitter grammar name")
	cmd.Flags().BoolVar(&named, "named", false, "omit anonymous tokens")

	return cmd
}
