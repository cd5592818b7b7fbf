package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/semtree/pkg/semtree/grammar"
	"github.com/Sumatoshi-tech/semtree/pkg/semtree/rules"
)

// ErrInvalidRules is returned when a rule table file fails validation.
var ErrInvalidRules = errors.New("invalid rule tables")

func (a *app) rulesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Work with custom rule tables",
	}

	cmd.AddCommand(a.rulesValidateCommand(), rulesSchemaCommand())

	return cmd
}

func (a *app) rulesValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file...>",
		Short: "Validate YAML rule table files",
		Long: `Validate YAML rule table files against the rule table schema, check the
table for conflicting rules and make sure its grammar is available.

Examples:
  semtree rules validate rules/gomod.yaml
  semtree rules validate rules/*.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0

			for _, path := range args {
				if !a.validateRules(cmd.OutOrStdout(), path) {
					failed++
				}
			}

			if failed > 0 {
				return fmt.Errorf("%w: %d of %d", ErrInvalidRules, failed, len(args))
			}

			return nil
		},
	}
}

func (a *app) validateRules(w io.Writer, path string) bool {
	t, err := rules.LoadFile(path)
	if err == nil {
		_, err = grammar.Language(t.Grammar)
	}

	if err == nil {
		if !a.quiet {
			color.New(color.FgGreen).Fprintf(w, "%s: ok (%s, grammar %s)\n", path, t.Language, t.Grammar)
		}

		return true
	}

	color.New(color.FgRed).Fprintf(w, "%s: invalid\n", path)

	var schemaErr *rules.SchemaError
	if errors.As(err, &schemaErr) {
		for _, p := range schemaErr.Problems {
			color.New(color.FgRed).Fprintf(w, "  - %s: %s\n", p.Field, p.Description)
		}

		return false
	}

	color.New(color.FgRed).Fprintf(w, "  - %v\n", err)

	return false
}

func rulesSchemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of rule table files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := cmd.OutOrStdout().Write(rules.Schema())

			return err
		},
	}
}
