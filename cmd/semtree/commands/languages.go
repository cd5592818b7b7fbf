package commands

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func (a *app) languagesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List supported languages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			parser, err := a.semtreeParser()
			if err != nil {
				return err
			}

			tbl := table.NewWriter()
			tbl.SetStyle(table.StyleLight)
			tbl.Style().Options.DrawBorder = false
			tbl.Style().Options.SeparateColumns = false

			tbl.AppendHeader(table.Row{"Language", "Grammar", "Extensions", "Data view"})

			tables := parser.Loader().Tables()
			for _, t := range tables {
				data := ""
				if t.Dual() {
					data = t.Format
				}

				tbl.AppendRow(table.Row{t.Language, t.Grammar, strings.Join(t.Extensions, " "), data})
			}

			tbl.AppendFooter(table.Row{fmt.Sprintf("Total: %d languages", len(tables))})

			fmt.Fprintln(cmd.OutOrStdout(), tbl.Render())

			return nil
		},
	}
}
