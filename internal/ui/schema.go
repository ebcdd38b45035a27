package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/ponto/internal/report"
)

func (a *App) schemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of calc --output json",
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := report.Schema()
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", b)
			return nil
		},
	}
}
