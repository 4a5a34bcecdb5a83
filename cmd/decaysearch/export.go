package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export <sqlite-path>",
		Short: "Write the reference table into a SQLite database",
		Long: `Write the reference table into a SQLite database.

The database can be used as the table source with table.source: sqlite.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := opts.app.Export(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d transitions to %s\n", n, args[0])
			return nil
		},
	}
}
