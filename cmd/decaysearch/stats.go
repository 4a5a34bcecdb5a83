package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print transition and decay counts of the reference table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "source: %s\n", opts.app.Config.Table.Source)
			fmt.Fprintf(out, "%-6s %11s %6s\n", "type", "transitions", "decays")
			for _, s := range opts.app.Stats() {
				fmt.Fprintf(out, "%-6s %11d %6d\n", s.Radiation, s.Transitions, s.Decays)
			}
			return nil
		},
	}
}
