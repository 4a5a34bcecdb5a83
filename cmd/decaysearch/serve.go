package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	httpserver "github.com/0xcro3dile/decaysearch-go/internal/infrastructure/http"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the search form and JSON API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := opts.app
			if addr == "" {
				addr = a.Config.Server.Addr()
			}

			var gatherer prometheus.Gatherer
			if !a.Config.Metrics.Disabled {
				gatherer = a.Registry
			}

			server, err := httpserver.NewServer(a.Search, a.Table, gatherer, addr, a.Logger,
				httpserver.WithShutdownTimeout(a.Config.Server.ShutdownTimeout),
				httpserver.WithDefaults(a.Radiation, a.PrintMode),
			)
			if err != nil {
				return err
			}
			return server.Start(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from server.host and server.port)")
	return cmd
}
