package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/0xcro3dile/decaysearch-go/internal/app"
	"github.com/0xcro3dile/decaysearch-go/internal/config"
)

// rootOptions holds global flags and the application built from them.
type rootOptions struct {
	configPath string
	logLevel   string

	app *app.App
}

func newRootCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decaysearch",
		Short: "Find radioactive decays that explain observed radiation energies",
		Long: `decaysearch matches observed gamma or alpha energies against a reference
table of decay transitions and lists every decay that explains all of them.

A query holds one energy per line: [maybe|definitely] value unit [uncertainty%]
Units are eV, keV and MeV; text after # is a comment.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config.yaml (sets CONFIG_PATH)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override log.level (debug, info, warn, error)")

	cmd.AddCommand(
		newSearchCmd(opts),
		newWatchCmd(opts),
		newServeCmd(opts),
		newExportCmd(opts),
		newStatsCmd(opts),
	)
	return cmd
}

// execute runs cmd and then releases the application. cobra skips post-run
// hooks when a command fails, so the close happens here.
func execute(ctx context.Context, cmd *cobra.Command, opts *rootOptions) error {
	err := cmd.ExecuteContext(ctx)
	if closeErr := opts.close(); err == nil {
		err = closeErr
	}
	return err
}

func (o *rootOptions) close() error {
	if o.app == nil {
		return nil
	}
	err := o.app.Close()
	o.app = nil
	return err
}

// setup loads configuration and the reference table. A table that cannot
// be loaded stops the command.
func (o *rootOptions) setup(cmd *cobra.Command) error {
	if o.configPath != "" {
		if err := os.Setenv("CONFIG_PATH", o.configPath); err != nil {
			return err
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}

	logger := app.NewLogger(cfg.Log, cmd.ErrOrStderr())
	a, err := app.New(cmd.Context(), cfg, logger)
	if err != nil {
		logger.Error("loading reference table", "error", err)
		return err
	}
	o.app = a
	return nil
}
