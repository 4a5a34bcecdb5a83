package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/0xcro3dile/decaysearch-go/internal/adapters/filewatcher"
	"github.com/0xcro3dile/decaysearch-go/internal/adapters/loader"
	"github.com/0xcro3dile/decaysearch-go/internal/domain/ports"
)

func newWatchCmd(opts *rootOptions) *cobra.Command {
	var flags searchFlags

	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Re-run the search whenever a query file is saved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			path := args[0]
			logger := opts.app.Logger
			out := cmd.OutOrStdout()

			highlighter, err := newHighlighter(cmd, flags.color)
			if err != nil {
				return err
			}
			var queries ports.QueryLoader = loader.NewMultiLoader()

			run := func() error {
				query, err := queries.Load(ctx, path)
				if err != nil {
					return err
				}
				req, err := flags.request(opts, query)
				if err != nil {
					return err
				}
				err = runSearch(ctx, opts, out, highlighter, req)
				if errors.Is(err, errInvalidQuery) {
					return nil
				}
				return err
			}

			fsw, err := filewatcher.NewFSNotifyWatcher(logger)
			if err != nil {
				return fmt.Errorf("creating watcher: %w", err)
			}
			var watcher ports.FileWatcher = fsw
			defer watcher.Stop()

			events, err := watcher.Watch(ctx, path)
			if err != nil {
				return fmt.Errorf("watching %s: %w", path, err)
			}
			logger.Info("watching query file", "path", path)

			if err := run(); err != nil {
				logger.Warn("initial search failed", "path", path, "error", err)
			}

			for event := range events {
				switch event.Operation {
				case ports.FileCreated, ports.FileModified:
					fmt.Fprintln(out, "---")
					if err := run(); err != nil {
						logger.Warn("search failed", "path", path, "error", err)
					}
				case ports.FileDeleted:
					logger.Warn("query file removed; waiting for it to reappear", "path", path)
				}
			}
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
