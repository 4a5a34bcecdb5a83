// Package app wires configuration, the reference table and the use cases
// into one application context shared by every command.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/0xcro3dile/decaysearch-go/internal/adapters/reftable"
	"github.com/0xcro3dile/decaysearch-go/internal/config"
	"github.com/0xcro3dile/decaysearch-go/internal/domain/entities"
	"github.com/0xcro3dile/decaysearch-go/internal/domain/ports"
	"github.com/0xcro3dile/decaysearch-go/internal/domain/usecases"
	"github.com/0xcro3dile/decaysearch-go/internal/infrastructure/metrics"
)

// App is the application context. The table is loaded once in New and is
// read-only afterwards, so an App may be shared between goroutines.
type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	Table    *reftable.InMemoryTable
	Loader   *usecases.TableLoader
	Search   *usecases.SearchUseCase
	Registry *prometheus.Registry

	// defaults from config
	Radiation entities.RadiationType
	PrintMode entities.PrintMode

	closers []io.Closer
}

// New loads the configured reference table and builds the search pipeline.
// A table that cannot be read or validated is returned as an error.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	radiation, err := entities.ParseRadiationType(cfg.Search.RadiationType)
	if err != nil {
		return nil, err
	}
	mode, err := entities.ParsePrintMode(cfg.Search.PrintMode)
	if err != nil {
		return nil, err
	}

	a := &App{
		Config:    cfg,
		Logger:    logger,
		Registry:  prometheus.NewRegistry(),
		Radiation: radiation,
		PrintMode: mode,
	}

	source, err := a.openSource(cfg.Table)
	if err != nil {
		return nil, err
	}
	a.Loader = usecases.NewTableLoader(source, logger)

	transitions, err := a.Loader.Load(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Table = reftable.NewInMemoryTable(transitions)

	a.Registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.NewRecorder(a.Registry)
	recorder.ObserveTable(a.Table)

	matcher := usecases.NewMatcher(a.Table,
		usecases.WithParallelAnnotation(cfg.Search.Parallel),
		usecases.WithMatcherLogger(logger),
	)
	a.Search = usecases.NewSearchUseCase(matcher, recorder, logger)

	return a, nil
}

func (a *App) openSource(cfg config.TableConfig) (ports.TransitionSource, error) {
	switch cfg.Source {
	case config.SourceBlob:
		return reftable.NewBlobFileSource(cfg.Path), nil
	case config.SourceSQLite:
		store, err := reftable.NewSQLiteStore(cfg.Path)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, store)
		return store, nil
	case config.SourceEmbedded, "":
		return reftable.NewEmbeddedSource(), nil
	default:
		return nil, fmt.Errorf("unknown table source %q", cfg.Source)
	}
}

// Request builds a search request using the configured defaults.
func (a *App) Request(query string) usecases.SearchRequest {
	return usecases.SearchRequest{Query: query, Radiation: a.Radiation, PrintMode: a.PrintMode}
}

// TableStats summarizes the loaded table for one radiation type.
type TableStats struct {
	Radiation   entities.RadiationType
	Transitions int
	Decays      int
}

// Stats returns per-type counts of the loaded table.
func (a *App) Stats() []TableStats {
	var out []TableStats
	for _, r := range []entities.RadiationType{entities.Gamma, entities.Alpha} {
		n := 0
		a.Table.Each(r, func(entities.Transition) { n++ })
		out = append(out, TableStats{Radiation: r, Transitions: n, Decays: a.Table.DecayCount(r)})
	}
	return out
}

// Export copies the loaded table into a SQLite database at path without
// reading the table source again.
func (a *App) Export(ctx context.Context, path string) (int, error) {
	store, err := reftable.NewSQLiteStore(path)
	if err != nil {
		return 0, err
	}
	defer store.Close()

	n, err := a.Loader.Export(ctx, store)
	if err != nil {
		return 0, err
	}
	stored, err := store.Count(ctx)
	if err != nil {
		return 0, err
	}
	if stored != n {
		return 0, fmt.Errorf("exporting to %s: wrote %d transitions, database holds %d", path, n, stored)
	}
	a.Logger.Info("reference table exported", "path", path, "transitions", n)
	return n, nil
}

// Close releases resources held by the table source.
func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}
