// Package ports defines interfaces for external dependencies.
// Usecases depend on these abstractions, not on the concrete table storage,
// metrics backend or file system watcher. Adapters implement these interfaces.
package ports

import (
	"context"
	"time"

	"github.com/0xcro3dile/decaysearch-go/internal/domain/entities"
)

// TransitionTable is the read-only reference table. It is built once and then
// shared by every search; implementations must not mutate after construction.
type TransitionTable interface {
	// Each calls fn for every transition of the given radiation type, in table order.
	Each(radiation entities.RadiationType, fn func(t entities.Transition))

	// Decay returns all transitions of one decay dataset with the given radiation type.
	Decay(id entities.DecayID, radiation entities.RadiationType) []entities.Transition

	// Len returns the number of transitions in the table.
	Len() int

	// DecayCount returns the number of distinct decay identifiers for a radiation type.
	DecayCount(radiation entities.RadiationType) int
}

// TransitionSource produces the raw transition records a table is built from.
type TransitionSource interface {
	// Load returns every record of the source in stored order.
	Load(ctx context.Context) ([]entities.Transition, error)

	// Name describes the source for logs ("embedded", a file path, ...).
	Name() string
}

// TransitionSink persists a loaded table, e.g. for export to another format.
type TransitionSink interface {
	Save(ctx context.Context, transitions []entities.Transition) error
}

// SearchOutcome labels how a search ended.
type SearchOutcome string

const (
	OutcomeMatched      SearchOutcome = "matched"
	OutcomeNoResults    SearchOutcome = "no_results"
	OutcomeInvalidQuery SearchOutcome = "invalid_query"
)

// SearchRecorder observes completed searches (metrics).
type SearchRecorder interface {
	ObserveSearch(radiation entities.RadiationType, outcome SearchOutcome, energies int, elapsed time.Duration)
}

// QueryLoader reads a stored query (a text file of energy lines).
type QueryLoader interface {
	// Load reads the query text from path.
	Load(ctx context.Context, path string) (string, error)

	// SupportedExtensions returns file extensions this loader handles.
	SupportedExtensions() []string
}

// FileWatcher monitors files for changes.
type FileWatcher interface {
	// Watch starts monitoring path and emits events until ctx is done.
	Watch(ctx context.Context, path string) (<-chan FileEvent, error)

	// Stop stops the watcher.
	Stop() error
}

// FileEvent represents a file system change.
type FileEvent struct {
	Path      string
	Operation FileOperation
}

// FileOperation is the type of file change.
type FileOperation int

const (
	FileCreated FileOperation = iota
	FileModified
	FileDeleted
)
