package usecases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/0xcro3dile/decaysearch-go/internal/domain/entities"
	"github.com/0xcro3dile/decaysearch-go/internal/domain/ports"
)

// ErrInvalidRecord marks a reference record that breaks the table invariants.
var ErrInvalidRecord = errors.New("invalid reference record")

// RecordError reports which record of a source failed validation.
type RecordError struct {
	Index  int
	Reason string
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record %d: %s", e.Index, e.Reason)
}

func (e *RecordError) Unwrap() error { return ErrInvalidRecord }

// TableLoader reads reference records from a source and prepares them for
// an immutable table: every record is validated and its numeric energy is
// parsed once so sorting never has to.
type TableLoader struct {
	source ports.TransitionSource
	logger *slog.Logger

	loaded []entities.Transition
}

// NewTableLoader creates a TableLoader with an injected source.
func NewTableLoader(source ports.TransitionSource, logger *slog.Logger) *TableLoader {
	if logger == nil {
		logger = slog.Default()
	}
	return &TableLoader{source: source, logger: logger}
}

// Load returns the validated records of the source in stored order. The
// source is read once; later calls return the same read-only slice.
func (l *TableLoader) Load(ctx context.Context) ([]entities.Transition, error) {
	if l.loaded != nil {
		return l.loaded, nil
	}
	transitions, err := l.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", l.source.Name(), err)
	}
	if len(transitions) == 0 {
		return nil, fmt.Errorf("loading %s: %w", l.source.Name(), &RecordError{Index: 0, Reason: "table is empty"})
	}

	for i := range transitions {
		if err := prepareTransition(&transitions[i]); err != nil {
			return nil, fmt.Errorf("loading %s: %w", l.source.Name(), &RecordError{Index: i, Reason: err.Error()})
		}
	}

	l.logger.Info("reference table loaded", "source", l.source.Name(), "transitions", len(transitions))
	l.loaded = transitions
	return transitions, nil
}

// Export writes the validated records to sink, reusing an earlier Load.
func (l *TableLoader) Export(ctx context.Context, sink ports.TransitionSink) (int, error) {
	transitions, err := l.Load(ctx)
	if err != nil {
		return 0, err
	}
	if err := sink.Save(ctx, transitions); err != nil {
		return 0, fmt.Errorf("saving table: %w", err)
	}
	return len(transitions), nil
}

func prepareTransition(t *entities.Transition) error {
	if t.Decay == "" {
		return errors.New("empty decay identifier")
	}
	v, err := ParseEnergyText(t.EnergyText)
	if err != nil {
		return err
	}
	t.EnergyKeV = v
	if !t.Valid() {
		return fmt.Errorf("bounds [%g, %g] are not a valid interval", t.LowerKeV, t.UpperKeV)
	}
	return nil
}

// ParseEnergyText parses the textual energy of a reference record.
func ParseEnergyText(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("energy %q is not numeric", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("energy %q is not finite", s)
	}
	return v, nil
}
