package usecases

import (
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/0xcro3dile/decaysearch-go/internal/domain/entities"
	"github.com/0xcro3dile/decaysearch-go/internal/domain/ports"
)

// Interval is a closed [Lower, Upper] range in keV.
type Interval struct {
	Lower float64
	Upper float64
}

// Overlaps reports whether two closed intervals share at least one point.
// The test is symmetric: either lower bound lies inside the other interval.
func Overlaps(a, b Interval) bool {
	return (b.Lower <= a.Lower && a.Lower <= b.Upper) || (a.Lower <= b.Lower && b.Lower <= a.Upper)
}

func energyInterval(e entities.Energy) Interval {
	return Interval{Lower: e.LowerKeV, Upper: e.UpperKeV}
}

func transitionInterval(t entities.Transition) Interval {
	return Interval{Lower: t.LowerKeV, Upper: t.UpperKeV}
}

// Matcher finds decay datasets that explain every energy of a query.
type Matcher struct {
	table    ports.TransitionTable
	parallel bool
	logger   *slog.Logger
}

// MatcherOption configures a Matcher.
type MatcherOption func(*Matcher)

// WithParallelAnnotation annotates candidate decays concurrently.
func WithParallelAnnotation(enabled bool) MatcherOption {
	return func(m *Matcher) { m.parallel = enabled }
}

// WithMatcherLogger sets the logger used for search diagnostics.
func WithMatcherLogger(logger *slog.Logger) MatcherOption {
	return func(m *Matcher) { m.logger = logger }
}

// NewMatcher creates a Matcher over a read-only table.
func NewMatcher(table ports.TransitionTable, opts ...MatcherOption) *Matcher {
	m := &Matcher{table: table, logger: slog.Default()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Search returns the candidate decays for energies, or false when nothing was
// entered or no single decay explains all of them.
func (m *Matcher) Search(energies []entities.Energy, radiation entities.RadiationType) (entities.SearchResultSet, bool) {
	if len(energies) == 0 {
		return nil, false
	}

	decays := m.decaysExplaining(energies[0], radiation)
	for _, e := range energies[1:] {
		if len(decays) == 0 {
			break
		}
		current := m.decaysExplaining(e, radiation)
		for id := range decays {
			if _, ok := current[id]; !ok {
				delete(decays, id)
			}
		}
	}

	m.logger.Debug("search finished", "radiation", radiation.String(), "energies", len(energies), "decays", len(decays))
	if len(decays) == 0 {
		return nil, false
	}

	ids := make([]entities.DecayID, 0, len(decays))
	for id := range decays {
		ids = append(ids, id)
	}

	lists := make([][]entities.TransitionResult, len(ids))
	annotate := func(i int) {
		lists[i] = annotateTransitions(energies, m.table.Decay(ids[i], radiation))
	}
	if m.parallel && len(ids) > 1 {
		var g errgroup.Group
		for i := range ids {
			g.Go(func() error {
				annotate(i)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i := range ids {
			annotate(i)
		}
	}

	results := make(entities.SearchResultSet, len(ids))
	for i, id := range ids {
		results[id] = lists[i]
	}
	return results, true
}

// decaysExplaining is the decay-level predicate: the set of decay identifiers
// that have at least one transition of the radiation type overlapping e.
// Search intersects these sets across all energies (AND).
func (m *Matcher) decaysExplaining(e entities.Energy, radiation entities.RadiationType) map[entities.DecayID]struct{} {
	query := energyInterval(e)
	out := make(map[entities.DecayID]struct{})
	m.table.Each(radiation, func(t entities.Transition) {
		if Overlaps(query, transitionInterval(t)) {
			out[t.Decay] = struct{}{}
		}
	})
	return out
}

// satisfiesAnyEnergy is the transition-level predicate: a single transition is
// flagged when it overlaps ANY query energy (OR).
func satisfiesAnyEnergy(energies []entities.Energy, t entities.Transition) bool {
	ti := transitionInterval(t)
	for _, e := range energies {
		if Overlaps(energyInterval(e), ti) {
			return true
		}
	}
	return false
}

func annotateTransitions(energies []entities.Energy, transitions []entities.Transition) []entities.TransitionResult {
	out := make([]entities.TransitionResult, len(transitions))
	for i, t := range transitions {
		out[i] = entities.TransitionResult{Transition: t, Matched: satisfiesAnyEnergy(energies, t)}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Transition.EnergyKeV < out[j].Transition.EnergyKeV
	})
	return out
}
