// Package reftable provides reference transition table adapters.
// Clean Architecture: adapters implementing ports.TransitionTable, ports.TransitionSource
// and ports.TransitionSink.
package reftable

import (
	"github.com/0xcro3dile/decaysearch-go/internal/domain/entities"
)

// InMemoryTable is the immutable table searched by the matcher.
// It is built once and read concurrently without locks.
type InMemoryTable struct {
	byType  map[entities.RadiationType][]entities.Transition
	byDecay map[entities.RadiationType]map[entities.DecayID][]entities.Transition
	total   int
}

// NewInMemoryTable indexes transitions by radiation type and decay.
// Stored order is preserved inside every index.
func NewInMemoryTable(transitions []entities.Transition) *InMemoryTable {
	t := &InMemoryTable{
		byType:  make(map[entities.RadiationType][]entities.Transition),
		byDecay: make(map[entities.RadiationType]map[entities.DecayID][]entities.Transition),
		total:   len(transitions),
	}
	for _, tr := range transitions {
		t.byType[tr.Radiation] = append(t.byType[tr.Radiation], tr)
		decays, ok := t.byDecay[tr.Radiation]
		if !ok {
			decays = make(map[entities.DecayID][]entities.Transition)
			t.byDecay[tr.Radiation] = decays
		}
		decays[tr.Decay] = append(decays[tr.Decay], tr)
	}
	return t
}

// Each calls fn for every transition of the given radiation type.
func (t *InMemoryTable) Each(radiation entities.RadiationType, fn func(tr entities.Transition)) {
	for _, tr := range t.byType[radiation] {
		fn(tr)
	}
}

// Decay returns a copy of the transitions of one decay and radiation type.
func (t *InMemoryTable) Decay(id entities.DecayID, radiation entities.RadiationType) []entities.Transition {
	list := t.byDecay[radiation][id]
	out := make([]entities.Transition, len(list))
	copy(out, list)
	return out
}

// Len returns the number of transitions of every type.
func (t *InMemoryTable) Len() int { return t.total }

// DecayCount returns how many distinct decays emit the given radiation type.
func (t *InMemoryTable) DecayCount(radiation entities.RadiationType) int {
	return len(t.byDecay[radiation])
}
