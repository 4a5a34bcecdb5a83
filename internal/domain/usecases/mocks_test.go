package usecases

import (
	"context"
	"sync"
	"time"

	"github.com/0xcro3dile/decaysearch-go/internal/domain/entities"
	"github.com/0xcro3dile/decaysearch-go/internal/domain/ports"
)

// mockTable implements ports.TransitionTable over a slice.
type mockTable struct {
	transitions []entities.Transition
}

func (m *mockTable) Each(radiation entities.RadiationType, fn func(t entities.Transition)) {
	for _, t := range m.transitions {
		if t.Radiation == radiation {
			fn(t)
		}
	}
}

func (m *mockTable) Decay(id entities.DecayID, radiation entities.RadiationType) []entities.Transition {
	var out []entities.Transition
	for _, t := range m.transitions {
		if t.Decay == id && t.Radiation == radiation {
			out = append(out, t)
		}
	}
	return out
}

func (m *mockTable) Len() int { return len(m.transitions) }

func (m *mockTable) DecayCount(radiation entities.RadiationType) int {
	seen := map[entities.DecayID]struct{}{}
	m.Each(radiation, func(t entities.Transition) { seen[t.Decay] = struct{}{} })
	return len(seen)
}

// mockSource implements ports.TransitionSource.
type mockSource struct {
	transitions []entities.Transition
	err         error
	loads       int
}

func (m *mockSource) Load(ctx context.Context) ([]entities.Transition, error) {
	m.loads++
	if m.err != nil {
		return nil, m.err
	}
	out := make([]entities.Transition, len(m.transitions))
	copy(out, m.transitions)
	return out, nil
}

func (m *mockSource) Name() string { return "mock" }

// mockSink implements ports.TransitionSink.
type mockSink struct {
	saved []entities.Transition
	err   error
}

func (m *mockSink) Save(ctx context.Context, transitions []entities.Transition) error {
	if m.err != nil {
		return m.err
	}
	m.saved = transitions
	return nil
}

type observation struct {
	radiation entities.RadiationType
	outcome   ports.SearchOutcome
	energies  int
}

// mockRecorder implements ports.SearchRecorder.
type mockRecorder struct {
	mu   sync.Mutex
	seen []observation
}

func (m *mockRecorder) ObserveSearch(radiation entities.RadiationType, outcome ports.SearchOutcome, energies int, elapsed time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seen = append(m.seen, observation{radiation: radiation, outcome: outcome, energies: energies})
}

// gamma builds a prepared gamma transition for decay id.
func gamma(id entities.DecayID, energy string, lower, upper float64) entities.Transition {
	v, _ := ParseEnergyText(energy)
	return entities.Transition{
		Decay:           id,
		Radiation:       entities.Gamma,
		EnergyText:      energy,
		UncertaintyText: "1",
		LowerKeV:        lower,
		UpperKeV:        upper,
		EnergyKeV:       v,
	}
}

// sampleTable holds decay D1 with gammas at [6.9,7.0] and [215,216] keV,
// disjoint decay D2 with a single gamma near 500 keV, and an alpha line of D1.
func sampleTable() *mockTable {
	alpha := gamma("D1", "5000", 4999, 5001)
	alpha.Radiation = entities.Alpha
	return &mockTable{transitions: []entities.Transition{
		gamma("D1", "215.5", 215, 216),
		gamma("D2", "500.0", 499.5, 500.5),
		gamma("D1", "6.95", 6.9, 7.0),
		alpha,
	}}
}
