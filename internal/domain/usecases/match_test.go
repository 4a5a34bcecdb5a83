package usecases

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xcro3dile/decaysearch-go/internal/domain/entities"
)

func point(v float64) entities.Energy {
	return entities.Energy{LowerKeV: v, UpperKeV: v}
}

func mustParse(t *testing.T, query string) []entities.Energy {
	t.Helper()
	energies, err := ParseQuery(query)
	require.NoError(t, err)
	return energies
}

func TestOverlaps_Symmetric(t *testing.T) {
	intervals := []Interval{
		{0, 0}, {1, 1}, {0, 1}, {0.5, 2}, {1, 3}, {2, 2}, {3, 4}, {-1, 0.5}, {1.5, 1.75},
	}
	for _, a := range intervals {
		for _, b := range intervals {
			assert.Equal(t, Overlaps(a, b), Overlaps(b, a), "a=%v b=%v", a, b)
		}
	}
}

func TestOverlaps_ClosedIntervals(t *testing.T) {
	assert.True(t, Overlaps(Interval{1, 2}, Interval{2, 3}), "touching endpoints overlap")
	assert.True(t, Overlaps(Interval{1, 5}, Interval{2, 3}), "containment overlaps")
	assert.True(t, Overlaps(Interval{2, 2}, Interval{2, 2}), "equal points overlap")
	assert.False(t, Overlaps(Interval{1, 2}, Interval{2.0001, 3}))
	assert.False(t, Overlaps(Interval{5, 5}, Interval{1, 4}))
}

func TestMatcher_SingleEnergyFlagsMatchingTransition(t *testing.T) {
	m := NewMatcher(sampleTable())

	results, ok := m.Search(mustParse(t, "6.96 keV 1%"), entities.Gamma)
	require.True(t, ok)
	require.Len(t, results, 1)

	list := results["D1"]
	require.Len(t, list, 2)
	assert.Equal(t, "6.95", list[0].Transition.EnergyText)
	assert.True(t, list[0].Matched)
	assert.Equal(t, "215.5", list[1].Transition.EnergyText)
	assert.False(t, list[1].Matched)
}

func TestMatcher_DisjointDecaysIntersectToNothing(t *testing.T) {
	m := NewMatcher(sampleTable())

	results, ok := m.Search(mustParse(t, "6.95 keV\n500 keV"), entities.Gamma)
	assert.False(t, ok)
	assert.Nil(t, results)
}

func TestMatcher_AllEnergiesExplainedBySameDecay(t *testing.T) {
	m := NewMatcher(sampleTable())

	results, ok := m.Search(mustParse(t, "6.95 keV\n215.2 keV"), entities.Gamma)
	require.True(t, ok)
	require.Contains(t, results, entities.DecayID("D1"))
	assert.NotContains(t, results, entities.DecayID("D2"))
	for _, r := range results["D1"] {
		assert.True(t, r.Matched, "transition %s", r.Transition.EnergyText)
	}
}

func TestMatcher_EmptyEnergies(t *testing.T) {
	m := NewMatcher(sampleTable())

	results, ok := m.Search(nil, entities.Gamma)
	assert.False(t, ok)
	assert.Nil(t, results)
}

func TestMatcher_FiltersByRadiationType(t *testing.T) {
	m := NewMatcher(sampleTable())

	_, ok := m.Search([]entities.Energy{point(5000)}, entities.Gamma)
	assert.False(t, ok, "alpha line must not match a gamma search")

	results, ok := m.Search([]entities.Energy{point(5000)}, entities.Alpha)
	require.True(t, ok)
	require.Len(t, results["D1"], 1, "only alpha transitions of D1 are listed")
	assert.Equal(t, entities.Alpha, results["D1"][0].Transition.Radiation)
}

func TestMatcher_ModifierDoesNotChangeMatching(t *testing.T) {
	m := NewMatcher(sampleTable())

	definite, ok := m.Search(mustParse(t, "6.95 keV"), entities.Gamma)
	require.True(t, ok)
	maybe, ok := m.Search(mustParse(t, "maybe 6.95 keV"), entities.Gamma)
	require.True(t, ok)
	assert.Equal(t, definite, maybe)
}

func TestMatcher_SortsByNumericEnergy(t *testing.T) {
	table := &mockTable{transitions: []entities.Transition{
		gamma("D", "1000", 999, 1001),
		gamma("D", "90", 89, 91),
		gamma("D", "200", 199, 201),
		gamma("D", "9.5", 9, 10),
	}}
	m := NewMatcher(table)

	results, ok := m.Search([]entities.Energy{point(90)}, entities.Gamma)
	require.True(t, ok)

	var got []string
	for _, r := range results["D"] {
		got = append(got, r.Transition.EnergyText)
	}
	assert.Equal(t, []string{"9.5", "90", "200", "1000"}, got)
}

func TestMatcher_ParallelMatchesSequential(t *testing.T) {
	var transitions []entities.Transition
	for d := 0; d < 40; d++ {
		id := entities.DecayID(fmt.Sprintf("decay-%02d", d))
		for k := 0; k < 6; k++ {
			v := float64(100 + 10*k + d%3)
			transitions = append(transitions, gamma(id, fmt.Sprintf("%g", v), v-0.5, v+0.5))
		}
	}
	table := &mockTable{transitions: transitions}
	energies := []entities.Energy{point(100), point(120.2)}

	seq, ok := NewMatcher(table).Search(energies, entities.Gamma)
	require.True(t, ok)
	par, ok := NewMatcher(table, WithParallelAnnotation(true)).Search(energies, entities.Gamma)
	require.True(t, ok)

	assert.Equal(t, seq, par)
	assert.Len(t, seq, 14)
}

func TestSatisfiesAnyEnergy_IsOr(t *testing.T) {
	tr := gamma("D", "10", 9.5, 10.5)
	assert.True(t, satisfiesAnyEnergy([]entities.Energy{point(500), point(10)}, tr))
	assert.False(t, satisfiesAnyEnergy([]entities.Energy{point(500), point(20)}, tr))
	assert.False(t, satisfiesAnyEnergy(nil, tr))
}
