package entities

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnergy_Valid(t *testing.T) {
	assert.True(t, Energy{LowerKeV: 1, UpperKeV: 1}.Valid())
	assert.True(t, Energy{LowerKeV: 0, UpperKeV: 2}.Valid())
	assert.False(t, Energy{LowerKeV: 2, UpperKeV: 1}.Valid())
	assert.False(t, Energy{LowerKeV: -1, UpperKeV: 1}.Valid())
	assert.False(t, Energy{LowerKeV: math.NaN(), UpperKeV: 1}.Valid())
	assert.False(t, Energy{LowerKeV: 1, UpperKeV: math.Inf(1)}.Valid())
}

func TestModifier_String(t *testing.T) {
	assert.Equal(t, "definitely", Definite.String())
	assert.Equal(t, "maybe", Maybe.String())
}

func TestRadiationType_Codes(t *testing.T) {
	for _, r := range []RadiationType{Gamma, Alpha} {
		got, err := RadiationTypeFromCode(r.Code())
		require.NoError(t, err)
		assert.Equal(t, r, got)
	}

	_, err := RadiationTypeFromCode("B")
	assert.Error(t, err)
}

func TestParseRadiationType(t *testing.T) {
	tests := []struct {
		in      string
		want    RadiationType
		wantErr bool
	}{
		{"gamma", Gamma, false},
		{"G", Gamma, false},
		{" Alpha ", Alpha, false},
		{"a", Alpha, false},
		{"beta", Gamma, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRadiationType(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePrintMode(t *testing.T) {
	mode, err := ParsePrintMode("only-matches")
	require.NoError(t, err)
	assert.Equal(t, OnlyMatches, mode)

	mode, err = ParsePrintMode("")
	require.NoError(t, err)
	assert.Equal(t, Everything, mode)

	_, err = ParsePrintMode("some")
	assert.Error(t, err)
}

func TestTransition_String(t *testing.T) {
	tr := Transition{EnergyText: "661.657", UncertaintyText: "3"}
	assert.Equal(t, " 661.657 (3)", tr.String())

	short := Transition{EnergyText: "59.5", UncertaintyText: "1"}
	assert.Equal(t, "    59.5 (1)", short.String())

	long := Transition{EnergyText: "122.06065", UncertaintyText: "12"}
	assert.Equal(t, " 122.060 (12)", long.String())
}

func TestTransition_Valid(t *testing.T) {
	ok := Transition{Decay: "D1", LowerKeV: 1, UpperKeV: 2, EnergyKeV: 1.5}
	assert.True(t, ok.Valid())

	noID := ok
	noID.Decay = ""
	assert.False(t, noID.Valid())

	inverted := ok
	inverted.LowerKeV, inverted.UpperKeV = 3, 2
	assert.False(t, inverted.Valid())
}

func TestSearchResultSet_IDsSorted(t *testing.T) {
	set := SearchResultSet{
		"zeta":  nil,
		"alpha": nil,
		"mid":   nil,
	}
	assert.Equal(t, []DecayID{"alpha", "mid", "zeta"}, set.IDs())
}

func TestSearchResultSet_MatchCount(t *testing.T) {
	set := SearchResultSet{
		"D1": {{Matched: true}, {Matched: false}},
		"D2": {{Matched: true}},
	}
	assert.Equal(t, 2, set.MatchCount())
}
