package usecases

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xcro3dile/decaysearch-go/internal/domain/entities"
)

func threeLineResult() entities.SearchResultSet {
	return entities.SearchResultSet{
		"D1": {
			{Transition: gamma("D1", "6.95", 6.9, 7.0), Matched: false},
			{Transition: gamma("D1", "215.5", 215, 216), Matched: true},
			{Transition: gamma("D1", "1000", 999, 1001), Matched: false},
		},
	}
}

func TestFormat_Everything(t *testing.T) {
	got := Format(threeLineResult(), entities.Everything)

	want := "1 decay found (energies are given in keV, * denotes a match):\n" +
		"\nD1\n" +
		"     1    6.95 (1)\n" +
		"*    2   215.5 (1)\n" +
		"     3    1000 (1)\n"
	assert.Equal(t, want, got)
}

func TestFormat_OnlyMatchesRenumbers(t *testing.T) {
	got := Format(threeLineResult(), entities.OnlyMatches)

	want := "1 decay found (energies are given in keV, * denotes a match):\n" +
		"\nD1\n" +
		"*    1   215.5 (1)\n"
	assert.Equal(t, want, got)
}

func TestFormat_PluralAndOrder(t *testing.T) {
	results := entities.SearchResultSet{
		"Zn65 EC": {{Transition: gamma("Zn65 EC", "1115.5", 1115, 1116), Matched: true}},
		"Am241 A": {{Transition: gamma("Am241 A", "59.54", 59.5, 59.6), Matched: true}},
		"Co60 B-": {{Transition: gamma("Co60 B-", "1173.2", 1173, 1174), Matched: true}},
	}
	got := Format(results, entities.Everything)

	require.True(t, strings.HasPrefix(got, "3 decays found"))
	am := strings.Index(got, "\nAm241 A\n")
	co := strings.Index(got, "\nCo60 B-\n")
	zn := strings.Index(got, "\nZn65 EC\n")
	require.NotEqual(t, -1, am)
	assert.Less(t, am, co)
	assert.Less(t, co, zn)
}

func TestFormat_TruncatesLongEnergyText(t *testing.T) {
	results := entities.SearchResultSet{
		"D": {{Transition: gamma("D", "1234.56789", 1234, 1235), Matched: true}},
	}
	got := Format(results, entities.Everything)
	assert.Contains(t, got, "*    1 1234.56 (1)\n")
}
