// Package entities contains core business entities.
// These are pure domain objects: parsed query energies, reference transitions and search results.
// Nothing here knows how the reference table is stored or how reports are displayed.
package entities

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Modifier is the confidence annotation a user may put in front of an energy.
// It is carried through a search but never changes how matching works.
type Modifier int

const (
	Definite Modifier = iota
	Maybe
)

func (m Modifier) String() string {
	switch m {
	case Maybe:
		return "maybe"
	default:
		return "definitely"
	}
}

// Energy is one parsed query line: an interval in keV plus its modifier.
type Energy struct {
	LowerKeV float64
	UpperKeV float64
	Modifier Modifier
}

// Valid reports whether the bounds are finite, non-negative and ordered.
func (e Energy) Valid() bool {
	return validBounds(e.LowerKeV, e.UpperKeV) && e.LowerKeV >= 0
}

func (e Energy) String() string {
	return fmt.Sprintf("lower bound=%g; upper bound=%g; modifier: %s", e.LowerKeV, e.UpperKeV, e.Modifier)
}

// RadiationType classifies emitted radiation. It is the first filter applied
// before any energy comparison.
type RadiationType int

const (
	Gamma RadiationType = iota
	Alpha
)

func (r RadiationType) String() string {
	switch r {
	case Alpha:
		return "alpha"
	default:
		return "gamma"
	}
}

// Code returns the one-letter code used by the reference data ("G" or "A").
func (r RadiationType) Code() string {
	if r == Alpha {
		return "A"
	}
	return "G"
}

// RadiationTypeFromCode decodes the one-letter code stored in the reference data.
func RadiationTypeFromCode(code string) (RadiationType, error) {
	switch code {
	case "G":
		return Gamma, nil
	case "A":
		return Alpha, nil
	default:
		return Gamma, fmt.Errorf("unknown radiation code %q", code)
	}
}

// ParseRadiationType accepts user facing names: gamma, g, alpha, a (any case).
func ParseRadiationType(s string) (RadiationType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "gamma", "g":
		return Gamma, nil
	case "alpha", "a":
		return Alpha, nil
	default:
		return Gamma, fmt.Errorf("unknown radiation type %q (want gamma or alpha)", s)
	}
}

// PrintMode controls whether unmatched transitions appear in a report.
type PrintMode int

const (
	Everything PrintMode = iota
	OnlyMatches
)

func (p PrintMode) String() string {
	if p == OnlyMatches {
		return "only-matches"
	}
	return "everything"
}

// ParsePrintMode accepts "everything"/"all" and "only-matches"/"matches".
func ParsePrintMode(s string) (PrintMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "everything", "all", "":
		return Everything, nil
	case "only-matches", "only_matches", "matches":
		return OnlyMatches, nil
	default:
		return Everything, fmt.Errorf("unknown print mode %q", s)
	}
}

// DecayID identifies a decay dataset (parent, daughter and decay mode encoded
// as one string). It is opaque: matching groups by the whole string.
type DecayID string

// Transition is one emission record of the reference table.
type Transition struct {
	Parent          string
	Daughter        string
	Decay           DecayID
	Radiation       RadiationType
	EnergyText      string
	UncertaintyText string
	Intensity       float64
	LowerKeV        float64
	UpperKeV        float64
	EnergyKeV       float64 // numeric EnergyText, set when the table is built
}

// Valid reports whether the transition satisfies the table invariants.
func (t Transition) Valid() bool {
	return t.Decay != "" && validBounds(t.LowerKeV, t.UpperKeV) && !math.IsNaN(t.EnergyKeV) && !math.IsInf(t.EnergyKeV, 0)
}

func (t Transition) String() string {
	return fmt.Sprintf(" %7.7s (%s)", t.EnergyText, t.UncertaintyText)
}

// TransitionResult is a transition annotated for the current search.
type TransitionResult struct {
	Transition Transition
	Matched    bool
}

// SearchResultSet maps each candidate decay to its transitions, ordered by energy.
type SearchResultSet map[DecayID][]TransitionResult

// IDs returns the decay identifiers in lexicographic order.
func (s SearchResultSet) IDs() []DecayID {
	ids := make([]DecayID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// MatchCount returns how many transitions were flagged across all decays.
func (s SearchResultSet) MatchCount() int {
	n := 0
	for _, list := range s {
		for _, r := range list {
			if r.Matched {
				n++
			}
		}
	}
	return n
}

func validBounds(lower, upper float64) bool {
	if math.IsNaN(lower) || math.IsNaN(upper) || math.IsInf(lower, 0) || math.IsInf(upper, 0) {
		return false
	}
	return lower <= upper
}
