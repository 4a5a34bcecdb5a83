// Package usecases contains application business rules: parsing energy
// queries, matching them against the reference table and rendering reports.
// They depend only on entities and port interfaces.
package usecases

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/0xcro3dile/decaysearch-go/internal/domain/entities"
)

// ErrNoMatch is returned when a query line does not fit the energy grammar.
var ErrNoMatch = errors.New("query line does not match")

// ParseError carries the offending line. It unwraps to ErrNoMatch.
type ParseError struct {
	Line string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse query line %q: %v", e.Line, ErrNoMatch)
}

func (e *ParseError) Unwrap() error { return ErrNoMatch }

// [modifier] value unit [uncertainty%]. Only the start of the line has to match.
var linePattern = regexp.MustCompile(
	`^(?P<modifier>[a-zA-Z]*)[[:blank:]]*(?P<energy>(?:[0-9]*\.)?[0-9]+)[[:blank:]]*(?P<unit>[a-zA-Z]+)(?:[[:blank:]]+(?P<uncertainty>(?:[0-9]*\.)?[0-9]+)%)?`,
)

var (
	groupModifier    = linePattern.SubexpIndex("modifier")
	groupEnergy      = linePattern.SubexpIndex("energy")
	groupUnit        = linePattern.SubexpIndex("unit")
	groupUncertainty = linePattern.SubexpIndex("uncertainty")
)

// ParseLine converts one comment-stripped, trimmed line into an Energy.
func ParseLine(line string) (entities.Energy, error) {
	m := linePattern.FindStringSubmatch(norm.NFKC.String(line))
	if m == nil {
		return entities.Energy{}, &ParseError{Line: line}
	}

	value, err := strconv.ParseFloat(m[groupEnergy], 64)
	if err != nil {
		return entities.Energy{}, &ParseError{Line: line}
	}
	uncertainty := 0.0
	if u := m[groupUncertainty]; u != "" {
		if uncertainty, err = strconv.ParseFloat(u, 64); err != nil {
			return entities.Energy{}, &ParseError{Line: line}
		}
	}

	lower, upper := energyBounds(value, uncertainty, UnitFactor(m[groupUnit]))
	e := entities.Energy{
		LowerKeV: lower,
		UpperKeV: upper,
		Modifier: ParseModifier(m[groupModifier]),
	}
	// a representable value can still overflow once scaled to keV
	if !e.Valid() {
		return entities.Energy{}, &ParseError{Line: line}
	}
	return e, nil
}

// UnitFactor returns the multiplier that converts a value in unit to keV.
// Unit tokens are case-sensitive; anything unrecognized is treated as keV.
func UnitFactor(unit string) float64 {
	switch unit {
	case "MeV":
		return 1000
	case "keV":
		return 1
	case "eV":
		return 0.001
	default:
		return 1
	}
}

// ParseModifier maps the optional leading word to a Modifier. Unknown words
// fall back to Definite.
func ParseModifier(word string) entities.Modifier {
	switch strings.ToLower(word) {
	case "", "definitely":
		return entities.Definite
	case "maybe":
		return entities.Maybe
	default:
		return entities.Definite
	}
}

// energyBounds applies a relative uncertainty in percent. The lower bound is
// clamped at zero for uncertainties above 100%.
func energyBounds(value, uncertaintyPct, factor float64) (float64, float64) {
	u := uncertaintyPct / 100
	lower := value * factor * (1 - u)
	upper := value * factor * (1 + u)
	if lower < 0 {
		lower = 0
	}
	return lower, upper
}

// ParseQuery parses multi-line input. '#' starts a comment, blank lines are
// skipped, and the first bad line fails the whole query.
func ParseQuery(input string) ([]entities.Energy, error) {
	var energies []entities.Energy
	for _, line := range strings.Split(input, "\n") {
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		e, err := ParseLine(line)
		if err != nil {
			return nil, err
		}
		energies = append(energies, e)
	}
	return energies, nil
}
