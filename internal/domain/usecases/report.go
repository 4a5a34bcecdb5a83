package usecases

import (
	"fmt"
	"strings"

	"github.com/0xcro3dile/decaysearch-go/internal/domain/entities"
)

// Format renders a result set as the plain-text report shown to users.
// Decays are listed in lexicographic order of their identifiers.
func Format(results entities.SearchResultSet, mode entities.PrintMode) string {
	var sb strings.Builder

	noun := "decays"
	if len(results) == 1 {
		noun = "decay"
	}
	fmt.Fprintf(&sb, "%d %s found (energies are given in keV, * denotes a match):\n", len(results), noun)

	for _, id := range results.IDs() {
		fmt.Fprintf(&sb, "\n%s\n", id)
		n := 1
		for _, r := range results[id] {
			if mode == entities.OnlyMatches && !r.Matched {
				continue
			}
			marker := " "
			if r.Matched {
				marker = "*"
			}
			fmt.Fprintf(&sb, "%s%5d%s\n", marker, n, r.Transition)
			n++
		}
	}
	return sb.String()
}
