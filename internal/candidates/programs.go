package candidates

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// SortedPrograms returns a copy of ps ordered ascending by display-name
// length. The sort is stable: equal lengths keep their input order. The
// input slice is never mutated.
func SortedPrograms(ps []Program) []Program {
	out := make([]Program, len(ps))
	copy(out, ps)
	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i].ProgramName) < len(out[j].ProgramName)
	})
	return out
}

// DisplayName renders a candidate or program name the way the cards do:
// lower-cased first, then each word capitalized.
func DisplayName(name string) string {
	return titleCaser.String(strings.ToLower(name))
}
