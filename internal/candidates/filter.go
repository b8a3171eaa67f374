package candidates

// FilterResult distinguishes "no centre selected yet" (Selected false)
// from "centre selected but no candidates there" (Selected true, empty
// Candidates). The two drive different UI states.
type FilterResult struct {
	Selected   bool        `json:"selected"`
	Candidates []Candidate `json:"candidates"`
}

// FilterByCentre returns the records enrolled at centre, in dataset
// order. An empty centre means nothing is selected yet and yields an
// empty, unselected result.
func FilterByCentre(dataset []Candidate, centre string) FilterResult {
	if centre == "" {
		return FilterResult{Selected: false, Candidates: []Candidate{}}
	}
	out := []Candidate{}
	for _, c := range dataset {
		if c.StudyCentre == centre {
			out = append(out, c)
		}
	}
	return FilterResult{Selected: true, Candidates: out}
}
