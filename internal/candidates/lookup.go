package candidates

import "strings"

// Lookup finds the record whose chest number equals chestNo,
// case-insensitively. The input is matched verbatim (no trimming), the
// first match wins, and a miss is a normal outcome reported through ok.
func Lookup(dataset []Candidate, chestNo string) (Candidate, bool) {
	for _, c := range dataset {
		if strings.EqualFold(c.ChestNo, chestNo) {
			return c, true
		}
	}
	return Candidate{}, false
}
