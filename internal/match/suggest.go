package match

import (
	"fmt"
	"slices"
	"strings"
)

// MinScore is the similarity below which a name is not suggested.
const MinScore = 0.6

// Candidate is a known name scored against a query.
type Candidate struct {
	Name  string
	Score float64
}

// Rank scores every known name against name and returns those reaching
// MinScore, best first. Ties keep alphabetical order. The name itself is never
// a candidate.
func Rank(name string, known []string) []Candidate {
	var out []Candidate

	for _, k := range known {
		if k == name {
			continue
		}

		s := Score(name, k)
		if strings.EqualFold(k, name) {
			s = 1.0
		}

		if s >= MinScore {
			out = append(out, Candidate{Name: k, Score: s})
		}
	}

	slices.SortFunc(out, func(a, b Candidate) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return strings.Compare(a.Name, b.Name)
		}
	})

	return out
}

// Closest returns the best candidate for name.
func Closest(name string, known []string) (string, bool) {
	ranked := Rank(name, known)
	if len(ranked) == 0 {
		return "", false
	}

	return ranked[0].Name, true
}

// DidYouMean formats the best candidate as an error message suffix, or returns
// "" when nothing is close enough.
func DidYouMean(name string, known []string) string {
	best, ok := Closest(name, known)
	if !ok {
		return ""
	}

	return fmt.Sprintf(" (did you mean %q?)", best)
}
