// Package fuzzy ranks near-miss candidates for "did you mean" hints on
// unknown switches and subcommand names.
package fuzzy

import (
	"sort"
	"strings"
)

// Matcher finds candidates within a maximum edit distance of an input.
type Matcher struct {
	maxDistance int
	minLength   int
}

// NewMatcher creates a matcher with the given maximum edit distance.
// Inputs shorter than two characters never produce suggestions.
func NewMatcher(maxDistance int) *Matcher {
	return &Matcher{maxDistance: maxDistance, minLength: 2}
}

// Match is one ranked candidate.
type Match struct {
	Value    string
	Distance int
}

// FindBest returns the closest candidate, or "" when none qualifies.
func (m *Matcher) FindBest(input string, candidates []string) string {
	matches := m.FindMatches(input, candidates)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Value
}

// FindMatches returns every candidate within the distance budget, closest
// first; ties break by common-prefix length, then lexically for
// determinism.
func (m *Matcher) FindMatches(input string, candidates []string) []Match {
	if len(input) < m.minLength {
		return nil
	}

	lower := strings.ToLower(input)
	var matches []Match
	for _, candidate := range candidates {
		cl := strings.ToLower(candidate)
		if lower == cl {
			continue // exact matches are the caller's bug, not a typo
		}
		if d := m.distance(lower, cl); d <= m.maxDistance {
			matches = append(matches, Match{Value: candidate, Distance: d})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Distance != matches[j].Distance {
			return matches[i].Distance < matches[j].Distance
		}
		pi := commonPrefix(lower, strings.ToLower(matches[i].Value))
		pj := commonPrefix(lower, strings.ToLower(matches[j].Value))
		if pi != pj {
			return pi > pj
		}
		return matches[i].Value < matches[j].Value
	})
	return matches
}

// distance is a two-row Levenshtein with early termination once every
// cell of a row exceeds the budget.
func (m *Matcher) distance(a, b string) int {
	if a == "" {
		return len(b)
	}
	if b == "" {
		return len(a)
	}
	if abs(len(a)-len(b)) > m.maxDistance {
		return m.maxDistance + 1
	}
	if len(a) > len(b) {
		a, b = b, a
	}

	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)
	for i := range prev {
		prev[i] = i
	}

	for i := 1; i <= len(b); i++ {
		curr[0] = i
		rowMin := i
		for j := 1; j <= len(a); j++ {
			cost := 0
			if a[j-1] != b[i-1] {
				cost = 1
			}
			curr[j] = min3(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
			if curr[j] < rowMin {
				rowMin = curr[j]
			}
		}
		if rowMin > m.maxDistance {
			return m.maxDistance + 1
		}
		prev, curr = curr, prev
	}
	return prev[len(a)]
}

func commonPrefix(a, b string) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func min3(a, b, c int) int {
	return min(a, min(b, c))
}

// FindBestSwitch suggests the nearest switch display name. Leading dashes
// are ignored for distance purposes so "--verbos" matches "--verbose".
func FindBestSwitch(input string, switches []string, maxDistance int) string {
	trimmed := make([]string, len(switches))
	for i, s := range switches {
		trimmed[i] = strings.TrimLeft(s, "-")
	}
	best := NewMatcher(maxDistance).FindBest(strings.TrimLeft(input, "-"), trimmed)
	if best == "" {
		return ""
	}
	for i, t := range trimmed {
		if t == best {
			return switches[i]
		}
	}
	return ""
}

// FindBestCommand suggests the nearest subcommand name or alias.
func FindBestCommand(input string, commands []string, maxDistance int) string {
	return NewMatcher(maxDistance).FindBest(input, commands)
}
