// Package fuzzy resolves user-typed medicine names against the cabinet's
// known names. Matching is case-insensitive Levenshtein similarity on a
// 0..100 scale, with an exact match short-circuit and a deterministic
// tie-break so the same input always resolves to the same medicine.
package fuzzy

import (
	"github.com/agnivade/levenshtein"
	"github.com/google/uuid"

	"github.com/medikeep/cabinet-backend/internal/domain"
)

// DefaultThreshold is the minimum similarity score accepted as a match.
const DefaultThreshold = 80

// Match is a resolved candidate with its similarity score.
type Match struct {
	ID         uuid.UUID
	Name       string
	Confidence int
}

// Resolver scores a query against candidate names.
type Resolver struct {
	threshold int
}

// NewResolver creates a Resolver. A threshold outside 0..100 falls back to
// DefaultThreshold.
func NewResolver(threshold int) *Resolver {
	if threshold < 0 || threshold > 100 {
		threshold = DefaultThreshold
	}
	return &Resolver{threshold: threshold}
}

// Resolve finds the best-scoring candidate for query. The second return
// value is false when no candidate reaches the threshold. An exact
// case-insensitive match always wins with confidence 100. Ties between
// equal scores break toward the shorter name, then lexicographically.
func (r *Resolver) Resolve(query string, candidates []domain.NameRef) (Match, bool) {
	q := domain.NormalizeName(query)
	if q == "" || len(candidates) == 0 {
		return Match{}, false
	}

	for _, c := range candidates {
		if domain.NormalizeName(c.Name) == q {
			return Match{ID: c.ID, Name: c.Name, Confidence: 100}, true
		}
	}

	var (
		best   Match
		found  bool
		prefix = firstRune(q)
	)
	for _, c := range candidates {
		name := domain.NormalizeName(c.Name)
		// Cheap prefilter: misspellings almost never change the first
		// letter, and skipping the rest keeps large cabinets fast.
		if firstRune(name) != prefix {
			continue
		}
		score := Similarity(q, name)
		if score < r.threshold {
			continue
		}
		if !found || betterThan(score, c.Name, best) {
			best = Match{ID: c.ID, Name: c.Name, Confidence: score}
			found = true
		}
	}
	return best, found
}

func betterThan(score int, name string, best Match) bool {
	if score != best.Confidence {
		return score > best.Confidence
	}
	if len(name) != len(best.Name) {
		return len(name) < len(best.Name)
	}
	return name < best.Name
}

// Similarity scores two strings on 0..100: 100 for equal strings, 0 for
// strings sharing nothing. The score is the Levenshtein distance scaled by
// the longer string's rune length.
func Similarity(a, b string) int {
	if a == b {
		return 100
	}
	la, lb := len([]rune(a)), len([]rune(b))
	longest := la
	if lb > longest {
		longest = lb
	}
	if longest == 0 {
		return 100
	}
	dist := levenshtein.ComputeDistance(a, b)
	return (longest - dist) * 100 / longest
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}
