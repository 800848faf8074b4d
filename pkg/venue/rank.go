package venue

import (
	"sort"
	"strings"

	"github.com/antzucaro/matchr"
)

// Match is one candidate scored against a search query.
type Match struct {
	Index int
	Score float64
}

// DefaultThreshold drops candidates that share little more than a few letters
// with the query.
const DefaultThreshold = 0.7

// Rank scores every candidate against query with Jaro-Winkler similarity and
// returns those at or above threshold, best first. A candidate containing the
// query as a substring always scores 1.
func Rank(query string, candidates []string, threshold float64) []Match {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var matches []Match
	for i, c := range candidates {
		lc := strings.ToLower(c)
		score := matchr.JaroWinkler(q, lc, false)
		if strings.Contains(lc, q) {
			score = 1
		} else {
			for _, word := range strings.Fields(lc) {
				if s := matchr.JaroWinkler(q, word, false); s > score {
					score = s
				}
			}
		}
		if score >= threshold {
			matches = append(matches, Match{Index: i, Score: score})
		}
	}

	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].Score > matches[b].Score
	})
	return matches
}
