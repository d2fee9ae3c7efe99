package fuzzy

import (
	"sort"
	"strings"
)

// LevenshteinDistance calculates the edit distance between two strings:
// how many single-character insertions, deletions or substitutions turn one
// into the other.
func LevenshteinDistance(s1, s2 string) int {
	s1 = normalizeString(s1)
	s2 = normalizeString(s2)

	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	r1 := []rune(s1)
	r2 := []rune(s2)
	m := len(r1)
	n := len(r2)

	d := make([][]int, m+1)
	for i := range d {
		d[i] = make([]int, n+1)
	}
	for i := 0; i <= m; i++ {
		d[i][0] = i
	}
	for j := 0; j <= n; j++ {
		d[0][j] = j
	}

	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			d[i][j] = min3(
				d[i-1][j]+1,      // deletion
				d[i][j-1]+1,      // insertion
				d[i-1][j-1]+cost, // substitution
			)
		}
	}

	return d[m][n]
}

// Match checks if query fuzzy-matches text within the given edit-distance
// threshold. Substring containment and word-prefix matches always count.
func Match(query, text string, threshold int) bool {
	query = normalizeString(query)
	text = normalizeString(text)

	if query == "" || text == "" {
		return false
	}
	if strings.Contains(text, query) {
		return true
	}

	for _, word := range strings.Fields(text) {
		if LevenshteinDistance(query, word) <= threshold {
			return true
		}
		if strings.HasPrefix(word, query) {
			return true
		}
	}

	return false
}

// ThresholdFor picks a typo tolerance from the query length.
func ThresholdFor(query string) int {
	switch {
	case len(query) <= 3:
		return 1
	case len(query) >= 8:
		return 3
	default:
		return 2
	}
}

// Candidate is a suggestion string with its relevance score.
type Candidate struct {
	Text  string
	Score float64
}

// Score rates how well text answers query. Higher is more relevant; zero
// means no match at all.
func Score(query, text string) float64 {
	query = normalizeString(query)
	text = normalizeString(text)
	if query == "" || text == "" {
		return 0
	}

	score := 0.0
	if strings.Contains(text, query) {
		score += 100.0
		if containsWord(text, query) {
			score += 50.0
		}
		if strings.HasPrefix(text, query) {
			score += 25.0
		}
		return score
	}

	for _, word := range strings.Fields(text) {
		if strings.HasPrefix(word, query) {
			score += 40.0
			continue
		}
		if dist := LevenshteinDistance(query, word); dist <= 2 {
			score += 50.0 - float64(dist)*15
		}
	}
	return score
}

// Rank scores every candidate string against the query and returns the
// matching ones, best first, deduplicated, capped at limit.
func Rank(query string, candidates []string, limit int) []string {
	seen := make(map[string]bool)
	var scored []Candidate
	for _, text := range candidates {
		key := normalizeString(text)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		if s := Score(query, text); s > 0 {
			scored = append(scored, Candidate{Text: text, Score: s})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	out := make([]string, len(scored))
	for i, c := range scored {
		out[i] = c.Text
	}
	return out
}

// Helper functions

func min3(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}

// normalizeString converts to lowercase and collapses whitespace.
func normalizeString(s string) string {
	s = strings.ToLower(s)
	s = strings.Join(strings.Fields(s), " ")
	return s
}

// containsWord checks if text contains query as a whole word.
func containsWord(text, query string) bool {
	for _, word := range strings.Fields(text) {
		if word == query {
			return true
		}
	}
	return false
}
