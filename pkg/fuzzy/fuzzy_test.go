package fuzzy

import (
	"reflect"
	"testing"
)

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		s1, s2 string
		want   int
	}{
		{"", "", 0},
		{"nike", "nike", 0},
		{"nike", "nkie", 2},
		{"sephora", "sephor", 1},
		{"", "abc", 3},
		{"Nike", "nike", 0},
	}
	for _, tt := range tests {
		if got := LevenshteinDistance(tt.s1, tt.s2); got != tt.want {
			t.Errorf("LevenshteinDistance(%q, %q) = %d, want %d", tt.s1, tt.s2, got, tt.want)
		}
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		query, text string
		threshold   int
		want        bool
	}{
		{"nike", "Nike Official Store", 1, true},  // substring
		{"nkie", "Nike", 2, true},                 // within edit distance
		{"seph", "Sephora Beauty", 1, true},       // word prefix
		{"adidas", "Nike", 1, false},              // no relation
		{"", "Nike", 1, false},                    // empty query never matches
	}
	for _, tt := range tests {
		if got := Match(tt.query, tt.text, tt.threshold); got != tt.want {
			t.Errorf("Match(%q, %q, %d) = %v, want %v", tt.query, tt.text, tt.threshold, got, tt.want)
		}
	}
}

func TestThresholdFor(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"ab", 1},
		{"abc", 1},
		{"abcd", 2},
		{"abcdefg", 2},
		{"abcdefgh", 3},
	}
	for _, tt := range tests {
		if got := ThresholdFor(tt.query); got != tt.want {
			t.Errorf("ThresholdFor(%q) = %d, want %d", tt.query, got, tt.want)
		}
	}
}

func TestRank(t *testing.T) {
	candidates := []string{"Nike", "Nike Air Max Sale", "Sephora", "nike", "Dior"}

	got := Rank("nike", candidates, 10)
	// Equal scores keep candidate order and the duplicate "nike" is dropped.
	want := []string{"Nike", "Nike Air Max Sale"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Rank = %v, want %v", got, want)
	}
}

func TestRankLimit(t *testing.T) {
	candidates := []string{"Sale One", "Sale Two", "Sale Three"}
	got := Rank("sale", candidates, 2)
	if len(got) != 2 {
		t.Errorf("len = %d, want 2", len(got))
	}
}

func TestRankNoMatches(t *testing.T) {
	if got := Rank("zzzz", []string{"Nike", "Sephora"}, 5); len(got) != 0 {
		t.Errorf("Rank = %v, want empty", got)
	}
}

func TestRankTypoToleranceOnWords(t *testing.T) {
	got := Rank("sephroa", []string{"Sephora Beauty Insider", "Nike"}, 5)
	if len(got) != 1 || got[0] != "Sephora Beauty Insider" {
		t.Errorf("Rank = %v", got)
	}
}
