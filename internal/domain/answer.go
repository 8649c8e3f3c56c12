package domain

import (
	"strings"
	"unicode"
)

// answerTolerance is the share of the expected answer that may be misspelled
const answerTolerance = 0.2

var articles = []string{"the ", "a ", "an "}

// NormalizeAnswer reduces s to lowercase words without punctuation or a
// leading article
func NormalizeAnswer(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, a := range articles {
		if rest, ok := strings.CutPrefix(s, a); ok {
			s = rest
			break
		}
	}

	s = strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) {
			return -1
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// MatchAnswer reports whether guess names the expected answer. Normalized
// guesses containing the answer match, and so do near misses.
func MatchAnswer(expected, guess string) bool {
	want, got := NormalizeAnswer(expected), NormalizeAnswer(guess)
	if got == "" {
		return false
	}
	if want == got || strings.Contains(got, want) {
		return true
	}

	a, b := []rune(want), []rune(got)
	limit := int(float64(max(len(a), len(b))) * answerTolerance)
	return editDistance(a, b) <= limit
}

// editDistance is the Levenshtein distance between a and b
func editDistance(a, b []rune) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
