package errors

import (
	"sort"
	"strings"
)

const (
	// maxSuggestionDistance is the largest edit distance offered as a suggestion
	maxSuggestionDistance = 3
	// maxSuggestions caps the "Did you mean" list
	maxSuggestions = 3
)

// FindSimilar returns up to three candidates within a small edit distance
// of target, closest first. Comparison ignores case; ties keep candidate order.
func FindSimilar(target string, candidates []string) []string {
	type match struct {
		value    string
		distance int
	}

	lowered := strings.ToLower(target)
	matches := make([]match, 0)
	for _, candidate := range candidates {
		if candidate == target {
			continue
		}
		dist := levenshtein(lowered, strings.ToLower(candidate))
		if dist <= maxSuggestionDistance && dist < len(target) {
			matches = append(matches, match{value: candidate, distance: dist})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].distance < matches[j].distance
	})

	result := make([]string, 0, maxSuggestions)
	for i := 0; i < len(matches) && i < maxSuggestions; i++ {
		result = append(result, matches[i].value)
	}
	return result
}

// levenshtein is the single-character edit distance between two strings
func levenshtein(s1, s2 string) int {
	a, b := []rune(s1), []rune(s2)
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

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
			curr[j] = minOf(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}

func minOf(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
