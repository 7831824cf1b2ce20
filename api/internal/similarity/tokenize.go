// Package similarity scores a candidate text against a reference text with
// BLEU and ROUGE (1, 2, L). Every function here is pure and safe for
// concurrent use.
package similarity

import (
	"strings"
	"unicode"
)

// Tokenize lowercases text and splits it into word tokens. Any rune that is
// not a letter or a digit separates tokens, so punctuation never reaches the
// output. Empty or blank input yields an empty (nil) slice.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), isSeparator)
}

func isSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// ngramCounts counts the contiguous n-grams of tokens. The key joins tokens
// with a unit separator, which Tokenize never emits.
func ngramCounts(tokens []string, n int) map[string]int {
	counts := make(map[string]int)
	if n <= 0 || len(tokens) < n {
		return counts
	}
	for i := 0; i+n <= len(tokens); i++ {
		counts[strings.Join(tokens[i:i+n], "\x1f")]++
	}
	return counts
}

// ngramTotal is the number of n-grams in a sequence of length l.
func ngramTotal(l, n int) int {
	if l < n {
		return 0
	}
	return l - n + 1
}

// clippedOverlap counts candidate n-grams that also occur in the reference,
// each clipped to its reference count.
func clippedOverlap(candidate, reference map[string]int) int {
	overlap := 0
	for g, c := range candidate {
		overlap += min(c, reference[g])
	}
	return overlap
}
