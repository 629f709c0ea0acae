// Package text provides the string normalization helpers shared by the
// extraction pipeline: sentence formatting and similarity scoring.
package text

import (
	"strings"
	"unicode"
)

// Caps capitalizes the first rune of s without lowercasing the rest.
func Caps(s string) string {
	if s == "" {
		return s
	}

	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])

	return string(runes)
}

// FormatSent formats s as a sentence: the first rune is capitalized and a
// terminal period is appended when the string ends in an alphanumeric rune.
//
//	"this is a test" -> "This is a test."
//	"already done."  -> "Already done."
func FormatSent(s string) string {
	s = Caps(s)
	if s == "" {
		return s
	}

	runes := []rune(s)
	if last := runes[len(runes)-1]; unicode.IsLetter(last) || unicode.IsDigit(last) {
		return s + "."
	}

	return s
}

// Norm normalizes a skill name for comparison against spaced heading text.
func Norm(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), "-", " ")
}

// Ratio returns a case-insensitive similarity score in [0, 1] between a and b.
// The score is 2*M/T where M is the total length of the longest matching
// blocks between the two strings and T is the combined length. Identical
// strings score 1.0.
func Ratio(a, b string) float64 {
	ra := []rune(strings.ToLower(a))
	rb := []rune(strings.ToLower(b))

	total := len(ra) + len(rb)
	if total == 0 {
		return 1.0
	}

	matched := matchingTotal(ra, rb)

	return 2.0 * float64(matched) / float64(total)
}

// matchingTotal sums the lengths of the longest matching blocks between a
// and b, found by locating the longest common run and recursing on the
// unmatched pieces to either side.
func matchingTotal(a, b []rune) int {
	b2j := make(map[rune][]int, len(b))
	for j, r := range b {
		b2j[r] = append(b2j[r], j)
	}

	var match func(alo, ahi, blo, bhi int) int
	match = func(alo, ahi, blo, bhi int) int {
		besti, bestj, bestsize := alo, blo, 0

		// j2len[j] holds the length of the common run ending at a[i-1], b[j-1].
		j2len := make(map[int]int)
		for i := alo; i < ahi; i++ {
			newj2len := make(map[int]int)
			for _, j := range b2j[a[i]] {
				if j < blo {
					continue
				}
				if j >= bhi {
					break
				}
				k := j2len[j-1] + 1
				newj2len[j] = k
				if k > bestsize {
					besti, bestj, bestsize = i-k+1, j-k+1, k
				}
			}
			j2len = newj2len
		}

		if bestsize == 0 {
			return 0
		}

		total := bestsize
		total += match(alo, besti, blo, bestj)
		total += match(besti+bestsize, ahi, bestj+bestsize, bhi)

		return total
	}

	return match(0, len(a), 0, len(b))
}
