// Package signals computes text-derived fraud signals from listing fields.
//
// Every extractor is deterministic, side-effect free, and defined for empty
// input: missing text scores 0, never an error.
package signals

import (
	"strings"
	"unicode"
)

// emojiRanges covers the pictographic blocks counted by EmojiCount:
// emoticons, symbols & pictographs, transport & map symbols, and flags.
var emojiRanges = []struct{ lo, hi rune }{
	{0x1F600, 0x1F64F},
	{0x1F300, 0x1F5FF},
	{0x1F680, 0x1F6FF},
	{0x1F1E0, 0x1F1FF},
}

// CapsRatio returns the fraction of alphabetic characters that are uppercase.
// Text with no alphabetic characters scores 0.
func CapsRatio(text string) float64 {
	var letters, caps int
	for _, r := range text {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if unicode.IsUpper(r) {
			caps++
		}
	}
	if letters == 0 {
		return 0
	}
	return float64(caps) / float64(letters)
}

// EmojiCount returns the number of characters falling in the pictographic
// Unicode ranges above.
func EmojiCount(text string) float64 {
	var n int
	for _, r := range text {
		for _, rng := range emojiRanges {
			if r >= rng.lo && r <= rng.hi {
				n++
				break
			}
		}
	}
	return float64(n)
}

// minTokenLen is the shortest token that counts toward keyword stuffing.
// Shorter words are too common to signal anything.
const minTokenLen = 4

// RepeatedWordScore measures keyword stuffing: the most frequent lowercase
// alphabetic token of length >= 4, divided by the total number of such
// tokens. Text with no qualifying tokens scores 0.
func RepeatedWordScore(text string) float64 {
	tokens := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return r < 'a' || r > 'z'
	})

	counts := make(map[string]int)
	total := 0
	for _, tok := range tokens {
		if len(tok) < minTokenLen {
			continue
		}
		counts[tok]++
		total++
	}
	if total == 0 {
		return 0
	}

	maxCount := 0
	for _, c := range counts {
		if c > maxCount {
			maxCount = c
		}
	}
	return float64(maxCount) / float64(total)
}
