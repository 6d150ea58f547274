package addrsplit

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// makeSortedRuneSlice converts a string to a
// slice of runes sorted by integer value in ascending order
func makeSortedRuneSlice(s string) runeSlice {
	slice := runeSlice(s)
	sort.Sort(slice)
	return slice
}

type runeSlice []rune

func (p runeSlice) Len() int           { return len(p) }
func (p runeSlice) Less(i, j int) bool { return p[i] < p[j] }
func (p runeSlice) Swap(i, j int)      { p[i], p[j] = p[j], p[i] }

const numbers string = "0123456789"

var numericSet asciiSet = makeASCIISet(numbers)

const controlChars string = "\u0000\u0001\u0002\u0003\u0004\u0005\u0006\u0007\u0008\t\n\v\f\r\u000e\u000f" +
	"\u0010\u0011\u0012\u0013\u0014\u0015\u0016\u0017\u0018\u0019\u001a\u001b\u001c\u001d\u001e\u001f"

const whitespace string = controlChars + " \u0085\u0086\u00a0\u1680\u200b\u200c\u200d\uFEFF"

var whitespaceRuneSlice runeSlice = makeSortedRuneSlice(whitespace)

var slashRuneSlice runeSlice = makeSortedRuneSlice("/")

// asciiSet is a 32-byte value, where each bit represents the presence of a
// given ASCII character in the set. The 128-bits of the lower 16 bytes,
// starting with the least-significant bit of the lowest word to the
// most-significant bit of the highest word, map to the full range of all
// 128 ASCII characters. The 128-bits of the upper 16 bytes will be zeroed,
// ensuring that any non-ASCII character will be reported as not in the set.
// This allocates a total of 32 bytes even though the upper half
// is unused to avoid bounds checks in asciiSet.contains.
type asciiSet [8]uint32

// makeASCIISet creates a set of ASCII characters.
//
// Similar to strings.makeASCIISet but skips input validation.
func makeASCIISet(chars string) (as asciiSet) {
	// all characters in chars are expected to be valid ASCII characters
	for _, c := range chars {
		as[c/32] |= 1 << (c % 32)
	}
	return as
}

// contains reports whether c is inside the set.
//
// same as strings.contains.
func (as *asciiSet) contains(c byte) bool {
	return (as[c/32] & (1 << (c % 32))) != 0
}

// runeBinarySearch returns true if target exists in sortedRunes
// otherwise it returns false.
//
// sortedRunes must be already sorted by integer value in ascending order.
func runeBinarySearch(target rune, sortedRunes runeSlice) bool {
	var low int
	high := len(sortedRunes) - 1

	for low <= high {
		median := (low + high) / 2

		if sortedRunes[median] < target {
			low = median + 1
		} else {
			high = median - 1
		}
	}

	return low != len(sortedRunes) && sortedRunes[low] == target
}

// trimMode specifies which parts of string to trim for fastTrim()
type trimMode int

const (
	trimBoth trimMode = iota
	trimLeft
	trimRight
)

// fastTrim works like strings.Trim but uses binary search
func fastTrim(s string, charsToTrim runeSlice, mode trimMode) string {
	var (
		startIdx int
		endIdx   int = len(s)
	)
	if mode != trimRight {
		// Trim left-hand side
		var trimCharsExist bool
		var broken bool
		for idx, c := range s {
			startIdx = idx
			if !runeBinarySearch(c, charsToTrim) {
				broken = true
				break
			}
			trimCharsExist = true
		}
		if trimCharsExist && !broken {
			return ""
		}
	}
	if mode != trimLeft {
		// Trim right-hand side
		var trimCharsExist bool
		var broken bool
		for i := len(s); i > 0; {
			endIdx = i
			r, size := utf8.DecodeLastRuneInString(s[0:i])
			i -= size
			if !runeBinarySearch(r, charsToTrim) {
				broken = true
				break
			}
			trimCharsExist = true
		}
		if trimCharsExist && !broken {
			return ""
		}
	}
	return s[startIdx:endIdx]
}

// trimSlashes removes leading and trailing '/' from s.
func trimSlashes(s string) string {
	return fastTrim(s, slashRuneSlice, trimBoth)
}

// splitSegments splits s at every '/', returning the text before
// the first '/' and the segments after it.
func splitSegments(s string) (string, []string) {
	segments := strings.Split(s, "/")
	return segments[0], segments[1:]
}

// splitNonEmpty splits s at every sep, trims whitespace from each
// piece and drops pieces that end up empty.
func splitNonEmpty(s, sep string) []string {
	var pieces []string
	for _, piece := range strings.Split(s, sep) {
		if piece = fastTrim(piece, whitespaceRuneSlice, trimBoth); len(piece) != 0 {
			pieces = append(pieces, piece)
		}
	}
	return pieces
}

// isBlank reports whether s is empty or consists of whitespace only.
func isBlank(s string) bool {
	return len(fastTrim(s, whitespaceRuneSlice, trimBoth)) == 0
}
