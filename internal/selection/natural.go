// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package selection picks input files from a directory listing by pattern
// and orders them naturally, so "file2.pdf" sorts before "file10.pdf".
package selection

import (
	"slices"
	"strings"
)

// chunks splits s into alternating non-digit and digit runs, always starting
// with a (possibly empty) non-digit run. Even indexes are text, odd indexes
// are digits.
func chunks(s string) []string {
	var out []string
	start := 0
	digits := false
	for i := 0; i < len(s); i++ {
		isDigit := s[i] >= '0' && s[i] <= '9'
		if isDigit != digits {
			out = append(out, s[start:i])
			start = i
			digits = isDigit
		}
	}
	return append(out, s[start:])
}

// compareDigits compares two runs of ASCII digits by numeric value without
// converting them, so arbitrarily long runs never overflow.
func compareDigits(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		return len(a) - len(b)
	}
	return strings.Compare(a, b)
}

// NaturalCompare orders a and b by their natural keys. Digit runs compare as
// integers and text runs compare without regard to case. Names whose keys
// are equal (for example "a01" and "a1") fall back to a plain string
// comparison.
func NaturalCompare(a, b string) int {
	ka, kb := chunks(a), chunks(b)
	for i := 0; i < len(ka) && i < len(kb); i++ {
		var c int
		if i%2 == 1 {
			c = compareDigits(ka[i], kb[i])
		} else {
			c = strings.Compare(strings.ToLower(ka[i]), strings.ToLower(kb[i]))
		}
		if c != 0 {
			return c
		}
	}
	if len(ka) != len(kb) {
		return len(ka) - len(kb)
	}
	return strings.Compare(a, b)
}

// NaturalLess reports whether a sorts before b in natural order.
func NaturalLess(a, b string) bool {
	return NaturalCompare(a, b) < 0
}

// SortNatural sorts names in place in natural order.
func SortNatural(names []string) {
	slices.SortFunc(names, NaturalCompare)
}
