// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package normalize

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ContainsToken reports whether needle occurs in haystack at word
// boundaries. Both arguments must already be in canonical form. A boundary
// is the start or end of the string or any rune that is neither a letter
// nor a digit, which keeps fragments from matching mid-word ("ZTE" never
// matches inside "AZTEC").
func ContainsToken(haystack, needle string) bool {
	if needle == "" || haystack == "" {
		return false
	}

	for from := 0; ; {
		i := strings.Index(haystack[from:], needle)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(needle)
		if boundaryBefore(haystack, start) && boundaryAfter(haystack, end) {
			return true
		}
		from = start + 1
	}
}

func boundaryBefore(s string, idx int) bool {
	if idx == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:idx])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func boundaryAfter(s string, idx int) bool {
	if idx >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[idx:])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}
