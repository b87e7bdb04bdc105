// SPDX-License-Identifier: MIT
package recurrence

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// symbolReplacer maps look-alike symbols NFKC leaves untouched.
var symbolReplacer = strings.NewReplacer(
	"−", "-", // minus sign
	"–", "-", // en dash
	"×", "*",
	"·", "*",
	"∗", "*",
)

// normalize folds compatibility characters (full-width digits and
// parentheses, etc.) with NFKC, maps look-alike operators to ASCII and
// drops every whitespace rune.
func normalize(s string) string {
	s = symbolReplacer.Replace(norm.NFKC.String(s))

	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
