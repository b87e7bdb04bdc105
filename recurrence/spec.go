// SPDX-License-Identifier: MIT
package recurrence

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/katalvlaran/lvrec/poly"
)

// equationPrefix is the mandatory left-hand side.
const equationPrefix = "a(n)="

// termPattern matches one "[±coeff][*]a(n-k)" term.
var termPattern = regexp.MustCompile(`([+-]?\d*)\*?a\(n-(\d+)\)`)

// Spec is a parsed constant-coefficient linear recurrence
//
//	a(n) = c1·a(n-1) + c2·a(n-2) + … + ck·a(n-k)
//
// Coefficients maps lag k ≥ 1 to its coefficient; Order is the largest lag.
type Spec struct {
	Coefficients map[int]int
	Order        int
}

// ParseEquation parses text of the form "a(n) = 2*a(n-1) - a(n-2)".
//
// Implementation:
//   - Stage 1: normalise (NFKC, ASCII operators, no whitespace).
//   - Stage 2: require the "a(n)=" prefix and a non-empty right-hand side.
//   - Stage 3: scan the right-hand side for terms; a missing coefficient is
//     ±1, a repeated lag overwrites the earlier one (last-write-wins).
//
// Behavior highlights:
//   - The scan is permissive: text between recognised terms is ignored.
//     WithStrictParsing makes any such gap an error.
//
// Errors: *ParseError (errors.Is ErrParse) for a missing prefix, empty
// right-hand side, no recognised term, lag 0, a lag above the maximum order
// (WithMaxOrder, default 512) or integer overflow.
func ParseEquation(text string, opts ...Option) (*Spec, error) {
	o := gatherOptions(opts...)
	s := normalize(text)

	// Stage 2: prefix
	if !strings.HasPrefix(s, equationPrefix) || len(s) == len(equationPrefix) {
		return nil, &ParseError{Input: text, Reason: `expected "a(n) = <terms>", e.g. a(n) = 2*a(n-1) - 3*a(n-2)`}
	}
	rhs := s[len(equationPrefix):]

	// Stage 3: terms
	matches := termPattern.FindAllStringSubmatchIndex(rhs, -1)
	if len(matches) == 0 {
		return nil, &ParseError{Input: text, Reason: "no terms of the form c*a(n-k) found"}
	}
	if o.strict {
		if err := checkCoverage(text, rhs, matches); err != nil {
			return nil, err
		}
	}

	spec := &Spec{Coefficients: make(map[int]int, len(matches))}
	for _, m := range matches {
		coeffText := rhs[m[2]:m[3]]
		lagText := rhs[m[4]:m[5]]

		coeff, err := parseCoefficient(coeffText)
		if err != nil {
			return nil, &ParseError{Input: text, Reason: fmt.Sprintf("bad coefficient %q", coeffText)}
		}
		lag, err := strconv.Atoi(lagText)
		if err != nil {
			return nil, &ParseError{Input: text, Reason: fmt.Sprintf("bad lag %q", lagText)}
		}
		if lag < 1 {
			return nil, &ParseError{Input: text, Reason: "lag must be a positive integer"}
		}
		if lag > o.maxOrder {
			return nil, &ParseError{Input: text, Reason: fmt.Sprintf("lag %d exceeds the maximum order %d", lag, o.maxOrder)}
		}
		spec.Coefficients[lag] = coeff
		spec.Order = max(spec.Order, lag)
	}
	o.logger.Debug("parsed equation", "order", spec.Order, "terms", len(matches))

	return spec, nil
}

// parseCoefficient maps "", "+", "-" to ±1 and everything else through Atoi.
func parseCoefficient(s string) (int, error) {
	switch s {
	case "", "+":
		return 1, nil
	case "-":
		return -1, nil
	}

	return strconv.Atoi(s)
}

// checkCoverage requires the matches to tile rhs without gaps and every
// term after the first to carry an explicit sign.
func checkCoverage(input, rhs string, matches [][]int) error {
	end := 0
	for i, m := range matches {
		if m[0] != end {
			return &ParseError{Input: input, Reason: fmt.Sprintf("unexpected text %q", rhs[end:m[0]])}
		}
		if i > 0 && (m[3] == m[2] || (rhs[m[2]] != '+' && rhs[m[2]] != '-')) {
			return &ParseError{Input: input, Reason: fmt.Sprintf("missing sign before term %q", rhs[m[0]:m[1]])}
		}
		end = m[1]
	}
	if end != len(rhs) {
		return &ParseError{Input: input, Reason: fmt.Sprintf("unexpected text %q", rhs[end:])}
	}

	return nil
}

// Lags returns the lags present, ascending.
func (s *Spec) Lags() []int {
	lags := make([]int, 0, len(s.Coefficients))
	for k := range s.Coefficients {
		lags = append(lags, k)
	}
	sort.Ints(lags)

	return lags
}

// Characteristic builds r^order - Σ c_k·r^(order-k), highest degree first:
// the coefficient of r^(order-k) sits at index k. The result has length
// Order+1 and a leading coefficient of 1.
// Complexity: O(order).
func (s *Spec) Characteristic() poly.Polynomial {
	p := make(poly.Polynomial, s.Order+1)
	p[0] = 1
	for lag, c := range s.Coefficients {
		p[lag] -= float64(c)
	}

	return p
}

// String renders the canonical form, lags ascending:
// "a(n) = 2*a(n-1) - a(n-2)".
func (s *Spec) String() string {
	var sb strings.Builder
	sb.WriteString("a(n) = ")
	for i, lag := range s.Lags() {
		c := s.Coefficients[lag]
		switch {
		case i == 0 && c < 0:
			sb.WriteByte('-')
		case i > 0 && c < 0:
			sb.WriteString(" - ")
		case i > 0:
			sb.WriteString(" + ")
		}
		if abs := absInt(c); abs != 1 {
			sb.WriteString(strconv.Itoa(abs) + "*")
		}
		sb.WriteString("a(n-" + strconv.Itoa(lag) + ")")
	}

	return sb.String()
}

// Terms iterates the recurrence directly and returns a(from), …,
// a(from+count-1). The seed window is the Order consecutive indices starting
// at the smallest index in iv; all of them must be present. Values given in
// iv past the seed window are ignored.
//
// Errors:
//   - ErrUnderdetermined if the seed window is incomplete.
//   - ErrRange if from lies before the seed window or count < 0.
func (s *Spec) Terms(iv InitialValues, from, count int) ([]float64, error) {
	idx := iv.Indices()
	if len(idx) == 0 {
		return nil, fmt.Errorf("terms: %w: no initial values", ErrUnderdetermined)
	}
	start := idx[0]
	if from < start || count < 0 {
		return nil, fmt.Errorf("terms: %w: from=%d count=%d, range must start at or after a(%d)", ErrRange, from, count, start)
	}

	// seed window [start, start+Order)
	seq := make([]float64, 0, from-start+count)
	for n := start; n < start+s.Order; n++ {
		v, ok := iv[n]
		if !ok {
			return nil, fmt.Errorf("terms: %w: a(%d) missing from seed window", ErrUnderdetermined, n)
		}
		seq = append(seq, v)
	}
	lags := s.Lags() // fixed summation order
	for n := start + s.Order; n < from+count; n++ {
		var v float64
		for _, lag := range lags {
			v += float64(s.Coefficients[lag]) * seq[n-lag-start]
		}
		seq = append(seq, v)
	}

	out := make([]float64, count)
	copy(out, seq[from-start:])

	return out, nil
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
