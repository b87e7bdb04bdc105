// SPDX-License-Identifier: MIT
package recurrence

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// InitialValues maps a non-negative index n to the known value a(n).
type InitialValues map[int]float64

var (
	// initialPattern matches the start of "a(<idx>)=<value>".
	initialPattern = regexp.MustCompile(`^a\((\d+)\)=([-+]?\d+(?:\.\d+)?)`)

	// initialPatternStrict additionally requires the whole line to match.
	initialPatternStrict = regexp.MustCompile(`^a\((\d+)\)=([-+]?\d+(?:\.\d+)?)$`)
)

// ParseInitialValues parses one "a(<index>)=<value>" per line.
//
// Behavior highlights:
//   - Whitespace is ignored and blank lines are skipped.
//   - A line only has to start with a valid assignment; trailing text is
//     ignored unless WithStrictParsing is set.
//   - Repeated indices overwrite earlier ones (last-write-wins).
//   - At least order distinct indices are required.
//
// Errors: *ParseError (errors.Is ErrParse).
func ParseInitialValues(text string, order int, opts ...Option) (InitialValues, error) {
	o := gatherOptions(opts...)
	pattern := initialPattern
	if o.strict {
		pattern = initialPatternStrict
	}

	iv := make(InitialValues)
	for i, raw := range strings.Split(text, "\n") {
		line := normalize(raw)
		if line == "" {
			continue
		}
		m := pattern.FindStringSubmatch(line)
		if m == nil {
			return nil, &ParseError{Input: raw, Line: i + 1, Reason: "expected an initial value such as a(0)=1"}
		}
		idx, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, &ParseError{Input: raw, Line: i + 1, Reason: fmt.Sprintf("bad index %q", m[1])}
		}
		val, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			return nil, &ParseError{Input: raw, Line: i + 1, Reason: fmt.Sprintf("bad value %q", m[2])}
		}
		iv[idx] = val
	}
	if len(iv) < order {
		return nil, &ParseError{Input: text, Reason: fmt.Sprintf("at least %d initial values are required, got %d", order, len(iv))}
	}
	o.logger.Debug("parsed initial values", "count", len(iv), "order", order)

	return iv, nil
}

// Indices returns the indices present, ascending.
func (iv InitialValues) Indices() []int {
	idx := make([]int, 0, len(iv))
	for k := range iv {
		idx = append(idx, k)
	}
	sort.Ints(idx)

	return idx
}

// String renders the values one per line in index order. Values are
// printed in positional notation so the text parses back unchanged.
func (iv InitialValues) String() string {
	var sb strings.Builder
	for i, k := range iv.Indices() {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString("a(" + strconv.Itoa(k) + ")=" + strconv.FormatFloat(iv[k], 'f', -1, 64))
	}

	return sb.String()
}
