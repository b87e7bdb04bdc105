// SPDX-License-Identifier: MIT
package recurrence

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	superscriptN = "ⁿ"
	termJoin     = " + "
	termMul      = "·"
)

var subscriptDigits = [...]string{"₀", "₁", "₂", "₃", "₄", "₅", "₆", "₇", "₈", "₉"}

// Subscript renders a non-negative integer with Unicode subscript digits.
func Subscript(i int) string {
	digits := strconv.Itoa(i)
	var sb strings.Builder
	for _, d := range digits {
		if d < '0' || d > '9' {
			sb.WriteRune(d)
			continue
		}
		sb.WriteString(subscriptDigits[d-'0'])
	}

	return sb.String()
}

// PrettyPower renders root as the base of an n-th power. Real roots use
// basePrecision decimals and are parenthesised when negative ("(-1)ⁿ");
// complex roots always use two decimals: "(0.50 + 0.87i)ⁿ".
func PrettyPower(root complex128, basePrecision int) string {
	if imag(root) != 0 {
		return fmt.Sprintf("(%.*f + %.*fi)%s", ComplexBasePrecision, real(root), ComplexBasePrecision, imag(root), superscriptN)
	}

	base := strconv.FormatFloat(real(root), 'f', basePrecision, 64)
	if real(root) < 0 {
		base = "(" + base + ")"
	}

	return base + superscriptN
}

// GeneralSolution renders the closed form with undetermined constants,
// e.g. "C₁·1ⁿ + C₂·n·1ⁿ". Constants are numbered in basis order, which is
// the first-encountered order of the root groups.
func GeneralSolution(groups []RootGroup, opts ...Option) string {
	o := gatherOptions(opts...)

	return renderGeneral(BuildBasis(groups, opts...), o.basePrecision)
}

func renderGeneral(basis Basis, basePrecision int) string {
	terms := make([]string, len(basis))
	for i, f := range basis {
		terms[i] = "C" + Subscript(i+1) + termMul + f.format(basePrecision)
	}

	return strings.Join(terms, termJoin)
}

// FormatConstant renders a solved constant with three decimals; constants
// whose imaginary part is negligible (≤ 1e-10) render as real numbers.
func FormatConstant(c complex128) string {
	if math.Abs(imag(c)) <= ImagNegligible {
		return strconv.FormatFloat(roundTo(real(c), ConstantPrecision), 'f', ConstantPrecision, 64)
	}

	return fmt.Sprintf("(%.*f%+.*fi)", ConstantPrecision, real(c), ConstantPrecision, imag(c))
}

// FullSolution renders the closed form with each constant paired with its
// own basis function: constants[i] multiplies basis[i]. Extra constants or
// basis functions beyond the shorter of the two are not rendered.
func FullSolution(basis Basis, constants []complex128, opts ...Option) string {
	o := gatherOptions(opts...)

	return renderFull(basis, constants, o.basePrecision)
}

func renderFull(basis Basis, constants []complex128, basePrecision int) string {
	n := min(len(basis), len(constants))
	terms := make([]string, n)
	for i := 0; i < n; i++ {
		terms[i] = FormatConstant(constants[i]) + termMul + basis[i].format(basePrecision)
	}

	return strings.Join(terms, termJoin)
}
