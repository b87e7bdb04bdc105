// SPDX-License-Identifier: MIT
package recurrence

import (
	"fmt"
	"math"
	"strconv"

	"github.com/katalvlaran/lvrec/poly"
)

// RootKey is a root rounded for equality tests. Two roots are the same iff
// their keys are equal.
type RootKey struct {
	Re, Im float64
}

// IsReal reports whether the rounded imaginary part is exactly zero.
func (k RootKey) IsReal() bool { return k.Im == 0 }

// Conj returns the key of the complex conjugate.
func (k RootKey) Conj() RootKey { return RootKey{Re: k.Re, Im: signless(-k.Im)} }

// Value returns the rounded root as a complex number.
func (k RootKey) Value() complex128 { return complex(k.Re, k.Im) }

// RootGroup is a distinct root with its multiplicity. Paired is set when the
// group also stands for the conjugate root (see WithConjugatePairs).
type RootGroup struct {
	Key          RootKey
	Multiplicity int
	Paired       bool
}

// Root returns the rounded root value used for basis construction.
func (g RootGroup) Root() complex128 { return g.Key.Value() }

// FindRoots returns the roots of the characteristic polynomial, exactly
// Degree() of them, counted with multiplicity. Root-finding failures
// surface as ErrNumeric.
func FindRoots(p poly.Polynomial, opts ...Option) ([]complex128, error) {
	o := gatherOptions(opts...)
	roots, err := p.Roots(o.numeric...)
	if err != nil {
		return nil, stageErrorf(stageRoots, fmt.Errorf("%w: %w", ErrNumeric, err))
	}
	if len(roots) != p.Degree() {
		return nil, stageErrorf(stageRoots, fmt.Errorf("%w: %d roots for degree %d", ErrNumeric, len(roots), p.Degree()))
	}
	o.logger.Debug("found roots", "degree", p.Degree(), "roots", roots)

	return roots, nil
}

// GroupRoots groups roots by their rounded key (WithRoundDigits, default 10
// places) in first-encountered order. With WithConjugatePairs a complex
// root whose conjugate was already seen is folded into that group.
// Complexity: O(k²) worst case for k roots (k is the recurrence order).
func GroupRoots(roots []complex128, opts ...Option) []RootGroup {
	o := gatherOptions(opts...)
	groups := make([]RootGroup, 0, len(roots))
	index := make(map[RootKey]int, len(roots))

	folded := make(map[RootKey]bool)

	for _, r := range roots {
		key := RootKey{Re: roundTo(real(r), o.roundDigits), Im: roundTo(imag(r), o.roundDigits)}
		if i, ok := index[key]; ok {
			groups[i].Multiplicity++
			continue
		}
		if folded[key] {
			continue
		}
		if o.conjugatePairs && !key.IsReal() {
			if i, ok := index[key.Conj()]; ok {
				groups[i].Paired = true
				folded[key] = true
				continue
			}
		}
		index[key] = len(groups)
		groups = append(groups, RootGroup{Key: key, Multiplicity: 1})
	}

	return groups
}

// roundTo rounds v to d decimal places; -0 is folded to 0 so keys compare
// and print consistently.
func roundTo(v float64, d int) float64 {
	p := math.Pow10(d)
	r := math.Round(v*p) / p
	if math.IsInf(r, 0) || math.IsNaN(r) { // v*p overflowed
		r = v
	}

	return signless(r)
}

func signless(v float64) float64 {
	if v == 0 {
		return 0
	}
	return v
}

// FormatRoot renders a root for display: real roots (|Im| < 1e-10) with three
// decimals, complex roots as "(a+bi)".
func FormatRoot(r complex128) string {
	if math.Abs(imag(r)) < ImagNegligible {
		return strconv.FormatFloat(signless(roundTo(real(r), ConstantPrecision)), 'f', ConstantPrecision, 64)
	}

	return fmt.Sprintf("(%s%+.3fi)", strconv.FormatFloat(real(r), 'f', ConstantPrecision, 64), imag(r))
}
