// SPDX-License-Identifier: MIT
package recurrence

import (
	"math"
	"strconv"
)

// Part selects which real-valued function of r^n a basis function takes.
type Part int

const (
	// PartPower is n^j·r^n for a real root r.
	PartPower Part = iota
	// PartRe is n^j·Re(r^n) for a complex root r.
	PartRe
	// PartIm is n^j·Im(r^n) for a complex root r.
	PartIm
)

// String implements fmt.Stringer.
func (p Part) String() string {
	switch p {
	case PartPower:
		return "power"
	case PartRe:
		return "re"
	case PartIm:
		return "im"
	default:
		return "part(" + strconv.Itoa(int(p)) + ")"
	}
}

// BasisFunc is one term n^Power·f(Root^n) of the general solution.
type BasisFunc struct {
	Root  complex128
	Power int
	Part  Part
}

// Eval evaluates the function at a non-negative integer n. The value of a
// PartPower function over a real root and of every Re/Im function is real;
// it is returned as complex128 so it can enter the constant system as-is.
func (f BasisFunc) Eval(n int) complex128 {
	pn := ipow(f.Root, n)
	scale := 1.0
	if f.Power > 0 {
		scale = math.Pow(float64(n), float64(f.Power)) // 0^j = 0 for j > 0
	}

	switch f.Part {
	case PartRe:
		return complex(scale*real(pn), 0)
	case PartIm:
		return complex(scale*imag(pn), 0)
	default:
		return complex(scale, 0) * pn
	}
}

// String renders the function the way it appears in a solution:
// "2ⁿ", "n·2ⁿ", "n^2·(-1)ⁿ", "Re((0.00 + 1.00i)ⁿ)".
func (f BasisFunc) String() string { return f.format(DefaultBasePrecision) }

func (f BasisFunc) format(basePrecision int) string {
	var prefix string
	switch f.Power {
	case 0:
	case 1:
		prefix = "n·"
	default:
		prefix = "n^" + strconv.Itoa(f.Power) + "·"
	}

	base := PrettyPower(f.Root, basePrecision)
	switch f.Part {
	case PartRe:
		return prefix + "Re(" + base + ")"
	case PartIm:
		return prefix + "Im(" + base + ")"
	default:
		return prefix + base
	}
}

// Basis is the ordered list of general-solution functions; constant Cᵢ
// multiplies Basis[i-1].
type Basis []BasisFunc

// BuildBasis expands root groups into basis functions in group order.
//
// Implementation:
//   - Real group of multiplicity m: n^j·rⁿ for j = 0..m-1.
//   - Complex group, default: Re(rⁿ), Im(rⁿ) once, whatever the multiplicity.
//   - Complex group under WithConjugatePairs: n^j·Re(rⁿ), n^j·Im(rⁿ) for
//     j = 0..m-1, the group already standing for its conjugate.
//
// Complexity: O(order).
func BuildBasis(groups []RootGroup, opts ...Option) Basis {
	o := gatherOptions(opts...)
	basis := make(Basis, 0, len(groups)*2)

	var (
		g RootGroup
		j int
	)
	for _, g = range groups {
		r := g.Root()
		if g.Key.IsReal() {
			for j = 0; j < g.Multiplicity; j++ {
				basis = append(basis, BasisFunc{Root: r, Power: j, Part: PartPower})
			}
			continue
		}

		levels := 1
		if o.conjugatePairs {
			levels = g.Multiplicity
		}
		for j = 0; j < levels; j++ {
			basis = append(basis,
				BasisFunc{Root: r, Power: j, Part: PartRe},
				BasisFunc{Root: r, Power: j, Part: PartIm},
			)
		}
	}

	return basis
}

// ipow computes r^n by binary exponentiation; ipow(r, 0) == 1, including r == 0.
func ipow(r complex128, n int) complex128 {
	result := complex(1, 0)
	for n > 0 {
		if n&1 == 1 {
			result *= r
		}
		r *= r
		n >>= 1
	}

	return result
}
