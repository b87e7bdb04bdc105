// SPDX-License-Identifier: MIT
package poly

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/katalvlaran/lvrec/matrix"
)

// Variable is the symbol used by String.
const Variable = "r"

var (
	// ErrConstant is returned by Roots for polynomials of degree < 1.
	ErrConstant = errors.New("poly: polynomial has no roots (degree < 1)")

	// ErrZeroLeading is returned when the leading coefficient is zero.
	ErrZeroLeading = errors.New("poly: leading coefficient is zero")
)

// Polynomial is a dense real polynomial, coefficients highest degree first.
type Polynomial []float64

// Degree returns len(p)-1, or -1 for an empty polynomial.
func (p Polynomial) Degree() int { return len(p) - 1 }

// Eval evaluates p at x by Horner's scheme.
// Complexity: O(deg).
func (p Polynomial) Eval(x complex128) complex128 {
	var acc complex128
	for _, c := range p {
		acc = acc*x + complex(c, 0)
	}

	return acc
}

// Roots returns all Degree() complex roots of p, counted with multiplicity.
// Degree 1 is solved directly; higher degrees go through the companion
// matrix eigenvalues. Options are forwarded to matrix.Eigenvalues.
//
// Errors:
//   - ErrConstant         if Degree() < 1.
//   - ErrZeroLeading      if p[0] == 0.
//   - matrix.ErrNaNInf    for non-finite coefficients.
//   - matrix.ErrEigenFailed if QR iteration does not converge.
func (p Polynomial) Roots(opts ...matrix.Option) ([]complex128, error) {
	if p.Degree() < 1 {
		return nil, ErrConstant
	}
	if p[0] == 0 {
		return nil, ErrZeroLeading
	}
	if p.Degree() == 1 {
		root := -p[1] / p[0]
		if math.IsNaN(root) || math.IsInf(root, 0) {
			return nil, fmt.Errorf("poly: Roots: %w", matrix.ErrNaNInf)
		}
		return []complex128{complex(root, 0)}, nil
	}

	c, err := matrix.Companion(p)
	if err != nil {
		return nil, fmt.Errorf("poly: Roots: %w", err)
	}
	roots, err := matrix.Eigenvalues(c, opts...)
	if err != nil {
		return nil, fmt.Errorf("poly: Roots: %w", err)
	}

	return roots, nil
}

// String renders p in the variable r, skipping zero terms and unit
// coefficients, e.g. "r^3 - 2r + 1". The zero polynomial renders as "0".
func (p Polynomial) String() string {
	var (
		sb     strings.Builder
		degree = p.Degree()
		first  = true
	)
	for i, c := range p {
		if c == 0 {
			continue
		}
		power := degree - i
		switch {
		case first && c < 0:
			sb.WriteByte('-')
		case !first && c < 0:
			sb.WriteString(" - ")
		case !first:
			sb.WriteString(" + ")
		}
		first = false

		abs := math.Abs(c)
		coeff := strconv.FormatFloat(abs, 'g', -1, 64)
		if abs == 1 && power != 0 {
			coeff = ""
		}
		switch power {
		case 0:
			sb.WriteString(coeff)
		case 1:
			sb.WriteString(coeff + Variable)
		default:
			sb.WriteString(coeff + Variable + "^" + strconv.Itoa(power))
		}
	}
	if first {
		return "0"
	}

	return sb.String()
}
