// SPDX-License-Identifier: MIT
package matrix

// Companion returns the companion matrix of the polynomial whose
// coefficients are given highest degree first:
//
//	p(x) = coeffs[0]·xⁿ + coeffs[1]·xⁿ⁻¹ + … + coeffs[n]
//
// The result is the n×n upper Hessenberg matrix
//
//	[ -c1 -c2 … -cn ]
//	[  1   0  …  0  ]
//	[  0   1  …  0  ]
//	[  …            ]
//
// with cᵢ = coeffs[i]/coeffs[0]; its eigenvalues are exactly the roots of p.
//
// Errors:
//   - ErrBadShape     if the polynomial has degree < 1 (fewer than two coefficients).
//   - ErrZeroLeading  if coeffs[0] == 0.
//   - ErrNaNInf       if any coefficient is not finite.
//
// Complexity: O(n²) memory, O(n) writes.
func Companion(coeffs []float64) (*Dense, error) {
	// Stage 1: Validate
	if len(coeffs) < 2 {
		return nil, matrixErrorf(opCompanion, ErrBadShape)
	}
	for _, c := range coeffs {
		if err := validateFinite(c); err != nil {
			return nil, matrixErrorf(opCompanion, err)
		}
	}
	lead := coeffs[0]
	if lead == 0 {
		return nil, matrixErrorf(opCompanion, ErrZeroLeading)
	}

	// Stage 2: Prepare
	n := len(coeffs) - 1
	m, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opCompanion, err)
	}

	// Stage 3: Execute - first row carries the normalised coefficients,
	// the sub-diagonal carries ones.
	var j int
	for j = 0; j < n; j++ {
		m.set(0, j, -coeffs[j+1]/lead)
	}
	for j = 1; j < n; j++ {
		m.set(j, j-1, 1)
	}

	return m, nil
}
