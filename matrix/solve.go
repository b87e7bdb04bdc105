// SPDX-License-Identifier: MIT
package matrix

import "math/cmplx"

// SolveComplex solves the square system A·x = b over the complex numbers.
//
// Implementation:
//   - Stage 1: Validate A (non-nil, square, finite) and len(b) == order.
//   - Stage 2: Copy A and b; A and b are never mutated.
//   - Stage 3: Gaussian elimination with partial pivoting (largest |pivot|
//     in the column); a pivot with |p| <= tol·‖A‖∞ stops with ErrSingular.
//   - Stage 4: Back substitution.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrNaNInf, ErrDimensionMismatch on invalid input.
//   - ErrSingular when A has no unique solution under the tolerance policy.
//
// Complexity: O(n³) time, O(n²) memory.
func SolveComplex(a *CDense, b []complex128, opts ...Option) ([]complex128, error) {
	// Stage 1: Validate
	if err := validateSquareCDense(a); err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	n := a.r
	if len(b) != n {
		return nil, matrixErrorf(opSolve, ErrDimensionMismatch)
	}
	o := gatherOptions(opts...)

	// Stage 2: Prepare working copies
	lu := a.Clone()
	x := make([]complex128, n)
	copy(x, b)
	threshold := o.singularTol * a.normInf()

	// Stage 3: Forward elimination
	var (
		i, j, k int
		piv     int
		best    float64
		f       complex128
	)
	for k = 0; k < n; k++ {
		piv = k
		best = cmplx.Abs(lu.data[k*n+k])
		for i = k + 1; i < n; i++ {
			if v := cmplx.Abs(lu.data[i*n+k]); v > best {
				best = v
				piv = i
			}
		}
		if best == 0 || best <= threshold {
			return nil, matrixErrorf(opSolve, ErrSingular)
		}
		if piv != k { // swap rows k and piv in both A and b
			for j = 0; j < n; j++ {
				lu.data[k*n+j], lu.data[piv*n+j] = lu.data[piv*n+j], lu.data[k*n+j]
			}
			x[k], x[piv] = x[piv], x[k]
		}
		for i = k + 1; i < n; i++ {
			f = lu.data[i*n+k] / lu.data[k*n+k]
			if f == 0 {
				continue
			}
			lu.data[i*n+k] = 0
			for j = k + 1; j < n; j++ {
				lu.data[i*n+j] -= f * lu.data[k*n+j]
			}
			x[i] -= f * x[k]
		}
	}

	// Stage 4: Back substitution
	var sum complex128
	for i = n - 1; i >= 0; i-- {
		sum = x[i]
		for j = i + 1; j < n; j++ {
			sum -= lu.data[i*n+j] * x[j]
		}
		x[i] = sum / lu.data[i*n+i]
	}

	return x, nil
}
