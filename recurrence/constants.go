// SPDX-License-Identifier: MIT
package recurrence

import (
	"errors"
	"fmt"
	"math/cmplx"

	"github.com/katalvlaran/lvrec/matrix"
)

// SolveConstants fixes the general-solution constants from initial values.
//
// Implementation:
//   - Stage 1: take the len(basis) smallest indices of iv.
//   - Stage 2: row i of A is basis evaluated at the i-th index; b_i = a(index).
//   - Stage 3: solve A·C = b by LU with partial pivoting (matrix.SolveComplex).
//
// Errors:
//   - ErrUnderdetermined if iv has fewer indices than len(basis).
//   - ErrSingularSystem if A is singular (e.g. a repeated complex root without
//     WithConjugatePairs).
//   - ErrNumeric if A or the solution contains NaN/Inf.
//
// Complexity: O(k³) for k = len(basis).
func SolveConstants(basis Basis, iv InitialValues, opts ...Option) ([]complex128, error) {
	o := gatherOptions(opts...)
	k := len(basis)
	idx := iv.Indices()
	if len(idx) < k {
		return nil, stageErrorf(stageConstants, fmt.Errorf("%w: %d basis functions, %d initial values", ErrUnderdetermined, k, len(idx)))
	}
	idx = idx[:k]

	a, err := matrix.NewCDense(k, k)
	if err != nil {
		return nil, stageErrorf(stageConstants, fmt.Errorf("%w: %w", ErrNumeric, err))
	}
	b := make([]complex128, k)

	var i, j int
	for i = 0; i < k; i++ {
		for j = 0; j < k; j++ {
			if err = a.Set(i, j, basis[j].Eval(idx[i])); err != nil {
				return nil, stageErrorf(stageConstants, fmt.Errorf("%w: basis %d at n=%d: %w", ErrNumeric, j+1, idx[i], err))
			}
		}
		b[i] = complex(iv[idx[i]], 0)
	}

	c, err := matrix.SolveComplex(a, b, o.numeric...)
	switch {
	case errors.Is(err, matrix.ErrSingular):
		return nil, stageErrorf(stageConstants, fmt.Errorf("%w: %w", ErrSingularSystem, err))
	case err != nil:
		return nil, stageErrorf(stageConstants, fmt.Errorf("%w: %w", ErrNumeric, err))
	}
	for i = range c {
		if cmplx.IsNaN(c[i]) || cmplx.IsInf(c[i]) {
			return nil, stageErrorf(stageConstants, fmt.Errorf("%w: constant C%d is not finite", ErrNumeric, i+1))
		}
	}
	o.logger.Debug("solved constants", "count", k, "indices", idx)

	return c, nil
}
