// Package matrix offers the small dense linear-algebra kernel behind lvrec.
//
// The matrix package provides:
//
//   - Dense: a row-major float64 matrix with bounds-checked At/Set.
//   - CDense: the complex128 counterpart used for constant solving.
//   - Companion: the companion matrix of a monic-normalised polynomial.
//   - Eigenvalues: all eigenvalues of a real square matrix (balancing,
//     Hessenberg reduction and Francis double-shift QR), real or complex.
//   - SolveComplex: A·x = b over complex numbers via LU with partial pivoting.
//
// Every kernel validates its inputs and returns a sentinel from errors.go,
// wrapped with the operation tag ("Eigenvalues: matrix: ..."). Numeric policy
// (convergence budget, singularity tolerance) is configured with functional
// options, see options.go.
//
// Matrices here are small (the order of a recurrence), so clarity wins over
// blocking or SIMD tricks; all loops run in a fixed i→j order and results are
// deterministic for a given input.
package matrix
