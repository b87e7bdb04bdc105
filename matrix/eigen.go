// SPDX-License-Identifier: MIT
package matrix

import "math"

// balanceRadix is the floating-point radix; scaling by powers of it is exact.
const balanceRadix = 2.0

// Eigenvalues computes all eigenvalues of the real square matrix m.
//
// Implementation:
//   - Stage 1: Validate m is non-nil, square and finite.
//   - Stage 2: Copy m into a working row set; optionally balance it with
//     radix-2 diagonal similarity transforms.
//   - Stage 3: Reduce to upper Hessenberg form by stabilised elementary
//     similarity transforms (Gaussian elimination with pivoting).
//   - Stage 4: Francis double-shift QR iteration with deflation; a 1×1 block
//     yields a real eigenvalue, a 2×2 block a real or complex-conjugate pair.
//
// Behavior highlights:
//   - The input is never mutated.
//   - Exactly Rows() eigenvalues are returned, counted with multiplicity.
//   - Complex eigenvalues come in adjacent conjugate pairs (+Im first).
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrNaNInf on invalid input.
//   - ErrEigenFailed if a single eigenvalue needs more than MaxIterations sweeps.
//
// Complexity: O(n³) per sweep pattern, typically O(n³) overall; Memory O(n²).
func Eigenvalues(m *Dense, opts ...Option) ([]complex128, error) {
	// Stage 1: Validate
	if err := validateSquareDense(m); err != nil {
		return nil, matrixErrorf(opEigenvalues, err)
	}
	for _, v := range m.data {
		if err := validateFinite(v); err != nil {
			return nil, matrixErrorf(opEigenvalues, err)
		}
	}
	o := gatherOptions(opts...)
	n := m.r

	// Stage 2: Prepare working copy
	h := make([][]float64, n)
	var i int
	for i = 0; i < n; i++ {
		h[i] = make([]float64, n)
		copy(h[i], m.data[i*n:(i+1)*n])
	}
	if n == 1 {
		return []complex128{complex(h[0][0], 0)}, nil
	}
	if o.balance {
		balance(h)
	}

	// Stage 3: Hessenberg reduction
	hessenberg(h)

	// Stage 4: QR iteration
	wr, wi, err := hqr(h, o.maxIterations)
	if err != nil {
		return nil, matrixErrorf(opEigenvalues, err)
	}

	out := make([]complex128, n)
	for i = 0; i < n; i++ {
		out[i] = complex(wr[i], wi[i])
	}

	return out, nil
}

// balance scales rows and columns of a by powers of the radix so that their
// norms become comparable, which improves the accuracy of the eigenvalues.
// The transformation is a diagonal similarity; eigenvalues are unchanged.
func balance(a [][]float64) {
	var (
		n          = len(a)
		sqrdx      = balanceRadix * balanceRadix
		done       bool
		i, j       int
		r, c, g, f float64
		s          float64
	)
	for !done {
		done = true
		for i = 0; i < n; i++ {
			r, c = 0, 0
			for j = 0; j < n; j++ {
				if j != i {
					c += math.Abs(a[j][i])
					r += math.Abs(a[i][j])
				}
			}
			if c == 0 || r == 0 {
				continue // isolated row/column, nothing to balance
			}
			g = r / balanceRadix
			f = 1
			s = c + r
			for c < g {
				f *= balanceRadix
				c *= sqrdx
			}
			g = r * balanceRadix
			for c > g {
				f /= balanceRadix
				c /= sqrdx
			}
			if (c+r)/f < 0.95*s {
				done = false
				g = 1 / f
				for j = 0; j < n; j++ {
					a[i][j] *= g
				}
				for j = 0; j < n; j++ {
					a[j][i] *= f
				}
			}
		}
	}
}

// hessenberg reduces a to upper Hessenberg form in place by elimination with
// partial pivoting, then clears the stored multipliers below the sub-diagonal.
func hessenberg(a [][]float64) {
	var (
		n       = len(a)
		m, i, j int
		x, y    float64
	)
	for m = 1; m < n-1; m++ {
		// pivot: largest element in column m-1 at or below row m
		x = 0
		i = m
		for j = m; j < n; j++ {
			if math.Abs(a[j][m-1]) > math.Abs(x) {
				x = a[j][m-1]
				i = j
			}
		}
		if i != m { // interchange rows and columns
			for j = m - 1; j < n; j++ {
				a[i][j], a[m][j] = a[m][j], a[i][j]
			}
			for j = 0; j < n; j++ {
				a[j][i], a[j][m] = a[j][m], a[j][i]
			}
		}
		if x == 0 {
			continue
		}
		for i = m + 1; i < n; i++ {
			y = a[i][m-1]
			if y == 0 {
				continue
			}
			y /= x
			a[i][m-1] = y
			for j = m; j < n; j++ {
				a[i][j] -= y * a[m][j]
			}
			for j = 0; j < n; j++ {
				a[j][m] += y * a[j][i]
			}
		}
	}
	// the multipliers are not part of the similar matrix
	for i = 2; i < n; i++ {
		for j = 0; j < i-1; j++ {
			a[i][j] = 0
		}
	}
}

// hqr computes the eigenvalues of the upper Hessenberg matrix h (destroyed)
// by the Francis double-shift QR algorithm. It returns real and imaginary
// parts separately. maxIter bounds the sweeps spent on one eigenvalue.
func hqr(h [][]float64, maxIter int) (wr, wi []float64, err error) {
	var (
		nn      = len(h)
		n       = nn - 1
		eps     = math.Pow(2, -52)
		exshift float64
		norm    float64
		iter    int
		i, j, k int
		l, m    int
		p, q, r float64
		s, z    float64
		t, w    float64
		x, y    float64
		notlast bool
	)
	wr = make([]float64, nn)
	wi = make([]float64, nn)

	for i = 0; i < nn; i++ {
		for j = max(i-1, 0); j < nn; j++ {
			norm += math.Abs(h[i][j])
		}
	}

	for n >= 0 {
		// look for a single small sub-diagonal element
		l = n
		for l > 0 {
			s = math.Abs(h[l-1][l-1]) + math.Abs(h[l][l])
			if s == 0 {
				s = norm
			}
			if math.Abs(h[l][l-1]) < eps*s {
				break
			}
			l--
		}

		switch {
		case l == n: // one root found
			h[n][n] += exshift
			wr[n], wi[n] = h[n][n], 0
			n--
			iter = 0

		case l == n-1: // two roots found
			w = h[n][n-1] * h[n-1][n]
			p = (h[n-1][n-1] - h[n][n]) / 2
			q = p*p + w
			z = math.Sqrt(math.Abs(q))
			h[n][n] += exshift
			h[n-1][n-1] += exshift
			x = h[n][n]
			if q >= 0 { // real pair
				if p >= 0 {
					z = p + z
				} else {
					z = p - z
				}
				wr[n-1] = x + z
				wr[n] = wr[n-1]
				if z != 0 {
					wr[n] = x - w/z
				}
				wi[n-1], wi[n] = 0, 0
			} else { // complex pair
				wr[n-1], wr[n] = x+p, x+p
				wi[n-1], wi[n] = z, -z
			}
			n -= 2
			iter = 0

		default: // no convergence yet
			if iter >= maxIter {
				return nil, nil, ErrEigenFailed
			}
			// form shift
			x = h[n][n]
			y, w = 0, 0
			if l < n {
				y = h[n-1][n-1]
				w = h[n][n-1] * h[n-1][n]
			}
			// exceptional shifts break cycles on symmetric stalls
			if iter == 10 {
				exshift += x
				for i = 0; i <= n; i++ {
					h[i][i] -= x
				}
				s = math.Abs(h[n][n-1]) + math.Abs(h[n-1][n-2])
				x = 0.75 * s
				y = x
				w = -0.4375 * s * s
			}
			if iter == 30 {
				s = (y - x) / 2
				s = s*s + w
				if s > 0 {
					s = math.Sqrt(s)
					if y < x {
						s = -s
					}
					s = x - w/((y-x)/2+s)
					for i = 0; i <= n; i++ {
						h[i][i] -= s
					}
					exshift += s
					x, y, w = 0.964, 0.964, 0.964
				}
			}
			iter++

			// look for two consecutive small sub-diagonal elements
			m = n - 2
			for m >= l {
				z = h[m][m]
				r = x - z
				s = y - z
				p = (r*s-w)/h[m+1][m] + h[m][m+1]
				q = h[m+1][m+1] - z - r - s
				r = h[m+2][m+1]
				s = math.Abs(p) + math.Abs(q) + math.Abs(r)
				p /= s
				q /= s
				r /= s
				if m == l {
					break
				}
				if math.Abs(h[m][m-1])*(math.Abs(q)+math.Abs(r)) <
					eps*(math.Abs(p)*(math.Abs(h[m-1][m-1])+math.Abs(z)+math.Abs(h[m+1][m+1]))) {
					break
				}
				m--
			}
			for i = m + 2; i <= n; i++ {
				h[i][i-2] = 0
				if i > m+2 {
					h[i][i-3] = 0
				}
			}

			// double QR step on rows l..n and columns m..n
			for k = m; k <= n-1; k++ {
				notlast = k != n-1
				if k != m {
					p = h[k][k-1]
					q = h[k+1][k-1]
					r = 0
					if notlast {
						r = h[k+2][k-1]
					}
					x = math.Abs(p) + math.Abs(q) + math.Abs(r)
					if x == 0 {
						continue
					}
					p /= x
					q /= x
					r /= x
				}
				s = math.Sqrt(p*p + q*q + r*r)
				if p < 0 {
					s = -s
				}
				if s == 0 {
					continue
				}
				if k != m {
					h[k][k-1] = -s * x
				} else if l != m {
					h[k][k-1] = -h[k][k-1]
				}
				p += s
				x = p / s
				y = q / s
				z = r / s
				q /= p
				r /= p

				// row modification
				for j = k; j < nn; j++ {
					t = h[k][j] + q*h[k+1][j]
					if notlast {
						t += r * h[k+2][j]
						h[k+2][j] -= t * z
					}
					h[k][j] -= t * x
					h[k+1][j] -= t * y
				}
				// column modification
				for i = 0; i <= min(n, k+3); i++ {
					t = x*h[i][k] + y*h[i][k+1]
					if notlast {
						t += z * h[i][k+2]
						h[i][k+2] -= t * r
					}
					h[i][k] -= t
					h[i][k+1] -= t * q
				}
			}
		}
	}

	return wr, wi, nil
}
