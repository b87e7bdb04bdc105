// Package poly holds dense real polynomials and their complex roots.
//
// A Polynomial stores its coefficients highest degree first:
//
//	Polynomial{1, -1, -1}  ≡  r² - r - 1
//
// Roots are found as eigenvalues of the companion matrix (see
// matrix.Companion and matrix.Eigenvalues), the same approach used by
// standard numerical libraries. Exactly Degree() roots are returned,
// repeated roots appear once per multiplicity.
//
// ⚙️ Usage:
//
//	p := poly.Polynomial{1, -1, -1}
//	roots, err := p.Roots()
//	fmt.Println(p, roots) // r^2 - r - 1 [(1.618…+0i) (-0.618…+0i)]
package poly
