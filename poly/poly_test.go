package poly_test

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/katalvlaran/lvrec/matrix"
	"github.com/katalvlaran/lvrec/poly"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPolynomial_String checks the human-readable rendering.
func TestPolynomial_String(t *testing.T) {
	tests := []struct {
		p    poly.Polynomial
		want string
	}{
		{poly.Polynomial{1, -1, -1}, "r^2 - r - 1"},
		{poly.Polynomial{1, -2, 1}, "r^2 - 2r + 1"},
		{poly.Polynomial{1, 0, -3, 2}, "r^3 - 3r + 2"},
		{poly.Polynomial{-1, 0.5}, "-r + 0.5"},
		{poly.Polynomial{1, -2}, "r - 2"},
		{poly.Polynomial{0, 0}, "0"},
		{poly.Polynomial{1, 0, 0}, "r^2"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.p.String())
	}
}

// TestPolynomial_Eval evaluates by Horner at real and complex points.
func TestPolynomial_Eval(t *testing.T) {
	p := poly.Polynomial{1, 0, 1} // r² + 1
	assert.Equal(t, complex(2, 0), p.Eval(1))
	assert.Equal(t, complex(0, 0), p.Eval(complex(0, 1)))
	assert.Equal(t, 2, p.Degree())
}

// TestPolynomial_Roots checks that every returned root annihilates p.
func TestPolynomial_Roots(t *testing.T) {
	cases := []poly.Polynomial{
		{1, -3},
		{1, -1, -1},
		{1, -6, 11, -6},
		{1, -1, -7, 1, 6},
		{1, -2, 3, -4, 5},
	}
	for _, p := range cases {
		roots, err := p.Roots()
		require.NoError(t, err, p.String())
		require.Len(t, roots, p.Degree())
		for _, r := range roots {
			assert.InDelta(t, 0, cmplx.Abs(p.Eval(r)), 1e-9, "%s at %v", p, r)
		}
	}
}

// TestPolynomial_RootsLinearExact pins the direct degree-1 path.
func TestPolynomial_RootsLinearExact(t *testing.T) {
	roots, err := poly.Polynomial{1, -0.1}.Roots()
	require.NoError(t, err)
	assert.Equal(t, []complex128{complex(0.1, 0)}, roots)
}

// TestPolynomial_RootsErrors maps invalid polynomials to sentinels.
func TestPolynomial_RootsErrors(t *testing.T) {
	_, err := poly.Polynomial{5}.Roots()
	assert.ErrorIs(t, err, poly.ErrConstant)

	_, err = poly.Polynomial{0, 1, 2}.Roots()
	assert.ErrorIs(t, err, poly.ErrZeroLeading)

	_, err = poly.Polynomial{1, math.NaN(), 1}.Roots()
	assert.ErrorIs(t, err, matrix.ErrNaNInf)
}
