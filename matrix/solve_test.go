package matrix_test

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/katalvlaran/lvrec/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildC fills a CDense from rows, failing the test on error.
func buildC(t *testing.T, rows [][]complex128) *matrix.CDense {
	t.Helper()
	m, err := matrix.NewCDense(len(rows), len(rows[0]))
	require.NoError(t, err)
	for i := range rows {
		for j := range rows[i] {
			require.NoError(t, m.Set(i, j, rows[i][j]))
		}
	}
	return m
}

// TestSolveComplex_Real solves a small real system that needs pivoting.
func TestSolveComplex_Real(t *testing.T) {
	a := buildC(t, [][]complex128{
		{0, 2, 1},
		{1, 1, 1},
		{2, 0, -1},
	})
	b := []complex128{5, 6, -1}

	x, err := matrix.SolveComplex(a, b)
	require.NoError(t, err)

	// residual A·x - b must vanish
	ax, err := a.MatVec(x)
	require.NoError(t, err)
	for i := range b {
		assert.InDelta(t, 0, cmplx.Abs(ax[i]-b[i]), 1e-12, "row %d", i)
	}
	assert.InDelta(t, 1, real(x[0]), 1e-12)
	assert.InDelta(t, 2, real(x[1]), 1e-12)
	assert.InDelta(t, 3, real(x[2]), 1e-12)
}

// TestSolveComplex_Complex solves a genuinely complex system.
func TestSolveComplex_Complex(t *testing.T) {
	a := buildC(t, [][]complex128{
		{complex(1, 1), 2},
		{3, complex(0, -1)},
	})
	want := []complex128{complex(1, -2), complex(0.5, 0.25)}
	b, err := a.MatVec(want)
	require.NoError(t, err)

	x, err := matrix.SolveComplex(a, b)
	require.NoError(t, err)
	for i := range want {
		assert.InDelta(t, 0, cmplx.Abs(x[i]-want[i]), 1e-12)
	}
}

// TestSolveComplex_Singular rejects linearly dependent columns.
func TestSolveComplex_Singular(t *testing.T) {
	a := buildC(t, [][]complex128{
		{1, 2},
		{2, 4},
	})
	_, err := matrix.SolveComplex(a, []complex128{1, 2})
	assert.ErrorIs(t, err, matrix.ErrSingular)

	zero := buildC(t, [][]complex128{{0}})
	_, err = matrix.SolveComplex(zero, []complex128{1}, matrix.WithSingularTolerance(0))
	assert.ErrorIs(t, err, matrix.ErrSingular)
}

// TestSolveComplex_Validation covers nil, shape and length errors.
func TestSolveComplex_Validation(t *testing.T) {
	_, err := matrix.SolveComplex(nil, nil)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)

	rect, err := matrix.NewCDense(2, 3)
	require.NoError(t, err)
	_, err = matrix.SolveComplex(rect, []complex128{1, 2})
	assert.ErrorIs(t, err, matrix.ErrNonSquare)

	sq := buildC(t, [][]complex128{{1, 0}, {0, 1}})
	_, err = matrix.SolveComplex(sq, []complex128{1})
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// TestSolveComplex_DoesNotMutate guards the immutability of operands.
func TestSolveComplex_DoesNotMutate(t *testing.T) {
	a := buildC(t, [][]complex128{{0, 1}, {1, 0}})
	b := []complex128{3, 4}
	before := a.String()

	_, err := matrix.SolveComplex(a, b)
	require.NoError(t, err)
	assert.Equal(t, before, a.String())
	assert.Equal(t, []complex128{3, 4}, b)
}

// TestDense_Bounds verifies bounds checks and NaN rejection.
func TestDense_Bounds(t *testing.T) {
	_, err := matrix.NewDense(0, 1)
	assert.ErrorIs(t, err, matrix.ErrBadShape)

	m, err := matrix.NewDense(2, 2)
	require.NoError(t, err)
	_, err = m.At(2, 0)
	assert.ErrorIs(t, err, matrix.ErrOutOfRange)
	assert.ErrorIs(t, m.Set(0, -1, 1), matrix.ErrOutOfRange)
	assert.ErrorIs(t, m.Set(0, 0, math.Inf(-1)), matrix.ErrNaNInf)

	_, err = matrix.NewDenseFrom([][]float64{{1, 2}, {3}})
	assert.ErrorIs(t, err, matrix.ErrBadShape)

	c, err := matrix.NewCDense(1, 1)
	require.NoError(t, err)
	assert.ErrorIs(t, c.Set(0, 0, cmplx.NaN()), matrix.ErrNaNInf)
	_, err = c.MatVec([]complex128{1, 2})
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}
