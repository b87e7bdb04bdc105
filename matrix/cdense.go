// SPDX-License-Identifier: MIT
package matrix

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"
)

// CDense is a row-major matrix of complex128 values.
// It mirrors Dense; the constant solver needs complex entries because basis
// functions built on complex roots evaluate to complex numbers.
type CDense struct {
	r, c int
	data []complex128
}

// NewCDense creates an r×c complex matrix initialized to zeros.
// Complexity: O(r*c) time and memory.
func NewCDense(rows, cols int) (*CDense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("NewCDense(%d,%d): %w", rows, cols, ErrBadShape)
	}

	return &CDense{r: rows, c: cols, data: make([]complex128, rows*cols)}, nil
}

// Rows returns the number of rows in the matrix.
func (m *CDense) Rows() int { return m.r }

// Cols returns the number of columns in the matrix.
func (m *CDense) Cols() int { return m.c }

// At retrieves the element at (row, col).
// Returns ErrOutOfRange for invalid indices.
func (m *CDense) At(row, col int) (complex128, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, fmt.Errorf("CDense.At(%d,%d): %w", row, col, ErrOutOfRange)
	}

	return m.data[row*m.c+col], nil
}

// Set assigns v at (row, col). Components must be finite.
func (m *CDense) Set(row, col int, v complex128) error {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return fmt.Errorf("CDense.Set(%d,%d): %w", row, col, ErrOutOfRange)
	}
	if cmplx.IsNaN(v) || cmplx.IsInf(v) {
		return fmt.Errorf("CDense.Set(%d,%d): %w", row, col, ErrNaNInf)
	}
	m.data[row*m.c+col] = v

	return nil
}

// Clone returns a deep copy of the matrix.
func (m *CDense) Clone() *CDense {
	copyData := make([]complex128, len(m.data))
	copy(copyData, m.data)

	return &CDense{r: m.r, c: m.c, data: copyData}
}

// MatVec computes y = m·x.
// Returns ErrNilMatrix for a nil receiver and ErrDimensionMismatch when
// len(x) != Cols().
// Complexity: O(r*c).
func (m *CDense) MatVec(x []complex128) ([]complex128, error) {
	if m == nil {
		return nil, matrixErrorf(opMatVec, ErrNilMatrix)
	}
	if len(x) != m.c {
		return nil, matrixErrorf(opMatVec, ErrDimensionMismatch)
	}
	y := make([]complex128, m.r)
	var (
		i, j int
		sum  complex128
	)
	for i = 0; i < m.r; i++ {
		sum = 0
		for j = 0; j < m.c; j++ {
			sum += m.data[i*m.c+j] * x[j]
		}
		y[i] = sum
	}

	return y, nil
}

// normInf returns the maximum absolute row sum ‖m‖∞.
func (m *CDense) normInf() float64 {
	var (
		i, j     int
		row, best float64
	)
	for i = 0; i < m.r; i++ {
		row = 0
		for j = 0; j < m.c; j++ {
			row += cmplx.Abs(m.data[i*m.c+j])
		}
		best = math.Max(best, row)
	}

	return best
}

// String implements fmt.Stringer for easy debugging.
func (m *CDense) String() string {
	var sb strings.Builder
	var i, j int
	for i = 0; i < m.r; i++ {
		sb.WriteByte('[')
		for j = 0; j < m.c; j++ {
			if j > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%g", m.data[i*m.c+j])
		}
		sb.WriteString("]\n")
	}

	return sb.String()
}
