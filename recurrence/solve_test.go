package recurrence_test

import (
	"bytes"
	"log/slog"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/katalvlaran/lvrec/matrix"
	"github.com/katalvlaran/lvrec/recurrence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const solveTol = 1e-6

func realParts(roots []complex128) []float64 {
	out := make([]float64, len(roots))
	for i, r := range roots {
		out[i] = real(r)
	}
	sort.Float64s(out)
	return out
}

// assertMatchesIteration compares Result.Eval against direct iteration.
func assertMatchesIteration(t *testing.T, res *recurrence.Result, upto int) {
	t.Helper()
	want, err := res.Spec.Terms(res.InitialValues, res.InitialValues.Indices()[0], upto)
	require.NoError(t, err)
	first := res.InitialValues.Indices()[0]
	for k, w := range want {
		got, err := res.Eval(first + k)
		require.NoError(t, err)
		assert.InDelta(t, w, got, solveTol*math.Max(1, math.Abs(w)), "a(%d)", first+k)
	}
}

// TestSolve_OrderOne: the single root equals c and one constant appears.
func TestSolve_OrderOne(t *testing.T) {
	for _, c := range []int{2, -3, 7, 1} {
		eq := "a(n)=" + strconv.Itoa(c) + "*a(n-1)"
		res, err := recurrence.SolveGeneralOnly(eq)
		require.NoError(t, err, eq)
		require.Len(t, res.Roots, 1)
		assert.InDelta(t, float64(c), real(res.Roots[0]), 1e-9)
		assert.InDelta(t, 0, imag(res.Roots[0]), 1e-9)
		assert.Equal(t, 1, strings.Count(res.General, "C"), res.General)
		assert.False(t, res.Solved())
	}

	res, err := recurrence.SolveGeneralOnly("a(n)=-3*a(n-1)")
	require.NoError(t, err)
	assert.Equal(t, "C₁·(-3)ⁿ", res.General)
}

// TestSolve_DoubleRoot: 2a(n-1) - a(n-2) has root 1 twice.
func TestSolve_DoubleRoot(t *testing.T) {
	res, err := recurrence.SolveGeneralOnly("a(n)=2*a(n-1)-a(n-2)")
	require.NoError(t, err)
	require.Len(t, res.Roots, 2)
	for _, r := range res.Roots {
		assert.InDelta(t, 1, real(r), 1e-9)
		assert.InDelta(t, 0, imag(r), 1e-9)
	}
	require.Len(t, res.Groups, 1)
	assert.Equal(t, 2, res.Groups[0].Multiplicity)
	assert.Equal(t, "C₁·1ⁿ + C₂·n·1ⁿ", res.General)
	assert.Contains(t, res.General, "·1ⁿ")
	assert.Contains(t, res.General, "n·1ⁿ")

	// a(n) = 3 + 2n
	res, err = recurrence.Solve("a(n)=2*a(n-1)-a(n-2)", "a(0)=3\na(1)=5")
	require.NoError(t, err)
	require.Len(t, res.Constants, 2)
	assert.InDelta(t, 3, real(res.Constants[0]), 1e-9)
	assert.InDelta(t, 2, real(res.Constants[1]), 1e-9)
	assert.Equal(t, "3.000·1ⁿ + 2.000·n·1ⁿ", res.Full)
	assertMatchesIteration(t, res, 10)
}

// TestSolve_RoundTrip: a(n)=2a(n-1), a(0)=5 gives C₁ = 5 and 5, 10, 20.
func TestSolve_RoundTrip(t *testing.T) {
	res, err := recurrence.Solve("a(n)=2*a(n-1)", "a(0)=5")
	require.NoError(t, err)
	require.Len(t, res.Constants, 1)
	assert.InDelta(t, 5, real(res.Constants[0]), 1e-9)
	assert.Equal(t, "5.000·2ⁿ", res.Full)

	for n, want := range []float64{5, 10, 20} {
		got, err := res.Eval(n)
		require.NoError(t, err)
		assert.InDelta(t, want, got, 1e-9, "n=%d", n)
	}
}

// TestSolve_TooFewInitialValues fails while parsing the initial values.
func TestSolve_TooFewInitialValues(t *testing.T) {
	_, err := recurrence.Solve("a(n)=a(n-1)+a(n-2)", "a(0)=0")
	require.ErrorIs(t, err, recurrence.ErrParse)
	assert.NotErrorIs(t, err, recurrence.ErrUnderdetermined)
	var pe *recurrence.ParseError
	assert.ErrorAs(t, err, &pe)
}

// TestSolve_MalformedEquation only ever yields parse errors.
func TestSolve_MalformedEquation(t *testing.T) {
	for _, eq := range []string{"2*a(n-1)", "a(n)=2*b(n-1)", "a(n)=", "hello"} {
		_, err := recurrence.SolveGeneralOnly(eq)
		require.ErrorIs(t, err, recurrence.ErrParse, eq)
		assert.NotErrorIs(t, err, recurrence.ErrNumeric, eq)

		_, err = recurrence.Solve(eq, "a(0)=1")
		require.ErrorIs(t, err, recurrence.ErrParse, eq)
	}
}

// TestSolve_Fibonacci: golden ratio roots and 1, 2, 3, 5 at n = 2..5.
func TestSolve_Fibonacci(t *testing.T) {
	res, err := recurrence.Solve("a(n)=a(n-1)+a(n-2)", "a(0)=0\na(1)=1")
	require.NoError(t, err)

	phi := (1 + math.Sqrt(5)) / 2
	got := realParts(res.Roots)
	assert.InDelta(t, 1-phi, got[0], 1e-6)
	assert.InDelta(t, phi, got[1], 1e-6)

	for n, want := range map[int]float64{2: 1, 3: 2, 4: 3, 5: 5} {
		v, err := res.Eval(n)
		require.NoError(t, err)
		assert.InDelta(t, want, v, solveTol, "n=%d", n)
	}
	assertMatchesIteration(t, res, 30)

	// constants are ±1/√5, one per basis function
	require.Len(t, res.Constants, len(res.Basis))
	for _, c := range res.Constants {
		assert.InDelta(t, 1/math.Sqrt(5), math.Abs(real(c)), 1e-9)
	}
	assert.Equal(t, 1, strings.Count(res.Full, " + "), res.Full)
}

// TestSolve_DistinctRealRoots: (r-1)(r-2)(r-3) with initial values past 0.
func TestSolve_DistinctRealRoots(t *testing.T) {
	res, err := recurrence.Solve("a(n) = 6*a(n-1) - 11*a(n-2) + 6*a(n-3)", "a(2)=1\na(3)=4\na(4)=-2")
	require.NoError(t, err)
	assert.Len(t, res.Groups, 3)
	assertMatchesIteration(t, res, 12)
}

// TestSolve_ComplexDefaultBasis: without pairing, ±i yields four functions.
func TestSolve_ComplexDefaultBasis(t *testing.T) {
	const eq = "a(n)=-a(n-2)"

	res, err := recurrence.SolveGeneralOnly(eq)
	require.NoError(t, err)
	assert.Len(t, res.Groups, 2)
	assert.Len(t, res.Basis, 4)
	assert.Equal(t, 2, strings.Count(res.General, "Re("))
	assert.Equal(t, 2, strings.Count(res.General, "Im("))

	_, err = recurrence.Solve(eq, "a(0)=1\na(1)=0")
	assert.ErrorIs(t, err, recurrence.ErrUnderdetermined)

	_, err = recurrence.Solve(eq, "a(0)=1\na(1)=0\na(2)=-1\na(3)=0")
	assert.ErrorIs(t, err, recurrence.ErrSingularSystem)
}

// TestSolve_ConjugatePairs: pairing makes complex-root recurrences solvable.
func TestSolve_ConjugatePairs(t *testing.T) {
	res, err := recurrence.Solve("a(n)=-a(n-2)", "a(0)=1\na(1)=0", recurrence.WithConjugatePairs())
	require.NoError(t, err)
	assert.Len(t, res.Groups, 1)
	assert.Len(t, res.Basis, 2)
	assertMatchesIteration(t, res, 12)

	// roots 1/2 ± (√3/2)i, period 6
	res, err = recurrence.Solve("a(n)=a(n-1)-a(n-2)", "a(0)=0\na(1)=1", recurrence.WithConjugatePairs())
	require.NoError(t, err)
	assertMatchesIteration(t, res, 20)

	// complex pair plus a real root: (r-2)(r²+1) = r³ - 2r² + r - 2
	res, err = recurrence.Solve("a(n)=2*a(n-1)-a(n-2)+2*a(n-3)", "a(0)=1\na(1)=1\na(2)=1", recurrence.WithConjugatePairs())
	require.NoError(t, err)
	assert.Len(t, res.Basis, 3)
	assertMatchesIteration(t, res, 15)
}

// TestSolveConstants_RepeatedComplex: the paired basis covers multiplicity 2.
func TestSolveConstants_RepeatedComplex(t *testing.T) {
	i := complex(0, 1)
	opt := recurrence.WithConjugatePairs()
	groups := recurrence.GroupRoots([]complex128{i, -i, i, -i}, opt)
	basis := recurrence.BuildBasis(groups, opt)
	require.Len(t, basis, 4)

	// a(n) = -2a(n-2) - a(n-4), characteristic (r²+1)²
	spec, err := recurrence.ParseEquation("a(n)=-2*a(n-2)-a(n-4)")
	require.NoError(t, err)
	seed := recurrence.InitialValues{0: 1, 1: 2, 2: 0, 3: -1}
	seq, err := spec.Terms(seed, 0, 12)
	require.NoError(t, err)

	c, err := recurrence.SolveConstants(basis, seed, opt)
	require.NoError(t, err)
	res := &recurrence.Result{Basis: basis, Constants: c}
	for n, want := range seq {
		got, err := res.Eval(n)
		require.NoError(t, err)
		assert.InDelta(t, want, got, 1e-9, "n=%d", n)
	}

	// unpaired, the Re/Im columns of i and -i coincide
	plain := recurrence.BuildBasis(recurrence.GroupRoots([]complex128{i, -i, i, -i}))
	require.Len(t, plain, 4)
	_, err = recurrence.SolveConstants(plain, seed)
	assert.ErrorIs(t, err, recurrence.ErrSingularSystem)
}

// TestSolve_RepeatedConjugateRoundDigits: (r²+1)² through the full pipeline.
// Coarser grouping folds the nearly equal QR roots into one paired group and
// keeps the constants small.
func TestSolve_RepeatedConjugateRoundDigits(t *testing.T) {
	const eq = "a(n)=-2*a(n-2)-a(n-4)"
	const iv = "a(0)=1\na(1)=2\na(2)=3\na(3)=4"

	res, err := recurrence.Solve(eq, iv, recurrence.WithConjugatePairs(), recurrence.WithRoundDigits(6))
	require.NoError(t, err)
	require.Len(t, res.Groups, 1)
	assert.Equal(t, 2, res.Groups[0].Multiplicity)
	assert.True(t, res.Groups[0].Paired)
	require.Len(t, res.Basis, 4)
	for i, c := range res.Constants {
		assert.Less(t, cmplxAbs(c), 100.0, "C%d = %v", i+1, c)
	}
	assertMatchesIteration(t, res, 12)
}

func cmplxAbs(c complex128) float64 { return math.Hypot(real(c), imag(c)) }

// TestSolveConstants_Errors covers the sentinel mapping.
func TestSolveConstants_Errors(t *testing.T) {
	basis := recurrence.Basis{{Root: 1}, {Root: 2}}
	_, err := recurrence.SolveConstants(basis, recurrence.InitialValues{0: 1})
	assert.ErrorIs(t, err, recurrence.ErrUnderdetermined)

	// identical columns
	same := recurrence.Basis{{Root: 2}, {Root: 2}}
	_, err = recurrence.SolveConstants(same, recurrence.InitialValues{0: 1, 1: 2})
	assert.ErrorIs(t, err, recurrence.ErrSingularSystem)
	assert.ErrorIs(t, err, matrix.ErrSingular)

	// huge powers overflow to Inf
	_, err = recurrence.SolveConstants(recurrence.Basis{{Root: 1e300}}, recurrence.InitialValues{5: 1})
	assert.ErrorIs(t, err, recurrence.ErrNumeric)

	// extra initial values beyond len(basis) are ignored
	c, err := recurrence.SolveConstants(recurrence.Basis{{Root: 3}}, recurrence.InitialValues{1: 6, 7: 1})
	require.NoError(t, err)
	assert.InDelta(t, 2, real(c[0]), 1e-12)
}

// TestResult_EvalNotSolved guards general-only results.
func TestResult_EvalNotSolved(t *testing.T) {
	res, err := recurrence.SolveGeneralOnly("a(n)=a(n-1)+a(n-2)")
	require.NoError(t, err)
	_, err = res.Eval(3)
	assert.ErrorIs(t, err, recurrence.ErrNotSolved)
	assert.NotContains(t, res.String(), "full:")
}

// TestSolve_NumericOptions: an impossible iteration budget surfaces as ErrNumeric.
func TestSolve_NumericOptions(t *testing.T) {
	_, err := recurrence.SolveGeneralOnly("a(n)=a(n-1)-a(n-2)+a(n-3)-a(n-4)+a(n-5)",
		recurrence.WithNumeric(matrix.WithMaxIterations(1)))
	require.ErrorIs(t, err, recurrence.ErrNumeric)
	assert.ErrorIs(t, err, matrix.ErrEigenFailed)
}

// TestSolve_Logger: stages log at debug level through the supplied logger.
func TestSolve_Logger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := recurrence.Solve("a(n)=2*a(n-1)", "a(0)=5", recurrence.WithLogger(logger))
	require.NoError(t, err)
	out := buf.String()
	for _, msg := range []string{"parsed equation", "found roots", "general solution", "solved constants", "full solution"} {
		assert.Contains(t, out, msg)
	}
}

// TestSolve_Concurrent: calls share no state.
func TestSolve_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	errs := make([]error, 32)
	vals := make([]float64, 32)
	for k := range errs {
		wg.Add(1)
		go func(k int) {
			defer wg.Done()
			res, err := recurrence.Solve("a(n)=a(n-1)+a(n-2)", "a(0)=0\na(1)=1")
			if err != nil {
				errs[k] = err
				return
			}
			vals[k], errs[k] = res.Eval(10)
		}(k)
	}
	wg.Wait()
	for k := range errs {
		require.NoError(t, errs[k])
		assert.InDelta(t, 55, vals[k], solveTol)
	}
}
