package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvrec/recurrence"
)

const batchDoc = `problems:
  - name: geometric
    equation: a(n) = 2*a(n-1)
    initial: ["a(0)=1"]
    terms: 3
  - name: alternating
    equation: a(n) = -3a(n-1)
`

func TestBatch_TextGolden(t *testing.T) {
	path := filepath.Join(t.TempDir(), "problems.yaml")
	require.NoError(t, os.WriteFile(path, []byte(batchDoc), 0o600))

	out, _, err := run(t, "", "--workers", "2", "batch", path)
	require.NoError(t, err)
	newGoldie(t).Assert(t, "batch", []byte(out))
}

func TestBatch_Stdin(t *testing.T) {
	doc := batchDoc + "  - name: broken\n    equation: a(n) = a(n-x)\n"
	out, _, err := run(t, doc, "-o", "json", "batch", "-")
	require.ErrorIs(t, err, ErrBatchFailed)
	assert.Contains(t, err.Error(), "1 of 3")

	var reps []Report
	require.NoError(t, json.Unmarshal([]byte(out), &reps))
	require.Len(t, reps, 3)
	assert.Equal(t, "geometric", reps[0].Name)
	assert.Empty(t, reps[0].Error)
	assert.Equal(t, "broken", reps[2].Name)
	assert.NotEmpty(t, reps[2].Error)
}

func TestBatch_MissingFile(t *testing.T) {
	_, _, err := run(t, "", "batch", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open batch file")
}

func TestReadBatch(t *testing.T) {
	problems, err := readBatch(strings.NewReader(batchDoc))
	require.NoError(t, err)
	require.Len(t, problems, 2)
	assert.Equal(t, Problem{Name: "geometric", Equation: "a(n) = 2*a(n-1)", Initial: []string{"a(0)=1"}, Terms: 3}, problems[0])

	_, err = readBatch(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyBatch)

	_, err = readBatch(strings.NewReader("problems: []\n"))
	assert.ErrorIs(t, err, ErrEmptyBatch)

	_, err = readBatch(strings.NewReader("problems:\n  - equation: a(n)=a(n-1)\n    intial: [\"a(0)=1\"]\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "intial")
}

// TestSolveAll_Order checks that reports keep input order under concurrency.
func TestSolveAll_Order(t *testing.T) {
	var problems []Problem
	for k := 1; k <= 40; k++ {
		eq := "a(n) = " + strconv.Itoa(k) + "*a(n-1)"
		problems = append(problems, Problem{Name: strconv.Itoa(k), Equation: eq, Initial: []string{"a(0)=1"}, Terms: 2})
	}
	problems = append(problems, Problem{Name: "bad", Equation: "nonsense"})

	reports, failed := solveAll(problems, 4, nil)
	require.Len(t, reports, len(problems))
	assert.Equal(t, 1, failed)
	for k := 1; k <= 40; k++ {
		rep := reports[k-1]
		assert.Equal(t, strconv.Itoa(k), rep.Name)
		require.Len(t, rep.Terms, 2)
		assert.Equal(t, float64(k), rep.Terms[1].Value)
	}
	assert.Contains(t, reports[40].Error, recurrence.ErrParse.Error())
}
