// Package recurrence_test provides benchmarks for the solver pipeline.
package recurrence_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/katalvlaran/lvrec/recurrence"
)

// sinks to defeat dead-code elimination
var (
	sinkRes *recurrence.Result
	sinkS   *recurrence.Spec
)

// benchOrders are the recurrence orders to benchmark.
var benchOrders = []int{2, 8, 16}

// benchEquation builds an order-k equation over lags 1..k with alternating
// signs, plus k seed values.
func benchEquation(k int) (string, string) {
	var eq, iv strings.Builder
	eq.WriteString("a(n)=")
	for lag := 1; lag <= k; lag++ {
		if lag%2 == 0 {
			eq.WriteString("-")
		} else if lag > 1 {
			eq.WriteString("+")
		}
		fmt.Fprintf(&eq, "a(n-%d)", lag)
		fmt.Fprintf(&iv, "a(%d)=%d\n", lag-1, lag)
	}

	return eq.String(), iv.String()
}

func BenchmarkParseEquation(b *testing.B) {
	b.ReportAllocs()
	eq, _ := benchEquation(16)
	for i := 0; i < b.N; i++ {
		s, err := recurrence.ParseEquation(eq)
		if err != nil {
			b.Fatal(err)
		}
		sinkS = s
	}
}

func BenchmarkSolveGeneralOnly(b *testing.B) {
	b.ReportAllocs()
	for _, k := range benchOrders {
		b.Run(fmt.Sprintf("k=%d", k), func(b *testing.B) {
			eq, _ := benchEquation(k)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				res, err := recurrence.SolveGeneralOnly(eq)
				if err != nil {
					b.Fatal(err)
				}
				sinkRes = res
			}
		})
	}
}

func BenchmarkSolve(b *testing.B) {
	b.ReportAllocs()
	eq, iv := benchEquation(2)
	for i := 0; i < b.N; i++ {
		res, err := recurrence.Solve(eq, iv, recurrence.WithConjugatePairs())
		if err != nil {
			b.Fatal(err)
		}
		sinkRes = res
	}
}
