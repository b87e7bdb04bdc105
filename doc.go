// Package lvrec is a solver for linear homogeneous recurrences with
// constant coefficients: from "a(n) = a(n-1) + a(n-2)" to the closed form
// a(n) = C₁·r₁ⁿ + C₂·r₂ⁿ, with the constants fitted to initial values.
//
// 🚀 What is lvrec?
//
//	A small, deterministic, pure-Go toolkit that brings together:
//		• Parsing: equations and initial values, permissive or strict
//		• Characteristic polynomials and their roots (companion matrix + QR)
//		• Multiplicity grouping and the n^j·rⁿ solution basis
//		• Constants from a complex linear system (Gaussian elimination)
//		• Pretty-printed general and full solutions
//		• A CLI: solve, batch (YAML, concurrent), an interactive REPL
//
// ✨ Why choose lvrec?
//
//   - Re-entrant: no global state, safe for concurrent callers
//   - Explicit errors: sentinel errors matched with errors.Is
//   - Configurable: functional options for precision, grouping and numerics
//
// Under the hood, everything is organized under three packages:
//
//	matrix/     : dense real/complex matrices, companion matrix, eigenvalues, complex solve
//	poly/       : characteristic polynomials: evaluation, roots, rendering
//	recurrence/ : parse → roots → basis → constants → rendered solutions
//
// Quick example:
//
//	res, err := recurrence.Solve("a(n)=a(n-1)+a(n-2)", "a(0)=0\na(1)=1")
//	fmt.Println(res.General, res.Full)
//
//	go install github.com/katalvlaran/lvrec/cmd/lvrec@latest
package lvrec
