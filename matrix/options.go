// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for the numeric kernels.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that applies setters over defaults.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - No dead switches: each option impacts a kernel and is covered by tests.
//   - Safe by construction: panic only on invalid parameters (programmer error).
package matrix

import "math"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultMaxIterations bounds the QR sweeps spent on a single eigenvalue
	// before Eigenvalues gives up with ErrEigenFailed.
	DefaultMaxIterations = 60

	// DefaultSingularTolerance is the relative pivot threshold used by
	// SolveComplex: a pivot with |p| <= tol·‖A‖∞ is treated as zero.
	DefaultSingularTolerance = 1e-12

	// DefaultBalance toggles radix-2 balancing before QR iteration.
	DefaultBalance = true
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicMaxIterationsInvalid = "matrix: WithMaxIterations: iterations must be > 0"
	panicSingularTolInvalid   = "matrix: WithSingularTolerance: tol must be finite, non-negative"
)

// Options holds the effective numeric policy. Fields are unexported; public
// APIs consume ...Option.
type Options struct {
	maxIterations int     // QR sweeps per eigenvalue
	singularTol   float64 // relative pivot threshold
	balance       bool    // radix-2 balancing before QR
}

// Option mutates Options. Constructors MUST panic only on nonsensical values.
type Option func(*Options)

// WithMaxIterations sets the per-eigenvalue QR iteration budget.
// Panics if n <= 0.
func WithMaxIterations(n int) Option {
	if n <= 0 {
		panic(panicMaxIterationsInvalid)
	}

	return func(o *Options) { o.maxIterations = n }
}

// WithSingularTolerance sets the relative pivot threshold for SolveComplex.
// A zero tolerance only rejects exactly-zero pivots.
// Panics if tol is negative, NaN or Inf.
func WithSingularTolerance(tol float64) Option {
	if tol < 0 || math.IsNaN(tol) || math.IsInf(tol, 0) {
		panic(panicSingularTolInvalid)
	}

	return func(o *Options) { o.singularTol = tol }
}

// WithoutBalancing disables the balancing pass in Eigenvalues.
func WithoutBalancing() Option {
	return func(o *Options) { o.balance = false }
}

// NewOptions resolves a sequence of setters into an Options snapshot.
// Useful for callers that forward the policy across several kernels.
func NewOptions(opts ...Option) Options {
	return gatherOptions(opts...)
}

// MaxIterations reports the effective QR iteration budget.
func (o Options) MaxIterations() int { return o.maxIterations }

// SingularTolerance reports the effective relative pivot threshold.
func (o Options) SingularTolerance() float64 { return o.singularTol }

// defaultOptions returns the documented defaults.
func defaultOptions() Options {
	return Options{
		maxIterations: DefaultMaxIterations,
		singularTol:   DefaultSingularTolerance,
		balance:       DefaultBalance,
	}
}

// gatherOptions applies user-provided setters on top of defaults
// (last-writer-wins). Nil setters are skipped.
func gatherOptions(user ...Option) Options {
	o := defaultOptions()
	for _, fn := range user {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
