// SPDX-License-Identifier: MIT

// Package recurrence: functional configuration for the solver pipeline.
// Defaults reproduce the behaviour of the classic tool; every WithX setter
// validates its argument and panics on nonsensical values (programmer error).
package recurrence

import (
	"log/slog"

	"github.com/katalvlaran/lvrec/matrix"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultRoundDigits is the number of decimal places roots are rounded to
	// before they are compared for multiplicity grouping.
	DefaultRoundDigits = 10

	// DefaultBasePrecision is the number of decimals used for a real root
	// printed as the base of a power ("2ⁿ", "(-1)ⁿ").
	DefaultBasePrecision = 0

	// ComplexBasePrecision is the number of decimals for complex bases.
	ComplexBasePrecision = 2

	// ConstantPrecision is the number of decimals for solved constants.
	ConstantPrecision = 3

	// ImagNegligible is the |Im| below which a constant renders as real.
	ImagNegligible = 1e-10

	// DefaultMaxOrder is the largest lag ParseEquation accepts. The root
	// finder needs O(order²) memory and O(order³) time.
	DefaultMaxOrder = 512

	maxRoundDigits   = 15
	maxBasePrecision = 12
)

const (
	panicRoundDigitsInvalid   = "recurrence: WithRoundDigits: digits must be in [0, 15]"
	panicBasePrecisionInvalid = "recurrence: WithBasePrecision: digits must be in [0, 12]"
	panicLoggerNil            = "recurrence: WithLogger: logger must not be nil"
	panicMaxOrderInvalid      = "recurrence: WithMaxOrder: order must be > 0"
)

// Options holds the effective pipeline configuration.
type Options struct {
	roundDigits    int
	basePrecision  int
	strict         bool
	conjugatePairs bool
	maxOrder       int
	logger         *slog.Logger
	numeric        []matrix.Option
}

// Option mutates Options.
type Option func(*Options)

// WithRoundDigits sets the rounding used to detect numerically equal roots.
func WithRoundDigits(d int) Option {
	if d < 0 || d > maxRoundDigits {
		panic(panicRoundDigitsInvalid)
	}

	return func(o *Options) { o.roundDigits = d }
}

// WithBasePrecision sets the decimals printed for real power bases.
// The default 0 prints integer-rounded bases ("2ⁿ").
func WithBasePrecision(d int) Option {
	if d < 0 || d > maxBasePrecision {
		panic(panicBasePrecisionInvalid)
	}

	return func(o *Options) { o.basePrecision = d }
}

// WithStrictParsing rejects text between recognised terms instead of
// silently skipping it, and requires initial-value lines to match fully.
func WithStrictParsing() Option {
	return func(o *Options) { o.strict = true }
}

// WithConjugatePairs merges each complex-conjugate root pair into a single
// group that contributes n^j·Re(rⁿ) and n^j·Im(rⁿ) for every multiplicity
// level j. Without it every complex root contributes Re(rⁿ), Im(rⁿ) on its
// own, which leaves constant solving singular whenever complex roots exist.
//
// Repeated complex roots come back from the QR iteration split by about
// 1e-9, so the default 10-digit grouping keeps them apart: the system still
// solves and Result.Eval is correct, but the constants are huge and cancel.
// Combine with WithRoundDigits(6) or lower to group such roots.
func WithConjugatePairs() Option {
	return func(o *Options) { o.conjugatePairs = true }
}

// WithMaxOrder sets the largest lag ParseEquation accepts.
// Panics if n <= 0.
func WithMaxOrder(n int) Option {
	if n <= 0 {
		panic(panicMaxOrderInvalid)
	}

	return func(o *Options) { o.maxOrder = n }
}

// WithLogger routes debug tracing of the pipeline stages to l.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic(panicLoggerNil)
	}

	return func(o *Options) { o.logger = l }
}

// WithNumeric forwards options to the matrix kernels (QR iteration budget,
// singularity tolerance, balancing).
func WithNumeric(opts ...matrix.Option) Option {
	return func(o *Options) { o.numeric = append(o.numeric, opts...) }
}

func defaultOptions() Options {
	return Options{
		roundDigits:   DefaultRoundDigits,
		basePrecision: DefaultBasePrecision,
		maxOrder:      DefaultMaxOrder,
		logger:        slog.New(slog.DiscardHandler),
	}
}

// gatherOptions applies setters over defaults (last-writer-wins).
func gatherOptions(user ...Option) Options {
	o := defaultOptions()
	for _, fn := range user {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
