// SPDX-License-Identifier: MIT

// Package recurrence solves constant-coefficient linear recurrences
//
//	a(n) = c1·a(n-1) + c2·a(n-2) + … + ck·a(n-k)
//
// in closed form.
//
// Pipeline:
//
//	text ─ParseEquation→ Spec ─Characteristic→ poly.Polynomial ─FindRoots→ []complex128
//	     ─GroupRoots→ []RootGroup ─BuildBasis→ Basis ─GeneralSolution→ "C₁·2ⁿ + C₂·n·2ⁿ"
//	Basis + ParseInitialValues → SolveConstants → FullSolution
//
// Solve and SolveGeneralOnly run the pipeline end to end and return a
// Result. Every call is a pure function of its inputs; no state is shared
// between calls, so concurrent use needs no locking.
//
// Basis functions:
//   - a real root r of multiplicity m contributes n^j·rⁿ, j = 0..m-1;
//   - a complex root contributes Re(rⁿ) and Im(rⁿ) once, regardless of its
//     multiplicity and of its conjugate. Such systems are usually singular;
//     WithConjugatePairs switches to the textbook basis
//     n^j·Re(rⁿ), n^j·Im(rⁿ) per conjugate pair and multiplicity level.
//
// The full solution pairs every solved constant with its own basis function.
//
// Errors are sentinels (ErrParse, ErrNumeric, ErrUnderdetermined,
// ErrSingularSystem, ErrNotSolved) wrapped with the failing stage; match
// them with errors.Is. Parse failures are *ParseError values.
package recurrence
