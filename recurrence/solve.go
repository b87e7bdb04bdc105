// SPDX-License-Identifier: MIT
package recurrence

import (
	"fmt"

	"github.com/katalvlaran/lvrec/poly"
)

// Result bundles every intermediate of a solve. Constants, InitialValues and
// Full are empty for results of SolveGeneralOnly.
type Result struct {
	Spec           *Spec
	Characteristic poly.Polynomial
	Roots          []complex128 // raw, len == Spec.Order
	Groups         []RootGroup
	Basis          Basis
	General        string

	InitialValues InitialValues
	Constants     []complex128 // Constants[i] multiplies Basis[i]
	Full          string
}

// Solved reports whether constants were determined.
func (r *Result) Solved() bool { return len(r.Constants) > 0 }

// Eval returns the closed form Σ Cᵢ·fᵢ(n) at n (real part).
// Errors: ErrNotSolved for a general-only result.
func (r *Result) Eval(n int) (float64, error) {
	if !r.Solved() {
		return 0, ErrNotSolved
	}

	var sum complex128
	for i, f := range r.Basis {
		if i >= len(r.Constants) {
			break
		}
		sum += r.Constants[i] * f.Eval(n)
	}

	return real(sum), nil
}

// SolveGeneralOnly parses the equation and derives the characteristic
// polynomial, its roots and the general solution. No initial values are
// involved.
func SolveGeneralOnly(equation string, opts ...Option) (*Result, error) {
	o := gatherOptions(opts...)

	// Stage 1: parse
	spec, err := ParseEquation(equation, opts...)
	if err != nil {
		return nil, stageErrorf(stageEquation, err)
	}

	// Stage 2: characteristic polynomial and roots
	p := spec.Characteristic()
	roots, err := FindRoots(p, opts...)
	if err != nil {
		return nil, err
	}

	// Stage 3: group, expand, render
	groups := GroupRoots(roots, opts...)
	basis := BuildBasis(groups, opts...)
	res := &Result{
		Spec:           spec,
		Characteristic: p,
		Roots:          roots,
		Groups:         groups,
		Basis:          basis,
		General:        renderGeneral(basis, o.basePrecision),
	}
	o.logger.Debug("general solution", "equation", spec.String(), "groups", len(groups), "basis", len(basis))

	return res, nil
}

// Solve runs the whole pipeline: SolveGeneralOnly, then initial values,
// constants and the full solution. Any failure aborts the call; no partial
// result is returned.
//
// Errors (match with errors.Is):
//   - ErrParse: malformed equation or initial values, or fewer than Order
//     distinct initial-value indices.
//   - ErrNumeric: root finding failed or produced non-finite values.
//   - ErrUnderdetermined: fewer initial values than basis functions.
//   - ErrSingularSystem: the constant system has no unique solution.
func Solve(equation, initial string, opts ...Option) (*Result, error) {
	o := gatherOptions(opts...)
	res, err := SolveGeneralOnly(equation, opts...)
	if err != nil {
		return nil, err
	}

	// Stage 4: initial values
	iv, err := ParseInitialValues(initial, res.Spec.Order, opts...)
	if err != nil {
		return nil, stageErrorf(stageInitial, err)
	}

	// Stage 5: constants
	constants, err := SolveConstants(res.Basis, iv, opts...)
	if err != nil {
		return nil, err
	}

	res.InitialValues = iv
	res.Constants = constants
	res.Full = renderFull(res.Basis, constants, o.basePrecision)
	o.logger.Debug("full solution", "equation", res.Spec.String(), "constants", len(constants))

	return res, nil
}

// String renders a short multi-line summary.
func (r *Result) String() string {
	s := fmt.Sprintf("equation: %s\ncharacteristic: %s\ngeneral: %s", r.Spec, r.Characteristic, r.General)
	if r.Solved() {
		s += "\nfull: " + r.Full
	}

	return s
}
