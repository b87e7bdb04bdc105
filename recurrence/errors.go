// SPDX-License-Identifier: MIT
// Package recurrence: sentinel error set.
// Every stage fails fast and returns one of these sentinels, usually wrapped
// with the stage name ("roots: recurrence: numeric failure: ..."). Callers
// MUST match with errors.Is; the message text is not part of the contract.

package recurrence

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrParse marks malformed equation or initial-value text, including too
	// few distinct initial values for the recurrence order.
	ErrParse = errors.New("recurrence: parse error")

	// ErrNumeric marks a numeric failure: root finding did not converge or
	// a value overflowed to NaN/Inf.
	ErrNumeric = errors.New("recurrence: numeric failure")

	// ErrUnderdetermined marks fewer usable initial-value indices than basis
	// functions to solve for.
	ErrUnderdetermined = errors.New("recurrence: underdetermined system")

	// ErrSingularSystem marks a constant-solving system without a unique
	// solution (degenerate basis or dependent initial conditions).
	ErrSingularSystem = errors.New("recurrence: singular system")

	// ErrRange marks an argument outside the valid range, such as a term
	// window starting before the known values.
	ErrRange = errors.New("recurrence: out of range")

	// ErrNotSolved is returned by Result.Eval when no constants were solved
	// (the result came from SolveGeneralOnly).
	ErrNotSolved = errors.New("recurrence: constants not solved")
)

// ParseError describes why a piece of input text was rejected.
// It matches ErrParse via errors.Is.
type ParseError struct {
	Input  string // offending text (whole equation or single line)
	Line   int    // 1-based line for initial values, 0 for the equation
	Reason string // human-readable cause
}

// Error implements error.
func (e *ParseError) Error() string {
	where := ""
	if e.Line > 0 {
		where = " (line " + strconv.Itoa(e.Line) + ")"
	}

	return fmt.Sprintf("%s%s: %s: %q", ErrParse.Error(), where, e.Reason, e.Input)
}

// Unwrap exposes ErrParse for errors.Is.
func (e *ParseError) Unwrap() error { return ErrParse }

// stageErrorf wraps err with the pipeline stage tag, preserving it via %w.
func stageErrorf(stage string, err error) error {
	return fmt.Errorf("%s: %w", stage, err)
}

// Stage tags used in wrapped errors and debug logs.
const (
	stageEquation  = "equation"
	stageRoots     = "roots"
	stageInitial   = "initial values"
	stageConstants = "constants"
)
