// SPDX-License-Identifier: MIT
package cli

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/lvrec/recurrence"
)

// errTermsNeedInitial is returned when --terms is used without initial values.
var errTermsNeedInitial = errors.New("terms need initial values")

// Problem is one recurrence to solve, as given on the command line or in a
// batch file.
type Problem struct {
	Name     string   `yaml:"name,omitempty" json:"name,omitempty"`
	Equation string   `yaml:"equation" json:"equation"`
	Initial  []string `yaml:"initial,omitempty" json:"initial,omitempty"`
	Terms    int      `yaml:"terms,omitempty" json:"terms,omitempty"`
}

// Report is the rendered outcome of one Problem.
type Report struct {
	Name           string     `json:"name,omitempty" yaml:"name,omitempty"`
	Equation       string     `json:"equation" yaml:"equation"`
	Order          int        `json:"order,omitempty" yaml:"order,omitempty"`
	Characteristic string     `json:"characteristic,omitempty" yaml:"characteristic,omitempty"`
	Coefficients   []float64  `json:"coefficients,omitempty" yaml:"coefficients,omitempty"`
	Roots          []Root     `json:"roots,omitempty" yaml:"roots,omitempty"`
	General        string     `json:"general,omitempty" yaml:"general,omitempty"`
	Initial        []string   `json:"initial,omitempty" yaml:"initial,omitempty"`
	Constants      []Constant `json:"constants,omitempty" yaml:"constants,omitempty"`
	Full           string     `json:"full,omitempty" yaml:"full,omitempty"`
	Terms          []Term     `json:"terms,omitempty" yaml:"terms,omitempty"`
	Error          string     `json:"error,omitempty" yaml:"error,omitempty"`
}

// Root is one characteristic root.
type Root struct {
	Re   float64 `json:"re" yaml:"re"`
	Im   float64 `json:"im" yaml:"im"`
	Text string  `json:"text" yaml:"text"`
}

// Constant is one solved constant; Index is 1-based (C₁ is Index 1).
type Constant struct {
	Index int     `json:"index" yaml:"index"`
	Re    float64 `json:"re" yaml:"re"`
	Im    float64 `json:"im" yaml:"im"`
	Text  string  `json:"text" yaml:"text"`
}

// Term pairs a directly iterated value with the closed form at the same n.
type Term struct {
	N      int     `json:"n" yaml:"n"`
	Value  float64 `json:"value" yaml:"value"`
	Closed float64 `json:"closed" yaml:"closed"`
}

// solveProblem runs the solver for p. The returned report is always
// usable; on failure it carries the error text and err is non-nil.
func solveProblem(p Problem, opts []recurrence.Option) (Report, error) {
	rep := Report{Name: p.Name, Equation: p.Equation}

	var (
		res *recurrence.Result
		err error
	)
	if len(p.Initial) == 0 {
		res, err = recurrence.SolveGeneralOnly(p.Equation, opts...)
	} else {
		res, err = recurrence.Solve(p.Equation, strings.Join(p.Initial, "\n"), opts...)
	}
	if err != nil {
		rep.Error = err.Error()
		return rep, err
	}
	fill(&rep, res)

	if p.Terms > 0 {
		if !res.Solved() {
			err = fmt.Errorf("%w: %d requested", errTermsNeedInitial, p.Terms)
			rep.Error = err.Error()
			return rep, err
		}
		if rep.Terms, err = terms(res, p.Terms); err != nil {
			rep.Error = err.Error()
			return rep, err
		}
	}

	return rep, nil
}

// fill copies a solver result into rep.
func fill(rep *Report, res *recurrence.Result) {
	rep.Equation = res.Spec.String()
	rep.Order = res.Spec.Order
	rep.Characteristic = res.Characteristic.String()
	rep.Coefficients = append([]float64(nil), res.Characteristic...)
	rep.General = res.General

	rep.Roots = make([]Root, len(res.Roots))
	for i, r := range res.Roots {
		rep.Roots[i] = Root{Re: real(r), Im: imag(r), Text: recurrence.FormatRoot(r)}
	}
	if !res.Solved() {
		return
	}

	rep.Initial = strings.Split(res.InitialValues.String(), "\n")
	rep.Constants = make([]Constant, len(res.Constants))
	for i, c := range res.Constants {
		rep.Constants[i] = Constant{Index: i + 1, Re: real(c), Im: imag(c), Text: recurrence.FormatConstant(c)}
	}
	rep.Full = res.Full
}

// terms iterates count values from the first initial index and evaluates
// the closed form alongside.
func terms(res *recurrence.Result, count int) ([]Term, error) {
	from := res.InitialValues.Indices()[0]
	values, err := res.Spec.Terms(res.InitialValues, from, count)
	if err != nil {
		return nil, err
	}

	out := make([]Term, len(values))
	for k, v := range values {
		closed, err := res.Eval(from + k)
		if err != nil {
			return nil, err
		}
		out[k] = Term{N: from + k, Value: v, Closed: closed}
	}

	return out, nil
}

// formatNumber prints a value with up to ten significant digits; values
// within 1e-9 of zero print as 0.
func formatNumber(v float64) string {
	if math.Abs(v) < 1e-9 {
		return "0"
	}
	return fmt.Sprintf("%.10g", v)
}
