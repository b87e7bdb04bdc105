// SPDX-License-Identifier: MIT
package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvrec/internal/config"
)

// NewSolveCommand creates the solve command.
func NewSolveCommand() *cobra.Command {
	var (
		initial []string
		count   int
	)

	cmd := &cobra.Command{
		Use:   "solve <equation>",
		Short: "Solve one recurrence",
		Long: `Solve one recurrence given as a(n) = c1*a(n-1) + c2*a(n-2) + ...

Without initial values only the general solution is printed. Each -i flag
adds one initial value; -i may also hold several values separated by
newlines or semicolons.`,
		Example: `  lvrec solve "a(n)=a(n-1)+a(n-2)"
  lvrec solve "a(n)=a(n-1)+a(n-2)" -i "a(0)=0" -i "a(1)=1" --terms 10`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromContext(cmd.Context())
			logger := config.GetLogger(cmd.Context())

			p := Problem{
				Equation: strings.Join(args, ""),
				Initial:  splitInitial(initial),
				Terms:    count,
			}
			rep, err := solveProblem(p, cfg.SolverOptions(logger))
			if err != nil {
				return err
			}

			return newRenderer(cmd.OutOrStdout(), cfg.Output).One(rep)
		},
	}

	cmd.Flags().StringArrayVarP(&initial, "initial", "i", nil, `initial value such as "a(0)=1" (repeatable)`)
	cmd.Flags().IntVar(&count, "terms", 0, "also print this many terms, iterated and from the closed form")

	return cmd
}

// splitInitial flattens flag values that carry several assignments.
func splitInitial(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.FieldsFunc(v, func(r rune) bool { return r == ';' || r == '\n' }) {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}

	return out
}
