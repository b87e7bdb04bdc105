// SPDX-License-Identifier: MIT

// Package cli implements the lvrec command-line interface.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvrec/internal/config"
	"github.com/katalvlaran/lvrec/recurrence"
)

// Version is set at build time.
var Version = "0.1.0"

// NewRootCommand creates the root command with every subcommand attached.
func NewRootCommand() *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "lvrec",
		Short: "lvrec - linear recurrence solver",
		Long: `lvrec solves homogeneous linear recurrences with constant coefficients,
such as a(n) = a(n-1) + a(n-2).

It derives the characteristic polynomial and its roots, prints the general
solution and, given initial values, the constants and the full closed form.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			logger := config.NewLogger(cmd.ErrOrStderr(), cfg.Verbose)
			if cfg.File != "" {
				logger.Debug("using config file", "path", cfg.File)
			}

			ctx := config.WithConfig(cmd.Context(), cfg)
			ctx = config.WithLogger(ctx, logger)
			cmd.SetContext(ctx)

			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	pf := cmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: ./"+config.FileName+")")
	pf.StringP("output", "o", config.DefaultOutput, "output format (text|table|json|yaml)")
	pf.BoolP("verbose", "v", false, "log pipeline stages to stderr")
	pf.Int("round-digits", recurrence.DefaultRoundDigits, "decimal digits used to group repeated roots")
	pf.Int("base-precision", recurrence.DefaultBasePrecision, "decimal places of real bases in solutions")
	pf.Int("max-order", recurrence.DefaultMaxOrder, "largest lag accepted in an equation")
	pf.Bool("strict", false, "reject trailing text in equations and initial values")
	pf.Bool("conjugate-pairs", false, "fold conjugate roots into one Re/Im basis pair (pair with --round-digits 6 for repeated complex roots)")
	pf.Int("workers", 0, "concurrent solves in batch mode (default: number of CPUs)")

	_ = cmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return config.ValidOutputs, cobra.ShellCompDirectiveNoFileComp
	})

	cmd.AddCommand(NewSolveCommand())
	cmd.AddCommand(NewBatchCommand())
	cmd.AddCommand(NewREPLCommand())
	cmd.AddCommand(NewVersionCommand())

	return cmd
}

// Execute runs the root command and returns the process exit code.
func Execute(ctx context.Context, args ...string) int {
	cmd := NewRootCommand()
	if len(args) > 0 {
		cmd.SetArgs(args)
	}
	if err := cmd.ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return 1
	}

	return 0
}
