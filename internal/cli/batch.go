// SPDX-License-Identifier: MIT
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvrec/internal/config"
	"github.com/katalvlaran/lvrec/recurrence"
)

var (
	// ErrEmptyBatch is returned for a batch file without problems.
	ErrEmptyBatch = errors.New("batch: no problems")

	// ErrBatchFailed is returned when at least one problem failed.
	ErrBatchFailed = errors.New("batch: problems failed")
)

// BatchFile is the document read by the batch command.
type BatchFile struct {
	Problems []Problem `yaml:"problems"`
}

// NewBatchCommand creates the batch command.
func NewBatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "batch <file.yaml|->",
		Short: "Solve every problem in a YAML file",
		Long: `Solve every problem listed in a YAML file ("-" reads stdin):

  problems:
    - name: fibonacci
      equation: a(n) = a(n-1) + a(n-2)
      initial: ["a(0)=0", "a(1)=1"]
      terms: 10

Problems are solved concurrently (--workers); output keeps file order.
A failed problem is reported in place and makes the command fail.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromContext(cmd.Context())
			logger := config.GetLogger(cmd.Context())

			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("failed to open batch file: %w", err)
				}
				defer func() { _ = f.Close() }()
				r = f
			}
			problems, err := readBatch(r)
			if err != nil {
				return err
			}

			reports, failed := solveAll(problems, cfg.Workers, cfg.SolverOptions(logger))
			logger.Debug("batch done", "problems", len(problems), "failed", failed)
			if err := newRenderer(cmd.OutOrStdout(), cfg.Output).All(reports); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%w: %d of %d", ErrBatchFailed, failed, len(problems))
			}

			return nil
		},
	}
}

// readBatch decodes a batch document; unknown fields are rejected.
func readBatch(r io.Reader) ([]Problem, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc BatchFile
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyBatch
		}
		return nil, fmt.Errorf("failed to parse batch file: %w", err)
	}
	if len(doc.Problems) == 0 {
		return nil, ErrEmptyBatch
	}

	return doc.Problems, nil
}

// solveAll solves problems with at most workers in flight. reports[i]
// belongs to problems[i]; failures are recorded in the report, not
// propagated, so every problem is attempted.
func solveAll(problems []Problem, workers int, opts []recurrence.Option) ([]Report, int) {
	reports := make([]Report, len(problems))
	var failed atomic.Int64

	var g errgroup.Group
	g.SetLimit(workers)
	for i, p := range problems {
		g.Go(func() error {
			rep, err := solveProblem(p, opts)
			if err != nil {
				failed.Add(1)
			}
			reports[i] = rep
			return nil
		})
	}
	_ = g.Wait()

	return reports, int(failed.Load())
}
