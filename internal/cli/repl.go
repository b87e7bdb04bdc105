// SPDX-License-Identifier: MIT
package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvrec/internal/config"
	"github.com/katalvlaran/lvrec/recurrence"
)

const replPrompt = "lvrec> "

// NewREPLCommand creates the interactive repl command.
func NewREPLCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Solve recurrences interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.FromContext(cmd.Context())
			logger := config.GetLogger(cmd.Context())

			rl, err := readline.NewEx(&readline.Config{
				Prompt:          replPrompt,
				HistoryFile:     cfg.History,
				AutoComplete:    newREPLCompleter(),
				InterruptPrompt: "^C",
				EOFPrompt:       ".quit",
				Stdin:           io.NopCloser(cmd.InOrStdin()),
				Stdout:          cmd.OutOrStdout(),
				Stderr:          cmd.ErrOrStderr(),
			})
			if err != nil {
				return fmt.Errorf("failed to initialize REPL: %w", err)
			}
			defer func() { _ = rl.Close() }()

			s := newSession(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg, cfg.SolverOptions(logger))
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "lvrec v%s interactive solver\n", Version)
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Type .help for commands, .quit to exit")

			for {
				line, err := rl.Readline()
				if errors.Is(err, readline.ErrInterrupt) {
					continue
				}
				if errors.Is(err, io.EOF) {
					return nil
				}
				if err != nil {
					return err
				}
				if quit := s.handle(line); quit {
					return nil
				}
			}
		},
	}
}

// session is the state of one REPL: the current equation and the initial
// values entered so far.
type session struct {
	out, errOut io.Writer
	render      *renderer
	opts        []recurrence.Option

	equation string
	initial  recurrence.InitialValues
}

func newSession(out, errOut io.Writer, cfg *config.Config, opts []recurrence.Option) *session {
	return &session{
		out:     out,
		errOut:  errOut,
		render:  newRenderer(out, cfg.Output),
		opts:    opts,
		initial: make(recurrence.InitialValues),
	}
}

// handle processes one input line and reports whether the REPL should exit.
func (s *session) handle(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	if strings.HasPrefix(line, ".") {
		return s.dot(line)
	}

	compact := strings.ReplaceAll(line, " ", "")
	switch {
	case strings.HasPrefix(compact, "a(n)="):
		res, err := recurrence.SolveGeneralOnly(line, s.opts...)
		if err != nil {
			s.fail(err)
			return false
		}
		s.equation = line
		clear(s.initial)
		rep := Report{}
		fill(&rep, res)
		s.print(rep)
	case strings.HasPrefix(compact, "a("):
		iv, err := recurrence.ParseInitialValues(line, 1, s.opts...)
		if err != nil {
			s.fail(err)
			return false
		}
		for k, v := range iv {
			s.initial[k] = v
		}
		_, _ = fmt.Fprintf(s.out, "%d initial value(s) set\n", len(s.initial))
	default:
		_, _ = fmt.Fprintln(s.errOut, `Expected "a(n)=...", "a(k)=v" or a dot-command (type .help)`)
	}

	return false
}

// dot runs a dot-command.
func (s *session) dot(line string) bool {
	parts := strings.Fields(line)
	switch strings.ToLower(parts[0]) {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(s.out)

	case ".show":
		if s.equation == "" {
			_, _ = fmt.Fprintln(s.out, "no equation")
			return false
		}
		_, _ = fmt.Fprintln(s.out, s.equation)
		for _, v := range s.initialLines() {
			_, _ = fmt.Fprintln(s.out, v)
		}

	case ".clear":
		s.equation = ""
		clear(s.initial)
		_, _ = fmt.Fprintln(s.out, "cleared")

	case ".solve":
		if s.equation == "" {
			_, _ = fmt.Fprintln(s.errOut, "Error: no equation; enter a(n)=... first")
			return false
		}
		p := Problem{Equation: s.equation, Initial: s.initialLines()}
		if len(parts) > 1 {
			n, err := strconv.Atoi(parts[1])
			if err != nil || n < 0 {
				_, _ = fmt.Fprintln(s.errOut, "Usage: .solve [terms]")
				return false
			}
			p.Terms = n
		}
		rep, err := solveProblem(p, s.opts)
		if err != nil {
			s.fail(err)
			return false
		}
		s.print(rep)

	default:
		_, _ = fmt.Fprintf(s.errOut, "Unknown command: %s (type .help for commands)\n", parts[0])
	}

	return false
}

// initialLines returns the stored assignments in index order.
func (s *session) initialLines() []string {
	if len(s.initial) == 0 {
		return nil
	}
	return strings.Split(s.initial.String(), "\n")
}

func (s *session) print(rep Report) {
	if err := s.render.One(rep); err != nil {
		s.fail(err)
	}
}

func (s *session) fail(err error) {
	_, _ = fmt.Fprintf(s.errOut, "Error: %v\n", err)
}

func printREPLHelp(w io.Writer) {
	help := `Commands:
  a(n)=...        Set the equation (clears initial values)
  a(k)=v          Add or replace an initial value
  .solve [terms]  Solve with the current initial values
  .show           Show the equation and initial values
  .clear          Forget the equation and initial values
  .help           Show this help message
  .quit / .exit   Exit the REPL`
	_, _ = fmt.Fprintln(w, help)
}

func newREPLCompleter() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem("a(n)="),
		readline.PcItem(".solve"),
		readline.PcItem(".show"),
		readline.PcItem(".clear"),
		readline.PcItem(".help"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
}
