// SPDX-License-Identifier: MIT
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/muesli/termenv"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvrec/internal/config"
	"github.com/katalvlaran/lvrec/recurrence"
)

// labelWidth aligns the values of the text summary.
const labelWidth = 16

// styles decorates text output. The zero value renders plain text.
type styles struct {
	enabled bool
	heading lipgloss.Style
	label   lipgloss.Style
	failure lipgloss.Style
}

// newStyles enables styling only for terminals without NO_COLOR.
func newStyles(w io.Writer) styles {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) || termenv.EnvNoColor() {
		return styles{}
	}

	r := lipgloss.NewRenderer(w)
	return styles{
		enabled: true,
		heading: r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		label:   r.NewStyle().Foreground(lipgloss.Color("8")),
		failure: r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
	}
}

func (s styles) render(st lipgloss.Style, text string) string {
	if !s.enabled {
		return text
	}
	return st.Render(text)
}

// renderer writes reports in one of the configured output formats.
type renderer struct {
	w      io.Writer
	format string
	styles styles
}

func newRenderer(w io.Writer, format string) *renderer {
	return &renderer{w: w, format: format, styles: newStyles(w)}
}

// One renders a single report; machine formats emit an object.
func (r *renderer) One(rep Report) error {
	switch r.format {
	case config.OutputJSON:
		return r.json(rep)
	case config.OutputYAML:
		return r.yaml(rep)
	default:
		return r.All([]Report{rep})
	}
}

// All renders reports in order; machine formats emit a list.
func (r *renderer) All(reps []Report) error {
	switch r.format {
	case config.OutputJSON:
		return r.json(reps)
	case config.OutputYAML:
		return r.yaml(reps)
	case config.OutputTable:
		for i, rep := range reps {
			if i > 0 {
				_, _ = fmt.Fprintln(r.w)
			}
			r.table(rep)
		}
		return nil
	default:
		for i, rep := range reps {
			if i > 0 {
				_, _ = fmt.Fprintln(r.w)
			}
			r.text(rep)
		}
		return nil
	}
}

func (r *renderer) json(v any) error {
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (r *renderer) yaml(v any) error {
	enc := yaml.NewEncoder(r.w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// summary returns the label/value rows shared by text and table output.
func summary(rep Report) [][2]string {
	rows := [][2]string{{"Equation", rep.Equation}}
	if rep.Characteristic != "" {
		roots := make([]string, len(rep.Roots))
		for i, root := range rep.Roots {
			roots[i] = root.Text
		}
		rows = append(rows,
			[2]string{"Characteristic", rep.Characteristic + " = 0"},
			[2]string{"Roots", strings.Join(roots, ", ")},
			[2]string{"General", "a(n) = " + rep.General},
		)
	}
	if len(rep.Initial) > 0 {
		rows = append(rows, [2]string{"Initial values", strings.Join(rep.Initial, ", ")})
	}
	if len(rep.Constants) > 0 {
		cs := make([]string, len(rep.Constants))
		for i, c := range rep.Constants {
			cs[i] = "C" + recurrence.Subscript(c.Index) + " = " + c.Text
		}
		rows = append(rows, [2]string{"Constants", strings.Join(cs, ", ")})
	}
	if rep.Full != "" {
		rows = append(rows, [2]string{"Full", "a(n) = " + rep.Full})
	}
	if rep.Error != "" {
		rows = append(rows, [2]string{"Error", rep.Error})
	}

	return rows
}

func (r *renderer) text(rep Report) {
	if rep.Name != "" {
		_, _ = fmt.Fprintln(r.w, r.styles.render(r.styles.heading, "== "+rep.Name+" =="))
	}
	for _, row := range summary(rep) {
		label := fmt.Sprintf("%-*s", labelWidth, row[0]+":")
		style := r.styles.label
		if row[0] == "Error" {
			style = r.styles.failure
		}
		_, _ = fmt.Fprintf(r.w, "%s %s\n", r.styles.render(style, label), row[1])
	}
	if len(rep.Terms) == 0 {
		return
	}

	_, _ = fmt.Fprintln(r.w)
	for _, t := range rep.Terms {
		_, _ = fmt.Fprintf(r.w, "  a(%d) = %s  [closed form: %s]\n", t.N, formatNumber(t.Value), formatNumber(t.Closed))
	}
}

func (r *renderer) table(rep Report) {
	t := table.NewWriter()
	t.SetOutputMirror(r.w)
	t.SetStyle(table.StyleLight)
	if rep.Name != "" {
		t.SetTitle(rep.Name)
	}
	for _, row := range summary(rep) {
		t.AppendRow(table.Row{row[0], row[1]})
	}
	t.Render()

	if len(rep.Terms) == 0 {
		return
	}
	tt := table.NewWriter()
	tt.SetOutputMirror(r.w)
	tt.SetStyle(table.StyleLight)
	tt.AppendHeader(table.Row{"n", "a(n)", "closed form"})
	for _, term := range rep.Terms {
		tt.AppendRow(table.Row{term.N, formatNumber(term.Value), formatNumber(term.Closed)})
	}
	tt.Render()
}
