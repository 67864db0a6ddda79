// Package report renders the violations produced by a lint run: an aligned
// table for a terminal, and a GitHub Actions workflow-command formatter for
// CI. Severity is colorized against the terminal's actual color profile
// rather than assuming truecolor support.
package report

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/muesli/termenv"

	"github.com/leapstack-labs/sqlfmt/pkg/lint"
)

// FileResult is one file's worth of violations, as produced by a lint run.
type FileResult struct {
	Path       string
	Violations []lint.Violation
}

// Summary tallies violations by severity across a run.
type Summary struct {
	Files    int
	Errors   int
	Warnings int
	Infos    int
	Hints    int
}

func (s Summary) Total() int {
	return s.Errors + s.Warnings + s.Infos + s.Hints
}

// Summarize tallies violations across the given files.
func Summarize(results []FileResult) Summary {
	var s Summary
	s.Files = len(results)
	for _, r := range results {
		for _, v := range r.Violations {
			switch v.Severity {
			case lint.SeverityError:
				s.Errors++
			case lint.SeverityWarning:
				s.Warnings++
			case lint.SeverityInfo:
				s.Infos++
			case lint.SeverityHint:
				s.Hints++
			}
		}
	}
	return s
}

// Table renders violations as an aligned table, colorizing severity against
// w's actual color profile.
func Table(w io.Writer, results []FileResult) {
	profile := termenv.NewOutput(w).ColorProfile()

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"File", "Line:Col", "Severity", "Rule", "Description"})

	for _, r := range results {
		for _, v := range r.Violations {
			t.AppendRow(table.Row{
				r.Path,
				fmt.Sprintf("%d:%d", v.Pos.Line, v.Pos.Col),
				severityCell(profile, v.Severity),
				v.RuleCode,
				v.Description,
			})
		}
	}

	t.Render()

	summary := Summarize(results)
	fmt.Fprintf(w, "%d files with violations, %d errors, %d warnings, %d info, %d hints\n",
		summary.Files, summary.Errors, summary.Warnings, summary.Infos, summary.Hints)
}

func severityCell(profile termenv.Profile, sev lint.Severity) string {
	var color termenv.Color
	switch sev {
	case lint.SeverityError:
		color = profile.Color("9") // bright red
	case lint.SeverityWarning:
		color = profile.Color("3") // yellow
	case lint.SeverityInfo:
		color = profile.Color("12") // bright blue
	case lint.SeverityHint:
		color = profile.Color("8") // grey
	default:
		return sev.String()
	}
	return termenv.String(sev.String()).Foreground(color).String()
}
