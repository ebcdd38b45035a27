package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/javiermolinar/ponto/internal/compliance"
	"github.com/javiermolinar/ponto/internal/punch"
	"github.com/javiermolinar/ponto/internal/report"
)

// rowLabelWidth is the padded width of the label column.
const rowLabelWidth = 24

// separator returns a horizontal rule sized to the terminal, at most 40 wide.
func separator() string {
	return strings.Repeat("─", min(termWidth(), 40))
}

func printRow(w io.Writer, label, value string) {
	_, _ = fmt.Fprintf(w, "  %-*s %s\n", rowLabelWidth, label, value)
}

// PrintReport prints a report as a colored result card.
// timeline is the advisory ordering error from shift.Observation.CheckTimeline, if any.
func PrintReport(w io.Writer, r report.Report, timeline error) {
	total := r.TotalWorked.Text
	if r.Estimated {
		total += " " + formatMuted("(estimated)")
	}

	printRow(w, "Clock out (tolerance)", formatClockOut(r.ClockOutWithTolerance))
	printRow(w, "Clock out (full shift)", r.ClockOutFullShift)
	printRow(w, "Break", r.Break.Text)
	printRow(w, "Total worked", total)
	printRow(w, "Overtime", overtimeText(r.Overtime))
	printRow(w, "Break compliance", verdictText(r.Compliance))

	if timeline != nil {
		_, _ = fmt.Fprintf(w, "\n  %s\n", formatWarn("! "+timeline.Error()))
	}
}

func overtimeText(d report.Duration) string {
	if d.Minutes > 0 {
		return formatOk(d.Text)
	}
	return d.Text
}

func verdictText(v compliance.Verdict) string {
	if v.Compliant {
		return formatOk("✓ compliant")
	}
	return formatError("✗ " + v.Message)
}

// PrintDraft prints the clock points recorded today.
func PrintDraft(w io.Writer, d *punch.Draft) {
	_, _ = fmt.Fprintf(w, "%s\n", formatHeader(d.Date.Format("Monday, January 2, 2006")))
	_, _ = fmt.Fprintln(w, separator())
	for _, p := range punch.Points {
		v := d.Get(p)
		if v == "" {
			v = formatMuted("--:--")
		}
		printRow(w, p.Label(), v)
	}
}
