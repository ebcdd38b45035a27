package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/ponto/internal/clock"
	"github.com/javiermolinar/ponto/internal/punch"
)

var helpItems = [][2]string{
	{"enter", "calculate"},
	{"tab", "next"},
	{"shift+tab", "prev"},
	{"ctrl+l", "clear"},
	{"y", "copy clock-out"},
	{"esc", "quit"},
}

// View renders the model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.TitleStyle.Render("ponto"))
	b.WriteString(" ")
	b.WriteString(m.styles.SubtitleStyle.Render("split-shift clock-out"))
	b.WriteString("\n\n")

	for i, p := range punch.Points {
		label := m.styles.LabelStyle
		if i == m.focus {
			label = m.styles.LabelFocusedStyle
		}
		b.WriteString(label.Render(p.Label()))
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}

	switch {
	case m.calcErr != nil:
		b.WriteString("\n")
		b.WriteString(m.styles.ErrorStyle.Render(m.calcErr.Error()))
		b.WriteString("\n")
	case m.result != nil:
		b.WriteString(m.renderResult())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	if m.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.StatusStyle.Render(m.statusMsg))
	}

	return b.String()
}

func (m Model) renderResult() string {
	r := m.result
	s := m.styles

	total := s.ValueStyle.Render(r.TotalWorked())
	if r.Estimated {
		total += " " + s.MutedStyle.Render("(estimated)")
	}

	compliance := s.OkStyle.Render("✓ compliant")
	if !m.verdict.Compliant {
		compliance = s.ErrorStyle.Render("✗ " + m.verdict.Message)
	}

	rows := []string{
		s.CardLabelStyle.Render("Clock out (tolerance)") + s.ClockOutStyle.Render(r.ClockOutWithTolerance.String()),
		s.CardLabelStyle.Render("Clock out (full shift)") + s.ValueStyle.Render(r.ClockOutFullShift.String()),
		s.CardLabelStyle.Render("Break") + s.ValueStyle.Render(r.Break()),
		s.CardLabelStyle.Render("Total worked") + total,
		s.CardLabelStyle.Render("Overtime") + s.ValueStyle.Render(r.Overtime()),
		s.CardLabelStyle.Render("Break compliance") + compliance,
	}
	if r.Estimated {
		rows = append(rows, s.CardLabelStyle.Render("Time left")+s.ValueStyle.Render(r.TimeLeft(clock.Of(m.now()))))
	}
	if m.timeline != nil {
		rows = append(rows, s.WarningStyle.Render("! "+m.timeline.Error()))
	}

	return s.CardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m Model) renderFooter() string {
	parts := make([]string, 0, len(helpItems))
	for _, item := range helpItems {
		parts = append(parts, m.styles.HelpKeyStyle.Render(item[0])+" "+m.styles.HelpDescStyle.Render(item[1]))
	}
	footer := strings.Join(parts, m.styles.HelpDescStyle.Render(" • "))
	if m.width > 0 {
		footer = ansi.Truncate(footer, m.width, "…")
	}
	return footer
}
