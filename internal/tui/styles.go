// Package tui provides the terminal user interface for ponto.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/ponto/internal/tui/theme"
)

// labelWidth is the width of the field label column.
const labelWidth = 24

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	// Title style
	TitleStyle    lipgloss.Style
	SubtitleStyle lipgloss.Style

	// Form
	LabelStyle        lipgloss.Style
	LabelFocusedStyle lipgloss.Style
	InputTextStyle    lipgloss.Style
	InputPromptStyle  lipgloss.Style
	PlaceholderStyle  lipgloss.Style
	CursorStyle       lipgloss.Style

	// Result card
	CardStyle      lipgloss.Style
	CardLabelStyle lipgloss.Style
	ClockOutStyle  lipgloss.Style
	ValueStyle     lipgloss.Style
	MutedStyle     lipgloss.Style
	OkStyle        lipgloss.Style
	WarningStyle   lipgloss.Style
	ErrorStyle     lipgloss.Style

	// Footer
	HelpKeyStyle  lipgloss.Style
	HelpDescStyle lipgloss.Style
	StatusStyle   lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(t *theme.Theme) *Styles {
	p := theme.NewPalette(t)

	return &Styles{
		TitleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.TextOnAccent).
			Background(p.Accent).
			Padding(0, 1),
		SubtitleStyle: lipgloss.NewStyle().
			Foreground(p.FgMuted),

		LabelStyle: lipgloss.NewStyle().
			Width(labelWidth).
			Foreground(p.FgMuted),
		LabelFocusedStyle: lipgloss.NewStyle().
			Width(labelWidth).
			Bold(true).
			Foreground(p.Accent),
		InputTextStyle: lipgloss.NewStyle().
			Foreground(p.Fg),
		InputPromptStyle: lipgloss.NewStyle().
			Foreground(p.Accent),
		PlaceholderStyle: lipgloss.NewStyle().
			Foreground(p.FgMuted).
			Italic(true),
		CursorStyle: lipgloss.NewStyle().
			Foreground(p.Accent),

		CardStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(0, 1).
			MarginTop(1),
		CardLabelStyle: lipgloss.NewStyle().
			Width(labelWidth).
			Foreground(p.FgMuted),
		ClockOutStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Accent),
		ValueStyle: lipgloss.NewStyle().
			Foreground(p.Fg),
		MutedStyle: lipgloss.NewStyle().
			Foreground(p.FgMuted),
		OkStyle: lipgloss.NewStyle().
			Foreground(p.Ok),
		WarningStyle: lipgloss.NewStyle().
			Foreground(p.Warning),
		ErrorStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Error),

		HelpKeyStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Fg),
		HelpDescStyle: lipgloss.NewStyle().
			Foreground(p.FgMuted),
		StatusStyle: lipgloss.NewStyle().
			Foreground(p.Warning),
	}
}
