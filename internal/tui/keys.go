package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/ponto/internal/tui/commands"
)

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	LogKeyPress(msg)

	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "tab", "down":
		return m.setFocus(m.focus + 1), nil

	case "shift+tab", "up":
		return m.setFocus(m.focus - 1), nil

	case "enter":
		m = m.calculate()
		if m.result == nil {
			return m, nil
		}
		return m, commands.SaveDraft(m.repo, m.draft())

	case "ctrl+l":
		m = m.clear()
		m.statusMsg = "Cleared"
		return m, tea.Batch(
			commands.ClearDraft(m.repo),
			commands.ClearStatusAfter(commands.StatusTimeout),
		)

	case "y":
		if m.result == nil {
			m.statusMsg = "Nothing to copy yet"
			return m, commands.ClearStatusAfter(commands.StatusTimeout)
		}
		return m, commands.CopyToClipboard(m.result.ClockOutWithTolerance.String())
	}

	if msg.Type == tea.KeyRunes && !isClockInput(msg.Runes) {
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// isClockInput reports whether runes can be part of an "HH:MM" value.
func isClockInput(runes []rune) bool {
	for _, r := range runes {
		if (r < '0' || r > '9') && r != ':' {
			return false
		}
	}
	return true
}
