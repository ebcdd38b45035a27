package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/ponto/internal/debuglog"
)

// LogKeyPress logs a key press event.
func LogKeyPress(msg tea.KeyMsg) {
	debuglog.Log("KEY_PRESS", map[string]any{
		"key":  msg.String(),
		"type": fmt.Sprintf("%d", msg.Type),
	})
}

// LogEvent logs a TUI event.
func LogEvent(event string, data map[string]any) {
	debuglog.Log(event, data)
}

// LogError logs an error.
func LogError(context string, err error) {
	debuglog.LogError(context, err)
}
