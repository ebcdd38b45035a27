// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/ponto/internal/punch"
)

// StatusTimeout is how long a status message stays visible.
const StatusTimeout = 3 * time.Second

// DraftLoadedMsg is sent when today's draft is loaded.
type DraftLoadedMsg struct {
	Draft *punch.Draft
}

// DraftSavedMsg is sent when the draft is stored.
type DraftSavedMsg struct{}

// DraftClearedMsg is sent when the stored draft is removed.
type DraftClearedMsg struct{}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// LoadDraft loads the draft for day.
func LoadDraft(repo punch.Repository, day time.Time) tea.Cmd {
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		d, err := repo.LoadDraft(context.Background(), day)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return DraftLoadedMsg{Draft: d}
	}
}

// SaveDraft stores d.
func SaveDraft(repo punch.Repository, d *punch.Draft) tea.Cmd {
	if repo == nil || d == nil {
		return nil
	}
	return func() tea.Msg {
		if err := repo.SaveDraft(context.Background(), d); err != nil {
			return ErrMsg{Err: err}
		}
		return DraftSavedMsg{}
	}
}

// ClearDraft removes the stored draft.
func ClearDraft(repo punch.Repository) tea.Cmd {
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		if err := repo.ClearDraft(context.Background()); err != nil {
			return ErrMsg{Err: err}
		}
		return DraftClearedMsg{}
	}
}

// CopyToClipboard copies text to the system clipboard.
func CopyToClipboard(text string) tea.Cmd {
	return copyWith(clipboard.WriteAll, text)
}

func copyWith(write func(string) error, text string) tea.Cmd {
	return func() tea.Msg {
		if err := write(text); err != nil {
			return ErrMsg{Err: fmt.Errorf("copy failed: %w", err)}
		}
		return StatusMsgCmd{Msg: fmt.Sprintf("Copied %s", text)}
	}
}

// ClearStatusAfter clears the status message after d.
func ClearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
