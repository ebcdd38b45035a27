package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/ponto/internal/clock"
	"github.com/javiermolinar/ponto/internal/compliance"
	"github.com/javiermolinar/ponto/internal/config"
	"github.com/javiermolinar/ponto/internal/punch"
	"github.com/javiermolinar/ponto/internal/shift"
	"github.com/javiermolinar/ponto/internal/tui/commands"
	"github.com/javiermolinar/ponto/internal/tui/theme"
)

const defaultPlaceholder = "HH:MM"

// Model is the main TUI model.
type Model struct {
	// Dependencies
	repo   punch.Repository
	config *config.Config
	now    func() time.Time

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	// Form, one input per clock point in punch.Points order
	inputs [4]textinput.Model
	focus  int

	// Last calculation
	result   *shift.Result
	verdict  compliance.Verdict
	calcErr  error
	timeline error

	// Terminal dimensions
	width  int
	height int

	// Messages
	statusMsg string
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithClock sets the time source used for today's date.
func WithClock(now func() time.Time) ModelOption {
	return func(m *Model) {
		m.now = now
	}
}

// New creates a new TUI model.
func New(repo punch.Repository, cfg *config.Config, opts ...ModelOption) Model {
	if cfg == nil {
		cfg = config.Default()
	}
	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t = &theme.Theme{}
	}

	m := Model{
		repo:   repo,
		config: cfg,
		now:    time.Now,
		theme:  t,
		styles: NewStyles(t),
	}
	for _, opt := range opts {
		opt(&m)
	}

	for i := range m.inputs {
		m.inputs[i] = m.newInput()
	}
	m.inputs[0].Focus()

	return m
}

func (m Model) newInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = "› "
	ti.Placeholder = defaultPlaceholder
	ti.CharLimit = 5
	ti.Width = 6
	ti.PromptStyle = m.styles.InputPromptStyle
	ti.TextStyle = m.styles.InputTextStyle
	ti.PlaceholderStyle = m.styles.PlaceholderStyle
	ti.Cursor.Style = m.styles.CursorStyle
	ti.Cursor.TextStyle = m.styles.InputTextStyle
	return ti
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		commands.LoadDraft(m.repo, m.now()),
	)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case commands.DraftLoadedMsg:
		return m.applyDraft(msg.Draft), nil

	case commands.DraftSavedMsg, commands.DraftClearedMsg:
		return m, nil

	case commands.ErrMsg:
		LogError("command", msg.Err)
		m.statusMsg = msg.Err.Error()
		return m, commands.ClearStatusAfter(commands.StatusTimeout)

	case commands.StatusMsgCmd:
		m.statusMsg = msg.Msg
		return m, commands.ClearStatusAfter(commands.StatusTimeout)

	case commands.ClearStatusMsg:
		m.statusMsg = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// applyDraft fills the form from a stored draft and recalculates when possible.
func (m Model) applyDraft(d *punch.Draft) Model {
	if d == nil {
		return m
	}
	for i, p := range punch.Points {
		m.inputs[i].SetValue(d.Get(p))
	}
	if next, ok := d.Next(); ok {
		m = m.setFocus(int(next))
	}
	if d.IsComplete() {
		m = m.calculate()
	}
	LogEvent("DRAFT_LOADED", map[string]any{"complete": d.IsComplete()})
	return m
}

// draft returns the form contents as a draft for today.
// Values that do not parse are left unrecorded.
func (m Model) draft() *punch.Draft {
	d := punch.NewDraft(m.now())
	for i, p := range punch.Points {
		_ = d.Set(p, m.inputs[i].Value())
	}
	return d
}

// calculate runs the shift calculation on the current form.
func (m Model) calculate() Model {
	mode := m.config.TimeMode()
	obs, err := shift.ParseObservation(
		m.inputs[punch.MorningIn].Value(),
		m.inputs[punch.LunchOut].Value(),
		m.inputs[punch.LunchIn].Value(),
		m.inputs[punch.AfternoonOut].Value(),
		mode,
	)
	if err != nil {
		m.result = nil
		m.calcErr = err
		m.timeline = nil
		m.inputs[punch.AfternoonOut].Placeholder = defaultPlaceholder
		LogError("calculate", err)
		return m
	}

	cfg := m.config.ShiftConfig()
	res := shift.Calculate(obs, cfg)
	m.result = &res
	m.verdict = compliance.CheckBreak(obs.LunchOutPoint(), obs.LunchInPoint(), cfg.TargetMinutes)
	m.calcErr = nil
	m.timeline = obs.CheckTimeline()
	m.inputs[punch.AfternoonOut].Placeholder = res.ClockOutWithTolerance.String()

	LogEvent("CALCULATE", map[string]any{
		"clock_out":   res.ClockOutWithTolerance.String(),
		"full_shift":  res.ClockOutFullShift.String(),
		"break":       res.BreakMinutes,
		"total":       res.TotalWorkedMinutes,
		"overtime":    res.OvertimeMinutes,
		"compliant":   m.verdict.Compliant,
		"estimated":   res.Estimated,
		"strict_mode": mode == clock.Strict,
	})
	return m
}

// clear empties the form and forgets the last calculation.
func (m Model) clear() Model {
	for i := range m.inputs {
		m.inputs[i].Reset()
		m.inputs[i].Placeholder = defaultPlaceholder
	}
	m.result = nil
	m.calcErr = nil
	m.timeline = nil
	m.verdict = compliance.Verdict{}
	return m.setFocus(0)
}

func (m Model) setFocus(i int) Model {
	n := len(m.inputs)
	i = ((i % n) + n) % n
	for j := range m.inputs {
		if j == i {
			m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
	m.focus = i
	return m
}

// Result returns the last calculation, or nil.
func (m Model) Result() *shift.Result {
	return m.result
}

// Run starts the TUI.
func Run(repo punch.Repository, cfg *config.Config) error {
	p := tea.NewProgram(New(repo, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
