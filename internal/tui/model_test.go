package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/ponto/internal/config"
	"github.com/javiermolinar/ponto/internal/punch"
	"github.com/javiermolinar/ponto/internal/shift"
	"github.com/javiermolinar/ponto/internal/tui/commands"
)

var testNow = time.Date(2025, 1, 9, 15, 0, 0, 0, time.UTC)

type memRepo struct {
	draft   *punch.Draft
	cleared bool
}

func (r *memRepo) LoadDraft(_ context.Context, day time.Time) (*punch.Draft, error) {
	if r.draft == nil {
		return punch.NewDraft(day), nil
	}
	return r.draft, nil
}

func (r *memRepo) SaveDraft(_ context.Context, d *punch.Draft) error {
	r.draft = d
	return nil
}

func (r *memRepo) ClearDraft(context.Context) error {
	r.draft = nil
	r.cleared = true
	return nil
}

func (r *memRepo) Close() error { return nil }

func newTestModel(repo punch.Repository) Model {
	return New(repo, config.Default(), WithClock(func() time.Time { return testNow }))
}

func send(m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		m, _ = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func fillMorningAndLunch(m Model, in, out, back string) Model {
	m = typeText(m, in)
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(m, out)
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(m, back)
	return m
}

func TestNew_FocusesFirstInput(t *testing.T) {
	m := newTestModel(nil)
	if m.focus != 0 {
		t.Errorf("focus = %d, want 0", m.focus)
	}
	if !m.inputs[0].Focused() {
		t.Error("first input not focused")
	}
	for i := 1; i < len(m.inputs); i++ {
		if m.inputs[i].Focused() {
			t.Errorf("input %d focused", i)
		}
	}
}

func TestNew_NilConfigUsesDefaults(t *testing.T) {
	m := New(nil, nil)
	if m.config == nil || m.config.Shift.TargetMinutes != shift.DefaultTargetMinutes {
		t.Fatalf("expected default config, got %+v", m.config)
	}
}

func TestNew_AppliesInputStyles(t *testing.T) {
	m := newTestModel(nil)
	if got, want := m.inputs[0].TextStyle.Render("x"), m.styles.InputTextStyle.Render("x"); got != want {
		t.Errorf("TextStyle mismatch: got %q, want %q", got, want)
	}
	if got, want := m.inputs[0].Cursor.Style.Render("x"), m.styles.CursorStyle.Render("x"); got != want {
		t.Errorf("Cursor style mismatch: got %q, want %q", got, want)
	}
}

func TestCalculate_PredictsClockOut(t *testing.T) {
	m := newTestModel(nil)
	m = fillMorningAndLunch(m, "08:00", "12:00", "13:00")
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEnter})

	res := m.Result()
	if res == nil {
		t.Fatalf("expected a result, got error %v", m.calcErr)
	}
	if res.ClockOutWithTolerance.String() != "17:38" {
		t.Errorf("clock-out = %s, want 17:38", res.ClockOutWithTolerance)
	}
	if !res.Estimated {
		t.Error("expected estimated result without afternoon out")
	}
	if got := m.inputs[punch.AfternoonOut].Placeholder; got != "17:38" {
		t.Errorf("afternoon placeholder = %q, want 17:38", got)
	}
	if !m.verdict.Compliant {
		t.Errorf("expected compliant verdict, got %v", m.verdict)
	}
}

func TestCalculate_WithAfternoonOut(t *testing.T) {
	m := newTestModel(nil)
	m = fillMorningAndLunch(m, "08:00", "12:00", "13:00")
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(m, "18:00")
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEnter})

	res := m.Result()
	if res == nil {
		t.Fatalf("expected a result, got error %v", m.calcErr)
	}
	if res.TotalWorkedMinutes != 540 || res.OvertimeMinutes != 12 {
		t.Errorf("total %d overtime %d, want 540 and 12", res.TotalWorkedMinutes, res.OvertimeMinutes)
	}
	if res.Estimated {
		t.Error("expected measured result")
	}
}

func TestCalculate_MissingPointInStrictMode(t *testing.T) {
	m := newTestModel(nil)
	m = typeText(m, "08:00")
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.Result() != nil {
		t.Fatal("expected no result")
	}
	if !errors.Is(m.calcErr, shift.ErrMissingClockPoint) {
		t.Errorf("calcErr = %v, want ErrMissingClockPoint", m.calcErr)
	}
}

func TestCalculate_LenientModeReadsMissingAsMidnight(t *testing.T) {
	cfg := config.Default()
	cfg.Input.StrictTimeFormat = false
	m := New(nil, cfg, WithClock(func() time.Time { return testNow }))
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.Result() == nil {
		t.Fatalf("expected a result in lenient mode, got %v", m.calcErr)
	}
}

func TestCalculate_LenientModeMissingLunchIsCompliant(t *testing.T) {
	cfg := config.Default()
	cfg.Input.StrictTimeFormat = false
	m := New(nil, cfg, WithClock(func() time.Time { return testNow }))
	m = typeText(m, "08:00")
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyTab})
	m = typeText(m, "12:00")
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.Result() == nil {
		t.Fatalf("expected a result in lenient mode, got %v", m.calcErr)
	}
	if !m.verdict.Compliant || m.verdict.Message != "" {
		t.Errorf("verdict = %+v, want compliant without message while lunch in is missing", m.verdict)
	}
	if m.timeline != nil {
		t.Errorf("timeline = %v, want no warning for an unrecorded point", m.timeline)
	}
}

func TestCalculate_NonCompliantBreak(t *testing.T) {
	m := newTestModel(nil)
	m = fillMorningAndLunch(m, "08:00", "12:00", "12:30")
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.verdict.Compliant {
		t.Fatal("expected non-compliant verdict for a 30min break on an 8h48 shift")
	}
	if m.verdict.Message != "Shifts over 8h require a break of at least 1h" {
		t.Errorf("message = %q", m.verdict.Message)
	}
}

func TestCalculate_OutOfOrderWarns(t *testing.T) {
	m := newTestModel(nil)
	m = fillMorningAndLunch(m, "12:00", "08:00", "13:00")
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.Result() == nil {
		t.Fatal("expected a result for out-of-order points")
	}
	if !errors.Is(m.timeline, shift.ErrInconsistentTimeline) {
		t.Errorf("timeline = %v, want ErrInconsistentTimeline", m.timeline)
	}
}

func TestEnter_SavesDraft(t *testing.T) {
	repo := &memRepo{}
	m := newTestModel(repo)
	m = fillMorningAndLunch(m, "8:00", "12:00", "13:00")
	_, cmd := send(m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a save command")
	}
	if msg := cmd(); msg != (commands.DraftSavedMsg{}) {
		t.Fatalf("got %#v, want DraftSavedMsg", msg)
	}
	if repo.draft == nil || repo.draft.MorningIn != "08:00" || repo.draft.LunchIn != "13:00" {
		t.Errorf("stored draft = %+v", repo.draft)
	}
	if !repo.draft.Date.Equal(punch.Day(testNow)) {
		t.Errorf("draft date = %v", repo.draft.Date)
	}
}

func TestDraftLoaded_FillsFormAndCalculates(t *testing.T) {
	m := newTestModel(nil)
	d := punch.NewDraft(testNow)
	d.MorningIn = "08:00"
	d.LunchOut = "12:00"
	d.LunchIn = "13:00"

	m, _ = send(m, commands.DraftLoadedMsg{Draft: d})

	if got := m.inputs[punch.LunchOut].Value(); got != "12:00" {
		t.Errorf("lunch out = %q", got)
	}
	if m.focus != int(punch.AfternoonOut) {
		t.Errorf("focus = %d, want afternoon out", m.focus)
	}
	if m.Result() == nil || m.Result().ClockOutWithTolerance.String() != "17:38" {
		t.Errorf("expected 17:38 prediction, got %+v", m.Result())
	}
}

func TestDraftLoaded_Partial(t *testing.T) {
	m := newTestModel(nil)
	d := punch.NewDraft(testNow)
	d.MorningIn = "08:00"

	m, _ = send(m, commands.DraftLoadedMsg{Draft: d})
	if m.focus != int(punch.LunchOut) {
		t.Errorf("focus = %d, want lunch out", m.focus)
	}
	if m.Result() != nil {
		t.Error("expected no result for a partial draft")
	}
}

func TestInit_LoadsDraft(t *testing.T) {
	d := punch.NewDraft(testNow)
	d.MorningIn = "07:45"
	m := newTestModel(&memRepo{draft: d})
	if m.Init() == nil {
		t.Fatal("expected init command")
	}
}

func TestErrMsg_SetsStatus(t *testing.T) {
	m := newTestModel(nil)
	m, cmd := send(m, commands.ErrMsg{Err: errors.New("database is locked")})
	if m.statusMsg != "database is locked" {
		t.Errorf("statusMsg = %q", m.statusMsg)
	}
	if cmd == nil {
		t.Error("expected a clear-status command")
	}

	m, _ = send(m, commands.ClearStatusMsg{})
	if m.statusMsg != "" {
		t.Errorf("statusMsg = %q after clear", m.statusMsg)
	}
}

func TestWindowSize(t *testing.T) {
	m := newTestModel(nil)
	m, _ = send(m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if m.width != 100 || m.height != 30 {
		t.Errorf("size = %dx%d", m.width, m.height)
	}
}
