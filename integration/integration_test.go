package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/javiermolinar/ponto/internal/clock"
	"github.com/javiermolinar/ponto/internal/compliance"
	"github.com/javiermolinar/ponto/internal/config"
	"github.com/javiermolinar/ponto/internal/db"
	"github.com/javiermolinar/ponto/internal/punch"
	"github.com/javiermolinar/ponto/internal/report"
	"github.com/javiermolinar/ponto/internal/shift"
)

// openRepo creates a fresh repository for each test with automatic cleanup.
func openRepo(t *testing.T, path string) *db.SQLite {
	t.Helper()
	repo, err := db.New(path)
	if err != nil {
		t.Fatalf("failed to open repo: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

// loadConfig writes body to a config file and loads it.
func loadConfig(t *testing.T, body string) *config.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}
	return cfg
}

func punchAll(t *testing.T, d *punch.Draft, values map[punch.Point]string) {
	t.Helper()
	for p, v := range values {
		if err := d.Set(p, v); err != nil {
			t.Fatalf("Set(%s, %q): %v", p, v, err)
		}
	}
}

func TestDraftToReport(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "ponto.db")
	cfg := loadConfig(t, `
[shift]
target_minutes = 528
tolerance_minutes = 10
minimum_break_minutes = 72

[storage]
db_path = "`+filepath.ToSlash(dbPath)+`"
`)
	ctx := context.Background()
	now := time.Date(2025, 1, 20, 14, 0, 0, 0, time.UTC)

	// Morning session: record three points and close the store.
	repo, err := db.New(cfg.Storage.DBPath)
	if err != nil {
		t.Fatalf("failed to open repo: %v", err)
	}
	d, err := repo.LoadDraft(ctx, now)
	if err != nil {
		t.Fatalf("LoadDraft: %v", err)
	}
	punchAll(t, d, map[punch.Point]string{
		punch.MorningIn: "8:00",
		punch.LunchOut:  "12:00",
		punch.LunchIn:   "13:00",
	})
	if err := repo.SaveDraft(ctx, d); err != nil {
		t.Fatalf("SaveDraft: %v", err)
	}
	_ = repo.Close()

	// Later the same day: reopen and compute.
	repo = openRepo(t, cfg.Storage.DBPath)
	d, err = repo.LoadDraft(ctx, now.Add(2*time.Hour))
	if err != nil {
		t.Fatalf("LoadDraft: %v", err)
	}
	if !d.IsComplete() {
		t.Fatalf("draft not complete after reopen: %+v", d)
	}

	obs, err := d.Observation(cfg.TimeMode())
	if err != nil {
		t.Fatalf("Observation: %v", err)
	}
	shiftCfg := cfg.ShiftConfig()
	res := shift.Calculate(obs, shiftCfg)
	verdict := compliance.CheckBreak(obs.LunchOutPoint(), obs.LunchInPoint(), shiftCfg.TargetMinutes)

	var buf bytes.Buffer
	if err := report.New(obs, shiftCfg, res, verdict).Encode(&buf, report.FormatJSON); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	var got report.Report
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if got.ClockOutWithTolerance != "17:38" || got.ClockOutFullShift != "17:48" {
		t.Errorf("clock outs = %s / %s, want 17:38 / 17:48", got.ClockOutWithTolerance, got.ClockOutFullShift)
	}
	if got.Input.MorningIn != "08:00" {
		t.Errorf("morning in = %q, want normalized 08:00", got.Input.MorningIn)
	}
	if !got.Compliance.Compliant || !got.Estimated {
		t.Errorf("compliance %v estimated %t", got.Compliance, got.Estimated)
	}
}

func TestDraftToICS(t *testing.T) {
	repo := openRepo(t, filepath.Join(t.TempDir(), "ponto.db"))
	ctx := context.Background()
	now := time.Date(2025, 1, 20, 9, 0, 0, 0, time.UTC)

	d, err := repo.LoadDraft(ctx, now)
	if err != nil {
		t.Fatalf("LoadDraft: %v", err)
	}
	punchAll(t, d, map[punch.Point]string{
		punch.MorningIn: "07:30",
		punch.LunchOut:  "11:30",
		punch.LunchIn:   "12:45",
	})
	if err := repo.SaveDraft(ctx, d); err != nil {
		t.Fatalf("SaveDraft: %v", err)
	}

	obs, err := d.Observation(clock.Strict)
	if err != nil {
		t.Fatalf("Observation: %v", err)
	}
	res := shift.Calculate(obs, shift.DefaultConfig())

	var buf bytes.Buffer
	if err := report.WriteICS(&buf, d.Date, res); err != nil {
		t.Fatalf("WriteICS: %v", err)
	}
	// 12:45 + (518 - 240) = 17:23
	if !strings.Contains(buf.String(), "DTSTART:20250120T172300Z") {
		t.Errorf("unexpected calendar:\n%s", buf.String())
	}
}

func TestEnvOverridesReachCalculation(t *testing.T) {
	t.Setenv("PONTO_TARGET_MINUTES", "8h")
	t.Setenv("PONTO_TOLERANCE_MINUTES", "0")
	t.Setenv("PONTO_DB_PATH", filepath.Join(t.TempDir(), "env.db"))
	cfg := loadConfig(t, "")

	obs, err := shift.ParseObservation("08:00", "12:00", "13:00", "", cfg.TimeMode())
	if err != nil {
		t.Fatalf("ParseObservation: %v", err)
	}
	res := shift.Calculate(obs, cfg.ShiftConfig())
	if got := res.ClockOutWithTolerance.String(); got != "17:00" {
		t.Errorf("clock out = %s, want 17:00", got)
	}

	repo := openRepo(t, cfg.Storage.DBPath)
	if err := repo.ClearDraft(context.Background()); err != nil {
		t.Fatalf("ClearDraft: %v", err)
	}
}

func TestConcurrentCalculations(t *testing.T) {
	cfg := shift.DefaultConfig()
	obs, err := shift.ParseObservation("08:00", "12:00", "13:00", "", clock.Strict)
	if err != nil {
		t.Fatalf("ParseObservation: %v", err)
	}
	want := shift.Calculate(obs, cfg)

	var wg sync.WaitGroup
	errs := make(chan string, 64)
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := shift.Calculate(obs, cfg)
			if got != want {
				errs <- got.ClockOutWithTolerance.String()
			}
			v := compliance.CheckBreak(obs.LunchOutPoint(), obs.LunchInPoint(), cfg.TargetMinutes)
			if !v.Compliant {
				errs <- v.Message
			}
		}()
	}
	wg.Wait()
	close(errs)
	for e := range errs {
		t.Errorf("concurrent result differs: %s", e)
	}
}
