package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	ical "github.com/emersion/go-ical"
	"gopkg.in/yaml.v3"

	"github.com/javiermolinar/ponto/internal/clock"
	"github.com/javiermolinar/ponto/internal/compliance"
	"github.com/javiermolinar/ponto/internal/shift"
)

func sampleReport(t *testing.T, afternoonOut string) (Report, shift.Result) {
	t.Helper()
	obs, err := shift.ParseObservation("08:00", "12:00", "13:00", afternoonOut, clock.Strict)
	if err != nil {
		t.Fatalf("ParseObservation failed: %v", err)
	}
	cfg := shift.DefaultConfig()
	res := shift.Calculate(obs, cfg)
	verdict := compliance.CheckBreak(obs.LunchOutPoint(), obs.LunchInPoint(), cfg.TargetMinutes)
	return New(obs, cfg, res, verdict), res
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{"JSON", FormatJSON, false},
		{" yaml ", FormatYAML, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownFormat) {
					t.Fatalf("expected ErrUnknownFormat, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNew(t *testing.T) {
	r, _ := sampleReport(t, "")

	if r.ClockOutWithTolerance != "17:38" {
		t.Errorf("ClockOutWithTolerance = %q, want 17:38", r.ClockOutWithTolerance)
	}
	if r.ClockOutFullShift != "17:48" {
		t.Errorf("ClockOutFullShift = %q, want 17:48", r.ClockOutFullShift)
	}
	if r.Break != (Duration{Minutes: 60, Text: "1h"}) {
		t.Errorf("Break = %+v", r.Break)
	}
	if r.TotalWorked != (Duration{Minutes: 518, Text: "8h 38min"}) {
		t.Errorf("TotalWorked = %+v", r.TotalWorked)
	}
	if r.Overtime != (Duration{Minutes: 0, Text: "0min"}) {
		t.Errorf("Overtime = %+v", r.Overtime)
	}
	if !r.Estimated {
		t.Error("expected Estimated")
	}
	if !r.Compliance.Compliant {
		t.Errorf("expected compliant, got %v", r.Compliance)
	}
	if r.Input.AfternoonOut != "" {
		t.Errorf("AfternoonOut = %q, want empty", r.Input.AfternoonOut)
	}
	if r.Settings.TargetMinutes != 528 {
		t.Errorf("TargetMinutes = %d", r.Settings.TargetMinutes)
	}
}

func TestNew_UnrecordedPointsAreBlank(t *testing.T) {
	obs, err := shift.ParseObservation("08:00", "", "", "", clock.Lenient)
	if err != nil {
		t.Fatalf("ParseObservation failed: %v", err)
	}
	cfg := shift.DefaultConfig()
	r := New(obs, cfg, shift.Calculate(obs, cfg), compliance.CheckBreak(obs.LunchOutPoint(), obs.LunchInPoint(), cfg.TargetMinutes))

	if r.Input != (Input{MorningIn: "08:00"}) {
		t.Errorf("Input = %+v, want only morning in", r.Input)
	}
	if !r.Compliance.Compliant {
		t.Errorf("expected compliant with lunch points missing, got %v", r.Compliance)
	}
}

func TestEncode_JSON(t *testing.T) {
	r, _ := sampleReport(t, "18:00")
	var buf bytes.Buffer
	if err := r.Encode(&buf, FormatJSON); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	var got Report
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got != r {
		t.Errorf("decoded %+v, want %+v", got, r)
	}
	if !strings.Contains(buf.String(), `"clock_out_with_tolerance": "17:38"`) {
		t.Errorf("unexpected json:\n%s", buf.String())
	}
}

func TestEncode_YAML(t *testing.T) {
	r, _ := sampleReport(t, "18:00")
	var buf bytes.Buffer
	if err := r.Encode(&buf, FormatYAML); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	var got Report
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid yaml: %v", err)
	}
	if got != r {
		t.Errorf("decoded %+v, want %+v", got, r)
	}
	if !strings.Contains(buf.String(), "afternoon_out:") || !strings.Contains(buf.String(), "18:00") {
		t.Errorf("unexpected yaml:\n%s", buf.String())
	}
}

func TestEncode_UnsupportedFormats(t *testing.T) {
	r, _ := sampleReport(t, "")
	for _, format := range []Format{"xml", FormatText} {
		t.Run(string(format), func(t *testing.T) {
			err := r.Encode(&bytes.Buffer{}, format)
			if !errors.Is(err, ErrUnknownFormat) {
				t.Fatalf("expected ErrUnknownFormat, got %v", err)
			}
		})
	}
}

func TestSchema(t *testing.T) {
	b, err := Schema()
	if err != nil {
		t.Fatalf("Schema failed: %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(b, &doc); err != nil {
		t.Fatalf("invalid schema json: %v", err)
	}
	for _, want := range []string{"clock_out_with_tolerance", "total_worked", "compliance", "minimum_break_minutes"} {
		if !bytes.Contains(b, []byte(want)) {
			t.Errorf("schema missing %q", want)
		}
	}
}

func TestWriteICS(t *testing.T) {
	_, res := sampleReport(t, "")
	day := time.Date(2025, 1, 9, 0, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	if err := WriteICS(&buf, day, res); err != nil {
		t.Fatalf("WriteICS failed: %v", err)
	}

	cal, err := ical.NewDecoder(&buf).Decode()
	if err != nil {
		t.Fatalf("decoding calendar: %v", err)
	}
	events := cal.Events()
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}

	start, err := events[0].DateTimeStart(time.UTC)
	if err != nil {
		t.Fatalf("DateTimeStart: %v", err)
	}
	if want := time.Date(2025, 1, 9, 17, 38, 0, 0, time.UTC); !start.Equal(want) {
		t.Errorf("start = %v, want %v", start, want)
	}
	end, err := events[0].DateTimeEnd(time.UTC)
	if err != nil {
		t.Fatalf("DateTimeEnd: %v", err)
	}
	if want := time.Date(2025, 1, 9, 17, 48, 0, 0, time.UTC); !end.Equal(want) {
		t.Errorf("end = %v, want %v", end, want)
	}
	summary, _ := events[0].Props.Text(ical.PropSummary)
	if summary != "Clock out (17:38)" {
		t.Errorf("summary = %q", summary)
	}
}

func TestClockOutAt(t *testing.T) {
	_, res := sampleReport(t, "")
	day := time.Date(2025, 1, 9, 15, 4, 5, 0, time.UTC)
	got := ClockOutAt(day, res)
	if want := time.Date(2025, 1, 9, 17, 38, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("ClockOutAt = %v, want %v", got, want)
	}
}
