// Package report encodes shift calculations for output.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"

	"github.com/javiermolinar/ponto/internal/compliance"
	"github.com/javiermolinar/ponto/internal/shift"
)

// ErrUnknownFormat is returned for an unsupported output format.
var ErrUnknownFormat = errors.New("unknown output format")

// Format is an output encoding.
type Format string

// Supported formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q (want text, json or yaml)", ErrUnknownFormat, s)
}

// Input echoes the clock points a report was computed from. Unrecorded points are empty.
type Input struct {
	MorningIn    string `json:"morning_in" yaml:"morning_in"`
	LunchOut     string `json:"lunch_out" yaml:"lunch_out"`
	LunchIn      string `json:"lunch_in" yaml:"lunch_in"`
	AfternoonOut string `json:"afternoon_out,omitempty" yaml:"afternoon_out,omitempty"`
}

// Settings echoes the shift configuration a report was computed with.
type Settings struct {
	TargetMinutes       int `json:"target_minutes" yaml:"target_minutes"`
	ToleranceMinutes    int `json:"tolerance_minutes" yaml:"tolerance_minutes"`
	MinimumBreakMinutes int `json:"minimum_break_minutes" yaml:"minimum_break_minutes"`
}

// Duration is a signed minute count with its display form.
type Duration struct {
	Minutes int    `json:"minutes" yaml:"minutes"`
	Text    string `json:"text" yaml:"text"`
}

// Report is the output contract of a calculation.
type Report struct {
	Input                 Input              `json:"input" yaml:"input"`
	Settings              Settings           `json:"settings" yaml:"settings"`
	ClockOutWithTolerance string             `json:"clock_out_with_tolerance" yaml:"clock_out_with_tolerance" jsonschema:"description=Earliest acceptable clock-out (HH:MM)"`
	ClockOutFullShift     string             `json:"clock_out_full_shift" yaml:"clock_out_full_shift" jsonschema:"description=Clock-out for the full target (HH:MM)"`
	Break                 Duration           `json:"break" yaml:"break"`
	TotalWorked           Duration           `json:"total_worked" yaml:"total_worked"`
	Overtime              Duration           `json:"overtime" yaml:"overtime"`
	Estimated             bool               `json:"estimated" yaml:"estimated" jsonschema:"description=True when afternoon out was not recorded"`
	Compliance            compliance.Verdict `json:"compliance" yaml:"compliance"`
}

// New builds a Report.
func New(obs shift.Observation, cfg shift.Config, res shift.Result, verdict compliance.Verdict) Report {
	return Report{
		Input: Input{
			MorningIn:    obs.MorningInPoint().String(),
			LunchOut:     obs.LunchOutPoint().String(),
			LunchIn:      obs.LunchInPoint().String(),
			AfternoonOut: obs.AfternoonOut.String(),
		},
		Settings: Settings{
			TargetMinutes:       cfg.TargetMinutes,
			ToleranceMinutes:    cfg.ToleranceMinutes,
			MinimumBreakMinutes: cfg.MinimumBreakMinutes,
		},
		ClockOutWithTolerance: res.ClockOutWithTolerance.String(),
		ClockOutFullShift:     res.ClockOutFullShift.String(),
		Break:                 Duration{Minutes: res.BreakMinutes, Text: res.Break()},
		TotalWorked:           Duration{Minutes: res.TotalWorkedMinutes, Text: res.TotalWorked()},
		Overtime:              Duration{Minutes: res.OvertimeMinutes, Text: res.Overtime()},
		Estimated:             res.Estimated,
		Compliance:            verdict,
	}
}

// Encode writes the report to w as JSON or YAML.
// FormatText is rendered by the callers, which style it for their surface.
func (r Report) Encode(w io.Writer, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Schema returns the JSON Schema of Report.
func Schema() ([]byte, error) {
	r := &jsonschema.Reflector{}
	s := r.Reflect(&Report{})
	s.Title = "ponto report"
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding schema: %w", err)
	}
	return b, nil
}
