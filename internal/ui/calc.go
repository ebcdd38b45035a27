package ui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/ponto/internal/clock"
	"github.com/javiermolinar/ponto/internal/compliance"
	"github.com/javiermolinar/ponto/internal/debuglog"
	"github.com/javiermolinar/ponto/internal/report"
	"github.com/javiermolinar/ponto/internal/shift"
)

// ErrBreakNotCompliant is returned by check when the break is too short.
var ErrBreakNotCompliant = errors.New("break is not compliant")

// shiftFlags holds per-invocation overrides of the configured shift.
type shiftFlags struct {
	target    string
	tolerance string
	minBreak  string
}

func (f *shiftFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.target, "target", "", "Workday length (e.g. 528, 8h48, 8:48; default from config)")
	cmd.Flags().StringVar(&f.tolerance, "tolerance", "", "Tolerance before the target (e.g. 10min; default from config)")
	cmd.Flags().StringVar(&f.minBreak, "min-break", "", "Configured minimum break (e.g. 1h12; default from config)")
}

// apply returns base with the set flags applied, validated.
func (f *shiftFlags) apply(base shift.Config) (shift.Config, error) {
	overrides := []struct {
		name string
		raw  string
		dst  *int
	}{
		{"target", f.target, &base.TargetMinutes},
		{"tolerance", f.tolerance, &base.ToleranceMinutes},
		{"min-break", f.minBreak, &base.MinimumBreakMinutes},
	}
	for _, o := range overrides {
		if o.raw == "" {
			continue
		}
		n, err := clock.ParseDuration(o.raw)
		if err != nil {
			return shift.Config{}, fmt.Errorf("--%s: %w", o.name, err)
		}
		*o.dst = n
	}
	if err := base.Validate(); err != nil {
		return shift.Config{}, err
	}
	return base, nil
}

func (a *App) calcCmd() *cobra.Command {
	var (
		morningIn    string
		lunchOut     string
		lunchIn      string
		afternoonOut string
		output       string
		icsPath      string
		noColor      bool
		sf           shiftFlags
	)

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculate clock-out times for a split shift",
		Long: `Calculate the clock-out times, worked time and overtime for a day.

Without --out the day's end is predicted from the tolerant target.

Example:
  ponto calc --in 08:00 --lunch-out 12:00 --lunch-in 13:00
  ponto calc --in 8:00 --lunch-out 12:00 --lunch-in 13:00 --out 18:00 -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if noColor {
				DisableColor()
			}
			format, err := report.ParseFormat(output)
			if err != nil {
				return err
			}
			cfg, err := sf.apply(a.config.ShiftConfig())
			if err != nil {
				return err
			}
			obs, err := shift.ParseObservation(morningIn, lunchOut, lunchIn, afternoonOut, a.config.TimeMode())
			if err != nil {
				return err
			}

			res, rep := a.evaluate(obs, cfg)
			if err := a.writeReport(cmd.OutOrStdout(), rep, format, obs.CheckTimeline()); err != nil {
				return err
			}

			if icsPath != "" {
				if err := writeICSFile(icsPath, a.now(), res); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", icsPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&morningIn, "in", "", "Morning clock-in (HH:MM)")
	cmd.Flags().StringVar(&lunchOut, "lunch-out", "", "Lunch clock-out (HH:MM)")
	cmd.Flags().StringVar(&lunchIn, "lunch-in", "", "Lunch clock-in (HH:MM)")
	cmd.Flags().StringVar(&afternoonOut, "out", "", "Afternoon clock-out (HH:MM, optional)")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format: text, json or yaml")
	cmd.Flags().StringVar(&icsPath, "ics", "", "Also write the clock-out as an iCalendar event to this file")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	sf.register(cmd)

	return cmd
}

// evaluate runs the calculator and the break validator on obs.
func (a *App) evaluate(obs shift.Observation, cfg shift.Config) (shift.Result, report.Report) {
	res := shift.Calculate(obs, cfg)
	verdict := compliance.CheckBreak(obs.LunchOutPoint(), obs.LunchInPoint(), cfg.TargetMinutes)

	debuglog.Log("CALCULATE", map[string]any{
		"morning_in": obs.MorningInPoint().String(),
		"lunch_out":  obs.LunchOutPoint().String(),
		"lunch_in":   obs.LunchInPoint().String(),
		"out":        obs.AfternoonOut.String(),
		"target":     cfg.TargetMinutes,
		"tolerance":  cfg.ToleranceMinutes,
		"clock_out":  res.ClockOutWithTolerance.String(),
		"compliant":  verdict.Compliant,
	})

	return res, report.New(obs, cfg, res, verdict)
}

func (a *App) writeReport(w io.Writer, rep report.Report, format report.Format, timeline error) error {
	if format == report.FormatText {
		PrintReport(w, rep, timeline)
		return nil
	}
	return rep.Encode(w, format)
}

func writeICSFile(path string, day time.Time, res shift.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating calendar file: %w", err)
	}
	if err := report.WriteICS(f, day, res); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func (a *App) checkCmd() *cobra.Command {
	var (
		lunchOut string
		lunchIn  string
		target   string
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check that a lunch break meets the legal minimum",
		Long: `Check a lunch break against the daily compliance rule:
shifts over 8h need at least 1h, shifts between 4h and 6h need 15min.

Exits with an error when the break is too short.

Example:
  ponto check --lunch-out 12:00 --lunch-in 12:45 --target 8h48`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			targetMinutes := a.config.Shift.TargetMinutes
			if target != "" {
				n, err := clock.ParseDuration(target)
				if err != nil {
					return fmt.Errorf("--target: %w", err)
				}
				targetMinutes = n
			}

			mode := a.config.TimeMode()
			out, err := clock.ParseOptional(lunchOut, mode)
			if err != nil {
				return fmt.Errorf("lunch out: %w", err)
			}
			in, err := clock.ParseOptional(lunchIn, mode)
			if err != nil {
				return fmt.Errorf("lunch in: %w", err)
			}

			verdict := compliance.CheckBreak(out, in, targetMinutes)
			debuglog.Log("CHECK", map[string]any{
				"lunch_out": out.String(),
				"lunch_in":  in.String(),
				"target":    targetMinutes,
				"compliant": verdict.Compliant,
			})

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), verdictText(verdict))
			if !verdict.Compliant {
				return fmt.Errorf("%w: %s", ErrBreakNotCompliant, verdict.Message)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&lunchOut, "lunch-out", "", "Lunch clock-out (HH:MM)")
	cmd.Flags().StringVar(&lunchIn, "lunch-in", "", "Lunch clock-in (HH:MM)")
	cmd.Flags().StringVar(&target, "target", "", "Workday length (default from config)")

	return cmd
}
