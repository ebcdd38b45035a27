package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/ponto/internal/clock"
	"github.com/javiermolinar/ponto/internal/debuglog"
	"github.com/javiermolinar/ponto/internal/punch"
	"github.com/javiermolinar/ponto/internal/report"
	"github.com/javiermolinar/ponto/internal/shift"
)

// withDraft opens the store, loads today's draft and passes both to fn.
func (a *App) withDraft(fn func(ctx context.Context, repo punch.Repository, d *punch.Draft) error) error {
	repo, err := a.openRepo()
	if err != nil {
		return err
	}
	defer func() { _ = repo.Close() }()

	ctx := context.Background()
	d, err := repo.LoadDraft(ctx, a.now())
	if err != nil {
		return err
	}
	return fn(ctx, repo, d)
}

// draftReport computes the report for a complete draft.
func (a *App) draftReport(d *punch.Draft) (shift.Observation, shift.Result, report.Report, error) {
	obs, err := d.Observation(a.config.TimeMode())
	if err != nil {
		return shift.Observation{}, shift.Result{}, report.Report{}, err
	}
	res, rep := a.evaluate(obs, a.config.ShiftConfig())
	return obs, res, rep, nil
}

func (a *App) punchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "punch <point> [time]",
		Short: "Record a clock point for today",
		Long: `Record one of today's clock points.

Points: morning-in (in), lunch-out (lunch), lunch-in (back), afternoon-out (out).
Time defaults to now and accepts HH:MM or phrases like "10 minutes ago".

Example:
  ponto punch in 08:00
  ponto punch lunch
  ponto punch back "5 minutes ago"`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := punch.ParsePoint(args[0])
			if err != nil {
				return err
			}
			expr := "now"
			if len(args) == 2 {
				expr = args[1]
			}
			value, err := punch.ResolveTime(expr, a.now())
			if err != nil {
				return err
			}

			return a.withDraft(func(ctx context.Context, repo punch.Repository, d *punch.Draft) error {
				if err := d.Set(p, value); err != nil {
					return err
				}
				if err := repo.SaveDraft(ctx, d); err != nil {
					return err
				}
				debuglog.Log("PUNCH", map[string]any{"point": p.String(), "time": value})

				out := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(out, "Recorded %s at %s\n", p, value)
				if !d.IsComplete() {
					if next, ok := d.Next(); ok {
						_, _ = fmt.Fprintf(out, "%s\n", formatMuted("Next: "+next.String()))
					}
					return nil
				}
				_, res, _, err := a.draftReport(d)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(out, "Clock out at %s (full shift %s)\n",
					formatClockOut(res.ClockOutWithTolerance.String()), res.ClockOutFullShift)
				return nil
			})
		},
	}
}

func (a *App) showCmd() *cobra.Command {
	var (
		output  string
		noColor bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show today's clock points and results",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if noColor {
				DisableColor()
			}
			format, err := report.ParseFormat(output)
			if err != nil {
				return err
			}

			return a.withDraft(func(_ context.Context, _ punch.Repository, d *punch.Draft) error {
				out := cmd.OutOrStdout()
				if d.IsEmpty() && format == report.FormatText {
					_, _ = fmt.Fprintln(out, "Nothing recorded today. Start with 'ponto punch in'.")
					return nil
				}
				if !d.IsComplete() {
					if format != report.FormatText {
						return fmt.Errorf("%w: record morning-in, lunch-out and lunch-in first", shift.ErrMissingClockPoint)
					}
					PrintDraft(out, d)
					if next, ok := d.Next(); ok {
						_, _ = fmt.Fprintf(out, "\n%s\n", formatMuted("Next: ponto punch "+next.String()))
					}
					return nil
				}

				obs, res, rep, err := a.draftReport(d)
				if err != nil {
					return err
				}
				if format != report.FormatText {
					return rep.Encode(out, format)
				}
				PrintDraft(out, d)
				if res.Estimated {
					printRow(out, "Time left", res.TimeLeft(clock.Of(a.now())))
				}
				_, _ = fmt.Fprintln(out)
				PrintReport(out, rep, obs.CheckTimeline())
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format: text, json or yaml")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	return cmd
}

func (a *App) clearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Discard today's clock points",
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, err := a.openRepo()
			if err != nil {
				return err
			}
			defer func() { _ = repo.Close() }()

			if err := repo.ClearDraft(context.Background()); err != nil {
				return err
			}
			debuglog.Log("CLEAR", nil)
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Cleared today's clock points.")
			return nil
		},
	}
}
