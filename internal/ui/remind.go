package ui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/ponto/internal/punch"
	"github.com/javiermolinar/ponto/internal/report"
	"github.com/javiermolinar/ponto/internal/shift"
)

// ErrNotifyDisabled is returned by remind when notifications are off in the config.
var ErrNotifyDisabled = errors.New("notifications are disabled in config")

func (a *App) remindCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remind",
		Short: "Wait for today's clock-out and send a desktop notification",
		Long: `Wait until today's predicted clock-out, minus notify.lead_minutes,
then raise a desktop notification. Press Ctrl+C to cancel.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !a.config.Notify.Enabled {
				return ErrNotifyDisabled
			}

			var res shift.Result
			err := a.withDraft(func(_ context.Context, _ punch.Repository, d *punch.Draft) error {
				if !d.IsComplete() {
					return fmt.Errorf("%w: record morning-in, lunch-out and lunch-in first", shift.ErrMissingClockPoint)
				}
				var err error
				_, res, _, err = a.draftReport(d)
				return err
			})
			if err != nil {
				return err
			}

			clockOut := report.ClockOutAt(a.now(), res)
			at := clockOut.Add(-time.Duration(a.config.Notify.LeadMinutes) * time.Minute)

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Reminding at %s for clock-out at %s (Ctrl+C to cancel)\n",
				at.Format("15:04"), formatClockOut(res.ClockOutWithTolerance.String()))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			title := "Time to clock out"
			msg := fmt.Sprintf("Clock out at %s. Full shift ends at %s.", res.ClockOutWithTolerance, res.ClockOutFullShift)
			if err := a.reminder.Remind(ctx, at, title, msg); err != nil {
				if errors.Is(err, context.Canceled) {
					_, _ = fmt.Fprintln(out, "Reminder cancelled.")
					return nil
				}
				return err
			}
			_, _ = fmt.Fprintln(out, "Reminder sent.")
			return nil
		},
	}
}
