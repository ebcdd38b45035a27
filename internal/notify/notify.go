// Package notify raises a desktop notification at clock-out time.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/gen2brain/beeep"
)

// AppName is shown as the notification source.
const AppName = "ponto"

// Sender delivers a notification.
type Sender func(title, message string) error

// Send raises a desktop notification.
func Send(title, message string) error {
	beeep.AppName = AppName
	if err := beeep.Notify(title, message, ""); err != nil {
		return fmt.Errorf("sending notification: %w", err)
	}
	return nil
}

// Wait blocks until at, as measured by now, or until ctx is done.
// It returns immediately when at is not in the future.
func Wait(ctx context.Context, now func() time.Time, at time.Time) error {
	d := at.Sub(now())
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Reminder waits for a clock-out time and then notifies.
type Reminder struct {
	Now  func() time.Time
	Send Sender
}

// NewReminder returns a Reminder using the wall clock and desktop notifications.
func NewReminder() *Reminder {
	return &Reminder{Now: time.Now, Send: Send}
}

// Remind waits until at and sends title and message.
func (r *Reminder) Remind(ctx context.Context, at time.Time, title, message string) error {
	if err := Wait(ctx, r.Now, at); err != nil {
		return err
	}
	return r.Send(title, message)
}
