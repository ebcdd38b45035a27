package report

import (
	"fmt"
	"io"
	"time"

	ical "github.com/emersion/go-ical"

	"github.com/javiermolinar/ponto/internal/shift"
)

const productID = "-//javiermolinar//ponto//EN"

// ClockOutAt returns the tolerant clock-out as an instant on day.
func ClockOutAt(day time.Time, res shift.Result) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, day.Location()).
		Add(time.Duration(res.ClockOutWithTolerance.Minutes()) * time.Minute)
}

// WriteICS writes an iCalendar file with one event spanning the tolerant and
// full-shift clock-outs of day.
func WriteICS(w io.Writer, day time.Time, res shift.Result) error {
	start := ClockOutAt(day, res)
	end := start.Add(time.Duration(res.ClockOutFullShift.Minutes()-res.ClockOutWithTolerance.Minutes()) * time.Minute)
	if !end.After(start) {
		end = start.Add(time.Minute)
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)

	event := ical.NewEvent()
	event.Props.SetText(ical.PropUID, fmt.Sprintf("%s-clock-out@ponto", start.Format("20060102")))
	event.Props.SetDateTime(ical.PropDateTimeStamp, time.Now().UTC())
	event.Props.SetDateTime(ical.PropDateTimeStart, start)
	event.Props.SetDateTime(ical.PropDateTimeEnd, end)
	event.Props.SetText(ical.PropSummary, fmt.Sprintf("Clock out (%s)", res.ClockOutWithTolerance))
	event.Props.SetText(ical.PropDescription, fmt.Sprintf(
		"Full shift ends at %s. Break %s.", res.ClockOutFullShift, res.Break()))
	cal.Children = append(cal.Children, event.Component)

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("encoding calendar: %w", err)
	}
	return nil
}
