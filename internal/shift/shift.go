package shift

import (
	"errors"
	"fmt"

	"github.com/javiermolinar/ponto/internal/clock"
)

// Observation errors.
var (
	ErrMissingClockPoint    = errors.New("required clock point not recorded")
	ErrInconsistentTimeline = errors.New("clock points are out of order")
)

// Observation holds the clock points of one day.
// AfternoonOut may be absent, in which case the day's end is predicted.
type Observation struct {
	MorningIn    clock.Time
	LunchOut     clock.Time
	LunchIn      clock.Time
	AfternoonOut clock.Optional

	missing uint8 // required points read as 00:00 because they were not recorded
}

const (
	morningInMissing uint8 = 1 << iota
	lunchOutMissing
	lunchInMissing
)

// MorningInPoint returns MorningIn, absent if it was not recorded.
func (o Observation) MorningInPoint() clock.Optional { return o.point(o.MorningIn, morningInMissing) }

// LunchOutPoint returns LunchOut, absent if it was not recorded.
func (o Observation) LunchOutPoint() clock.Optional { return o.point(o.LunchOut, lunchOutMissing) }

// LunchInPoint returns LunchIn, absent if it was not recorded.
func (o Observation) LunchInPoint() clock.Optional { return o.point(o.LunchIn, lunchInMissing) }

func (o Observation) point(t clock.Time, bit uint8) clock.Optional {
	if o.missing&bit != 0 {
		return clock.None
	}
	return clock.Some(t)
}

// ParseObservation builds an Observation from raw "HH:MM" strings.
// morningIn, lunchOut and lunchIn are required: in clock.Strict mode a missing one
// yields ErrMissingClockPoint, in clock.Lenient mode it is read as 00:00.
// afternoonOut may be empty. The *Point accessors keep reporting lenient-mode gaps as absent.
func ParseObservation(morningIn, lunchOut, lunchIn, afternoonOut string, mode clock.Mode) (Observation, error) {
	var obs Observation
	required := []struct {
		field string
		raw   string
		dst   *clock.Time
		bit   uint8
	}{
		{"morning in", morningIn, &obs.MorningIn, morningInMissing},
		{"lunch out", lunchOut, &obs.LunchOut, lunchOutMissing},
		{"lunch in", lunchIn, &obs.LunchIn, lunchInMissing},
	}
	for _, r := range required {
		v, err := clock.ParseOptional(r.raw, mode)
		if err != nil {
			return Observation{}, fmt.Errorf("%s: %w", r.field, err)
		}
		if !v.Present() {
			if mode == clock.Strict {
				return Observation{}, fmt.Errorf("%s: %w", r.field, ErrMissingClockPoint)
			}
			obs.missing |= r.bit
		}
		*r.dst = clock.Time(v.Minutes())
	}

	out, err := clock.ParseOptional(afternoonOut, mode)
	if err != nil {
		return Observation{}, fmt.Errorf("afternoon out: %w", err)
	}
	obs.AfternoonOut = out
	return obs, nil
}

// CheckTimeline returns ErrInconsistentTimeline when the recorded clock points are
// not in chronological order. Pairs with an unrecorded point are skipped.
// Calculate does not call it: out-of-order points still produce a well-defined
// result with negative durations.
func (o Observation) CheckTimeline() error {
	pairs := []struct {
		earlier, later         clock.Optional
		earlierName, laterName string
	}{
		{o.MorningInPoint(), o.LunchOutPoint(), "morning in", "lunch out"},
		{o.LunchOutPoint(), o.LunchInPoint(), "lunch out", "lunch in"},
		{o.LunchInPoint(), o.AfternoonOut, "lunch in", "afternoon out"},
	}
	for _, p := range pairs {
		a, okA := p.earlier.Get()
		b, okB := p.later.Get()
		if okA && okB && b < a {
			return fmt.Errorf("%w: %s %s before %s %s", ErrInconsistentTimeline, p.laterName, b, p.earlierName, a)
		}
	}
	return nil
}

// Result is the outcome of a shift calculation. Durations are in minutes and may be
// negative when the observation is out of order; only OvertimeMinutes is floored at 0.
type Result struct {
	ClockOutWithTolerance clock.Time
	ClockOutFullShift     clock.Time
	MorningWorkedMinutes  int
	BreakMinutes          int
	TotalWorkedMinutes    int
	OvertimeMinutes       int
	Estimated             bool // TotalWorkedMinutes assumes the tolerant target is met
}

// Break returns the formatted break duration.
func (r Result) Break() string { return clock.FormatDuration(r.BreakMinutes) }

// TotalWorked returns the formatted total worked duration.
func (r Result) TotalWorked() string { return clock.FormatDuration(r.TotalWorkedMinutes) }

// Overtime returns the formatted overtime duration.
func (r Result) Overtime() string { return clock.FormatDuration(r.OvertimeMinutes) }

// RemainingMinutes returns the minutes from now until the tolerant clock-out.
// It is negative once the clock-out has passed.
func (r Result) RemainingMinutes(now clock.Time) int {
	return r.ClockOutWithTolerance.Minutes() - now.Minutes()
}

// TimeLeft returns the formatted time until the tolerant clock-out, or
// "clock-out passed" once it is due.
func (r Result) TimeLeft(now clock.Time) string {
	left := r.RemainingMinutes(now)
	if left <= 0 {
		return "clock-out passed"
	}
	return clock.FormatDuration(left)
}

// Calculate derives the expected clock-out times and worked durations.
//
// Overtime is measured against the full target, so finishing anywhere between the
// tolerant target and the full target yields zero overtime.
func Calculate(obs Observation, cfg Config) Result {
	morningIn := obs.MorningIn.Minutes()
	lunchOut := obs.LunchOut.Minutes()
	lunchIn := obs.LunchIn.Minutes()

	morningWorked := lunchOut - morningIn
	breakDuration := lunchIn - lunchOut
	toleranceTarget := cfg.ToleranceTarget()

	clockOutWithTolerance := lunchIn + (toleranceTarget - morningWorked)
	clockOutFullShift := lunchIn + (cfg.TargetMinutes - morningWorked)

	totalWorked := toleranceTarget
	estimated := true
	if out, ok := obs.AfternoonOut.Get(); ok {
		totalWorked = morningWorked + (out.Minutes() - lunchIn)
		estimated = false
	}

	return Result{
		ClockOutWithTolerance: clock.FromMinutes(clockOutWithTolerance),
		ClockOutFullShift:     clock.FromMinutes(clockOutFullShift),
		MorningWorkedMinutes:  morningWorked,
		BreakMinutes:          breakDuration,
		TotalWorkedMinutes:    totalWorked,
		OvertimeMinutes:       max(0, totalWorked-cfg.TargetMinutes),
		Estimated:             estimated,
	}
}
