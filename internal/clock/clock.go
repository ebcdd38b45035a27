// Package clock converts between "HH:MM" clock strings and minutes since midnight.
package clock

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MinutesPerDay is the number of distinct clock values in a day.
const MinutesPerDay = 24 * 60

// ErrInvalidTimeFormat is returned for clock strings that are not H:MM or HH:MM.
var ErrInvalidTimeFormat = errors.New("time must be in HH:MM format")

// Mode controls how malformed clock strings are handled.
type Mode int

const (
	// Strict rejects malformed clock strings with ErrInvalidTimeFormat.
	Strict Mode = iota
	// Lenient converts malformed clock strings to 0, like an empty string.
	Lenient
)

// Time is a clock time expressed as minutes since midnight, in [0, 1439].
type Time int

// FromMinutes normalizes any minute count into a clock time.
// Values outside a day wrap around: -10 becomes 23:50 and 1500 becomes 01:00.
func FromMinutes(m int) Time {
	m %= MinutesPerDay
	if m < 0 {
		m += MinutesPerDay
	}
	return Time(m)
}

// Of returns the wall-clock time of t in t's location.
func Of(t time.Time) Time {
	return Time(t.Hour()*60 + t.Minute())
}

// Minutes returns the minutes since midnight.
func (t Time) Minutes() int {
	return int(t)
}

// String returns the time in zero-padded "HH:MM" format.
func (t Time) String() string {
	m := FromMinutes(int(t)).Minutes()
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// Parse parses an "H:MM" or "HH:MM" string.
func Parse(s string) (Time, error) {
	s = strings.TrimSpace(s)
	hh, mm, ok := strings.Cut(s, ":")
	if !ok || len(hh) < 1 || len(hh) > 2 || len(mm) != 2 || !isDigits(hh) || !isDigits(mm) {
		return 0, fmt.Errorf("%w, got %q", ErrInvalidTimeFormat, s)
	}
	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("%w, got %q", ErrInvalidTimeFormat, s)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w, got %q", ErrInvalidTimeFormat, s)
	}
	return Time(hour*60 + minute), nil
}

// MustParse is like Parse but panics on error. Intended for tests and constants.
func MustParse(s string) Time {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

// ToMinutes converts "HH:MM" to minutes since midnight.
// An empty string converts to 0 without error; callers that need to tell
// "not recorded" from midnight should use ParseOptional.
func ToMinutes(s string, mode Mode) (int, error) {
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}
	t, err := Parse(s)
	if err != nil {
		if mode == Lenient {
			return 0, nil
		}
		return 0, err
	}
	return t.Minutes(), nil
}

// ToClockString converts a minute count to "HH:MM", wrapping values outside a day.
func ToClockString(m int) string {
	return FromMinutes(m).String()
}

// Optional is a clock time that may not have been recorded yet.
type Optional struct {
	t  Time
	ok bool
}

// None is the absent clock time.
var None = Optional{}

// Some wraps a recorded clock time.
func Some(t Time) Optional {
	return Optional{t: t, ok: true}
}

// ParseOptional parses a clock string where "" means absent.
// In Lenient mode a malformed string is also treated as absent.
func ParseOptional(s string, mode Mode) (Optional, error) {
	if strings.TrimSpace(s) == "" {
		return None, nil
	}
	t, err := Parse(s)
	if err != nil {
		if mode == Lenient {
			return None, nil
		}
		return None, err
	}
	return Some(t), nil
}

// Get returns the clock time and whether it was recorded.
func (o Optional) Get() (Time, bool) {
	return o.t, o.ok
}

// Present reports whether the clock time was recorded.
func (o Optional) Present() bool {
	return o.ok
}

// Minutes returns the minutes since midnight, or 0 when absent.
func (o Optional) Minutes() int {
	if !o.ok {
		return 0
	}
	return o.t.Minutes()
}

// String returns "HH:MM", or "" when absent.
func (o Optional) String() string {
	if !o.ok {
		return ""
	}
	return o.t.String()
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
