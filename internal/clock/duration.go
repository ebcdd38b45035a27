package clock

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidDuration is returned by ParseDuration for unrecognized input.
var ErrInvalidDuration = errors.New("duration must look like 90, 1h30, 1h30min or 1:30")

// FormatDuration formats minutes as "{h}h {m}min".
// The hour part is omitted when zero, and so is the minute part: 0 is "0min",
// 60 is "1h" and 90 is "1h 30min". Negative values keep their sign: -90 is "-1h 30min".
func FormatDuration(minutes int) string {
	if minutes < 0 {
		return "-" + FormatDuration(-minutes)
	}
	hours := minutes / 60
	mins := minutes % 60
	if hours == 0 {
		return fmt.Sprintf("%dmin", mins)
	}
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dmin", hours, mins)
}

// ParseDuration parses a duration in minutes.
// Accepted forms: "528", "8h", "8h48", "8h48m", "8h 48min", "45min", "8:48".
func ParseDuration(s string) (int, error) {
	in := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
	if in == "" {
		return 0, fmt.Errorf("%w, got %q", ErrInvalidDuration, s)
	}

	if h, m, ok := strings.Cut(in, ":"); ok {
		return hoursAndMinutes(s, h, m)
	}
	if h, m, ok := strings.Cut(in, "h"); ok {
		m = strings.TrimSuffix(strings.TrimSuffix(m, "min"), "m")
		if m == "" {
			m = "0"
		}
		return hoursAndMinutes(s, h, m)
	}

	in = strings.TrimSuffix(strings.TrimSuffix(in, "min"), "m")
	n, err := strconv.Atoi(in)
	if err != nil || n < 0 || !isDigits(in) {
		return 0, fmt.Errorf("%w, got %q", ErrInvalidDuration, s)
	}
	return n, nil
}

func hoursAndMinutes(orig, h, m string) (int, error) {
	if h == "" || !isDigits(h) || m == "" || !isDigits(m) {
		return 0, fmt.Errorf("%w, got %q", ErrInvalidDuration, orig)
	}
	hours, err := strconv.Atoi(h)
	if err != nil {
		return 0, fmt.Errorf("%w, got %q", ErrInvalidDuration, orig)
	}
	mins, err := strconv.Atoi(m)
	if err != nil || mins > 59 {
		return 0, fmt.Errorf("%w, got %q", ErrInvalidDuration, orig)
	}
	return hours*60 + mins, nil
}
