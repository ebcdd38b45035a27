// Package punch defines the current day's recorded clock points.
package punch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	naturaldate "github.com/tj/go-naturaldate"

	"github.com/javiermolinar/ponto/internal/clock"
	"github.com/javiermolinar/ponto/internal/shift"
)

// Errors.
var (
	ErrUnknownPoint = errors.New("unknown clock point")
	ErrBadTimeExpr  = errors.New("cannot understand time")
)

// Point identifies one of the four clock points of a split shift.
type Point int

const (
	MorningIn Point = iota
	LunchOut
	LunchIn
	AfternoonOut
)

// Points lists the clock points in chronological order.
var Points = []Point{MorningIn, LunchOut, LunchIn, AfternoonOut}

var pointNames = map[Point]string{
	MorningIn:    "morning-in",
	LunchOut:     "lunch-out",
	LunchIn:      "lunch-in",
	AfternoonOut: "afternoon-out",
}

var pointAliases = map[string]Point{
	"morning-in":    MorningIn,
	"in":            MorningIn,
	"start":         MorningIn,
	"lunch-out":     LunchOut,
	"lunch":         LunchOut,
	"break":         LunchOut,
	"lunch-in":      LunchIn,
	"back":          LunchIn,
	"resume":        LunchIn,
	"afternoon-out": AfternoonOut,
	"out":           AfternoonOut,
	"end":           AfternoonOut,
}

// String returns the canonical name of the point.
func (p Point) String() string {
	if name, ok := pointNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Point(%d)", int(p))
}

// Label returns a human label for the point.
func (p Point) Label() string {
	switch p {
	case MorningIn:
		return "Morning in"
	case LunchOut:
		return "Lunch out"
	case LunchIn:
		return "Lunch in"
	case AfternoonOut:
		return "Afternoon out"
	default:
		return p.String()
	}
}

// ParsePoint parses a point name or alias, case-insensitively.
func ParsePoint(s string) (Point, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	if p, ok := pointAliases[key]; ok {
		return p, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPoint, s)
}

// Draft holds the clock points recorded so far for one day.
// Values are "HH:MM" strings; "" means not recorded.
type Draft struct {
	Date         time.Time
	MorningIn    string
	LunchOut     string
	LunchIn      string
	AfternoonOut string
}

// NewDraft returns an empty draft for the day containing t.
func NewDraft(t time.Time) *Draft {
	return &Draft{Date: Day(t)}
}

// Day truncates t to midnight in its location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func (d *Draft) field(p Point) *string {
	switch p {
	case MorningIn:
		return &d.MorningIn
	case LunchOut:
		return &d.LunchOut
	case LunchIn:
		return &d.LunchIn
	case AfternoonOut:
		return &d.AfternoonOut
	default:
		return nil
	}
}

// Get returns the recorded value of p.
func (d *Draft) Get(p Point) string {
	if f := d.field(p); f != nil {
		return *f
	}
	return ""
}

// Set records value for p. value must be "HH:MM" or empty to unset.
func (d *Draft) Set(p Point, value string) error {
	f := d.field(p)
	if f == nil {
		return fmt.Errorf("%w: %d", ErrUnknownPoint, int(p))
	}
	value = strings.TrimSpace(value)
	if value != "" {
		t, err := clock.Parse(value)
		if err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
		value = t.String()
	}
	*f = value
	return nil
}

// Next returns the first unrecorded point, or false when all four are recorded.
func (d *Draft) Next() (Point, bool) {
	for _, p := range Points {
		if d.Get(p) == "" {
			return p, true
		}
	}
	return 0, false
}

// IsComplete reports whether the points needed to predict the clock-out are recorded.
func (d *Draft) IsComplete() bool {
	return d.MorningIn != "" && d.LunchOut != "" && d.LunchIn != ""
}

// IsEmpty reports whether nothing has been recorded.
func (d *Draft) IsEmpty() bool {
	return d.MorningIn == "" && d.LunchOut == "" && d.LunchIn == "" && d.AfternoonOut == ""
}

// Observation converts the draft into a shift observation.
func (d *Draft) Observation(mode clock.Mode) (shift.Observation, error) {
	return shift.ParseObservation(d.MorningIn, d.LunchOut, d.LunchIn, d.AfternoonOut, mode)
}

// Repository stores the current day's draft.
type Repository interface {
	// LoadDraft returns the draft for day. A stored draft for any other day is
	// discarded and an empty draft is returned.
	LoadDraft(ctx context.Context, day time.Time) (*Draft, error)

	// SaveDraft replaces the stored draft.
	SaveDraft(ctx context.Context, d *Draft) error

	// ClearDraft removes the stored draft.
	ClearDraft(ctx context.Context) error

	// Close releases any resources held by the repository.
	Close() error
}

// ResolveTime turns a time expression into "HH:MM".
// It accepts "now", "H:MM"/"HH:MM", and natural phrases such as "10 minutes ago".
func ResolveTime(expr string, now time.Time) (string, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" || strings.EqualFold(expr, "now") {
		return clock.Of(now).String(), nil
	}
	if t, err := clock.Parse(expr); err == nil {
		return t.String(), nil
	}

	t, err := naturaldate.Parse(expr, now, naturaldate.WithDirection(naturaldate.Past))
	if err != nil {
		return "", fmt.Errorf("%w %q: %v", ErrBadTimeExpr, expr, err)
	}
	if !sameDay(t, now) {
		return "", fmt.Errorf("%w %q: resolves to another day (%s)", ErrBadTimeExpr, expr, t.Format("2006-01-02 15:04"))
	}
	return clock.Of(t).String(), nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
