// Package shift computes the expected clock-out of a split work shift.
package shift

import (
	"errors"
	"fmt"

	"github.com/javiermolinar/ponto/internal/compliance"
)

// Configuration errors.
var (
	ErrConfigOutOfRange        = errors.New("configuration value out of range")
	ErrBreakBelowConfigMinimum = errors.New("minimum break too short for shift length")
)

// Configuration domains, in minutes.
const (
	MinTargetMinutes       = 240
	MaxTargetMinutes       = 720
	MinToleranceMinutes    = 0
	MaxToleranceMinutes    = 60
	MinMinimumBreakMinutes = 0
	MaxMinimumBreakMinutes = 179
)

// Defaults used by the application when nothing is configured.
const (
	DefaultTargetMinutes       = 528 // 8h48min
	DefaultToleranceMinutes    = 10
	DefaultMinimumBreakMinutes = 72 // 1h12min
)

// Config holds the per-calculation shift settings.
type Config struct {
	TargetMinutes       int // total minutes expected to be worked
	ToleranceMinutes    int // grace window before the full target
	MinimumBreakMinutes int // minimum acceptable break length
}

// DefaultConfig returns the default shift settings.
func DefaultConfig() Config {
	return Config{
		TargetMinutes:       DefaultTargetMinutes,
		ToleranceMinutes:    DefaultToleranceMinutes,
		MinimumBreakMinutes: DefaultMinimumBreakMinutes,
	}
}

// ToleranceTarget returns the target minus the tolerance: the earliest allowed worked time.
func (c Config) ToleranceTarget() int {
	return c.TargetMinutes - c.ToleranceMinutes
}

// RangeError reports a configuration value outside its domain.
type RangeError struct {
	Field string
	Value int
	Min   int
	Max   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s must be between %d and %d, got %d", e.Field, e.Min, e.Max, e.Value)
}

// Unwrap lets errors.Is match ErrConfigOutOfRange.
func (e *RangeError) Unwrap() error {
	return ErrConfigOutOfRange
}

// Validate checks every field against its domain and the configured minimum break
// against compliance.ConfigMinimumBreakRule.
func (c Config) Validate() error {
	if err := checkRange("target_minutes", c.TargetMinutes, MinTargetMinutes, MaxTargetMinutes); err != nil {
		return err
	}
	if err := checkRange("tolerance_minutes", c.ToleranceMinutes, MinToleranceMinutes, MaxToleranceMinutes); err != nil {
		return err
	}
	if err := checkRange("minimum_break_minutes", c.MinimumBreakMinutes, MinMinimumBreakMinutes, MaxMinimumBreakMinutes); err != nil {
		return err
	}
	if v := compliance.ConfigMinimumBreakRule.CheckMinutes(c.MinimumBreakMinutes, c.TargetMinutes); !v.Compliant {
		return fmt.Errorf("%w: %s", ErrBreakBelowConfigMinimum, v.Message)
	}
	return nil
}

func checkRange(field string, v, lo, hi int) error {
	if v < lo || v > hi {
		return &RangeError{Field: field, Value: v, Min: lo, Max: hi}
	}
	return nil
}
