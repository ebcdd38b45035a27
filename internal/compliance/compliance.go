// Package compliance classifies break lengths against tiered break rules.
package compliance

import (
	"fmt"

	"github.com/javiermolinar/ponto/internal/clock"
)

// Tier is one row of a break rule: shifts longer than Above minutes and at most
// Through minutes require MinimumBreak minutes of break. Through == 0 means no upper bound.
type Tier struct {
	Above        int
	Through      int
	MinimumBreak int
	Message      string
}

// Matches reports whether a shift of targetMinutes falls in the tier.
func (t Tier) Matches(targetMinutes int) bool {
	if targetMinutes <= t.Above {
		return false
	}
	return t.Through == 0 || targetMinutes <= t.Through
}

// Rule is an ordered tier table. The first matching tier wins.
type Rule struct {
	Name  string
	Tiers []Tier
}

// Tier returns the first tier matching targetMinutes.
func (r Rule) Tier(targetMinutes int) (Tier, bool) {
	for _, t := range r.Tiers {
		if t.Matches(targetMinutes) {
			return t, true
		}
	}
	return Tier{}, false
}

// MinimumBreak returns the break required for a shift of targetMinutes, or 0.
func (r Rule) MinimumBreak(targetMinutes int) int {
	t, ok := r.Tier(targetMinutes)
	if !ok {
		return 0
	}
	return t.MinimumBreak
}

// DailyComplianceBreakRule checks a day's observed break against statutory rest breaks.
var DailyComplianceBreakRule = Rule{
	Name: "daily-compliance",
	Tiers: []Tier{
		{
			Above:        480,
			MinimumBreak: 60,
			Message:      "Shifts over 8h require a break of at least 1h",
		},
		{
			Above:        240,
			Through:      360,
			MinimumBreak: 15,
			Message:      "Shifts between 4h and 6h require a break of at least 15min",
		},
	},
}

// ConfigMinimumBreakRule checks the configured minimum break, not an observed one.
// It is looser than DailyComplianceBreakRule and has different boundaries.
var ConfigMinimumBreakRule = Rule{
	Name: "config-minimum",
	Tiers: []Tier{
		{
			Above:        360,
			MinimumBreak: 30,
			Message:      "Minimum break: 30min for shifts over 6h",
		},
	},
}

// Verdict is the outcome of a break check. Message is empty when compliant.
type Verdict struct {
	Compliant bool   `json:"compliant" yaml:"compliant"`
	Message   string `json:"message,omitempty" yaml:"message,omitempty"`
}

// String returns a one-line description of the verdict.
func (v Verdict) String() string {
	if v.Compliant {
		return "compliant"
	}
	return fmt.Sprintf("non-compliant: %s", v.Message)
}

// CheckBreak validates the break between lunchOut and lunchIn with DailyComplianceBreakRule.
// If either clock point is absent the break cannot be evaluated yet and the verdict is compliant.
func CheckBreak(lunchOut, lunchIn clock.Optional, targetMinutes int) Verdict {
	return DailyComplianceBreakRule.Check(lunchOut, lunchIn, targetMinutes)
}

// Check validates the break between lunchOut and lunchIn against the rule.
func (r Rule) Check(lunchOut, lunchIn clock.Optional, targetMinutes int) Verdict {
	out, okOut := lunchOut.Get()
	in, okIn := lunchIn.Get()
	if !okOut || !okIn {
		return Verdict{Compliant: true}
	}
	return r.CheckMinutes(in.Minutes()-out.Minutes(), targetMinutes)
}

// CheckMinutes validates a break of breakMinutes for a shift of targetMinutes.
func (r Rule) CheckMinutes(breakMinutes, targetMinutes int) Verdict {
	t, ok := r.Tier(targetMinutes)
	if !ok || breakMinutes >= t.MinimumBreak {
		return Verdict{Compliant: true}
	}
	return Verdict{Compliant: false, Message: t.Message}
}
