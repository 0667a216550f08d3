package runner

import (
	"math"

	"github.com/vovakirdan/pulse-runner/internal/config"
)

// PulseTransition reports what a call to Pulse.Advance changed.
type PulseTransition int

const (
	PulseUnchanged PulseTransition = iota
	PulseEngaged
	PulseDisengaged
)

// Pulse is the ability timer. It alternates between cooling down and
// active; attacks only land while it is active.
//
// The timer has no side effects. Callers turn the returned transitions into
// notifications.
type Pulse struct {
	cfg       config.PulseConfig
	active    bool
	remaining float64 // Active time left
	cooldown  float64 // Cooling time left
}

// NewPulse returns a timer cooling down from the initial cooldown.
func NewPulse(cfg config.PulseConfig) Pulse {
	p := Pulse{cfg: cfg}
	p.Reset()
	return p
}

// Reset puts the timer back into its start-of-run state.
func (p *Pulse) Reset() {
	p.active = false
	p.remaining = 0
	p.cooldown = p.cfg.InitialCooldown
}

// Advance runs the timer for dt seconds. Overshoot past zero is discarded:
// each new window starts at its full length.
func (p *Pulse) Advance(dt float64, rng randSource) PulseTransition {
	if p.active {
		p.remaining -= dt
		if p.remaining <= 0 {
			p.active = false
			p.remaining = 0
			p.cooldown = p.cfg.MinCooldown + rng.Float64()*(p.cfg.MaxCooldown-p.cfg.MinCooldown)
			return PulseDisengaged
		}
		return PulseUnchanged
	}

	p.cooldown -= dt
	if p.cooldown <= 0 {
		p.active = true
		p.remaining = p.cfg.Duration
		return PulseEngaged
	}
	return PulseUnchanged
}

// Active reports whether attacks currently land.
func (p Pulse) Active() bool {
	return p.active
}

// Remaining returns the active time left, zero while cooling.
func (p Pulse) Remaining() float64 {
	return p.remaining
}

// Cooldown returns the cooling time left. Meaningless while active.
func (p Pulse) Cooldown() float64 {
	return p.cooldown
}

// Fraction returns the share of the active window still left, for the
// depleting indicator. Zero while cooling.
func (p Pulse) Fraction() float64 {
	if !p.active || p.cfg.Duration <= 0 {
		return 0
	}
	return math.Max(p.remaining/p.cfg.Duration, 0)
}
