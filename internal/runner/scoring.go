package runner

import (
	"math"

	"github.com/vovakirdan/pulse-runner/internal/config"
	"github.com/vovakirdan/pulse-runner/internal/core"
)

// RunState is the per-run score keeping.
type RunState struct {
	Score    float64
	Combo    float64
	Distance float64
}

// Scoring owns the score, combo and distance rules.
type Scoring struct {
	cfg     config.ScoringConfig
	contact config.ContactConfig
}

// NewScoring creates the scoring rules from the config.
func NewScoring(cfg config.RunnerConfig) Scoring {
	return Scoring{cfg: cfg.Scoring, contact: cfg.Contact}
}

// Fresh returns the state a run starts with.
func (sc Scoring) Fresh() RunState {
	return RunState{Combo: sc.cfg.ComboStart}
}

// Accrue adds the time-based distance and score for one tick.
func (sc Scoring) Accrue(run *RunState, dt float64) {
	run.Distance += dt * sc.cfg.DistancePerSecond
	run.Score += dt * sc.cfg.PointsPerSecond * run.Combo
}

// BumpCombo raises the combo by one step, up to the cap.
func (sc Scoring) BumpCombo(run *RunState) {
	run.Combo = math.Min(run.Combo+sc.cfg.ComboStep, sc.cfg.ComboMax)
}

// ResolveAttack removes every enemy in lane and pays the attack bonus once
// if anything was hit. Returns the number of enemies removed.
func (sc Scoring) ResolveAttack(run *RunState, lane int, enemies *column) int {
	removed := enemies.removeIf(func(e Entity) bool {
		return e.Lane == lane
	})
	if removed > 0 {
		run.Score += sc.cfg.AttackBonus
	}
	return removed
}

// contactResult summarizes one tick of contact resolution.
type contactResult struct {
	picked  int
	hit     int
	endsRun bool
}

// ResolveContacts consumes hazards and collectibles touching the player.
// It is only called when contact rules are enabled.
func (sc Scoring) ResolveContacts(run *RunState, p Player, hazards, collectibles *column) contactResult {
	body := p.Span()
	touching := func(e Entity) bool {
		return e.Lane == p.Lane && e.Span().Overlaps(body)
	}

	var res contactResult

	res.picked = collectibles.removeIf(touching)
	for i := 0; i < res.picked; i++ {
		bonus := sc.contact.CollectibleBonus
		if sc.contact.BonusUsesCombo {
			bonus *= run.Combo
		}
		run.Score += bonus
	}

	res.hit = hazards.removeIf(touching)
	if res.hit > 0 {
		run.Score = math.Max(run.Score-sc.contact.HazardPenalty*float64(res.hit), 0)
		if sc.contact.HazardResetsCombo {
			run.Combo = sc.cfg.ComboStart
		}
		res.endsRun = sc.contact.HazardEndsRun
	}

	return res
}

// Progress returns the share of the goal distance covered, capped at 1.
func (sc Scoring) Progress(run RunState) float64 {
	return core.ClampF(run.Distance/sc.cfg.GoalDistance, 0, 1)
}
