package runner

import "github.com/vovakirdan/pulse-runner/internal/core"

// Player is the token the user steers. Y is derived from Lane once per tick.
type Player struct {
	Lane   int
	X      float64
	Y      float64
	Radius float64
}

// Span returns the player's horizontal extent.
func (p Player) Span() core.Span {
	return core.NewSpan(p.X, p.Radius)
}

// ChangeLane moves the player one lane up (dir < 0) or down (dir > 0),
// staying inside the lanes. The combo grows on every call, including a
// press against the edge that does not move the player. dir == 0 is ignored.
func (s *Sim) ChangeLane(dir int) {
	if s.over || dir == 0 {
		return
	}
	step := 1
	if dir < 0 {
		step = -1
	}
	s.player.Lane = core.Clamp(s.player.Lane+step, 0, s.cfg.World.Lanes-1)
	s.scoring.BumpCombo(&s.run)
}

// Attack fires the pulse into the player's lane. It does nothing while the
// pulse is cooling down. Returns the number of enemies removed.
func (s *Sim) Attack() int {
	if s.over || !s.pulse.Active() {
		return 0
	}
	removed := s.scoring.ResolveAttack(&s.run, s.player.Lane, &s.enemies)
	if removed > 0 {
		s.emit(core.Event{Kind: core.EventEnemiesCleared, Count: removed})
	}
	return removed
}
