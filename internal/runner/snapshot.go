package runner

// Snapshot captures the complete simulation state for rendering,
// determinism testing and replay verification. It shares no memory with
// the simulation.
type Snapshot struct {
	Tick         uint64
	Lanes        int
	Player       Player
	Enemies      []Entity
	Hazards      []Entity
	Collectibles []Entity
	PulseActive  bool
	PulseLeft    float64 // Active time left
	PulseFill    float64 // Remaining share of the active window
	Cooldown     float64
	Run          RunState
	Progress     float64
	Over         bool
}

// Snapshot returns the current simulation snapshot.
func (s *Sim) Snapshot() Snapshot {
	return Snapshot{
		Tick:         s.tick,
		Lanes:        s.cfg.World.Lanes,
		Player:       s.player,
		Enemies:      s.enemies.snapshot(),
		Hazards:      s.hazards.snapshot(),
		Collectibles: s.collectibles.snapshot(),
		PulseActive:  s.pulse.Active(),
		PulseLeft:    s.pulse.Remaining(),
		PulseFill:    s.pulse.Fraction(),
		Cooldown:     s.pulse.Cooldown(),
		Run:          s.run,
		Progress:     s.scoring.Progress(s.run),
		Over:         s.over,
	}
}
