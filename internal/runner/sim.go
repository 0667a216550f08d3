package runner

import (
	"math/rand"

	"github.com/vovakirdan/pulse-runner/internal/config"
	"github.com/vovakirdan/pulse-runner/internal/core"
)

// Listener receives simulation events as they happen.
type Listener func(core.Event)

// Sim is one independent run of the lane runner. It owns every entity,
// the pulse timer and the score. All methods must be called from a
// single goroutine.
type Sim struct {
	cfg        config.RunnerConfig
	rng        *rand.Rand
	spawner    *Spawner
	kinematics Kinematics
	scoring    Scoring

	player       Player
	enemies      column
	hazards      column
	collectibles column
	pulse        Pulse
	run          RunState

	tick     uint64
	over     bool
	events   []core.Event
	listener Listener
}

// NewSim creates a simulation. The config must already be validated.
// Call Start before the first Update.
func NewSim(cfg config.RunnerConfig, seed int64) *Sim {
	s := &Sim{
		cfg:        cfg,
		rng:        rand.New(rand.NewSource(seed)),
		spawner:    NewSpawner(cfg),
		kinematics: NewKinematics(cfg),
		scoring:    NewScoring(cfg),
		pulse:      NewPulse(cfg.Pulse),
	}
	s.Start()
	return s
}

// SetListener registers a callback for events. Events are also buffered
// for DrainEvents regardless of the listener.
func (s *Sim) SetListener(l Listener) {
	s.listener = l
}

// Start resets all run state: no entities, fresh score, pulse cooling from
// its initial cooldown and the player in the middle lane.
func (s *Sim) Start() {
	s.enemies.reset()
	s.hazards.reset()
	s.collectibles.reset()
	s.run = s.scoring.Fresh()
	s.pulse.Reset()
	s.tick = 0
	s.over = false
	s.events = s.events[:0]

	s.player = Player{
		Lane:   s.cfg.World.Lanes / 2,
		X:      s.cfg.Player.X,
		Radius: s.cfg.Player.Radius,
	}
	s.player.Y = s.LaneY(s.player.Lane)
}

// Update advances the run by dt seconds. dt is clamped to [0, max step] so
// a host that stalls (suspended tab, slow terminal) cannot make the world
// jump. Ended runs ignore updates.
func (s *Sim) Update(dt float64) {
	if s.over {
		return
	}
	dt = core.ClampF(dt, 0, s.cfg.Timing.MaxStep)
	s.tick++

	s.scoring.Accrue(&s.run, dt)
	s.spawner.Spawn(dt, s.rng, &s.enemies, &s.hazards, &s.collectibles)
	s.kinematics.Advance(dt, &s.enemies, &s.hazards, &s.collectibles)

	if s.cfg.Contact.Enabled {
		s.resolveContacts()
	}

	switch s.pulse.Advance(dt, s.rng) {
	case PulseEngaged:
		s.emit(core.Event{Kind: core.EventPulseEngaged})
	case PulseDisengaged:
		s.emit(core.Event{Kind: core.EventPulseDisengaged})
	}

	s.player.Y = s.LaneY(s.player.Lane)
}

func (s *Sim) resolveContacts() {
	res := s.scoring.ResolveContacts(&s.run, s.player, &s.hazards, &s.collectibles)
	if res.picked > 0 {
		s.emit(core.Event{Kind: core.EventCollectiblePicked, Count: res.picked})
	}
	if res.hit > 0 {
		s.emit(core.Event{Kind: core.EventHazardHit, Count: res.hit})
	}
	if res.endsRun {
		s.over = true
		s.emit(core.Event{Kind: core.EventRunOver})
	}
}

func (s *Sim) emit(ev core.Event) {
	s.events = append(s.events, ev)
	if s.listener != nil {
		s.listener(ev)
	}
}

// DrainEvents returns the events since the last drain and clears the buffer.
func (s *Sim) DrainEvents() []core.Event {
	if len(s.events) == 0 {
		return nil
	}
	out := make([]core.Event, len(s.events))
	copy(out, s.events)
	s.events = s.events[:0]
	return out
}

// LaneY returns the vertical centre of a lane in world units.
func (s *Sim) LaneY(lane int) float64 {
	h := s.cfg.World.Height / float64(s.cfg.World.Lanes)
	return h*float64(lane) + h/2
}

// Over reports whether the run has ended. Only contact rules can end a run.
func (s *Sim) Over() bool {
	return s.over
}

// Run returns the current score keeping.
func (s *Sim) Run() RunState {
	return s.run
}

// Player returns the player token.
func (s *Sim) Player() Player {
	return s.player
}

// Pulse returns the ability timer.
func (s *Sim) Pulse() Pulse {
	return s.pulse
}

// Tick returns the number of updates since Start.
func (s *Sim) Tick() uint64 {
	return s.tick
}

// Config returns the config the simulation runs with.
func (s *Sim) Config() config.RunnerConfig {
	return s.cfg
}
