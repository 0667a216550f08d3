// Package runner implements Pulse Runner, a lane-based endless runner.
// The player switches between lanes, dodging enemies and hazards, and
// fires a timed pulse that clears enemies from its lane while it is
// charged.
package runner

import (
	"github.com/vovakirdan/pulse-runner/internal/config"
	"github.com/vovakirdan/pulse-runner/internal/core"
	"github.com/vovakirdan/pulse-runner/internal/registry"
)

// Game IDs of the registered modes.
const (
	ClassicID = "runner"
	ContactID = "runner_contact"
)

// configPath stores the custom config path set via CLI
var configPath string

// SetConfigPath sets the custom config path used by Reset.
func SetConfigPath(path string) {
	configPath = path
}

// Game adapts a Sim to the platform's registry.Game interface.
type Game struct {
	id       string
	title    string
	mode     config.Mode
	fixed    *config.RunnerConfig // Used instead of loading from disk when set
	cfg      config.RunnerConfig
	runtime  core.RuntimeConfig
	sim      *Sim
	renderer Renderer
	paused   bool
	overlay  Overlay
}

// New creates a runner game in the given mode.
func New(mode config.Mode) *Game {
	g := &Game{mode: mode}
	switch mode {
	case config.ModeContact:
		g.id, g.title = ContactID, "Pulse Runner: Contact"
	default:
		g.id, g.title = ClassicID, "Pulse Runner"
	}
	return g
}

// NewWithConfig creates a game that always runs with cfg, ignoring config
// files. Replays use it to re-simulate a run with its recorded settings.
func NewWithConfig(id string, cfg config.RunnerConfig) *Game {
	mode := config.ModeClassic
	if id == ContactID {
		mode = config.ModeContact
	}
	g := New(mode)
	g.fixed = &cfg
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.title
}

// Reset starts a new run.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.cfg = g.loadConfig()
	g.renderer = NewRenderer(g.cfg)
	g.sim = NewSim(g.cfg, runtime.Seed)
	g.paused = false
}

func (g *Game) loadConfig() config.RunnerConfig {
	if g.fixed != nil {
		return *g.fixed
	}
	cfg, err := config.LoadRunner(configPath)
	if err != nil {
		cfg = config.DefaultRunnerConfig()
	}
	config.ApplyModePreset(&cfg, g.mode)
	return cfg
}

// Step applies the frame's input in order, then advances the simulation by
// dt seconds.
func (g *Game) Step(in core.InputFrame, dt float64) core.StepResult {
	if g.sim.Over() {
		return core.StepResult{State: g.State()}
	}

	for _, a := range in.Actions {
		switch a {
		case core.ActionPause:
			g.paused = !g.paused
		case core.ActionUp:
			if !g.paused {
				g.sim.ChangeLane(-1)
			}
		case core.ActionDown:
			if !g.paused {
				g.sim.ChangeLane(1)
			}
		case core.ActionAttack:
			if !g.paused {
				g.sim.Attack()
			}
		}
	}

	if !g.paused {
		g.sim.Update(dt)
	}

	return core.StepResult{State: g.State(), Events: g.sim.DrainEvents()}
}

// SetOverlay selects an extra overlay for Render, e.g. the replay banner.
func (g *Game) SetOverlay(o Overlay) {
	g.overlay = o
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	overlay := g.overlay
	switch {
	case g.sim.Over():
		overlay = OverlayRunOver
	case g.paused:
		overlay = OverlayPaused
	}
	g.renderer.Draw(dst, g.sim.Snapshot(), overlay)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    int(g.sim.Run().Score),
		GameOver: g.sim.Over(),
		Paused:   g.paused,
	}
}

// Config returns the config of the current run.
func (g *Game) Config() config.RunnerConfig {
	return g.cfg
}

// Snapshot returns the simulation snapshot of the current run.
func (g *Game) Snapshot() Snapshot {
	return g.sim.Snapshot()
}

// Register the game modes with the registry
func init() {
	registry.Register(ClassicID, func() registry.Game {
		return New(config.ModeClassic)
	})
	registry.Register(ContactID, func() registry.Game {
		return New(config.ModeContact)
	})
}
