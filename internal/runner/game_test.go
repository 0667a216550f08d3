package runner

import (
	"strings"
	"testing"

	"github.com/vovakirdan/pulse-runner/internal/config"
	"github.com/vovakirdan/pulse-runner/internal/core"
	"github.com/vovakirdan/pulse-runner/internal/registry"
)

func newTestGame(t *testing.T, id string, cfg config.RunnerConfig) *Game {
	t.Helper()
	g := NewWithConfig(id, cfg)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 42})
	return g
}

func TestModesRegistered(t *testing.T) {
	for _, id := range []string{ClassicID, ContactID} {
		if !registry.Exists(id) {
			t.Errorf("%s not registered", id)
		}
	}

	g, err := registry.Create(ContactID)
	if err != nil {
		t.Fatal(err)
	}
	if g.ID() != ContactID || g.Title() == "" {
		t.Errorf("unexpected game %q %q", g.ID(), g.Title())
	}
}

func TestStepAppliesInputInOrder(t *testing.T) {
	g := newTestGame(t, ClassicID, quietConfig())

	// Down then Up returns to the start lane with two combo steps.
	g.Step(core.NewInputFrame(core.ActionDown, core.ActionUp), 0.016)

	snap := g.Snapshot()
	if snap.Player.Lane != 1 {
		t.Errorf("lane = %d, want 1", snap.Player.Lane)
	}
	if !approx(snap.Run.Combo, 1.2, eps) {
		t.Errorf("combo = %v, want 1.2", snap.Run.Combo)
	}
	if snap.Tick != 1 {
		t.Errorf("tick = %d, want 1", snap.Tick)
	}
}

func TestStepPause(t *testing.T) {
	g := newTestGame(t, ClassicID, quietConfig())

	res := g.Step(core.NewInputFrame(core.ActionPause), 0.016)
	if !res.State.Paused {
		t.Fatal("pause action should pause")
	}

	g.Step(core.NewInputFrame(core.ActionDown), 0.016)
	snap := g.Snapshot()
	if snap.Tick != 0 || snap.Player.Lane != 1 {
		t.Errorf("paused game advanced: tick=%d lane=%d", snap.Tick, snap.Player.Lane)
	}

	res = g.Step(core.NewInputFrame(core.ActionPause), 0.016)
	if res.State.Paused || g.Snapshot().Tick != 1 {
		t.Error("second pause should resume and advance")
	}
}

func TestStepReturnsEvents(t *testing.T) {
	g := newTestGame(t, ClassicID, quietConfig())

	var engaged bool
	for i := 0; i < 128; i++ {
		res := g.Step(core.InputFrame{}, 1.0/32)
		for _, ev := range res.Events {
			if ev.Kind == core.EventPulseEngaged {
				engaged = i == 127
			}
		}
	}
	if !engaged {
		t.Error("pulse engaged event missing or early")
	}
}

func TestContactModeEndsRun(t *testing.T) {
	cfg := quietConfig()
	config.ApplyModePreset(&cfg, config.ModeContact)
	g := newTestGame(t, ContactID, cfg)

	p := g.sim.Player()
	g.sim.hazards.push(Entity{Kind: KindHazard, Lane: p.Lane, X: p.X, Width: 32, Height: 26})

	res := g.Step(core.InputFrame{}, 0.016)
	if !res.State.GameOver {
		t.Fatal("hazard should end the run in contact mode")
	}

	scr := core.NewScreen(80, 24)
	g.Render(scr)
	if !strings.Contains(scr.String(), "RUN OVER") {
		t.Error("run over overlay missing")
	}

	g.Reset(core.RuntimeConfig{Seed: 1})
	if g.State().GameOver {
		t.Error("Reset should start a new run")
	}
}
