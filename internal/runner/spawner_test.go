package runner

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/pulse-runner/internal/config"
)

func TestSpawnerChance(t *testing.T) {
	cfg := config.DefaultRunnerConfig()

	rate := NewSpawner(cfg)
	if got := rate.Chance(0.02, 1.0/60); !approx(got, 0.02, eps) {
		t.Errorf("rate chance at reference fps = %v, want 0.02", got)
	}
	if got := rate.Chance(0.02, 1.0/30); !approx(got, 0.04, eps) {
		t.Errorf("rate chance at 30 fps = %v, want 0.04", got)
	}
	if got := rate.Chance(0.9, 1); got != 1 {
		t.Errorf("rate chance should cap at 1, got %v", got)
	}

	cfg.Spawn.Mode = config.SpawnModeFrame
	frame := NewSpawner(cfg)
	for _, dt := range []float64{1.0 / 144, 1.0 / 30} {
		if got := frame.Chance(0.02, dt); got != 0.02 {
			t.Errorf("frame chance at dt=%v = %v, want 0.02", dt, got)
		}
	}
}

func TestSpawnerEntities(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	cfg.Spawn.Mode = config.SpawnModeFrame
	cfg.Spawn.EnemyChance = 1
	cfg.Spawn.HazardChance = 1
	cfg.Spawn.CollectibleChance = 1

	sp := NewSpawner(cfg)
	if sp.SpawnX() != 1000 {
		t.Fatalf("SpawnX() = %v, want 1000", sp.SpawnX())
	}

	rng := rand.New(rand.NewSource(11))
	var e, h, c column
	for i := 0; i < 200; i++ {
		sp.Spawn(0.016, rng, &e, &h, &c)
	}

	if e.len() != 200 || h.len() != 200 || c.len() != 200 {
		t.Fatalf("spawned %d/%d/%d, want 200 each", e.len(), h.len(), c.len())
	}

	for _, en := range e.items {
		if en.Kind != KindEnemy || en.X != sp.SpawnX() {
			t.Fatalf("bad enemy %+v", en)
		}
		if en.Lane < 0 || en.Lane >= cfg.World.Lanes {
			t.Fatalf("enemy lane %d out of range", en.Lane)
		}
		if en.Size < cfg.Spawn.EnemyMinSize || en.Size >= cfg.Spawn.EnemyMaxSize {
			t.Fatalf("enemy size %v out of range", en.Size)
		}
	}
	for _, hz := range h.items {
		if hz.Width != 32 || hz.Height != 26 || hz.Lane < 0 || hz.Lane >= cfg.World.Lanes {
			t.Fatalf("bad hazard %+v", hz)
		}
	}
	for _, co := range c.items {
		if co.Size != 16 || co.Lane < 0 || co.Lane >= cfg.World.Lanes {
			t.Fatalf("bad collectible %+v", co)
		}
	}
}

func TestSpawnerDisabled(t *testing.T) {
	sp := NewSpawner(quietConfig())
	rng := rand.New(rand.NewSource(1))

	var e, h, c column
	for i := 0; i < 1000; i++ {
		sp.Spawn(0.05, rng, &e, &h, &c)
	}
	if e.len()+h.len()+c.len() != 0 {
		t.Error("zero chances should never spawn")
	}
}

func TestEntitySpan(t *testing.T) {
	tests := []struct {
		e        Entity
		min, max float64
	}{
		{Entity{Kind: KindEnemy, X: 100, Size: 30}, 100, 130},
		{Entity{Kind: KindHazard, X: 100, Width: 32}, 100, 132},
		{Entity{Kind: KindCollectible, X: 100, Size: 16}, 84, 116},
	}

	for _, tt := range tests {
		s := tt.e.Span()
		if s.Min != tt.min || s.Max != tt.max {
			t.Errorf("%v span = [%v, %v], want [%v, %v]", tt.e.Kind, s.Min, s.Max, tt.min, tt.max)
		}
	}
}
