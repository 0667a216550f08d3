package runner

import (
	"math"
	"testing"

	"github.com/vovakirdan/pulse-runner/internal/config"
)

const eps = 1e-9

func approx(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// quietConfig returns the default config with spawning disabled.
func quietConfig() config.RunnerConfig {
	cfg := config.DefaultRunnerConfig()
	cfg.Spawn.EnemyChance = 0
	cfg.Spawn.HazardChance = 0
	cfg.Spawn.CollectibleChance = 0
	return cfg
}

// activate forces the pulse into its active window.
func activate(t *testing.T, s *Sim) {
	t.Helper()
	s.pulse.active = true
	s.pulse.remaining = s.cfg.Pulse.Duration
	if !s.Pulse().Active() {
		t.Fatal("pulse did not activate")
	}
}

func enemyAt(lane int, x float64) Entity {
	return Entity{Kind: KindEnemy, Lane: lane, X: x, Size: 30}
}
