package runner

import (
	"math"

	"github.com/vovakirdan/pulse-runner/internal/config"
)

// randSource is the subset of *rand.Rand the simulation draws from.
type randSource interface {
	Float64() float64
	Intn(n int) int
}

// Spawner rolls, once per tick, whether each variant gets a new entity.
// Spawns always appear at the same x beyond the right edge of the world,
// which keeps every column ordered left to right.
type Spawner struct {
	cfg    config.SpawnConfig
	lanes  int
	spawnX float64
}

// NewSpawner creates a spawner for the given world.
func NewSpawner(cfg config.RunnerConfig) *Spawner {
	return &Spawner{
		cfg:    cfg.Spawn,
		lanes:  cfg.World.Lanes,
		spawnX: cfg.World.Width + cfg.World.SpawnOffset,
	}
}

// SpawnX returns the x coordinate new entities appear at.
func (s *Spawner) SpawnX() float64 {
	return s.spawnX
}

// Chance returns the probability of spawning during a tick of length dt.
// In rate mode the per-frame chance is rescaled from the reference frame
// rate, so a host running at 30 or 144 fps sees the same spawns per second.
func (s *Spawner) Chance(perFrame, dt float64) float64 {
	if s.cfg.Mode == config.SpawnModeFrame {
		return perFrame
	}
	return math.Min(perFrame*dt*s.cfg.ReferenceFPS, 1)
}

// Spawn rolls enemy, hazard and collectible in that order and appends
// whatever spawned to the matching columns.
func (s *Spawner) Spawn(dt float64, rng randSource, enemies, hazards, collectibles *column) {
	if rng.Float64() < s.Chance(s.cfg.EnemyChance, dt) {
		enemies.push(s.enemy(rng))
	}
	if rng.Float64() < s.Chance(s.cfg.HazardChance, dt) {
		hazards.push(s.hazard(rng))
	}
	if rng.Float64() < s.Chance(s.cfg.CollectibleChance, dt) {
		collectibles.push(s.collectible(rng))
	}
}

func (s *Spawner) enemy(rng randSource) Entity {
	lane := rng.Intn(s.lanes)
	size := s.cfg.EnemyMinSize + rng.Float64()*(s.cfg.EnemyMaxSize-s.cfg.EnemyMinSize)
	return Entity{Kind: KindEnemy, Lane: lane, X: s.spawnX, Size: size}
}

func (s *Spawner) hazard(rng randSource) Entity {
	return Entity{
		Kind:   KindHazard,
		Lane:   rng.Intn(s.lanes),
		X:      s.spawnX,
		Width:  s.cfg.HazardWidth,
		Height: s.cfg.HazardHeight,
	}
}

func (s *Spawner) collectible(rng randSource) Entity {
	return Entity{
		Kind: KindCollectible,
		Lane: rng.Intn(s.lanes),
		X:    s.spawnX,
		Size: s.cfg.CollectibleSize,
	}
}
