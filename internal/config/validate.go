package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid runner config")

// Validate checks the values the simulation relies on.
func (c RunnerConfig) Validate() error {
	var errs []error

	if c.World.Lanes < 1 {
		errs = append(errs, fmt.Errorf("world.lanes must be at least 1, got %d", c.World.Lanes))
	}
	if c.World.Width <= 0 || c.World.Height <= 0 {
		errs = append(errs, fmt.Errorf("world size must be positive, got %gx%g", c.World.Width, c.World.Height))
	}
	if c.World.DespawnX >= 0 {
		errs = append(errs, fmt.Errorf("world.despawn_x must be left of the screen, got %g", c.World.DespawnX))
	}
	if c.Player.Radius <= 0 {
		errs = append(errs, fmt.Errorf("player.radius must be positive, got %g", c.Player.Radius))
	}
	if c.Speed.Base <= 0 || c.Speed.Enemy <= 0 || c.Speed.Hazard <= 0 || c.Speed.Collectible <= 0 {
		errs = append(errs, errors.New("speeds must be positive"))
	}

	switch c.Spawn.Mode {
	case SpawnModeRate, SpawnModeFrame:
	default:
		errs = append(errs, fmt.Errorf("spawn.mode must be %q or %q, got %q", SpawnModeRate, SpawnModeFrame, c.Spawn.Mode))
	}
	if c.Spawn.Mode == SpawnModeRate && c.Spawn.ReferenceFPS <= 0 {
		errs = append(errs, fmt.Errorf("spawn.reference_fps must be positive, got %g", c.Spawn.ReferenceFPS))
	}
	chances := []struct {
		name string
		p    float64
	}{
		{"enemy_chance", c.Spawn.EnemyChance},
		{"hazard_chance", c.Spawn.HazardChance},
		{"collectible_chance", c.Spawn.CollectibleChance},
	}
	for _, ch := range chances {
		if ch.p < 0 || ch.p > 1 {
			errs = append(errs, fmt.Errorf("spawn.%s must be within [0, 1], got %g", ch.name, ch.p))
		}
	}
	if c.Spawn.EnemyMinSize <= 0 || c.Spawn.EnemyMaxSize < c.Spawn.EnemyMinSize {
		errs = append(errs, fmt.Errorf("spawn enemy size range [%g, %g] is invalid", c.Spawn.EnemyMinSize, c.Spawn.EnemyMaxSize))
	}

	if c.Pulse.Duration <= 0 {
		errs = append(errs, fmt.Errorf("pulse.duration must be positive, got %g", c.Pulse.Duration))
	}
	if c.Pulse.InitialCooldown < 0 || c.Pulse.MinCooldown < 0 || c.Pulse.MaxCooldown < c.Pulse.MinCooldown {
		errs = append(errs, fmt.Errorf("pulse cooldowns are invalid (initial %g, range [%g, %g))",
			c.Pulse.InitialCooldown, c.Pulse.MinCooldown, c.Pulse.MaxCooldown))
	}

	if c.Scoring.ComboStart < 1 || c.Scoring.ComboMax < c.Scoring.ComboStart {
		errs = append(errs, fmt.Errorf("combo range [%g, %g] is invalid", c.Scoring.ComboStart, c.Scoring.ComboMax))
	}
	if c.Scoring.ComboStep < 0 {
		errs = append(errs, fmt.Errorf("scoring.combo_step must not be negative, got %g", c.Scoring.ComboStep))
	}
	if c.Scoring.PointsPerSecond < 0 {
		errs = append(errs, fmt.Errorf("scoring.points_per_second must not be negative, got %g", c.Scoring.PointsPerSecond))
	}
	if c.Scoring.DistancePerSecond < 0 {
		errs = append(errs, fmt.Errorf("scoring.distance_per_second must not be negative, got %g", c.Scoring.DistancePerSecond))
	}
	if c.Scoring.AttackBonus < 0 {
		errs = append(errs, fmt.Errorf("scoring.attack_bonus must not be negative, got %g", c.Scoring.AttackBonus))
	}
	if c.Scoring.GoalDistance <= 0 {
		errs = append(errs, fmt.Errorf("scoring.goal_distance must be positive, got %g", c.Scoring.GoalDistance))
	}

	if c.Timing.MaxStep <= 0 {
		errs = append(errs, fmt.Errorf("timing.max_step must be positive, got %g", c.Timing.MaxStep))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}
