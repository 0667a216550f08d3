package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the built-in runner configuration.
// It mirrors defaults/runner.yaml and is used when that file cannot be parsed.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		World: WorldConfig{
			Width:       960,
			Height:      360,
			Lanes:       3,
			SpawnOffset: 40,
			DespawnX:    -60,
		},
		Player: PlayerConfig{
			X:      120,
			Radius: 18,
		},
		Speed: SpeedConfig{
			Base:        140,
			Enemy:       1.0,
			Hazard:      1.1,
			Collectible: 0.9,
		},
		Spawn: SpawnConfig{
			Mode:              SpawnModeRate,
			ReferenceFPS:      60,
			EnemyChance:       0.02,
			HazardChance:      0.015,
			CollectibleChance: 0.01,
			EnemyMinSize:      28,
			EnemyMaxSize:      38,
			HazardWidth:       32,
			HazardHeight:      26,
			CollectibleSize:   16,
		},
		Pulse: PulseConfig{
			Duration:        4.5,
			InitialCooldown: 4,
			MinCooldown:     6,
			MaxCooldown:     9,
		},
		Scoring: ScoringConfig{
			PointsPerSecond:   45,
			DistancePerSecond: 12,
			AttackBonus:       250,
			ComboStart:        1,
			ComboStep:         0.1,
			ComboMax:          5,
			GoalDistance:      1000,
		},
		Contact: ContactConfig{
			Enabled:           false,
			CollectibleBonus:  50,
			BonusUsesCombo:    true,
			HazardPenalty:     100,
			HazardResetsCombo: true,
			HazardEndsRun:     false,
		},
		Timing: TimingConfig{
			MaxStep: 0.05,
		},
	}
}

// DefaultYAML returns the embedded default runner YAML.
func DefaultYAML() []byte {
	return defaultRunnerYAML
}
