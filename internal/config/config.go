// Package config provides YAML-based runner configuration loading,
// validation and mode presets.
package config

// RunnerConfig contains all tunables of the lane runner.
// Distances are world units, times are seconds.
type RunnerConfig struct {
	World   WorldConfig   `yaml:"world"`
	Player  PlayerConfig  `yaml:"player"`
	Speed   SpeedConfig   `yaml:"speed"`
	Spawn   SpawnConfig   `yaml:"spawn"`
	Pulse   PulseConfig   `yaml:"pulse"`
	Scoring ScoringConfig `yaml:"scoring"`
	Contact ContactConfig `yaml:"contact"`
	Timing  TimingConfig  `yaml:"timing"`
}

// WorldConfig defines the playfield.
type WorldConfig struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	Lanes       int     `yaml:"lanes"`
	SpawnOffset float64 `yaml:"spawn_offset"` // Distance beyond the right edge where entities appear
	DespawnX    float64 `yaml:"despawn_x"`    // Entities left of this are removed
}

// PlayerConfig defines the player token.
type PlayerConfig struct {
	X      float64 `yaml:"x"`
	Radius float64 `yaml:"radius"`
}

// SpeedConfig defines scroll speeds. Each variant moves at Base * multiplier.
type SpeedConfig struct {
	Base        float64 `yaml:"base"`
	Enemy       float64 `yaml:"enemy"`
	Hazard      float64 `yaml:"hazard"`
	Collectible float64 `yaml:"collectible"`
}

// SpawnMode selects how spawn chances relate to frame time.
type SpawnMode string

const (
	// SpawnModeRate scales each chance by dt so spawns per second do not
	// depend on the host frame rate.
	SpawnModeRate SpawnMode = "rate"
	// SpawnModeFrame rolls each chance once per tick regardless of dt.
	SpawnModeFrame SpawnMode = "frame"
)

// SpawnConfig defines spawn chances and entity shapes.
// Chances are per frame at ReferenceFPS.
type SpawnConfig struct {
	Mode              SpawnMode `yaml:"mode"`
	ReferenceFPS      float64   `yaml:"reference_fps"`
	EnemyChance       float64   `yaml:"enemy_chance"`
	HazardChance      float64   `yaml:"hazard_chance"`
	CollectibleChance float64   `yaml:"collectible_chance"`
	EnemyMinSize      float64   `yaml:"enemy_min_size"`
	EnemyMaxSize      float64   `yaml:"enemy_max_size"`
	HazardWidth       float64   `yaml:"hazard_width"`
	HazardHeight      float64   `yaml:"hazard_height"`
	CollectibleSize   float64   `yaml:"collectible_size"`
}

// PulseConfig defines the pulse ability timer.
type PulseConfig struct {
	Duration        float64 `yaml:"duration"`
	InitialCooldown float64 `yaml:"initial_cooldown"`
	MinCooldown     float64 `yaml:"min_cooldown"`
	MaxCooldown     float64 `yaml:"max_cooldown"` // Exclusive upper bound
}

// ScoringConfig defines score, combo and distance accrual.
type ScoringConfig struct {
	PointsPerSecond   float64 `yaml:"points_per_second"`
	DistancePerSecond float64 `yaml:"distance_per_second"`
	AttackBonus       float64 `yaml:"attack_bonus"`
	ComboStart        float64 `yaml:"combo_start"`
	ComboStep         float64 `yaml:"combo_step"`
	ComboMax          float64 `yaml:"combo_max"`
	GoalDistance      float64 `yaml:"goal_distance"` // Distance shown as a full progress bar
}

// ContactConfig defines what touching hazards and collectibles does.
// Disabled, they pass through the player with no effect.
type ContactConfig struct {
	Enabled           bool    `yaml:"enabled"`
	CollectibleBonus  float64 `yaml:"collectible_bonus"`
	BonusUsesCombo    bool    `yaml:"bonus_uses_combo"`
	HazardPenalty     float64 `yaml:"hazard_penalty"`
	HazardResetsCombo bool    `yaml:"hazard_resets_combo"`
	HazardEndsRun     bool    `yaml:"hazard_ends_run"`
}

// TimingConfig defines frame time handling.
type TimingConfig struct {
	MaxStep float64 `yaml:"max_step"` // Upper bound for one tick's dt
}

// Mode represents a named game mode preset.
type Mode string

const (
	ModeClassic Mode = "classic"
	ModeContact Mode = "contact"
)

// ParseMode converts a CLI string to a Mode. Unknown values yield "".
func ParseMode(s string) Mode {
	switch Mode(s) {
	case ModeClassic:
		return ModeClassic
	case ModeContact:
		return ModeContact
	default:
		return ""
	}
}

// ApplyModePreset modifies the config for a game mode.
func ApplyModePreset(cfg *RunnerConfig, mode Mode) {
	switch mode {
	case ModeClassic:
		cfg.Contact.Enabled = false
	case ModeContact:
		cfg.Contact.Enabled = true
		cfg.Contact.HazardEndsRun = true
	}
}
