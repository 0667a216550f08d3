package runner

import "github.com/vovakirdan/pulse-runner/internal/config"

// Kinematics scrolls the entity columns leftwards and drops what has left
// the screen.
type Kinematics struct {
	enemySpeed       float64
	hazardSpeed      float64
	collectibleSpeed float64
	despawnX         float64
}

// NewKinematics derives per-variant speeds from the config.
func NewKinematics(cfg config.RunnerConfig) Kinematics {
	return Kinematics{
		enemySpeed:       cfg.Speed.Base * cfg.Speed.Enemy,
		hazardSpeed:      cfg.Speed.Base * cfg.Speed.Hazard,
		collectibleSpeed: cfg.Speed.Base * cfg.Speed.Collectible,
		despawnX:         cfg.World.DespawnX,
	}
}

// Speed returns the scroll speed of a variant in units per second.
func (k Kinematics) Speed(kind Kind) float64 {
	switch kind {
	case KindHazard:
		return k.hazardSpeed
	case KindCollectible:
		return k.collectibleSpeed
	default:
		return k.enemySpeed
	}
}

// Advance moves all columns by dt and prunes each from the front.
// Returns the number of entities that scrolled off.
func (k Kinematics) Advance(dt float64, enemies, hazards, collectibles *column) int {
	enemies.advance(dt * k.enemySpeed)
	hazards.advance(dt * k.hazardSpeed)
	collectibles.advance(dt * k.collectibleSpeed)

	return enemies.pruneFront(k.despawnX) +
		hazards.pruneFront(k.despawnX) +
		collectibles.pruneFront(k.despawnX)
}
