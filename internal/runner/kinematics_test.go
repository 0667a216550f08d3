package runner

import (
	"testing"

	"github.com/vovakirdan/pulse-runner/internal/config"
)

func TestKinematicsExactDecrement(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	k := NewKinematics(cfg)

	tests := []struct {
		kind Kind
		mult float64
	}{
		{KindEnemy, cfg.Speed.Enemy},
		{KindHazard, cfg.Speed.Hazard},
		{KindCollectible, cfg.Speed.Collectible},
	}

	for _, dt := range []float64{0, 0.001, 0.016, 0.05} {
		for _, tt := range tests {
			var e, h, c column
			start := 500.0
			ent := Entity{Kind: tt.kind, X: start}
			switch tt.kind {
			case KindEnemy:
				e.push(ent)
			case KindHazard:
				h.push(ent)
			case KindCollectible:
				c.push(ent)
			}

			k.Advance(dt, &e, &h, &c)

			var got float64
			for _, col := range []*column{&e, &h, &c} {
				if col.len() == 1 {
					got = col.items[0].X
				}
			}
			want := start - dt*cfg.Speed.Base*tt.mult
			if !approx(got, want, eps) {
				t.Errorf("%v dt=%v: x = %v, want %v", tt.kind, dt, got, want)
			}
		}
	}
}

func TestKinematicsSpeed(t *testing.T) {
	k := NewKinematics(config.DefaultRunnerConfig())

	if !approx(k.Speed(KindEnemy), 140, eps) {
		t.Errorf("enemy speed = %v", k.Speed(KindEnemy))
	}
	if !approx(k.Speed(KindHazard), 154, eps) {
		t.Errorf("hazard speed = %v", k.Speed(KindHazard))
	}
	if !approx(k.Speed(KindCollectible), 126, eps) {
		t.Errorf("collectible speed = %v", k.Speed(KindCollectible))
	}
}

func TestKinematicsPrunesFront(t *testing.T) {
	k := NewKinematics(config.DefaultRunnerConfig())

	var e, h, c column
	e.push(enemyAt(0, -59))
	e.push(enemyAt(1, -50))
	e.push(enemyAt(2, 100))

	// Enemy speed is 140, so 0.05s moves 7 units.
	removed := k.Advance(0.05, &e, &h, &c)
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	if e.len() != 2 || e.items[0].Lane != 1 {
		t.Errorf("survivors = %+v", e.items)
	}
}

func TestSurvivorsStayOrdered(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	cfg.Spawn.EnemyChance = 0.5
	cfg.Spawn.HazardChance = 0.5
	cfg.Spawn.CollectibleChance = 0.5

	s := NewSim(cfg, 99)
	for i := 0; i < 2000; i++ {
		s.Update(0.016)

		snap := s.Snapshot()
		for name, col := range map[string][]Entity{
			"enemies":      snap.Enemies,
			"hazards":      snap.Hazards,
			"collectibles": snap.Collectibles,
		} {
			for j, ent := range col {
				if ent.X < cfg.World.DespawnX {
					t.Fatalf("tick %d: %s[%d] at x=%v survived", i, name, j, ent.X)
				}
				if j > 0 && col[j-1].X > ent.X {
					t.Fatalf("tick %d: %s out of order at %d", i, name, j)
				}
			}
		}
	}
}
