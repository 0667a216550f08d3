package runner

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/pulse-runner/internal/config"
	"github.com/vovakirdan/pulse-runner/internal/core"
)

func TestPulseCycle(t *testing.T) {
	partitions := map[string][]float64{
		"quarters": repeat(0.25, 16),
		"halves":   repeat(0.5, 8),
		"mixed":    {1, 0.5, 2, 0.25, 0.25},
		"single":   {4},
	}

	for name, steps := range partitions {
		t.Run(name, func(t *testing.T) {
			cfg := config.DefaultRunnerConfig().Pulse
			p := NewPulse(cfg)
			rng := rand.New(rand.NewSource(7))

			for i, dt := range steps {
				tr := p.Advance(dt, rng)
				last := i == len(steps)-1
				if last && tr != PulseEngaged {
					t.Fatalf("last step transition = %v, want engaged", tr)
				}
				if !last && tr != PulseUnchanged {
					t.Fatalf("step %d transition = %v before cooldown elapsed", i, tr)
				}
			}

			if !p.Active() || p.Remaining() != 4.5 {
				t.Fatalf("after 4s: active=%v remaining=%v", p.Active(), p.Remaining())
			}

			for i := 0; i < 17; i++ {
				if tr := p.Advance(0.25, rng); tr != PulseUnchanged {
					t.Fatalf("disengaged early at step %d", i)
				}
			}
			if tr := p.Advance(0.25, rng); tr != PulseDisengaged {
				t.Fatalf("transition = %v, want disengaged", tr)
			}
			if p.Active() {
				t.Fatal("pulse still active after 4.5s")
			}
			if cd := p.Cooldown(); cd < cfg.MinCooldown || cd >= cfg.MaxCooldown {
				t.Errorf("cooldown = %v, want in [6, 9)", cd)
			}
		})
	}
}

func TestPulseCooldownRange(t *testing.T) {
	cfg := config.DefaultRunnerConfig().Pulse
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 500; i++ {
		p := NewPulse(cfg)
		p.active = true
		p.remaining = 0.1
		p.Advance(1, rng)
		if cd := p.Cooldown(); cd < 6 || cd >= 9 {
			t.Fatalf("cooldown = %v out of range", cd)
		}
	}
}

func TestPulseFraction(t *testing.T) {
	p := NewPulse(config.DefaultRunnerConfig().Pulse)
	if p.Fraction() != 0 {
		t.Errorf("cooling Fraction() = %v, want 0", p.Fraction())
	}

	rng := rand.New(rand.NewSource(1))
	p.Advance(4, rng)
	if p.Fraction() != 1 {
		t.Errorf("fresh Fraction() = %v, want 1", p.Fraction())
	}
	p.Advance(2.25, rng)
	if !approx(p.Fraction(), 0.5, eps) {
		t.Errorf("half-way Fraction() = %v, want 0.5", p.Fraction())
	}
}

func TestPulseEventsThroughSim(t *testing.T) {
	s := NewSim(quietConfig(), 3)

	var got []string
	s.SetListener(func(ev core.Event) {
		got = append(got, ev.Kind.String())
	})

	// 1/32 is exact in binary, so 128 steps sum to exactly 4s.
	for i := 0; i < 128; i++ {
		s.Update(1.0 / 32)
	}
	if !s.Pulse().Active() {
		t.Fatal("pulse not active after 4s")
	}
	if len(got) != 1 || got[0] != core.EventPulseEngaged.String() {
		t.Fatalf("listener got %v", got)
	}

	evs := s.DrainEvents()
	if len(evs) != 1 || evs[0].Kind != core.EventPulseEngaged {
		t.Fatalf("DrainEvents() = %v", evs)
	}
	if s.DrainEvents() != nil {
		t.Error("second drain should be empty")
	}

	for i := 0; i < 144; i++ {
		s.Update(1.0 / 32)
	}
	if s.Pulse().Active() {
		t.Fatal("pulse still active after 4.5s")
	}
	evs = s.DrainEvents()
	if len(evs) != 1 || evs[0].Kind != core.EventPulseDisengaged {
		t.Fatalf("DrainEvents() = %v", evs)
	}
}

func repeat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}
