package replay

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/vovakirdan/pulse-runner/internal/config"
	"github.com/vovakirdan/pulse-runner/internal/core"
	"github.com/vovakirdan/pulse-runner/internal/runner"
)

// play runs a game live while recording it and returns the recording and
// the final snapshot.
func play(t *testing.T, id string, cfg config.RunnerConfig, seed int64) (*Replay, runner.Snapshot) {
	t.Helper()

	g := runner.NewWithConfig(id, cfg)
	g.Reset(core.RuntimeConfig{Seed: seed})

	rec, err := NewRecorder(id, seed, g.Config(), "tester")
	if err != nil {
		t.Fatalf("NewRecorder() failed: %v", err)
	}

	for i := 0; i < 1500; i++ {
		in := core.NewInputFrame()
		switch i % 53 {
		case 5:
			in.Set(core.ActionDown)
		case 17:
			in.Set(core.ActionUp)
			in.Set(core.ActionUp)
		case 31:
			in.Set(core.ActionAttack)
		}
		// Uneven frame times, as a real terminal delivers them.
		dt := 0.012 + float64(i%7)*0.002
		g.Step(in, dt)
		rec.Record(in, dt)
	}

	r, err := rec.Finish()
	if err != nil {
		t.Fatalf("Finish() failed: %v", err)
	}
	return r, g.Snapshot()
}

func TestSimulateReproducesRun(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	cfg.Spawn.EnemyChance = 0.08

	r, live := play(t, runner.ClassicID, cfg, 2024)

	replayed, err := Simulate(r)
	if err != nil {
		t.Fatalf("Simulate() failed: %v", err)
	}
	if !reflect.DeepEqual(live, replayed) {
		t.Errorf("replay diverged: live %+v, replayed %+v", live.Run, replayed.Run)
	}
}

func TestSimulateAfterEncoding(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	config.ApplyModePreset(&cfg, config.ModeContact)
	cfg.Spawn.HazardChance = 0.05

	r, live := play(t, runner.ContactID, cfg, 7)

	data, err := EncodeFrames(r.Frames)
	if err != nil {
		t.Fatalf("EncodeFrames() failed: %v", err)
	}
	frames, err := DecodeFrames(data)
	if err != nil {
		t.Fatalf("DecodeFrames() failed: %v", err)
	}
	r.Frames = frames

	sum, err := Summarize(r)
	if err != nil {
		t.Fatalf("Summarize() failed: %v", err)
	}
	if sum.Score != live.Run.Score || sum.Distance != live.Run.Distance || sum.Over != live.Over {
		t.Errorf("summary %+v does not match live run %+v", sum, live.Run)
	}
	if sum.Frames != 1500 {
		t.Errorf("Frames = %d, want 1500", sum.Frames)
	}
}

func TestRecorderCopiesInput(t *testing.T) {
	rec, err := NewRecorder(runner.ClassicID, 1, config.DefaultRunnerConfig(), "")
	if err != nil {
		t.Fatal(err)
	}

	in := core.NewInputFrame(core.ActionDown)
	rec.Record(in, 0.016)
	in.Actions[0] = core.ActionUp
	rec.Record(core.InputFrame{}, 0.016)

	r, err := rec.Finish()
	if err != nil {
		t.Fatal(err)
	}
	if r.Frames[0].Actions[0] != core.ActionDown {
		t.Error("recorder kept a reference to the caller's input")
	}
	if r.Frames[1].Actions != nil {
		t.Errorf("empty frame stored actions %v", r.Frames[1].Actions)
	}
	if r.ID.String() == "" || r.CreatedAt.IsZero() {
		t.Error("Finish() should stamp ID and time")
	}
	if got := r.Duration(); got != 32*time.Millisecond {
		t.Errorf("Duration() = %v, want 32ms", got)
	}
}

func TestFinishEmpty(t *testing.T) {
	rec, err := NewRecorder(runner.ClassicID, 1, config.DefaultRunnerConfig(), "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := rec.Finish(); !errors.Is(err, ErrEmpty) {
		t.Errorf("Finish() error = %v, want ErrEmpty", err)
	}
}

func TestPlaybackSteps(t *testing.T) {
	r, _ := play(t, runner.ClassicID, config.DefaultRunnerConfig(), 3)

	p, err := NewPlayback(r)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		if _, ok := p.Next(); !ok {
			t.Fatalf("Next() stopped at %d", i)
		}
	}
	if p.Position() != 10 || p.Game().Snapshot().Tick != 10 {
		t.Errorf("position %d tick %d, want 10", p.Position(), p.Game().Snapshot().Tick)
	}
	for !p.Done() {
		p.Next()
	}
	if _, ok := p.Next(); ok {
		t.Error("Next() after the last frame should report false")
	}
}

func TestCorruptConfig(t *testing.T) {
	r := &Replay{GameID: runner.ClassicID, ConfigYAML: []byte("world: [")}
	if _, err := Simulate(r); err == nil {
		t.Error("Simulate() should fail on a broken config snapshot")
	}
}
