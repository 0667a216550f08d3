package replay

import (
	"time"

	"github.com/vovakirdan/pulse-runner/internal/core"
	"github.com/vovakirdan/pulse-runner/internal/runner"
)

// Playback feeds a replay's frames into a fresh game, one per Next call.
type Playback struct {
	replay *Replay
	game   *runner.Game
	pos    int
}

// NewPlayback prepares a game with the replay's seed and config.
func NewPlayback(r *Replay) (*Playback, error) {
	cfg, err := r.Config()
	if err != nil {
		return nil, err
	}
	g := runner.NewWithConfig(r.GameID, cfg)
	g.Reset(core.RuntimeConfig{Seed: r.Seed})
	return &Playback{replay: r, game: g}, nil
}

// Next applies the next frame. It reports false once every frame has been
// played.
func (p *Playback) Next() (core.StepResult, bool) {
	if p.Done() {
		return core.StepResult{State: p.game.State()}, false
	}
	f := p.replay.Frames[p.pos]
	p.pos++
	return p.game.Step(core.InputFrame{Actions: f.Actions}, f.DT), true
}

// Done reports whether all frames have been played.
func (p *Playback) Done() bool {
	return p.pos >= len(p.replay.Frames)
}

// Position returns the number of frames played so far.
func (p *Playback) Position() int {
	return p.pos
}

// Game returns the game being driven, for rendering.
func (p *Playback) Game() *runner.Game {
	return p.game
}

// Summary is the outcome of a replayed run.
type Summary struct {
	Ticks    uint64
	Frames   int
	Duration time.Duration
	Score    float64
	Combo    float64
	Distance float64
	Over     bool
}

// Simulate plays the whole replay and returns the final snapshot.
func Simulate(r *Replay) (runner.Snapshot, error) {
	p, err := NewPlayback(r)
	if err != nil {
		return runner.Snapshot{}, err
	}
	for {
		if _, ok := p.Next(); !ok {
			break
		}
	}
	return p.game.Snapshot(), nil
}

// Summarize re-simulates a replay and reports its result.
func Summarize(r *Replay) (Summary, error) {
	snap, err := Simulate(r)
	if err != nil {
		return Summary{}, err
	}
	return Summary{
		Ticks:    snap.Tick,
		Frames:   len(r.Frames),
		Duration: r.Duration(),
		Score:    snap.Run.Score,
		Combo:    snap.Run.Combo,
		Distance: snap.Run.Distance,
		Over:     snap.Over,
	}, nil
}
