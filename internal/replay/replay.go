// Package replay records the input of a run and plays it back.
//
// The simulation is deterministic for a given seed, config and sequence of
// (dt, actions) frames, so a replay stores only those. Scores and positions
// are derived by re-simulating.
package replay

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/pulse-runner/internal/config"
	"github.com/vovakirdan/pulse-runner/internal/core"
)

// ErrEmpty is returned when finishing a recording without frames.
var ErrEmpty = errors.New("replay: no frames recorded")

// Frame is the input of one simulation tick.
type Frame struct {
	DT      float64       `msgpack:"dt"`
	Actions []core.Action `msgpack:"a,omitempty"`
}

// Replay is a recorded run.
type Replay struct {
	ID         uuid.UUID
	GameID     string
	Seed       int64
	User       string
	ConfigYAML []byte // Exact config the run used
	Frames     []Frame
	CreatedAt  time.Time
}

// Duration returns the recorded wall time, including paused frames.
func (r *Replay) Duration() time.Duration {
	var total float64
	for _, f := range r.Frames {
		total += f.DT
	}
	return time.Duration(math.Round(total * float64(time.Second)))
}

// Config decodes the config snapshot stored with the replay.
func (r *Replay) Config() (config.RunnerConfig, error) {
	cfg, err := config.Parse(r.ConfigYAML)
	if err != nil {
		return cfg, fmt.Errorf("replay %s: %w", r.ID, err)
	}
	return cfg, nil
}

// Recorder accumulates frames while a run is played.
type Recorder struct {
	gameID  string
	seed    int64
	user    string
	cfgYAML []byte
	frames  []Frame
}

// NewRecorder starts a recording for a run that was reset with seed and
// runs with cfg.
func NewRecorder(gameID string, seed int64, cfg config.RunnerConfig, user string) (*Recorder, error) {
	data, err := config.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("replay: snapshot config: %w", err)
	}
	return &Recorder{
		gameID:  gameID,
		seed:    seed,
		user:    user,
		cfgYAML: data,
		frames:  make([]Frame, 0, 1024),
	}, nil
}

// Record appends one tick's input.
func (r *Recorder) Record(in core.InputFrame, dt float64) {
	f := Frame{DT: dt}
	if !in.Empty() {
		f.Actions = in.Clone().Actions
	}
	r.frames = append(r.frames, f)
}

// Len returns the number of recorded frames.
func (r *Recorder) Len() int {
	return len(r.frames)
}

// Finish closes the recording and returns it with a fresh ID.
func (r *Recorder) Finish() (*Replay, error) {
	if len(r.frames) == 0 {
		return nil, ErrEmpty
	}
	return &Replay{
		ID:         uuid.New(),
		GameID:     r.gameID,
		Seed:       r.seed,
		User:       r.user,
		ConfigYAML: r.cfgYAML,
		Frames:     r.frames,
		CreatedAt:  time.Now(),
	}, nil
}

// EncodeFrames packs frames for storage.
func EncodeFrames(frames []Frame) ([]byte, error) {
	data, err := msgpack.Marshal(frames)
	if err != nil {
		return nil, fmt.Errorf("replay: encode frames: %w", err)
	}
	return data, nil
}

// DecodeFrames unpacks frames written by EncodeFrames.
func DecodeFrames(data []byte) ([]Frame, error) {
	var frames []Frame
	if err := msgpack.Unmarshal(data, &frames); err != nil {
		return nil, fmt.Errorf("replay: decode frames: %w", err)
	}
	return frames, nil
}
