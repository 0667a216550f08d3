// Package registry maps game mode IDs to factories. Modes register in
// init(), so the CLI, the menu and replay playback find them by ID alone.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/pulse-runner/internal/core"
)

// Game is one playable mode. Implementations hold only simulation and
// drawing state; the host owns timing, input mapping and terminal output.
type Game interface {
	// ID is the stable mode name stored with replays, e.g. "runner".
	ID() string

	// Title is the name shown in the menu.
	Title() string

	// Reset starts a new run for the given screen and seed.
	Reset(cfg core.RuntimeConfig)

	// Step applies the queued actions in order, then advances the run by
	// dt seconds of real time.
	Step(in core.InputFrame, dt float64) core.StepResult

	// Render draws the run into dst.
	Render(dst *core.Screen)

	// State reports score, run over and pause.
	State() core.GameState
}

// GameInfo describes a registered mode.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a fresh game instance.
type Factory func() Game

type entry struct {
	factory Factory
	title   string
}

var (
	mu    sync.RWMutex
	modes = make(map[string]entry)
)

// Register adds a mode. It panics on a duplicate ID, since two modes
// sharing an ID would make stored replays ambiguous.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, dup := modes[id]; dup {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	modes[id] = entry{factory: f, title: f().Title()}
}

// List returns every registered mode sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	infos := make([]GameInfo, 0, len(modes))
	for id, e := range modes {
		infos = append(infos, GameInfo{ID: id, Title: e.title})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos
}

// Create returns a new instance of the mode with the given ID.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := modes[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := modes[id]
	return ok
}
