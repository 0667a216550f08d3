package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Frames per second requested from the host (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score, rounded down
	GameOver bool // Whether the run has ended
	Paused   bool // Whether the game is paused
}

// EventKind identifies something notable that happened during a tick.
type EventKind int

const (
	EventPulseEngaged EventKind = iota + 1
	EventPulseDisengaged
	EventEnemiesCleared
	EventCollectiblePicked
	EventHazardHit
	EventRunOver
)

// String returns a short name for the event, used in logs.
func (k EventKind) String() string {
	switch k {
	case EventPulseEngaged:
		return "pulse_engaged"
	case EventPulseDisengaged:
		return "pulse_disengaged"
	case EventEnemiesCleared:
		return "enemies_cleared"
	case EventCollectiblePicked:
		return "collectible_picked"
	case EventHazardHit:
		return "hazard_hit"
	case EventRunOver:
		return "run_over"
	default:
		return "unknown"
	}
}

// Event is emitted by a game step. Count carries how many entities were
// involved where that applies (e.g. enemies cleared by one pulse attack).
type Event struct {
	Kind  EventKind
	Count int
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}
