package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pulse-runner/internal/core"
	"github.com/vovakirdan/pulse-runner/internal/registry"
	"github.com/vovakirdan/pulse-runner/internal/storage"

	_ "github.com/vovakirdan/pulse-runner/internal/runner"
)

func testOptions(t *testing.T) Options {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "replays.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	logger := log.New(&strings.Builder{})
	return Options{Store: store, Logger: logger, User: "tester"}
}

func send(t *testing.T, m tea.Model, msgs ...tea.Msg) tea.Model {
	t.Helper()
	for _, msg := range msgs {
		m, _ = m.Update(msg)
	}
	return m
}

func ticks(start time.Time, n int) []tea.Msg {
	out := make([]tea.Msg, n)
	for i := range out {
		out[i] = TickMsg(start.Add(time.Duration(i) * 16 * time.Millisecond))
	}
	return out
}

func TestGameModelSavesReplayOnBack(t *testing.T) {
	opts := testOptions(t)
	game, err := registry.Create("runner")
	if err != nil {
		t.Fatal(err)
	}

	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 77}
	var m tea.Model = NewGameModel(game, opts, cfg)

	m = send(t, m, ticks(time.Unix(0, 0), 30)...)
	m = send(t, m, keyMsg("down"))
	m = send(t, m, ticks(time.Unix(1, 0), 30)...)

	if view := m.View(); !strings.Contains(view, "SCORE") {
		t.Error("game view missing HUD")
	}

	m = send(t, m, keyMsg("esc"))
	if !m.(GameModel).BackToMenu() {
		t.Fatal("esc should request the menu")
	}

	infos, err := opts.Store.ListReplays("runner", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(infos) != 1 {
		t.Fatalf("saved %d replays, want 1", len(infos))
	}
	if infos[0].Seed != 77 || infos[0].Frames != 60 || infos[0].User != "tester" {
		t.Errorf("replay info = %+v", infos[0])
	}
}

func TestGameModelRestartStartsNewRecording(t *testing.T) {
	opts := testOptions(t)
	game, err := registry.Create("runner")
	if err != nil {
		t.Fatal(err)
	}

	var m tea.Model = NewGameModel(game, opts, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60})
	m = send(t, m, ticks(time.Unix(0, 0), 10)...)
	m = send(t, m, keyMsg("r"))
	m = send(t, m, ticks(time.Unix(5, 0), 10)...)
	m = send(t, m, keyMsg("q"))

	if !m.(GameModel).IsQuitting() {
		t.Fatal("q should quit")
	}
	infos, err := opts.Store.ListReplays("", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(infos) != 2 {
		t.Fatalf("saved %d replays, want 2", len(infos))
	}
	if infos[0].Seed == infos[1].Seed {
		t.Error("restart should use a new seed")
	}
}

func TestSessionFlow(t *testing.T) {
	opts := testOptions(t)
	cfg := core.RuntimeConfig{ScreenW: 100, ScreenH: 30, TickRate: 60}

	var m tea.Model = NewSessionModel(opts, cfg)
	if !strings.Contains(m.View(), "P U L S E") {
		t.Fatal("session should open on the menu")
	}

	// First entry is a game mode.
	m = send(t, m, keyMsg("enter"))
	if m.(SessionModel).screen != screenGame {
		t.Fatal("enter should start the first mode")
	}
	m = send(t, m, ticks(time.Unix(0, 0), 20)...)
	m = send(t, m, keyMsg("esc"))
	if m.(SessionModel).screen != screenMenu {
		t.Fatal("esc should return to the menu")
	}

	m = send(t, m, keyMsg("tab"))
	if m.(SessionModel).screen != screenBrowser {
		t.Fatal("tab should open the replay browser")
	}
	if strings.Contains(m.View(), "No replays") {
		t.Error("the finished run should be listed")
	}

	m = send(t, m, keyMsg("enter"))
	if m.(SessionModel).screen != screenReplay {
		t.Fatal("enter should play the selected replay")
	}
	m = send(t, m, ticks(time.Unix(10, 0), 25)...)
	if !strings.Contains(m.View(), "END") {
		t.Error("playback should reach the end of the recording")
	}

	m = send(t, m, keyMsg("esc"))
	if m.(SessionModel).screen != screenBrowser {
		t.Fatal("esc should leave playback for the browser")
	}
	m = send(t, m, keyMsg("esc"))
	m = send(t, m, keyMsg("q"))
	if !m.(SessionModel).quitting {
		t.Error("q should end the session")
	}
}

func TestSessionSavesRunOnExternalQuit(t *testing.T) {
	opts := testOptions(t)
	cfg := core.RuntimeConfig{ScreenW: 100, ScreenH: 30, TickRate: 60}

	var m tea.Model = NewSessionModel(opts, cfg)
	m = send(t, m, keyMsg("enter"))
	m = send(t, m, ticks(time.Unix(0, 0), 15)...)

	// The program handles QuitMsg itself, so only the filter sees it.
	for i := 0; i < 2; i++ {
		if _, ok := finishOnQuit(m, tea.QuitMsg{}).(tea.QuitMsg); !ok {
			t.Fatal("filter should pass QuitMsg through")
		}
	}

	infos, err := opts.Store.ListReplays("", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(infos) != 1 {
		t.Fatalf("saved %d replays, want 1", len(infos))
	}
	if infos[0].Frames != 15 {
		t.Errorf("saved %d frames, want 15", infos[0].Frames)
	}

	// Other messages leave the recording alone.
	m = send(t, NewSessionModel(opts, cfg), keyMsg("enter"))
	m = send(t, m, ticks(time.Unix(5, 0), 5)...)
	finishOnQuit(m, TickMsg(time.Unix(0, 0)))
	if infos, _ := opts.Store.ListReplays("", 10); len(infos) != 1 {
		t.Errorf("a tick should not save the run, have %d replays", len(infos))
	}
}
