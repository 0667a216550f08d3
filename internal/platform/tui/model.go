package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pulse-runner/internal/config"
	"github.com/vovakirdan/pulse-runner/internal/core"
	"github.com/vovakirdan/pulse-runner/internal/registry"
	"github.com/vovakirdan/pulse-runner/internal/replay"
	"github.com/vovakirdan/pulse-runner/internal/storage"
)

// Options carries the session-wide dependencies of the UI models.
type Options struct {
	Store  *storage.Store // May be nil; replays are then not saved
	Logger *log.Logger
	User   string
}

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.Default()
}

// recordable is implemented by games whose runs can be replayed.
type recordable interface {
	Config() config.RunnerConfig
}

// GameModel is the Bubble Tea model for playing one game mode. It records
// every run and saves it as a replay when the run ends, restarts or the
// player leaves.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	opts       Options
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	clock      frameClock
	recorder   *replay.Recorder
	status     string
	quitting   bool
	backToMenu bool
	exitOnBack bool // Set when the model runs as its own program
}

// NewGameModel creates a model for the given game and starts a run.
func NewGameModel(game registry.Game, opts Options, cfg core.RuntimeConfig) GameModel {
	m := GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:       opts,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		clock:      newFrameClock(cfg.TickRate),
	}
	m.startRun()
	return m
}

// startRun resets the game with a fresh seed, unless one was fixed on the
// command line for the first run.
func (m *GameModel) startRun() {
	if m.config.Seed == 0 {
		m.config.Seed = time.Now().UnixNano()
	}
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.clock.reset()
	m.inputFrame.Clear()

	m.recorder = nil
	if rg, ok := m.game.(recordable); ok {
		rec, err := replay.NewRecorder(m.game.ID(), m.config.Seed, rg.Config(), m.opts.User)
		if err != nil {
			m.opts.logger().Warn("replay recording disabled", "error", err)
		} else {
			m.recorder = rec
		}
	}

	m.opts.logger().Info("run started", "game", m.game.ID(), "seed", m.config.Seed, "user", m.opts.User)

	// Later runs always get a new seed.
	m.config.Seed = 0
}

// finishRun saves the recording of the current run, once.
func (m *GameModel) finishRun() {
	if m.recorder == nil {
		return
	}
	rec := m.recorder
	m.recorder = nil

	logger := m.opts.logger()
	r, err := rec.Finish()
	if err != nil {
		logger.Debug("nothing to save", "error", err)
		return
	}
	logger.Info("run finished",
		"game", r.GameID,
		"score", m.gameState.Score,
		"frames", len(r.Frames),
		"duration", r.Duration().Round(time.Millisecond),
	)

	if m.opts.Store == nil {
		return
	}
	if err := m.opts.Store.SaveReplay(r); err != nil {
		logger.Error("could not save replay", "error", err)
		return
	}
	logger.Info("replay saved", "id", r.ID)
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if a := m.keyMapper.MapMouse(msg); a != core.ActionNone {
			m.inputFrame.Set(a)
		}
		return m, nil

	case tea.WindowSizeMsg:
		// The renderer scales the world to the screen, so the run goes on.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	switch m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
	case core.ActionQuit:
		m.finishRun()
		m.quitting = true
		return m, tea.Quit

	case core.ActionBack:
		m.finishRun()
		m.backToMenu = true
		if m.exitOnBack {
			return m, tea.Quit
		}
		return m, nil

	case core.ActionRestart:
		m.finishRun()
		m.startRun()
		m.status = ""
		return m, nil
	}

	return m, nil
}

// handleTick advances the simulation by the real time since the last tick.
func (m GameModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	dt := m.clock.delta(now)
	wasOver := m.gameState.GameOver

	result := m.game.Step(m.inputFrame, dt)
	if m.recorder != nil && !wasOver {
		m.recorder.Record(m.inputFrame, dt)
	}
	m.gameState = result.State

	for _, ev := range result.Events {
		m.opts.logger().Debug("game event", "kind", ev.Kind, "count", ev.Count)
	}

	if m.gameState.GameOver && !wasOver {
		m.finishRun()
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot saves the current screen to a text file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.status = "screenshot failed"
		return
	}
	dir := filepath.Join(home, ".pulserun", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.status = "screenshot failed"
		m.opts.logger().Error("could not create screenshot dir", "error", err)
		return
	}

	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.status = "screenshot failed"
		m.opts.logger().Error("could not save screenshot", "error", err)
		return
	}
	m.status = "saved " + filename
	m.opts.logger().Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	if m.status != "" {
		m.screen.DrawTextColored(m.screen.Width()-len(m.status)-1, m.screen.Height()-1, m.status, core.ColorBrightYellow)
	}
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// State returns the last game state.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// RunGame starts the Bubble Tea program for one game. It returns when the
// player quits or goes back; the boolean reports a request for the menu.
func RunGame(game registry.Game, opts Options, cfg core.RuntimeConfig) (backToMenu bool, err error) {
	model := NewGameModel(game, opts, cfg)
	model.exitOnBack = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()
	gm, ok := final.(GameModel)
	if ok {
		// No-op unless the program was stopped from outside the model.
		gm.finishRun()
	}
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	return gm.BackToMenu(), nil
}
